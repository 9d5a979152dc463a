// Package script interprets a parsed trace script (see package grammar)
// against a registry of named Abstract Objects. It is the demand-driven
// stand-in for "the flow graph's per-node transfer semantics" that spec.md
// places outside this module's scope: a minimal, testable driver that
// exercises the operations of internal/abstractobject end to end. The
// scope-chain accessors, GetValue/SetValue, RemoveProperty and Equal/Hash
// are not reachable from a script.
package script

import (
	"fmt"
	"io"
	"strconv"

	"abstractobject/grammar"
	"abstractobject/internal/abstractobject"
	"abstractobject/internal/objectlabel"
	"abstractobject/internal/options"
	"abstractobject/internal/value"

	"github.com/alecthomas/participle/v2/lexer"
)

// StatementError attributes a failure to the statement's source position,
// so callers (the CLI and the LSP handler) can report it at the right
// place without re-deriving it from the wrapped error.
type StatementError struct {
	Pos lexer.Position
	Err error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// Interpreter holds the registry of named objects and labels a trace
// script builds up as it runs. The zero value is not usable; use
// NewInterpreter.
type Interpreter struct {
	out     io.Writer
	opts    options.Options
	objects map[string]*abstractobject.Object
	labels  map[string]objectlabel.Label
}

// NewInterpreter returns an Interpreter that writes print/diff output to
// out and constructs objects under opts (in particular, whether
// copy-on-write is enabled).
func NewInterpreter(out io.Writer, opts options.Options) *Interpreter {
	return &Interpreter{
		out:     out,
		opts:    opts,
		objects: make(map[string]*abstractobject.Object),
		labels:  make(map[string]objectlabel.Label),
	}
}

// Run executes every statement of prog in order, stopping at the first
// error.
func (in *Interpreter) Run(prog *grammar.Program) error {
	for _, stmt := range prog.Statements {
		if err := in.exec(stmt); err != nil {
			return &StatementError{Pos: stmt.Pos, Err: err}
		}
	}
	return nil
}

// Object returns the object currently bound to name, for callers (tests,
// the LSP handler) that want to inspect state after a run.
func (in *Interpreter) Object(name string) (*abstractobject.Object, bool) {
	o, ok := in.objects[name]
	return o, ok
}

func (in *Interpreter) labelFor(name string) objectlabel.Label {
	if l, ok := in.labels[name]; ok {
		return l
	}
	l := objectlabel.New(name, "")
	in.labels[name] = l
	return l
}

func (in *Interpreter) lookup(ref grammar.PosIdent) (*abstractobject.Object, error) {
	o, ok := in.objects[ref.Value]
	if !ok {
		return nil, fmt.Errorf("object %q is not declared", ref.Value)
	}
	return o, nil
}

func (in *Interpreter) exec(stmt *grammar.Statement) error {
	switch {
	case stmt.ObjectDecl != nil:
		return in.execObjectDecl(stmt.ObjectDecl)
	case stmt.SetProperty != nil:
		return in.execSetProperty(stmt.SetProperty)
	case stmt.SetDefault != nil:
		return in.execSetDefault(stmt.SetDefault)
	case stmt.Summarize != nil:
		return in.execSummarize(stmt.Summarize)
	case stmt.Trim != nil:
		return in.execTrim(stmt.Trim)
	case stmt.Remove != nil:
		return in.execRemove(stmt.Remove)
	case stmt.ReplaceNonModified != nil:
		return in.execReplaceNonModified(stmt.ReplaceNonModified)
	case stmt.ClearModified != nil:
		return in.execClearModified(stmt.ClearModified)
	case stmt.Relabel != nil:
		return in.execRelabel(stmt.Relabel)
	case stmt.Print != nil:
		return in.execPrint(stmt.Print)
	case stmt.PrintModified != nil:
		return in.execPrintModified(stmt.PrintModified)
	case stmt.Diff != nil:
		return in.execDiff(stmt.Diff)
	case stmt.Labels != nil:
		return in.execLabels(stmt.Labels)
	default:
		return fmt.Errorf("empty statement")
	}
}

func (in *Interpreter) execObjectDecl(s *grammar.ObjectDeclStmt) error {
	var obj *abstractobject.Object
	switch {
	case s.Expr.None != "":
		obj = abstractobject.MakeNone()
	case s.Expr.Unknown != "":
		obj = abstractobject.MakeUnknown()
	case s.Expr.AbsentModified != "":
		obj = abstractobject.MakeAbsentModified()
	case s.Expr.CopyOf != nil:
		src, err := in.lookup(*s.Expr.CopyOf)
		if err != nil {
			return err
		}
		obj = abstractobject.Copy(src, in.opts)
	default:
		return fmt.Errorf("object declaration has no recognizable right-hand side")
	}
	in.objects[s.Name.Value] = obj
	return nil
}

func (in *Interpreter) execSetProperty(s *grammar.SetPropertyStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	v, err := in.evalValue(s.Value)
	if err != nil {
		return err
	}
	obj.SetProperty(s.Property, v)
	return nil
}

func (in *Interpreter) execSetDefault(s *grammar.SetDefaultStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	v, err := in.evalValue(s.Value)
	if err != nil {
		return err
	}
	switch s.Kind {
	case "array":
		return obj.SetDefaultArrayProperty(v)
	case "nonarray":
		return obj.SetDefaultNonArrayProperty(v)
	default:
		return fmt.Errorf("unrecognized default kind %q", s.Kind)
	}
}

func (in *Interpreter) execSummarize(s *grammar.SummarizeStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	promote := objectlabel.PromoteSet{}
	for _, name := range s.Labels {
		promote[in.labelFor(name)] = struct{}{}
	}
	obj.Summarize(promote)
	return nil
}

func (in *Interpreter) execTrim(s *grammar.TrimStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	ref, err := in.lookup(s.Ref)
	if err != nil {
		return err
	}
	obj.Trim(ref)
	return nil
}

func (in *Interpreter) execRemove(s *grammar.RemoveStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	ref, err := in.lookup(s.Ref)
	if err != nil {
		return err
	}
	obj.Remove(ref)
	return nil
}

func (in *Interpreter) execReplaceNonModified(s *grammar.ReplaceNonModifiedStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	other, err := in.lookup(s.Other)
	if err != nil {
		return err
	}
	obj.ReplaceNonModifiedParts(other)
	return nil
}

func (in *Interpreter) execClearModified(s *grammar.ClearModifiedStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	obj.ClearModified()
	return nil
}

func (in *Interpreter) execRelabel(s *grammar.RelabelStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	obj.ReplaceObjectLabel(in.labelFor(s.Old), in.labelFor(s.New), nil)
	return nil
}

func (in *Interpreter) execPrint(s *grammar.PrintStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.out, obj.String())
	return nil
}

func (in *Interpreter) execPrintModified(s *grammar.PrintModifiedStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	obj.PrintModified(in.out)
	return nil
}

func (in *Interpreter) execDiff(s *grammar.DiffStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	old, err := in.lookup(s.Old)
	if err != nil {
		return err
	}
	obj.Diff(old, in.out)
	return nil
}

func (in *Interpreter) execLabels(s *grammar.LabelsStmt) error {
	obj, err := in.lookup(s.Object)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.out, obj.GetAllObjectLabels().String())
	return nil
}

func (in *Interpreter) evalValue(lit *grammar.ValueLiteral) (value.Value, error) {
	switch {
	case lit.None != "":
		return value.MakeNone(), nil
	case lit.Unknown != "":
		return value.MakeUnknown(), nil
	case lit.Absent != nil:
		v := value.MakeAbsentModified()
		if !lit.Absent.Modified {
			v = v.RestrictToNotModified()
		}
		return v, nil
	case lit.Present != nil:
		primitive, err := strconv.Unquote(lit.Present.Primitive)
		if err != nil {
			primitive = lit.Present.Primitive
		}
		labels := make([]objectlabel.Label, len(lit.Present.Labels))
		for i, name := range lit.Present.Labels {
			labels[i] = in.labelFor(name)
		}
		v := value.MakePresent(primitive, labels...)
		if lit.Present.Modified {
			v = value.MakeModified(v)
		}
		return v, nil
	default:
		return value.Value{}, fmt.Errorf("value literal has no recognizable form")
	}
}
