// Package grammar defines the trace script language: a small textual
// language describing a sequence of operations against one or more named
// Abstract Objects. It stands in for "the flow graph and its per-node
// transfer semantics", which are supplied by an external collaborator and
// out of scope for the core lattice element itself — this is a toy driver
// used to exercise and demonstrate that core, not a JavaScript-family
// parser.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PosIdent is an identifier with its source position attached, used
// wherever a statement names an object or a label.
type PosIdent struct {
	Pos   lexer.Position
	Value string `@Ident`
}

// Program is a trace script: a sequence of statements executed in order
// against a registry of named Abstract Objects.
type Program struct {
	Pos        lexer.Position
	Statements []*Statement `@@*`
}

// Statement is one trace script statement. Exactly one field is non-nil
// after a successful parse.
type Statement struct {
	Pos                lexer.Position
	ObjectDecl         *ObjectDeclStmt         `@@`
	SetProperty        *SetPropertyStmt        `| @@`
	SetDefault         *SetDefaultStmt         `| @@`
	Summarize          *SummarizeStmt          `| @@`
	Trim               *TrimStmt               `| @@`
	Remove             *RemoveStmt             `| @@`
	ReplaceNonModified *ReplaceNonModifiedStmt `| @@`
	ClearModified      *ClearModifiedStmt      `| @@`
	Relabel            *RelabelStmt            `| @@`
	Print              *PrintStmt              `| @@`
	PrintModified      *PrintModifiedStmt      `| @@`
	Diff               *DiffStmt               `| @@`
	Labels             *LabelsStmt             `| @@`
}

// ObjectDeclStmt binds a name to a freshly constructed or copied object:
//
//	object main = absentModified
//	object snap = copy main
type ObjectDeclStmt struct {
	Pos  lexer.Position
	Name PosIdent    `"object" @@ "="`
	Expr *ObjectExpr `@@`
}

// ObjectExpr is the right-hand side of an object declaration.
type ObjectExpr struct {
	Pos            lexer.Position
	None           string   `@"none"`
	Unknown        string   `| @"unknown"`
	AbsentModified string   `| @"absentModified"`
	CopyOf         *PosIdent `| "copy" @@`
}

// SetPropertyStmt writes an explicit property:
//
//	set main.x = present "number" labels a1, a2
type SetPropertyStmt struct {
	Pos      lexer.Position
	Object   PosIdent     `"set" @@ "."`
	Property string       `@Ident "="`
	Value    *ValueLiteral `@@`
}

// SetDefaultStmt writes one of the two default slots:
//
//	setdefault main array = unknown
//	setdefault main nonarray = absent modified
type SetDefaultStmt struct {
	Pos    lexer.Position
	Object PosIdent      `"setdefault" @@`
	Kind   string        `@( "array" | "nonarray" ) "="`
	Value  *ValueLiteral `@@`
}

// SummarizeStmt promotes the given labels to summary labels wherever they
// occur in the named object:
//
//	summarize main promote a1, a2
type SummarizeStmt struct {
	Pos    lexer.Position
	Object PosIdent `"summarize" @@ "promote"`
	Labels []string `@Ident { "," @Ident }`
}

// TrimStmt reduces Object to the portion not subsumed by Ref:
//
//	trim main ref snapshot
type TrimStmt struct {
	Pos    lexer.Position
	Object PosIdent `"trim" @@ "ref"`
	Ref    PosIdent `@@`
}

// RemoveStmt reduces Object to the difference from Ref:
//
//	remove main ref snapshot
type RemoveStmt struct {
	Pos    lexer.Position
	Object PosIdent `"remove" @@ "ref"`
	Ref    PosIdent `@@`
}

// ReplaceNonModifiedStmt merges Other's not-modified slots into Object:
//
//	replacenonmodified main other snapshot
type ReplaceNonModifiedStmt struct {
	Pos    lexer.Position
	Object PosIdent `"replacenonmodified" @@ "other"`
	Other  PosIdent `@@`
}

// ClearModifiedStmt clears every modified bit on Object:
//
//	clearmodified main
type ClearModifiedStmt struct {
	Pos    lexer.Position
	Object PosIdent `"clearmodified" @@`
}

// RelabelStmt renames an object label throughout Object:
//
//	relabel main a1 -> a1summary
type RelabelStmt struct {
	Pos    lexer.Position
	Object PosIdent `"relabel" @@`
	Old    string   `@Ident "->"`
	New    string   `@Ident`
}

// PrintStmt renders Object with toString.
type PrintStmt struct {
	Pos    lexer.Position
	Object PosIdent `"print" @@`
}

// PrintModifiedStmt renders only Object's modified slots.
type PrintModifiedStmt struct {
	Pos    lexer.Position
	Object PosIdent `"printmodified" @@`
}

// DiffStmt renders the delta from Old to Object:
//
//	diff main old snapshot
type DiffStmt struct {
	Pos    lexer.Position
	Object PosIdent `"diff" @@ "old"`
	Old    PosIdent `@@`
}

// LabelsStmt renders every object label reachable from Object.
type LabelsStmt struct {
	Pos    lexer.Position
	Object PosIdent `"labels" @@`
}

// ValueLiteral is a Value constructor used on the right-hand side of set
// and setdefault statements.
type ValueLiteral struct {
	Pos     lexer.Position
	None    string        `@"none"`
	Unknown string        `| @"unknown"`
	Absent  *AbsentValue  `| @@`
	Present *PresentValue `| @@`
}

// AbsentValue is the "absent [modified]" value literal.
type AbsentValue struct {
	Pos      lexer.Position
	Keyword  string `@"absent"`
	Modified bool   `[ @"modified" ]`
}

// PresentValue is the "present <primitive> [labels a, b] [modified]" value
// literal.
type PresentValue struct {
	Pos       lexer.Position
	Keyword   string   `@"present"`
	Primitive string   `@String`
	Labels    []string `[ "labels" @Ident { "," @Ident } ]`
	Modified  bool     `[ @"modified" ]`
}
