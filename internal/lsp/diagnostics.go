package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"abstractobject/internal/script"
)

// ConvertParseError transforms a participle parse error into an LSP
// diagnostic, adapted from the teacher's ConvertParseErrors /
// ConvertScanErrors: both collapse to a single participle.Error type here
// since the trace script lexer has no separate scan-error phase.
func ConvertParseError(err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    zeroRange(),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("aotrace-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(pos.Line - 1),
				Character: uint32(pos.Column - 1),
			},
			End: protocol.Position{
				Line:      uint32(pos.Line - 1),
				Character: uint32(pos.Column + 5),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("aotrace-parser"),
		Message:  pe.Message(),
	}}
}

// ConvertStatementError transforms a script.StatementError — which may wrap
// an AnalysisInvariantViolation raised by the abstract object core, or a
// plain script-level error such as an undeclared object reference — into an
// LSP diagnostic at the offending statement's position.
func ConvertStatementError(err error) []protocol.Diagnostic {
	se, ok := err.(*script.StatementError)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    zeroRange(),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("aotrace-interpreter"),
			Message:  err.Error(),
		}}
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(se.Pos.Line - 1),
				Character: uint32(se.Pos.Column - 1),
			},
			End: protocol.Position{
				Line:      uint32(se.Pos.Line - 1),
				Character: uint32(se.Pos.Column + 5),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("aotrace-interpreter"),
		Message:  se.Err.Error(),
	}}
}

func zeroRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 1},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
