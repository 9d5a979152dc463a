// Reporter formats AnalysisInvariantViolation the way the teacher's
// ErrorReporter formats CompilerError: a bold, colorized header followed by
// the offending operation and message. It is pure presentation — the error
// value itself stays a plain Go error comparable with errors.Is/errors.As.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders AnalysisInvariantViolation values for the CLI and LSP
// harnesses. It carries no state beyond the label used in the "source"
// line, so the zero value is usable.
type Reporter struct {
	// Source names where the violation was observed, e.g. a trace script
	// file path. Optional.
	Source string
}

// NewReporter builds a Reporter that attributes violations to source.
func NewReporter(source string) Reporter {
	return Reporter{Source: source}
}

// Format renders v as a short, colorized diagnostic.
func (r Reporter) Format(v *AnalysisInvariantViolation) string {
	bold := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s\n", bold("invariant violation"), v.Message))
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", dim("-->"), r.Source))
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", dim("in"), v.Op))
	return b.String()
}
