// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"abstractobject/grammar"
	aerrors "abstractobject/internal/errors"
	"abstractobject/internal/options"
	"abstractobject/internal/script"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: aoc <file.aotrace>")
		os.Exit(1)
	}

	path := os.Args[1]
	program, err := grammar.ParseFile(path)
	if err != nil {
		// grammar.ParseFile already printed a diagnostic (caret-style for
		// syntax errors).
		os.Exit(1)
	}

	interp := script.NewInterpreter(os.Stdout, options.Default())
	if err := interp.Run(program); err != nil {
		reportRunError(path, err)
		os.Exit(1)
	}

	color.Green("trace completed: %s", path)
}

// reportRunError prints an interpreter failure, rendering an
// AnalysisInvariantViolation through the shared Reporter when the
// underlying cause is one.
func reportRunError(path string, err error) {
	se, ok := err.(*script.StatementError)
	if !ok {
		color.Red("error: %s", err)
		return
	}

	if violation, ok := se.Err.(*aerrors.AnalysisInvariantViolation); ok {
		reporter := aerrors.NewReporter(fmt.Sprintf("%s:%d:%d", path, se.Pos.Line, se.Pos.Column))
		fmt.Print(reporter.Format(violation))
		return
	}

	color.Red("%s:%d:%d: %s", path, se.Pos.Line, se.Pos.Column, se.Err)
}
