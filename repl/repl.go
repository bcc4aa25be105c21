// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"dvrtl/grammar"
	"dvrtl/internal/errors"
	"dvrtl/internal/transform"
)

const PROMPT = ">> "

// Start reads statements line by line. Accepted statements accumulate
// into one growing circuit, so definitions made earlier in the session
// stay visible, and each line echoes its resolved canonical form.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	var accepted []string

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		source := strings.Join(append(append([]string{}, accepted...), line), "\n")
		tree, err := grammar.Parse("repl", source)
		if err != nil {
			grammar.ReportParseError(source, err)
			continue
		}

		circuit, err := transform.Transform(tree)
		if err != nil {
			var terr *errors.TransformError
			if stderrors.As(err, &terr) {
				reporter := errors.NewReporter("repl", source)
				fmt.Fprint(out, reporter.Format(terr))
			} else {
				fmt.Fprintln(out, err)
			}
			continue
		}

		accepted = append(accepted, line)
		fmt.Fprint(out, circuit.Stmts[len(circuit.Stmts)-1].String()+"\n")
	}
}
