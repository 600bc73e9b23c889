// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"

	"dialogscript/internal/ast"
	"dialogscript/internal/errors"
	"dialogscript/internal/parser"
)

const PROMPT = ">> "

// Start runs a line-at-a-time lex+parse+print loop: each line entered is
// parsed as a standalone document and its AST printed back, the same
// round-trip cmd/dialogscript-cli performs on a whole file.
func Start(in io.Reader) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Print(PROMPT)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		node, err := parser.Parse(line)
		if err != nil {
			reporter := errors.NewReporter("<repl>", line)
			fmt.Print(reporter.FormatError(err))
			continue
		}

		fmt.Printf("AST:\n%s", ast.Print(node))
	}
}
