// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"dialogscript/internal/ast"
	"dialogscript/internal/errors"
	"dialogscript/internal/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: dialogscript-cli <file.dlg>")
		os.Exit(1)
	}

	startTime := time.Now()
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	node, parseErr := parser.Parse(string(source))
	duration := time.Since(startTime)

	if parseErr != nil {
		reporter := errors.NewReporter(path, string(source))
		fmt.Print(reporter.FormatError(parseErr))
		color.Red("Compilation failed after %s", formatDuration(duration))
		os.Exit(1)
	}

	fmt.Println(ast.Print(node))
	color.Green("Successfully processed %s in %s", path, formatDuration(duration))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
