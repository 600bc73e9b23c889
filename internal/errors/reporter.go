// Package errors renders a *diag.Error as a Rust-style terminal
// diagnostic: a colored "error[Kind]: message" header, a "--> file:L:C"
// location line, the offending source line, and a caret marker under the
// column. It is a presentation layer only; it does not change what the
// core returns, it only formats it for the CLI and LSP surfaces.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"dialogscript/internal/diag"
)

// Reporter formats diag.Error values against one source file's text.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a Reporter over source, identified as filename in
// rendered location lines.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders err as a multi-line colored diagnostic.
func (r *Reporter) FormatError(err *diag.Error) string {
	var out strings.Builder

	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	out.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor("error"), err.Kind, err.Message))

	width := lineNumberWidth(err.Line)
	indent := strings.Repeat(" ", width)

	out.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, err.Line, err.Column))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if err.Line > 0 && err.Line <= len(r.lines) {
		lineContent := r.lines[err.Line-1]
		out.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%*d", width, err.Line)), dim("│"), lineContent))
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker(err.Column)))
	}

	if len(err.Expected) > 0 {
		helpColor := color.New(color.FgGreen).SprintFunc()
		out.WriteString(fmt.Sprintf("%s %s %s expected one of: %s\n",
			indent, dim("│"), helpColor("help:"), strings.Join(err.Expected, ", ")))
	}

	out.WriteString("\n")
	return out.String()
}

func marker(column int) string {
	spaces := strings.Repeat(" ", max(0, column-1))
	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	return spaces + markerColor("^")
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
