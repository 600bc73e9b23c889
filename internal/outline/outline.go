// Package outline builds a flat document-symbol skim of a dialogue-script
// file for the LSP. It trades correctness for availability: where
// internal/parser halts on the first malformed token, outline always
// returns its best guess, because textDocument/documentSymbol has to keep
// working while the user is mid-edit.
package outline

import (
	"strings"

	"dialogscript/grammar"
)

// SymbolKind distinguishes the handful of outline entries the LSP needs
// to render as document symbols.
type SymbolKind int

const (
	SymbolLine SymbolKind = iota
	SymbolShortcutOption
	SymbolOptionLink
	SymbolCommand
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolShortcutOption:
		return "ShortcutOption"
	case SymbolOptionLink:
		return "OptionLink"
	case SymbolCommand:
		return "Command"
	default:
		return "Line"
	}
}

// Symbol is one entry in a document's outline.
type Symbol struct {
	Kind   SymbolKind
	Name   string
	Line   int
	Column int
}

// Build skims source and returns its outline. It never returns an error:
// when the lenient grammar itself can't make sense of the text (an
// unterminated "[[" or "<<" with no closer anywhere in the file), Build
// falls back to a raw line-based scan rather than reporting nothing.
func Build(source string) []Symbol {
	program, err := grammar.Parse(source)
	if err != nil {
		return scanLines(source)
	}
	return fromProgram(program)
}

func fromProgram(program *grammar.Program) []Symbol {
	symbols := make([]Symbol, 0, len(program.Entries))
	for _, entry := range program.Entries {
		sym, ok := fromEntry(entry)
		if ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func fromEntry(entry *grammar.Entry) (Symbol, bool) {
	pos := entry.Pos
	switch {
	case entry.Shortcut != nil:
		name := "->"
		if entry.Shortcut.Label != nil {
			name = "-> " + strings.TrimSpace(*entry.Shortcut.Label)
		}
		return Symbol{Kind: SymbolShortcutOption, Name: name, Line: pos.Line, Column: pos.Column}, true
	case entry.Option != nil:
		dest := entry.Option.Destination()
		label := entry.Option.DisplayLabel()
		name := dest
		if label != "" {
			name = label + " -> " + dest
		}
		return Symbol{Kind: SymbolOptionLink, Name: name, Line: pos.Line, Column: pos.Column}, true
	case entry.Command != nil:
		return Symbol{Kind: SymbolCommand, Name: "<<" + entry.Command.Source() + ">>", Line: pos.Line, Column: pos.Column}, true
	case entry.Line != nil:
		text := strings.TrimSpace(entry.Line.Text)
		if text == "" {
			return Symbol{}, false
		}
		return Symbol{Kind: SymbolLine, Name: text, Line: pos.Line, Column: pos.Column}, true
	default:
		return Symbol{}, false
	}
}

// scanLines is the last-resort fallback used when even the lenient
// grammar fails to parse (an unbalanced "[[" or "<<" with no matching
// closer anywhere in the document). It classifies each non-blank line
// by its leading marker without attempting to tokenize it at all.
func scanLines(source string) []Symbol {
	var symbols []Symbol
	for i, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		sym := Symbol{Name: line, Line: i + 1, Column: 1}
		switch {
		case strings.HasPrefix(line, "->"):
			sym.Kind = SymbolShortcutOption
		case strings.HasPrefix(line, "[[") || strings.HasSuffix(line, "]]"):
			sym.Kind = SymbolOptionLink
		case strings.HasPrefix(line, "<<") || strings.HasSuffix(line, ">>"):
			sym.Kind = SymbolCommand
		default:
			sym.Kind = SymbolLine
		}
		symbols = append(symbols, sym)
	}
	return symbols
}
