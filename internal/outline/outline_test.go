package outline

import "testing"

func TestBuildRecognizesShortcutOptionLabel(t *testing.T) {
	symbols := Build("-> Yes\nHello\n-> No\n")
	assertKind(t, symbols, 0, SymbolShortcutOption, "-> Yes")
	assertKind(t, symbols, 1, SymbolLine, "Hello")
	assertKind(t, symbols, 2, SymbolShortcutOption, "-> No")
}

func TestBuildRecognizesOptionLinkWithAndWithoutLabel(t *testing.T) {
	symbols := Build("[[Go north|NorthRoom]]\n[[NorthRoom]]\n")
	assertKind(t, symbols, 0, SymbolOptionLink, "Go north -> NorthRoom")
	assertKind(t, symbols, 1, SymbolOptionLink, "NorthRoom")
}

func TestBuildRecognizesCommandHeader(t *testing.T) {
	symbols := Build("<<set $x = 1>>\n")
	assertKind(t, symbols, 0, SymbolCommand, "<<set $x = 1>>")
}

func TestBuildFallsBackOnUnbalancedSyntax(t *testing.T) {
	symbols := Build("<<if $x\nHello\n")
	if len(symbols) != 2 {
		t.Fatalf("expected a line-based fallback to still yield 2 entries, got %d", len(symbols))
	}
	if symbols[1].Kind != SymbolLine {
		t.Errorf("expected plain text line to stay SymbolLine, got %s", symbols[1].Kind)
	}
}

func TestBuildSkipsBlankLines(t *testing.T) {
	symbols := Build("Hello\n\n\nWorld\n")
	if len(symbols) != 2 {
		t.Fatalf("expected blank lines to be skipped, got %d entries", len(symbols))
	}
}

func assertKind(t *testing.T, symbols []Symbol, idx int, kind SymbolKind, name string) {
	t.Helper()
	if idx >= len(symbols) {
		t.Fatalf("expected at least %d entries, got %d", idx+1, len(symbols))
	}
	if symbols[idx].Kind != kind {
		t.Errorf("entry %d: expected kind %s, got %s", idx, kind, symbols[idx].Kind)
	}
	if symbols[idx].Name != name {
		t.Errorf("entry %d: expected name %q, got %q", idx, name, symbols[idx].Name)
	}
}
