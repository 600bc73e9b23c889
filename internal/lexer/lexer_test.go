package lexer

import (
	"testing"

	"dialogscript/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, toks []token.Token, expected []token.Kind) {
	t.Helper()
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens %v, got %d %v", len(expected), expected, len(got), got)
	}
	for i, k := range expected {
		if got[i] != k {
			t.Errorf("token %d: expected %s, got %s", i, k, got[i])
		}
	}
}

func TestMinimalLine(t *testing.T) {
	toks, err := Scan("Hello, world!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{token.TEXT, token.EOF})
	if toks[0].Value != "Hello, world!" {
		t.Errorf("expected text %q, got %q", "Hello, world!", toks[0].Value)
	}
}

func TestIndentDedent(t *testing.T) {
	src := "A\n  B\n  C\nD\n"
	toks, err := Scan(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{
		token.TEXT,
		token.INDENT, token.TEXT, token.TEXT,
		token.DEDENT, token.TEXT,
		token.EOF,
	})
}

func TestIndentMismatch(t *testing.T) {
	src := "A\n    B\n  C\n"
	_, err := Scan(src)
	if err == nil {
		t.Fatal("expected an indent mismatch error")
	}
	if err.Kind != "IndentMismatch" {
		t.Errorf("expected IndentMismatch, got %s", err.Kind)
	}
}

func TestBlankLinesProduceNoIndentEvents(t *testing.T) {
	src := "A\n\n   \nB\n"
	toks, err := Scan(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{token.TEXT, token.TEXT, token.EOF})
}

func TestCommandMode(t *testing.T) {
	toks, err := Scan("<<set $x = 1 + 2 * 3>>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{
		token.BEGIN_COMMAND, token.SET, token.VARIABLE, token.ASSIGN,
		token.NUMBER, token.PLUS, token.NUMBER, token.STAR, token.NUMBER,
		token.END_COMMAND, token.EOF,
	})
}

func TestOptionMode(t *testing.T) {
	toks, err := Scan("[[Go north|NorthRoom]]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{
		token.OPTION_START, token.TEXT, token.OPTION_DELIMIT, token.TEXT, token.OPTION_END, token.EOF,
	})
	if toks[1].Value != "Go north" || toks[3].Value != "NorthRoom" {
		t.Errorf("unexpected option text: %q / %q", toks[1].Value, toks[3].Value)
	}
}

func TestShortcutOption(t *testing.T) {
	toks, err := Scan("-> Yes\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{token.SHORTCUT_OPTION, token.TEXT, token.EOF})
}

func TestTextEndsAtCommandAndOption(t *testing.T) {
	toks, err := Scan("Hi <<set $x = 1>> there [[Door]]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{
		token.TEXT, token.BEGIN_COMMAND, token.SET, token.VARIABLE, token.ASSIGN,
		token.NUMBER, token.END_COMMAND, token.TEXT, token.OPTION_START, token.TEXT, token.OPTION_END,
		token.EOF,
	})
	if toks[0].Value != "Hi" {
		t.Errorf("expected trimmed text %q, got %q", "Hi", toks[0].Value)
	}
	if toks[7].Value != "there" {
		t.Errorf("expected trimmed text %q, got %q", "there", toks[7].Value)
	}
}

func TestStringEscapes(t *testing.T) {
	toks, err := Scan(`<<foo("a\"b\\c")>>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var str string
	for _, tok := range toks {
		if tok.Kind == token.STRING {
			str = tok.Value
		}
	}
	if str != `a"b\c` {
		t.Errorf("expected unescaped %q, got %q", `a"b\c`, str)
	}
}

func TestUnterminatedStringIsLexError(t *testing.T) {
	_, err := Scan(`<<set $x = "never closed>>`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Kind != "LexError" {
		t.Errorf("expected LexError, got %s", err.Kind)
	}
}

func TestUnterminatedCommandIsLexError(t *testing.T) {
	_, err := Scan("<<set $x = 1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Kind != "LexError" {
		t.Errorf("expected LexError, got %s", err.Kind)
	}
}

func TestFunctionCallIdentifier(t *testing.T) {
	toks, err := Scan("<<visited(\"Start\")>>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{
		token.BEGIN_COMMAND, token.FUNCTION, token.LEFT_PAREN, token.STRING, token.RIGHT_PAREN,
		token.END_COMMAND, token.EOF,
	})
}

func TestCRLFNormalization(t *testing.T) {
	toks, err := Scan("A\r\n  B\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{token.TEXT, token.INDENT, token.TEXT, token.DEDENT, token.EOF})
}

func TestEndOfInputEmitsTrailingDedents(t *testing.T) {
	toks, err := Scan("A\n  B\n    C\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks, []token.Kind{
		token.TEXT, token.INDENT, token.TEXT, token.INDENT, token.TEXT,
		token.DEDENT, token.DEDENT, token.EOF,
	})
}
