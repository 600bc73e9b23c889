package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer feeds the lenient outline grammar below. It mirrors the surface
// syntax internal/lexer recognizes strictly, but as a single flat token
// stream with no indent-stack bookkeeping. Outside commands and options,
// anything but a newline, a lone '<' or a lone '[' falls through to Text.
// Inside a command, a character with no rule (a newline, an unterminated
// string) is a lexing error, which Parse returns.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"CommandOpen", `<<`, lexer.Push("Command")},
		{"OptionOpen", `\[\[`, lexer.Push("Option")},
		{"Arrow", `->[ \t]*`, nil},
		{"Newline", `\r?\n`, nil},
		{"Text", `[^\n<\[]+`, nil},
	},
	"Command": {
		{"CommandClose", `>>`, lexer.Pop()},
		{"Whitespace", `[ \t]+`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Variable", `\$[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Number", `-?[0-9]+(\.[0-9]+)?`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Op", `(\|\||&&|==|!=|<=|>=|\+=|-=|\*=|/=|[-+*/<>=!(),])`, nil},
	},
	"Option": {
		{"OptionClose", `\]\]`, lexer.Pop()},
		{"Pipe", `\|`, nil},
		{"OptionText", `[^\]|]+`, nil},
	},
})
