package grammar

import (
	"github.com/alecthomas/participle/v2"
)

var outlineParser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Newline"),
	participle.UseLookahead(2),
)

// Parse skims source into a flat Program. It is more lenient than
// internal/parser.Parse (no indentation or statement structure is
// checked), but it returns an error when the lexer or grammar cannot
// place the text, such as an unterminated "<<" that reaches a newline or
// a "[[" with no closing "]]".
func Parse(source string) (*Program, error) {
	return outlineParser.ParseString("", source)
}
