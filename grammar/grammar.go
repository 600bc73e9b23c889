package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is a lenient, single-pass skim of a dialogue-script document:
// a flat sequence of recognized fragments. Plain text lands as a Line
// entry and no indentation or statement structure is checked, so it
// produces an outline over many files the strict parser rejects; text the
// lexer or grammar cannot place makes Parse return an error.
type Program struct {
	Entries []*Entry `@@*`
}

type Entry struct {
	Pos      lexer.Position
	Shortcut *ShortcutOption `  @@`
	Option   *OptionLink     `| @@`
	Command  *Command        `| @@`
	Line     *Line           `| @@`
}

// ShortcutOption is a "-> Label" header. Label is absent for a bare "->".
type ShortcutOption struct {
	Pos   lexer.Position
	Arrow string  `@Arrow`
	Label *string `@Text?`
}

// OptionLink is a "[[Label|Destination]]" or "[[Destination]]" link.
type OptionLink struct {
	Pos    lexer.Position
	Open   string  `@OptionOpen`
	First  string  `@OptionText`
	Second *string `[ Pipe @OptionText ]`
	Close  string  `@OptionClose`
}

// Command is anything between << and >>: if/elseif/else/endif/set or a
// custom command. Keyword is the first identifier, Rest the remaining
// raw tokens joined by the caller for display.
type Command struct {
	Pos     lexer.Position
	Open    string   `@CommandOpen`
	Keyword *string  `@Ident?`
	Rest    []string `@( Ident | Variable | Number | String | Op )*`
	Close   string   `@CommandClose`
}

// Line is ordinary dialogue text outside any command or option syntax.
type Line struct {
	Pos  lexer.Position
	Text string `@Text`
}
