package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dialogscript/grammar"
)

func TestParseShortcutOptionWithLabel(t *testing.T) {
	program, err := grammar.Parse("-> Yes\nHello\n-> No\n")
	assert.Nil(t, err)
	assert.Len(t, program.Entries, 3)

	assert.NotNil(t, program.Entries[0].Shortcut)
	assert.Equal(t, "Yes", *program.Entries[0].Shortcut.Label)

	assert.NotNil(t, program.Entries[1].Line)
	assert.Equal(t, "Hello", program.Entries[1].Line.Text)

	assert.NotNil(t, program.Entries[2].Shortcut)
	assert.Equal(t, "No", *program.Entries[2].Shortcut.Label)
}

func TestParseOptionLinkWithAndWithoutLabel(t *testing.T) {
	program, err := grammar.Parse("[[Go north|NorthRoom]]\n[[NorthRoom]]\n")
	assert.Nil(t, err)
	assert.Len(t, program.Entries, 2)

	first := program.Entries[0].Option
	assert.Equal(t, "Go north", first.DisplayLabel())
	assert.Equal(t, "NorthRoom", first.Destination())

	second := program.Entries[1].Option
	assert.Equal(t, "", second.DisplayLabel())
	assert.Equal(t, "NorthRoom", second.Destination())
}

func TestParseCommandHeaderJoinsTokens(t *testing.T) {
	program, err := grammar.Parse("<<set $x = 1>>\n")
	assert.Nil(t, err)
	assert.Len(t, program.Entries, 1)

	cmd := program.Entries[0].Command
	assert.Equal(t, "set", *cmd.Keyword)
	assert.Equal(t, "set $x = 1", cmd.Source())
}

func TestParseUnterminatedCommandFailsTheLenientGrammarToo(t *testing.T) {
	_, err := grammar.Parse("<<if $x\nHello\n")
	assert.NotNil(t, err)
}
