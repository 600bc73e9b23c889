package parser

import "dialogscript/internal/token"

// Cursor is a read-only index into a fixed token slice. Speculative parsing
// forks by copying the int index rather than the token queue itself, making
// Snapshot/Restore O(1) in time and memory.
type Cursor struct {
	tokens []token.Token
	pos    int
}

func newCursor(tokens []token.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() token.Token { return c.PeekAt(0) }

// PeekAt returns the token n positions ahead of the cursor, clamped to the
// trailing EOF token when n runs past the end of the stream.
func (c *Cursor) PeekAt(n int) token.Token {
	idx := c.pos + n
	if idx >= len(c.tokens) {
		idx = len(c.tokens) - 1
	}
	return c.tokens[idx]
}

// Advance consumes and returns the current token.
func (c *Cursor) Advance() token.Token {
	t := c.tokens[c.pos]
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return t
}

// Check reports whether the current token has kind k, without consuming it.
func (c *Cursor) Check(k token.Kind) bool { return c.Peek().Kind == k }

// Match consumes and reports true if the current token has kind k.
func (c *Cursor) Match(k token.Kind) bool {
	if c.Check(k) {
		c.Advance()
		return true
	}
	return false
}

// IsAtEnd reports whether the cursor sits on the trailing EOF token.
func (c *Cursor) IsAtEnd() bool { return c.Peek().Kind == token.EOF }

// Snapshot returns a mark that Restore can return the cursor to later.
func (c *Cursor) Snapshot() int { return c.pos }

// Restore returns the cursor to a mark previously returned by Snapshot.
func (c *Cursor) Restore(mark int) { c.pos = mark }
