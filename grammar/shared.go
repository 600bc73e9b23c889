package grammar

import "strings"

// Destination returns the link target an OptionLink points at: the
// second bracketed segment when a label is present ("[[Label|Dest]]"),
// otherwise the only segment ("[[Dest]]").
func (o *OptionLink) Destination() string {
	if o.Second != nil {
		return strings.TrimSpace(*o.Second)
	}
	return strings.TrimSpace(o.First)
}

// DisplayLabel returns the label half of a "[[Label|Dest]]" link, or
// empty when the link carries no separate label.
func (o *OptionLink) DisplayLabel() string {
	if o.Second == nil {
		return ""
	}
	return strings.TrimSpace(o.First)
}

// Source reconstructs the command's raw text between << and >>, the
// same shape internal/ast.Statement.Command uses for a custom command.
func (c *Command) Source() string {
	var parts []string
	if c.Keyword != nil {
		parts = append(parts, *c.Keyword)
	}
	parts = append(parts, c.Rest...)
	return strings.Join(parts, " ")
}
