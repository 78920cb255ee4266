package token

import "strings"

// Comment represents a `\` line comment with its position.
// Comments never reach the parser. The lexer collects them and the emitter
// writes them back out as TOML comments.
type Comment struct {
	Text string // includes the leading backslash
	Span Span
}

// Body returns the comment text without the marker and surrounding spaces.
func (c *Comment) Body() string {
	return strings.TrimSpace(strings.TrimPrefix(c.Text, `\`))
}
