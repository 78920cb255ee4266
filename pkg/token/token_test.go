package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"def", DEF},
		{"true", TRUE},
		{"false", FALSE},
		{"server", IDENT},
		{"True", IDENT},
		{"define", IDENT},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.ident))
		})
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "#(", ARRAY_OPEN.String())
	assert.Equal(t, "}.", REF_CLOSE.String())
	assert.Equal(t, ":=", DEFINE.String())
	assert.Equal(t, "TOKEN(999)", TokenType(999).String())

	text, err := DEFINE.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, ":=", string(text))
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "end of input", Token{Type: EOF}.String())
	assert.Equal(t, `IDENT "port"`, Token{Type: IDENT, Literal: "port"}.String())
	assert.Equal(t, `"]"`, Token{Type: RBRACKET, Literal: "]"}.String())
}

func TestPosition_Before(t *testing.T) {
	a := Position{Line: 1, Column: 5}
	b := Position{Line: 2, Column: 1}
	c := Position{Line: 2, Column: 3}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, c.Before(b))
	assert.False(t, c.Before(c))
	assert.Equal(t, "2:3", c.String())
}

func TestComment_Body(t *testing.T) {
	c := &Comment{Text: `\ listen address  `}
	assert.Equal(t, "listen address", c.Body())
}

func TestIsPunctuation(t *testing.T) {
	assert.True(t, IsPunctuation(LBRACKET))
	assert.True(t, IsPunctuation(REF_CLOSE))
	assert.False(t, IsPunctuation(IDENT))
	assert.False(t, IsPunctuation(DEF))
}
