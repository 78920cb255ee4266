// Package token defines the token types produced by the ECL lexer.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType reads clearly at call sites
type TokenType int32

//nolint:revive // ALL_CAPS names mirror the grammar's token spelling
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // server, max_conn
	NUMBER // 42, -3.14
	STRING // "hello"
	TRUE   // true
	FALSE  // false

	// Keywords
	DEF // def

	// Punctuation
	LBRACKET  // [
	RBRACKET  // ]
	ASSIGN    // =
	COLON     // :
	COMMA     // ,
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;

	// Multi-character punctuation
	ARRAY_OPEN  // #(
	RPAREN      // )
	DICT_OPEN   // $[
	DEFINE      // :=
	REF_OPEN    // .{
	REF_CLOSE   // }.
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// MarshalText encodes the type by name.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	TRUE:   "true",
	FALSE:  "false",

	DEF: "def",

	LBRACKET:  "[",
	RBRACKET:  "]",
	ASSIGN:    "=",
	COLON:     ":",
	COMMA:     ",",
	LBRACE:    "{",
	RBRACE:    "}",
	SEMICOLON: ";",

	ARRAY_OPEN: "#(",
	RPAREN:     ")",
	DICT_OPEN:  "$[",
	DEFINE:     ":=",
	REF_OPEN:   ".{",
	REF_CLOSE:  "}.",
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"def":   DEF,
	"true":  TRUE,
	"false": FALSE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a reserved word.
func IsKeyword(t TokenType) bool {
	return t == TRUE || t == FALSE || t == DEF
}

// IsPunctuation returns true if the token type is structural punctuation.
func IsPunctuation(t TokenType) bool {
	return t >= LBRACKET && t <= REF_CLOSE
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType `json:"type"`
	Literal string    `json:"literal"`
	Pos     Position  `json:"pos"`
}

// String returns a short description used in diagnostics, e.g. `"]"` or `IDENT "port"`.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	case STRING:
		return "string literal"
	default:
		return fmt.Sprintf("%q", t.Type.String())
	}
}
