// Package parser provides lexing and parsing of ECL source text into a core.Document.
// This file provides token aliases used throughout the package.
package parser

import "github.com/leapstack-labs/ecltoml/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position
