// Package parser provides lexing and parsing of ECL source text.
//
// # Usage
//
//	doc, errs := parser.Parse(src)
//	if errs.HasErrors() {
//	    // report errs
//	}
//
// # Grammar Overview
//
// The parser implements a recursive descent parser with one token of lookahead:
//
//	document     → (constant_decl | section)*
//	constant_decl→ "def" IDENT ":=" value [";"]
//	section      → "[" key "]" assignment*
//	assignment   → key "=" value
//	value        → STRING | NUMBER | "true" | "false" | array | dict | const_ref
//	array        → "#(" [value ("," value)*] ")"
//	dict         → "$[" [entry ("," entry)*] "]"
//	entry        → key ":" value
//	const_ref    → ".{" IDENT "}."
//	key          → IDENT | "true" | "false"
//
// "def" is reserved: it always starts a constant declaration, so it can be
// neither a key nor a constant name.
//
// Errors never stop the parse. After a syntax error the parser discards
// tokens up to the next "[", "def" or end of input and carries on, so one
// run reports every independent defect.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/token"
)

// Parser parses ECL into a core.Document.
type Parser struct {
	lexer  *Lexer
	token  Token // current token
	prev   Token // previously consumed token
	errors diag.List

	doc       *core.Document
	constants map[string]*core.ConstantDef
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{
		lexer:     NewLexer(input),
		doc:       &core.Document{},
		constants: make(map[string]*core.ConstantDef),
	}
	p.nextToken()
	return p
}

// Parse parses input and returns the document together with every lexical
// and syntax error found, sorted by position.
func Parse(input string) (*core.Document, diag.List) {
	p := NewParser(input)
	doc := p.ParseDocument()
	errs := p.AllErrors()
	errs.Sort()
	return doc, errs
}

// ParseDocument consumes the whole input.
func (p *Parser) ParseDocument() *core.Document {
	for !p.check(token.EOF) {
		switch p.token.Type {
		case token.DEF:
			p.parseConstantDecl()
		case token.LBRACKET:
			p.parseSection()
		default:
			p.unexpected("section header or constant definition")
			p.synchronize()
		}
	}
	return p.doc
}

// Errors returns the syntax errors recorded so far.
func (p *Parser) Errors() diag.List {
	return p.errors
}

// LexErrors returns the lexical errors recorded by the underlying lexer.
func (p *Parser) LexErrors() diag.List {
	return p.lexer.Errors()
}

// AllErrors returns lexical errors followed by syntax errors, unsorted.
func (p *Parser) AllErrors() diag.List {
	var all diag.List
	all.Append(p.lexer.Errors())
	all.Append(p.errors)
	return all
}

// Comments returns the comments collected by the lexer.
func (p *Parser) Comments() []*token.Comment {
	return p.lexer.Comments
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.prev = p.token
	p.token = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkKey reports whether the current token can name a section or key.
func (p *Parser) checkKey() bool {
	switch p.token.Type {
	case token.IDENT, token.TRUE, token.FALSE:
		return true
	}
	return false
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// atSyncPoint reports whether the current token starts a top-level item.
func (p *Parser) atSyncPoint() bool {
	switch p.token.Type {
	case token.EOF, token.LBRACKET, token.DEF:
		return true
	}
	return false
}

// synchronize discards tokens until the start of a section, a constant
// declaration or the end of input.
func (p *Parser) synchronize() {
	for !p.atSyncPoint() {
		p.nextToken()
	}
}

// addError records a syntax error at the current token. Nothing is recorded
// when the current token is ILLEGAL: the lexer has already reported it.
func (p *Parser) addError(kind diag.Kind, expected, msg string) {
	if p.check(token.ILLEGAL) {
		return
	}
	p.errors.Add(diag.Parse(kind, p.token.Pos, expected, p.token.String(), msg))
}

// unexpected records an UnexpectedToken error at the current token.
func (p *Parser) unexpected(expected string) {
	p.addError(diag.UnexpectedToken, expected, fmt.Sprintf(diag.ErrUnexpectedToken, p.token, expected))
}

// ---------- Top-level Items ----------

// parseConstantDecl parses: "def" IDENT ":=" value [";"]
func (p *Parser) parseConstantDecl() {
	p.nextToken() // consume def

	if !p.check(token.IDENT) {
		p.addError(diag.InvalidConstantName, "identifier", fmt.Sprintf(diag.ErrInvalidConstantName, p.token))
		p.synchronize()
		return
	}
	name := p.token
	p.nextToken()

	first, duplicate := p.constants[name.Literal]
	if duplicate {
		p.errors.Add(diag.Diagnostic{
			Phase:   diag.PhaseParse,
			Kind:    diag.DuplicateConstantName,
			Pos:     name.Pos,
			Message: fmt.Sprintf(diag.ErrDuplicateConstant, name.Literal, first.NamePos),
			Name:    name.Literal,
		})
	}

	if !p.check(token.DEFINE) {
		p.unexpected(`":="`)
		p.synchronize()
		return
	}
	op := p.token
	p.nextToken()

	value, ok := p.parseValue(op)
	if !ok {
		p.synchronize()
		return
	}
	p.match(token.SEMICOLON)

	if duplicate {
		return // the first definition wins
	}
	def := &core.ConstantDef{Name: name.Literal, NamePos: name.Pos, Value: value}
	p.constants[def.Name] = def
	p.doc.Constants = append(p.doc.Constants, def)
}

// parseSection parses: "[" key "]" assignment*
func (p *Parser) parseSection() {
	p.nextToken() // consume [

	if !p.checkKey() {
		p.addError(diag.InvalidSectionHeader, "section name",
			fmt.Sprintf(diag.ErrInvalidSectionHeader, "section name", p.token))
		p.synchronize()
		return
	}
	name := p.token
	p.nextToken()

	if !p.check(token.RBRACKET) {
		p.addError(diag.InvalidSectionHeader, `"]"`,
			fmt.Sprintf(diag.ErrInvalidSectionHeader, `"]"`, p.token))
		p.synchronize()
		return
	}
	p.nextToken()

	section := &core.Section{Name: name.Literal, NamePos: name.Pos}
	p.doc.Sections = append(p.doc.Sections, section)

	for p.checkKey() {
		if !p.parseAssignment(section) {
			p.synchronize()
			return
		}
	}

	if !p.atSyncPoint() {
		p.unexpected("key, section header or constant definition")
		p.synchronize()
	}
}

// parseAssignment parses: key "=" value
func (p *Parser) parseAssignment(section *core.Section) bool {
	key := p.token
	p.nextToken()

	if !p.check(token.ASSIGN) {
		p.unexpected(`"="`)
		return false
	}
	op := p.token
	p.nextToken()

	value, ok := p.parseValue(op)
	if !ok {
		return false
	}

	section.Assignments = append(section.Assignments, &core.Assignment{
		Key:    key.Literal,
		KeyPos: key.Pos,
		Value:  value,
	})
	return true
}
