package parser

// Value parsing.
//
//	value     → STRING | NUMBER | "true" | "false" | array | dict | const_ref
//	array     → "#(" [value ("," value)*] ")"
//	dict      → "$[" [entry ("," entry)*] "]"
//	entry     → key ":" value
//	const_ref → ".{" IDENT "}."

import (
	"fmt"

	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/token"
)

// parseValue parses a value. after is the token that required it
// (`=`, `:=`, `:`, `#(` or `,`) and is used for error reporting.
func (p *Parser) parseValue(after Token) (core.Value, bool) {
	tok := p.token
	switch tok.Type {
	case token.STRING:
		p.nextToken()
		return &core.String{Value: tok.Literal, ValuePos: tok.Pos}, true
	case token.NUMBER:
		if kind, ok := core.NumberFits(tok.Literal); !ok {
			p.errors.Add(diag.Parse(diag.NumberOutOfRange, tok.Pos, kind, tok.String(),
				fmt.Sprintf(diag.ErrNumberOutOfRange, tok.Literal, kind)))
		}
		p.nextToken()
		return &core.Number{Raw: tok.Literal, ValuePos: tok.Pos}, true
	case token.TRUE, token.FALSE:
		p.nextToken()
		return &core.Bool{Value: tok.Type == token.TRUE, ValuePos: tok.Pos}, true
	case token.ARRAY_OPEN:
		return p.parseArray()
	case token.DICT_OPEN:
		return p.parseDict()
	case token.REF_OPEN:
		return p.parseConstRef()
	}

	if p.isMissingValue(after) {
		p.addError(diag.EmptyValue, "value", fmt.Sprintf(diag.ErrEmptyValue, after.Literal))
		return nil, false
	}
	if tok.Type == token.IDENT {
		p.addError(diag.UnexpectedToken, "value",
			fmt.Sprintf(diag.ErrUnexpectedToken+" (use .{%s}. to reference a constant)", tok, "value", tok.Literal))
		return nil, false
	}
	p.unexpected("value")
	return nil, false
}

// isMissingValue reports whether the current token shows that the value
// after `after` was left out entirely, rather than written wrongly.
func (p *Parser) isMissingValue(after Token) bool {
	switch p.token.Type {
	case token.EOF, token.COMMA, token.RPAREN, token.RBRACKET, token.REF_CLOSE,
		token.SEMICOLON, token.LBRACKET, token.DEF:
		return true
	case token.IDENT:
		return p.token.Pos.Line > after.Pos.Line
	}
	return false
}

// closingError reports a missing closing delimiter. When the current token
// cannot plausibly continue the construct (end of input, a new top-level
// item, or a new line starting with a key) the delimiter is reported as
// missing; otherwise the current token is reported as unexpected.
func (p *Parser) closingError(closer TokenType, what string, open Token) {
	missing := p.atSyncPoint() ||
		(p.check(token.IDENT) && p.token.Pos.Line > p.prev.Pos.Line)
	if missing {
		p.addError(diag.MissingClosingDelimiter, fmt.Sprintf("%q", closer.String()),
			fmt.Sprintf(diag.ErrMissingClosing, closer.String(), what, open.Pos))
		return
	}
	if closer == token.REF_CLOSE {
		p.unexpected(`"}."`)
		return
	}
	p.unexpected(fmt.Sprintf(`"," or %q`, closer.String()))
}

// parseArray parses: "#(" [value ("," value)*] ")"
func (p *Parser) parseArray() (core.Value, bool) {
	open := p.token
	p.nextToken()

	arr := &core.Array{ValuePos: open.Pos}
	if p.match(token.RPAREN) {
		return arr, true
	}

	after := open
	for {
		if p.atSyncPoint() {
			p.closingError(token.RPAREN, "array", open)
			return nil, false
		}
		elem, ok := p.parseValue(after)
		if !ok {
			return nil, false
		}
		arr.Elems = append(arr.Elems, elem)

		if p.check(token.COMMA) {
			after = p.token
			p.nextToken()
			continue
		}
		if p.match(token.RPAREN) {
			return arr, true
		}
		p.closingError(token.RPAREN, "array", open)
		return nil, false
	}
}

// parseDict parses: "$[" [entry ("," entry)*] "]"
func (p *Parser) parseDict() (core.Value, bool) {
	open := p.token
	p.nextToken()

	dict := &core.Dict{ValuePos: open.Pos}
	if p.match(token.RBRACKET) {
		return dict, true
	}

	for {
		if !p.checkKey() {
			if p.atSyncPoint() {
				p.closingError(token.RBRACKET, "dictionary", open)
			} else {
				p.unexpected("dictionary key")
			}
			return nil, false
		}
		key := p.token
		p.nextToken()

		if !p.check(token.COLON) {
			p.unexpected(`":"`)
			return nil, false
		}
		colon := p.token
		p.nextToken()

		value, ok := p.parseValue(colon)
		if !ok {
			return nil, false
		}
		dict.Entries = append(dict.Entries, &core.Entry{Key: key.Literal, KeyPos: key.Pos, Value: value})

		if p.match(token.COMMA) {
			continue
		}
		if p.match(token.RBRACKET) {
			return dict, true
		}
		p.closingError(token.RBRACKET, "dictionary", open)
		return nil, false
	}
}

// parseConstRef parses: ".{" IDENT "}."
func (p *Parser) parseConstRef() (core.Value, bool) {
	open := p.token
	p.nextToken()

	if !p.check(token.IDENT) {
		p.unexpected("constant name")
		return nil, false
	}
	name := p.token
	p.nextToken()

	if !p.match(token.REF_CLOSE) {
		p.closingError(token.REF_CLOSE, "constant reference", open)
		return nil, false
	}
	return &core.ConstRef{Name: name.Literal, ValuePos: open.Pos}, true
}
