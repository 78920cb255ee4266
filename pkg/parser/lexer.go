package parser

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/token"
)

// eof marks the end of input in Lexer.ch.
const eof rune = -1

// Lexer tokenizes ECL input. Errors are recorded, never returned, so a
// single pass reports every lexical defect.
type Lexer struct {
	input   string
	pos     int  // byte offset of ch
	readPos int  // byte offset after ch
	ch      rune // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based, in characters)

	// Comments collected during lexing
	Comments []*token.Comment

	errors diag.List
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Errors returns the lexical errors recorded so far.
func (l *Lexer) Errors() diag.List {
	return l.errors
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = eof
		l.col++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += w
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	switch l.ch {
	case eof:
		return Token{Type: token.EOF, Pos: pos}
	case '[':
		return l.single(token.LBRACKET, pos)
	case ']':
		return l.single(token.RBRACKET, pos)
	case '=':
		return l.single(token.ASSIGN, pos)
	case ',':
		return l.single(token.COMMA, pos)
	case '{':
		return l.single(token.LBRACE, pos)
	case ')':
		return l.single(token.RPAREN, pos)
	case ';':
		return l.single(token.SEMICOLON, pos)
	case ':':
		if l.peekChar() == '=' {
			return l.double(token.DEFINE, pos)
		}
		return l.single(token.COLON, pos)
	case '}':
		if l.peekChar() == '.' {
			return l.double(token.REF_CLOSE, pos)
		}
		return l.single(token.RBRACE, pos)
	case '#':
		if l.peekChar() == '(' {
			return l.double(token.ARRAY_OPEN, pos)
		}
	case '$':
		if l.peekChar() == '[' {
			return l.double(token.DICT_OPEN, pos)
		}
	case '.':
		if l.peekChar() == '{' {
			return l.double(token.REF_OPEN, pos)
		}
	case '"':
		return l.readString(pos)
	case '+', '-':
		if isDigit(l.peekChar()) {
			return Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos}
		}
	default:
		switch {
		case isLetter(l.ch):
			lit := l.readIdentifier()
			return Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
		case isDigit(l.ch):
			return Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos}
		}
	}

	return l.illegal(pos)
}

// single consumes one character and returns a token of type t.
func (l *Lexer) single(t TokenType, pos Position) Token {
	lit := string(l.ch)
	l.readChar()
	return Token{Type: t, Literal: lit, Pos: pos}
}

// double consumes two characters and returns a token of type t.
func (l *Lexer) double(t TokenType, pos Position) Token {
	start := l.pos
	l.readChar()
	l.readChar()
	return Token{Type: t, Literal: l.input[start:l.pos], Pos: pos}
}

// illegal records an InvalidChar error and skips the offending character.
func (l *Lexer) illegal(pos Position) Token {
	lit := l.input[l.pos:l.readPos]
	if l.ch == utf8.RuneError && len(lit) == 1 {
		l.addError(diag.InvalidChar, pos, "invalid UTF-8 byte %#x", lit[0])
	} else {
		l.addError(diag.InvalidChar, pos, diag.ErrInvalidChar, l.ch)
	}
	l.readChar()
	return Token{Type: token.ILLEGAL, Literal: lit, Pos: pos}
}

func (l *Lexer) addError(kind diag.Kind, pos Position, format string, args ...any) {
	l.errors.Add(diag.Lex(kind, pos, format, args...))
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '\\' {
			l.collectLineComment()
			continue
		}

		break
	}
}

// collectLineComment collects a `\` comment up to the end of the line.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	for l.ch != '\n' && l.ch != eof {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Text: strings.TrimRight(l.input[startOffset:l.pos], "\r"),
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readString reads a double-quoted string literal and decodes its escapes.
// A string left open at the end of the line or input is reported and
// returned with the content read so far; lexing resumes at the newline.
func (l *Lexer) readString(start Position) Token {
	l.readChar() // skip opening quote

	var sb strings.Builder
	for {
		switch l.ch {
		case eof, '\n':
			l.addError(diag.UnterminatedString, start, diag.ErrUnterminatedString)
			return Token{Type: token.STRING, Literal: sb.String(), Pos: start}
		case '"':
			l.readChar() // skip closing quote
			return Token{Type: token.STRING, Literal: sb.String(), Pos: start}
		case '\\':
			l.readEscape(&sb)
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// readEscape decodes one escape sequence starting at a backslash.
func (l *Lexer) readEscape(sb *strings.Builder) {
	escPos := l.currentPos()
	l.readChar() // skip backslash

	switch l.ch {
	case eof, '\n':
		// Left for readString to report as unterminated.
		return
	case '"', '\\', '/':
		sb.WriteRune(l.ch)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		if r, ok := l.readUnicodeEscape(); ok {
			sb.WriteRune(r)
			return
		}
		l.addError(diag.InvalidChar, escPos, diag.ErrInvalidEscape, `\u`)
		return
	default:
		l.addError(diag.InvalidChar, escPos, diag.ErrInvalidEscape, `\`+string(l.ch))
		sb.WriteRune(l.ch)
	}
	l.readChar()
}

// readUnicodeEscape reads the XXXX of \uXXXX. On success the lexer is left
// after the last hex digit. On failure only the valid digits are consumed.
func (l *Lexer) readUnicodeEscape() (rune, bool) {
	var r rune
	for i := 0; i < 4; i++ {
		d, ok := hexValue(l.peekChar())
		if !ok {
			l.readChar() // step past 'u' or the last valid digit
			return 0, false
		}
		l.readChar()
		r = r<<4 | d
	}
	l.readChar()
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}

// readIdentifier reads an identifier: a letter followed by letters, digits or '_'.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal: optional sign, digits, optional fraction.
func (l *Lexer) readNumber() string {
	start := l.pos

	if l.ch == '+' || l.ch == '-' {
		l.readChar()
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

// isLetter returns true if ch is an ASCII letter.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if ch is a decimal digit.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func hexValue(ch rune) (rune, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

// Tokenize returns all tokens from the input, ending with EOF.
func Tokenize(input string) []Token {
	var tokens []Token
	for tok := range Tokens(input) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Tokens returns the token stream of input as a lazy sequence ending with EOF.
// Each iteration starts a fresh lexer, so the sequence can be ranged over again.
func Tokens(input string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := NewLexer(input)
		for {
			tok := l.NextToken()
			if !yield(tok) || tok.Type == token.EOF {
				return
			}
		}
	}
}
