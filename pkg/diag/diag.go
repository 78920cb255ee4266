// Package diag defines the diagnostic records shared by every translation phase
// and the ordering discipline applied before they reach the caller.
package diag

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ecltoml/pkg/token"
)

// Diagnostic is a single defect found in the source text.
type Diagnostic struct {
	Phase    Phase          `json:"phase"`
	Kind     Kind           `json:"kind"`
	Pos      token.Position `json:"pos"`
	Message  string         `json:"message"`
	Expected string         `json:"expected,omitempty"` // parse errors: what the grammar wanted
	Found    string         `json:"found,omitempty"`    // parse errors: what was there instead
	Name     string         `json:"name,omitempty"`     // constant name, for constant-related kinds
	Cycle    []string       `json:"cycle,omitempty"`    // CircularConstantReference only
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s error at line %d, column %d: %s", d.Phase, d.Pos.Line, d.Pos.Column, d.Message)
}

// Format renders the diagnostic as `<file>:<line>:<column>: error: <message>`.
func (d Diagnostic) Format(file string) string {
	return fmt.Sprintf("%s:%d:%d: error: %s", file, d.Pos.Line, d.Pos.Column, d.Message)
}

// Lex creates a lexical diagnostic.
func Lex(kind Kind, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{
		Phase:   PhaseLex,
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// Parse creates a syntax diagnostic with expected/found context.
func Parse(kind Kind, pos token.Position, expected, found string, msg string) Diagnostic {
	return Diagnostic{
		Phase:    PhaseParse,
		Kind:     kind,
		Pos:      pos,
		Message:  msg,
		Expected: expected,
		Found:    found,
	}
}

// Undefined creates an UndefinedConstant diagnostic positioned at the usage site.
func Undefined(name string, pos token.Position) Diagnostic {
	return Diagnostic{
		Phase:   PhaseResolve,
		Kind:    UndefinedConstant,
		Pos:     pos,
		Message: fmt.Sprintf(ErrUndefinedConstant, name),
		Name:    name,
	}
}

// Circular creates a CircularConstantReference diagnostic. The cycle starts
// and ends with the same name.
func Circular(cycle []string, pos token.Position) Diagnostic {
	name := ""
	if len(cycle) > 0 {
		name = cycle[0]
	}
	return Diagnostic{
		Phase:   PhaseResolve,
		Kind:    CircularConstantReference,
		Pos:     pos,
		Message: fmt.Sprintf(ErrCircularReference, strings.Join(cycle, " -> ")),
		Name:    name,
		Cycle:   cycle,
	}
}

// Common message formats.
const (
	ErrInvalidChar          = "invalid character %q"
	ErrInvalidEscape        = "invalid escape sequence %q in string literal"
	ErrUnterminatedString   = "unterminated string literal"
	ErrUnexpectedToken      = "unexpected %s, expected %s"
	ErrMissingClosing       = "missing %q to close %s opened at %s"
	ErrInvalidSectionHeader = "invalid section header: expected %s, found %s"
	ErrInvalidConstantName  = "invalid constant name: expected identifier after def, found %s"
	ErrEmptyValue           = "missing value after %q"
	ErrDuplicateConstant    = "constant %q already defined at %s"
	ErrNumberOutOfRange     = "number %s does not fit in a 64-bit %s"
	ErrUndefinedConstant    = "undefined constant %q"
	ErrCircularReference    = "circular constant reference: %s"
	ErrInvalidInterpolation = "constant %q is a %s and cannot be interpolated into a string"
)
