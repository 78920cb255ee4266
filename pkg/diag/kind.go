package diag

import (
	"slices"
	"strings"
)

// =============================================================================
// Phase
// =============================================================================

// Phase identifies the pipeline stage that produced a diagnostic.
// The numeric order is the tie-breaker used when sorting.
type Phase int

// Pipeline phases in execution order.
const (
	PhaseLex Phase = iota
	PhaseParse
	PhaseResolve
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "parse"
	case PhaseResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// =============================================================================
// Kind
// =============================================================================

// Kind classifies a diagnostic within its phase.
type Kind int

// Lexical kinds.
const (
	InvalidChar Kind = iota
	UnterminatedString
)

// Syntactic kinds.
const (
	UnexpectedToken Kind = iota + 100
	MissingClosingDelimiter
	InvalidSectionHeader
	InvalidConstantName
	EmptyValue
	DuplicateConstantName
	NumberOutOfRange
)

// Resolution kinds.
const (
	UndefinedConstant Kind = iota + 200
	CircularConstantReference
	InvalidInterpolation
)

var kindNames = map[Kind]string{
	InvalidChar:               "InvalidChar",
	UnterminatedString:        "UnterminatedString",
	UnexpectedToken:           "UnexpectedToken",
	MissingClosingDelimiter:   "MissingClosingDelimiter",
	InvalidSectionHeader:      "InvalidSectionHeader",
	InvalidConstantName:       "InvalidConstantName",
	EmptyValue:                "EmptyValue",
	DuplicateConstantName:     "DuplicateConstantName",
	NumberOutOfRange:          "NumberOutOfRange",
	UndefinedConstant:         "UndefinedConstant",
	CircularConstantReference: "CircularConstantReference",
	InvalidInterpolation:      "InvalidInterpolation",
}

// String returns the kind name, e.g. "UndefinedConstant".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Phase returns the pipeline phase a kind belongs to.
func (k Kind) Phase() Phase {
	switch {
	case k >= UndefinedConstant:
		return PhaseResolve
	case k >= UnexpectedToken:
		return PhaseParse
	default:
		return PhaseLex
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AllKinds returns every kind in phase order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// ParseKind converts a kind name (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, true
		}
	}
	return 0, false
}
