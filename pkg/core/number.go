package core

import (
	"strconv"
	"strings"
)

// NumberParts splits a numeric lexeme into sign, integer digits and fraction digits.
// hasFraction is true when the lexeme contains a decimal point.
func NumberParts(raw string) (negative bool, integer, fraction string, hasFraction bool) {
	switch {
	case strings.HasPrefix(raw, "-"):
		negative = true
		raw = raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}
	integer, fraction, hasFraction = strings.Cut(raw, ".")
	return negative, integer, fraction, hasFraction
}

// CanonicalNumber rewrites a numeric lexeme into the form TOML accepts:
// no `+` sign, no leading zeros in the integer part, fraction digits untouched.
// "-007.50" becomes "-7.50"; "+3" becomes "3".
func CanonicalNumber(raw string) string {
	negative, integer, fraction, hasFraction := NumberParts(raw)
	integer = strings.TrimLeft(integer, "0")
	if integer == "" {
		integer = "0"
	}

	var sb strings.Builder
	if negative {
		sb.WriteByte('-')
	}
	sb.WriteString(integer)
	if hasFraction {
		sb.WriteByte('.')
		sb.WriteString(fraction)
	}
	return sb.String()
}

// NumberFits reports whether a numeric lexeme has a TOML representation:
// integers must fit in an int64 and decimals in a float64. kind is
// "integer" or "float".
func NumberFits(raw string) (kind string, ok bool) {
	canon := CanonicalNumber(raw)
	if strings.Contains(canon, ".") {
		_, err := strconv.ParseFloat(canon, 64)
		return "float", err == nil
	}
	_, err := strconv.ParseInt(canon, 10, 64)
	return "integer", err == nil
}
