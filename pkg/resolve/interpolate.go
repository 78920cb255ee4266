package resolve

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
)

// interpolationPattern matches `.{NAME}.` inside a string literal.
var interpolationPattern = regexp.MustCompile(`\.\{([a-zA-Z][_a-zA-Z0-9]*)\}\.`)

// interpolationNames returns the constant names referenced in s, in order.
func interpolationNames(s string) []string {
	matches := interpolationPattern.FindAllStringSubmatch(s, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// interpolateString replaces every `.{NAME}.` in s with the text of the
// scalar constant NAME. Errors are positioned at the string literal.
func (c *Context) interpolateString(s *core.String) (core.ResolvedValue, bool) {
	if !strings.Contains(s.Value, ".{") {
		return &core.ResolvedString{Value: s.Value}, true
	}

	ok := true
	out := interpolationPattern.ReplaceAllStringFunc(s.Value, func(match string) string {
		name := interpolationPattern.FindStringSubmatch(match)[1]
		v, found := c.lookup(name, s.Pos())
		if !found {
			ok = false
			return match
		}
		text, scalar := scalarText(v)
		if !scalar {
			c.errors.Add(diag.Diagnostic{
				Phase:   diag.PhaseResolve,
				Kind:    diag.InvalidInterpolation,
				Pos:     s.Pos(),
				Message: fmt.Sprintf(diag.ErrInvalidInterpolation, name, core.ResolvedTypeName(v)),
				Name:    name,
			})
			ok = false
			return match
		}
		return text
	})
	return &core.ResolvedString{Value: out}, ok
}

// scalarText renders a scalar value the way it reads in the source.
func scalarText(v core.ResolvedValue) (string, bool) {
	switch v := v.(type) {
	case *core.ResolvedString:
		return v.Value, true
	case *core.ResolvedNumber:
		return core.CanonicalNumber(v.Raw), true
	case *core.ResolvedBool:
		if v.Value {
			return "true", true
		}
		return "false", true
	}
	return "", false
}
