package resolve

import (
	"testing"

	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolationNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"plain", []string{}},
		{".{A}.", []string{"A"}},
		{"pg://.{HOST}.:.{PORT}./db", []string{"HOST", "PORT"}},
		{".{A}x", []string{}},
		{".{1A}.", []string{}},
		{".{a_1}.", []string{"a_1"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, interpolationNames(tt.in))
		})
	}
}

func TestResolve_Interpolation(t *testing.T) {
	input := `def HOST := "db"
def PORT := +05432.50
def TLS := false
def URL := "pg://.{HOST}.:.{PORT}."
[s]
url = .{URL}.
flag = "tls=.{TLS}."
`
	t.Run("disabled keeps text", func(t *testing.T) {
		out, errs := Resolve(parse(t, input))
		require.Empty(t, errs)
		assert.Equal(t, &core.ResolvedString{Value: "pg://.{HOST}.:.{PORT}."}, value(t, out, "s", "url"))
	})

	t.Run("enabled substitutes scalars", func(t *testing.T) {
		out, errs := Resolve(parse(t, input), WithStringInterpolation(true))
		require.Empty(t, errs)
		assert.Equal(t, &core.ResolvedString{Value: "pg://db:5432.50"}, value(t, out, "s", "url"))
		assert.Equal(t, &core.ResolvedString{Value: "tls=false"}, value(t, out, "s", "flag"))
	})
}

func TestResolve_InterpolationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  diag.Kind
		line  int
		col   int
	}{
		{"array constant", "def L := #(1)\n[s]\nk = \"x.{L}.\"", diag.InvalidInterpolation, 3, 5},
		{"dict constant", "def D := $[]\n[s]\nk = \"x.{D}.\"", diag.InvalidInterpolation, 3, 5},
		{"undefined name", "[s]\nk = \"x.{NOPE}.\"", diag.UndefinedConstant, 2, 5},
		{"cycle through string", "def A := \"a.{B}.\"\ndef B := \"b.{A}.\"", diag.CircularConstantReference, 2, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errs := Resolve(parse(t, tt.input), WithStringInterpolation(true))
			assert.Nil(t, out)
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.kind, errs[0].Kind)
			assert.Equal(t, tt.line, errs[0].Pos.Line)
			assert.Equal(t, tt.col, errs[0].Pos.Column)
		})
	}
}
