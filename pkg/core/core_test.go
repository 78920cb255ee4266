package core

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/ecltoml/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"42", "42"},
		{"+42", "42"},
		{"-42", "-42"},
		{"007", "7"},
		{"-007.50", "-7.50"},
		{"0", "0"},
		{"000", "0"},
		{"0.25", "0.25"},
		{"+0.0", "0.0"},
		{"3.14159", "3.14159"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalNumber(tt.raw))
		})
	}
}

func TestNumberParts(t *testing.T) {
	neg, integer, frac, hasFrac := NumberParts("-12.050")
	assert.True(t, neg)
	assert.Equal(t, "12", integer)
	assert.Equal(t, "050", frac)
	assert.True(t, hasFrac)

	neg, integer, _, hasFrac = NumberParts("+8")
	assert.False(t, neg)
	assert.Equal(t, "8", integer)
	assert.False(t, hasFrac)
}

func TestNumberFits(t *testing.T) {
	tests := []struct {
		raw  string
		kind string
		ok   bool
	}{
		{"0", "integer", true},
		{"9223372036854775807", "integer", true},
		{"-9223372036854775808", "integer", true},
		{"+0009223372036854775807", "integer", true},
		{"9223372036854775808", "integer", false},
		{"-9223372036854775809", "integer", false},
		{"99999999999999999999999", "integer", false},
		{"99999999999999999999999.5", "float", true},
		{"-0.25", "float", true},
		{"1" + strings.Repeat("0", 400) + ".0", "float", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			kind, ok := NumberFits(tt.raw)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRefs_SourceOrder(t *testing.T) {
	p := token.Position{Line: 1, Column: 1}
	v := &Array{Elems: []Value{
		&ConstRef{Name: "A", ValuePos: p},
		&Dict{Entries: []*Entry{
			{Key: "x", Value: &ConstRef{Name: "B"}},
			{Key: "y", Value: &Number{Raw: "1"}},
		}},
		&Array{Elems: []Value{&ConstRef{Name: "C"}}},
	}}

	refs := Refs(v)
	require.Len(t, refs, 3)
	assert.Equal(t, "A", refs[0].Name)
	assert.Equal(t, "B", refs[1].Name)
	assert.Equal(t, "C", refs[2].Name)
}

func TestDocument_AllRefs(t *testing.T) {
	doc := &Document{
		Constants: []*ConstantDef{
			{Name: "A", Value: &ConstRef{Name: "B"}},
			{Name: "B", Value: &Number{Raw: "1"}},
		},
		Sections: []*Section{
			{Name: "s", Assignments: []*Assignment{
				{Key: "k", Value: &ConstRef{Name: "A"}},
			}},
		},
	}

	refs := doc.AllRefs()
	require.Len(t, refs, 2)
	assert.Equal(t, "B", refs[0].Name)
	assert.Equal(t, "A", refs[1].Name)
	assert.NotNil(t, doc.Constant("B"))
	assert.Nil(t, doc.Constant("Z"))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "array", TypeName(&Array{}))
	assert.Equal(t, "dictionary", TypeName(&Dict{}))
	assert.Equal(t, "constant reference", TypeName(&ConstRef{}))
	assert.Equal(t, "boolean", ResolvedTypeName(&ResolvedBool{}))
}
