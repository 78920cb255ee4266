package resolve

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/parser"
	"github.com/leapstack-labs/ecltoml/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *core.Document {
	t.Helper()
	doc, errs := parser.Parse(input)
	require.Empty(t, errs, "input must parse cleanly")
	return doc
}

func value(t *testing.T, doc *core.ResolvedDocument, section, key string) core.ResolvedValue {
	t.Helper()
	for _, s := range doc.Sections {
		if s.Name != section {
			continue
		}
		for _, a := range s.Assignments {
			if a.Key == key {
				return a.Value
			}
		}
	}
	t.Fatalf("no %s.%s in resolved document", section, key)
	return nil
}

func TestResolve_Substitution(t *testing.T) {
	doc := parse(t, `def PORT := 8080
def HOSTS := #("a", "b")
def OPTS := $[ debug: .{DEBUG}., ports: #(.{PORT}., 9090) ]
def DEBUG := true
[server]
port = .{PORT}.
hosts = .{HOSTS}.
opts = .{OPTS}.
inline = #(.{PORT}., $[ p: .{PORT}. ])
`)
	out, errs := Resolve(doc)
	require.Empty(t, errs)
	require.NotNil(t, out)

	assert.Equal(t, &core.ResolvedNumber{Raw: "8080"}, value(t, out, "server", "port"))
	assert.Equal(t, &core.ResolvedArray{Elems: []core.ResolvedValue{
		&core.ResolvedString{Value: "a"},
		&core.ResolvedString{Value: "b"},
	}}, value(t, out, "server", "hosts"))

	opts := value(t, out, "server", "opts").(*core.ResolvedDict)
	require.Len(t, opts.Entries, 2)
	assert.Equal(t, "debug", opts.Entries[0].Key)
	assert.Equal(t, &core.ResolvedBool{Value: true}, opts.Entries[0].Value, "forward reference")
	assert.Equal(t, "ports", opts.Entries[1].Key)
	assert.Equal(t, &core.ResolvedArray{Elems: []core.ResolvedValue{
		&core.ResolvedNumber{Raw: "8080"},
		&core.ResolvedNumber{Raw: "9090"},
	}}, opts.Entries[1].Value)

	inline := value(t, out, "server", "inline").(*core.ResolvedArray)
	require.Len(t, inline.Elems, 2)
	assert.Equal(t, &core.ResolvedNumber{Raw: "8080"}, inline.Elems[0])
}

func TestResolve_PreservesOrder(t *testing.T) {
	doc := parse(t, "[b]\nz = 1\ny = 2\n[a]\nx = 3\n[b]\nw = 4\n")
	out, errs := Resolve(doc)
	require.Empty(t, errs)

	var got []string
	for _, s := range out.Sections {
		for _, a := range s.Assignments {
			got = append(got, s.Name+"."+a.Key)
		}
	}
	assert.Equal(t, []string{"b.z", "b.y", "a.x", "b.w"}, got)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []diag.Diagnostic
	}{
		{
			name:  "undefined in section",
			input: "[s]\nk = .{Y}.",
			want: []diag.Diagnostic{
				{Kind: diag.UndefinedConstant, Name: "Y", Pos: pos(2, 5)},
			},
		},
		{
			name:  "undefined once per usage",
			input: "[s]\na = .{Y}.\nb = #(.{Y}.)",
			want: []diag.Diagnostic{
				{Kind: diag.UndefinedConstant, Name: "Y", Pos: pos(2, 5)},
				{Kind: diag.UndefinedConstant, Name: "Y", Pos: pos(3, 7)},
			},
		},
		{
			name:  "undefined inside constant does not cascade",
			input: "def A := .{Y}.\n[s]\na = .{A}.\nb = .{A}.",
			want: []diag.Diagnostic{
				{Kind: diag.UndefinedConstant, Name: "Y", Pos: pos(1, 10)},
			},
		},
		{
			name:  "two constant cycle",
			input: "def A := .{B}.\ndef B := .{A}.\n[s]\nk = .{A}.",
			want: []diag.Diagnostic{
				{Kind: diag.CircularConstantReference, Cycle: []string{"A", "B", "A"}, Pos: pos(2, 10)},
			},
		},
		{
			name:  "self reference",
			input: "def A := #(1, .{A}.)",
			want: []diag.Diagnostic{
				{Kind: diag.CircularConstantReference, Cycle: []string{"A", "A"}, Pos: pos(1, 15)},
			},
		},
		{
			name:  "three constant cycle unused",
			input: "def A := .{B}.\ndef B := .{C}.\ndef C := .{A}.\n[s]\nk = 1",
			want: []diag.Diagnostic{
				{Kind: diag.CircularConstantReference, Cycle: []string{"A", "B", "C", "A"}, Pos: pos(3, 10)},
			},
		},
		{
			name:  "dependents of a cycle stay silent",
			input: "def C := .{A}.\ndef A := .{B}.\ndef B := .{A}.\n[s]\nk = .{C}.\nj = .{B}.",
			want: []diag.Diagnostic{
				{Kind: diag.CircularConstantReference, Cycle: []string{"A", "B", "A"}, Pos: pos(3, 10)},
			},
		},
		{
			name:  "cycle and undefined together",
			input: "def A := .{A}.\n[s]\nk = .{A}.\nj = .{NOPE}.",
			want: []diag.Diagnostic{
				{Kind: diag.CircularConstantReference, Cycle: []string{"A", "A"}, Pos: pos(1, 10)},
				{Kind: diag.UndefinedConstant, Name: "NOPE", Pos: pos(4, 5)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errs := Resolve(parse(t, tt.input))
			assert.Nil(t, out)
			require.Len(t, errs, len(tt.want), "errors: %v", errs)
			for i, want := range tt.want {
				got := errs[i]
				assert.Equal(t, diag.PhaseResolve, got.Phase)
				assert.Equal(t, want.Kind, got.Kind)
				assert.Equal(t, want.Pos.Line, got.Pos.Line, "line")
				assert.Equal(t, want.Pos.Column, got.Pos.Column, "column")
				if want.Name != "" {
					assert.Equal(t, want.Name, got.Name)
				}
				if want.Cycle != nil {
					assert.Equal(t, want.Cycle, got.Cycle)
					assert.Contains(t, got.Message, strings.Join(want.Cycle, " -> "))
				}
			}
		})
	}
}

func TestResolve_DeepChain(t *testing.T) {
	const depth = 20000

	var sb strings.Builder
	for i := depth; i > 0; i-- {
		fmt.Fprintf(&sb, "def C%d := .{C%d}.\n", i, i-1)
	}
	sb.WriteString("def C0 := \"bottom\"\n[s]\nk = .{C")
	fmt.Fprintf(&sb, "%d}.\n", depth)

	out, errs := Resolve(parse(t, sb.String()))
	require.Empty(t, errs)
	assert.Equal(t, &core.ResolvedString{Value: "bottom"}, value(t, out, "s", "k"))
}

func TestContext_Constant(t *testing.T) {
	doc := parse(t, "def A := .{B}.\ndef B := 2\ndef X := .{X}.")
	ctx := NewContext(doc.Constants)
	_, errs := ctx.ResolveDocument(doc)
	require.Len(t, errs, 1)

	v, ok := ctx.Constant("A")
	require.True(t, ok)
	assert.Equal(t, &core.ResolvedNumber{Raw: "2"}, v)

	_, ok = ctx.Constant("X")
	assert.False(t, ok, "cyclic constant has no value")
	_, ok = ctx.Constant("MISSING")
	assert.False(t, ok)
	assert.Equal(t, errs, ctx.Errors())
}

func pos(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}
