package commands

import (
	"testing"

	"github.com/leapstack-labs/ecltoml/internal/cli/testutil"
	"github.com/leapstack-labs/ecltoml/pkg/translate"
	"github.com/stretchr/testify/assert"
)

func newTestSession() (*replSession, *testutil.TestRenderer) {
	tr := testutil.NewTestRendererMarkdown()
	return &replSession{r: tr.Renderer, snips: true}, tr
}

func feedAll(s *replSession, lines ...string) bool {
	for _, line := range lines {
		if s.feed(line) {
			return true
		}
	}
	return false
}

func TestREPL_TranslatesOnBlankLine(t *testing.T) {
	s, tr := newTestSession()

	feedAll(s, "def P := 1", "[s]", "k = .{P}.")
	assert.True(t, s.pending())
	assert.Empty(t, tr.Output(), "nothing runs before the blank line")

	feedAll(s, "")
	assert.False(t, s.pending())
	assert.Equal(t, "[s]\nk = 1\n\n", tr.Output())
}

func TestREPL_Diagnostics(t *testing.T) {
	s, tr := newTestSession()

	feedAll(s, "[s]", "k = .{NOPE}.", "")
	assert.Empty(t, tr.Output())
	assert.Contains(t, tr.ErrorOutput(), `<repl>:2:5: error: undefined constant "NOPE"`)
	assert.Contains(t, tr.ErrorOutput(), "   2 | k = .{NOPE}.")
}

func TestREPL_NoSections(t *testing.T) {
	s, tr := newTestSession()

	feedAll(s, "def X := 1", "")
	assert.Equal(t, "(no sections)\n", tr.Output())
}

func TestREPL_Commands(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		quit     bool
		wantOut  string
		wantErr  string
		interp   bool
		buffered bool
	}{
		{name: "quit", lines: []string{".quit"}, quit: true},
		{name: "exit", lines: []string{".EXIT"}, quit: true},
		{name: "help", lines: []string{".help"}, wantOut: ".interpolate on|off"},
		{name: "unknown", lines: []string{".nope"}, wantErr: "unknown command: .nope"},
		{name: "interpolate on", lines: []string{".interpolate on"}, wantOut: "string interpolation on", interp: true},
		{name: "interpolate bad", lines: []string{".interpolate yes"}, wantErr: "usage: .interpolate on|off"},
		{name: "dot line while buffering is input", lines: []string{"[s]", ".clear"}, buffered: true},
		{name: "reference is input", lines: []string{".{X}."}, buffered: true},
		{name: "clear on empty buffer", lines: []string{"[s]", "", ".clear"}, wantOut: "[s]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, tr := newTestSession()
			assert.Equal(t, tt.quit, feedAll(s, tt.lines...))
			if tt.wantOut != "" {
				assert.Contains(t, tr.Output(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, tr.ErrorOutput(), tt.wantErr)
			}
			assert.Equal(t, tt.interp, s.opts.Interpolate)
			assert.Equal(t, tt.buffered, s.pending())
		})
	}
}

func TestREPL_Interpolation(t *testing.T) {
	s, tr := newTestSession()
	s.opts = translate.Options{}

	feedAll(s, ".interpolate on", `def H := "db"`, "[s]", `u = "pg://.{H}."`, "")
	assert.Contains(t, tr.Output(), `u = "pg://db"`)

	tr.Reset()
	feedAll(s, ".interpolate off", `def H := "db"`, "[s]", `u = "pg://.{H}."`, "")
	assert.Contains(t, tr.Output(), `u = "pg://.{H}."`)
}
