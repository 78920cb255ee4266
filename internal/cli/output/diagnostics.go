package output

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ecltoml/pkg/diag"
)

// FileDiagnostics is the JSON form of one file's result.
type FileDiagnostics struct {
	File        string    `json:"file"`
	OK          bool      `json:"ok"`
	Diagnostics diag.List `json:"diagnostics"`
}

// Diagnostics reports the errors found in file. Text goes to stderr, one
// `file:line:col: error: msg` line per diagnostic, optionally followed by a
// caret snippet of src. In JSON mode a FileDiagnostics goes to stdout.
func (r *Renderer) Diagnostics(file, src string, list diag.List, snippets bool) {
	if r.EffectiveMode() == ModeJSON {
		if list == nil {
			list = diag.List{}
		}
		_ = r.JSON(FileDiagnostics{File: file, OK: !list.HasErrors(), Diagnostics: list})
		return
	}

	for _, d := range list {
		_, _ = fmt.Fprintf(r.errOut, "%s %s %s\n",
			r.styles.Path.Render(fmt.Sprintf("%s:%s:", file, d.Pos)),
			r.styles.Error.Render("error:"),
			d.Message)
		if snippets {
			_, _ = fmt.Fprint(r.errOut, r.snippet(src, d.Pos.Line, d.Pos.Column))
		}
	}
}

// Snippet renders the source around line:col with a caret under the column.
// One line of context is shown before and after when available.
func Snippet(src string, line, col int) string {
	return NewRendererWithTTY(nil, nil, false, ModeMarkdown).snippet(src, line, col)
}

func (r *Renderer) snippet(src string, line, col int) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}
	text := strings.TrimSuffix(lines[line-1], "\r")

	var b strings.Builder
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, strings.TrimSuffix(lines[line-2], "\r"))
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, text)
	fmt.Fprintf(&b, "     | %s%s\n", caretPad(text, col), r.styles.Caret.Render("^"))
	if line < len(lines) && lines[line] != "" {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, strings.TrimSuffix(lines[line], "\r"))
	}
	return b.String()
}

// caretPad returns the whitespace that puts a caret under column col of
// text. Tabs are kept so the caret lines up however the terminal expands them.
func caretPad(text string, col int) string {
	var b strings.Builder
	n := 0
	for _, ch := range text {
		if n >= col-1 {
			break
		}
		if ch == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	for ; n < col-1; n++ {
		b.WriteByte(' ')
	}
	return b.String()
}
