// Package format renders resolved documents as TOML text.
package format

import (
	"bytes"
	"strings"
)

// Printer accumulates TOML output with optional indentation of assignments.
type Printer struct {
	output      *bytes.Buffer
	indentSize  int
	depth       int
	atLineStart bool
}

func newPrinter(opts Options) *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		indentSize:  max(opts.Indent, 0),
		atLineStart: true,
	}
}

// String returns the formatted output. Non-empty output ends with exactly one newline.
func (p *Printer) String() string {
	out := strings.TrimRight(p.output.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*p.indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// formatList prints count items separated by sep.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
	}
}
