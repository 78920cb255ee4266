package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/ecltoml/pkg/core"
)

// Options controls the layout of emitted TOML.
type Options struct {
	// Indent is the number of spaces before each assignment under a header.
	Indent int
}

// Format renders doc as TOML. Sections, keys, array elements and inline
// table entries keep their order. Source comments become `#` comments.
func Format(doc *core.ResolvedDocument, opts Options) string {
	p := newPrinter(opts)
	for i, s := range doc.Sections {
		if i > 0 {
			p.writeln()
		}
		p.formatSection(s)
	}
	p.formatComments(doc.Trailing)
	return p.String()
}

// Value renders a single resolved value as a TOML inline value.
func Value(v core.ResolvedValue) string {
	p := newPrinter(Options{})
	p.formatValue(v)
	return p.output.String()
}

func (p *Printer) formatSection(s *core.ResolvedSection) {
	p.formatComments(s.Comments)
	p.write("[" + Key(s.Name) + "]")
	p.formatInline(s.Inline)
	p.writeln()

	p.indent()
	for _, a := range s.Assignments {
		p.formatComments(a.Comments)
		p.write(Key(a.Key))
		p.write(" = ")
		p.formatValue(a.Value)
		p.formatInline(a.Inline)
		p.writeln()
	}
	p.dedent()
}

// formatComments writes one comment line per entry at the current indent.
func (p *Printer) formatComments(comments []string) {
	for _, c := range comments {
		p.write(Comment(c))
		p.writeln()
	}
}

func (p *Printer) formatInline(comment string) {
	if comment != "" {
		p.write(" " + Comment(comment))
	}
}

// Comment renders text as a TOML comment. Control characters other than
// tab are not allowed in TOML comments and are dropped.
func Comment(text string) string {
	text = strings.Map(func(r rune) rune {
		if (r < 0x20 && r != '\t') || r == 0x7f {
			return -1
		}
		return r
	}, text)
	text = strings.TrimSpace(text)
	if text == "" {
		return "#"
	}
	return "# " + text
}

func (p *Printer) formatValue(v core.ResolvedValue) {
	switch v := v.(type) {
	case *core.ResolvedString:
		p.write(Quote(v.Value))
	case *core.ResolvedNumber:
		p.write(core.CanonicalNumber(v.Raw))
	case *core.ResolvedBool:
		if v.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *core.ResolvedArray:
		p.write("[")
		p.formatList(len(v.Elems), func(i int) {
			p.formatValue(v.Elems[i])
		}, ", ")
		p.write("]")
	case *core.ResolvedDict:
		if len(v.Entries) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		p.formatList(len(v.Entries), func(i int) {
			e := v.Entries[i]
			p.write(Key(e.Key))
			p.write(" = ")
			p.formatValue(e.Value)
		}, ", ")
		p.write(" }")
	default:
		panic(fmt.Sprintf("format: unexpected resolved value %T", v))
	}
}

// Key returns k unchanged when it is a valid TOML bare key and as a quoted
// key otherwise.
func Key(k string) string {
	if k == "" {
		return `""`
	}
	for _, r := range k {
		if !isBareKeyChar(r) {
			return Quote(k)
		}
	}
	return k
}

func isBareKeyChar(r rune) bool {
	return r == '_' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Quote renders s as a TOML basic string.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			switch {
			case r == utf8.RuneError && size == 1:
				sb.WriteString(`\uFFFD`)
			case r < 0x20 || r == 0x7f:
				fmt.Fprintf(&sb, `\u%04X`, r)
			default:
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
