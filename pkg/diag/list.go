package diag

import (
	"fmt"
	"sort"
	"strings"
)

// List is a run-scoped collection of diagnostics. A non-empty List is an error.
type List []Diagnostic

// Add appends a diagnostic.
func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

// Append appends every diagnostic of other.
func (l *List) Append(other List) {
	*l = append(*l, other...)
}

// HasErrors reports whether any diagnostic was recorded.
func (l List) HasErrors() bool {
	return len(l) > 0
}

// Len implements sort.Interface.
func (l List) Len() int { return len(l) }

// Swap implements sort.Interface.
func (l List) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less orders by line, then column, then phase (Lex < Parse < Resolve).
func (l List) Less(i, j int) bool {
	a, b := l[i], l[j]
	if a.Pos.Line != b.Pos.Line {
		return a.Pos.Line < b.Pos.Line
	}
	if a.Pos.Column != b.Pos.Column {
		return a.Pos.Column < b.Pos.Column
	}
	return a.Phase < b.Phase
}

// Sort orders the list in place. Equal keys keep their discovery order.
func (l List) Sort() {
	sort.Stable(l)
}

// Kinds returns the kind of every diagnostic, in list order.
func (l List) Kinds() []Kind {
	kinds := make([]Kind, len(l))
	for i, d := range l {
		kinds[i] = d.Kind
	}
	return kinds
}

// Count returns how many diagnostics have the given kind.
func (l List) Count(k Kind) int {
	n := 0
	for _, d := range l {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Error implements the error interface.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:", len(l))
	for _, d := range l {
		sb.WriteString("\n\t")
		sb.WriteString(d.Error())
	}
	return sb.String()
}

// Err returns the list as an error, or nil when it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
