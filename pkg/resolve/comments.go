package resolve

import (
	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/token"
)

// WithComments attaches source comments to the resolved tree. The list must
// be in source order, as the lexer collects it.
func WithComments(comments []*token.Comment) Option {
	return func(c *Context) {
		c.comments = comments
	}
}

// commentQueue hands out source comments in order.
type commentQueue struct {
	list []*token.Comment
}

// before removes and returns every comment that starts before pos.
func (q *commentQueue) before(pos token.Position) []string {
	var out []string
	for len(q.list) > 0 && q.list[0].Span.Start.Offset < pos.Offset {
		out = append(out, q.list[0].Body())
		q.list = q.list[1:]
	}
	return out
}

// onLine removes and returns the next comment when it starts on line.
func (q *commentQueue) onLine(line int) string {
	if len(q.list) == 0 || q.list[0].Span.Start.Line != line {
		return ""
	}
	body := q.list[0].Body()
	q.list = q.list[1:]
	return body
}

func (q *commentQueue) rest() []string {
	var out []string
	for _, c := range q.list {
		out = append(out, c.Body())
	}
	q.list = nil
	return out
}

// attachComments distributes comments over the sections and assignments of
// out, which mirrors doc. A comment belongs to the next section header or
// assignment after it. A comment on the line of a header or key, with nothing
// else starting on that line after it, ends that line instead. Comments
// between constant definitions go with the next section or assignment like
// any other.
func attachComments(doc *core.Document, out *core.ResolvedDocument, comments []*token.Comment) {
	if len(comments) == 0 {
		return
	}

	type item struct {
		pos      token.Position
		comments *[]string
		inline   *string
	}
	var items []item
	for i, s := range doc.Sections {
		rs := out.Sections[i]
		items = append(items, item{s.NamePos, &rs.Comments, &rs.Inline})
		if len(rs.Assignments) != len(s.Assignments) {
			continue
		}
		for j, a := range s.Assignments {
			ra := rs.Assignments[j]
			items = append(items, item{a.KeyPos, &ra.Comments, &ra.Inline})
		}
	}

	q := &commentQueue{list: comments}
	for i, it := range items {
		*it.comments = q.before(it.pos)
		if i+1 < len(items) && items[i+1].pos.Line == it.pos.Line {
			continue
		}
		*it.inline = q.onLine(it.pos.Line)
	}
	out.Trailing = q.rest()
}
