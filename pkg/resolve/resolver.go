// Package resolve substitutes constant references with the values they name.
//
// Constants form a dependency graph: a constant's value may reference other
// constants, in any declaration order. The graph is walked depth-first with
// an explicit stack and three colours per name (unvisited, in progress,
// resolved), so a cycle is reported as an error instead of recursing forever.
// Each constant is evaluated once; its resolved value is then shared by every
// reference to it.
package resolve

import (
	"log/slog"

	"github.com/leapstack-labs/ecltoml/pkg/core"
	"github.com/leapstack-labs/ecltoml/pkg/diag"
	"github.com/leapstack-labs/ecltoml/pkg/token"
)

type color uint8

const (
	white color = iota // not visited
	gray               // on the DFS stack
	black              // finished, successfully or not
)

// Option configures a Context.
type Option func(*Context)

// WithStringInterpolation enables replacement of `.{NAME}.` inside string
// literals with the text of a scalar constant.
func WithStringInterpolation(enabled bool) Option {
	return func(c *Context) {
		c.interpolate = enabled
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Context holds the constant table and resolution state of one document.
// A Context must not be shared between documents or goroutines.
type Context struct {
	defs   map[string]*core.ConstantDef
	order  []*core.ConstantDef
	state  map[string]color
	values map[string]core.ResolvedValue
	failed map[string]bool
	errors diag.List

	interpolate bool
	comments    []*token.Comment
	logger      *slog.Logger
}

// NewContext creates a resolution context for the given constant table.
// Names are expected to be unique; on a repeat the first definition is kept.
func NewContext(constants []*core.ConstantDef, opts ...Option) *Context {
	c := &Context{
		defs:   make(map[string]*core.ConstantDef, len(constants)),
		state:  make(map[string]color, len(constants)),
		values: make(map[string]core.ResolvedValue, len(constants)),
		failed: make(map[string]bool),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, def := range constants {
		if _, ok := c.defs[def.Name]; ok {
			continue
		}
		c.defs[def.Name] = def
		c.order = append(c.order, def)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve resolves every constant reference in doc. It returns either the
// resolved document and no errors, or nil and every resolution error found.
func Resolve(doc *core.Document, opts ...Option) (*core.ResolvedDocument, diag.List) {
	return NewContext(doc.Constants, opts...).ResolveDocument(doc)
}

// ResolveDocument resolves all constants (used or not, in declaration order)
// and then every section of doc.
func (c *Context) ResolveDocument(doc *core.Document) (*core.ResolvedDocument, diag.List) {
	for _, def := range c.order {
		c.resolveConstant(def.Name)
	}

	out := &core.ResolvedDocument{Sections: make([]*core.ResolvedSection, 0, len(doc.Sections))}
	for _, s := range doc.Sections {
		rs := &core.ResolvedSection{Name: s.Name}
		for _, a := range s.Assignments {
			if v, ok := c.substitute(a.Value); ok {
				rs.Assignments = append(rs.Assignments, &core.ResolvedAssignment{Key: a.Key, Value: v})
			}
		}
		out.Sections = append(out.Sections, rs)
	}

	if c.errors.HasErrors() {
		c.errors.Sort()
		return nil, c.errors
	}
	attachComments(doc, out, c.comments)
	return out, nil
}

// Constant returns the resolved value of a constant. ok is false when the
// name is unknown, not resolved yet, or failed to resolve.
func (c *Context) Constant(name string) (core.ResolvedValue, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Errors returns the errors recorded so far.
func (c *Context) Errors() diag.List {
	return c.errors
}

// dep is one constant a value depends on.
type dep struct {
	name string
	pos  token.Position // usage site
}

// frame is a constant on the DFS stack.
type frame struct {
	def  *core.ConstantDef
	deps []dep
	next int
}

func (c *Context) enter(def *core.ConstantDef) *frame {
	c.state[def.Name] = gray
	return &frame{def: def, deps: c.dependencies(def.Value)}
}

// dependencies lists the constants v refers to, in source order.
func (c *Context) dependencies(v core.Value) []dep {
	var deps []dep
	core.Inspect(v, func(n core.Value) bool {
		switch n := n.(type) {
		case *core.ConstRef:
			deps = append(deps, dep{name: n.Name, pos: n.Pos()})
		case *core.String:
			if c.interpolate {
				for _, name := range interpolationNames(n.Value) {
					deps = append(deps, dep{name: name, pos: n.Pos()})
				}
			}
		}
		return true
	})
	return deps
}

// resolveConstant evaluates name and everything it depends on.
func (c *Context) resolveConstant(name string) {
	def, ok := c.defs[name]
	if !ok || c.state[name] != white {
		return
	}

	stack := []*frame{c.enter(def)}
	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.next < len(top.deps) {
			d := top.deps[top.next]
			top.next++

			next, defined := c.defs[d.name]
			if !defined {
				c.errors.Add(diag.Undefined(d.name, d.pos))
				c.failed[top.def.Name] = true
				continue
			}

			switch c.state[d.name] {
			case white:
				stack = append(stack, c.enter(next))
			case gray:
				cycle := cyclePath(stack, d.name)
				c.logger.Debug("constant cycle detected", "cycle", cycle)
				c.errors.Add(diag.Circular(cycle, d.pos))
				for _, name := range cycle {
					c.failed[name] = true
				}
			case black:
				if c.failed[d.name] {
					c.failed[top.def.Name] = true
				}
			}
			continue
		}

		stack = stack[:len(stack)-1]
		c.finish(top)
		if c.failed[top.def.Name] && len(stack) > 0 {
			c.failed[stack[len(stack)-1].def.Name] = true
		}
	}
}

// finish computes the value of a constant whose dependencies are all black.
func (c *Context) finish(f *frame) {
	name := f.def.Name
	c.state[name] = black
	if c.failed[name] {
		return
	}

	v, ok := c.substitute(f.def.Value)
	if !ok {
		c.failed[name] = true
		return
	}
	c.values[name] = v
	c.logger.Debug("constant resolved", "name", name, "type", core.ResolvedTypeName(v))
}

// cyclePath returns the names from the first occurrence of name on the
// stack to the top, closed by name again: A -> B -> A.
func cyclePath(stack []*frame, name string) []string {
	start := 0
	for i, f := range stack {
		if f.def.Name == name {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		cycle = append(cycle, f.def.Name)
	}
	return append(cycle, name)
}

// substitute builds the resolved form of v. References are resolved on
// demand; a reference to a constant that failed yields ok=false without a
// new error, since the failure was reported where it happened.
func (c *Context) substitute(v core.Value) (core.ResolvedValue, bool) {
	switch n := v.(type) {
	case *core.String:
		if c.interpolate {
			return c.interpolateString(n)
		}
		return &core.ResolvedString{Value: n.Value}, true
	case *core.Number:
		return &core.ResolvedNumber{Raw: n.Raw}, true
	case *core.Bool:
		return &core.ResolvedBool{Value: n.Value}, true
	case *core.Array:
		arr := &core.ResolvedArray{Elems: make([]core.ResolvedValue, 0, len(n.Elems))}
		ok := true
		for _, e := range n.Elems {
			rv, eok := c.substitute(e)
			ok = ok && eok
			arr.Elems = append(arr.Elems, rv)
		}
		return arr, ok
	case *core.Dict:
		dict := &core.ResolvedDict{Entries: make([]*core.ResolvedEntry, 0, len(n.Entries))}
		ok := true
		for _, e := range n.Entries {
			rv, eok := c.substitute(e.Value)
			ok = ok && eok
			dict.Entries = append(dict.Entries, &core.ResolvedEntry{Key: e.Key, Value: rv})
		}
		return dict, ok
	case *core.ConstRef:
		return c.lookup(n.Name, n.Pos())
	}
	return nil, false
}

// lookup returns the resolved value of name, resolving it first if needed.
func (c *Context) lookup(name string, pos token.Position) (core.ResolvedValue, bool) {
	if _, ok := c.defs[name]; !ok {
		c.errors.Add(diag.Undefined(name, pos))
		return nil, false
	}
	c.resolveConstant(name)
	v, ok := c.values[name]
	return v, ok
}
