package core

import "github.com/leapstack-labs/ecltoml/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
}

// Value is the closed set of source values. Only the types in this file
// implement it: String, Number, Bool, Array, Dict and ConstRef.
type Value interface {
	Node
	valueNode() // Marker method to seal the set
}

// ---------- Document Structure ----------

// Document is a parsed source file.
type Document struct {
	Sections  []*Section     // in source order; names may repeat
	Constants []*ConstantDef // in declaration order; names are unique
}

// Constant returns the definition of name, or nil.
func (d *Document) Constant(name string) *ConstantDef {
	for _, c := range d.Constants {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Section is a `[name]` header followed by its assignments.
type Section struct {
	Name        string
	NamePos     token.Position
	Assignments []*Assignment
}

// Pos implements Node.
func (s *Section) Pos() token.Position { return s.NamePos }

// Assignment is a `key = value` line inside a section.
type Assignment struct {
	Key    string
	KeyPos token.Position
	Value  Value
}

// Pos implements Node.
func (a *Assignment) Pos() token.Position { return a.KeyPos }

// ConstantDef is a `def NAME := value` declaration.
type ConstantDef struct {
	Name    string
	NamePos token.Position
	Value   Value
}

// Pos implements Node.
func (c *ConstantDef) Pos() token.Position { return c.NamePos }

// ---------- Values ----------

// String is a quoted string literal with escapes already decoded.
type String struct {
	Value    string
	ValuePos token.Position
}

func (*String) valueNode() {}

// Pos implements Node.
func (s *String) Pos() token.Position { return s.ValuePos }

// Number is a decimal literal, kept as written.
type Number struct {
	Raw      string // lexeme as written, e.g. "-007.50"
	ValuePos token.Position
}

func (*Number) valueNode() {}

// Pos implements Node.
func (n *Number) Pos() token.Position { return n.ValuePos }

// Bool is a `true` or `false` literal.
type Bool struct {
	Value    bool
	ValuePos token.Position
}

func (*Bool) valueNode() {}

// Pos implements Node.
func (b *Bool) Pos() token.Position { return b.ValuePos }

// Array is `#( v1, v2, ... )`.
type Array struct {
	Elems    []Value
	ValuePos token.Position
}

func (*Array) valueNode() {}

// Pos implements Node.
func (a *Array) Pos() token.Position { return a.ValuePos }

// Dict is `$[ k1: v1, k2: v2 ]`. Keys may repeat; order is kept.
type Dict struct {
	Entries  []*Entry
	ValuePos token.Position
}

func (*Dict) valueNode() {}

// Pos implements Node.
func (d *Dict) Pos() token.Position { return d.ValuePos }

// Entry is one `key: value` pair of a Dict.
type Entry struct {
	Key    string
	KeyPos token.Position
	Value  Value
}

// Pos implements Node.
func (e *Entry) Pos() token.Position { return e.KeyPos }

// ConstRef is `.{NAME}.`, a placeholder for a constant's value.
type ConstRef struct {
	Name     string
	ValuePos token.Position
}

func (*ConstRef) valueNode() {}

// Pos implements Node.
func (r *ConstRef) Pos() token.Position { return r.ValuePos }

// TypeName returns a short name for the value's variant.
func TypeName(v Value) string {
	switch v.(type) {
	case *String:
		return "string"
	case *Number:
		return "number"
	case *Bool:
		return "boolean"
	case *Array:
		return "array"
	case *Dict:
		return "dictionary"
	case *ConstRef:
		return "constant reference"
	default:
		return "unknown"
	}
}
