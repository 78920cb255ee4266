package core

// ---------- Resolved AST ----------
// The resolved tree mirrors the source tree without the ConstRef variant.
// Positions are dropped: after resolution nothing can fail any more.
// Source comments travel as text: Comments are the lines before a node,
// Inline is the comment that ends the node's own line.

// ResolvedValue is the closed set of values the emitter understands.
type ResolvedValue interface {
	resolvedNode()
}

// ResolvedDocument is a Document with every constant reference substituted.
type ResolvedDocument struct {
	Sections []*ResolvedSection
	// Trailing holds the comments after the last section or assignment.
	Trailing []string
}

// ResolvedSection mirrors Section.
type ResolvedSection struct {
	Name        string
	Assignments []*ResolvedAssignment
	Comments    []string
	Inline      string
}

// ResolvedAssignment mirrors Assignment.
type ResolvedAssignment struct {
	Key      string
	Value    ResolvedValue
	Comments []string
	Inline   string
}

// ResolvedString is a string value.
type ResolvedString struct{ Value string }

// ResolvedNumber is a numeric value, kept as its source lexeme.
type ResolvedNumber struct{ Raw string }

// ResolvedBool is a boolean value.
type ResolvedBool struct{ Value bool }

// ResolvedArray is an ordered list of values.
type ResolvedArray struct{ Elems []ResolvedValue }

// ResolvedDict is an ordered list of key/value pairs.
type ResolvedDict struct{ Entries []*ResolvedEntry }

// ResolvedEntry is one pair of a ResolvedDict.
type ResolvedEntry struct {
	Key   string
	Value ResolvedValue
}

func (*ResolvedString) resolvedNode() {}
func (*ResolvedNumber) resolvedNode() {}
func (*ResolvedBool) resolvedNode()   {}
func (*ResolvedArray) resolvedNode()  {}
func (*ResolvedDict) resolvedNode()   {}

// ResolvedTypeName returns a short name for the resolved value's variant.
func ResolvedTypeName(v ResolvedValue) string {
	switch v.(type) {
	case *ResolvedString:
		return "string"
	case *ResolvedNumber:
		return "number"
	case *ResolvedBool:
		return "boolean"
	case *ResolvedArray:
		return "array"
	case *ResolvedDict:
		return "dictionary"
	default:
		return "unknown"
	}
}
