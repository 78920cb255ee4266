package core

// Inspect traverses v depth-first in source order, calling fn for each value.
// If fn returns false, the children of that value are skipped.
func Inspect(v Value, fn func(Value) bool) {
	if v == nil || !fn(v) {
		return
	}
	switch n := v.(type) {
	case *Array:
		for _, e := range n.Elems {
			Inspect(e, fn)
		}
	case *Dict:
		for _, e := range n.Entries {
			Inspect(e.Value, fn)
		}
	}
}

// Refs returns every constant reference inside v, in source order.
func Refs(v Value) []*ConstRef {
	var refs []*ConstRef
	Inspect(v, func(n Value) bool {
		if r, ok := n.(*ConstRef); ok {
			refs = append(refs, r)
		}
		return true
	})
	return refs
}

// Strings returns every string literal inside v, in source order.
func Strings(v Value) []*String {
	var strs []*String
	Inspect(v, func(n Value) bool {
		if s, ok := n.(*String); ok {
			strs = append(strs, s)
		}
		return true
	})
	return strs
}

// AllRefs returns every constant reference in the document: first those in
// constant values (declaration order), then those in sections (source order).
func (d *Document) AllRefs() []*ConstRef {
	var refs []*ConstRef
	for _, c := range d.Constants {
		refs = append(refs, Refs(c.Value)...)
	}
	for _, s := range d.Sections {
		for _, a := range s.Assignments {
			refs = append(refs, Refs(a.Value)...)
		}
	}
	return refs
}
