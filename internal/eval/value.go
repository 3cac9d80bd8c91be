// Package eval is tayat's expression evaluator: an operand stack plus
// per-width arithmetic, comparison, and cast routines enforcing the
// integer type lattice.
package eval

import "github.com/Yazip/tayat/internal/symtree"

// Value is one operand: a width tag plus its 64-bit storage. Every
// basic-width value is kept in an int64 and cast to its declared width
// on demand — the width tag is what the arithmetic routines dispatch
// on, a sum-type-over-{I16,I32,I64} flattened into one struct.
type Value struct {
	Kind symtree.Kind
	V    int64
}

func newValue(k symtree.Kind, v int64) Value {
	return Value{Kind: k, V: symtree.Truncate(k, v)}
}
