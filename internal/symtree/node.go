package symtree

import "github.com/Yazip/tayat/internal/lexer"

// noIndex is the sentinel for "no such arena slot".
const noIndex = -1

// Node is a single symbol-tree entry. It carries a name, kind, element
// width/count for arrays and typedefs, a constant flag, a per-element
// index for synthesised array elements, current value storage with a
// has-value bit, and its declaration position.
//
// Tree linkage (parent / first-child / next-sibling) is kept as arena
// indices rather than pointers — the whole tree drops at once, and
// there is no cyclic pointer graph to reason about.
type Node struct {
	Name  string
	Kind  Kind
	Basic Kind // element width, valid when Kind is ARRAY or TYPEDEF_NAME
	Count int  // element count, valid when Kind is ARRAY or TYPEDEF_NAME

	Const    bool
	ArrayIdx int // index within parent array; -1 unless this is a synthesised element

	Value    int64
	HasValue bool

	Pos lexer.Position

	// Elements holds the arena indices of the N synthesised "<name>_<i>"
	// siblings materialised for an ARRAY node (invariant 4). Empty for
	// every other kind.
	Elements []int

	parent, firstChild, lastChild, nextSibling int
}
