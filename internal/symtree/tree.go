// Package symtree implements tayat's scoped symbol tree: a rooted tree
// of declarations mirroring block nesting, consulted by the parser (for
// declarations and lookups) and the evaluator (for values).
package symtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/Yazip/tayat/internal/diag"
	"github.com/Yazip/tayat/internal/lexer"
)

// Tree is the arena-backed symbol tree. The zero value is not usable;
// construct one with New.
type Tree struct {
	nodes []Node
	root  int
	cur   int
}

// New returns a Tree containing only the global SCOPE root, with the
// cursor positioned at it.
func New() *Tree {
	t := &Tree{}
	t.root = t.alloc(Node{Kind: SCOPE, parent: noIndex, firstChild: noIndex, lastChild: noIndex, nextSibling: noIndex, ArrayIdx: noIndex})
	t.cur = t.root
	return t
}

func (t *Tree) alloc(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// Root returns the arena index of the global scope.
func (t *Tree) Root() int { return t.root }

// Cur returns the arena index of the current scope.
func (t *Tree) Cur() int { return t.cur }

// Node returns a copy of the node at idx.
func (t *Tree) Node(idx int) Node { return t.nodes[idx] }

func (t *Tree) childNamed(scope int, name string) int {
	for c := t.nodes[scope].firstChild; c != noIndex; c = t.nodes[c].nextSibling {
		if t.nodes[c].Kind != SCOPE && t.nodes[c].Name == name {
			return c
		}
	}
	return noIndex
}

func (t *Tree) appendChild(scope int, n Node) int {
	n.parent = scope
	n.firstChild = noIndex
	n.lastChild = noIndex
	n.nextSibling = noIndex
	if n.ArrayIdx == 0 {
		n.ArrayIdx = noIndex
	}
	idx := t.alloc(n)
	if t.nodes[scope].firstChild == noIndex {
		t.nodes[scope].firstChild = idx
	} else {
		t.nodes[t.nodes[scope].lastChild].nextSibling = idx
	}
	t.nodes[scope].lastChild = idx
	return idx
}

// Declare appends a new declaration of kind to the current scope. It
// fails with a Semantic duplicate-declaration diagnostic if name already
// exists among the current scope's direct children (invariant 1).
func (t *Tree) Declare(name string, kind Kind, pos lexer.Position) (int, *diag.Diagnostic) {
	if existing := t.childNamed(t.cur, name); existing != noIndex {
		return noIndex, diag.New(diag.Semantic,
			fmt.Sprintf("duplicate declaration of '%s'", name), name, pos)
	}
	idx := t.appendChild(t.cur, Node{Name: name, Kind: kind, ArrayIdx: noIndex, Pos: pos})
	return idx, nil
}

// SetBasicType records the element width of an array or typedef node.
func (t *Tree) SetBasicType(idx int, basic Kind) { t.nodes[idx].Basic = basic }

// SetArrayCount records the element count of an array or typedef node.
func (t *Tree) SetArrayCount(idx int, n int) { t.nodes[idx].Count = n }

// SetConst marks idx as a named constant.
func (t *Tree) SetConst(idx int) { t.nodes[idx].Const = true }

// SetIndex records the position of idx within its synthesised array.
func (t *Tree) SetIndex(idx, i int) { t.nodes[idx].ArrayIdx = i }

// MaterializeArray appends the N hidden "<name>_<i>" element siblings an
// ARRAY declaration requires (invariant 4), recording their arena indices
// on the array node itself for O(1) element access.
func (t *Tree) MaterializeArray(arrayIdx int, basic Kind, count int, pos lexer.Position) {
	name := t.nodes[arrayIdx].Name
	elems := make([]int, count)
	for i := 0; i < count; i++ {
		elemName := fmt.Sprintf("%s_%d", name, i)
		elemIdx := t.appendChild(t.nodes[arrayIdx].parent, Node{
			Name: elemName, Kind: basic, ArrayIdx: i, Pos: pos,
		})
		t.SetIndex(elemIdx, i)
		elems[i] = elemIdx
	}
	t.nodes[arrayIdx].Elements = elems
}

// Element returns the arena index of the i-th synthesised element of the
// array declared at arrayIdx, and whether i is in range.
func (t *Tree) Element(arrayIdx, i int) (int, bool) {
	elems := t.nodes[arrayIdx].Elements
	if i < 0 || i >= len(elems) {
		return noIndex, false
	}
	return elems[i], true
}

// LookupVar resolves name by walking the scope chain from the current
// scope outward to the root (invariant 2). It fails with an undeclared
// diagnostic if no scope holds the name, or a not-a-variable diagnostic
// if the nearest match is a TYPEDEF_NAME.
func (t *Tree) LookupVar(name string, pos lexer.Position) (int, *diag.Diagnostic) {
	for scope := t.cur; scope != noIndex; scope = t.nodes[scope].parent {
		if idx := t.childNamed(scope, name); idx != noIndex {
			if t.nodes[idx].Kind == TYPEDEF_NAME {
				return noIndex, diag.New(diag.Semantic,
					fmt.Sprintf("'%s' is a type, not a variable", name), name, pos)
			}
			return idx, nil
		}
	}
	return noIndex, diag.New(diag.Semantic, fmt.Sprintf("undeclared identifier '%s'", name), name, pos)
}

// LookupType resolves a typedef name against the root scope only
// (invariant 3: typedefs are global).
func (t *Tree) LookupType(name string, pos lexer.Position) (int, *diag.Diagnostic) {
	idx := t.childNamed(t.root, name)
	if idx == noIndex {
		return noIndex, diag.New(diag.Semantic, fmt.Sprintf("undeclared type '%s'", name), name, pos)
	}
	if t.nodes[idx].Kind != TYPEDEF_NAME {
		return noIndex, diag.New(diag.Semantic, fmt.Sprintf("'%s' is not a type", name), name, pos)
	}
	return idx, nil
}

// EnterScope creates a new SCOPE child of the current node and moves the
// cursor into it, returning the new node's index.
func (t *Tree) EnterScope() int {
	idx := t.appendChild(t.cur, Node{Kind: SCOPE})
	t.cur = idx
	return idx
}

// ExitScope moves the cursor to the parent of the current scope.
func (t *Tree) ExitScope() {
	if t.cur == t.root {
		panic("symtree: ExitScope called at root")
	}
	t.cur = t.nodes[t.cur].parent
}

// SetCur repositions the cursor directly — used by the evaluator to
// re-enter a previously parsed block's scope for re-execution (e.g. a
// while loop's body), without disturbing the tree shape.
func (t *Tree) SetCur(idx int) { t.cur = idx }

// SetValue stores v in node idx's value slot and marks it initialized.
// Only meaningful while interpreting.
func (t *Tree) SetValue(idx int, v int64) {
	t.nodes[idx].Value = v
	t.nodes[idx].HasValue = true
}

// GetValue returns node idx's stored value and whether it was ever set.
func (t *Tree) GetValue(idx int) (int64, bool) {
	return t.nodes[idx].Value, t.nodes[idx].HasValue
}

// Dump writes the tree from the root in indented form, the shape
// printed after a successful non-interpreting parse.
func (t *Tree) Dump(w io.Writer) {
	t.dumpNode(w, t.root, 0)
}

func (t *Tree) dumpNode(w io.Writer, idx int, depth int) {
	indent := strings.Repeat("  ", depth)
	n := t.nodes[idx]
	switch n.Kind {
	case SCOPE:
		if idx != t.root {
			fmt.Fprintf(w, "%sscope\n", indent)
		}
	case ARRAY:
		fmt.Fprintf(w, "%s%s: array[%d] of %s", indent, n.Name, n.Count, n.Basic)
		if n.Const {
			fmt.Fprint(w, " const")
		}
		fmt.Fprintln(w)
	case TYPEDEF_NAME:
		if n.Count > 0 {
			fmt.Fprintf(w, "%stypedef %s: %s[%d]\n", indent, n.Name, n.Basic, n.Count)
		} else {
			fmt.Fprintf(w, "%stypedef %s: %s\n", indent, n.Name, n.Basic)
		}
	default:
		fmt.Fprintf(w, "%s%s: %s", indent, n.Name, n.Kind)
		if n.Const {
			fmt.Fprint(w, " const")
		}
		if n.HasValue {
			fmt.Fprintf(w, " = %d", n.Value)
		}
		fmt.Fprintln(w)
	}

	for c := n.firstChild; c != noIndex; c = t.nodes[c].nextSibling {
		t.dumpNode(w, c, depth+1)
	}
}

// String renders the full tree, for tests and debugging.
func (t *Tree) String() string {
	var sb strings.Builder
	t.Dump(&sb)
	return sb.String()
}
