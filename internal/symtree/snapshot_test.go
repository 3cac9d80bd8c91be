package symtree

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// These snapshot tests golden-test Dump's exact indented shape using
// go-snaps — the fixture is a hand-built tree rather than a parsed
// source file, since symtree has no dependency on the parser.
func TestDump_Snapshot_ScalarsAndConst(t *testing.T) {
	tr := New()
	a, _ := tr.Declare("a", INT, noPos)
	tr.SetValue(a, 5)
	b, _ := tr.Declare("limit", SHORT, noPos)
	tr.SetConst(b)
	tr.SetValue(b, 100)

	snaps.MatchSnapshot(t, tr.String())
}

func TestDump_Snapshot_NestedScopeAndArray(t *testing.T) {
	tr := New()
	x, _ := tr.Declare("x", LONGLONG, noPos)
	tr.SetValue(x, 42)

	arr, _ := tr.Declare("values", ARRAY, noPos)
	tr.SetBasicType(arr, SHORT)
	tr.SetArrayCount(arr, 3)
	tr.MaterializeArray(arr, SHORT, 3, noPos)

	tr.EnterScope()
	y, _ := tr.Declare("y", INT, noPos)
	tr.SetValue(y, 7)
	tr.ExitScope()

	snaps.MatchSnapshot(t, tr.String())
}

func TestDump_Snapshot_Typedef(t *testing.T) {
	tr := New()
	td, _ := tr.Declare("Row", TYPEDEF_NAME, noPos)
	tr.SetBasicType(td, SHORT)
	tr.SetArrayCount(td, 4)

	snaps.MatchSnapshot(t, tr.String())
}
