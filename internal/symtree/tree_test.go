package symtree

import (
	"testing"

	"github.com/Yazip/tayat/internal/lexer"
	"github.com/stretchr/testify/require"
)

var noPos = lexer.Position{Line: 1, Column: 1}

func TestDeclare_DuplicateInSameScopeFails(t *testing.T) {
	tr := New()
	_, err := tr.Declare("a", INT, noPos)
	require.Nil(t, err)

	_, err = tr.Declare("a", SHORT, noPos)
	require.NotNil(t, err)
}

func TestDeclare_SameNameDifferentScopesOK(t *testing.T) {
	tr := New()
	outer, err := tr.Declare("a", INT, noPos)
	require.Nil(t, err)
	tr.SetValue(outer, 1)

	tr.EnterScope()
	inner, err := tr.Declare("a", INT, noPos)
	require.Nil(t, err)
	tr.SetValue(inner, 2)
	tr.ExitScope()

	// Outer 'a' still resolves to 1 after exiting the inner scope.
	idx, err := tr.LookupVar("a", noPos)
	require.Nil(t, err)
	v, ok := tr.GetValue(idx)
	require.True(t, ok)
	require.Equal(t, int64(1), v)
}

func TestLookupVar_UndeclaredFails(t *testing.T) {
	tr := New()
	_, err := tr.LookupVar("missing", noPos)
	require.NotNil(t, err)
}

func TestLookupVar_TypedefNameIsNotAVariable(t *testing.T) {
	tr := New()
	idx, err := tr.Declare("T", TYPEDEF_NAME, noPos)
	require.Nil(t, err)
	tr.SetBasicType(idx, INT)

	_, err = tr.LookupVar("T", noPos)
	require.NotNil(t, err)
}

func TestLookupType_OnlyResolvesFromRoot(t *testing.T) {
	tr := New()
	idx, err := tr.Declare("T", TYPEDEF_NAME, noPos)
	require.Nil(t, err)
	tr.SetBasicType(idx, SHORT)

	tr.EnterScope()
	got, err := tr.LookupType("T", noPos)
	require.Nil(t, err)
	require.Equal(t, idx, got)
	tr.ExitScope()
}

func TestLookupType_NonTypedefNameFails(t *testing.T) {
	tr := New()
	_, err := tr.Declare("a", INT, noPos)
	require.Nil(t, err)

	_, err = tr.LookupType("a", noPos)
	require.NotNil(t, err)
}

func TestMaterializeArray_CreatesHiddenElements(t *testing.T) {
	tr := New()
	idx, err := tr.Declare("x", ARRAY, noPos)
	require.Nil(t, err)
	tr.SetBasicType(idx, INT)
	tr.SetArrayCount(idx, 3)
	tr.MaterializeArray(idx, INT, 3, noPos)

	for i := 0; i < 3; i++ {
		elem, ok := tr.Element(idx, i)
		require.True(t, ok)
		require.Equal(t, INT, tr.Node(elem).Kind)
		require.Equal(t, i, tr.Node(elem).ArrayIdx)
	}
	_, ok := tr.Element(idx, 3)
	require.False(t, ok)
}

func TestExitScope_RestoresParentCursor(t *testing.T) {
	tr := New()
	root := tr.Cur()
	inner := tr.EnterScope()
	require.Equal(t, inner, tr.Cur())
	tr.ExitScope()
	require.Equal(t, root, tr.Cur())
}

func TestDump_ProducesIndentedTree(t *testing.T) {
	tr := New()
	idx, _ := tr.Declare("a", INT, noPos)
	tr.SetValue(idx, 5)
	out := tr.String()
	require.Contains(t, out, "a: int = 5")
}
