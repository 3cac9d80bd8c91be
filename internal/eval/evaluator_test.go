package eval

import (
	"testing"

	"github.com/Yazip/tayat/internal/ast"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/symtree"
	"github.com/stretchr/testify/require"
)

var noPos = lexer.Position{Line: 1, Column: 1}

func constExpr(kind symtree.Kind, v int64) ast.Expr {
	return &ast.ConstExpr{Kind: kind, Value: v, Position: noPos}
}

func TestEval_BinaryPromotionTakesMaxRank(t *testing.T) {
	tr := symtree.New()
	ev := New(tr, false, nil)

	expr := &ast.BinaryExpr{
		Left:  constExpr(symtree.SHORT, 5),
		Right: constExpr(symtree.LONGLONG, 10),
		Op:    ast.OpAdd,
	}
	v, err := ev.Eval(expr)
	require.Nil(t, err)
	require.Equal(t, symtree.LONGLONG, v.Kind)
	require.Equal(t, int64(15), v.V)
}

func TestEval_ComparisonProducesInt(t *testing.T) {
	tr := symtree.New()
	ev := New(tr, false, nil)
	expr := &ast.BinaryExpr{Left: constExpr(symtree.INT, 3), Right: constExpr(symtree.INT, 5), Op: ast.OpLt}
	v, err := ev.Eval(expr)
	require.Nil(t, err)
	require.Equal(t, symtree.INT, v.Kind)
	require.Equal(t, int64(1), v.V)
}

func TestEval_DivisionByZeroIsInterpretationError(t *testing.T) {
	tr := symtree.New()
	ev := New(tr, false, nil)
	expr := &ast.BinaryExpr{Left: constExpr(symtree.INT, 10), Right: constExpr(symtree.INT, 0), Op: ast.OpDiv}
	_, err := ev.Eval(expr)
	require.NotNil(t, err)
}

func TestEval_ModuloTruncatesTowardZero(t *testing.T) {
	tr := symtree.New()
	ev := New(tr, false, nil)
	expr := &ast.BinaryExpr{Left: constExpr(symtree.INT, -7), Right: constExpr(symtree.INT, 2), Op: ast.OpMod}
	v, err := ev.Eval(expr)
	require.Nil(t, err)
	require.Equal(t, int64(-1), v.V)
}

func TestEval_UninitializedReadIsInterpretationError(t *testing.T) {
	tr := symtree.New()
	idx, _ := tr.Declare("a", symtree.INT, noPos)
	ev := New(tr, false, nil)
	_, err := ev.Eval(&ast.VarExpr{Name: "a", NodeIdx: idx, Position: noPos})
	require.NotNil(t, err)
}

func TestAssign_TruncationWarningAlwaysFires(t *testing.T) {
	tr := symtree.New()
	idx, _ := tr.Declare("c", symtree.SHORT, noPos)
	ev := New(tr, false, nil)
	warn := ev.Assign(idx, "c", Value{Kind: symtree.INT, V: 70000}, noPos)
	require.NotNil(t, warn)
	v, _ := tr.GetValue(idx)
	require.Equal(t, int64(int16(70000)), v)
}

func TestAssign_FittingValueProducesNoWarning(t *testing.T) {
	tr := symtree.New()
	idx, _ := tr.Declare("a", symtree.INT, noPos)
	ev := New(tr, false, nil)
	warn := ev.Assign(idx, "a", Value{Kind: symtree.INT, V: 15}, noPos)
	require.Nil(t, warn)
}

func TestAssign_ConversionWarningOnlyInDebugMode(t *testing.T) {
	tr := symtree.New()
	idx, _ := tr.Declare("a", symtree.LONGLONG, noPos)

	quiet := New(tr, false, nil)
	warn := quiet.Assign(idx, "a", Value{Kind: symtree.SHORT, V: 5}, noPos)
	require.Nil(t, warn)

	debugEval := New(tr, true, nil)
	warn = debugEval.Assign(idx, "a", Value{Kind: symtree.SHORT, V: 5}, noPos)
	require.NotNil(t, warn)
}

func TestEval_StackIsEmptyAfterEveryExpression(t *testing.T) {
	tr := symtree.New()
	ev := New(tr, false, nil)
	expr := &ast.BinaryExpr{
		Left:  &ast.BinaryExpr{Left: constExpr(symtree.INT, 1), Right: constExpr(symtree.INT, 2), Op: ast.OpAdd},
		Right: constExpr(symtree.INT, 3),
		Op:    ast.OpMul,
	}
	_, err := ev.Eval(expr)
	require.Nil(t, err)
	require.Empty(t, ev.stack)
}
