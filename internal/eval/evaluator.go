package eval

import (
	"fmt"
	"io"

	"github.com/Yazip/tayat/internal/ast"
	"github.com/Yazip/tayat/internal/diag"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/symtree"
)

// Evaluator walks an expression AST against a symbol tree, maintaining
// an operand stack. The stack is empty at every statement boundary:
// Eval always pops its own final result before returning.
type Evaluator struct {
	Tree  *symtree.Tree
	Debug bool
	Out   io.Writer

	stack []Value
}

// New returns an Evaluator bound to tree, optionally tracing to out when
// debug is true.
func New(tree *symtree.Tree, debug bool, out io.Writer) *Evaluator {
	return &Evaluator{Tree: tree, Debug: debug, Out: out}
}

func (e *Evaluator) push(v Value) { e.stack = append(e.stack, v) }

func (e *Evaluator) pop() Value {
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v
}

func (e *Evaluator) trace(pos lexer.Position, format string, args ...any) {
	if !e.Debug || e.Out == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(e.Out, "DEBUG: [%s] (%d:%d) %s\n", e.scopeLabel(), pos.Line, pos.Column, msg)
}

func (e *Evaluator) scopeLabel() string {
	if e.Tree.Cur() == e.Tree.Root() {
		return "global"
	}
	return fmt.Sprintf("scope%d", e.Tree.Cur())
}

// Eval evaluates expr, leaving the operand stack exactly as it found it.
func (e *Evaluator) Eval(expr ast.Expr) (Value, *diag.Diagnostic) {
	depth := len(e.stack)
	v, err := e.evalInto(expr)
	if err != nil {
		e.stack = e.stack[:depth]
		return Value{}, err
	}
	return v, nil
}

func (e *Evaluator) evalInto(expr ast.Expr) (Value, *diag.Diagnostic) {
	switch n := expr.(type) {
	case *ast.ConstExpr:
		v := newValue(n.Kind, n.Value)
		e.push(v)
		return e.pop(), nil

	case *ast.VarExpr:
		return e.readNode(n.NodeIdx, n.Name, n.Position)

	case *ast.IndexExpr:
		return e.readNode(n.ElemNodeIdx, fmt.Sprintf("%s[%d]", n.Name, n.Index), n.Position)

	case *ast.UnaryExpr:
		x, err := e.evalInto(n.X)
		if err != nil {
			return Value{}, err
		}
		e.push(x)
		operand := e.pop()
		result := newValue(operand.Kind, -operand.V)
		e.trace(n.Position, "unary - -> %d (%s)", result.V, result.Kind)
		return result, nil

	case *ast.BinaryExpr:
		return e.evalBinary(n)
	}
	panic(fmt.Sprintf("eval: unhandled expression node %T", expr))
}

func (e *Evaluator) readNode(nodeIdx int, display string, pos lexer.Position) (Value, *diag.Diagnostic) {
	val, has := e.Tree.GetValue(nodeIdx)
	if !has {
		return Value{}, diag.New(diag.Interpretation,
			fmt.Sprintf("use of uninitialized '%s'", display), display, pos)
	}
	node := e.Tree.Node(nodeIdx)
	return newValue(node.Kind, val), nil
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpr) (Value, *diag.Diagnostic) {
	left, err := e.evalInto(n.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := e.evalInto(n.Right)
	if err != nil {
		return Value{}, err
	}
	e.push(left)
	e.push(right)
	r := e.pop()
	l := e.pop()

	if isRelational(n.Op) {
		result, diagErr := e.compare(l, r, n.Op, n.Position)
		if diagErr != nil {
			return Value{}, diagErr
		}
		e.trace(n.Position, "%s %s %s -> %d", l.Kind, opSymbol(n.Op), r.Kind, result.V)
		return result, nil
	}

	width := symtree.Max(l.Kind, r.Kind)
	lc := newValue(width, l.V)
	rc := newValue(width, r.V)
	if l.Kind != width || r.Kind != width {
		e.trace(n.Position, "promote %s,%s -> %s", l.Kind, r.Kind, width)
	}

	result, diagErr := e.arith(lc, rc, n.Op, n.Position)
	if diagErr != nil {
		return Value{}, diagErr
	}
	e.trace(n.Position, "%s %s %s -> %d (%s)", l.Kind, opSymbol(n.Op), r.Kind, result.V, result.Kind)
	return result, nil
}

func (e *Evaluator) arith(l, r Value, op ast.BinaryOp, pos lexer.Position) (Value, *diag.Diagnostic) {
	switch op {
	case ast.OpAdd:
		return newValue(l.Kind, l.V+r.V), nil
	case ast.OpSub:
		return newValue(l.Kind, l.V-r.V), nil
	case ast.OpMul:
		return newValue(l.Kind, l.V*r.V), nil
	case ast.OpDiv:
		if r.V == 0 {
			return Value{}, diag.New(diag.Interpretation, "division by zero", "/", pos)
		}
		// Go's integer division truncates toward zero, matching the
		// C-like semantics this language requires.
		return newValue(l.Kind, l.V/r.V), nil
	case ast.OpMod:
		if r.V == 0 {
			return Value{}, diag.New(diag.Interpretation, "modulo by zero", "%", pos)
		}
		return newValue(l.Kind, l.V%r.V), nil
	}
	panic("eval: unhandled arithmetic operator")
}

func (e *Evaluator) compare(l, r Value, op ast.BinaryOp, pos lexer.Position) (Value, *diag.Diagnostic) {
	width := symtree.Max(l.Kind, r.Kind)
	lv := symtree.Truncate(width, l.V)
	rv := symtree.Truncate(width, r.V)

	var b bool
	switch op {
	case ast.OpEq:
		b = lv == rv
	case ast.OpNeq:
		b = lv != rv
	case ast.OpLt:
		b = lv < rv
	case ast.OpLe:
		b = lv <= rv
	case ast.OpGt:
		b = lv > rv
	case ast.OpGe:
		b = lv >= rv
	default:
		panic("eval: unhandled comparison operator")
	}
	n := int64(0)
	if b {
		n = 1
	}
	_ = pos
	return newValue(symtree.INT, n), nil
}

func isRelational(op ast.BinaryOp) bool {
	switch op {
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return true
	default:
		return false
	}
}

func opSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpEq:
		return "=="
	case ast.OpNeq:
		return "!="
	case ast.OpLt:
		return "<"
	case ast.OpLe:
		return "<="
	case ast.OpGt:
		return ">"
	case ast.OpGe:
		return ">="
	}
	return "?"
}

// Assign casts v to the destination node's declared width and stores it.
// It returns a non-fatal Warning diagnostic when the assignment narrows
// the value (always reported) or merely widens/narrows between distinct
// widths without loss (reported only when Debug is set).
func (e *Evaluator) Assign(nodeIdx int, name string, v Value, pos lexer.Position) *diag.Diagnostic {
	dest := e.Tree.Node(nodeIdx).Kind
	casted := symtree.Truncate(dest, v.V)

	var warn *diag.Diagnostic
	switch {
	case !symtree.Fits(dest, v.V):
		warn = diag.New(diag.Warning,
			fmt.Sprintf("value %d does not fit in '%s' (%s); truncated to %d", v.V, name, dest, casted),
			name, pos)
		e.trace(pos, "truncate %d -> %d (%s)", v.V, casted, dest)
	case v.Kind != dest && e.Debug:
		warn = diag.New(diag.Warning,
			fmt.Sprintf("implicit conversion of '%s' from %s to %s", name, v.Kind, dest),
			name, pos)
		e.trace(pos, "convert %s -> %s", v.Kind, dest)
	}

	e.Tree.SetValue(nodeIdx, casted)
	e.trace(pos, "%s = %d", name, casted)
	return warn
}
