// Package ast holds the small statement/expression tree the parser
// builds for anything that might need to run more than once:
// re-iterating a while loop requires either rewinding the token stream
// or materialising an AST for loop bodies, and this module chooses the
// latter. Every name reference is already bound to a symtree arena index
// by the time the parser emits it — these nodes describe *execution*,
// not lookup.
package ast

import (
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/symtree"
)

// Expr is any expression node.
type Expr interface {
	exprNode()
	Pos() lexer.Position
}

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
	Pos() lexer.Position
}

// ConstExpr is an integer literal, already narrowed to its smallest
// fitting width.
type ConstExpr struct {
	Position lexer.Position
	Kind     symtree.Kind // SHORT, INT, or LONGLONG — never LONG (literals never produce it)
	Value    int64
}

func (*ConstExpr) exprNode()             {}
func (c *ConstExpr) Pos() lexer.Position { return c.Position }

// VarExpr references a scalar variable, already resolved to its symtree
// node index at parse time.
type VarExpr struct {
	Position lexer.Position
	Name     string
	NodeIdx  int
}

func (*VarExpr) exprNode()             {}
func (v *VarExpr) Pos() lexer.Position { return v.Position }

// IndexExpr references one element of an array. Index is a compile-time
// constant ("no computed indexing"), already range-checked against the
// array's declared count, and ElemNodeIdx is the resolved synthesised
// element node.
type IndexExpr struct {
	Position    lexer.Position
	Name        string
	ArrayIdx    int
	Index       int
	ElemNodeIdx int
}

func (*IndexExpr) exprNode()             {}
func (i *IndexExpr) Pos() lexer.Position { return i.Position }

// UnaryExpr is a leading '-' applied to a non-constant operand (a
// leading constant sign is fused directly into ConstExpr instead).
type UnaryExpr struct {
	Position lexer.Position
	X        Expr
}

func (*UnaryExpr) exprNode()             {}
func (u *UnaryExpr) Pos() lexer.Position { return u.Position }

// BinaryOp names the operators a BinaryExpr can carry.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
)

// BinaryExpr is a binary arithmetic, relational, or equality node.
type BinaryExpr struct {
	Position lexer.Position
	Left     Expr
	Right    Expr
	Op       BinaryOp
}

func (*BinaryExpr) exprNode()             {}
func (b *BinaryExpr) Pos() lexer.Position { return b.Position }

// EmptyStmt is the bare ';' statement.
type EmptyStmt struct {
	Position lexer.Position
}

func (*EmptyStmt) stmtNode()             {}
func (e *EmptyStmt) Pos() lexer.Position { return e.Position }

// DeclStmt (re-)initializes a declared variable or constant. Re-running
// one that has an initializer assigns the node's value again — the only
// re-execution path is a while loop body, and a constant inside a loop
// body is not required to retain its first iteration's value. Re-running
// one without an initializer does nothing: the node keeps whatever value
// the previous iteration left in it.
type DeclStmt struct {
	Position lexer.Position
	NodeIdx  int
	Init     Expr // nil if the declaration had no initializer
}

func (*DeclStmt) stmtNode()             {}
func (d *DeclStmt) Pos() lexer.Position { return d.Position }

// AssignStmt is `var = expr;` or `var[K] = expr;`. ElemNodeIdx is -1 for
// a plain variable target.
type AssignStmt struct {
	Position    lexer.Position
	TargetName  string
	NodeIdx     int
	ElemNodeIdx int
	Value       Expr
}

func (*AssignStmt) stmtNode()             {}
func (a *AssignStmt) Pos() lexer.Position { return a.Position }

// BlockStmt is a `{ ... }` region. ScopeIdx is the symtree SCOPE node the
// parser created for it; re-executing the block re-enters this same
// node rather than allocating a fresh one each time.
type BlockStmt struct {
	Position lexer.Position
	ScopeIdx int
	Stmts    []Stmt
}

func (*BlockStmt) stmtNode()             {}
func (b *BlockStmt) Pos() lexer.Position { return b.Position }

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	Position lexer.Position
	Cond     Expr
	Body     Stmt
}

func (*WhileStmt) stmtNode()             {}
func (w *WhileStmt) Pos() lexer.Position { return w.Position }

// SeqStmt groups the several declarations a single `Type a = 1, b = 2;`
// line produces, so a VarDecl/ConstDecl production can still return one
// ast.Stmt.
type SeqStmt struct {
	Position lexer.Position
	Stmts    []Stmt
}

func (*SeqStmt) stmtNode()             {}
func (s *SeqStmt) Pos() lexer.Position { return s.Position }

// Program is the whole parsed source: top-level declarations (run
// exactly once, in source order) and an optional `int main() {...}`.
type Program struct {
	TopLevel []Stmt
	Main     *BlockStmt // nil if the source had no main
}
