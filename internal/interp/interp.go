// Package interp drives an ast.Program to completion against an
// eval.Evaluator and the symtree.Tree the parser already populated.
// This is the "when interpretation is enabled" layer: the
// lexer/symtree/parser run regardless, but this package only executes
// if the driver asks for it.
package interp

import (
	"fmt"
	"io"

	"github.com/Yazip/tayat/internal/ast"
	"github.com/Yazip/tayat/internal/diag"
	"github.com/Yazip/tayat/internal/eval"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/symtree"
)

// Interp executes a parsed Program. Warnings accumulates every
// non-fatal diagnostic the Evaluator raised along the way (the Warning
// category never aborts execution).
type Interp struct {
	Tree     *symtree.Tree
	Eval     *eval.Evaluator
	Warnings []*diag.Diagnostic
}

// New returns an Interp bound to tree, optionally tracing evaluator
// steps to out when debug is true.
func New(tree *symtree.Tree, debug bool, out io.Writer) *Interp {
	return &Interp{Tree: tree, Eval: eval.New(tree, debug, out)}
}

// Run executes the program's top-level declarations once, in source
// order, then its main block if present. It returns the first fatal
// diagnostic encountered, or nil on a clean run.
func (in *Interp) Run(prog *ast.Program) *diag.Diagnostic {
	for _, stmt := range prog.TopLevel {
		if err := in.execStmt(stmt); err != nil {
			return err
		}
	}
	if prog.Main != nil {
		if err := in.execBlock(prog.Main); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) execStmt(s ast.Stmt) *diag.Diagnostic {
	switch n := s.(type) {
	case *ast.EmptyStmt:
		return nil

	case *ast.SeqStmt:
		for _, sub := range n.Stmts {
			if err := in.execStmt(sub); err != nil {
				return err
			}
		}
		return nil

	case *ast.DeclStmt:
		if n.Init == nil {
			return nil
		}
		v, err := in.Eval.Eval(n.Init)
		if err != nil {
			return err
		}
		in.assign(n.NodeIdx, in.Tree.Node(n.NodeIdx).Name, v, n.Position)
		return nil

	case *ast.AssignStmt:
		v, err := in.Eval.Eval(n.Value)
		if err != nil {
			return err
		}
		target := n.NodeIdx
		if n.ElemNodeIdx >= 0 {
			target = n.ElemNodeIdx
		}
		in.assign(target, n.TargetName, v, n.Position)
		return nil

	case *ast.BlockStmt:
		return in.execBlock(n)

	case *ast.WhileStmt:
		return in.execWhile(n)
	}
	panic(fmt.Sprintf("interp: unhandled statement node %T", s))
}

func (in *Interp) assign(nodeIdx int, name string, v eval.Value, pos lexer.Position) {
	if warn := in.Eval.Assign(nodeIdx, name, v, pos); warn != nil {
		in.Warnings = append(in.Warnings, warn)
	}
}

// execBlock re-enters b's own symtree scope (created once by the
// parser) rather than allocating a new one, so a while-loop body can
// run any number of times against the same declarations.
func (in *Interp) execBlock(b *ast.BlockStmt) *diag.Diagnostic {
	prev := in.Tree.Cur()
	in.Tree.SetCur(b.ScopeIdx)
	defer in.Tree.SetCur(prev)

	for _, stmt := range b.Stmts {
		if err := in.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) execWhile(w *ast.WhileStmt) *diag.Diagnostic {
	for {
		cond, err := in.Eval.Eval(w.Cond)
		if err != nil {
			return err
		}
		if cond.V == 0 {
			return nil
		}
		if err := in.execStmt(w.Body); err != nil {
			return err
		}
	}
}
