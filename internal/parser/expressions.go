package parser

import (
	"fmt"
	"strconv"

	"github.com/Yazip/tayat/internal/ast"
	"github.com/Yazip/tayat/internal/diag"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/symtree"
)

// parseExpr implements:
//
//	Expr := ("+"|"-")? Rel ( ("=="|"!=") Rel )*
//
// A leading sign directly before a constant literal is fused into the
// literal's value (affecting its width selection); a leading '-' before
// anything else negates the whole Rel it precedes, and a leading '+' is
// always a no-op.
func (p *Parser) parseExpr() (ast.Expr, *diag.Diagnostic) {
	pos := p.cur.Pos
	sign := 0
	switch p.cur.Type {
	case lexer.PLUS:
		sign = 1
		p.advance()
	case lexer.MINUS:
		sign = -1
		p.advance()
	}

	if sign != 0 && (p.cur.Type == lexer.CONST_DEC || p.cur.Type == lexer.CONST_HEX) {
		lit, err := p.parseFusedConstant(sign)
		if err != nil {
			return nil, err
		}
		return p.continueFromPrim(lit)
	}

	rel, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	if sign == -1 {
		rel = &ast.UnaryExpr{Position: pos, X: rel}
	}
	return p.continueEqNeq(rel)
}

// continueFromPrim resumes operator-precedence climbing starting from an
// already-parsed Prim (used for a sign-fused literal, which must still
// participate in any following Mul/Add/Rel/Eq chain).
func (p *Parser) continueFromPrim(first ast.Expr) (ast.Expr, *diag.Diagnostic) {
	first, err := p.continueMul(first)
	if err != nil {
		return nil, err
	}
	first, err = p.continueAdd(first)
	if err != nil {
		return nil, err
	}
	first, err = p.continueRel(first)
	if err != nil {
		return nil, err
	}
	return p.continueEqNeq(first)
}

func (p *Parser) continueEqNeq(first ast.Expr) (ast.Expr, *diag.Diagnostic) {
	for p.cur.Type == lexer.EQ || p.cur.Type == lexer.NEQ {
		op := binOpForToken(p.cur.Type)
		pos := p.cur.Pos
		p.advance()
		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		first = &ast.BinaryExpr{Position: pos, Left: first, Right: right, Op: op}
	}
	return first, nil
}

// parseRel implements `Rel := Add ( ("<"|"<="|">"|">=") Add )*`.
func (p *Parser) parseRel() (ast.Expr, *diag.Diagnostic) {
	first, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return p.continueRel(first)
}

func (p *Parser) continueRel(first ast.Expr) (ast.Expr, *diag.Diagnostic) {
	for isRelToken(p.cur.Type) {
		op := binOpForToken(p.cur.Type)
		pos := p.cur.Pos
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		first = &ast.BinaryExpr{Position: pos, Left: first, Right: right, Op: op}
	}
	return first, nil
}

func isRelToken(tt lexer.TokenType) bool {
	return tt == lexer.LT || tt == lexer.LE || tt == lexer.GT || tt == lexer.GE
}

// parseAdd implements `Add := Mul ( ("+"|"-") Mul )*`.
func (p *Parser) parseAdd() (ast.Expr, *diag.Diagnostic) {
	first, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	return p.continueAdd(first)
}

func (p *Parser) continueAdd(first ast.Expr) (ast.Expr, *diag.Diagnostic) {
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		op := binOpForToken(p.cur.Type)
		pos := p.cur.Pos
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		first = &ast.BinaryExpr{Position: pos, Left: first, Right: right, Op: op}
	}
	return first, nil
}

// parseMul implements `Mul := Prim ( ("*"|"/"|"%") Prim )*`.
func (p *Parser) parseMul() (ast.Expr, *diag.Diagnostic) {
	first, err := p.parsePrim()
	if err != nil {
		return nil, err
	}
	return p.continueMul(first)
}

func (p *Parser) continueMul(first ast.Expr) (ast.Expr, *diag.Diagnostic) {
	for p.cur.Type == lexer.STAR || p.cur.Type == lexer.SLASH || p.cur.Type == lexer.PCT {
		op := binOpForToken(p.cur.Type)
		pos := p.cur.Pos
		p.advance()
		right, err := p.parsePrim()
		if err != nil {
			return nil, err
		}
		first = &ast.BinaryExpr{Position: pos, Left: first, Right: right, Op: op}
	}
	return first, nil
}

// parsePrim implements `Prim := Const | "(" Expr ")" | IDENT ( "[" Const "]" )?`.
func (p *Parser) parsePrim() (ast.Expr, *diag.Diagnostic) {
	if err := p.checkLexError(); err != nil {
		return nil, err
	}

	switch p.cur.Type {
	case lexer.CONST_DEC, lexer.CONST_HEX:
		return p.parseFusedConstant(1)

	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil

	case lexer.IDENT:
		name := p.cur
		idx, err := p.tree.LookupVar(name.Literal, name.Pos)
		if err != nil {
			return nil, err
		}
		p.advance()

		if p.cur.Type != lexer.LBRACK {
			node := p.tree.Node(idx)
			if node.Kind == symtree.ARRAY {
				return nil, diag.New(diag.Semantic,
					fmt.Sprintf("array '%s' used as a whole operand", name.Literal), name.Literal, name.Pos)
			}
			return &ast.VarExpr{Position: name.Pos, Name: name.Literal, NodeIdx: idx}, nil
		}
		return p.parseIndex(name, idx)

	default:
		return nil, p.fail(diag.Syntactic, "expected an expression")
	}
}

// parseIndex parses `"[" Const "]"` against an already-resolved array
// variable, enforcing that the index is a constant within bounds.
func (p *Parser) parseIndex(name lexer.Token, arrayIdx int) (ast.Expr, *diag.Diagnostic) {
	p.advance() // consume '['
	idxTok := p.cur
	if idxTok.Type != lexer.CONST_DEC && idxTok.Type != lexer.CONST_HEX {
		return nil, diag.New(diag.Semantic, "array index must be a constant", idxTok.Literal, idxTok.Pos)
	}
	k, err := parseIntLiteral(idxTok, 1)
	if err != nil {
		return nil, err
	}
	p.advance()
	if _, err := p.expect(lexer.RBRACK); err != nil {
		return nil, err
	}

	node := p.tree.Node(arrayIdx)
	if node.Kind != symtree.ARRAY {
		return nil, diag.New(diag.Semantic,
			fmt.Sprintf("'%s' is not an array", name.Literal), name.Literal, name.Pos)
	}
	if k < 0 || k >= int64(node.Count) {
		return nil, diag.New(diag.Semantic,
			fmt.Sprintf("index %d out of range for '%s'[%d]", k, name.Literal, node.Count),
			name.Literal, idxTok.Pos)
	}
	elemIdx, _ := p.tree.Element(arrayIdx, int(k))
	return &ast.IndexExpr{Position: name.Pos, Name: name.Literal, ArrayIdx: arrayIdx, Index: int(k), ElemNodeIdx: elemIdx}, nil
}

// parseFusedConstant consumes the current CONST_DEC/CONST_HEX token,
// applies sign, and narrows to the smallest fitting width.
func (p *Parser) parseFusedConstant(sign int) (ast.Expr, *diag.Diagnostic) {
	tok := p.cur
	value, err := parseIntLiteral(tok, sign)
	if err != nil {
		return nil, err
	}
	p.advance()
	kind := symtree.SmallestFitting(value)
	return &ast.ConstExpr{Position: tok.Pos, Kind: kind, Value: value}, nil
}

// parseIntLiteral parses a CONST_DEC or CONST_HEX token's digits as a
// signed 64-bit integer, applying sign (+1 or -1).
func parseIntLiteral(tok lexer.Token, sign int) (int64, *diag.Diagnostic) {
	var u uint64
	var err error
	switch tok.Type {
	case lexer.CONST_HEX:
		digits := tok.Literal[2:]
		u, err = strconv.ParseUint(digits, 16, 64)
	default:
		u, err = strconv.ParseUint(tok.Literal, 10, 64)
	}
	if err != nil {
		return 0, diag.New(diag.Semantic, "integer constant out of range", tok.Literal, tok.Pos)
	}
	return int64(sign) * int64(u), nil
}

func binOpForToken(tt lexer.TokenType) ast.BinaryOp {
	switch tt {
	case lexer.PLUS:
		return ast.OpAdd
	case lexer.MINUS:
		return ast.OpSub
	case lexer.STAR:
		return ast.OpMul
	case lexer.SLASH:
		return ast.OpDiv
	case lexer.PCT:
		return ast.OpMod
	case lexer.EQ:
		return ast.OpEq
	case lexer.NEQ:
		return ast.OpNeq
	case lexer.LT:
		return ast.OpLt
	case lexer.LE:
		return ast.OpLe
	case lexer.GT:
		return ast.OpGt
	case lexer.GE:
		return ast.OpGe
	}
	panic("parser: unhandled operator token " + tt.String())
}
