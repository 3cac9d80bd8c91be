package parser

import (
	"fmt"

	"github.com/Yazip/tayat/internal/ast"
	"github.com/Yazip/tayat/internal/diag"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/symtree"
)

// parseType implements the `Type` production, populating curBasic,
// curIsArray and curArrayCount for the caller's subsequent VarDecl or
// ConstDecl.
func (p *Parser) parseType() (lexer.Position, *diag.Diagnostic) {
	pos := p.cur.Pos

	if p.cur.Type == lexer.IDENT {
		idx, err := p.tree.LookupType(p.cur.Literal, p.cur.Pos)
		if err != nil {
			return pos, err
		}
		node := p.tree.Node(idx)
		p.curBasic = node.Basic
		p.curIsArray = node.Count > 0
		p.curArrayCount = node.Count
		p.advance()
		return pos, nil
	}

	kind, ok := basicKindForToken(p.cur.Type)
	if !ok {
		return pos, p.fail(diag.Syntactic, "expected a type")
	}
	p.curBasic = kind
	p.curIsArray = false
	p.curArrayCount = 0
	p.advance()
	return pos, nil
}

func basicKindForToken(tt lexer.TokenType) (symtree.Kind, bool) {
	switch tt {
	case lexer.INT:
		return symtree.INT, true
	case lexer.SHORT:
		return symtree.SHORT, true
	case lexer.LONG:
		return symtree.LONG, true
	case lexer.LONGLONG:
		return symtree.LONGLONG, true
	default:
		return symtree.UNDEFINED, false
	}
}

// parseTopDecl implements the `TopDecl` production.
func (p *Parser) parseTopDecl() (ast.Stmt, *ast.BlockStmt, *diag.Diagnostic) {
	switch p.cur.Type {
	case lexer.INT:
		p.advance()
		if p.cur.Type == lexer.MAIN {
			p.advance()
			block, err := p.parseMainFunc()
			return nil, block, err
		}
		p.curBasic = symtree.INT
		p.curIsArray = false
		p.curArrayCount = 0
		stmt, err := p.parseVarDecl()
		return stmt, nil, err

	case lexer.SHORT, lexer.LONG, lexer.LONGLONG:
		p.curBasic, _ = basicKindForToken(p.cur.Type)
		p.curIsArray = false
		p.curArrayCount = 0
		p.advance()
		stmt, err := p.parseVarDecl()
		return stmt, nil, err

	case lexer.TYPEDEF:
		p.advance()
		stmt, err := p.parseTypeDef()
		return stmt, nil, err

	case lexer.CONST:
		p.advance()
		stmt, err := p.parseConstDecl()
		return stmt, nil, err

	case lexer.IDENT:
		if _, err := p.parseType(); err != nil {
			return nil, nil, err
		}
		stmt, err := p.parseVarDecl()
		return stmt, nil, err

	default:
		return nil, nil, p.fail(diag.Syntactic, "expected a top-level declaration")
	}
}

// parseMainFunc implements `MainFunc := "(" ")" Block`.
func (p *Parser) parseMainFunc() (*ast.BlockStmt, *diag.Diagnostic) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return p.parseBlock()
}

// parseVarDecl implements `VarDecl := IdInitList ";"`, assuming the
// caller already consumed the declaration's Type.
func (p *Parser) parseVarDecl() (ast.Stmt, *diag.Diagnostic) {
	stmt, err := p.parseIdInitList(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseConstDecl implements `ConstDecl := Type IdInitList(must-init) ";"`.
func (p *Parser) parseConstDecl() (ast.Stmt, *diag.Diagnostic) {
	if _, err := p.parseType(); err != nil {
		return nil, err
	}
	if p.curIsArray {
		return nil, p.fail(diag.Semantic, "const of array type is not allowed")
	}
	stmt, err := p.parseIdInitList(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIdInitList implements `IdInitList := IdInit ( "," IdInit )*`.
func (p *Parser) parseIdInitList(isConst bool) (ast.Stmt, *diag.Diagnostic) {
	first, err := p.parseIdInit(isConst)
	if err != nil {
		return nil, err
	}
	stmts := []ast.Stmt{first}
	for p.cur.Type == lexer.COMMA {
		p.advance()
		next, err := p.parseIdInit(isConst)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, next)
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	return &ast.SeqStmt{Position: first.Pos(), Stmts: stmts}, nil
}

// parseIdInit implements `IdInit := IDENT ( "=" Expr )?`, declaring the
// symbol against the current declaration-type fields and emitting every
// semantic check tied to a declaration site.
func (p *Parser) parseIdInit(isConst bool) (ast.Stmt, *diag.Diagnostic) {
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	kind := p.curBasic
	if p.curIsArray {
		kind = symtree.ARRAY
	}
	if isConst && kind == symtree.ARRAY {
		return nil, diag.New(diag.Semantic, "const of array type is not allowed", nameTok.Literal, nameTok.Pos)
	}

	idx, derr := p.tree.Declare(nameTok.Literal, kind, nameTok.Pos)
	if derr != nil {
		return nil, derr
	}

	if kind == symtree.ARRAY {
		p.tree.SetBasicType(idx, p.curBasic)
		p.tree.SetArrayCount(idx, p.curArrayCount)
		p.tree.MaterializeArray(idx, p.curBasic, p.curArrayCount, nameTok.Pos)
	}

	var initExpr ast.Expr
	switch {
	case p.cur.Type == lexer.ASSIGN:
		if kind == symtree.ARRAY {
			return nil, diag.New(diag.Semantic,
				fmt.Sprintf("cannot assign to whole array '%s'", nameTok.Literal), nameTok.Literal, p.cur.Pos)
		}
		p.advance()
		initExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	case isConst:
		return nil, diag.New(diag.Semantic,
			fmt.Sprintf("const '%s' must be initialized", nameTok.Literal), nameTok.Literal, nameTok.Pos)
	}

	if isConst {
		p.tree.SetConst(idx)
	}

	return &ast.DeclStmt{Position: nameTok.Pos, NodeIdx: idx, Init: initExpr}, nil
}

// parseTypeDef implements `TypeDef := Type IDENT ( "[" Const "]" )? ";"`.
func (p *Parser) parseTypeDef() (ast.Stmt, *diag.Diagnostic) {
	if _, err := p.parseType(); err != nil {
		return nil, err
	}
	baseIsArray := p.curIsArray
	baseBasic := p.curBasic
	baseCount := p.curArrayCount

	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	count := baseCount
	if p.cur.Type == lexer.LBRACK {
		if baseIsArray {
			return nil, diag.New(diag.Semantic,
				fmt.Sprintf("typedef '%s': array of array is not allowed", nameTok.Literal), nameTok.Literal, nameTok.Pos)
		}
		p.advance()
		n, perr := p.parseArraySize()
		if perr != nil {
			return nil, perr
		}
		if _, err := p.expect(lexer.RBRACK); err != nil {
			return nil, err
		}
		count = n
	}

	idx, derr := p.tree.Declare(nameTok.Literal, symtree.TYPEDEF_NAME, nameTok.Pos)
	if derr != nil {
		return nil, derr
	}
	p.tree.SetBasicType(idx, baseBasic)
	p.tree.SetArrayCount(idx, count)

	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.DeclStmt{Position: nameTok.Pos, NodeIdx: idx}, nil
}

// parseArraySize parses a `Const` used as an array element count,
// rejecting non-positive sizes and sizes overflowing 32 bits.
func (p *Parser) parseArraySize() (int, *diag.Diagnostic) {
	tok := p.cur
	if tok.Type != lexer.CONST_DEC && tok.Type != lexer.CONST_HEX {
		return 0, p.fail(diag.Syntactic, "expected an array size constant")
	}
	v, err := parseIntLiteral(tok, 1)
	if err != nil {
		return 0, err
	}
	p.advance()
	if v <= 0 {
		return 0, diag.New(diag.Semantic, "array size must be a positive integer", tok.Literal, tok.Pos)
	}
	if v > (1<<31)-1 {
		return 0, diag.New(diag.Semantic, "array size exceeds 32-bit range", tok.Literal, tok.Pos)
	}
	return int(v), nil
}
