package parser

import (
	"fmt"

	"github.com/Yazip/tayat/internal/ast"
	"github.com/Yazip/tayat/internal/diag"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/symtree"
)

// parseBlock implements `Block := "{" BlockItem* "}"`, opening a fresh
// symtree scope for the duration of the block.
func (p *Parser) parseBlock() (*ast.BlockStmt, *diag.Diagnostic) {
	pos := p.cur.Pos
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	scopeIdx := p.tree.EnterScope()

	var stmts []ast.Stmt
	for p.cur.Type != lexer.RBRACE {
		if p.cur.Type == lexer.EOF {
			p.tree.ExitScope()
			return nil, p.fail(diag.Syntactic, "unexpected end of input, expected '}'")
		}
		if err := p.checkLexError(); err != nil {
			p.tree.ExitScope()
			return nil, err
		}
		stmt, err := p.parseBlockItem()
		if err != nil {
			p.tree.ExitScope()
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // consume '}'
	p.tree.ExitScope()

	return &ast.BlockStmt{Position: pos, ScopeIdx: scopeIdx, Stmts: stmts}, nil
}

// parseBlockItem implements `BlockItem := Decl | Stmt`. A leading IDENT is
// ambiguous between "a typedef-name starting a VarDecl" and "a variable
// being assigned to"; rather than any grammar lookahead trick, the parser
// asks the symbol tree directly whether the identifier currently names a
// type (typedefs only ever live at the root scope, so this is a single
// lookup, not a guess).
func (p *Parser) parseBlockItem() (ast.Stmt, *diag.Diagnostic) {
	switch p.cur.Type {
	case lexer.INT, lexer.SHORT, lexer.LONG, lexer.LONGLONG:
		p.curBasic, _ = basicKindForToken(p.cur.Type)
		p.curIsArray = false
		p.curArrayCount = 0
		p.advance()
		return p.parseVarDecl()

	case lexer.TYPEDEF:
		return nil, p.fail(diag.Syntactic, "typedef is only allowed at top level")

	case lexer.CONST:
		p.advance()
		return p.parseConstDecl()

	case lexer.IDENT:
		if _, err := p.tree.LookupType(p.cur.Literal, p.cur.Pos); err == nil {
			if _, terr := p.parseType(); terr != nil {
				return nil, terr
			}
			return p.parseVarDecl()
		}
		return p.parseStmt()

	default:
		return p.parseStmt()
	}
}

// parseStmt implements the non-declaration `Stmt` alternatives: the empty
// statement, a nested block, `while`, and assignment.
func (p *Parser) parseStmt() (ast.Stmt, *diag.Diagnostic) {
	switch p.cur.Type {
	case lexer.SEMI:
		pos := p.cur.Pos
		p.advance()
		return &ast.EmptyStmt{Position: pos}, nil

	case lexer.LBRACE:
		return p.parseBlock()

	case lexer.WHILE:
		return p.parseWhile()

	case lexer.IDENT:
		return p.parseAssignStmt()

	default:
		return nil, p.fail(diag.Syntactic, "expected a statement")
	}
}

// parseWhile implements `While := "while" "(" Expr ")" Stmt`. The body is
// whatever single BlockItem follows — usually a Block — and is re-entered
// (not re-parsed) by the evaluator each iteration.
func (p *Parser) parseWhile() (ast.Stmt, *diag.Diagnostic) {
	pos := p.cur.Pos
	p.advance() // consume 'while'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlockItem()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Position: pos, Cond: cond, Body: body}, nil
}

// parseAssignStmt implements `Assign := IDENT ( "[" Const "]" )? "=" Expr ";"`.
func (p *Parser) parseAssignStmt() (ast.Stmt, *diag.Diagnostic) {
	nameTok := p.cur
	idx, err := p.tree.LookupVar(nameTok.Literal, nameTok.Pos)
	if err != nil {
		return nil, err
	}
	p.advance()

	elemNodeIdx := -1
	targetIdx := idx

	if p.cur.Type == lexer.LBRACK {
		node := p.tree.Node(idx)
		if node.Kind != symtree.ARRAY {
			return nil, diag.New(diag.Semantic,
				fmt.Sprintf("'%s' is not an array", nameTok.Literal), nameTok.Literal, nameTok.Pos)
		}
		p.advance()
		idxTok := p.cur
		if idxTok.Type != lexer.CONST_DEC && idxTok.Type != lexer.CONST_HEX {
			return nil, diag.New(diag.Semantic, "array index must be a constant", idxTok.Literal, idxTok.Pos)
		}
		k, ierr := parseIntLiteral(idxTok, 1)
		if ierr != nil {
			return nil, ierr
		}
		p.advance()
		if _, err := p.expect(lexer.RBRACK); err != nil {
			return nil, err
		}
		if k < 0 || k >= int64(node.Count) {
			return nil, diag.New(diag.Semantic,
				fmt.Sprintf("index %d out of range for '%s'[%d]", k, nameTok.Literal, node.Count),
				nameTok.Literal, idxTok.Pos)
		}
		elem, _ := p.tree.Element(idx, int(k))
		elemNodeIdx = elem
		targetIdx = elem
	} else if p.tree.Node(idx).Kind == symtree.ARRAY {
		return nil, diag.New(diag.Semantic,
			fmt.Sprintf("cannot assign to whole array '%s'", nameTok.Literal), nameTok.Literal, nameTok.Pos)
	}

	if p.tree.Node(targetIdx).Const {
		return nil, diag.New(diag.Semantic,
			fmt.Sprintf("cannot assign to const '%s'", nameTok.Literal), nameTok.Literal, nameTok.Pos)
	}

	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, verr := p.parseExpr()
	if verr != nil {
		return nil, verr
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}

	return &ast.AssignStmt{
		Position:    nameTok.Pos,
		TargetName:  nameTok.Literal,
		NodeIdx:     idx,
		ElemNodeIdx: elemNodeIdx,
		Value:       value,
	}, nil
}
