// Package parser implements tayat's recursive-descent parser. It drives
// declarations into a symtree.Tree and builds the small ast package's
// statement/expression trees for later execution, performing every
// semantic check it can while an operand's type is still known. Parsing
// aborts at the first error — this language has no error recovery, so
// every parse method returns as soon as one is found.
package parser

import (
	"github.com/Yazip/tayat/internal/ast"
	"github.com/Yazip/tayat/internal/diag"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/symtree"
)

// Parser holds the single token of lookahead the grammar requires, via
// a small pushback stack, plus the "current declaration type" and
// "current array element count" fields the grammar's IdInitList
// production consults.
type Parser struct {
	lex  *lexer.Lexer
	tree *symtree.Tree

	cur      lexer.Token
	pushback []lexer.Token

	curBasic      symtree.Kind // base width of the declaration in progress
	curIsArray    bool         // true if curBasic came from an array-valued typedef
	curArrayCount int
}

// New creates a Parser reading from lex and mutating tree. tree should
// be freshly constructed (symtree.New()); the parser enters the main
// function's block as an ordinary nested scope of the global one.
func New(lex *lexer.Lexer, tree *symtree.Tree) *Parser {
	p := &Parser{lex: lex, tree: tree}
	p.advance()
	return p
}

// Tree returns the symbol tree the parser has been mutating.
func (p *Parser) Tree() *symtree.Tree { return p.tree }

func (p *Parser) next() lexer.Token {
	if n := len(p.pushback); n > 0 {
		t := p.pushback[n-1]
		p.pushback = p.pushback[:n-1]
		return t
	}
	return p.lex.NextToken()
}

// unread pushes a token back onto the lookahead buffer.
func (p *Parser) unread(t lexer.Token) {
	p.pushback = append(p.pushback, t)
}

func (p *Parser) advance() {
	p.cur = p.next()
}

// peek returns the token after the current one without consuming it.
func (p *Parser) peek() lexer.Token {
	t := p.next()
	p.unread(t)
	return t
}

func (p *Parser) fail(category diag.Category, msg string) *diag.Diagnostic {
	return diag.New(category, msg, p.cur.Literal, p.cur.Pos)
}

// expect consumes the current token if it has type tt, otherwise reports
// a Syntactic error naming what was expected.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, *diag.Diagnostic) {
	if p.cur.Type == lexer.ILLEGAL {
		return lexer.Token{}, p.fail(diag.Lexical, p.cur.ErrMessage)
	}
	if p.cur.Type != tt {
		return lexer.Token{}, p.fail(diag.Syntactic, "expected "+tt.String()+", got "+p.cur.Type.String())
	}
	t := p.cur
	p.advance()
	return t, nil
}

// checkLexError converts a lexer ILLEGAL token sitting at p.cur into a
// Lexical diagnostic; callers invoke it before consuming a token that
// might be ILLEGAL.
func (p *Parser) checkLexError() *diag.Diagnostic {
	if p.cur.Type == lexer.ILLEGAL {
		return p.fail(diag.Lexical, p.cur.ErrMessage)
	}
	return nil
}

// ParseProgram parses the whole source per the `Program := TopDecl* END`
// production, returning the resulting ast.Program or the first
// diagnostic encountered.
func (p *Parser) ParseProgram() (*ast.Program, *diag.Diagnostic) {
	prog := &ast.Program{}

	for p.cur.Type != lexer.EOF {
		if err := p.checkLexError(); err != nil {
			return nil, err
		}
		stmt, main, err := p.parseTopDecl()
		if err != nil {
			return nil, err
		}
		if main != nil {
			if prog.Main != nil {
				return nil, p.fail(diag.Syntactic, "multiple definitions of main")
			}
			prog.Main = main
			continue
		}
		prog.TopLevel = append(prog.TopLevel, stmt)
	}

	return prog, nil
}
