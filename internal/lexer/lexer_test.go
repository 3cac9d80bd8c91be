package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestNextToken_KeywordsAndPunctuation(t *testing.T) {
	input := `int short long longlong const typedef while main ; , ( ) { } [ ]`
	want := []TokenType{
		INT, SHORT, LONG, LONGLONG, CONST, TYPEDEF, WHILE, MAIN,
		SEMI, COMMA, LPAREN, RPAREN, LBRACE, RBRACE, LBRACK, RBRACK, EOF,
	}
	toks := allTokens(t, input)
	require.Len(t, toks, len(want))
	for i, tt := range want {
		require.Equalf(t, tt, toks[i].Type, "token %d: %q", i, toks[i].Literal)
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `== != <= >= < > = + - * / %`
	want := []TokenType{EQ, NEQ, LE, GE, LT, GT, ASSIGN, PLUS, MINUS, STAR, SLASH, PCT, EOF}
	toks := allTokens(t, input)
	require.Len(t, toks, len(want))
	for i, tt := range want {
		require.Equal(t, tt, toks[i].Type)
	}
}

func TestNextToken_BareBangIsIllegal(t *testing.T) {
	toks := allTokens(t, "!")
	require.Equal(t, ILLEGAL, toks[0].Type)
}

func TestNextToken_DecimalAndHexConstants(t *testing.T) {
	toks := allTokens(t, "123 0x1F 0X0a 007")
	require.Equal(t, CONST_DEC, toks[0].Type)
	require.Equal(t, CONST_HEX, toks[1].Type)
	require.Equal(t, CONST_HEX, toks[2].Type)
	require.Equal(t, CONST_DEC, toks[3].Type) // leading zero is still decimal
}

func TestNextToken_HexWithoutDigitsIsIllegal(t *testing.T) {
	toks := allTokens(t, "0x")
	require.Equal(t, ILLEGAL, toks[0].Type)
	require.NotEmpty(t, toks[0].ErrMessage)
}

func TestNextToken_IdentifierLengthBoundary(t *testing.T) {
	twenty := "abcdefghijklmnopqrst"
	require.Len(t, twenty, 20)
	toks := allTokens(t, twenty)
	require.Equal(t, IDENT, toks[0].Type)

	twentyOne := twenty + "u"
	toks = allTokens(t, twentyOne)
	require.Equal(t, ILLEGAL, toks[0].Type)
}

func TestNextToken_ConstantLengthBoundary(t *testing.T) {
	twenty := "11111111111111111111"[:20]
	toks := allTokens(t, twenty)
	require.Equal(t, CONST_DEC, toks[0].Type)

	toks = allTokens(t, twenty+"1")
	require.Equal(t, ILLEGAL, toks[0].Type)
}

func TestNextToken_SkipsLineComments(t *testing.T) {
	input := "int a; // trailing comment\nint b;"
	toks := allTokens(t, input)
	require.Equal(t, INT, toks[0].Type)
	require.Equal(t, IDENT, toks[1].Type)
	require.Equal(t, SEMI, toks[2].Type)
	require.Equal(t, INT, toks[3].Type)
}

func TestPosition_LineAndColumn(t *testing.T) {
	input := "int a;\nint b;"
	l := New(input)
	first := l.NextToken() // "int"
	require.Equal(t, 1, first.Pos.Line)
	require.Equal(t, 1, first.Pos.Column)

	l.NextToken() // a
	l.NextToken() // ;
	fourth := l.NextToken()
	require.Equal(t, INT, fourth.Type)
	require.Equal(t, 2, fourth.Pos.Line)
	require.Equal(t, 1, fourth.Pos.Column)
}

func TestNextToken_UnrecognizedByte(t *testing.T) {
	toks := allTokens(t, "@")
	require.Equal(t, ILLEGAL, toks[0].Type)
	require.Equal(t, "@", toks[0].Literal)
}

// TestRoundTrip exercises the round-trip property: re-tokenising
// the stringified lexemes yields the same token-kind sequence (excluding
// whitespace and comments, which carry no lexeme).
func TestRoundTrip(t *testing.T) {
	input := "int a = 5, b = 0x0A; a = a + b;"
	first := allTokens(t, input)

	var rebuilt string
	for _, tok := range first {
		if tok.Type == EOF {
			continue
		}
		rebuilt += tok.Literal + " "
	}
	second := allTokens(t, rebuilt)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].Type, second[i].Type)
	}
}
