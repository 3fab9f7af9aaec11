package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nedanwr/kronos/lexer"
	"github.com/nedanwr/kronos/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSimpleAssignment(t *testing.T) {
	tokens := lexer.New([]byte("set x to 10\n")).Tokenize()
	require.Equal(t, []token.Kind{
		token.INDENT, token.SET, token.IDENTIFIER, token.TO, token.NUMBER,
		token.NEWLINE, token.INDENT, token.EOF,
	}, kinds(tokens))
	require.Equal(t, "x", tokens[2].Text)
	require.Equal(t, "10", tokens[4].Text)
}

func TestTabExpandedIndent(t *testing.T) {
	tokens := lexer.New([]byte("\tprint 1\n")).Tokenize()
	require.Equal(t, token.INDENT, tokens[0].Kind)
	require.Equal(t, 8, tokens[0].Indent)
}

func TestSpaceOnlyIndent(t *testing.T) {
	tokens := lexer.New([]byte("    print 1\n")).Tokenize()
	require.Equal(t, 4, tokens[0].Indent)
}

func TestStringEscapesKeptRaw(t *testing.T) {
	tokens := lexer.New([]byte(`"a\"b"` + "\n")).Tokenize()
	require.Equal(t, token.STRING, tokens[1].Kind)
	require.Equal(t, `a\"b`, tokens[1].Text)
}

func TestFStringTokenCapturesRawInterior(t *testing.T) {
	tokens := lexer.New([]byte(`f"Hello {name}"` + "\n")).Tokenize()
	require.Equal(t, token.FSTRING, tokens[1].Kind)
	require.Equal(t, "Hello {name}", tokens[1].Text)
}

func TestKeywordCaseInsensitive(t *testing.T) {
	tokens := lexer.New([]byte("SET x TO 1\n")).Tokenize()
	require.Equal(t, token.SET, tokens[1].Kind)
	require.Equal(t, token.TO, tokens[3].Kind)
}

func TestLineCommentSkipped(t *testing.T) {
	tokens := lexer.New([]byte("print 1 # trailing comment\n")).Tokenize()
	require.Equal(t, []token.Kind{
		token.INDENT, token.PRINT, token.NUMBER, token.NEWLINE, token.INDENT, token.EOF,
	}, kinds(tokens))
}

func TestNumberWithFraction(t *testing.T) {
	tokens := lexer.New([]byte("3.14\n")).Tokenize()
	require.Equal(t, token.NUMBER, tokens[1].Kind)
	require.Equal(t, "3.14", tokens[1].Text)
}

func TestSymbolicAndWordOperatorsShareKind(t *testing.T) {
	symbolic := lexer.New([]byte("1 + 2\n")).Tokenize()
	worded := lexer.New([]byte("1 plus 2\n")).Tokenize()
	require.Equal(t, token.PLUS, symbolic[2].Kind)
	require.Equal(t, token.PLUS, worded[2].Kind)
}
