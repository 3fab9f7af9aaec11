package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nedanwr/kronos/ast"
	kerrors "github.com/nedanwr/kronos/errors"
	"github.com/nedanwr/kronos/lexer"
	"github.com/nedanwr/kronos/parser"
)

func parseSource(t *testing.T, src string) (*ast.Tree, *kerrors.Sink) {
	t.Helper()
	tokens := lexer.New([]byte(src)).Tokenize()
	sink := &kerrors.Sink{}
	tree, _ := parser.Parse(tokens, parser.WithErrorSink(sink))
	return tree, sink
}

func TestPrintNumberLiteral(t *testing.T) {
	tree, sink := parseSource(t, "print 42\n")
	require.Nil(t, sink.Err())
	require.Len(t, tree.Statements, 1)

	print, ok := tree.Statements[0].(*ast.PrintStmt)
	require.True(t, ok)
	num, ok := print.Value.(*ast.NumberLit)
	require.True(t, ok)
	require.Equal(t, 42.0, num.Value)
}

func TestAssignWithTypeAnnotation(t *testing.T) {
	tree, sink := parseSource(t, "set x to 10 as number\n")
	require.Nil(t, sink.Err())
	require.Len(t, tree.Statements, 1)

	assign, ok := tree.Statements[0].(*ast.AssignStmt)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
	require.False(t, assign.IsMutable)
	require.Equal(t, "number", assign.TypeName)
	num, ok := assign.Value.(*ast.NumberLit)
	require.True(t, ok)
	require.Equal(t, 10.0, num.Value)
}

func TestNaturalLanguageComparison(t *testing.T) {
	tree, sink := parseSource(t, "set r to 10 is greater than or equal to 5\n")
	require.Nil(t, sink.Err())
	assign := tree.Statements[0].(*ast.AssignStmt)
	bin, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.Gte, bin.Op)
	require.Equal(t, 10.0, bin.Left.(*ast.NumberLit).Value)
	require.Equal(t, 5.0, bin.Right.(*ast.NumberLit).Value)
}

func TestArithmeticPrecedence(t *testing.T) {
	tree, sink := parseSource(t, "set r to 2 plus 3 times 4\n")
	require.Nil(t, sink.Err())
	assign := tree.Statements[0].(*ast.AssignStmt)
	add, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.Add, add.Op)
	require.Equal(t, 2.0, add.Left.(*ast.NumberLit).Value)

	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.Mul, mul.Op)
	require.Equal(t, 3.0, mul.Left.(*ast.NumberLit).Value)
	require.Equal(t, 4.0, mul.Right.(*ast.NumberLit).Value)
}

func TestForRangeWithStep(t *testing.T) {
	src := "for i in range 1 to 10 by 2:\n    print i\n"
	tree, sink := parseSource(t, src)
	require.Nil(t, sink.Err())
	require.Len(t, tree.Statements, 1)

	forStmt, ok := tree.Statements[0].(*ast.ForStmt)
	require.True(t, ok)
	require.Equal(t, "i", forStmt.Var)
	require.True(t, forStmt.IsRange)
	require.Equal(t, 1.0, forStmt.Iterable.(*ast.NumberLit).Value)
	require.Equal(t, 10.0, forStmt.End.(*ast.NumberLit).Value)
	require.NotNil(t, forStmt.Step)
	require.Equal(t, 2.0, forStmt.Step.(*ast.NumberLit).Value)
	require.Len(t, forStmt.Block, 1)
}

func TestForRangeWithoutStep(t *testing.T) {
	tree, sink := parseSource(t, "for i in range 1 to 10:\n    print i\n")
	require.Nil(t, sink.Err())
	forStmt := tree.Statements[0].(*ast.ForStmt)
	require.Nil(t, forStmt.Step)
}

func TestFStringParts(t *testing.T) {
	tree, sink := parseSource(t, `print f"Hello {name}"`+"\n")
	require.Nil(t, sink.Err())
	print := tree.Statements[0].(*ast.PrintStmt)
	fstr, ok := print.Value.(*ast.FString)
	require.True(t, ok)
	require.Len(t, fstr.Parts, 2)

	lit, ok := fstr.Parts[0].(*ast.StringLit)
	require.True(t, ok)
	require.Equal(t, "Hello ", lit.Value)

	v, ok := fstr.Parts[1].(*ast.VarRef)
	require.True(t, ok)
	require.Equal(t, "name", v.Name)
}

func TestIfElseIfElseChain(t *testing.T) {
	src := "if x is equal to 1:\n" +
		"    print 1\n" +
		"else if x is equal to 2:\n" +
		"    print 2\n" +
		"else:\n" +
		"    print 3\n"
	tree, sink := parseSource(t, src)
	require.Nil(t, sink.Err())
	require.Len(t, tree.Statements, 1)

	ifStmt, ok := tree.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.ElseIfs, 1)
	require.NotNil(t, ifStmt.Else)
	require.Len(t, ifStmt.Else, 1)
}

func TestEmptyListAndMapLiterals(t *testing.T) {
	tree, sink := parseSource(t, "set a to list\nset b to map\n")
	require.Nil(t, sink.Err())
	require.Len(t, tree.Statements, 2)

	list := tree.Statements[0].(*ast.AssignStmt).Value.(*ast.ListLit)
	require.Len(t, list.Elements, 0)

	m := tree.Statements[1].(*ast.AssignStmt).Value.(*ast.MapLit)
	require.Len(t, m.Keys, 0)
	require.Len(t, m.Values, 0)
}

func TestIndexChainIsLeftAssociative(t *testing.T) {
	tree, sink := parseSource(t, "set v to x at 0 at 1\n")
	require.Nil(t, sink.Err())
	value := tree.Statements[0].(*ast.AssignStmt).Value
	outer, ok := value.(*ast.IndexExpr)
	require.True(t, ok)
	require.Equal(t, 1.0, outer.Index.(*ast.NumberLit).Value)

	inner, ok := outer.List.(*ast.IndexExpr)
	require.True(t, ok)
	require.Equal(t, 0.0, inner.Index.(*ast.NumberLit).Value)
}

func TestSliceToEndIsAbsent(t *testing.T) {
	tree, sink := parseSource(t, "set v to x from 1 to end\n")
	require.Nil(t, sink.Err())
	slice := tree.Statements[0].(*ast.AssignStmt).Value.(*ast.SliceExpr)
	require.Nil(t, slice.End)
	require.Equal(t, 1.0, slice.Start.(*ast.NumberLit).Value)
}

func TestTryCatchCatchAllFinally(t *testing.T) {
	src := "try:\n" +
		"    print 1\n" +
		"catch TypeError as e:\n" +
		"    print 2\n" +
		"catch:\n" +
		"    print 3\n" +
		"finally:\n" +
		"    print 4\n"
	tree, sink := parseSource(t, src)
	require.Nil(t, sink.Err())

	tryStmt := tree.Statements[0].(*ast.TryStmt)
	require.Len(t, tryStmt.Catches, 2)
	require.Equal(t, "TypeError", tryStmt.Catches[0].ErrorType)
	require.Equal(t, "e", tryStmt.Catches[0].CatchVar)
	require.Equal(t, "", tryStmt.Catches[1].ErrorType)
	require.NotNil(t, tryStmt.Finally)
}

func TestRaiseIdentifierIsErrorTypeOnlyBeforeString(t *testing.T) {
	tree, sink := parseSource(t, `raise ValueError "bad input"`+"\n")
	require.Nil(t, sink.Err())
	raise := tree.Statements[0].(*ast.RaiseStmt)
	require.Equal(t, "ValueError", raise.ErrorType)
	require.Equal(t, "bad input", raise.Message.(*ast.StringLit).Value)
}

func TestRaiseBareIdentifierIsPartOfMessage(t *testing.T) {
	// `reason` is not followed by a string/f-string, so it is the start of
	// the message expression, not an error type.
	tree, sink := parseSource(t, "raise reason\n")
	require.Nil(t, sink.Err())
	raise := tree.Statements[0].(*ast.RaiseStmt)
	require.Equal(t, "", raise.ErrorType)
	require.Equal(t, "reason", raise.Message.(*ast.VarRef).Name)
}

func TestUnmatchedFStringBraceFailsWithZeroStatements(t *testing.T) {
	tree, sink := parseSource(t, `print f"bad {unclosed"`+"\n")
	require.NotNil(t, sink.Err())
	require.Equal(t, kerrors.UnmatchedBrace, sink.Err().Kind)
	require.Len(t, tree.Statements, 0)
}

func TestRecursionDepthExceeded(t *testing.T) {
	src := "print " + strings.Repeat("not ", 600) + "true\n"
	tree, sink := parseSource(t, src)
	require.NotNil(t, sink.Err())
	require.Equal(t, kerrors.RecursionExceeded, sink.Err().Kind)
	require.Len(t, tree.Statements, 0)
}

func TestMissingNameRecoversToNextStatement(t *testing.T) {
	tree, sink := parseSource(t, "set to 10\nprint 1\n")
	require.NotNil(t, sink.Err())
	require.Equal(t, kerrors.UnexpectedToken, sink.Err().Kind)
	// Recovery skips to the next newline and resumes, so the second
	// statement still parses.
	require.Len(t, tree.Statements, 1)
	require.IsType(t, &ast.PrintStmt{}, tree.Statements[0])
}
