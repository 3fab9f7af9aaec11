package snapshot_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nedanwr/kronos/internal/snapshot"
	"github.com/nedanwr/kronos/lexer"
	"github.com/nedanwr/kronos/parser"
)

func TestHashIsDeterministicAcrossEquivalentParses(t *testing.T) {
	const src = "set x to 2 plus 3 times 4\n"

	tokensA := lexer.New([]byte(src)).Tokenize()
	treeA, errsA := parser.Parse(tokensA)
	require.Empty(t, errsA)

	tokensB := lexer.New([]byte(src)).Tokenize()
	treeB, errsB := parser.Parse(tokensB)
	require.Empty(t, errsB)

	hashA, err := snapshot.Hash(treeA)
	require.NoError(t, err)
	hashB, err := snapshot.Hash(treeB)
	require.NoError(t, err)

	require.Equal(t, hashA, hashB)
	require.Len(t, hashA, 64) // hex-encoded SHA-256
}

func TestHashDiffersForDifferentSource(t *testing.T) {
	treeA, errsA := parser.Parse(lexer.New([]byte("print 1\n")).Tokenize())
	require.Empty(t, errsA)
	treeB, errsB := parser.Parse(lexer.New([]byte("print 2\n")).Tokenize())
	require.Empty(t, errsB)

	hashA, err := snapshot.Hash(treeA)
	require.NoError(t, err)
	hashB, err := snapshot.Hash(treeB)
	require.NoError(t, err)
	require.NotEqual(t, hashA, hashB)
}

func TestEncodeRoundTripsThroughCBOR(t *testing.T) {
	tree, errs := parser.Parse(lexer.New([]byte("print 1\n")).Tokenize())
	require.Empty(t, errs)

	first, err := snapshot.Encode(tree)
	require.NoError(t, err)
	second, err := snapshot.Encode(tree)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("encoding of the same tree must be byte-identical (-first +second):\n%s", diff)
	}
}

func TestEncodeNilTreeProducesEmptySequence(t *testing.T) {
	enc, err := snapshot.Encode(nil)
	require.NoError(t, err)
	require.NotEmpty(t, enc) // CBOR empty-array header is still non-empty bytes
}
