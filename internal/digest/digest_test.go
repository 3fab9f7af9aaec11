package digest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nedanwr/kronos/internal/digest"
)

func TestModuleFingerprintIsDeterministic(t *testing.T) {
	a := digest.ModuleFingerprint("math_utils")
	b := digest.ModuleFingerprint("math_utils")
	require.Equal(t, a, b)
	require.Len(t, a, 16) // 8 bytes, hex-encoded
}

func TestModuleFingerprintDistinctPerName(t *testing.T) {
	a := digest.ModuleFingerprint("math_utils")
	b := digest.ModuleFingerprint("string_utils")
	require.NotEqual(t, a, b)
}
