package invariant_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nedanwr/kronos/internal/invariant"
)

func TestPassingChecksDoNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		invariant.Precondition(true, "unused")
		invariant.Postcondition(true, "unused")
		invariant.Invariant(true, "unused")
		invariant.NotNil("x", "name")
		invariant.InRange(5, 0, 10, "n")
	})
}

func TestPreconditionPanicsWithMessage(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		msg, ok := r.(string)
		require.True(t, ok)
		require.Contains(t, msg, "PRECONDITION VIOLATION: cursor must not be negative")
	}()
	invariant.Precondition(false, "cursor must not be negative")
}

func TestNotNilCatchesTypedNilPointer(t *testing.T) {
	var p *int
	require.Panics(t, func() { invariant.NotNil(p, "p") })
}

func TestInRangeRejectsOutOfBounds(t *testing.T) {
	require.Panics(t, func() { invariant.InRange(11, 0, 10, "n") })
	require.Panics(t, func() { invariant.InRange(-1, 0, 10, "n") })
}
