package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nedanwr/kronos/internal/config"
)

func TestParseEmptyRawYieldsZeroValue(t *testing.T) {
	doc, err := config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.Document{}, doc)
}

func TestParseValidDocument(t *testing.T) {
	raw := []byte(`{"max_recursion_depth": 256, "diagnostics_mode": "accumulate"}`)
	doc, err := config.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, 256, doc.MaxRecursionDepth)
	require.Equal(t, "accumulate", doc.DiagnosticsMode)
}

func TestParseRejectsUnknownField(t *testing.T) {
	raw := []byte(`{"not_a_real_field": true}`)
	_, err := config.Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsInvalidDiagnosticsMode(t *testing.T) {
	raw := []byte(`{"diagnostics_mode": "sometimes"}`)
	_, err := config.Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := config.Parse([]byte(`{not json`))
	require.Error(t, err)
}
