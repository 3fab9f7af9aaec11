// Package config loads and validates the optional JSON configuration
// document that tunes parser behaviour (recursion ceiling, diagnostics
// mode) outside of the Kronos source itself. The document is small and
// rarely hand-written, but it is still an external input, so it is
// validated against a JSON Schema before any of its values are trusted.
package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaResourceName is the synthetic URL the schema is registered under so
// the compiler has something to refer to $ref against.
const schemaResourceName = "kronos://parser-config.schema.json"

// schemaDoc is the JSON Schema (draft 2020-12) describing a valid parser
// configuration document.
const schemaDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "max_recursion_depth": {
      "type": "integer",
      "minimum": 1,
      "maximum": 100000
    },
    "diagnostics_mode": {
      "type": "string",
      "enum": ["first-error", "accumulate"]
    }
  }
}`

// Document is a validated parser configuration.
type Document struct {
	// MaxRecursionDepth overrides the default 512-level recursion ceiling.
	// Zero means "use the default".
	MaxRecursionDepth int `json:"max_recursion_depth"`

	// DiagnosticsMode selects whether only the error sink's first error is
	// kept ("first-error", the default behaviour) or every reported error is
	// also written to the diagnostics writer ("accumulate"); the sink itself
	// keeps only the first error in both modes.
	DiagnosticsMode string `json:"diagnostics_mode"`
}

var compiledSchema *jsonschema.Schema

func schema() (*jsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResourceName, strings.NewReader(schemaDoc)); err != nil {
		return nil, fmt.Errorf("config: registering schema: %w", err)
	}
	compiled, err := compiler.Compile(schemaResourceName)
	if err != nil {
		return nil, fmt.Errorf("config: compiling schema: %w", err)
	}
	compiledSchema = compiled
	return compiled, nil
}

func mustDecode(doc string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		panic(fmt.Sprintf("config: malformed built-in schema: %v", err))
	}
	return v
}

// Parse validates raw against the configuration schema and decodes it into
// a Document. An empty or nil raw is valid and yields the zero Document.
func Parse(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, nil
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return Document{}, fmt.Errorf("config: invalid JSON: %w", err)
	}

	s, err := schema()
	if err != nil {
		return Document{}, err
	}
	if err := s.Validate(generic); err != nil {
		return Document{}, fmt.Errorf("config: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("config: decoding: %w", err)
	}
	return doc, nil
}
