// Package errors defines the structured parse error the Kronos parser
// reports through its error sink.
package errors

import (
	"fmt"

	"github.com/nedanwr/kronos/token"
)

// Kind classifies the failure behind an Error.
type Kind string

const (
	UnexpectedToken    Kind = "UNEXPECTED_TOKEN"
	UnexpectedEOF      Kind = "UNEXPECTED_EOF"
	NumberOverflow     Kind = "NUMBER_OVERFLOW"
	InvalidNumber      Kind = "INVALID_NUMBER"
	UnmatchedBrace     Kind = "UNMATCHED_BRACE"
	RecursionExceeded  Kind = "RECURSION_DEPTH_EXCEEDED"
	AllocationFailure  Kind = "ALLOCATION_FAILURE"
	GenericParseFailed Kind = "PARSE_FAILED"
)

// Error is the structured {message, line, column} diagnostic the parser
// hands back through its error sink. The first error on a given parse wins;
// later ones are coalesced by the sink, not by Error itself.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Column  int

	// Suggestion is an optional "did you mean" hint, computed by fuzzy
	// matching an offending identifier against the full keyword set.
	Suggestion string
}

func (e *Error) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (line %d, column %d) — did you mean %q?", e.Message, e.Line, e.Column, e.Suggestion)
	}
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
}

// New builds an Error positioned at tok.
func New(kind Kind, message string, tok token.Token) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Line:    tok.Pos.Line,
		Column:  tok.Pos.Column,
	}
}

// Unexpected builds the canonical "Expected X, got Y" message used by
// parser.consume.
func Unexpected(expected token.Kind, got token.Token) *Error {
	return New(UnexpectedToken, fmt.Sprintf("Expected token type %s, got %s", expected, got.Kind), got)
}

// Sink is the first-writer-wins receptacle for a parse's structured error.
// A nil *Sink is valid and simply discards Report calls; Parse falls back to
// writing to the diagnostic channel (see parser.WithDiagnostics) when no
// Sink is attached.
type Sink struct {
	err *Error
}

// Report records err if this is the first report on the sink; subsequent
// reports are silently coalesced, matching "first error wins".
func (s *Sink) Report(err *Error) {
	if s == nil || err == nil {
		return
	}
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first reported error, or nil if none was reported.
func (s *Sink) Err() *Error {
	if s == nil {
		return nil
	}
	return s.err
}

// Free clears the sink's stored error, so Err returns nil afterwards. Like
// ast.Tree.Release, it frees no memory by hand (the Go garbage collector
// owns that); it exists for API parity with the parse_error_free contract.
func (s *Sink) Free() {
	if s == nil {
		return
	}
	s.err = nil
}
