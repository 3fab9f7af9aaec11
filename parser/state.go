// Package parser turns a Kronos token stream into an *ast.Tree.
//
// It is organised as the specification's component breakdown: this file is
// the cursor/recursion-guard/error-sink state (C1) every other file shares;
// primary.go is the literal/primary parser (C3); expr.go is the Pratt
// expression climber (C4); stmt.go holds the statement parsers (C5);
// block.go aggregates indented blocks (C6); driver.go is the top-level loop
// with error recovery (C7). The AST node model itself (C2) lives in the
// sibling ast package.
//
// The parser trusts its input token stream but never the recursion depth of
// the program that produced it or the well-formedness of any single
// construct: every recursive descent passes through guardRecursion, and
// every parse helper returns (node, ok) rather than panicking on malformed
// input. Panics (via internal/invariant) are reserved for bugs in this
// parser, not for malformed Kronos source.
package parser

import (
	"github.com/nedanwr/kronos/ast"
	"github.com/nedanwr/kronos/errors"
	"github.com/nedanwr/kronos/internal/invariant"
	"github.com/nedanwr/kronos/internal/suggest"
	"github.com/nedanwr/kronos/token"
)

type parser struct {
	tokens []token.Token
	pos    int
	depth  int

	opts Options

	// allErrors accumulates one diagnostic per failed top-level statement
	// (C7 recovery), in encounter order. The Options.sink, if attached,
	// separately keeps only the very first of these (first-writer-wins),
	// matching the external error-sink contract in the specification.
	allErrors []*errors.Error
}

func newParser(tokens []token.Token, opts Options) *parser {
	invariant.Precondition(len(tokens) > 0, "token stream must contain at least an EOF token")
	return &parser{tokens: tokens, opts: opts}
}

// peek returns the token at cursor+offset, or the trailing EOF token if that
// would run past the end of the buffer, and the zero Token (Kind EOF) if a
// negative offset would underflow. It never panics and never advances.
func (p *parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx < 0 {
		return token.Token{Kind: token.EOF}
	}
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) current() token.Token { return p.peek(0) }

func (p *parser) atEnd() bool { return p.current().Kind == token.EOF }

// advance moves the cursor forward one token, clamped at EOF.
func (p *parser) advance() token.Token {
	tok := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

// consumeAny advances and returns the current token, or the EOF token with
// ok=false if the cursor is already at the end of the buffer.
func (p *parser) consumeAny() (token.Token, bool) {
	if p.atEnd() {
		return p.current(), false
	}
	return p.advance(), true
}

// consume advances past the current token if it matches kind, reporting the
// canonical "Expected X, got Y" error and leaving the cursor in place
// otherwise.
func (p *parser) consume(kind token.Kind) (token.Token, bool) {
	if p.current().Kind == kind {
		return p.advance(), true
	}
	err := errors.Unexpected(kind, p.current())
	err.Suggestion = p.suggestionFor(p.current())
	p.report(err)
	return token.Token{}, false
}

// suggestionFor fuzzy-matches tok's text against the full keyword set when
// tok lexed as a plain identifier, producing a "did you mean" hint for a
// likely mistyped keyword. It returns "" for anything else (the keyword set
// is the only valid-continuation vocabulary cheaply available at every call
// site that reports an unexpected token).
func (p *parser) suggestionFor(tok token.Token) string {
	if tok.Kind != token.IDENTIFIER {
		return ""
	}
	return suggest.Closest(tok.Text, token.Keywords())
}

// match reports whether the current token is one of kinds, without
// consuming it.
func (p *parser) match(kinds ...token.Kind) bool {
	cur := p.current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// report records err through both the accumulating diagnostics list and the
// first-writer-wins error sink, or writes it to the diagnostics stream when
// no sink is attached, per the error interface contract.
func (p *parser) report(err *errors.Error) {
	p.allErrors = append(p.allErrors, err)
	if p.opts.sink != nil {
		p.opts.sink.Report(err)
		// accumulate mode (set via WithConfigJSON's diagnostics_mode)
		// additionally streams every recovered error to the diagnostics
		// writer, not just the sink's first-writer-wins slot.
		if !p.opts.accumulate || p.opts.diagnostics == nil {
			return
		}
	}
	if p.opts.diagnostics != nil {
		fprintError(p.opts.diagnostics, err)
	}
}

// guardRecursion brackets every recursive descent. It returns false (and
// records "Maximum recursion depth (N) exceeded") once depth would exceed
// the configured ceiling; callers must pair every true result with a
// deferred releaseRecursion.
func (p *parser) guardRecursion() bool {
	invariant.InRange(p.depth, 0, p.opts.maxRecursionDepth, "parser.depth")
	if p.depth >= p.opts.maxRecursionDepth {
		p.report(errors.New(errors.RecursionExceeded,
			recursionMessage(p.opts.maxRecursionDepth), p.current()))
		return false
	}
	p.depth++
	return true
}

func (p *parser) releaseRecursion() {
	invariant.Invariant(p.depth > 0, "releaseRecursion called without a matching guardRecursion")
	p.depth--
}
