package parser

import (
	"github.com/nedanwr/kronos/ast"
	"github.com/nedanwr/kronos/errors"
	"github.com/nedanwr/kronos/internal/invariant"
	"github.com/nedanwr/kronos/token"
)

// Parse turns a token stream into an *ast.Tree (C7). It skips blank lines,
// dispatches each top-level statement by its head keyword, and on failure
// skips to the next NEWLINE (or EOF) before resuming — the returned tree
// holds every statement that parsed successfully even when errors
// occurred. Callers inspect the returned diagnostics, or an attached
// WithErrorSink, to decide whether the tree is safe to execute.
func Parse(tokens []token.Token, opts ...Opt) (*ast.Tree, []*errors.Error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	p := newParser(tokens, options)
	tree := ast.NewTree(4)

	for !p.atEnd() {
		if p.current().Kind != token.INDENT {
			// The producer contract guarantees an INDENT token opens every
			// line; a stray token here is itself a bug upstream, not a
			// user-facing parse error. Skip it rather than loop forever.
			p.advance()
			continue
		}
		indentTok := p.advance()

		if p.current().Kind == token.NEWLINE {
			p.advance() // blank line
			continue
		}
		if p.current().Kind == token.EOF {
			break
		}

		stmt, ok := p.parseStatement(indentTok.Indent)
		if ok {
			tree.Append(stmt)
			continue
		}
		p.recoverToNextLine()
	}

	invariant.Postcondition(tree != nil, "Parse must always return a non-nil tree, even on error")
	return tree, p.allErrors
}

// recoverToNextLine is the top-level driver's only recovery strategy:
// discard tokens up to and including the next NEWLINE, or up to EOF.
func (p *parser) recoverToNextLine() {
	for !p.atEnd() && p.current().Kind != token.NEWLINE {
		p.advance()
	}
	if p.current().Kind == token.NEWLINE {
		p.advance()
	}
}
