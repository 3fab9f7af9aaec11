package parser

import (
	"github.com/nedanwr/kronos/ast"
	"github.com/nedanwr/kronos/internal/invariant"
	"github.com/nedanwr/kronos/token"
)

// parseBlock parses a maximal run of statements whose own line indent
// strictly exceeds parentIndent (C6). It stops — without consuming — at any
// token that is not an INDENT marker, or whose indent level is at most
// parentIndent, leaving the cursor there for the caller (an enclosing
// if/try continuation check, or the top-level driver) to inspect next.
func (p *parser) parseBlock(parentIndent int) (ast.Block, bool) {
	if !p.guardRecursion() {
		return nil, false
	}
	defer p.releaseRecursion()

	var block ast.Block
	for {
		if p.current().Kind != token.INDENT || p.current().Indent <= parentIndent {
			break
		}
		before := p.pos
		indentTok := p.advance()
		invariant.Invariant(p.pos > before, "parseBlock must advance the cursor past the INDENT token")

		if p.current().Kind == token.NEWLINE {
			p.advance() // blank line inside the block
			continue
		}

		stmt, ok := p.parseStatement(indentTok.Indent)
		if !ok {
			return nil, false
		}
		block = append(block, stmt)
	}
	return block, true
}
