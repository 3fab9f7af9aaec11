package parser

import (
	"strings"

	"github.com/nedanwr/kronos/ast"
	"github.com/nedanwr/kronos/errors"
	"github.com/nedanwr/kronos/lexer"
	"github.com/nedanwr/kronos/token"
)

// parseFString parses the interior of an f-string token into an ordered
// sequence of parts (4.3.1). Escapes are respected while scanning for `{`
// and `}`; nested braces inside an embedded expression are matched by
// depth, not by the first `}` encountered.
func (p *parser) parseFString(tok token.Token) (ast.Expr, bool) {
	if !p.guardRecursion() {
		return nil, false
	}
	defer p.releaseRecursion()

	content := tok.Text
	var parts []ast.Expr
	var literal strings.Builder

	i := 0
	n := len(content)
	for i < n {
		ch := content[i]

		if ch == '\\' && i+1 < n {
			literal.WriteByte(ch)
			literal.WriteByte(content[i+1])
			i += 2
			continue
		}

		if ch == '{' {
			exprStart := i + 1
			end, ok := findMatchingBrace(content, exprStart)
			if !ok {
				p.report(errors.New(errors.UnmatchedBrace, "Unmatched { in f-string", tok))
				return nil, false
			}

			parts = append(parts, ast.NewStringLit(pos(tok), literal.String()))
			literal.Reset()

			exprNode, ok := p.parseEmbeddedExpr(content[exprStart:end], tok)
			if !ok {
				return nil, false
			}
			parts = append(parts, exprNode)

			i = end + 1
			continue
		}

		literal.WriteByte(ch)
		i++
	}

	if literal.Len() > 0 || len(parts) == 0 {
		parts = append(parts, ast.NewStringLit(pos(tok), literal.String()))
	}

	return ast.NewFString(pos(tok), parts), true
}

// findMatchingBrace scans content starting at start (just past an opening
// `{`) for the `}` that closes it, treating nested `{`/`}` pairs as balanced
// and honouring backslash escapes. It returns the index of the matching `}`.
func findMatchingBrace(content string, start int) (int, bool) {
	depth := 1
	i := start
	for i < len(content) {
		ch := content[i]
		if ch == '\\' && i+1 < len(content) {
			i += 2
			continue
		}
		if ch == '{' {
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 {
				return i, true
			}
		}
		i++
	}
	return 0, false
}

// parseEmbeddedExpr tokenises raw (the interior of an f-string's `{...}`)
// and parses exactly one expression from it. The recursion-depth counter is
// threaded through from the enclosing parser rather than reset, so an
// f-string nested inside an f-string still counts against the same 512
// level ceiling.
func (p *parser) parseEmbeddedExpr(raw string, owner token.Token) (ast.Expr, bool) {
	sub := lexer.New([]byte(raw)).Tokenize()

	// The sub-lexer always opens a line with a synthetic INDENT token; a
	// single-line, synthetic input like this never wants it. This mirrors
	// the same workaround in the original tokenizer contract.
	if len(sub) > 0 && sub[0].Kind == token.INDENT {
		sub = sub[1:]
	}
	if len(sub) == 0 {
		sub = []token.Token{{Kind: token.EOF, Pos: owner.Pos}}
	}

	savedTokens, savedPos := p.tokens, p.pos
	p.tokens, p.pos = sub, 0
	expr, ok := p.parseExpr(1)
	p.tokens, p.pos = savedTokens, savedPos

	return expr, ok
}
