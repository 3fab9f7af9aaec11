package parser

import (
	"github.com/nedanwr/kronos/ast"
	"github.com/nedanwr/kronos/token"
)

// parseExpr is the precedence-climbing entry point for every expression
// context in the grammar (assignment values, call arguments, collection
// elements, conditions, range bounds). minPrec is the lowest-binding
// operator this call is allowed to consume; callers that want a single
// unary/postfix term with no trailing binary operator pass a precedence
// higher than any operator's level.
func (p *parser) parseExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}

	for {
		op, prec, width, matched := p.matchBinaryOp()
		if !matched || prec < minPrec {
			break
		}
		opTok := p.current()
		for i := 0; i < width; i++ {
			p.advance()
		}

		right, ok := p.parseExpr(prec + 1)
		if !ok {
			return nil, false
		}
		left = ast.NewBinaryExpr(pos(opTok), op, left, right)
	}

	return left, true
}

// parseUnary parses a prefix `not`/unary `-`, falling through to a primary
// with its postfix operators applied. Both prefixes recurse into
// parseUnary, not parseExpr, so `not not x` and `- -x` are representable
// without a binary operator ever seeing them.
func (p *parser) parseUnary() (ast.Expr, bool) {
	if !p.guardRecursion() {
		return nil, false
	}
	defer p.releaseRecursion()

	switch {
	case p.match(token.NOT):
		tok := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return ast.NewUnaryExpr(pos(tok), ast.Not, operand), true
	case p.match(token.MINUS) && startsValue(p.peek(1).Kind):
		tok := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return ast.NewUnaryExpr(pos(tok), ast.Neg, operand), true
	}

	primary, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	return p.parsePostfix(primary)
}

// parseOperand parses a prefix-unary-wrapped primary with no postfix
// applied — the bounded operand form used for index/slice bounds, where
// postfix chaining must stay under the control of the enclosing
// parsePostfix loop rather than being absorbed here.
func (p *parser) parseOperand() (ast.Expr, bool) {
	if !p.guardRecursion() {
		return nil, false
	}
	defer p.releaseRecursion()

	switch {
	case p.match(token.NOT):
		tok := p.advance()
		operand, ok := p.parseOperand()
		if !ok {
			return nil, false
		}
		return ast.NewUnaryExpr(pos(tok), ast.Not, operand), true
	case p.match(token.MINUS) && startsValue(p.peek(1).Kind):
		tok := p.advance()
		operand, ok := p.parseOperand()
		if !ok {
			return nil, false
		}
		return ast.NewUnaryExpr(pos(tok), ast.Neg, operand), true
	}

	return p.parsePrimary()
}

// parsePostfix layers `at index` (IndexExpr) and `from start to end`
// (SliceExpr) onto expr, left-associatively: `x at 0 at 1` indexes twice.
// The bound operands (idx, start, end) are parsed via parseOperand, not
// parseUnary, precisely so they do NOT themselves swallow a trailing
// postfix operator — otherwise `x at 0 at 1` would misparse as
// `x at (0 at 1)` instead of `(x at 0) at 1`. This loop is the only place
// postfix operators attach.
func (p *parser) parsePostfix(expr ast.Expr) (ast.Expr, bool) {
	for {
		switch {
		case p.match(token.AT):
			tok := p.advance()
			idx, ok := p.parseOperand()
			if !ok {
				return nil, false
			}
			expr = ast.NewIndexExpr(pos(tok), expr, idx)

		case p.match(token.SLICE_FROM):
			tok := p.advance()
			start, ok := p.parseOperand()
			if !ok {
				return nil, false
			}
			if _, ok := p.consume(token.TO); !ok {
				return nil, false
			}

			var end ast.Expr
			if p.match(token.END) {
				p.advance()
			} else {
				end, ok = p.parseOperand()
				if !ok {
					return nil, false
				}
			}
			expr = ast.NewSliceExpr(pos(tok), expr, start, end)

		default:
			return expr, true
		}
	}
}

// matchBinaryOp looks ahead from the cursor (without consuming) for an
// infix operator. It returns the operator, its precedence level, and how
// many tokens it spans — natural-language comparisons are multiple tokens
// wide ("is greater than or equal to"), so the caller advances by width,
// not by one.
func (p *parser) matchBinaryOp() (op ast.BinaryOp, prec int, width int, matched bool) {
	switch p.current().Kind {
	case token.OR:
		return ast.LogicalOr, 1, 1, true
	case token.AND:
		return ast.LogicalAnd, 2, 1, true
	case token.IS:
		return p.matchComparison()
	case token.PLUS:
		return ast.Add, 4, 1, true
	case token.MINUS:
		return ast.Sub, 4, 1, true
	case token.STAR:
		return ast.Mul, 5, 1, true
	case token.SLASH:
		return ast.Div, 5, 1, true
	case token.DIVIDED:
		if p.peek(1).Kind == token.BY {
			return ast.Div, 5, 2, true
		}
		return 0, 0, 0, false
	case token.MOD:
		return ast.Mod, 5, 1, true
	default:
		return 0, 0, 0, false
	}
}

// matchComparison matches the `is ...` comparison family at precedence 3:
//
//	is equal [to]
//	is not equal [to]
//	is greater [than] [or equal [to]]
//	is less [than] [or equal [to]]
//
// The current token is always IS.
func (p *parser) matchComparison() (ast.BinaryOp, int, int, bool) {
	i := 1
	switch p.peek(i).Kind {
	case token.NOT:
		i++
		if p.peek(i).Kind != token.EQUAL {
			return 0, 0, 0, false
		}
		i++
		i = p.skipWord(i, token.TO)
		return ast.Neq, 3, i, true

	case token.EQUAL:
		i++
		i = p.skipWord(i, token.TO)
		return ast.Eq, 3, i, true

	case token.GREATER:
		i++
		i = p.skipWord(i, token.THAN)
		if p.peek(i).Kind == token.OR && p.peek(i+1).Kind == token.EQUAL {
			i += 2
			i = p.skipWord(i, token.TO)
			return ast.Gte, 3, i, true
		}
		return ast.Gt, 3, i, true

	case token.LESS:
		i++
		i = p.skipWord(i, token.THAN)
		if p.peek(i).Kind == token.OR && p.peek(i+1).Kind == token.EQUAL {
			i += 2
			i = p.skipWord(i, token.TO)
			return ast.Lte, 3, i, true
		}
		return ast.Lt, 3, i, true

	default:
		return 0, 0, 0, false
	}
}

// skipWord advances the lookahead offset i past kind if present, leaving it
// unchanged otherwise — the natural-language comparison words ("than",
// "to") are optional filler, not grammar-significant.
func (p *parser) skipWord(i int, kind token.Kind) int {
	if p.peek(i).Kind == kind {
		return i + 1
	}
	return i
}
