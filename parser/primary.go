package parser

import (
	"math"
	"strconv"

	"github.com/nedanwr/kronos/ast"
	"github.com/nedanwr/kronos/errors"
	"github.com/nedanwr/kronos/token"
)

// startsValue reports whether kind can begin a value: used to decide
// whether a leading '-' is unary negation (spec.md §4.4's value-start set)
// and whether a bare `return` carries a value.
func startsValue(kind token.Kind) bool {
	switch kind {
	case token.NUMBER, token.STRING, token.FSTRING, token.IDENTIFIER,
		token.TRUE, token.FALSE, token.NULL, token.UNDEFINED,
		token.LIST, token.RANGE, token.MAP, token.CALL,
		token.MINUS, token.NOT:
		return true
	default:
		return false
	}
}

// startsListOrMapValue reports whether kind can open the first element of a
// `list`/`map` literal — the narrower seven-kind set spec.md §4.3 specifies
// for the list/map emptiness peek (number, string, bool, null, identifier,
// list, not), which deliberately excludes f-string/range/map/call/minus:
// `-` does not open a value in this narrower test, so `list -5` reads as
// an empty list here. Using the broader startsValue for this check would wrongly treat
// `set a to list -5` as the one-element list `[-5]` instead of spec.md's
// mandated empty list followed by a dangling `-5`.
func startsListOrMapValue(kind token.Kind) bool {
	switch kind {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NULL,
		token.IDENTIFIER, token.LIST, token.NOT:
		return true
	default:
		return false
	}
}

func pos(tok token.Token) ast.Position {
	return ast.Position{Line: tok.Pos.Line, Column: tok.Pos.Column}
}

// parsePrimary parses a single value: a literal, a name, a collection
// literal, an f-string, or a `call` expression. Postfix operators (`at`,
// `from ... to ...`) are layered on top by the expression climber.
func (p *parser) parsePrimary() (ast.Expr, bool) {
	if !p.guardRecursion() {
		return nil, false
	}
	defer p.releaseRecursion()

	tok := p.current()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		return p.parseNumber(tok)
	case token.STRING:
		p.advance()
		return ast.NewStringLit(pos(tok), tok.Text), true
	case token.FSTRING:
		p.advance()
		return p.parseFString(tok)
	case token.TRUE:
		p.advance()
		return ast.NewBoolLit(pos(tok), true), true
	case token.FALSE:
		p.advance()
		return ast.NewBoolLit(pos(tok), false), true
	case token.NULL, token.UNDEFINED:
		p.advance()
		return ast.NewNullLit(pos(tok)), true
	case token.IDENTIFIER:
		p.advance()
		return ast.NewVarRef(pos(tok), tok.Text), true
	case token.LIST:
		return p.parseListLit()
	case token.MAP:
		return p.parseMapLit()
	case token.RANGE:
		return p.parseRangeLit()
	case token.CALL:
		return p.parseCallExpr()
	default:
		err := errors.New(errors.UnexpectedToken, "Unexpected token in value position", tok)
		err.Suggestion = p.suggestionFor(tok)
		p.report(err)
		return nil, false
	}
}

func (p *parser) parseNumber(tok token.Token) (ast.Expr, bool) {
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			p.report(errors.New(errors.NumberOverflow, "Number overflow", tok))
		} else {
			p.report(errors.New(errors.InvalidNumber, "invalid number format", tok))
		}
		return nil, false
	}
	if math.IsInf(v, 0) {
		p.report(errors.New(errors.NumberOverflow, "Number overflow", tok))
		return nil, false
	}
	return ast.NewNumberLit(pos(tok), v), true
}

// parseListLit parses `list e1, e2, ...`. Emptiness is decided by peeking
// one token past `list`: if it cannot start a value, the list is empty.
func (p *parser) parseListLit() (ast.Expr, bool) {
	start := p.current()
	p.advance() // `list`

	elements := make([]ast.Expr, 0, 4)
	if !startsListOrMapValue(p.current().Kind) {
		return ast.NewListLit(pos(start), elements), true
	}

	for {
		el, ok := p.parseExpr(1)
		if !ok {
			return nil, false
		}
		elements = append(elements, el)
		if !p.match(token.COMMA) {
			break
		}
		p.advance()
	}
	return ast.NewListLit(pos(start), elements), true
}

// parseMapLit parses `map k1: v1, k2: v2, ...`. An identifier key is
// canonicalised to a string literal; anything else is kept as-is.
func (p *parser) parseMapLit() (ast.Expr, bool) {
	start := p.current()
	p.advance() // `map`

	if !startsListOrMapValue(p.current().Kind) {
		return ast.NewMapLit(pos(start), nil, nil), true
	}

	var keys, values []ast.Expr
	for {
		key, ok := p.parseMapKey()
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.COLON); !ok {
			return nil, false
		}
		val, ok := p.parseExpr(1)
		if !ok {
			return nil, false
		}
		keys = append(keys, key)
		values = append(values, val)
		if !p.match(token.COMMA) {
			break
		}
		p.advance()
	}
	return ast.NewMapLit(pos(start), keys, values), true
}

func (p *parser) parseMapKey() (ast.Expr, bool) {
	if p.current().Kind == token.IDENTIFIER {
		tok := p.advance()
		return ast.NewStringLit(pos(tok), tok.Text), true
	}
	return p.parseExpr(1)
}

// parseRangeLit parses `range start to end [by step]`.
func (p *parser) parseRangeLit() (ast.Expr, bool) {
	start := p.current()
	p.advance() // `range`

	startExpr, endExpr, step, ok := p.parseRangeBody()
	if !ok {
		return nil, false
	}
	return ast.NewRangeLit(pos(start), startExpr, endExpr, step), true
}

// parseRangeBody parses `start to end [by step]`, the part of a range
// shared between the range literal and `for var in range ...`. The leading
// `range` keyword has already been consumed by the caller.
func (p *parser) parseRangeBody() (start, end, step ast.Expr, ok bool) {
	start, ok = p.parseExpr(1)
	if !ok {
		return nil, nil, nil, false
	}
	if _, ok = p.consume(token.TO); !ok {
		return nil, nil, nil, false
	}
	end, ok = p.parseExpr(1)
	if !ok {
		return nil, nil, nil, false
	}
	if p.match(token.BY) {
		p.advance()
		step, ok = p.parseExpr(1)
		if !ok {
			return nil, nil, nil, false
		}
	}
	return start, end, step, true
}

// parseCallExpr parses `call name [with arg1, arg2, ...]` in expression
// context: no trailing newline is required or consumed here.
func (p *parser) parseCallExpr() (*ast.CallExpr, bool) {
	start := p.current()
	p.advance() // `call`

	name, ok := p.consume(token.IDENTIFIER)
	if !ok {
		return nil, false
	}

	var args []ast.Expr
	if p.match(token.WITH) {
		p.advance()
		for {
			arg, ok := p.parseExpr(1)
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	return ast.NewCallExpr(pos(start), name.Text, args), true
}
