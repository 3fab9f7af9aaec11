package parser

import (
	"github.com/nedanwr/kronos/ast"
	"github.com/nedanwr/kronos/errors"
	"github.com/nedanwr/kronos/token"
)

// parseStatement dispatches on the current token's keyword to the matching
// statement parser (C5). indent is the indentation level of this
// statement's own line, already consumed by the caller (the block parser or
// the top-level driver); it is threaded through to the handful of
// statements that own a body block or an indent-matched continuation
// (if/for/while/function/try).
func (p *parser) parseStatement(indent int) (ast.Stmt, bool) {
	if !p.guardRecursion() {
		return nil, false
	}
	defer p.releaseRecursion()

	switch p.current().Kind {
	case token.SET, token.LET:
		return p.parseAssignStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.IF:
		return p.parseIfStmt(indent)
	case token.FOR:
		return p.parseForStmt(indent)
	case token.WHILE:
		return p.parseWhileStmt(indent)
	case token.FUNCTION:
		return p.parseFunctionStmt(indent)
	case token.CALL:
		return p.parseCallStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IMPORT:
		return p.parseImportStmt()
	case token.SLICE_FROM: // `from <module> import ...`
		return p.parseFromImportStmt()
	case token.DELETE:
		return p.parseDeleteStmt()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.CONTINUE:
		return p.parseContinueStmt()
	case token.TRY:
		return p.parseTryStmt(indent)
	case token.RAISE:
		return p.parseRaiseStmt()
	default:
		err := errors.New(errors.UnexpectedToken, "Unexpected token at start of statement", p.current())
		err.Suggestion = p.suggestionFor(p.current())
		p.report(err)
		return nil, false
	}
}

// peekContinuation reports whether the upcoming line is an indent-matched
// continuation introduced by kw (`else`, `catch`, `finally`) at exactly
// indent, without consuming anything. If/try use this to decide whether to
// extend their chain or hand control back to the enclosing block/driver.
func (p *parser) peekContinuation(indent int, kw token.Kind) (token.Token, bool) {
	if p.current().Kind != token.INDENT || p.current().Indent != indent {
		return token.Token{}, false
	}
	if p.peek(1).Kind != kw {
		return token.Token{}, false
	}
	return p.current(), true
}

// parseAssignStmt parses `set|let <name> to <expr> [as <typename>]` or,
// when `at` follows the name, `let <name> at <index> to <value>`.
func (p *parser) parseAssignStmt() (ast.Stmt, bool) {
	start := p.current()
	mutable := start.Kind == token.LET
	p.advance() // set | let

	nameTok, ok := p.consume(token.IDENTIFIER)
	if !ok {
		return nil, false
	}

	if p.match(token.AT) {
		p.advance()
		index, ok := p.parseExpr(1)
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.TO); !ok {
			return nil, false
		}
		value, ok := p.parseExpr(1)
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.NEWLINE); !ok {
			return nil, false
		}
		target := ast.NewVarRef(pos(nameTok), nameTok.Text)
		return ast.NewAssignIndexStmt(pos(start), target, index, value), true
	}

	if _, ok := p.consume(token.TO); !ok {
		return nil, false
	}
	value, ok := p.parseExpr(1)
	if !ok {
		return nil, false
	}

	typeName := ""
	if p.match(token.AS) {
		p.advance()
		typeTok, ok := p.consume(token.IDENTIFIER)
		if !ok {
			return nil, false
		}
		typeName = typeTok.Text
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewAssignStmt(pos(start), nameTok.Text, value, mutable, typeName), true
}

func (p *parser) parsePrintStmt() (ast.Stmt, bool) {
	start := p.advance() // print
	value, ok := p.parseExpr(1)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewPrintStmt(pos(start), value), true
}

// parseIfStmt parses `if cond: block` followed by zero or more `else if`
// clauses and an optional terminal `else`, all required to sit at exactly
// indent. Once an `else` is consumed, the chain closes.
func (p *parser) parseIfStmt(indent int) (ast.Stmt, bool) {
	start := p.advance() // if
	cond, ok := p.parseExpr(1)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.COLON); !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	block, ok := p.parseBlock(indent)
	if !ok {
		return nil, false
	}

	var elseIfs []ast.ElseIf
	var elseBlock ast.Block
	for {
		if _, ok := p.peekContinuation(indent, token.ELSE); !ok {
			break
		}
		p.advance() // INDENT
		p.advance() // else

		if p.match(token.IF) {
			p.advance()
			eiCond, ok := p.parseExpr(1)
			if !ok {
				return nil, false
			}
			if _, ok := p.consume(token.COLON); !ok {
				return nil, false
			}
			if _, ok := p.consume(token.NEWLINE); !ok {
				return nil, false
			}
			eiBlock, ok := p.parseBlock(indent)
			if !ok {
				return nil, false
			}
			elseIfs = append(elseIfs, ast.ElseIf{Cond: eiCond, Block: eiBlock})
			continue
		}

		if _, ok := p.consume(token.COLON); !ok {
			return nil, false
		}
		if _, ok := p.consume(token.NEWLINE); !ok {
			return nil, false
		}
		eb, ok := p.parseBlock(indent)
		if !ok {
			return nil, false
		}
		elseBlock = eb
		if elseBlock == nil {
			elseBlock = ast.Block{}
		}
		break
	}

	return ast.NewIfStmt(pos(start), cond, block, elseIfs, elseBlock), true
}

// parseForStmt parses `for var in <iterable>: block`, where <iterable>
// taking the form `range start to end [by step]` sets IsRange.
func (p *parser) parseForStmt(indent int) (ast.Stmt, bool) {
	start := p.advance() // for
	varTok, ok := p.consume(token.IDENTIFIER)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.IN); !ok {
		return nil, false
	}

	var iterable, end, step ast.Expr
	isRange := false
	if p.match(token.RANGE) {
		p.advance()
		isRange = true
		s, e, st, ok := p.parseRangeBody()
		if !ok {
			return nil, false
		}
		iterable, end, step = s, e, st
	} else {
		it, ok := p.parseExpr(1)
		if !ok {
			return nil, false
		}
		iterable = it
	}

	if _, ok := p.consume(token.COLON); !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	block, ok := p.parseBlock(indent)
	if !ok {
		return nil, false
	}
	return ast.NewForStmt(pos(start), varTok.Text, iterable, isRange, end, step, block), true
}

func (p *parser) parseWhileStmt(indent int) (ast.Stmt, bool) {
	start := p.advance() // while
	cond, ok := p.parseExpr(1)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.COLON); !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	block, ok := p.parseBlock(indent)
	if !ok {
		return nil, false
	}
	return ast.NewWhileStmt(pos(start), cond, block), true
}

func (p *parser) parseFunctionStmt(indent int) (ast.Stmt, bool) {
	start := p.advance() // function
	nameTok, ok := p.consume(token.IDENTIFIER)
	if !ok {
		return nil, false
	}

	var params []string
	if p.match(token.WITH) {
		p.advance()
		for {
			paramTok, ok := p.consume(token.IDENTIFIER)
			if !ok {
				return nil, false
			}
			params = append(params, paramTok.Text)
			if !p.match(token.COMMA) {
				break
			}
			p.advance()
		}
	}

	if _, ok := p.consume(token.COLON); !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	block, ok := p.parseBlock(indent)
	if !ok {
		return nil, false
	}
	return ast.NewFunctionStmt(pos(start), nameTok.Text, params, block), true
}

// parseCallStmt wraps a `call` parsed in statement context, where (unlike
// the same call inside an expression) a trailing newline is required.
func (p *parser) parseCallStmt() (ast.Stmt, bool) {
	start := p.current()
	call, ok := p.parseCallExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewCallStmt(pos(start), call), true
}

func (p *parser) parseReturnStmt() (ast.Stmt, bool) {
	start := p.advance() // return
	var value ast.Expr
	if startsValue(p.current().Kind) {
		v, ok := p.parseExpr(1)
		if !ok {
			return nil, false
		}
		value = v
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewReturnStmt(pos(start), value), true
}

// parseImportStmt parses `import <module> [from "path"]`.
func (p *parser) parseImportStmt() (ast.Stmt, bool) {
	start := p.advance() // import
	moduleTok, ok := p.consume(token.IDENTIFIER)
	if !ok {
		return nil, false
	}

	filePath := ""
	if p.match(token.SLICE_FROM) {
		p.advance()
		pathTok, ok := p.consume(token.STRING)
		if !ok {
			return nil, false
		}
		filePath = pathTok.Text
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewImportStmt(pos(start), moduleTok.Text, filePath, nil, false), true
}

// parseFromImportStmt parses `from <module> import <name>[, <name>...]`.
// The leading `from` lexes as token.SLICE_FROM; the parser disambiguates it
// from a slice expression purely by appearing at the head of a statement.
func (p *parser) parseFromImportStmt() (ast.Stmt, bool) {
	start := p.advance() // from
	moduleTok, ok := p.consume(token.IDENTIFIER)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.IMPORT); !ok {
		return nil, false
	}

	var names []string
	for {
		nameTok, ok := p.consume(token.IDENTIFIER)
		if !ok {
			return nil, false
		}
		names = append(names, nameTok.Text)
		if !p.match(token.COMMA) {
			break
		}
		p.advance()
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewImportStmt(pos(start), moduleTok.Text, "", names, true), true
}

func (p *parser) parseDeleteStmt() (ast.Stmt, bool) {
	start := p.advance() // delete
	nameTok, ok := p.consume(token.IDENTIFIER)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.AT); !ok {
		return nil, false
	}
	key, ok := p.parseExpr(1)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	target := ast.NewVarRef(pos(nameTok), nameTok.Text)
	return ast.NewDeleteStmt(pos(start), target, key), true
}

func (p *parser) parseBreakStmt() (ast.Stmt, bool) {
	start := p.advance()
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewBreakStmt(pos(start)), true
}

func (p *parser) parseContinueStmt() (ast.Stmt, bool) {
	start := p.advance()
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewContinueStmt(pos(start)), true
}

// parseTryStmt parses `try: block` followed by zero or more `catch` clauses
// and an optional `finally` clause, all held at exactly indent.
func (p *parser) parseTryStmt(indent int) (ast.Stmt, bool) {
	start := p.advance() // try
	if _, ok := p.consume(token.COLON); !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	tryBlock, ok := p.parseBlock(indent)
	if !ok {
		return nil, false
	}

	var catches []ast.CatchClause
	for {
		if _, ok := p.peekContinuation(indent, token.CATCH); !ok {
			break
		}
		p.advance() // INDENT
		p.advance() // catch

		errType, catchVar := "", ""
		if p.current().Kind == token.IDENTIFIER {
			idTok := p.advance()
			if p.match(token.AS) {
				errType = idTok.Text
				p.advance()
				varTok, ok := p.consume(token.IDENTIFIER)
				if !ok {
					return nil, false
				}
				catchVar = varTok.Text
			} else {
				// A bare `catch <identifier>:` names the catch variable and
				// matches any error.
				catchVar = idTok.Text
			}
		}

		if _, ok := p.consume(token.COLON); !ok {
			return nil, false
		}
		if _, ok := p.consume(token.NEWLINE); !ok {
			return nil, false
		}
		catchBlock, ok := p.parseBlock(indent)
		if !ok {
			return nil, false
		}
		catches = append(catches, ast.CatchClause{ErrorType: errType, CatchVar: catchVar, Block: catchBlock})
	}

	var finally ast.Block
	if _, ok := p.peekContinuation(indent, token.FINALLY); ok {
		p.advance() // INDENT
		p.advance() // finally
		if _, ok := p.consume(token.COLON); !ok {
			return nil, false
		}
		if _, ok := p.consume(token.NEWLINE); !ok {
			return nil, false
		}
		fBlock, ok := p.parseBlock(indent)
		if !ok {
			return nil, false
		}
		finally = fBlock
		if finally == nil {
			finally = ast.Block{}
		}
	}

	return ast.NewTryStmt(pos(start), tryBlock, catches, finally), true
}

// parseRaiseStmt parses `raise [ErrorType] message`. The identifier after
// `raise` is the error type only when it is itself followed by a string or
// f-string token; otherwise it is the start of the message expression, per
// the documented disambiguation rule.
func (p *parser) parseRaiseStmt() (ast.Stmt, bool) {
	start := p.advance() // raise

	errType := ""
	if p.current().Kind == token.IDENTIFIER && isStringStart(p.peek(1).Kind) {
		idTok := p.advance()
		errType = idTok.Text
	}

	message, ok := p.parseExpr(1)
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.NEWLINE); !ok {
		return nil, false
	}
	return ast.NewRaiseStmt(pos(start), errType, message), true
}

func isStringStart(k token.Kind) bool {
	return k == token.STRING || k == token.FSTRING
}
