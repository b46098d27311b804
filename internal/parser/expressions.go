package parser

import (
	"strconv"

	"github.com/coolc/coolc/internal/ast"
	"github.com/coolc/coolc/internal/lexer"
)

// parseExpr is the entry point for the expression grammar; it parses
// at the lowest precedence level (assignment).
func (p *Parser) parseExpr() ast.Expression {
	return p.parseAssign()
}

// level 1: "ID <- expr", right-associative.
func (p *Parser) parseAssign() ast.Expression {
	if p.cur().Kind == lexer.OBJECTID && p.peekAt(1).Kind == lexer.ASSIGN {
		idTok := p.advance()
		p.advance() // ASSIGN
		rhs := p.parseAssign()
		return ast.NewAssign(idTok.Line, idTok.Lexeme, rhs)
	}
	return p.parseNot()
}

// level 2: prefix "not", right-associative.
func (p *Parser) parseNot() ast.Expression {
	if p.cur().Kind == lexer.NOT {
		tok := p.advance()
		e := p.parseNot()
		return ast.NewNot(tok.Line, e)
	}
	return p.parseComparison()
}

// level 3: "<=", "<", "=" — at most one consumed per parse.
func (p *Parser) parseComparison() ast.Expression {
	lhs := p.parseAddSub()
	switch {
	case p.cur().Kind == lexer.LE:
		tok := p.advance()
		rhs := p.parseAddSub()
		return ast.NewLe(tok.Line, lhs, rhs)
	case p.isAtom("<"):
		tok := p.advance()
		rhs := p.parseAddSub()
		return ast.NewLt(tok.Line, lhs, rhs)
	case p.isAtom("="):
		tok := p.advance()
		rhs := p.parseAddSub()
		return ast.NewEq(tok.Line, lhs, rhs)
	}
	return lhs
}

// level 4: "+", "-", left-associative.
func (p *Parser) parseAddSub() ast.Expression {
	lhs := p.parseMulDiv()
	for {
		switch {
		case p.isAtom("+"):
			tok := p.advance()
			lhs = ast.NewPlus(tok.Line, lhs, p.parseMulDiv())
		case p.isAtom("-"):
			tok := p.advance()
			lhs = ast.NewMinus(tok.Line, lhs, p.parseMulDiv())
		default:
			return lhs
		}
	}
}

// level 5: "*", "/", left-associative.
func (p *Parser) parseMulDiv() ast.Expression {
	lhs := p.parseIsVoid()
	for {
		switch {
		case p.isAtom("*"):
			tok := p.advance()
			lhs = ast.NewMul(tok.Line, lhs, p.parseIsVoid())
		case p.isAtom("/"):
			tok := p.advance()
			lhs = ast.NewDiv(tok.Line, lhs, p.parseIsVoid())
		default:
			return lhs
		}
	}
}

// level 6: prefix "isvoid", right-associative.
func (p *Parser) parseIsVoid() ast.Expression {
	if p.cur().Kind == lexer.ISVOID {
		tok := p.advance()
		return ast.NewIsVoid(tok.Line, p.parseIsVoid())
	}
	return p.parseNeg()
}

// level 7: prefix "~", right-associative.
func (p *Parser) parseNeg() ast.Expression {
	if p.isAtom("~") {
		tok := p.advance()
		return ast.NewNeg(tok.Line, p.parseNeg())
	}
	return p.parseDispatchChain()
}

// level 8: "." and "@Type." dispatch, left-associative.
func (p *Parser) parseDispatchChain() ast.Expression {
	e := p.parseAtom()
	for {
		switch {
		case p.isAtom("."):
			tok := p.advance()
			method := p.expectObjectID()
			args := p.parseArgs()
			e = ast.NewDispatch(tok.Line, e, method, args)
		case p.isAtom("@"):
			tok := p.advance()
			typ := p.expectTypeID()
			p.expectAtom(".")
			method := p.expectObjectID()
			args := p.parseArgs()
			e = ast.NewStaticDispatch(tok.Line, e, typ, method, args)
		default:
			return e
		}
	}
}

// parseArgs parses a parenthesized, comma-separated (possibly empty)
// expression list.
func (p *Parser) parseArgs() []ast.Expression {
	p.expectAtom("(")
	var args []ast.Expression
	if !p.isAtom(")") {
		args = append(args, p.parseExpr())
		for p.matchAtom(",") {
			args = append(args, p.parseExpr())
		}
	}
	p.expectAtom(")")
	return args
}

// level 9: atoms — if/fi, while/pool, blocks, let/in, case/esac, new,
// parenthesized expressions, literals, identifiers, and implicit-self
// dispatch "id(args)".
func (p *Parser) parseAtom() ast.Expression {
	p.checkError()
	tok := p.cur()

	switch tok.Kind {
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.LET:
		return p.parseLet()
	case lexer.CASE:
		return p.parseCase()
	case lexer.NEW:
		p.advance()
		typ := p.expectTypeID()
		return ast.NewNew(tok.Line, typ)
	case lexer.INT_CONST:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 32)
		if err != nil {
			// Per spec, integers never overflow int32 in valid programs;
			// an out-of-range literal is clamped to the int32 limit that
			// strconv reports with the range error, rather than aborting the
			// batch compile.
			v = v & 0xffffffff
		}
		return ast.NewInt(tok.Line, int32(v))
	case lexer.STR_CONST:
		p.advance()
		return ast.NewStr(tok.Line, tok.Lexeme[1:len(tok.Lexeme)-1])
	case lexer.BOOL_CONST:
		p.advance()
		return ast.NewBool(tok.Line, tok.Lexeme == "true")
	case lexer.OBJECTID:
		p.advance()
		if p.isAtom("(") {
			args := p.parseArgs()
			return ast.NewDispatch(tok.Line, ast.NewId(tok.Line, ast.Self), tok.Lexeme, args)
		}
		return ast.NewId(tok.Line, tok.Lexeme)
	case lexer.ATOM:
		if tok.Lexeme == "{" {
			return p.parseBlock()
		}
		if tok.Lexeme == "(" {
			p.advance()
			e := p.parseExpr()
			p.expectAtom(")")
			return ast.NewParen(tok.Line, e)
		}
	}

	p.failUnexpected(tok)
	return nil
}

func (p *Parser) parseIf() ast.Expression {
	tok := p.expectKind(lexer.IF)
	cond := p.parseExpr()
	p.expectKind(lexer.THEN)
	then := p.parseExpr()
	p.expectKind(lexer.ELSE)
	els := p.parseExpr()
	p.expectKind(lexer.FI)
	return ast.NewIf(tok.Line, cond, then, els)
}

func (p *Parser) parseWhile() ast.Expression {
	tok := p.expectKind(lexer.WHILE)
	cond := p.parseExpr()
	p.expectKind(lexer.LOOP)
	body := p.parseExpr()
	p.expectKind(lexer.POOL)
	return ast.NewWhile(tok.Line, cond, body)
}

// parseBlock parses "{ (expr ';')+ }" — a non-empty, semicolon-terminated
// expression sequence.
func (p *Parser) parseBlock() ast.Expression {
	tok := p.expectAtom("{")
	var exprs []ast.Expression
	exprs = append(exprs, p.parseExpr())
	p.expectAtom(";")
	for !p.isAtom("}") {
		exprs = append(exprs, p.parseExpr())
		p.expectAtom(";")
	}
	p.expectAtom("}")
	return ast.NewBlock(tok.Line, exprs)
}

type letBinding struct {
	id   string
	typ  string
	init ast.Expression
	line int
}

// parseLet desugars "let x1:T1 [<- e1], x2:T2 [<- e2], ... in body" into
// nested single-binding Let nodes, left-outermost.
func (p *Parser) parseLet() ast.Expression {
	p.expectKind(lexer.LET)

	var bindings []letBinding
	bindings = append(bindings, p.parseLetBinding())
	for p.matchAtom(",") {
		bindings = append(bindings, p.parseLetBinding())
	}
	p.expectKind(lexer.IN)
	body := p.parseExpr()

	result := body
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		result = ast.NewLet(b.line, b.id, b.typ, b.init, result)
	}
	return result
}

func (p *Parser) parseLetBinding() letBinding {
	idTok := p.expectObjectID()
	line := p.toks[p.pos-1].Line
	p.expectAtom(":")
	typ := p.expectTypeID()
	init := ast.Expression(ast.NewNoExpr(line))
	if p.matchKind(lexer.ASSIGN) {
		init = p.parseExpr()
	}
	return letBinding{id: idTok, typ: typ, init: init, line: line}
}

func (p *Parser) parseCase() ast.Expression {
	tok := p.expectKind(lexer.CASE)
	scrutinee := p.parseExpr()
	p.expectKind(lexer.OF)
	var branches []*ast.CaseBranch
	for {
		idTok := p.expectObjectID()
		line := p.toks[p.pos-1].Line
		p.expectAtom(":")
		typ := p.expectTypeID()
		p.expectKind(lexer.DARROW)
		body := p.parseExpr()
		p.expectAtom(";")
		branches = append(branches, ast.NewCaseBranch(line, idTok, typ, body))
		if p.cur().Kind == lexer.ESAC {
			break
		}
	}
	p.expectKind(lexer.ESAC)
	return ast.NewCase(tok.Line, scrutinee, branches)
}
