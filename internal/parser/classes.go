package parser

import (
	"github.com/coolc/coolc/internal/ast"
	"github.com/coolc/coolc/internal/lexer"
)

// parseClass parses:
//
//	class TYPEID ["inherits" TYPEID] "{" (feature ";")* "}"
func (p *Parser) parseClass() *ast.Class {
	tok := p.expectKind(lexer.CLASS)
	typeName := p.expectTypeID()
	parent := "Object"
	if p.matchKind(lexer.INHERITS) {
		parent = p.expectTypeID()
	}
	p.expectAtom("{")
	var features []ast.Feature
	for !p.isAtom("}") {
		features = append(features, p.parseFeature())
		p.expectAtom(";")
	}
	p.expectAtom("}")
	return ast.NewClass(tok.Line, typeName, parent, p.filename, features)
}

// parseFeature recognizes an attribute vs. a method by a two-token
// lookahead: if the token after the identifier is ":" it is an
// attribute, otherwise it is a method.
func (p *Parser) parseFeature() ast.Feature {
	p.checkError()
	idTok := p.expectObjectID()
	line := p.toks[p.pos-1].Line

	if p.isAtom(":") {
		p.advance()
		typ := p.expectTypeID()
		init := ast.Expression(ast.NewNoExpr(line))
		if p.matchKind(lexer.ASSIGN) {
			init = p.parseExpr()
		}
		return ast.NewAttr(line, idTok, typ, init)
	}

	p.expectAtom("(")
	var formals []*ast.Formal
	if !p.isAtom(")") {
		formals = append(formals, p.parseFormal())
		for p.matchAtom(",") {
			formals = append(formals, p.parseFormal())
		}
	}
	p.expectAtom(")")
	p.expectAtom(":")
	retType := p.expectTypeID()
	p.expectAtom("{")
	body := p.parseExpr()
	p.expectAtom("}")
	return ast.NewMethod(line, idTok, formals, retType, body)
}

func (p *Parser) parseFormal() *ast.Formal {
	idTok := p.expectObjectID()
	line := p.toks[p.pos-1].Line
	p.expectAtom(":")
	typ := p.expectTypeID()
	return ast.NewFormal(line, idTok, typ)
}
