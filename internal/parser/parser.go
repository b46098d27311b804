// Package parser implements a recursive-descent, precedence-climbing
// parser from a COOL token stream to an ast.Program.
package parser

import (
	"github.com/coolc/coolc/internal/ast"
	"github.com/coolc/coolc/internal/lexer"
)

// Parser consumes a finite token slice. It never looks behind the
// current position and only ever looks one token ahead beyond cur(),
// via peekAt — matching the lexer's own lookahead discipline.
type Parser struct {
	filename string
	toks     []lexer.Token
	pos      int
}

// New creates a Parser over a materialized token stream. Lexer errors
// are tokens in this stream — they surface as syntax errors the
// moment the parser tries to consume them.
func New(filename string, toks []lexer.Token) *Parser {
	return &Parser{filename: filename, toks: toks}
}

// Parse lexes and parses a single source file into a Program containing
// just that file's classes.
func Parse(filename, src string) (prog *ast.Program, err error) {
	toks := lexer.New(src, filename).Tokens()
	p := New(filename, toks)
	defer func() {
		if r := recover(); r != nil {
			if a, ok := r.(abort); ok {
				err = a.err
				return
			}
			panic(r)
		}
	}()
	return p.ParseProgram(), nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) isAtom(lexeme string) bool {
	t := p.cur()
	return t.Kind == lexer.ATOM && t.Lexeme == lexeme
}

func (p *Parser) expectAtom(lexeme string) lexer.Token {
	if !p.isAtom(lexeme) {
		p.checkError()
		p.failUnexpected(p.cur())
	}
	return p.advance()
}

func (p *Parser) matchAtom(lexeme string) bool {
	if p.isAtom(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectKind(k lexer.TokenKind) lexer.Token {
	if p.cur().Kind != k {
		p.checkError()
		p.failUnexpected(p.cur())
	}
	return p.advance()
}

func (p *Parser) matchKind(k lexer.TokenKind) bool {
	if p.cur().Kind == k {
		p.advance()
		return true
	}
	return false
}

// checkError aborts immediately if the current token is a lexer ERROR
// token: an ERROR can never satisfy any production, so treating it as
// "unexpected" (rather than silently skipping it) is what makes lex
// errors surface through the parser's normal mechanism.
func (p *Parser) checkError() {
	if p.cur().Kind == lexer.ERROR {
		p.failUnexpected(p.cur())
	}
}

func (p *Parser) expectTypeID() string {
	p.checkError()
	return p.expectKind(lexer.TYPEID).Lexeme
}

func (p *Parser) expectObjectID() string {
	p.checkError()
	return p.expectKind(lexer.OBJECTID).Lexeme
}

// ParseProgram parses "(class ';')+" — at least one class, each
// terminated by a semicolon.
func (p *Parser) ParseProgram() *ast.Program {
	var classes []*ast.Class
	for {
		p.checkError()
		if p.cur().Kind == lexer.EOF {
			if len(classes) == 0 {
				p.failUnexpected(p.cur())
			}
			break
		}
		classes = append(classes, p.parseClass())
		p.expectAtom(";")
	}
	return &ast.Program{Classes: classes}
}
