package parser

import (
	"fmt"

	"github.com/coolc/coolc/internal/lexer"
)

// SyntaxError is the single fatal error a parse can produce.
type SyntaxError struct {
	Filename string
	Line     int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%q, line %d: %s", e.Filename, e.Line, e.Message)
}

// describe renders the "<token-description>" fragment of a syntax
// error message: '<lexeme>' for ATOM, the kind name (plus " = <lexeme>"
// when one is carried) otherwise, or EOF past the end of the stream.
func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.EOF:
		return "EOF"
	case lexer.ATOM:
		return fmt.Sprintf("'%s'", tok.Lexeme)
	case lexer.ERROR:
		return fmt.Sprintf("%s = %s", tok.Kind, tok.Lexeme)
	default:
		if tok.Lexeme == "" {
			return tok.Kind.String()
		}
		return fmt.Sprintf("%s = %s", tok.Kind, tok.Lexeme)
	}
}

// abort is used via panic/recover to unwind the recursive-descent
// parser to ParseProgram on the first syntax error, matching the
// "first error aborts" policy without error-value plumbing through
// every production.
type abort struct{ err *SyntaxError }

func (p *Parser) fail(tok lexer.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(abort{&SyntaxError{Filename: p.filename, Line: tok.Line, Message: msg}})
}

func (p *Parser) failUnexpected(tok lexer.Token) {
	p.fail(tok, "syntax error at or near %s", describe(tok))
}
