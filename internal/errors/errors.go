// Package errors formats compiler diagnostics with source context: a
// `"file", line N` header, the offending source line, and a caret
// under it.
package errors

import (
	"fmt"
	"strings"
)

// CompilerError is a single fatal compilation error: a lex/parse error
// surfaced through the parser, or a semantic error from the analyzer.
// The compiler reports the first one and stops — there is no
// multi-error accumulation.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Line    int
}

// New creates a CompilerError. Source may be empty when the caller has
// no source text handy (e.g. wrapping a parser error that already
// carries its own formatted message).
func New(file string, line int, message, source string) *CompilerError {
	return &CompilerError{File: file, Line: line, Message: message, Source: source}
}

// Error implements the error interface with the plain, uncolored form.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source-line/caret excerpt. color
// wraps the caret in ANSI red-bold when true.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%q, line %d: %s\n", e.File, e.Line, e.Message)
	} else {
		fmt.Fprintf(&sb, "line %d: %s\n", e.Line, e.Message)
	}

	if line := e.sourceLine(e.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)))
		if color {
			sb.WriteString("\033[1;31m^\033[0m")
		} else {
			sb.WriteString("^")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (e *CompilerError) sourceLine(line int) string {
	if e.Source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
