package cmd

import (
	"fmt"
	"os"

	"github.com/coolc/coolc/internal/errors"
	"github.com/coolc/coolc/internal/parser"
	"github.com/coolc/coolc/internal/semantic"
)

// reportSourceError prints err (a *parser.SyntaxError or *semantic.Error)
// through internal/errors' `"file", line N` formatter and returns a
// plain error so the caller's RunE surfaces a nonzero exit without
// double-printing the message.
//
// sources maps each merged input file's name to its text, since a
// semantic error raised against a multi-file compilation unit may name
// any one of them, not just the file passed in.
func reportSourceError(err error, sources map[string]string) error {
	file, line, msg := locate(err)
	ce := errors.New(file, line, msg, sources[file])
	fmt.Fprintln(os.Stderr, ce.Format(false))
	return fmt.Errorf("%s: compilation failed", file)
}

func locate(err error) (file string, line int, msg string) {
	switch e := err.(type) {
	case *parser.SyntaxError:
		return e.Filename, e.Line, e.Message
	case *semantic.Error:
		return e.Filename, e.Line, e.Message
	default:
		return "", 0, e.Error()
	}
}
