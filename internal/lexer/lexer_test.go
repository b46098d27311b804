package lexer_test

import (
	"testing"

	"github.com/coolc/coolc/internal/lexer"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

func kinds(toks []lexer.Token) []lexer.TokenKind {
	out := make([]lexer.TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestNextToken_Punctuation(t *testing.T) {
	input := `{}():;+-*/.,@~<=>`
	toks := lexer.New(input, "t.cl").Tokens()
	want := []lexer.TokenKind{
		lexer.ATOM, lexer.ATOM, lexer.ATOM, lexer.ATOM, lexer.ATOM, lexer.ATOM,
		lexer.ATOM, lexer.ATOM, lexer.ATOM, lexer.ATOM, lexer.ATOM, lexer.ATOM,
		lexer.ATOM, lexer.ATOM, lexer.LE, lexer.ATOM, lexer.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNextToken_MultiCharOperators(t *testing.T) {
	toks := lexer.New("=> <- <= < =", "t.cl").Tokens()
	want := []lexer.TokenKind{lexer.DARROW, lexer.ASSIGN, lexer.LE, lexer.ATOM, lexer.ATOM, lexer.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := "class ClAsS else fi if in inherits let loop pool then while case esac of new isvoid not"
	toks := lexer.New(input, "t.cl").Tokens()
	for i := 0; i < 2; i++ {
		if toks[i].Kind != lexer.CLASS {
			t.Errorf("token %d: expected CLASS (case-insensitive), got %s", i, toks[i].Kind)
		}
	}
}

func TestNextToken_BooleanCasing(t *testing.T) {
	toks := lexer.New("true false True False tRue", "t.cl").Tokens()
	if toks[0].Kind != lexer.BOOL_CONST || toks[0].Lexeme != "true" {
		t.Errorf("expected lowercase true to be BOOL_CONST, got %+v", toks[0])
	}
	if toks[1].Kind != lexer.BOOL_CONST || toks[1].Lexeme != "false" {
		t.Errorf("expected lowercase false to be BOOL_CONST, got %+v", toks[1])
	}
	if toks[2].Kind != lexer.TYPEID {
		t.Errorf("expected True to be TYPEID, got %+v", toks[2])
	}
	if toks[3].Kind != lexer.TYPEID {
		t.Errorf("expected False to be TYPEID, got %+v", toks[3])
	}
	if toks[4].Kind != lexer.BOOL_CONST || toks[4].Lexeme != "true" {
		t.Errorf("expected tRue (lowercase first letter, rest case-insensitive) to be BOOL_CONST true, got %+v", toks[4])
	}
}

func TestNextToken_Identifiers(t *testing.T) {
	toks := lexer.New("fooBar FooBar _leading x1 X1", "t.cl").Tokens()
	wantKinds := []lexer.TokenKind{lexer.OBJECTID, lexer.TYPEID, lexer.ERROR, lexer.OBJECTID, lexer.OBJECTID, lexer.TYPEID}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d (%s): got %s, want %s", i, toks[i].Lexeme, toks[i].Kind, k)
		}
	}
}

func TestNextToken_Integers(t *testing.T) {
	toks := lexer.New("0 42 007", "t.cl").Tokens()
	want := []string{"0", "42", "007"}
	for i, w := range want {
		if toks[i].Kind != lexer.INT_CONST || toks[i].Lexeme != w {
			t.Errorf("token %d: got %+v, want INT_CONST %q", i, toks[i], w)
		}
	}
}

func TestNextToken_LineComment(t *testing.T) {
	toks := lexer.New("1 -- comment\n2", "t.cl").Tokens()
	if toks[0].Line != 1 || toks[1].Line != 2 {
		t.Errorf("unexpected line numbers: %+v", toks)
	}
}

func TestNextToken_BlockComment(t *testing.T) {
	toks := lexer.New("1 (* a (* nested *) b *) 2", "t.cl").Tokens()
	if toks[0].Kind != lexer.INT_CONST || toks[1].Kind != lexer.INT_CONST {
		t.Fatalf("expected two INT_CONST tokens around the comment, got %+v", toks)
	}
}

func TestNextToken_UnterminatedBlockComment(t *testing.T) {
	toks := lexer.New("(* hi", "t.cl").Tokens()
	if toks[0].Kind != lexer.ERROR || toks[0].Lexeme != "EOF in comment" {
		t.Fatalf("expected EOF in comment error, got %+v", toks[0])
	}
}

func TestNextToken_UnmatchedBlockCommentClose(t *testing.T) {
	toks := lexer.New("*)", "t.cl").Tokens()
	if toks[0].Kind != lexer.ERROR || toks[0].Lexeme != "Unmatched *)" {
		t.Fatalf("expected Unmatched *) error, got %+v", toks[0])
	}
}

func TestNextToken_StringEscapes(t *testing.T) {
	toks := lexer.New(`"a\nb\tc\\d\"e"`, "t.cl").Tokens()
	want := `"a\nb\tc\\d\"e"`
	if toks[0].Kind != lexer.STR_CONST || toks[0].Lexeme != want {
		t.Fatalf("got %+v, want STR_CONST %q", toks[0], want)
	}
}

func TestNextToken_StringEscapedNewline(t *testing.T) {
	toks := lexer.New("\"a\\\nb\"", "t.cl").Tokens()
	if toks[0].Kind != lexer.STR_CONST || toks[0].Lexeme != `"a\nb"` {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	toks := lexer.New("\"abc\ndef\"", "t.cl").Tokens()
	if toks[0].Kind != lexer.ERROR || toks[0].Lexeme != "Unterminated string constant" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestNextToken_EOFInString(t *testing.T) {
	toks := lexer.New(`"abc`, "t.cl").Tokens()
	if toks[0].Kind != lexer.ERROR || toks[0].Lexeme != "EOF in string constant" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestNextToken_StringTooLong(t *testing.T) {
	long := make([]byte, 1025)
	for i := range long {
		long[i] = 'a'
	}
	src := `"` + string(long) + `"`
	toks := lexer.New(src, "t.cl").Tokens()
	if toks[0].Kind != lexer.ERROR || toks[0].Lexeme != "String constant too long" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestNextToken_IllegalByte(t *testing.T) {
	toks := lexer.New("$", "t.cl").Tokens()
	if toks[0].Kind != lexer.ERROR {
		t.Fatalf("expected ERROR for illegal byte, got %+v", toks[0])
	}
	if toks[0].Lexeme != `\044` {
		t.Errorf("expected octal-escaped lexeme, got %q", toks[0].Lexeme)
	}
}

func TestDumpTokens_Snapshot(t *testing.T) {
	input := `class Main inherits IO {
  main(): Object {
    out_string("Hello, World.\n")
  };
};`
	toks := lexer.New(input, "hello.cl").Tokens()
	snaps.MatchSnapshot(t, lexer.DumpTokens("hello.cl", toks))
}
