package astdump_test

import (
	"testing"

	"github.com/coolc/coolc/internal/astdump"
	"github.com/coolc/coolc/internal/parser"
	"github.com/coolc/coolc/internal/semantic"
	"github.com/tidwall/gjson"
)

func mustDump(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.Parse("t.cl", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := semantic.Analyze(prog); err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	out, err := astdump.Dump(prog)
	if err != nil {
		t.Fatalf("unexpected dump error: %v", err)
	}
	return out
}

func TestDump_ProgramHasOneClassChild(t *testing.T) {
	out := mustDump(t, `class Main inherits IO { main(): Int { 0 }; };`)

	if tag := gjson.Get(out, "tag").String(); tag != "program" {
		t.Fatalf("expected tag program, got %q", tag)
	}
	children := gjson.Get(out, "children")
	if len(children.Array()) != 1 {
		t.Fatalf("expected 1 class child, got %d", len(children.Array()))
	}
	class := children.Array()[0]
	if class.Get("tag").String() != "class" {
		t.Fatalf("expected class tag, got %q", class.Get("tag").String())
	}
	if class.Get("typeName").String() != "Main" {
		t.Fatalf("expected typeName Main, got %q", class.Get("typeName").String())
	}
}

func TestDump_ExpressionsCarryResultType(t *testing.T) {
	out := mustDump(t, `
class Main inherits IO {
  main(): Int { 1 + 2 };
};`)
	method := gjson.Get(out, "children.0.children.0")
	plus := method.Get("children.0")
	if plus.Get("tag").String() != "plus" {
		t.Fatalf("expected plus node, got %q", plus.Get("tag").String())
	}
	if plus.Get("resultType").String() != "Int" {
		t.Fatalf("expected Int result type, got %q", plus.Get("resultType").String())
	}
}

func TestDump_CaseBranchesPreserved(t *testing.T) {
	out := mustDump(t, `
class Main inherits IO {
  classify(o : Object): String {
    case o of
      i : Int => "int";
      x : Object => "other";
    esac
  };
  main(): Int { 0 };
};`)
	method := gjson.Get(out, "children.0.children.0")
	typcase := method.Get("children.1")
	if typcase.Get("tag").String() != "typcase" {
		t.Fatalf("expected typcase node, got %q", typcase.Get("tag").String())
	}
	branches := typcase.Get("children")
	if len(branches.Array()) != 3 {
		t.Fatalf("expected scrutinee + 2 branches, got %d", len(branches.Array()))
	}
}
