package codegen_test

import (
	"testing"

	"github.com/coolc/coolc/internal/codegen"
	"github.com/coolc/coolc/internal/parser"
	"github.com/coolc/coolc/internal/semantic"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

func mustGenerate(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.Parse("t.cl", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	result, err := semantic.Analyze(prog)
	if err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	out, err := codegen.Generate(prog, result)
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	return out
}

func TestGenerate_HelloWorld(t *testing.T) {
	out := mustGenerate(t, `
class Main inherits IO {
  main(): Object { out_string("Hello, world.\n") };
};`)
	snaps.MatchSnapshot(t, out)
}

func TestGenerate_InheritanceDispatchAndLet(t *testing.T) {
	out := mustGenerate(t, `
class A {
  x : Int <- 0;
  get(): Int { x };
  bump(): Int { x <- x + 1 };
};
class B inherits A {
  get(): Int { let y : Int <- x * 2 in y };
};
class Main inherits IO {
  main(): Int {
    let b : B <- new B in {
      b.bump();
      b.get();
    }
  };
};`)
	snaps.MatchSnapshot(t, out)
}

func TestGenerate_CaseAndSelfType(t *testing.T) {
	out := mustGenerate(t, `
class Shape {
  area(): Int { 0 };
  describe(): SELF_TYPE { self };
};
class Circle inherits Shape {
  area(): Int { 1 };
};
class Main inherits IO {
  classify(s : Object): String {
    case s of
      c : Circle => "circle";
      sh : Shape => "shape";
      o : Object => "other";
    esac
  };
  main(): Object {
    out_string(classify(new Circle))
  };
};`)
	snaps.MatchSnapshot(t, out)
}

func TestGenerate_DumpTables(t *testing.T) {
	prog, err := parser.Parse("t.cl", `
class A { x : Int; f(): Int { 0 }; };
class B inherits A { g(): Int { 1 }; };
class Main inherits IO { main(): Int { 0 }; };`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	result, err := semantic.Analyze(prog)
	if err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	snaps.MatchSnapshot(t, codegen.DumpTables(result))
}
