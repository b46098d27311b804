package semantic_test

import (
	"strings"
	"testing"

	"github.com/coolc/coolc/internal/parser"
	"github.com/coolc/coolc/internal/semantic"
)

func mustTable(t *testing.T, src string) *semantic.ClassTable {
	t.Helper()
	prog, err := parser.Parse("t.cl", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	table, err := semantic.NewClassTable(prog.Classes)
	if err != nil {
		t.Fatalf("unexpected class table error: %v", err)
	}
	return table
}

func TestClassTable_BasicClassesAlwaysPresent(t *testing.T) {
	table := mustTable(t, `class Main { main(): Int { 0 }; };`)
	for _, name := range []string{"Object", "IO", "Int", "String", "Bool"} {
		if !table.IsDefined(name) {
			t.Fatalf("expected basic class %s to be defined", name)
		}
	}
}

func TestClassTable_InheritanceCycleIsRejected(t *testing.T) {
	prog, err := parser.Parse("cyc.cl", `
class A inherits B { };
class B inherits A { };
class Main { main(): Int { 0 }; };`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, err = semantic.NewClassTable(prog.Classes)
	if err == nil {
		t.Fatalf("expected an inheritance cycle error")
	}
	if !strings.Contains(err.Error(), "inheritance cycle") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestClassTable_RedefinitionOfBasicClassRejected(t *testing.T) {
	prog, err := parser.Parse("t.cl", `class Int { };`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, err = semantic.NewClassTable(prog.Classes)
	if err == nil || !strings.Contains(err.Error(), "Redefinition of basic class Int") {
		t.Fatalf("expected basic class redefinition error, got %v", err)
	}
}

func TestClassTable_InheritingFromUndefinedClassRejected(t *testing.T) {
	prog, err := parser.Parse("t.cl", `class A inherits Ghost { };`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, err = semantic.NewClassTable(prog.Classes)
	if err == nil || !strings.Contains(err.Error(), "undefined class Ghost") {
		t.Fatalf("expected undefined parent error, got %v", err)
	}
}

func TestClassTable_InheritingFromIntRejected(t *testing.T) {
	prog, err := parser.Parse("t.cl", `class A inherits Int { };`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, err = semantic.NewClassTable(prog.Classes)
	if err == nil || !strings.Contains(err.Error(), "cannot inherit class Int") {
		t.Fatalf("expected cannot-inherit-Int error, got %v", err)
	}
}

func TestClassTable_IsSubtypeAndLUB(t *testing.T) {
	table := mustTable(t, `
class A { };
class B inherits A { };
class C inherits A { };
class Main { main(): Int { 0 }; };`)

	if !table.IsSubtype("B", "A") {
		t.Fatalf("expected B <= A")
	}
	if table.IsSubtype("A", "B") {
		t.Fatalf("did not expect A <= B")
	}
	if !table.IsSubtype("B", "Object") {
		t.Fatalf("expected everything <= Object")
	}
	if got := table.LUB("B", "C"); got != "A" {
		t.Fatalf("expected LUB(B, C) == A, got %s", got)
	}
	if got := table.LUB("B", "B"); got != "B" {
		t.Fatalf("expected LUB(B, B) == B, got %s", got)
	}
}

func TestClassTable_AllAttributesOfIncludesInherited(t *testing.T) {
	table := mustTable(t, `
class A { x : Int <- 1; };
class B inherits A { y : Int <- 2; };
class Main { main(): Int { 0 }; };`)

	attrs := table.AllAttributesOf("B")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes (inherited + own), got %d", len(attrs))
	}
	if attrs[0].ID != "x" || attrs[1].ID != "y" {
		t.Fatalf("expected attributes in root-to-leaf order, got %s then %s", attrs[0].ID, attrs[1].ID)
	}
}

func TestClassTable_DefinedClassesIsDFSFromObject(t *testing.T) {
	table := mustTable(t, `
class A { };
class B inherits A { };
class Main { main(): Int { 0 }; };`)

	order := table.DefinedClasses()
	if order[0] != "Object" {
		t.Fatalf("expected Object first, got %s", order[0])
	}
	seen := map[string]int{}
	for i, name := range order {
		seen[name] = i
	}
	if seen["A"] >= seen["B"] {
		t.Fatalf("expected A before B in DFS order")
	}
}
