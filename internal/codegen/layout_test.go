package codegen

import (
	"testing"

	"github.com/coolc/coolc/internal/parser"
	"github.com/coolc/coolc/internal/semantic"
)

func mustAnalyze(t *testing.T, src string) *semantic.Result {
	t.Helper()
	prog, err := parser.Parse("t.cl", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	result, err := semantic.Analyze(prog)
	if err != nil {
		t.Fatalf("unexpected analysis error: %v", err)
	}
	return result
}

func TestBuildLayouts_TagsAreContiguousPerSubtree(t *testing.T) {
	result := mustAnalyze(t, `
class A { x : Int; };
class B inherits A { y : Int; };
class Main inherits IO { main(): Int { 0 }; };`)
	layouts := buildLayouts(result.Table, result.Methods)

	a := layouts["A"]
	b := layouts["B"]
	if b.tag < a.tag || b.tag > a.lastTag {
		t.Fatalf("expected B's tag %d within A's range [%d,%d]", b.tag, a.tag, a.lastTag)
	}
	if a.lastTag < b.tag {
		t.Fatalf("A's lastTag %d should cover descendant B's tag %d", a.lastTag, b.tag)
	}
}

func TestBuildLayouts_InheritedAttrsComeBeforeOwnAttrs(t *testing.T) {
	result := mustAnalyze(t, `
class A { x : Int; };
class B inherits A { y : Int; };
class Main inherits IO { main(): Int { 0 }; };`)
	layouts := buildLayouts(result.Table, result.Methods)

	b := layouts["B"]
	if b.attrOffset["x"] >= b.attrOffset["y"] {
		t.Fatalf("expected inherited attr x before own attr y, got offsets x=%d y=%d", b.attrOffset["x"], b.attrOffset["y"])
	}
	if b.size() != headerWords+2 {
		t.Fatalf("expected size %d, got %d", headerWords+2, b.size())
	}
}

func TestBuildLayouts_OverrideKeepsParentSlotIndex(t *testing.T) {
	result := mustAnalyze(t, `
class A { f(): Int { 0 }; g(): Int { 1 }; };
class B inherits A { g(): Int { 2 }; };
class Main inherits IO { main(): Int { 0 }; };`)
	layouts := buildLayouts(result.Table, result.Methods)

	a := layouts["A"]
	b := layouts["B"]
	fSlot, ok := a.methodIdx["f"]
	if !ok {
		t.Fatalf("expected A to have method f")
	}
	gSlotA, ok := a.methodIdx["g"]
	if !ok {
		t.Fatalf("expected A to have method g")
	}
	gSlotB, ok := b.methodIdx["g"]
	if !ok {
		t.Fatalf("expected B to inherit slot for g")
	}
	if gSlotA != gSlotB {
		t.Fatalf("expected override to preserve slot index, A.g=%d B.g=%d", gSlotA, gSlotB)
	}
	if b.methods[gSlotB].owner != "B" {
		t.Fatalf("expected B's override to claim ownership of slot %d, owner was %s", gSlotB, b.methods[gSlotB].owner)
	}
	if b.methods[fSlot].owner != "A" {
		t.Fatalf("expected inherited method f to stay owned by A")
	}
}

func TestBuildLayouts_BasicClassesHaveDeterministicDispatchOrder(t *testing.T) {
	result := mustAnalyze(t, `class Main inherits IO { main(): Int { 0 }; };`)
	layouts := buildLayouts(result.Table, result.Methods)

	obj := layouts["Object"]
	names := make([]string, len(obj.methods))
	for i, slot := range obj.methods {
		names[i] = slot.name
	}
	want := []string{"abort", "type_name", "copy"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
