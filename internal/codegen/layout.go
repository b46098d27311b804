// Package codegen lowers a type-decorated AST into SPIM-compatible MIPS
// assembly text: a .data section (constants, tables, prototype objects)
// followed by a .text section (class init routines and method bodies).
package codegen

import (
	"github.com/coolc/coolc/internal/ast"
	"github.com/coolc/coolc/internal/semantic"
)

// wordSize is the MIPS word size in bytes; every object field and stack
// slot is one word.
const wordSize = 4

// headerWords is the fixed [class_tag, size, dispTab] prefix every heap
// object carries before its own attribute slots begin; attributes start
// at byte offset 12.
const headerWords = 3

// classLayout captures everything the backend needs to lay out one
// class's objects and dispatch table.
type classLayout struct {
	name       string
	tag        int
	lastTag    int // last tag among name's descendants, inclusive; closes the typecase range
	attrs      []*ast.Attr
	attrOffset map[string]int // byte offset from $s0, keyed by attribute name
	methods    []methodSlot   // dispatch table order
	methodIdx  map[string]int
}

type methodSlot struct {
	name  string
	owner string
}

// size returns the object's total word count: header + one word per
// attribute.
func (l *classLayout) size() int {
	return headerWords + len(l.attrs)
}

// buildLayouts assigns tags by inheritance-DFS order and computes each
// class's attribute offsets and dispatch table slots.
func buildLayouts(table *semantic.ClassTable, methods *semantic.MethodEnv) map[string]*classLayout {
	order := table.DefinedClasses()
	layouts := make(map[string]*classLayout, len(order))

	for i, name := range order {
		layouts[name] = &classLayout{
			name:       name,
			tag:        i,
			attrs:      table.AllAttributesOf(name),
			attrOffset: map[string]int{},
		}
	}
	for _, l := range layouts {
		for i, attr := range l.attrs {
			l.attrOffset[attr.ID] = headerWords*wordSize + i*wordSize
		}
	}

	// lastTag: the deepest tag reached among a class's descendants;
	// DefinedClasses is DFS-preorder so a class's descendants occupy a
	// contiguous tag range immediately following its own tag.
	for i, name := range order {
		last := i
		for j := i + 1; j < len(order); j++ {
			if isDescendant(table, order[j], name) {
				last = j
			}
		}
		layouts[name].lastTag = last
	}

	for _, name := range order {
		layouts[name].methods, layouts[name].methodIdx = dispatchOrder(table, methods, name)
	}

	return layouts
}

func isDescendant(table *semantic.ClassTable, name, ancestor string) bool {
	for cur := name; cur != ""; cur = table.GetParent(cur) {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// basicMethodOrder fixes a deterministic dispatch-table order for each
// basic class's builtin methods (semantic.builtinMethods is a map and
// therefore unordered).
var basicMethodOrder = map[string][]string{
	"Object": {"abort", "type_name", "copy"},
	"IO":     {"out_string", "out_int", "in_string", "in_int"},
	"String": {"length", "concat", "substr"},
	"Int":    {"val"},
	"Bool":   {"val"},
}

// dispatchOrder walks name's ancestor chain from Object down to name,
// assigning each method its first-declared slot and letting later
// (more derived) declarations of the same name overwrite the slot's
// owner in place — so overriding never changes a method's offset.
func dispatchOrder(table *semantic.ClassTable, methods *semantic.MethodEnv, name string) ([]methodSlot, map[string]int) {
	var chain []string
	for cur := name; cur != ""; cur = table.GetParent(cur) {
		chain = append(chain, cur)
	}
	// reverse chain to root-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var slots []methodSlot
	idx := map[string]int{}
	addSlot := func(methodName string) {
		sig, ok := methods.Get(name, methodName)
		if !ok {
			return
		}
		if i, seen := idx[methodName]; seen {
			slots[i].owner = sig.Owner
			return
		}
		idx[methodName] = len(slots)
		slots = append(slots, methodSlot{name: methodName, owner: sig.Owner})
	}

	for _, cls := range chain {
		if table.IsBasic(cls) {
			for _, methodName := range basicMethodOrder[cls] {
				addSlot(methodName)
			}
			continue
		}
		info, ok := table.GetClass(cls)
		if !ok {
			continue
		}
		for _, m := range info.Methods {
			addSlot(m.ID)
		}
	}
	return slots, idx
}

// methodOffset returns the dispatch table slot index * wordSize, i.e.
// the method's byte offset into any class's dispatch table.
func (l *classLayout) methodOffset(name string) (int, bool) {
	i, ok := l.methodIdx[name]
	if !ok {
		return 0, false
	}
	return i * wordSize, true
}
