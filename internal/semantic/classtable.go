// Package semantic builds the class, method, and object environments
// and type-decorates the AST against them.
package semantic

import (
	"fmt"

	"github.com/coolc/coolc/internal/ast"
)

// basicClassNames are the five classes every ClassTable carries even
// when the source defines none of them.
var basicClassNames = []string{"Object", "IO", "Int", "String", "Bool"}

const basicFilename = "<basic class>"

// ClassInfo is one node of the inheritance tree.
type ClassInfo struct {
	Name     string
	Parent   string
	Attrs    []*ast.Attr   // declared directly on this class
	Methods  []*ast.Method // declared directly on this class
	Children []string
	Filename string
	Tag      int // not set by this package; codegen numbers classes in its own layout table
}

// ClassTable is the global inheritance graph, including the five basic
// classes.
type ClassTable struct {
	classes map[string]*ClassInfo
	// insertOrder preserves declaration order for diagnostics that need
	// "first offender" semantics across files.
	insertOrder []string
}

// NewClassTable builds a ClassTable from a merged program's classes:
// registering every class, checking for redefinitions, resolving
// parents, and rejecting inheritance cycles, in that order. It returns
// the first violation it finds, already wrapped in the "<filename>,
// line N" wording semantic errors use.
func NewClassTable(classes []*ast.Class) (*ClassTable, error) {
	t := &ClassTable{classes: make(map[string]*ClassInfo)}
	for _, name := range basicClassNames {
		t.classes[name] = &ClassInfo{Name: name, Parent: parentOfBasic(name), Filename: basicFilename}
	}
	for _, name := range basicClassNames[1:] {
		t.classes["Object"].Children = append(t.classes["Object"].Children, name)
	}

	for _, c := range classes {
		if err := t.insertClass(c); err != nil {
			return nil, err
		}
	}
	for _, c := range classes {
		if err := t.linkParent(c); err != nil {
			return nil, err
		}
	}
	if err := t.checkCycles(); err != nil {
		return nil, err
	}
	return t, nil
}

func parentOfBasic(name string) string {
	if name == "Object" {
		return ""
	}
	return "Object"
}

func (t *ClassTable) insertClass(c *ast.Class) error {
	if isBasicName(c.TypeName) {
		return classErr(c, "Redefinition of basic class %s.", c.TypeName)
	}
	if c.TypeName == ast.SelfType {
		return classErr(c, "Redefinition of basic class SELF_TYPE.")
	}
	if _, exists := t.classes[c.TypeName]; exists {
		return classErr(c, "Class %s is already defined.", c.TypeName)
	}
	info := &ClassInfo{Name: c.TypeName, Parent: c.Parent, Filename: c.Filename}
	for _, f := range c.Features {
		switch ft := f.(type) {
		case *ast.Attr:
			info.Attrs = append(info.Attrs, ft)
		case *ast.Method:
			info.Methods = append(info.Methods, ft)
		}
	}
	t.classes[c.TypeName] = info
	t.insertOrder = append(t.insertOrder, c.TypeName)
	return nil
}

func (t *ClassTable) linkParent(c *ast.Class) error {
	switch c.Parent {
	case "Int", "String", "Bool":
		return classErr(c, "Class %s cannot inherit class %s.", c.TypeName, c.Parent)
	case ast.SelfType:
		return classErr(c, "Class %s cannot inherit class SELF_TYPE.", c.TypeName)
	}
	parent, ok := t.classes[c.Parent]
	if !ok {
		return classErr(c, "Class %s inherits from an undefined class %s.", c.TypeName, c.Parent)
	}
	parent.Children = append(parent.Children, c.TypeName)
	return nil
}

// checkCycles runs a DFS from Object; any class unreached is part of a
// cycle.
func (t *ClassTable) checkCycles() error {
	reached := map[string]bool{}
	var visit func(name string)
	visit = func(name string) {
		if reached[name] {
			return
		}
		reached[name] = true
		for _, child := range t.classes[name].Children {
			visit(child)
		}
	}
	visit("Object")

	for _, name := range t.insertOrder {
		if !reached[name] {
			return &Error{
				Filename: t.classes[name].Filename,
				Line:     0,
				Message:  "Class " + name + ", or an ancestor of " + name + ", is involved in an inheritance cycle.",
			}
		}
	}
	return nil
}

func classErr(c *ast.Class, format string, args ...any) error {
	return &Error{Filename: c.Filename, Line: c.Line(), Message: fmt.Sprintf(format, args...)}
}

func isBasicName(name string) bool {
	for _, b := range basicClassNames {
		if b == name {
			return true
		}
	}
	return false
}

// IsSubtype reports whether A is B or a (transitive) descendant of B.
// "Object" is a supertype of everything; NoType is a subtype of
// everything.
func (t *ClassTable) IsSubtype(a, b string) bool {
	if a == ast.NoType {
		return true
	}
	if b == "Object" {
		return true
	}
	for cur := a; cur != ""; cur = t.classes[cur].Parent {
		if cur == b {
			return true
		}
		if _, ok := t.classes[cur]; !ok {
			return false
		}
	}
	return false
}

// LUB returns the least common ancestor of A and B by walking both
// chains to Object and finding the deepest shared class.
func (t *ClassTable) LUB(a, b string) string {
	achain := t.chain(a)
	bset := map[string]bool{}
	for _, c := range t.chain(b) {
		bset[c] = true
	}
	for _, c := range achain {
		if bset[c] {
			return c
		}
	}
	return "Object"
}

func (t *ClassTable) chain(name string) []string {
	var out []string
	for cur := name; cur != ""; {
		out = append(out, cur)
		info, ok := t.classes[cur]
		if !ok || cur == "Object" {
			break
		}
		cur = info.Parent
	}
	return out
}

// AttributesOf returns the attributes declared directly on T.
func (t *ClassTable) AttributesOf(name string) []*ast.Attr {
	if info, ok := t.classes[name]; ok {
		return info.Attrs
	}
	return nil
}

// AllAttributesOf returns attributes inherited in definition order from
// Object down to T, used for object layout.
func (t *ClassTable) AllAttributesOf(name string) []*ast.Attr {
	chain := t.chain(name)
	var out []*ast.Attr
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, t.classes[chain[i]].Attrs...)
	}
	return out
}

// GetParent returns T's declared parent ("" for Object).
func (t *ClassTable) GetParent(name string) string {
	if info, ok := t.classes[name]; ok {
		return info.Parent
	}
	return ""
}

// GetClass returns T's ClassInfo.
func (t *ClassTable) GetClass(name string) (*ClassInfo, bool) {
	info, ok := t.classes[name]
	return info, ok
}

// IsBasic reports whether T is one of the five fixed basic classes.
func (t *ClassTable) IsBasic(name string) bool { return isBasicName(name) }

// IsPrimitive reports whether T is Int, String, or Bool.
func (t *ClassTable) IsPrimitive(name string) bool {
	return name == "Int" || name == "String" || name == "Bool"
}

// IsDefined reports whether T names a known class.
func (t *ClassTable) IsDefined(name string) bool {
	_, ok := t.classes[name]
	return ok
}

// DefinedClasses returns every class name in inheritance-DFS order from
// Object — a stable order used for tag assignment.
func (t *ClassTable) DefinedClasses() []string {
	var order []string
	var visit func(name string)
	visit = func(name string) {
		order = append(order, name)
		for _, child := range t.classes[name].Children {
			visit(child)
		}
	}
	visit("Object")
	return order
}
