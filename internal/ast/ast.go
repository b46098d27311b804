// Package ast defines the abstract syntax tree produced by the parser
// and decorated in place by the semantic analyzer.
//
// Every node carries its source line and a result type that starts at
// the sentinel NoType and is written exactly once, by the semantic
// analyzer. The backend only reads result types; it never
// assigns one.
package ast

// NoType is the sentinel result_type every expression node starts
// life with, matching the "_no_type" convention of the reference
// compiler.
const NoType = "_no_type"

// SelfType is the pseudo-type that resolves to "the enclosing class" in
// formal position and "the runtime class of self" at call sites.
const SelfType = "SELF_TYPE"

// Self is the reserved identifier bound to the receiver inside a method
// or attribute initializer body.
const Self = "self"

// Node is implemented by every AST node.
type Node interface {
	Line() int
}

// Expression is any node that the semantic analyzer assigns a result
// type to.
type Expression interface {
	Node
	ResultType() string
	SetResultType(string)
	exprNode()
}

// baseExpr factors the line/result_type pair shared by every expression
// variant; it is embedded, never used as a standalone node.
type baseExpr struct {
	line   int
	result string
}

func newBaseExpr(line int) baseExpr {
	return baseExpr{line: line, result: NoType}
}

func (b *baseExpr) Line() int            { return b.line }
func (b *baseExpr) ResultType() string   { return b.result }
func (b *baseExpr) SetResultType(t string) { b.result = t }
func (b *baseExpr) exprNode()            {}

// Program is the root node: a nonempty set of classes, in the order
// they were parsed (possibly merged from multiple source files — see
// SPEC_FULL.md's multi-file compilation unit merging).
type Program struct {
	Classes []*Class
}

// Class declares a named type inheriting from Parent ("Object" if the
// source omitted "inherits").
type Class struct {
	TypeName string
	Parent   string
	Features []Feature
	Filename string
	line     int
}

func NewClass(line int, typeName, parent, filename string, features []Feature) *Class {
	return &Class{TypeName: typeName, Parent: parent, Features: features, Filename: filename, line: line}
}

func (c *Class) Line() int { return c.line }

// Feature is either an Attr or a Method declared directly on a class.
type Feature interface {
	Node
	featureNode()
}

// Attr is a class-level field declaration. Init is NoExpr when the
// source omitted an initializer.
type Attr struct {
	ID   string
	Type string
	Init Expression
	line int
}

func NewAttr(line int, id, typ string, init Expression) *Attr {
	return &Attr{ID: id, Type: typ, Init: init, line: line}
}

func (a *Attr) Line() int     { return a.line }
func (a *Attr) featureNode() {}

// Method is a class-level function declaration.
type Method struct {
	ID         string
	Formals    []*Formal
	ReturnType string
	Body       Expression
	line       int
}

func NewMethod(line int, id string, formals []*Formal, returnType string, body Expression) *Method {
	return &Method{ID: id, Formals: formals, ReturnType: returnType, Body: body, line: line}
}

func (m *Method) Line() int     { return m.line }
func (m *Method) featureNode() {}

// Formal is a single method parameter.
type Formal struct {
	ID   string
	Type string
	line int
}

func NewFormal(line int, id, typ string) *Formal {
	return &Formal{ID: id, Type: typ, line: line}
}

func (f *Formal) Line() int { return f.line }
