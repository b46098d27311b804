package codegen

import (
	"strconv"

	"github.com/coolc/coolc/internal/ast"
)

// constantPool deduplicates the literal integers and strings a program
// references, plus every class-name and filename string the tables and
// runtime dispatch checks need.
type constantPool struct {
	ints   []int32
	intIdx map[int32]int
	strs   []string
	strIdx map[string]int
}

func newConstantPool() *constantPool {
	return &constantPool{
		intIdx: map[int32]int{},
		strIdx: map[string]int{},
	}
}

// addInt returns v's index in the pool, inserting it if new.
func (p *constantPool) addInt(v int32) int {
	if i, ok := p.intIdx[v]; ok {
		return i
	}
	i := len(p.ints)
	p.ints = append(p.ints, v)
	p.intIdx[v] = i
	return i
}

// addStr returns v's index in the pool, inserting it if new.
func (p *constantPool) addStr(v string) int {
	if i, ok := p.strIdx[v]; ok {
		return i
	}
	i := len(p.strs)
	p.strs = append(p.strs, v)
	p.strIdx[v] = i
	return i
}

func (p *constantPool) intLabel(v int32) string {
	return intLabel(p.addInt(v))
}

func (p *constantPool) strLabel(v string) string {
	return strLabel(p.addStr(v))
}

func intLabel(idx int) string { return "int_const" + strconv.Itoa(idx) }
func strLabel(idx int) string { return "str_const" + strconv.Itoa(idx) }
func boolLabel(v bool) string {
	if v {
		return "bool_const1"
	}
	return "bool_const0"
}

// collectConstants walks every expression in prog, seeding the pool
// with every Int/Str literal it finds plus the fixed 0, 1 and ""
// constants every program gets regardless of its own literals. The two
// Bool constants are not pooled; emitConstants writes them separately.
func collectConstants(prog *ast.Program) *constantPool {
	p := newConstantPool()
	p.addInt(0)
	p.addStr("")
	p.addInt(1) // pooled unconditionally; bool_const1's payload is a literal word, not this constant

	for _, c := range prog.Classes {
		p.addStr(c.TypeName)
		p.addStr(c.Filename)
		for _, f := range c.Features {
			switch ft := f.(type) {
			case *ast.Attr:
				collectExprConstants(ft.Init, p)
			case *ast.Method:
				collectExprConstants(ft.Body, p)
			}
		}
	}
	return p
}

func collectExprConstants(e ast.Expression, p *constantPool) {
	switch n := e.(type) {
	case *ast.Int:
		p.addInt(n.Value)
	case *ast.Str:
		p.addStr(n.Value)
	case *ast.Bool:
		// bool_const0/1 are fixed singletons, not pooled by value.
	case *ast.NoExpr, *ast.New, *ast.Id:
		// no literal sub-expressions.
	case *ast.Assign:
		collectExprConstants(n.RHS, p)
	case *ast.IsVoid:
		collectExprConstants(n.E, p)
	case *ast.Not:
		collectExprConstants(n.E, p)
	case *ast.Neg:
		collectExprConstants(n.E, p)
	case *ast.Plus:
		collectExprConstants(n.Lhs, p)
		collectExprConstants(n.Rhs, p)
	case *ast.Minus:
		collectExprConstants(n.Lhs, p)
		collectExprConstants(n.Rhs, p)
	case *ast.Mul:
		collectExprConstants(n.Lhs, p)
		collectExprConstants(n.Rhs, p)
	case *ast.Div:
		collectExprConstants(n.Lhs, p)
		collectExprConstants(n.Rhs, p)
	case *ast.Lt:
		collectExprConstants(n.Lhs, p)
		collectExprConstants(n.Rhs, p)
	case *ast.Le:
		collectExprConstants(n.Lhs, p)
		collectExprConstants(n.Rhs, p)
	case *ast.Eq:
		collectExprConstants(n.Lhs, p)
		collectExprConstants(n.Rhs, p)
	case *ast.Paren:
		collectExprConstants(n.E, p)
	case *ast.If:
		collectExprConstants(n.Cond, p)
		collectExprConstants(n.Then, p)
		collectExprConstants(n.Else, p)
	case *ast.While:
		collectExprConstants(n.Cond, p)
		collectExprConstants(n.Body, p)
	case *ast.Block:
		for _, se := range n.Exprs {
			collectExprConstants(se, p)
		}
	case *ast.Let:
		collectExprConstants(n.Init, p)
		collectExprConstants(n.Body, p)
	case *ast.Case:
		collectExprConstants(n.Scrutinee, p)
		for _, br := range n.Branches {
			collectExprConstants(br.Body, p)
		}
	case *ast.Dispatch:
		collectExprConstants(n.Recv, p)
		for _, a := range n.Args {
			collectExprConstants(a, p)
		}
	case *ast.StaticDispatch:
		collectExprConstants(n.Recv, p)
		for _, a := range n.Args {
			collectExprConstants(a, p)
		}
	}
}
