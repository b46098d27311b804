package ast

import (
	"fmt"
	"strings"
)

// Printer renders a Program in a differential-testing tree format:
// each node is a "#<line>" marker line, a node tag line, its children
// indented two spaces deeper than their parent, and (for every
// expression) a trailing ": <result_type>" annotation line. The
// reference printer spells the typecase tag "_typcase", not "_typecase".
type Printer struct {
	sb     strings.Builder
	indent int
}

// Print renders prog and returns the full dump.
func Print(prog *Program) string {
	p := &Printer{}
	p.program(prog)
	return p.sb.String()
}

func (p *Printer) line(line int, format string, args ...any) {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.sb, "#%d\n", line)
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.sb, format+"\n", args...)
}

func (p *Printer) nest(f func()) {
	p.indent++
	f()
	p.indent--
}

func (p *Printer) program(prog *Program) {
	p.line(0, "_program")
	p.nest(func() {
		for _, c := range prog.Classes {
			p.class(c)
		}
	})
}

func (p *Printer) class(c *Class) {
	p.line(c.Line(), "_class %s %s \"%s\"", c.TypeName, c.Parent, c.Filename)
	p.nest(func() {
		for _, f := range c.Features {
			switch ft := f.(type) {
			case *Attr:
				p.attr(ft)
			case *Method:
				p.method(ft)
			}
		}
	})
}

func (p *Printer) attr(a *Attr) {
	p.line(a.Line(), "_attr %s %s", a.ID, a.Type)
	p.nest(func() { p.expr(a.Init) })
}

func (p *Printer) method(m *Method) {
	p.line(m.Line(), "_method %s", m.ID)
	p.nest(func() {
		for _, f := range m.Formals {
			p.formal(f)
		}
		p.sb.WriteString(strings.Repeat("  ", p.indent))
		p.sb.WriteString(m.ReturnType + "\n")
		p.expr(m.Body)
	})
}

func (p *Printer) formal(f *Formal) {
	p.line(f.Line(), "_formal %s %s", f.ID, f.Type)
}

// expr renders any expression node followed by its ": <result_type>"
// annotation, matching every expression in the AST regardless of
// variant.
func (p *Printer) expr(e Expression) {
	switch n := e.(type) {
	case *Assign:
		p.line(n.Line(), "_assign %s", n.ID)
		p.nest(func() { p.expr(n.RHS) })
	case *Dispatch:
		p.line(n.Line(), "_dispatch")
		p.nest(func() {
			p.expr(n.Recv)
			p.sb.WriteString(strings.Repeat("  ", p.indent) + n.Method + "\n")
			for _, a := range n.Args {
				p.expr(a)
			}
		})
	case *StaticDispatch:
		p.line(n.Line(), "_static_dispatch")
		p.nest(func() {
			p.expr(n.Recv)
			p.sb.WriteString(strings.Repeat("  ", p.indent) + n.Type + "\n")
			p.sb.WriteString(strings.Repeat("  ", p.indent) + n.Method + "\n")
			for _, a := range n.Args {
				p.expr(a)
			}
		})
	case *If:
		p.line(n.Line(), "_cond")
		p.nest(func() { p.expr(n.Cond); p.expr(n.Then); p.expr(n.Else) })
	case *While:
		p.line(n.Line(), "_loop")
		p.nest(func() { p.expr(n.Cond); p.expr(n.Body) })
	case *Block:
		p.line(n.Line(), "_block")
		p.nest(func() {
			for _, se := range n.Exprs {
				p.expr(se)
			}
		})
	case *Let:
		p.line(n.Line(), "_let %s %s", n.ID, n.Type)
		p.nest(func() { p.expr(n.Init); p.expr(n.Body) })
	case *Case:
		p.line(n.Line(), "_typcase")
		p.nest(func() {
			p.expr(n.Scrutinee)
			for _, b := range n.Branches {
				p.branch(b)
			}
		})
	case *New:
		p.line(n.Line(), "_new %s", n.Type)
	case *IsVoid:
		p.line(n.Line(), "_isvoid")
		p.nest(func() { p.expr(n.E) })
	case *Not:
		p.line(n.Line(), "_comp")
		p.nest(func() { p.expr(n.E) })
	case *Neg:
		p.line(n.Line(), "_neg")
		p.nest(func() { p.expr(n.E) })
	case *Plus:
		p.binop(n.Line(), "_plus", n.Lhs, n.Rhs)
	case *Minus:
		p.binop(n.Line(), "_sub", n.Lhs, n.Rhs)
	case *Mul:
		p.binop(n.Line(), "_mul", n.Lhs, n.Rhs)
	case *Div:
		p.binop(n.Line(), "_divide", n.Lhs, n.Rhs)
	case *Lt:
		p.binop(n.Line(), "_lt", n.Lhs, n.Rhs)
	case *Le:
		p.binop(n.Line(), "_leq", n.Lhs, n.Rhs)
	case *Eq:
		p.binop(n.Line(), "_eq", n.Lhs, n.Rhs)
	case *Paren:
		p.expr(n.E)
		return
	case *Int:
		p.line(n.Line(), "_int %d", n.Value)
	case *Str:
		p.line(n.Line(), "_string \"%s\"", n.Value)
	case *Bool:
		p.line(n.Line(), "_bool %t", n.Value)
	case *Id:
		p.line(n.Line(), "_object %s", n.Name)
	case *NoExpr:
		p.line(n.Line(), "_no_expr")
	default:
		panic(fmt.Sprintf("ast.Print: unhandled expression %T", e))
	}
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	p.sb.WriteString(": " + e.ResultType() + "\n")
}

func (p *Printer) binop(line int, tag string, lhs, rhs Expression) {
	p.line(line, "%s", tag)
	p.nest(func() { p.expr(lhs); p.expr(rhs) })
}

func (p *Printer) branch(b *CaseBranch) {
	p.line(b.Line(), "_branch %s %s", b.ID, b.Type)
	p.nest(func() { p.expr(b.Body) })
}
