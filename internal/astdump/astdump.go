// Package astdump renders a parsed Program as JSON, the machine-readable
// counterpart to ast.Print's indented text tree. It follows the
// original C++ compiler's one-node-at-a-time PrintVisitor, substituting
// a JSON object per node (built with sjson) for indented text, then
// formatting the result with tidwall/pretty.
package astdump

import (
	"fmt"

	"github.com/coolc/coolc/internal/ast"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// field is one key/value pair of a node's own (non-child) attributes,
// kept as an ordered slice since sjson.Set would otherwise scatter a
// Go map's keys in random order across runs.
type field struct {
	key string
	val any
}

func node(tag string, line int, fields []field, children ...string) (string, error) {
	raw := "{}"
	var err error
	if raw, err = sjson.Set(raw, "tag", tag); err != nil {
		return "", err
	}
	if raw, err = sjson.Set(raw, "line", line); err != nil {
		return "", err
	}
	for _, f := range fields {
		if raw, err = sjson.Set(raw, f.key, f.val); err != nil {
			return "", err
		}
	}
	if len(children) > 0 {
		raw, err = sjson.SetRaw(raw, "children", "[]")
		if err != nil {
			return "", err
		}
		for i, c := range children {
			if raw, err = sjson.SetRaw(raw, fmt.Sprintf("children.%d", i), c); err != nil {
				return "", err
			}
		}
	}
	return raw, nil
}

// Dump renders prog as a pretty-printed JSON document.
func Dump(prog *ast.Program) (string, error) {
	raw, err := dumpProgram(prog)
	if err != nil {
		return "", fmt.Errorf("astdump: %w", err)
	}
	return string(pretty.Pretty([]byte(raw))), nil
}

func dumpProgram(prog *ast.Program) (string, error) {
	classes := make([]string, len(prog.Classes))
	for i, c := range prog.Classes {
		rendered, err := dumpClass(c)
		if err != nil {
			return "", err
		}
		classes[i] = rendered
	}
	return node("program", 0, nil, classes...)
}

func dumpClass(c *ast.Class) (string, error) {
	var children []string
	for _, f := range c.Features {
		var (
			rendered string
			err      error
		)
		switch ft := f.(type) {
		case *ast.Attr:
			rendered, err = dumpAttr(ft)
		case *ast.Method:
			rendered, err = dumpMethod(ft)
		default:
			err = fmt.Errorf("unhandled feature %T", f)
		}
		if err != nil {
			return "", err
		}
		children = append(children, rendered)
	}
	fields := []field{
		{"typeName", c.TypeName},
		{"parent", c.Parent},
		{"filename", c.Filename},
	}
	return node("class", c.Line(), fields, children...)
}

func dumpAttr(a *ast.Attr) (string, error) {
	init, err := dumpExpr(a.Init)
	if err != nil {
		return "", err
	}
	fields := []field{{"id", a.ID}, {"type", a.Type}}
	return node("attr", a.Line(), fields, init)
}

func dumpMethod(m *ast.Method) (string, error) {
	var children []string
	for _, f := range m.Formals {
		rendered, err := node("formal", f.Line(), []field{{"id", f.ID}, {"type", f.Type}})
		if err != nil {
			return "", err
		}
		children = append(children, rendered)
	}
	body, err := dumpExpr(m.Body)
	if err != nil {
		return "", err
	}
	children = append(children, body)
	fields := []field{{"id", m.ID}, {"returnType", m.ReturnType}}
	return node("method", m.Line(), fields, children...)
}

// dumpExpr renders any expression node, annotating it with its decorated
// resultType the way ast.Print annotates every expression line.
func dumpExpr(e ast.Expression) (string, error) {
	raw, err := dumpExprInner(e)
	if err != nil {
		return "", err
	}
	return sjson.Set(raw, "resultType", e.ResultType())
}

func dumpExprInner(e ast.Expression) (string, error) {
	switch n := e.(type) {
	case *ast.Assign:
		rhs, err := dumpExpr(n.RHS)
		if err != nil {
			return "", err
		}
		return node("assign", n.Line(), []field{{"id", n.ID}}, rhs)
	case *ast.Dispatch:
		recv, err := dumpExpr(n.Recv)
		if err != nil {
			return "", err
		}
		children := []string{recv}
		for _, a := range n.Args {
			rendered, err := dumpExpr(a)
			if err != nil {
				return "", err
			}
			children = append(children, rendered)
		}
		return node("dispatch", n.Line(), []field{{"method", n.Method}}, children...)
	case *ast.StaticDispatch:
		recv, err := dumpExpr(n.Recv)
		if err != nil {
			return "", err
		}
		children := []string{recv}
		for _, a := range n.Args {
			rendered, err := dumpExpr(a)
			if err != nil {
				return "", err
			}
			children = append(children, rendered)
		}
		return node("static_dispatch", n.Line(), []field{{"type", n.Type}, {"method", n.Method}}, children...)
	case *ast.If:
		cond, err := dumpExpr(n.Cond)
		if err != nil {
			return "", err
		}
		then, err := dumpExpr(n.Then)
		if err != nil {
			return "", err
		}
		els, err := dumpExpr(n.Else)
		if err != nil {
			return "", err
		}
		return node("cond", n.Line(), nil, cond, then, els)
	case *ast.While:
		cond, err := dumpExpr(n.Cond)
		if err != nil {
			return "", err
		}
		body, err := dumpExpr(n.Body)
		if err != nil {
			return "", err
		}
		return node("loop", n.Line(), nil, cond, body)
	case *ast.Block:
		var children []string
		for _, se := range n.Exprs {
			rendered, err := dumpExpr(se)
			if err != nil {
				return "", err
			}
			children = append(children, rendered)
		}
		return node("block", n.Line(), nil, children...)
	case *ast.Let:
		init, err := dumpExpr(n.Init)
		if err != nil {
			return "", err
		}
		body, err := dumpExpr(n.Body)
		if err != nil {
			return "", err
		}
		return node("let", n.Line(), []field{{"id", n.ID}, {"type", n.Type}}, init, body)
	case *ast.Case:
		scrutinee, err := dumpExpr(n.Scrutinee)
		if err != nil {
			return "", err
		}
		children := []string{scrutinee}
		for _, br := range n.Branches {
			body, err := dumpExpr(br.Body)
			if err != nil {
				return "", err
			}
			rendered, err := node("branch", br.Line(), []field{{"id", br.ID}, {"type", br.Type}}, body)
			if err != nil {
				return "", err
			}
			children = append(children, rendered)
		}
		return node("typcase", n.Line(), nil, children...)
	case *ast.New:
		return node("new", n.Line(), []field{{"type", n.Type}})
	case *ast.IsVoid:
		return dumpUnary("isvoid", n.Line(), n.E)
	case *ast.Not:
		return dumpUnary("comp", n.Line(), n.E)
	case *ast.Neg:
		return dumpUnary("neg", n.Line(), n.E)
	case *ast.Plus:
		return dumpBinop("plus", n.Line(), n.Lhs, n.Rhs)
	case *ast.Minus:
		return dumpBinop("sub", n.Line(), n.Lhs, n.Rhs)
	case *ast.Mul:
		return dumpBinop("mul", n.Line(), n.Lhs, n.Rhs)
	case *ast.Div:
		return dumpBinop("divide", n.Line(), n.Lhs, n.Rhs)
	case *ast.Lt:
		return dumpBinop("lt", n.Line(), n.Lhs, n.Rhs)
	case *ast.Le:
		return dumpBinop("leq", n.Line(), n.Lhs, n.Rhs)
	case *ast.Eq:
		return dumpBinop("eq", n.Line(), n.Lhs, n.Rhs)
	case *ast.Paren:
		return dumpExprInner(n.E)
	case *ast.Int:
		return node("int", n.Line(), []field{{"value", n.Value}})
	case *ast.Str:
		return node("string", n.Line(), []field{{"value", n.Value}})
	case *ast.Bool:
		return node("bool", n.Line(), []field{{"value", n.Value}})
	case *ast.Id:
		return node("object", n.Line(), []field{{"name", n.Name}})
	case *ast.NoExpr:
		return node("no_expr", n.Line(), nil)
	default:
		return "", fmt.Errorf("unhandled expression %T", e)
	}
}

func dumpUnary(tag string, line int, e ast.Expression) (string, error) {
	child, err := dumpExpr(e)
	if err != nil {
		return "", err
	}
	return node(tag, line, nil, child)
}

func dumpBinop(tag string, line int, lhs, rhs ast.Expression) (string, error) {
	l, err := dumpExpr(lhs)
	if err != nil {
		return "", err
	}
	r, err := dumpExpr(rhs)
	if err != nil {
		return "", err
	}
	return node(tag, line, nil, l, r)
}
