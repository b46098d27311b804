package codegen

import "github.com/coolc/coolc/internal/ast"

// emitClassInit emits C_init: parent init first (Object has none), then
// each of C's own attribute initializers in declaration order, each
// followed by the GC write-barrier call.
func (g *Generator) emitClassInit(name string) error {
	info, ok := g.table.GetClass(name)
	if !ok {
		return nil
	}
	g.currentClass = name
	g.currentFilename = info.Filename
	g.env = newCodegenEnv()
	g.env.push()
	g.localDepth = 0

	g.label(&g.text, initLabel(name))
	g.prolog()
	if parent := g.table.GetParent(name); parent != "" {
		g.ins("jal %s", initLabel(parent))
	}

	for _, attr := range info.Attrs {
		if _, isNoExpr := attr.Init.(*ast.NoExpr); isNoExpr {
			g.emitTypedDefault(attr.Type)
		} else if err := g.emitExpr(attr.Init); err != nil {
			return err
		}
		off := g.layouts[name].attrOffset[attr.ID]
		g.ins("sw $a0, %d($s0)", off)
		g.ins("addiu $a1, $s0, %d", off)
		g.ins("jal _GenGC_Assign")
	}

	g.ins("move $a0, $s0")
	g.epilog(0)
	g.env.pop()
	return nil
}

// emitMethod emits OwningClass.method: prolog, formal bindings, the body, epilog.
func (g *Generator) emitMethod(owner string, m *ast.Method) error {
	info, ok := g.table.GetClass(owner)
	if !ok {
		return nil
	}
	g.currentClass = owner
	g.currentFilename = info.Filename
	g.env = newCodegenEnv()
	g.localDepth = 0

	g.label(&g.text, methodLabel(owner, m.ID))
	g.prolog()

	g.env.push()
	n := len(m.Formals)
	for i, f := range m.Formals {
		offset := (n-1-i)*wordSize + 12
		g.env.define(f.ID, varLoc{kind: varFormal, offset: offset})
	}

	if err := g.emitExpr(m.Body); err != nil {
		return err
	}

	g.env.pop()
	g.epilog(n)
	return nil
}

// emitTypedDefault loads the typed zero value for an uninitialized
// attribute/let-binding: the shared Int/String/Bool zero constant for
// those three types, otherwise void ($zero).
func (g *Generator) emitTypedDefault(typ string) {
	switch typ {
	case "Int":
		g.ins("la $a0, %s", intLabel(g.pool.intIdx[0]))
	case "String":
		g.ins("la $a0, %s", strLabel(g.pool.strIdx[""]))
	case "Bool":
		g.ins("la $a0, bool_const0")
	default:
		g.ins("move $a0, $zero")
	}
}
