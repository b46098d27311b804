package semantic

import (
	"github.com/coolc/coolc/internal/ast"
)

// visitClass enters class scope, populates inherited attribute
// bindings, rejects collisions, types every attribute, then every
// method.
func (a *Analyzer) visitClass(c *ast.Class) {
	if a.table.IsBasic(c.TypeName) {
		return
	}

	a.filename = c.Filename
	a.selfType = c.TypeName
	a.env.Push()
	defer a.env.Pop()

	if parent := a.table.GetParent(c.TypeName); parent != "" {
		for _, attr := range a.table.AllAttributesOf(parent) {
			a.env.Define(attr.ID, attr.Type)
		}
	}

	ownNames := map[string]bool{}
	for _, f := range c.Features {
		attr, ok := f.(*ast.Attr)
		if !ok {
			continue
		}
		if attr.ID == ast.Self {
			a.fail(a.filename, attr.Line(), "'self' cannot be the name of an attribute.")
		}
		if ownNames[attr.ID] {
			a.fail(a.filename, attr.Line(), "Attribute %s is multiply defined in class.", attr.ID)
		}
		ownNames[attr.ID] = true
		if a.env.DefinedInCurrentScope(attr.ID) {
			a.fail(a.filename, attr.Line(), "Attribute %s is an attribute of an inherited class.", attr.ID)
		}
		if attr.Type != ast.SelfType && !a.table.IsDefined(attr.Type) {
			a.fail(a.filename, attr.Line(), "Class %s of attribute %s is undefined.", attr.Type, attr.ID)
		}
		a.env.Define(attr.ID, attr.Type)
	}

	for _, f := range c.Features {
		if attr, ok := f.(*ast.Attr); ok {
			a.visitAttr(attr)
		}
	}
	for _, f := range c.Features {
		if method, ok := f.(*ast.Method); ok {
			a.visitMethod(method)
		}
	}
}

func (a *Analyzer) visitAttr(attr *ast.Attr) {
	if _, isNoExpr := attr.Init.(*ast.NoExpr); isNoExpr {
		a.typeExpr(attr.Init)
		return
	}
	initType := a.typeExpr(attr.Init)
	if !a.conforms(initType, attr.Type) {
		a.fail(a.filename, attr.Init.Line(),
			"Inferred type %s of initialization of attribute %s does not conform to declared type %s.",
			initType, attr.ID, attr.Type)
	}
}

func (a *Analyzer) visitMethod(m *ast.Method) {
	a.env.Push()
	defer a.env.Pop()

	for _, formal := range m.Formals {
		a.env.Define(formal.ID, formal.Type)
	}

	bodyType := a.typeExpr(m.Body)
	if !a.conforms(bodyType, m.ReturnType) {
		a.fail(a.filename, m.Body.Line(),
			"Inferred return type %s of method %s does not conform to declared return type %s.",
			bodyType, m.ID, m.ReturnType)
	}
}

// conforms implements "≤": SELF_TYPE on either side resolves to
// the current class except SELF_TYPE ≤ SELF_TYPE, which always holds.
func (a *Analyzer) conforms(sub, super string) bool {
	if sub == ast.SelfType && super == ast.SelfType {
		return true
	}
	if sub == ast.SelfType {
		sub = a.selfType
	}
	if super == ast.SelfType {
		super = a.selfType
	}
	return a.table.IsSubtype(sub, super)
}

// lub substitutes SELF_TYPE -> selfType in both inputs before taking
// the least upper bound; the result stays SELF_TYPE only when both
// inputs were SELF_TYPE.
func (a *Analyzer) lub(x, y string) string {
	if x == ast.SelfType && y == ast.SelfType {
		return ast.SelfType
	}
	rx, ry := x, y
	if rx == ast.SelfType {
		rx = a.selfType
	}
	if ry == ast.SelfType {
		ry = a.selfType
	}
	return a.table.LUB(rx, ry)
}
