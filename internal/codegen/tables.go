package codegen

// emitConstants lays out every pooled Int/String constant plus the two
// fixed Bool singletons, each as a full object-layout entry.
func (g *Generator) emitConstants() {
	intTag := g.layouts["Int"].tag
	strTag := g.layouts["String"].tag
	boolTag := g.layouts["Bool"].tag

	// Each string object points at an Int constant holding its length in
	// bytes with escape sequences resolved (each backslash pair is one byte).
	strLens := make([]int32, len(g.pool.strs))
	for i, s := range g.pool.strs {
		for j := 0; j < len(s); j++ {
			if s[j] == '\\' {
				j++
			}
			strLens[i]++
		}
		g.pool.addInt(strLens[i])
	}

	for i, v := range g.pool.ints {
		g.dataLn("%s:", intLabel(i))
		g.dataLn("\t.word %d", intTag)
		g.dataLn("\t.word %d", headerWords+1)
		g.dataLn("\t.word %s", dispTabLabel("Int"))
		g.dataLn("\t.word %d", v)
	}

	for i, s := range g.pool.strs {
		words := (len(s) + 4) / 4 // +1 for the NUL terminator, rounded up to whole words
		if words == 0 {
			words = 1
		}
		g.dataLn("%s:", strLabel(i))
		g.dataLn("\t.word %d", strTag)
		g.dataLn("\t.word %d", headerWords+1+words)
		g.dataLn("\t.word %s", dispTabLabel("String"))
		g.dataLn("\t.word %s", intLabel(g.pool.intIdx[strLens[i]]))
		g.dataLn("\t.ascii \"%s\"", s)
		g.dataLn("\t.byte 0")
		g.dataLn("\t.align 2")
	}

	g.dataLn("bool_const0:")
	g.dataLn("\t.word %d", boolTag)
	g.dataLn("\t.word %d", headerWords+1)
	g.dataLn("\t.word %s", dispTabLabel("Bool"))
	g.dataLn("\t.word 0")

	g.dataLn("bool_const1:")
	g.dataLn("\t.word %d", boolTag)
	g.dataLn("\t.word %d", headerWords+1)
	g.dataLn("\t.word %s", dispTabLabel("Bool"))
	g.dataLn("\t.word 1")
}

// emitNameAndObjTables emits class_nameTab and class_objTab, both
// ordered by tag.
func (g *Generator) emitNameAndObjTables() {
	g.dataLn("class_nameTab:")
	for _, name := range g.order {
		g.dataLn("\t.word %s", strLabel(g.pool.strIdx[name]))
	}

	g.dataLn("class_objTab:")
	for _, name := range g.order {
		g.dataLn("\t.word %s", protObjLabel(name))
		g.dataLn("\t.word %s", initLabel(name))
	}
}

// emitPrototypeObjects emits Class_protObj for every class: primitive-
// typed user attributes default to the shared zero constant of their
// type, everything else defaults to 0. The basic classes' own payload
// is 0 for Int and Bool; String's length slot points at the Int 0
// constant, followed by an empty text blob.
func (g *Generator) emitPrototypeObjects() {
	for _, name := range g.order {
		l := g.layouts[name]
		g.dataLn("%s:", protObjLabel(name))
		g.dataLn("\t.word %d", l.tag)
		g.dataLn("\t.word %d", g.protoSize(name, l))
		g.dataLn("\t.word %s", dispTabLabel(name))

		// Int/String/Bool carry a built-in payload slot that never shows
		// up as an ast.Attr (it's synthesized by the runtime, not
		// declared in source), so their prototypes need one explicit
		// default word beyond the plain header+attrs shape every other
		// class follows.
		switch name {
		case "Int", "Bool":
			g.dataLn("\t.word 0")
		case "String":
			g.dataLn("\t.word %s", intLabel(g.pool.intIdx[0]))
			g.dataLn("\t.ascii \"\"")
			g.dataLn("\t.byte 0")
			g.dataLn("\t.align 2")
		}
		for _, attr := range l.attrs {
			g.dataLn("\t.word %s", g.attrDefault(attr.Type))
		}
	}
}

// protoSize returns C_protObj's total word count: Int/Bool add their
// one built-in payload word on top of the plain headerWords+len(attrs)
// shape; String adds two (the length-constant pointer plus its
// aligned, NUL-terminated empty-string blob), matching the two extra
// words emitPrototypeObjects actually writes for it.
func (g *Generator) protoSize(name string, l *classLayout) int {
	switch name {
	case "Int", "Bool":
		return l.size() + 1
	case "String":
		return l.size() + 2
	default:
		return l.size()
	}
}

func (g *Generator) attrDefault(typ string) string {
	switch typ {
	case "Int":
		return intLabel(g.pool.intIdx[0])
	case "String":
		return strLabel(g.pool.strIdx[""])
	case "Bool":
		return "bool_const0"
	default:
		return "0"
	}
}

// emitDispatchTables emits Class_dispTab for every class, in the slot
// order buildLayouts computed.
func (g *Generator) emitDispatchTables() {
	for _, name := range g.order {
		l := g.layouts[name]
		g.dataLn("%s:", dispTabLabel(name))
		for _, slot := range l.methods {
			g.dataLn("\t.word %s", methodLabel(slot.owner, slot.name))
		}
	}
}

func (g *Generator) emitHeapStart() {
	g.dataLn("heap_start:")
	g.dataLn("\t.word 0")
}
