package codegen

import (
	"fmt"
	"strings"

	"github.com/coolc/coolc/internal/ast"
	"github.com/coolc/coolc/internal/semantic"
)

// Generator lowers one type-decorated Program into MIPS assembly text,
// consuming the class table and method environment the semantic
// analyzer produced.
type Generator struct {
	table    *semantic.ClassTable
	methods  *semantic.MethodEnv
	layouts  map[string]*classLayout
	order    []string // DefinedClasses(), cached
	pool     *constantPool
	data     strings.Builder
	text     strings.Builder
	labelSeq int

	// per-method/init-routine state, reset at the start of each one.
	currentClass    string
	currentFilename string
	env             *codegenEnv
	localDepth      int
}

// Generate runs the full backend pipeline over prog and returns the
// assembled .s file text.
func Generate(prog *ast.Program, result *semantic.Result) (string, error) {
	g := &Generator{
		table:   result.Table,
		methods: result.Methods,
	}
	g.order = g.table.DefinedClasses()
	g.layouts = buildLayouts(g.table, g.methods)
	g.pool = collectConstants(prog)
	for _, name := range g.order {
		g.pool.addStr(name)
		if info, ok := g.table.GetClass(name); ok {
			g.pool.addStr(info.Filename)
		}
	}

	g.emitConstants()
	g.emitNameAndObjTables()
	g.emitPrototypeObjects()
	g.emitDispatchTables()
	g.emitHeapStart()

	for _, name := range g.order {
		if err := g.emitClassInit(name); err != nil {
			return "", err
		}
	}
	for _, c := range prog.Classes {
		for _, f := range c.Features {
			m, ok := f.(*ast.Method)
			if !ok {
				continue
			}
			if err := g.emitMethod(c.TypeName, m); err != nil {
				return "", err
			}
		}
	}

	var out strings.Builder
	// The runtime resolves Main_init/Main.main by name and expects
	// heap_start to mark the free-list origin.
	out.WriteString("\t.globl Main_init\n")
	out.WriteString("\t.globl Main.main\n")
	out.WriteString("\t.globl heap_start\n")
	out.WriteString("\t.data\n")
	out.WriteString(g.data.String())
	out.WriteString("\t.text\n")
	out.WriteString(g.text.String())
	return out.String(), nil
}

func (g *Generator) newLabel(prefix string) string {
	g.labelSeq++
	return fmt.Sprintf("%s%d", prefix, g.labelSeq)
}

// -- tiny text emission helpers, in the same spirit as a bytecode
// chunk writer but targeting assembly text instead of a byte buffer.

func (g *Generator) dataLn(format string, args ...any) {
	fmt.Fprintf(&g.data, format+"\n", args...)
}

func (g *Generator) label(sect *strings.Builder, name string) {
	fmt.Fprintf(sect, "%s:\n", name)
}

func (g *Generator) ins(format string, args ...any) {
	fmt.Fprintf(&g.text, "\t"+format+"\n", args...)
}

func (g *Generator) comment(format string, args ...any) {
	fmt.Fprintf(&g.text, "\t# "+format+"\n", args...)
}

func protObjLabel(class string) string { return class + "_protObj" }
func dispTabLabel(class string) string { return class + "_dispTab" }
func initLabel(class string) string    { return class + "_init" }
func methodLabel(owner, method string) string { return owner + "." + method }
