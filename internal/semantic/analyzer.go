package semantic

import (
	"github.com/coolc/coolc/internal/ast"
)

// Analyzer performs a post-order AST walk, decorating every
// expression's result type in place.
type Analyzer struct {
	table    *ClassTable
	methods  *MethodEnv
	env      *ObjectEnv
	selfType string
	filename string
}

// Result bundles the environments a successful analysis produces; the
// backend consumes both to generate code.
type Result struct {
	Table   *ClassTable
	Methods *MethodEnv
}

// Analyze runs the full pipeline against prog: class table
// construction, method environment construction, the Main/main check,
// and per-class type decoration. It returns the first error found, as
// a plain file/line/message error; source-context formatting is left
// to the caller.
func Analyze(prog *ast.Program) (result *Result, err error) {
	table, err := NewClassTable(prog.Classes)
	if err != nil {
		return nil, err
	}
	methods, err := BuildMethodEnv(table)
	if err != nil {
		return nil, err
	}
	if err := checkMain(table, methods); err != nil {
		return nil, err
	}

	a := &Analyzer{table: table, methods: methods, env: NewObjectEnv()}

	defer func() {
		if r := recover(); r != nil {
			if ab, ok := r.(abort); ok {
				err = ab.err
				return
			}
			panic(r)
		}
	}()

	for _, c := range prog.Classes {
		a.visitClass(c)
	}
	return &Result{Table: table, Methods: methods}, nil
}

func checkMain(table *ClassTable, methods *MethodEnv) error {
	info, ok := table.GetClass("Main")
	if !ok {
		return &Error{Message: "Class Main is not defined."}
	}
	sig, ok := methods.Get("Main", "main")
	if !ok {
		return &Error{Filename: info.Filename, Message: "Method main is not defined in class Main."}
	}
	if len(sig.ParamTypes) != 0 {
		return &Error{Filename: info.Filename, Message: "Method main in class Main must take no formal parameters."}
	}
	return nil
}
