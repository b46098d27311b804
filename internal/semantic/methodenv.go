package semantic

import (
	"fmt"

	"github.com/coolc/coolc/internal/ast"
)

// Signature is a method's type, including the class that actually
// declared it — needed by the backend to emit "OwningClass.method"
// dispatch table entries.
type Signature struct {
	ParamTypes []string
	ReturnType string
	Owner      string
}

// MethodEnv maps (class, method) -> Signature, populated by walking
// the inheritance tree parents-first so overrides are checked against
// the inherited signature.
type MethodEnv struct {
	byClass map[string]map[string]*Signature
}

// builtinMethods are the synthetic signatures for the five basic
// classes.
func builtinMethods() map[string]map[string]*Signature {
	sig := func(owner, ret string, params ...string) *Signature {
		return &Signature{ParamTypes: params, ReturnType: ret, Owner: owner}
	}
	return map[string]map[string]*Signature{
		"Object": {
			"abort":     sig("Object", "Object"),
			"type_name": sig("Object", "String"),
			"copy":      sig("Object", ast.SelfType),
		},
		"IO": {
			"out_string": sig("IO", ast.SelfType, "String"),
			"out_int":    sig("IO", ast.SelfType, "Int"),
			"in_string":  sig("IO", "String"),
			"in_int":     sig("IO", "Int"),
		},
		"String": {
			"length": sig("String", "Int"),
			"concat": sig("String", "String", "String"),
			"substr": sig("String", "String", "Int", "Int"),
		},
		"Int": {
			"val": sig("Int", "Int"),
		},
		"Bool": {
			"val": sig("Bool", "Bool"),
		},
	}
}

// BuildMethodEnv walks table.DefinedClasses() (root-first) validating
// and accumulating every class's visible method set.
func BuildMethodEnv(table *ClassTable) (*MethodEnv, error) {
	env := &MethodEnv{byClass: map[string]map[string]*Signature{}}
	builtins := builtinMethods()

	for _, name := range table.DefinedClasses() {
		visible := map[string]*Signature{}
		if parent := table.GetParent(name); parent != "" {
			for k, v := range env.byClass[parent] {
				visible[k] = v
			}
		}
		for k, v := range builtins[name] {
			visible[k] = v
		}

		info, _ := table.GetClass(name)
		own := map[string]bool{}
		for _, m := range info.Methods {
			if own[m.ID] {
				return nil, &Error{Filename: info.Filename, Line: m.Line(),
					Message: fmt.Sprintf("Method %s is multiply defined.", m.ID)}
			}
			own[m.ID] = true

			params := make([]string, 0, len(m.Formals))
			seenFormal := map[string]bool{}
			for _, f := range m.Formals {
				if f.ID == ast.Self {
					return nil, &Error{Filename: info.Filename, Line: f.Line(),
						Message: "'self' cannot be the name of a formal parameter."}
				}
				if seenFormal[f.ID] {
					return nil, &Error{Filename: info.Filename, Line: f.Line(),
						Message: fmt.Sprintf("Formal parameter %s is multiply defined.", f.ID)}
				}
				seenFormal[f.ID] = true
				if f.Type == ast.SelfType {
					return nil, &Error{Filename: info.Filename, Line: f.Line(),
						Message: fmt.Sprintf("Formal parameter %s cannot have type SELF_TYPE.", f.ID)}
				}
				if !table.IsDefined(f.Type) {
					return nil, &Error{Filename: info.Filename, Line: f.Line(),
						Message: fmt.Sprintf("Class %s of formal parameter %s is undefined.", f.Type, f.ID)}
				}
				params = append(params, f.Type)
			}
			if m.ReturnType != ast.SelfType && !table.IsDefined(m.ReturnType) {
				return nil, &Error{Filename: info.Filename, Line: m.Line(),
					Message: fmt.Sprintf("Undefined return type %s in method %s.", m.ReturnType, m.ID)}
			}

			newSig := &Signature{ParamTypes: params, ReturnType: m.ReturnType, Owner: name}
			if existing, ok := visible[m.ID]; ok {
				if err := checkOverride(info.Filename, m, existing, newSig); err != nil {
					return nil, err
				}
			}
			visible[m.ID] = newSig
		}

		env.byClass[name] = visible
	}

	return env, nil
}

func checkOverride(filename string, m *ast.Method, existing, newSig *Signature) error {
	if len(existing.ParamTypes) != len(newSig.ParamTypes) {
		return &Error{Filename: filename, Line: m.Line(),
			Message: fmt.Sprintf("Incompatible number of formal parameters in redefined method %s.", m.ID)}
	}
	for i := range existing.ParamTypes {
		if existing.ParamTypes[i] != newSig.ParamTypes[i] {
			return &Error{Filename: filename, Line: m.Line(),
				Message: fmt.Sprintf("In redefined method %s, parameter type %s is different from original type %s.",
					m.ID, newSig.ParamTypes[i], existing.ParamTypes[i])}
		}
	}
	if existing.ReturnType != newSig.ReturnType {
		return &Error{Filename: filename, Line: m.Line(),
			Message: fmt.Sprintf("In redefined method %s, return type %s is different from original type %s.",
				m.ID, newSig.ReturnType, existing.ReturnType)}
	}
	return nil
}

// Get returns the signature visible for (class, method). class is used
// as given; a SELF_TYPE receiver is not resolved here.
func (e *MethodEnv) Get(class, method string) (*Signature, bool) {
	sig, ok := e.byClass[class][method]
	return sig, ok
}

// Methods returns every name visible on class, e.g. for dispatch table
// construction.
func (e *MethodEnv) Methods(class string) map[string]*Signature {
	return e.byClass[class]
}
