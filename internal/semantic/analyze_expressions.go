package semantic

import (
	"github.com/coolc/coolc/internal/ast"
)

// typeExpr assigns e's result type and returns it; every branch relies
// on conforms/lub to resolve SELF_TYPE against the enclosing class
// (a.selfType).
func (a *Analyzer) typeExpr(e ast.Expression) string {
	t := a.typeExprInner(e)
	e.SetResultType(t)
	return t
}

func (a *Analyzer) typeExprInner(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Int:
		return "Int"
	case *ast.Str:
		return "String"
	case *ast.Bool:
		return "Bool"
	case *ast.NoExpr:
		return ast.NoType
	case *ast.Id:
		return a.typeId(n)
	case *ast.Assign:
		return a.typeAssign(n)
	case *ast.New:
		return a.typeNew(n)
	case *ast.IsVoid:
		a.typeExpr(n.E)
		return "Bool"
	case *ast.Not:
		et := a.typeExpr(n.E)
		if et != "Bool" {
			a.fail(a.filename, n.Line(), "Argument of 'not' has type %s instead of Bool.", et)
		}
		return "Bool"
	case *ast.Neg:
		et := a.typeExpr(n.E)
		if et != "Int" {
			a.fail(a.filename, n.Line(), "Argument of '~' has type %s instead of Int.", et)
		}
		return "Int"
	case *ast.Plus:
		return a.typeArith(n.Line(), n.Lhs, n.Rhs, "+")
	case *ast.Minus:
		return a.typeArith(n.Line(), n.Lhs, n.Rhs, "-")
	case *ast.Mul:
		return a.typeArith(n.Line(), n.Lhs, n.Rhs, "*")
	case *ast.Div:
		return a.typeArith(n.Line(), n.Lhs, n.Rhs, "/")
	case *ast.Lt:
		return a.typeOrder(n.Line(), n.Lhs, n.Rhs, "<")
	case *ast.Le:
		return a.typeOrder(n.Line(), n.Lhs, n.Rhs, "<=")
	case *ast.Eq:
		return a.typeEq(n)
	case *ast.If:
		condT := a.typeExpr(n.Cond)
		if condT != "Bool" {
			a.fail(a.filename, n.Line(), "If condition does not have type Bool.")
		}
		thenT := a.typeExpr(n.Then)
		elseT := a.typeExpr(n.Else)
		return a.lub(thenT, elseT)
	case *ast.While:
		condT := a.typeExpr(n.Cond)
		if condT != "Bool" {
			a.fail(a.filename, n.Line(), "Loop condition does not have type Bool.")
		}
		a.typeExpr(n.Body)
		return "Object"
	case *ast.Block:
		var last string = ast.NoType
		for _, se := range n.Exprs {
			last = a.typeExpr(se)
		}
		return last
	case *ast.Let:
		return a.typeLet(n)
	case *ast.Case:
		return a.typeCase(n)
	case *ast.Paren:
		return a.typeExpr(n.E)
	case *ast.Dispatch:
		return a.typeDispatch(n)
	case *ast.StaticDispatch:
		return a.typeStaticDispatch(n)
	default:
		a.fail(a.filename, e.Line(), "internal error: unhandled expression type %T", e)
		return ast.NoType
	}
}

func (a *Analyzer) typeId(n *ast.Id) string {
	if n.Name == ast.Self {
		return ast.SelfType
	}
	if typ, ok := a.env.Lookup(n.Name); ok {
		return typ
	}
	a.fail(a.filename, n.Line(), "Undeclared identifier %s.", n.Name)
	return ast.NoType
}

func (a *Analyzer) typeAssign(n *ast.Assign) string {
	if n.ID == ast.Self {
		a.fail(a.filename, n.Line(), "Cannot assign to 'self'.")
	}
	declType, ok := a.env.Lookup(n.ID)
	if !ok {
		a.fail(a.filename, n.Line(), "Assignment to undeclared variable %s.", n.ID)
	}
	rhsType := a.typeExpr(n.RHS)
	if !a.conforms(rhsType, declType) {
		a.fail(a.filename, n.Line(),
			"Type %s of assigned expression does not conform to declared type %s of identifier %s.",
			rhsType, declType, n.ID)
	}
	return rhsType
}

func (a *Analyzer) typeNew(n *ast.New) string {
	if n.Type != ast.SelfType && !a.table.IsDefined(n.Type) {
		a.fail(a.filename, n.Line(), "'new' used with undefined class %s.", n.Type)
	}
	return n.Type
}

func (a *Analyzer) typeArith(line int, lhs, rhs ast.Expression, op string) string {
	lt := a.typeExpr(lhs)
	rt := a.typeExpr(rhs)
	if lt != "Int" || rt != "Int" {
		a.fail(a.filename, line, "non-Int arguments: %s %s %s", lt, op, rt)
	}
	return "Int"
}

func (a *Analyzer) typeOrder(line int, lhs, rhs ast.Expression, op string) string {
	lt := a.typeExpr(lhs)
	rt := a.typeExpr(rhs)
	if lt != "Int" || rt != "Int" {
		a.fail(a.filename, line, "non-Int arguments: %s %s %s", lt, op, rt)
	}
	return "Bool"
}

// typeEq: if either side's type is one of Int/String/Bool, both sides
// must have that exact same type.
func (a *Analyzer) typeEq(n *ast.Eq) string {
	lt := a.typeExpr(n.Lhs)
	rt := a.typeExpr(n.Rhs)
	if isPrimitiveLiteralType(lt) || isPrimitiveLiteralType(rt) {
		if lt != rt {
			a.fail(a.filename, n.Line(), "Illegal comparison with a basic type.")
		}
	}
	return "Bool"
}

func isPrimitiveLiteralType(t string) bool {
	return t == "Int" || t == "String" || t == "Bool"
}

func (a *Analyzer) typeLet(n *ast.Let) string {
	if n.ID == ast.Self {
		a.fail(a.filename, n.Line(), "'self' cannot be bound in a let expression.")
	}
	if n.Type != ast.SelfType && !a.table.IsDefined(n.Type) {
		a.fail(a.filename, n.Line(), "Class %s of let-bound identifier %s is undefined.", n.Type, n.ID)
	}
	if _, isNoExpr := n.Init.(*ast.NoExpr); !isNoExpr {
		initT := a.typeExpr(n.Init)
		if !a.conforms(initT, n.Type) {
			a.fail(a.filename, n.Init.Line(),
				"Inferred type %s of initialization of %s does not conform to identifier's declared type %s.",
				initT, n.ID, n.Type)
		}
	} else {
		a.typeExpr(n.Init)
	}

	a.env.Push()
	defer a.env.Pop()
	a.env.Define(n.ID, n.Type)
	return a.typeExpr(n.Body)
}

// typeDispatch: the method is looked up on the receiver's class
// (SELF_TYPE resolves to the enclosing class for the lookup only),
// arguments must conform pairwise, and a SELF_TYPE return propagates
// the receiver's own type rather than the enclosing class.
func (a *Analyzer) typeDispatch(n *ast.Dispatch) string {
	recvType := a.typeExpr(n.Recv)
	lookupClass := recvType
	if lookupClass == ast.SelfType {
		lookupClass = a.selfType
	}
	if !a.table.IsDefined(lookupClass) {
		a.fail(a.filename, n.Line(), "Dispatch on undefined class %s.", lookupClass)
	}
	sig, ok := a.methods.Get(lookupClass, n.Method)
	if !ok {
		a.fail(a.filename, n.Line(), "Dispatch to undefined method %s.", n.Method)
	}
	a.checkArgs(n.Line(), n.Method, sig, n.Args)
	if sig.ReturnType == ast.SelfType {
		return recvType
	}
	return sig.ReturnType
}

// typeStaticDispatch: the receiver's static type must conform to the
// named class T (which may not itself be SELF_TYPE), and the method is
// looked up on T directly.
func (a *Analyzer) typeStaticDispatch(n *ast.StaticDispatch) string {
	recvType := a.typeExpr(n.Recv)
	if n.Type == ast.SelfType {
		a.fail(a.filename, n.Line(), "Static dispatch to SELF_TYPE.")
	}
	if !a.table.IsDefined(n.Type) {
		a.fail(a.filename, n.Line(), "Static dispatch to undefined class %s.", n.Type)
	}
	if !a.conforms(recvType, n.Type) {
		a.fail(a.filename, n.Line(), "Expression type %s does not conform to declared static dispatch type %s.",
			recvType, n.Type)
	}
	sig, ok := a.methods.Get(n.Type, n.Method)
	if !ok {
		a.fail(a.filename, n.Line(), "Static dispatch to undefined method %s.", n.Method)
	}
	a.checkArgs(n.Line(), n.Method, sig, n.Args)
	if sig.ReturnType == ast.SelfType {
		return recvType
	}
	return sig.ReturnType
}

func (a *Analyzer) checkArgs(line int, method string, sig *Signature, args []ast.Expression) {
	if len(args) != len(sig.ParamTypes) {
		a.fail(a.filename, line, "Method %s called with wrong number of arguments.", method)
	}
	for i, arg := range args {
		argType := a.typeExpr(arg)
		if !a.conforms(argType, sig.ParamTypes[i]) {
			a.fail(a.filename, arg.Line(),
				"In call of method %s, type %s of parameter %d does not conform to declared type %s.",
				method, argType, i+1, sig.ParamTypes[i])
		}
	}
}

func (a *Analyzer) typeCase(n *ast.Case) string {
	a.typeExpr(n.Scrutinee)

	seen := map[string]bool{}
	result := ""
	for i, br := range n.Branches {
		if br.Type == ast.SelfType {
			a.fail(a.filename, br.Line(), "Identifier %s declared with type SELF_TYPE in case branch.", br.ID)
		}
		if !a.table.IsDefined(br.Type) {
			a.fail(a.filename, br.Line(), "Class %s of case branch is undefined.", br.Type)
		}
		if seen[br.Type] {
			a.fail(a.filename, br.Line(), "Duplicate branch %s in case statement.", br.Type)
		}
		seen[br.Type] = true

		a.env.Push()
		a.env.Define(br.ID, br.Type)
		bt := a.typeExpr(br.Body)
		a.env.Pop()

		if i == 0 {
			result = bt
		} else {
			result = a.lub(result, bt)
		}
	}
	return result
}
