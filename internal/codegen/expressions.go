package codegen

import (
	"fmt"

	"github.com/coolc/coolc/internal/ast"
)

// emitExpr lowers e, leaving its value in $a0.
func (g *Generator) emitExpr(e ast.Expression) error {
	switch n := e.(type) {
	case *ast.Int:
		g.ins("la $a0, %s", intLabel(g.pool.intIdx[n.Value]))
		return nil
	case *ast.Str:
		g.ins("la $a0, %s", strLabel(g.pool.strIdx[n.Value]))
		return nil
	case *ast.Bool:
		g.ins("la $a0, %s", boolLabel(n.Value))
		return nil
	case *ast.NoExpr:
		g.ins("move $a0, $zero")
		return nil
	case *ast.Id:
		return g.emitId(n)
	case *ast.Assign:
		return g.emitAssign(n)
	case *ast.New:
		return g.emitNew(n)
	case *ast.IsVoid:
		if err := g.emitExpr(n.E); err != nil {
			return err
		}
		trueLbl := g.newLabel("isvoid_true")
		endLbl := g.newLabel("isvoid_end")
		g.ins("beq $a0, $zero, %s", trueLbl)
		g.ins("la $a0, bool_const0")
		g.ins("b %s", endLbl)
		g.text.WriteString(trueLbl + ":\n")
		g.ins("la $a0, bool_const1")
		g.text.WriteString(endLbl + ":\n")
		return nil
	case *ast.Not:
		if err := g.emitExpr(n.E); err != nil {
			return err
		}
		g.ins("lw $t1, 12($a0)")
		trueLbl := g.newLabel("not_true")
		endLbl := g.newLabel("not_end")
		g.ins("beq $t1, $zero, %s", trueLbl)
		g.ins("la $a0, bool_const0")
		g.ins("b %s", endLbl)
		g.text.WriteString(trueLbl + ":\n")
		g.ins("la $a0, bool_const1")
		g.text.WriteString(endLbl + ":\n")
		return nil
	case *ast.Neg:
		if err := g.emitExpr(n.E); err != nil {
			return err
		}
		g.ins("jal Object.copy")
		g.ins("lw $t1, 12($a0)")
		g.ins("subu $t1, $zero, $t1")
		g.ins("sw $t1, 12($a0)")
		return nil
	case *ast.Plus:
		return g.emitArith(n.Lhs, n.Rhs, "addu")
	case *ast.Minus:
		return g.emitArith(n.Lhs, n.Rhs, "subu")
	case *ast.Mul:
		return g.emitArith(n.Lhs, n.Rhs, "mul")
	case *ast.Div:
		return g.emitArith(n.Lhs, n.Rhs, "div")
	case *ast.Lt:
		return g.emitCompare(n.Lhs, n.Rhs, "blt")
	case *ast.Le:
		return g.emitCompare(n.Lhs, n.Rhs, "ble")
	case *ast.Eq:
		return g.emitEq(n)
	case *ast.If:
		return g.emitIf(n)
	case *ast.While:
		return g.emitWhile(n)
	case *ast.Block:
		for _, se := range n.Exprs {
			if err := g.emitExpr(se); err != nil {
				return err
			}
		}
		return nil
	case *ast.Let:
		return g.emitLet(n)
	case *ast.Case:
		return g.emitCase(n)
	case *ast.Paren:
		return g.emitExpr(n.E)
	case *ast.Dispatch:
		return g.emitDispatch(n)
	case *ast.StaticDispatch:
		return g.emitStaticDispatch(n)
	default:
		return fmt.Errorf("codegen: unhandled expression type %T", e)
	}
}

func (g *Generator) emitId(n *ast.Id) error {
	if n.Name == ast.Self {
		g.ins("move $a0, $s0")
		return nil
	}
	if loc, ok := g.env.lookup(n.Name); ok {
		g.ins("lw $a0, %d($fp)", loc.offset)
		return nil
	}
	if off, ok := g.layouts[g.currentClass].attrOffset[n.Name]; ok {
		g.ins("lw $a0, %d($s0)", off)
		return nil
	}
	return fmt.Errorf("codegen: unresolved identifier %s in class %s", n.Name, g.currentClass)
}

func (g *Generator) emitAssign(n *ast.Assign) error {
	if err := g.emitExpr(n.RHS); err != nil {
		return err
	}
	if loc, ok := g.env.lookup(n.ID); ok {
		g.ins("sw $a0, %d($fp)", loc.offset)
		return nil
	}
	if off, ok := g.layouts[g.currentClass].attrOffset[n.ID]; ok {
		g.ins("sw $a0, %d($s0)", off)
		g.ins("addiu $a1, $s0, %d", off)
		g.ins("jal _GenGC_Assign")
		return nil
	}
	return fmt.Errorf("codegen: unresolved assignment target %s in class %s", n.ID, g.currentClass)
}

// emitNew instantiates T, resolving SELF_TYPE against self's runtime
// class tag via class_objTab.
func (g *Generator) emitNew(n *ast.New) error {
	if n.Type != ast.SelfType {
		g.ins("la $a0, %s", protObjLabel(n.Type))
		g.ins("jal Object.copy")
		g.ins("jal %s", initLabel(n.Type))
		return nil
	}

	g.ins("lw $t1, 0($s0)") // self's dynamic class tag
	g.ins("la $t2, class_objTab")
	g.ins("sll $t1, $t1, 3") // 2 words (protObj, init) per entry
	g.ins("addu $t2, $t2, $t1")
	g.pushReg("$t2") // save across the Object.copy call ($t-regs are caller-saved)
	g.ins("lw $a0, 0($t2)")
	g.ins("jal Object.copy")
	g.popReg("$t2")
	g.ins("lw $t2, 4($t2)")
	g.ins("jalr $t2")
	return nil
}

func (g *Generator) emitIf(n *ast.If) error {
	if err := g.emitExpr(n.Cond); err != nil {
		return err
	}
	g.ins("lw $t1, 12($a0)")
	falseLbl := g.newLabel("if_false")
	endLbl := g.newLabel("if_end")
	g.ins("beq $t1, $zero, %s", falseLbl)
	if err := g.emitExpr(n.Then); err != nil {
		return err
	}
	g.ins("b %s", endLbl)
	g.text.WriteString(falseLbl + ":\n")
	if err := g.emitExpr(n.Else); err != nil {
		return err
	}
	g.text.WriteString(endLbl + ":\n")
	return nil
}

func (g *Generator) emitWhile(n *ast.While) error {
	topLbl := g.newLabel("while_top")
	endLbl := g.newLabel("while_end")
	g.text.WriteString(topLbl + ":\n")
	if err := g.emitExpr(n.Cond); err != nil {
		return err
	}
	g.ins("lw $t1, 12($a0)")
	g.ins("beq $t1, $zero, %s", endLbl)
	if err := g.emitExpr(n.Body); err != nil {
		return err
	}
	g.ins("b %s", topLbl)
	g.text.WriteString(endLbl + ":\n")
	g.ins("move $a0, $zero")
	return nil
}

// emitLet pushes a new stack slot for the binding, evaluates the
// initializer (or its typed default) into it, emits body with the
// binding visible, then pops the slot.
func (g *Generator) emitLet(n *ast.Let) error {
	if _, isNoExpr := n.Init.(*ast.NoExpr); isNoExpr {
		g.emitTypedDefault(n.Type)
	} else if err := g.emitExpr(n.Init); err != nil {
		return err
	}

	g.pushAcc()
	g.localDepth++
	offset := -(4 + 4*g.localDepth)

	g.env.push()
	g.env.define(n.ID, varLoc{kind: varLocal, offset: offset})

	err := g.emitExpr(n.Body)

	g.env.pop()
	g.ins("addiu $sp, $sp, 4")
	g.localDepth--
	return err
}

// emitArith evaluates both operands then computes into a fresh copy of
// rhs's box so a shared literal constant is never mutated.
func (g *Generator) emitArith(lhs, rhs ast.Expression, mnemonic string) error {
	if err := g.emitExpr(lhs); err != nil {
		return err
	}
	g.pushAcc()
	if err := g.emitExpr(rhs); err != nil {
		return err
	}
	g.ins("jal Object.copy")
	g.popReg("$t1")
	g.ins("lw $t1, 12($t1)")
	g.ins("lw $t2, 12($a0)")
	g.ins("%s $t1, $t1, $t2", mnemonic)
	g.ins("sw $t1, 12($a0)")
	return nil
}

func (g *Generator) emitCompare(lhs, rhs ast.Expression, branch string) error {
	if err := g.emitExpr(lhs); err != nil {
		return err
	}
	g.pushAcc()
	if err := g.emitExpr(rhs); err != nil {
		return err
	}
	g.popReg("$t1")
	g.ins("lw $t1, 12($t1)")
	g.ins("lw $t2, 12($a0)")
	trueLbl := g.newLabel("cmp_true")
	endLbl := g.newLabel("cmp_end")
	g.ins("%s $t1, $t2, %s", branch, trueLbl)
	g.ins("la $a0, bool_const0")
	g.ins("b %s", endLbl)
	g.text.WriteString(trueLbl + ":\n")
	g.ins("la $a0, bool_const1")
	g.text.WriteString(endLbl + ":\n")
	return nil
}

// emitEq takes the pointer-equal fast path, otherwise tail-calls the
// runtime's equality_test helper.
func (g *Generator) emitEq(n *ast.Eq) error {
	if err := g.emitExpr(n.Lhs); err != nil {
		return err
	}
	g.pushAcc()
	if err := g.emitExpr(n.Rhs); err != nil {
		return err
	}
	g.ins("move $t2, $a0")
	g.popReg("$t1")
	eqLbl := g.newLabel("eq_true")
	endLbl := g.newLabel("eq_end")
	g.ins("beq $t1, $t2, %s", eqLbl)
	g.ins("la $a0, bool_const1")
	g.ins("la $a1, bool_const0")
	g.ins("jal equality_test")
	g.ins("b %s", endLbl)
	g.text.WriteString(eqLbl + ":\n")
	g.ins("la $a0, bool_const1")
	g.text.WriteString(endLbl + ":\n")
	return nil
}

// emitCase evaluates the scrutinee, aborts on void, then tests its
// runtime class tag against each branch's [tag, lastTag] range in
// most-specific-first order.
func (g *Generator) emitCase(n *ast.Case) error {
	if err := g.emitExpr(n.Scrutinee); err != nil {
		return err
	}
	nonVoidLbl := g.newLabel("case_nonvoid")
	g.ins("bne $a0, $zero, %s", nonVoidLbl)
	g.ins("la $a0, %s", strLabel(g.pool.strIdx[g.currentFilename]))
	g.ins("li $t1, %d", n.Line())
	g.ins("jal case_abort2")
	g.text.WriteString(nonVoidLbl + ":\n")

	g.ins("lw $t1, 0($a0)") // scrutinee's runtime class tag
	g.pushAcc()             // save the scrutinee pointer for whichever branch matches

	branches := append([]*ast.CaseBranch(nil), n.Branches...)
	sortBranchesMostSpecificFirst(g.table, branches)

	endLbl := g.newLabel("case_end")
	for _, br := range branches {
		l := g.layouts[br.Type]
		nextLbl := g.newLabel("case_next")
		g.ins("blt $t1, %d, %s", l.tag, nextLbl)
		g.ins("bgt $t1, %d, %s", l.lastTag, nextLbl)

		g.popReg("$a0")
		g.pushAcc() // re-push as the branch's own bound local slot
		g.localDepth++
		offset := -(4 + 4*g.localDepth)

		g.env.push()
		g.env.define(br.ID, varLoc{kind: varLocal, offset: offset})

		if err := g.emitExpr(br.Body); err != nil {
			return err
		}

		g.env.pop()
		g.ins("addiu $sp, $sp, 4")
		g.localDepth--
		g.ins("b %s", endLbl)
		g.text.WriteString(nextLbl + ":\n")
	}
	g.ins("jal case_abort")
	g.text.WriteString(endLbl + ":\n")
	return nil
}

func sortBranchesMostSpecificFirst(table interface {
	GetParent(string) string
}, branches []*ast.CaseBranch) {
	depth := func(name string) int {
		d := 0
		for cur := name; cur != ""; cur = table.GetParent(cur) {
			d++
		}
		return d
	}
	for i := 1; i < len(branches); i++ {
		for j := i; j > 0 && depth(branches[j].Type) > depth(branches[j-1].Type); j-- {
			branches[j], branches[j-1] = branches[j-1], branches[j]
		}
	}
}

// emitDispatch implements the dynamic dispatch sequence.
func (g *Generator) emitDispatch(n *ast.Dispatch) error {
	for _, a := range n.Args {
		if err := g.emitExpr(a); err != nil {
			return err
		}
		g.pushArg()
	}
	if err := g.emitExpr(n.Recv); err != nil {
		return err
	}
	g.checkNonVoid(n.Line())

	recvType := n.Recv.ResultType()
	lookupClass := recvType
	if lookupClass == ast.SelfType {
		lookupClass = g.currentClass
	}
	offset, ok := g.layouts[lookupClass].methodOffset(n.Method)
	if !ok {
		return fmt.Errorf("codegen: method %s not found on %s", n.Method, lookupClass)
	}
	g.ins("lw $t1, 8($a0)")
	g.ins("lw $t1, %d($t1)", offset)
	g.ins("jalr $t1")
	return nil
}

// emitStaticDispatch implements the static dispatch sequence: the
// dispatch table is loaded directly from T rather than the receiver's
// runtime class.
func (g *Generator) emitStaticDispatch(n *ast.StaticDispatch) error {
	for _, a := range n.Args {
		if err := g.emitExpr(a); err != nil {
			return err
		}
		g.pushArg()
	}
	if err := g.emitExpr(n.Recv); err != nil {
		return err
	}
	g.checkNonVoid(n.Line())

	offset, ok := g.layouts[n.Type].methodOffset(n.Method)
	if !ok {
		return fmt.Errorf("codegen: method %s not found on %s", n.Method, n.Type)
	}
	g.ins("la $t1, %s", dispTabLabel(n.Type))
	g.ins("lw $t1, %d($t1)", offset)
	g.ins("jalr $t1")
	return nil
}
