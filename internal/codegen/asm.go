package codegen

// prolog/epilog emit the fixed activation-record sequence; nargs is
// the callee's own formal count, used only by the epilog to pop the
// caller-pushed arguments.
func (g *Generator) prolog() {
	g.ins("addiu $sp, $sp, -12")
	g.ins("sw $fp, 12($sp)")
	g.ins("sw $s0, 8($sp)")
	g.ins("sw $ra, 4($sp)")
	g.ins("addiu $fp, $sp, 4")
	g.ins("move $s0, $a0")
}

func (g *Generator) epilog(nargs int) {
	g.ins("lw $ra, 4($sp)")
	g.ins("lw $s0, 8($sp)")
	g.ins("lw $fp, 12($sp)")
	g.ins("addiu $sp, $sp, %d", 12+4*nargs)
	g.ins("jr $ra")
}

// pushReg spills reg onto the stack, growing it by one word.
func (g *Generator) pushReg(reg string) {
	g.ins("addiu $sp, $sp, -4")
	g.ins("sw %s, 0($sp)", reg)
}

// popReg restores the top-of-stack word into reg and shrinks the
// stack back by one word.
func (g *Generator) popReg(reg string) {
	g.ins("lw %s, 0($sp)", reg)
	g.ins("addiu $sp, $sp, 4")
}

// pushAcc is pushReg for the common case of spilling the result
// register, $a0.
func (g *Generator) pushAcc() { g.pushReg("$a0") }

// pushArg pushes an outgoing call argument: store first, then
// decrement. That leaves $sp pointing one word below the argument, so
// the callee's own prolog (which reserves ra/s0/fp at 4/8/12 off its
// own, further-decremented $sp) never lands on top of it; arguments
// end up readable at 12($fp) and up once the callee is entered.
func (g *Generator) pushArg() {
	g.ins("sw $a0, 0($sp)")
	g.ins("addiu $sp, $sp, -4")
}

// checkNonVoid aborts to _dispatch_abort, citing filename and line,
// unless $a0 is non-null.
func (g *Generator) checkNonVoid(line int) {
	ok := g.newLabel("obj_ok")
	g.ins("bne $a0, $zero, %s", ok)
	g.ins("la $a0, %s", strLabel(g.pool.strIdx[g.currentFilename]))
	g.ins("li $t1, %d", line)
	g.ins("jal _dispatch_abort")
	g.text.WriteString(ok + ":\n")
}
