package ast

// If is a conditional expression; its result type is the least upper
// bound of Then's and Else's result types.
type If struct {
	baseExpr
	Cond Expression
	Then Expression
	Else Expression
}

func NewIf(line int, cond, then, els Expression) *If {
	return &If{baseExpr: newBaseExpr(line), Cond: cond, Then: then, Else: els}
}

// While loops while Cond is true; its result type is always Object.
type While struct {
	baseExpr
	Cond Expression
	Body Expression
}

func NewWhile(line int, cond, body Expression) *While {
	return &While{baseExpr: newBaseExpr(line), Cond: cond, Body: body}
}

// Block sequences one or more expressions; its result type is the last
// sub-expression's.
type Block struct {
	baseExpr
	Exprs []Expression
}

func NewBlock(line int, exprs []Expression) *Block {
	return &Block{baseExpr: newBaseExpr(line), Exprs: exprs}
}

// Let binds ID:Type (optionally initialized) for Body's scope.
// Multi-binding "let x:T, y:U in e" is desugared left-to-right into
// nested single-binding Let nodes by the parser.
type Let struct {
	baseExpr
	ID   string
	Type string
	Init Expression // NoExpr if the source omitted an initializer
	Body Expression
}

func NewLet(line int, id, typ string, init, body Expression) *Let {
	return &Let{baseExpr: newBaseExpr(line), ID: id, Type: typ, Init: init, Body: body}
}

// Case is a typecase: Scrutinee is matched against each Branch's
// declared Type in most-specific-first order at code generation time.
type Case struct {
	baseExpr
	Scrutinee Expression
	Branches  []*CaseBranch
}

func NewCase(line int, scrutinee Expression, branches []*CaseBranch) *Case {
	return &Case{baseExpr: newBaseExpr(line), Scrutinee: scrutinee, Branches: branches}
}

// CaseBranch is one "ID : TYPE => BODY" arm of a Case.
type CaseBranch struct {
	ID   string
	Type string
	Body Expression
	line int
}

func NewCaseBranch(line int, id, typ string, body Expression) *CaseBranch {
	return &CaseBranch{ID: id, Type: typ, Body: body, line: line}
}

func (b *CaseBranch) Line() int { return b.line }
