package ast

// Op identifies a binary operator. Expressions use the Boolean subset
// (xor, and, or); arithmetic terms use the full set.
type Op int

const (
	OpXor Op = iota
	OpAnd
	OpOr
	OpImpl
	OpAdd
	OpSub
	OpEq
)

// Symbol returns the operator's surface spelling.
func (op Op) Symbol() string {
	switch op {
	case OpXor:
		return "xor"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpImpl:
		return "impl"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpEq:
		return "eq"
	default:
		return "?"
	}
}

// Synthesizable reports whether the operator is valid in expression
// position, outside of contracts and verification statements.
func (op Op) Synthesizable() bool {
	return op == OpXor || op == OpAnd || op == OpOr
}

// Value is a single bit, 0 or 1.
//
// Truth tables for the operators over values: xor is inequality, and is
// conjunction, or is disjunction, eq is bitwise equality (the negation of
// xor), impl a b is (not a) or b.
type Value struct {
	bit int
}

// Zero is the 0 bit.
func Zero() Value { return Value{bit: 0} }

// One is the 1 bit.
func One() Value { return Value{bit: 1} }

// Int returns 0 or 1.
func (v Value) Int() int { return v.bit }

// Order is the outcome of evaluating a verification statement: Skip when
// the condition holds, Fail otherwise. It is defined here as a value type;
// evaluation itself happens downstream.
type Order int

const (
	Skip Order = iota
	Fail
)

func (o Order) String() string {
	if o == Fail {
		return "fail"
	}
	return "skip"
}

// BinExpr is a binary Boolean operator over synthesizable expressions.
// Lhs and Rhs name the two operands directly; Ops mirrors them as a
// generic operand list for passes that walk operands uniformly.
type BinExpr struct {
	Op  Op
	Lhs Expr
	Rhs Expr
	Ops []Expr
}

// NewBinExpr builds a binary expression node, keeping the operand list in
// sync with the named operands.
func NewBinExpr(op Op, lhs, rhs Expr) *BinExpr {
	return &BinExpr{Op: op, Lhs: lhs, Rhs: rhs, Ops: []Expr{lhs, rhs}}
}

// Mux selects WhenTrue when Sel is 1 and WhenFalse when Sel is 0:
// mux(s, t, f) = (s and t) or ((s xor 1) and f).
type Mux struct {
	Sel       Expr
	WhenTrue  Expr
	WhenFalse Expr
}

// Inst is a module instantiation. Callee is the referenced symbol; Module
// points at the resolved definition once the transform pass has linked it.
type Inst struct {
	Callee *Symbol
	Module *Module
	Args   []Expr
}

// BinArith is a binary operator over arithmetic terms.
type BinArith struct {
	Op  Op
	Lhs Arith
	Rhs Arith
	Ops []Arith
}

// NewBinArith builds a binary arithmetic node, keeping the operand list
// in sync with the named operands.
func NewBinArith(op Op, lhs, rhs Arith) *BinArith {
	return &BinArith{Op: op, Lhs: lhs, Rhs: rhs, Ops: []Arith{lhs, rhs}}
}

// Not is logical negation over an arithmetic term.
type Not struct {
	Term Arith
}

// Desugar rewrites the negation into the minimal operator set, xor with 1.
func (n *Not) Desugar() Arith {
	return NewBinArith(OpXor, n.Term, One())
}

// Res refers to the enclosing module's output value. It is only
// meaningful inside a postcondition.
type Res struct{}

// Reg is a clocked register: it holds Init at cycle zero and Next,
// evaluated over the previous cycle's values, afterwards. Next may
// reference the register's own name, denoting its previous value.
type Reg struct {
	Name string
	Init Value
	Next Expr
}

// Bind binds a name to a combinational expression or a module
// definition. Exactly one of Value and Mod is set.
type Bind struct {
	Name  string
	Value Expr
	Mod   *Module
}

// Assert is a verification statement the design must uphold.
type Assert struct {
	Cond Arith
}

// Assume is a verification statement constraining the environment.
type Assume struct {
	Cond Arith
}

// Module is a parameterized template for combinational or sequential
// logic. Out is required for named modules; anonymous module statements
// may omit it.
type Module struct {
	Params   []*Symbol
	Contract *Contract
	Body     []Stmt
	Out      *Out
}

// Contract is a module's precondition/postcondition pair.
type Contract struct {
	Pre  *PreCond
	Post *PostCond
}

// PreCond constrains a module's inputs. Its condition may not mention res.
type PreCond struct {
	Cond Arith
}

// PostCond constrains a module's output and may mention res.
type PostCond struct {
	Cond Arith
}

// Out is a module body's output expression.
type Out struct {
	Value Expr
}

// Circuit is the root artifact of a transform pass: the ordered top-level
// statements plus the resolved symbol context. It is never mutated after
// construction.
type Circuit struct {
	Stmts   []Stmt
	Context *Context
}
