// Package ast holds the node model for dvrtl circuits: bit values,
// synthesizable expressions, the arithmetic terms used by contracts and
// verification statements, statements, and the root Circuit. Nodes are
// immutable once built and render back to surface syntax via String.
package ast

// Node is implemented by every syntax node. String renders the node in
// canonical surface syntax; feeding the result back through the grammar
// and transformer reproduces a structurally equal node.
type Node interface {
	String() string
}

// Arith is an arithmetic term, valid inside assert/assume conditions and
// module contracts. Every synthesizable expression is also a valid term.
type Arith interface {
	Node
	isArith()
}

// Expr is a synthesizable expression, valid in register next-state
// functions, bindings, module outputs and call arguments.
type Expr interface {
	Arith
	isExpr()
}

// Stmt is a circuit statement.
type Stmt interface {
	Node
	isStmt()
}

func (Value) isExpr()    {}
func (*Symbol) isExpr()  {}
func (*BinExpr) isExpr() {}
func (*Mux) isExpr()     {}
func (*Inst) isExpr()    {}

func (Value) isArith()     {}
func (*Symbol) isArith()   {}
func (*BinExpr) isArith()  {}
func (*Mux) isArith()      {}
func (*Inst) isArith()     {}
func (*BinArith) isArith() {}
func (*Not) isArith()      {}
func (Res) isArith()       {}

func (*Reg) isStmt()    {}
func (*Bind) isStmt()   {}
func (*Assert) isStmt() {}
func (*Assume) isStmt() {}
func (*Module) isStmt() {}
