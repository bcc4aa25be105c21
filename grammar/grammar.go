// Package grammar holds the concrete syntax of the dvrtl language:
//
//	Value v       ::= 0 | 1
//	Expression e  ::= e xor e | e and e | e or e | mux e e e |
//	                  v | r | x | x (e,...,e)
//	Arithmetic a  ::= a impl a | a + a | a - a | a eq a |
//	                  a xor a | a and a | a or a | not a | e
//	Contract h    ::= res | a
//	Module m      ::= mod(x,...,x) [req a; ens h] { b } | mod(x,...,x) { b }
//	Statement s   ::= r -> v, e | x = e | x = m | assert a | assume a | m
//	Body b        ::= [s]* out e
//	Circuit c     ::= [s]*
//
// The parse result lowers into the labeled parse tree consumed by the
// transformer; nothing outside this package sees the types below.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type Circuit struct {
	Pos   lexer.Position
	Stmts []*Stmt `@@*`
}

type Stmt struct {
	Pos    lexer.Position
	Reg    *Reg    `( @@`
	Bind   *Bind   `| @@`
	Assert *Assert `| @@`
	Assume *Assume `| @@`
	Module *Module `| @@ )`
	Semi   bool    `[ @";" ]`
}

type Reg struct {
	Pos  lexer.Position
	Name string `@Ident "->"`
	Init string `@Bit ","`
	Next *Expr  `@@`
}

type Bind struct {
	Pos   lexer.Position
	Name  string  `@Ident "="`
	Mod   *Module `( @@`
	Value *Expr   `| @@ )`
}

type Assert struct {
	Pos  lexer.Position
	Cond *Arith `"assert" @@`
}

type Assume struct {
	Pos  lexer.Position
	Cond *Arith `"assume" @@`
}

type Module struct {
	Pos      lexer.Position
	Params   []string  `"mod" "(" [ @Ident { "," @Ident } ] ")"`
	Contract *Contract `[ @@ ]`
	Body     []*Stmt   `"{" @@*`
	Out      *Out      `[ @@ ] "}"`
}

type Contract struct {
	Pos lexer.Position
	Req *Arith `"[" "req" @@ ";"`
	Ens *Arith `"ens" @@ "]"`
}

type Out struct {
	Pos   lexer.Position
	Value *Expr `"out" @@`
}

// Expressions, lowest precedence first: or, and, xor, then atoms.

type Expr struct {
	Pos  lexer.Position
	Head *AndExpr `@@`
	Tail []*OrRhs `@@*`
}

type OrRhs struct {
	Pos  lexer.Position
	Term *AndExpr `"or" @@`
}

type AndExpr struct {
	Pos  lexer.Position
	Head *XorExpr  `@@`
	Tail []*AndRhs `@@*`
}

type AndRhs struct {
	Pos  lexer.Position
	Term *XorExpr `"and" @@`
}

type XorExpr struct {
	Pos  lexer.Position
	Head *PrimaryExpr `@@`
	Tail []*XorRhs    `@@*`
}

type XorRhs struct {
	Pos  lexer.Position
	Term *PrimaryExpr `"xor" @@`
}

type PrimaryExpr struct {
	Pos   lexer.Position
	Bit   *string  `  @Bit`
	Mux   *MuxExpr `| @@`
	Call  *Call    `| @@`
	Ident *string  `| @Ident`
	Sub   *Expr    `| "(" @@ ")"`
}

type MuxExpr struct {
	Pos       lexer.Position
	Sel       *PrimaryExpr `"mux" @@`
	WhenTrue  *PrimaryExpr `@@`
	WhenFalse *PrimaryExpr `@@`
}

type Call struct {
	Pos  lexer.Position
	Name string  `@Ident "("`
	Args []*Expr `[ @@ { "," @@ } ] ")"`
}

// Arithmetic terms, lowest precedence first: impl, eq, +/-, or, and, xor,
// prefix not, then atoms.

type Arith struct {
	Pos  lexer.Position
	Head *EqArith   `@@`
	Tail []*ImplRhs `@@*`
}

type ImplRhs struct {
	Pos  lexer.Position
	Term *EqArith `"impl" @@`
}

type EqArith struct {
	Pos  lexer.Position
	Head *AddArith `@@`
	Tail []*EqRhs  `@@*`
}

type EqRhs struct {
	Pos  lexer.Position
	Term *AddArith `"eq" @@`
}

type AddArith struct {
	Pos  lexer.Position
	Head *OrArith  `@@`
	Tail []*AddRhs `@@*`
}

type AddRhs struct {
	Pos  lexer.Position
	Op   string   `@("+" | "-")`
	Term *OrArith `@@`
}

type OrArith struct {
	Pos  lexer.Position
	Head *AndArith `@@`
	Tail []*AOrRhs `@@*`
}

type AOrRhs struct {
	Pos  lexer.Position
	Term *AndArith `"or" @@`
}

type AndArith struct {
	Pos  lexer.Position
	Head *XorArith  `@@`
	Tail []*AAndRhs `@@*`
}

type AAndRhs struct {
	Pos  lexer.Position
	Term *XorArith `"and" @@`
}

type XorArith struct {
	Pos  lexer.Position
	Head *UnaryArith `@@`
	Tail []*AXorRhs  `@@*`
}

type AXorRhs struct {
	Pos  lexer.Position
	Term *UnaryArith `"xor" @@`
}

type UnaryArith struct {
	Pos  lexer.Position
	Not  *UnaryArith   `  "not" @@`
	Prim *PrimaryArith `| @@`
}

type PrimaryArith struct {
	Pos   lexer.Position
	Res   bool     `  @"res"`
	Bit   *string  `| @Bit`
	Mux   *MuxExpr `| @@`
	Call  *Call    `| @@`
	Ident *string  `| @Ident`
	Sub   *Arith   `| "(" @@ ")"`
}
