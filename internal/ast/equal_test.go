package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualArithIgnoresSymbolIdentity(t *testing.T) {
	a := NewBinExpr(OpXor, NewSymbol("a"), NewSymbol("b"))
	b := NewBinExpr(OpXor, NewSymbol("a"), NewSymbol("b"))
	assert.True(t, EqualArith(a, b))

	c := NewBinExpr(OpXor, NewSymbol("a"), NewSymbol("c"))
	assert.False(t, EqualArith(a, c))
	assert.False(t, EqualArith(a, NewBinExpr(OpAnd, NewSymbol("a"), NewSymbol("b"))))
}

func TestEqualArithDistinguishesKinds(t *testing.T) {
	assert.False(t, EqualArith(Zero(), NewSymbol("a")))
	assert.True(t, EqualArith(Res{}, Res{}))
	assert.False(t, EqualArith(Res{}, One()))
}

func TestEqualStmt(t *testing.T) {
	a := &Reg{Name: "A", Init: Zero(), Next: NewSymbol("A")}
	assert.True(t, EqualStmt(a, &Reg{Name: "A", Init: Zero(), Next: NewSymbol("A")}))
	assert.False(t, EqualStmt(a, &Reg{Name: "A", Init: One(), Next: NewSymbol("A")}))
	assert.False(t, EqualStmt(a, &Bind{Name: "A", Value: Zero()}))
}

func TestEqualModuleBind(t *testing.T) {
	mk := func() *Bind {
		p := NewSymbol("a")
		return &Bind{Name: "m", Mod: &Module{
			Params: []*Symbol{p},
			Out:    &Out{Value: NewBinExpr(OpXor, p, One())},
		}}
	}
	assert.True(t, EqualStmt(mk(), mk()))

	other := mk()
	other.Mod.Contract = &Contract{
		Pre:  &PreCond{Cond: NewSymbol("a")},
		Post: &PostCond{Cond: Res{}},
	}
	assert.False(t, EqualStmt(mk(), other))
}

func TestEqualCircuitsNil(t *testing.T) {
	c := &Circuit{}
	assert.True(t, EqualCircuits(nil, nil))
	assert.False(t, EqualCircuits(c, nil))
	assert.True(t, EqualCircuits(c, &Circuit{}))
}
