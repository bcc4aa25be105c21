package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTree(t *testing.T, source string) string {
	t.Helper()
	tree, err := Parse("test.dv", source)
	require.NoError(t, err)
	return tree.Pretty()
}

func TestParseReg(t *testing.T) {
	pretty := parseTree(t, "A -> 0, A xor B")
	expected := "start\n" +
		"  reg\n" +
		"    identifier A\n" +
		"    zero 0\n" +
		"    xor\n" +
		"      identifier A\n" +
		"      identifier B\n"
	assert.Equal(t, expected, pretty)
}

func TestParseBind(t *testing.T) {
	pretty := parseTree(t, "x = 1")
	expected := "start\n" +
		"  bind\n" +
		"    identifier x\n" +
		"    one 1\n"
	assert.Equal(t, expected, pretty)
}

func TestExprPrecedence(t *testing.T) {
	// xor binds tightest, then and, then or.
	pretty := parseTree(t, "x = a or b and c xor d")
	expected := "start\n" +
		"  bind\n" +
		"    identifier x\n" +
		"    or\n" +
		"      identifier a\n" +
		"      and\n" +
		"        identifier b\n" +
		"        xor\n" +
		"          identifier c\n" +
		"          identifier d\n"
	assert.Equal(t, expected, pretty)
}

func TestExprLeftAssociative(t *testing.T) {
	pretty := parseTree(t, "x = a xor b xor c")
	expected := "start\n" +
		"  bind\n" +
		"    identifier x\n" +
		"    xor\n" +
		"      xor\n" +
		"        identifier a\n" +
		"        identifier b\n" +
		"      identifier c\n"
	assert.Equal(t, expected, pretty)
}

func TestParensRegroup(t *testing.T) {
	pretty := parseTree(t, "x = (a or b) and c")
	expected := "start\n" +
		"  bind\n" +
		"    identifier x\n" +
		"    and\n" +
		"      or\n" +
		"        identifier a\n" +
		"        identifier b\n" +
		"      identifier c\n"
	assert.Equal(t, expected, pretty)
}

func TestParseMux(t *testing.T) {
	pretty := parseTree(t, "x = mux s 0 1")
	expected := "start\n" +
		"  bind\n" +
		"    identifier x\n" +
		"    mux\n" +
		"      identifier s\n" +
		"      zero 0\n" +
		"      one 1\n"
	assert.Equal(t, expected, pretty)
}

func TestParseCall(t *testing.T) {
	pretty := parseTree(t, "x = half(a, b xor 1)")
	expected := "start\n" +
		"  bind\n" +
		"    identifier x\n" +
		"    call\n" +
		"      identifier half\n" +
		"      args\n" +
		"        identifier a\n" +
		"        xor\n" +
		"          identifier b\n" +
		"          one 1\n"
	assert.Equal(t, expected, pretty)
}

func TestParseModule(t *testing.T) {
	pretty := parseTree(t, "half = mod(a, b) { out a xor b }")
	expected := "start\n" +
		"  bind\n" +
		"    identifier half\n" +
		"    module\n" +
		"      params\n" +
		"        identifier a\n" +
		"        identifier b\n" +
		"      out\n" +
		"        xor\n" +
		"          identifier a\n" +
		"          identifier b\n"
	assert.Equal(t, expected, pretty)
}

func TestParseContract(t *testing.T) {
	pretty := parseTree(t, "inc = mod(a) [req not a; ens res eq a + 1] { out a xor 1 }")
	expected := "start\n" +
		"  bind\n" +
		"    identifier inc\n" +
		"    module\n" +
		"      params\n" +
		"        identifier a\n" +
		"      contract\n" +
		"        precond\n" +
		"          not\n" +
		"            identifier a\n" +
		"        postcond\n" +
		"          eq\n" +
		"            res\n" +
		"            add\n" +
		"              identifier a\n" +
		"              one 1\n" +
		"      out\n" +
		"        xor\n" +
		"          identifier a\n" +
		"          one 1\n"
	assert.Equal(t, expected, pretty)
}

func TestArithPrecedence(t *testing.T) {
	// impl is loosest; eq binds tighter than impl, +/- tighter than eq.
	pretty := parseTree(t, "assert a impl b eq c - d")
	expected := "start\n" +
		"  assert\n" +
		"    impl\n" +
		"      identifier a\n" +
		"      eq\n" +
		"        identifier b\n" +
		"        sub\n" +
		"          identifier c\n" +
		"          identifier d\n"
	assert.Equal(t, expected, pretty)
}

func TestAssumeStatement(t *testing.T) {
	pretty := parseTree(t, "assume a and 1")
	expected := "start\n" +
		"  assume\n" +
		"    arith_and\n" +
		"      identifier a\n" +
		"      one 1\n"
	assert.Equal(t, expected, pretty)
}

func TestModuleBodyWithStatements(t *testing.T) {
	pretty := parseTree(t, "f = mod(a) { axb = a xor 1; assert axb or a; out axb }")
	expected := "start\n" +
		"  bind\n" +
		"    identifier f\n" +
		"    module\n" +
		"      params\n" +
		"        identifier a\n" +
		"      bind\n" +
		"        identifier axb\n" +
		"        xor\n" +
		"          identifier a\n" +
		"          one 1\n" +
		"      assert\n" +
		"        arith_or\n" +
		"          identifier axb\n" +
		"          identifier a\n" +
		"      out\n" +
		"        identifier axb\n"
	assert.Equal(t, expected, pretty)
}

func TestAnonymousModuleStatement(t *testing.T) {
	pretty := parseTree(t, "mod(a) { assert a }")
	expected := "start\n" +
		"  module\n" +
		"    params\n" +
		"      identifier a\n" +
		"    assert\n" +
		"      identifier a\n"
	assert.Equal(t, expected, pretty)
}

func TestCommentsIgnored(t *testing.T) {
	pretty := parseTree(t, "// toggle register\nA -> 0, A xor 1 // flips each cycle")
	expected := "start\n" +
		"  reg\n" +
		"    identifier A\n" +
		"    zero 0\n" +
		"    xor\n" +
		"      identifier A\n" +
		"      one 1\n"
	assert.Equal(t, expected, pretty)
}

func TestSyntaxErrorReported(t *testing.T) {
	_, err := Parse("test.dv", "A -> , A")
	assert.Error(t, err)

	_, err = Parse("test.dv", "x = (a xor")
	assert.Error(t, err)
}

func TestParseSourcePositions(t *testing.T) {
	tree, err := Parse("test.dv", "x = 1\nA -> 0, x")
	require.NoError(t, err)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, 1, tree.Children[0].Pos.Line)
	assert.Equal(t, 2, tree.Children[1].Pos.Line)
	assert.Equal(t, "test.dv", tree.Children[1].Pos.Filename)
}
