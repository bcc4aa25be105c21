package transform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dvrtl/grammar"
	"dvrtl/internal/ast"
	"dvrtl/internal/errors"
)

func transformSource(t *testing.T, source string) (*ast.Circuit, error) {
	t.Helper()
	tree, err := grammar.Parse("test.dv", source)
	require.NoError(t, err, "source must parse")
	return Transform(tree)
}

func mustTransform(t *testing.T, source string) *ast.Circuit {
	t.Helper()
	circuit, err := transformSource(t, source)
	require.NoError(t, err)
	return circuit
}

func requireCode(t *testing.T, err error, code string) *errors.TransformError {
	t.Helper()
	require.Error(t, err)
	var terr *errors.TransformError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, code, terr.Code)
	return terr
}

func TestTransformReg(t *testing.T) {
	circuit := mustTransform(t, "A -> 0, A xor B")

	require.Len(t, circuit.Stmts, 1)
	reg, ok := circuit.Stmts[0].(*ast.Reg)
	require.True(t, ok)
	assert.Equal(t, "A", reg.Name)
	assert.Equal(t, ast.Zero(), reg.Init)
	assert.Equal(t, "A -> 0, A xor B", reg.String())
}

func TestTransformBindValue(t *testing.T) {
	circuit := mustTransform(t, "x = 1 and (0 or 1)")

	require.Len(t, circuit.Stmts, 1)
	bind, ok := circuit.Stmts[0].(*ast.Bind)
	require.True(t, ok)
	assert.Nil(t, bind.Mod)
	assert.Equal(t, "x = 1 and (0 or 1)", bind.String())
}

func TestTransformMux(t *testing.T) {
	circuit := mustTransform(t, "x = mux 1 0 1")

	bind := circuit.Stmts[0].(*ast.Bind)
	mux, ok := bind.Value.(*ast.Mux)
	require.True(t, ok)
	assert.Equal(t, "mux 1 0 1", mux.String())
}

func TestTransformModuleBind(t *testing.T) {
	circuit := mustTransform(t, "half = mod(a, b) { out a xor b }")

	bind := circuit.Stmts[0].(*ast.Bind)
	require.NotNil(t, bind.Mod)
	require.Len(t, bind.Mod.Params, 2)
	assert.Equal(t, "a", bind.Mod.Params[0].Name)
	assert.Equal(t, "half = mod(a, b) { out a xor b }", bind.String())
}

func TestTransformContract(t *testing.T) {
	circuit := mustTransform(t, "inc = mod(a) [req not a; ens res eq (a + 1)] { out a xor 1 }")

	bind := circuit.Stmts[0].(*ast.Bind)
	require.NotNil(t, bind.Mod.Contract)
	assert.Equal(t, "[req not a; ens res eq (a + 1)]", bind.Mod.Contract.String())
}

func TestTransformAnonymousModule(t *testing.T) {
	// Only the anonymous statement form may omit out.
	circuit := mustTransform(t, "mod(a) { assert a }")

	mod, ok := circuit.Stmts[0].(*ast.Module)
	require.True(t, ok)
	assert.Nil(t, mod.Out)
	assert.Equal(t, "mod(a) { assert a }", mod.String())
}

func TestTransformCall(t *testing.T) {
	circuit := mustTransform(t, "half = mod(a, b) { out a xor b }\nx = half(0, 1)")

	bind := circuit.Stmts[1].(*ast.Bind)
	inst, ok := bind.Value.(*ast.Inst)
	require.True(t, ok)
	assert.Equal(t, "half", inst.Callee.Name)
	require.NotNil(t, inst.Module, "call must be linked to its definition")
	assert.Same(t, circuit.Stmts[0].(*ast.Bind).Mod, inst.Module)
}

func TestCallBeforeDefinition(t *testing.T) {
	// Module bindings are visible to the whole scope, so a call may
	// precede its callee in the text.
	circuit := mustTransform(t, "x = half(0, 1)\nhalf = mod(a, b) { out a xor b }")

	inst := circuit.Stmts[0].(*ast.Bind).Value.(*ast.Inst)
	require.NotNil(t, inst.Module)
	assert.Same(t, circuit.Stmts[1].(*ast.Bind).Mod, inst.Module)
}

func TestNestedCallBeforeDefinition(t *testing.T) {
	src := "f = mod(a) { y = g(a); out y }\ng = mod(a) { out a xor 1 }"
	circuit := mustTransform(t, src)

	f := circuit.Stmts[0].(*ast.Bind).Mod
	inst := f.Body[0].(*ast.Bind).Value.(*ast.Inst)
	require.NotNil(t, inst.Module)
	assert.Same(t, circuit.Stmts[1].(*ast.Bind).Mod, inst.Module)
}

func TestDuplicateRegRejected(t *testing.T) {
	_, err := transformSource(t, "A -> 0, A\nA -> 1, A")
	terr := requireCode(t, err, errors.ErrorDuplicateDefinition)
	assert.Contains(t, terr.Message, "A")
	assert.Equal(t, 2, terr.Position.Line)
}

func TestDuplicateAcrossStatementKinds(t *testing.T) {
	// Uniqueness spans statement kinds, not just same-kind collisions.
	_, err := transformSource(t, "A -> 0, 1\nA = 1")
	requireCode(t, err, errors.ErrorDuplicateDefinition)
}

func TestDuplicateParamRejected(t *testing.T) {
	_, err := transformSource(t, "f = mod(a, a) { out a }")
	requireCode(t, err, errors.ErrorDuplicateDefinition)
}

func TestModuleBodiesScopeLocally(t *testing.T) {
	// The same local name in two module bodies is not a collision.
	src := "f = mod(a, b) { axb = a xor b; out axb }\n" +
		"g = mod(a, b) { axb = a and b; out axb }"
	circuit := mustTransform(t, src)
	assert.Len(t, circuit.Stmts, 2)
}

func TestUnknownModule(t *testing.T) {
	_, err := transformSource(t, "x = foo(0, 1)")
	terr := requireCode(t, err, errors.ErrorUnknownModule)
	assert.Contains(t, terr.Message, "foo")
}

func TestCallToNonModule(t *testing.T) {
	// A name bound to a plain value is not callable.
	_, err := transformSource(t, "foo = 1\nx = foo(0)")
	requireCode(t, err, errors.ErrorUnknownModule)
}

func TestArityMismatch(t *testing.T) {
	_, err := transformSource(t, "half = mod(a, b) { out a xor b }\nx = half(0)")
	terr := requireCode(t, err, errors.ErrorArityMismatch)
	assert.Equal(t, `module "half" takes 2 arguments, got 1`, terr.Message)
}

func TestMissingOutput(t *testing.T) {
	_, err := transformSource(t, "m = mod(a) { assert a }")
	terr := requireCode(t, err, errors.ErrorMissingOutput)
	assert.Contains(t, terr.Message, "m")
}

func TestResOutsideContract(t *testing.T) {
	_, err := transformSource(t, "assert res")
	requireCode(t, err, errors.ErrorMisplacedRes)
}

func TestResInPrecondition(t *testing.T) {
	_, err := transformSource(t, "m = mod(a) [req res; ens res eq a] { out a }")
	requireCode(t, err, errors.ErrorMisplacedRes)
}

func TestResInPostcondition(t *testing.T) {
	circuit := mustTransform(t, "m = mod(a) [req a; ens res eq a] { out a }")
	contract := circuit.Stmts[0].(*ast.Bind).Mod.Contract
	assert.Equal(t, "res eq a", contract.Post.Cond.String())
}

func TestReferencesResolveToDefinition(t *testing.T) {
	circuit := mustTransform(t, "x = 1\nA -> 0, x")

	sym := circuit.Context.Lookup("x")
	require.NotNil(t, sym)
	assert.True(t, sym.Bound())
	next := circuit.Stmts[1].(*ast.Reg).Next
	assert.Same(t, sym, next, "later references share the defined symbol")

	def, ok := circuit.Context.Definition(sym).(*ast.Bind)
	require.True(t, ok)
	assert.Equal(t, "x", def.Name)
}

func TestFreeNamesStayUnbound(t *testing.T) {
	circuit := mustTransform(t, "A -> 0, A xor B")

	next := circuit.Stmts[0].(*ast.Reg).Next.(*ast.BinExpr)
	lhs := next.Lhs.(*ast.Symbol)
	rhs := next.Rhs.(*ast.Symbol)
	// The reg defines A only after its next expression is built, so a
	// self-reference is a free occurrence, like B.
	assert.False(t, lhs.Bound())
	assert.False(t, rhs.Bound())
	assert.Nil(t, circuit.Context.Lookup("B"))
}

func TestParamsResolveInBody(t *testing.T) {
	circuit := mustTransform(t, "f = mod(a, b) { out a xor b }")

	mod := circuit.Stmts[0].(*ast.Bind).Mod
	out := mod.Out.Value.(*ast.BinExpr)
	assert.Same(t, mod.Params[0], out.Lhs)
	assert.Same(t, mod.Params[1], out.Rhs)
}

func TestNotDesugarsToXor(t *testing.T) {
	circuit := mustTransform(t, "assert not a")

	not := circuit.Stmts[0].(*ast.Assert).Cond.(*ast.Not)
	desugared := not.Desugar()
	assert.Equal(t, "a xor 1", desugared.String())
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"A -> 0, A xor B",
		"A -> 1, mux A 0 1",
		"x = (1 and 0) or (x xor 1)",
		"assert a impl (b eq (c + 1))",
		"assume not (a - b)",
		"half = mod(a, b) { out a xor b }\ns = half(0, 1)\nA -> 0, s or A",
		"inc = mod(a) [req not a; ens res eq (a + 1)] { out a xor 1 }",
		"mod(a) { assert a; assume a eq 1 }",
		"f = mod(a) { g = mod(b) { out b and a }; out g(a) }",
	}
	for _, source := range sources {
		first := mustTransform(t, source)
		text := first.String()

		second := mustTransform(t, text)
		assert.True(t, ast.EqualCircuits(first, second), "round-trip changed %q", source)
		assert.Equal(t, text, second.String(), "serialization not stable for %q", source)
	}
}

func TestExampleDesigns(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.dv"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		source, err := os.ReadFile(path)
		require.NoError(t, err)

		tree, err := grammar.Parse(path, string(source))
		require.NoError(t, err, "example %s must parse", path)

		circuit, err := Transform(tree)
		require.NoError(t, err, "example %s must resolve", path)
		assert.NotEmpty(t, circuit.Stmts)

		reparsed := mustTransform(t, circuit.String())
		assert.True(t, ast.EqualCircuits(circuit, reparsed), "example %s must round-trip", path)
	}
}

func TestRejectsForeignTree(t *testing.T) {
	_, err := Transform(nil)
	requireCode(t, err, errors.ErrorMalformedTree)
}
