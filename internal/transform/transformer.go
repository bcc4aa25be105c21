// Package transform drives the single post-order walk that turns a
// labeled parse tree into a resolved Circuit. Name binding is threaded
// through an ast.Context owned by the pass; statement processing is
// strictly ordered, never concurrent, because binding order determines
// what later lookups can see. A pass either fully succeeds or aborts with
// the first error; no partial circuit is ever exposed.
package transform

import (
	"dvrtl/internal/ast"
	"dvrtl/internal/errors"
	"dvrtl/internal/parsetree"
)

// Transformer holds the state of one transform pass. A Transformer must
// not be reused across passes; independent passes each own an
// independent context and may run concurrently with each other.
type Transformer struct {
	ctx     *ast.Context
	pending []pendingInst
}

// pendingInst is a module call waiting for its definition back-pointer.
// Existence and arity are checked when the call is transformed; the
// Module pointer can only be linked once every statement exists, which is
// what allows calls to precede their callee's definition in the text.
type pendingInst struct {
	inst  *ast.Inst
	scope *ast.Context
	name  string
	pos   parsetree.Position
}

// New creates a transformer for a single pass.
func New() *Transformer {
	return &Transformer{}
}

// Transform runs a complete pass over a parse tree rooted at the start
// production and returns the resolved circuit.
func Transform(root *parsetree.Node) (*ast.Circuit, error) {
	return New().Transform(root)
}

// Transform converts the parse tree into a Circuit, resolving every name
// and enforcing binding uniqueness and call arity.
func (t *Transformer) Transform(root *parsetree.Node) (*ast.Circuit, error) {
	if root == nil || root.Label != "start" {
		return nil, errors.MalformedTree("start", "missing start production", parsetree.Position{})
	}
	t.ctx = ast.NewContext()
	t.pending = nil

	t.declareModules(root.Children, t.ctx)

	stmts := make([]ast.Stmt, 0, len(root.Children))
	for _, child := range root.Children {
		stmt, err := t.stmt(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := t.link(); err != nil {
		return nil, err
	}
	return &ast.Circuit{Stmts: stmts, Context: t.ctx}, nil
}

// declareModules pre-scans the immediate statements of a scope and
// records every syntactic module binding with its parameter count. This
// is what lets a call resolve a module defined later in the text.
func (t *Transformer) declareModules(stmts []*parsetree.Node, scope *ast.Context) {
	for _, n := range stmts {
		if n.Label != "bind" {
			continue
		}
		value := n.Child(1)
		if value == nil || value.Label != "module" {
			continue
		}
		name := n.Child(0)
		params := value.Child(0)
		if name == nil || params == nil || params.Label != "params" {
			continue
		}
		scope.DeclareModule(name.Token, len(params.Children))
	}
}

func (t *Transformer) stmt(n *parsetree.Node) (ast.Stmt, error) {
	switch n.Label {
	case "reg":
		return t.reg(n)
	case "bind":
		return t.bind(n)
	case "assert":
		cond, err := t.cond(n, "an assertion")
		if err != nil {
			return nil, err
		}
		return &ast.Assert{Cond: cond}, nil
	case "assume":
		cond, err := t.cond(n, "an assumption")
		if err != nil {
			return nil, err
		}
		return &ast.Assume{Cond: cond}, nil
	case "module":
		// Anonymous module statement; only this form may omit out.
		mod, err := t.module(n, "")
		if err != nil {
			return nil, err
		}
		return mod, nil
	default:
		return nil, errors.MalformedTree(n.Label, "expected a statement", n.Pos)
	}
}

func (t *Transformer) reg(n *parsetree.Node) (ast.Stmt, error) {
	name := n.Child(0)
	if len(n.Children) != 3 || name.Label != "identifier" {
		return nil, errors.MalformedTree("reg", "want identifier, init value and next expression", n.Pos)
	}
	init, err := t.value(n.Child(1))
	if err != nil {
		return nil, err
	}
	next, err := t.expr(n.Child(2))
	if err != nil {
		return nil, err
	}
	reg := &ast.Reg{Name: name.Token, Init: init, Next: next}
	if _, ok := t.ctx.Define(reg.Name, reg); !ok {
		return nil, errors.DuplicateDefinition(reg.Name, name.Pos)
	}
	return reg, nil
}

func (t *Transformer) bind(n *parsetree.Node) (ast.Stmt, error) {
	name := n.Child(0)
	value := n.Child(1)
	if len(n.Children) != 2 || name.Label != "identifier" {
		return nil, errors.MalformedTree("bind", "want identifier and bound value", n.Pos)
	}
	var bind *ast.Bind
	if value.Label == "module" {
		mod, err := t.module(value, name.Token)
		if err != nil {
			return nil, err
		}
		bind = &ast.Bind{Name: name.Token, Mod: mod}
	} else {
		expr, err := t.expr(value)
		if err != nil {
			return nil, err
		}
		bind = &ast.Bind{Name: name.Token, Value: expr}
	}
	if _, ok := t.ctx.Define(bind.Name, bind); !ok {
		return nil, errors.DuplicateDefinition(bind.Name, name.Pos)
	}
	return bind, nil
}

// module transforms a module production. The contract clause is optional,
// so the child after the parameter list is disambiguated structurally: a
// contract node is consumed as the contract, anything else is the first
// body statement. The same applies at the tail for the out clause. name
// is the binding the module is attached to, or empty for an anonymous
// module statement.
func (t *Transformer) module(n *parsetree.Node, name string) (*ast.Module, error) {
	params := n.Child(0)
	if params == nil || params.Label != "params" {
		return nil, errors.MalformedTree("module", "missing parameter list", n.Pos)
	}

	parent := t.ctx
	t.ctx = parent.Child()
	defer func() { t.ctx = parent }()

	paramSyms := make([]*ast.Symbol, 0, len(params.Children))
	for _, p := range params.Children {
		if p.Label != "identifier" {
			return nil, errors.MalformedTree("params", "want identifier", p.Pos)
		}
		sym, ok := t.ctx.DefineParam(p.Token)
		if !ok {
			return nil, errors.DuplicateDefinition(p.Token, p.Pos)
		}
		paramSyms = append(paramSyms, sym)
	}

	rest := n.Children[1:]
	var contract *ast.Contract
	if len(rest) > 0 && rest[0].Label == "contract" {
		c, err := t.contract(rest[0])
		if err != nil {
			return nil, err
		}
		contract = c
		rest = rest[1:]
	}

	var outNode *parsetree.Node
	if len(rest) > 0 && rest[len(rest)-1].Label == "out" {
		outNode = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}

	t.declareModules(rest, t.ctx)

	body := make([]ast.Stmt, 0, len(rest))
	for _, child := range rest {
		stmt, err := t.stmt(child)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	// The out expression sees the full body, so it is transformed last.
	var out *ast.Out
	if outNode != nil {
		value, err := t.expr(outNode.Child(0))
		if err != nil {
			return nil, err
		}
		out = &ast.Out{Value: value}
	}

	if out == nil && name != "" {
		return nil, errors.MissingOutput(name, n.Pos)
	}
	return &ast.Module{Params: paramSyms, Contract: contract, Body: body, Out: out}, nil
}

func (t *Transformer) contract(n *parsetree.Node) (*ast.Contract, error) {
	pre := n.Child(0)
	post := n.Child(1)
	if len(n.Children) != 2 || pre.Label != "precond" || post.Label != "postcond" {
		return nil, errors.MalformedTree("contract", "want precondition and postcondition", n.Pos)
	}
	preCond, err := t.cond(pre, "a precondition")
	if err != nil {
		return nil, err
	}
	postCond, err := t.arith(post.Child(0))
	if err != nil {
		return nil, err
	}
	return &ast.Contract{
		Pre:  &ast.PreCond{Cond: preCond},
		Post: &ast.PostCond{Cond: postCond},
	}, nil
}

// cond transforms the single condition child of a production in which
// res is not allowed to appear.
func (t *Transformer) cond(n *parsetree.Node, where string) (ast.Arith, error) {
	child := n.Child(0)
	if len(n.Children) != 1 {
		return nil, errors.MalformedTree(n.Label, "want a single condition", n.Pos)
	}
	cond, err := t.arith(child)
	if err != nil {
		return nil, err
	}
	if containsRes(cond) {
		return nil, errors.MisplacedRes(where, child.Pos)
	}
	return cond, nil
}

func (t *Transformer) value(n *parsetree.Node) (ast.Value, error) {
	switch n.Label {
	case "zero":
		return ast.Zero(), nil
	case "one":
		return ast.One(), nil
	default:
		return ast.Value{}, errors.MalformedTree(n.Label, "expected a bit value", n.Pos)
	}
}

func (t *Transformer) expr(n *parsetree.Node) (ast.Expr, error) {
	switch n.Label {
	case "zero":
		return ast.Zero(), nil
	case "one":
		return ast.One(), nil
	case "identifier":
		return t.reference(n.Token), nil
	case "xor", "and", "or":
		lhs, err := t.expr(n.Child(0))
		if err != nil {
			return nil, err
		}
		rhs, err := t.expr(n.Child(1))
		if err != nil {
			return nil, err
		}
		return ast.NewBinExpr(exprOp(n.Label), lhs, rhs), nil
	case "mux":
		if len(n.Children) != 3 {
			return nil, errors.MalformedTree("mux", "want selector and two branches", n.Pos)
		}
		sel, err := t.expr(n.Child(0))
		if err != nil {
			return nil, err
		}
		whenTrue, err := t.expr(n.Child(1))
		if err != nil {
			return nil, err
		}
		whenFalse, err := t.expr(n.Child(2))
		if err != nil {
			return nil, err
		}
		return &ast.Mux{Sel: sel, WhenTrue: whenTrue, WhenFalse: whenFalse}, nil
	case "call":
		return t.call(n)
	default:
		return nil, errors.MalformedTree(n.Label, "expected an expression", n.Pos)
	}
}

// reference resolves an identifier against the context. References made
// after a definition share the defined symbol; anything else gets a
// fresh unbound symbol, which is how forward references and free names
// are represented.
func (t *Transformer) reference(name string) *ast.Symbol {
	if sym := t.ctx.Lookup(name); sym != nil {
		return sym
	}
	return ast.NewSymbol(name)
}

func (t *Transformer) call(n *parsetree.Node) (ast.Expr, error) {
	callee := n.Child(0)
	argsNode := n.Child(1)
	if len(n.Children) != 2 || callee.Label != "identifier" || argsNode.Label != "args" {
		return nil, errors.MalformedTree("call", "want callee and argument list", n.Pos)
	}
	name := callee.Token

	arity, ok := t.ctx.ModuleArity(name)
	if !ok {
		return nil, errors.UnknownModule(name, callee.Pos)
	}
	args := make([]ast.Expr, 0, len(argsNode.Children))
	for _, a := range argsNode.Children {
		arg, err := t.expr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) != arity {
		return nil, errors.ArityMismatch(name, arity, len(args), n.Pos)
	}

	inst := &ast.Inst{Callee: t.reference(name), Args: args}
	t.pending = append(t.pending, pendingInst{inst: inst, scope: t.ctx, name: name, pos: n.Pos})
	return inst, nil
}

func (t *Transformer) arith(n *parsetree.Node) (ast.Arith, error) {
	switch n.Label {
	case "impl", "add", "sub", "eq", "arith_xor", "arith_and", "arith_or":
		lhs, err := t.arith(n.Child(0))
		if err != nil {
			return nil, err
		}
		rhs, err := t.arith(n.Child(1))
		if err != nil {
			return nil, err
		}
		return ast.NewBinArith(arithOp(n.Label), lhs, rhs), nil
	case "not":
		term, err := t.arith(n.Child(0))
		if err != nil {
			return nil, err
		}
		return &ast.Not{Term: term}, nil
	case "res":
		return ast.Res{}, nil
	default:
		return t.expr(n)
	}
}

// link fills in the module back-pointer of every instantiation once all
// statements exist. Existence and arity were already checked against the
// declared signatures, so a failure here means the grammar let through a
// shape the pre-scan could not see.
func (t *Transformer) link() error {
	for _, p := range t.pending {
		sym := p.scope.Lookup(p.name)
		if sym == nil || !p.scope.IsModule(sym) {
			return errors.UnknownModule(p.name, p.pos)
		}
		switch def := p.scope.Definition(sym).(type) {
		case *ast.Bind:
			p.inst.Module = def.Mod
		case *ast.Module:
			p.inst.Module = def
		}
	}
	return nil
}

func exprOp(label string) ast.Op {
	switch label {
	case "xor":
		return ast.OpXor
	case "and":
		return ast.OpAnd
	default:
		return ast.OpOr
	}
}

func arithOp(label string) ast.Op {
	switch label {
	case "impl":
		return ast.OpImpl
	case "add":
		return ast.OpAdd
	case "sub":
		return ast.OpSub
	case "eq":
		return ast.OpEq
	case "arith_xor":
		return ast.OpXor
	case "arith_and":
		return ast.OpAnd
	default:
		return ast.OpOr
	}
}

// containsRes walks a term for res occurrences. Synthesizable
// sub-expressions cannot contain res, so only arithmetic shapes recurse.
func containsRes(a ast.Arith) bool {
	switch x := a.(type) {
	case ast.Res:
		return true
	case *ast.BinArith:
		return containsRes(x.Lhs) || containsRes(x.Rhs)
	case *ast.Not:
		return containsRes(x.Term)
	default:
		return false
	}
}
