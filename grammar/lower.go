package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"dvrtl/internal/parsetree"
)

// Lowering from the typed parse into the labeled parse tree. Operator
// chains become left-associative nested nodes; parenthesized groups are
// unwrapped, so grouping survives only as tree structure. Expression and
// arithmetic operators lower to distinct labels (xor vs arith_xor), which
// keeps every label in 1:1 correspondence with one AST constructor.

func pos(p lexer.Position) parsetree.Position {
	return parsetree.Position{
		Filename: p.Filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

func identLeaf(name string, p lexer.Position) *parsetree.Node {
	return parsetree.Leaf("identifier", name, pos(p))
}

func bitLeaf(bit string, p lexer.Position) *parsetree.Node {
	if bit == "1" {
		return parsetree.Leaf("one", "1", pos(p))
	}
	return parsetree.Leaf("zero", "0", pos(p))
}

// Tree lowers the whole parse into the labeled parse tree, rooted at the
// start production.
func (c *Circuit) Tree() *parsetree.Node {
	children := make([]*parsetree.Node, len(c.Stmts))
	for i, s := range c.Stmts {
		children[i] = s.tree()
	}
	return parsetree.New("start", pos(c.Pos), children...)
}

func (s *Stmt) tree() *parsetree.Node {
	switch {
	case s.Reg != nil:
		r := s.Reg
		return parsetree.New("reg", pos(r.Pos),
			identLeaf(r.Name, r.Pos), bitLeaf(r.Init, r.Pos), r.Next.tree())
	case s.Bind != nil:
		b := s.Bind
		var value *parsetree.Node
		if b.Mod != nil {
			value = b.Mod.tree()
		} else {
			value = b.Value.tree()
		}
		return parsetree.New("bind", pos(b.Pos), identLeaf(b.Name, b.Pos), value)
	case s.Assert != nil:
		return parsetree.New("assert", pos(s.Assert.Pos), s.Assert.Cond.tree())
	case s.Assume != nil:
		return parsetree.New("assume", pos(s.Assume.Pos), s.Assume.Cond.tree())
	default:
		return s.Module.tree()
	}
}

func (m *Module) tree() *parsetree.Node {
	params := make([]*parsetree.Node, len(m.Params))
	for i, p := range m.Params {
		params[i] = identLeaf(p, m.Pos)
	}
	children := []*parsetree.Node{parsetree.New("params", pos(m.Pos), params...)}
	if m.Contract != nil {
		children = append(children, m.Contract.tree())
	}
	for _, s := range m.Body {
		children = append(children, s.tree())
	}
	if m.Out != nil {
		children = append(children, parsetree.New("out", pos(m.Out.Pos), m.Out.Value.tree()))
	}
	return parsetree.New("module", pos(m.Pos), children...)
}

func (c *Contract) tree() *parsetree.Node {
	return parsetree.New("contract", pos(c.Pos),
		parsetree.New("precond", pos(c.Pos), c.Req.tree()),
		parsetree.New("postcond", pos(c.Pos), c.Ens.tree()))
}

func binNode(label string, p lexer.Position, lhs, rhs *parsetree.Node) *parsetree.Node {
	return parsetree.New(label, pos(p), lhs, rhs)
}

func (e *Expr) tree() *parsetree.Node {
	node := e.Head.tree()
	for _, rhs := range e.Tail {
		node = binNode("or", rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (e *AndExpr) tree() *parsetree.Node {
	node := e.Head.tree()
	for _, rhs := range e.Tail {
		node = binNode("and", rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (e *XorExpr) tree() *parsetree.Node {
	node := e.Head.tree()
	for _, rhs := range e.Tail {
		node = binNode("xor", rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (p *PrimaryExpr) tree() *parsetree.Node {
	switch {
	case p.Bit != nil:
		return bitLeaf(*p.Bit, p.Pos)
	case p.Mux != nil:
		return p.Mux.tree()
	case p.Call != nil:
		return p.Call.tree()
	case p.Ident != nil:
		return identLeaf(*p.Ident, p.Pos)
	default:
		return p.Sub.tree()
	}
}

func (m *MuxExpr) tree() *parsetree.Node {
	return parsetree.New("mux", pos(m.Pos),
		m.Sel.tree(), m.WhenTrue.tree(), m.WhenFalse.tree())
}

func (c *Call) tree() *parsetree.Node {
	args := make([]*parsetree.Node, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.tree()
	}
	return parsetree.New("call", pos(c.Pos),
		identLeaf(c.Name, c.Pos), parsetree.New("args", pos(c.Pos), args...))
}

func (a *Arith) tree() *parsetree.Node {
	node := a.Head.tree()
	for _, rhs := range a.Tail {
		node = binNode("impl", rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (a *EqArith) tree() *parsetree.Node {
	node := a.Head.tree()
	for _, rhs := range a.Tail {
		node = binNode("eq", rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (a *AddArith) tree() *parsetree.Node {
	node := a.Head.tree()
	for _, rhs := range a.Tail {
		label := "add"
		if rhs.Op == "-" {
			label = "sub"
		}
		node = binNode(label, rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (a *OrArith) tree() *parsetree.Node {
	node := a.Head.tree()
	for _, rhs := range a.Tail {
		node = binNode("arith_or", rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (a *AndArith) tree() *parsetree.Node {
	node := a.Head.tree()
	for _, rhs := range a.Tail {
		node = binNode("arith_and", rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (a *XorArith) tree() *parsetree.Node {
	node := a.Head.tree()
	for _, rhs := range a.Tail {
		node = binNode("arith_xor", rhs.Pos, node, rhs.Term.tree())
	}
	return node
}

func (u *UnaryArith) tree() *parsetree.Node {
	if u.Not != nil {
		return parsetree.New("not", pos(u.Pos), u.Not.tree())
	}
	return u.Prim.tree()
}

func (p *PrimaryArith) tree() *parsetree.Node {
	switch {
	case p.Res:
		return parsetree.New("res", pos(p.Pos))
	case p.Bit != nil:
		return bitLeaf(*p.Bit, p.Pos)
	case p.Mux != nil:
		return p.Mux.tree()
	case p.Call != nil:
		return p.Call.tree()
	case p.Ident != nil:
		return identLeaf(*p.Ident, p.Pos)
	default:
		return p.Sub.tree()
	}
}
