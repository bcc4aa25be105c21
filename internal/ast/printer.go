package ast

import (
	"fmt"
	"strings"
)

func (v Value) String() string {
	if v.bit == 1 {
		return "1"
	}
	return "0"
}

func (s *Symbol) String() string {
	return s.Name
}

// operand renders an expression in operand position, parenthesizing
// everything that is not an atom so the output re-parses unambiguously.
func operand(e Expr) string {
	switch e.(type) {
	case Value, *Symbol, *Inst:
		return e.String()
	default:
		return "(" + e.String() + ")"
	}
}

// termOperand is the arithmetic counterpart of operand.
func termOperand(a Arith) string {
	switch a.(type) {
	case Value, *Symbol, *Inst, Res:
		return a.String()
	default:
		return "(" + a.String() + ")"
	}
}

func (e *BinExpr) String() string {
	return fmt.Sprintf("%s %s %s", operand(e.Lhs), e.Op.Symbol(), operand(e.Rhs))
}

func (m *Mux) String() string {
	return fmt.Sprintf("mux %s %s %s", operand(m.Sel), operand(m.WhenTrue), operand(m.WhenFalse))
}

func (i *Inst) String() string {
	args := make([]string, len(i.Args))
	for n, a := range i.Args {
		args[n] = a.String()
	}
	return fmt.Sprintf("%s(%s)", i.Callee.Name, strings.Join(args, ", "))
}

func (a *BinArith) String() string {
	return fmt.Sprintf("%s %s %s", termOperand(a.Lhs), a.Op.Symbol(), termOperand(a.Rhs))
}

func (n *Not) String() string {
	return "not " + termOperand(n.Term)
}

func (Res) String() string {
	return "res"
}

func (r *Reg) String() string {
	return fmt.Sprintf("%s -> %s, %s", r.Name, r.Init.String(), r.Next.String())
}

func (b *Bind) String() string {
	if b.Mod != nil {
		return fmt.Sprintf("%s = %s", b.Name, b.Mod.String())
	}
	return fmt.Sprintf("%s = %s", b.Name, b.Value.String())
}

func (a *Assert) String() string {
	return "assert " + a.Cond.String()
}

func (a *Assume) String() string {
	return "assume " + a.Cond.String()
}

func (m *Module) String() string {
	var b strings.Builder
	b.WriteString("mod(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
	}
	b.WriteString(")")
	if m.Contract != nil {
		b.WriteString(" ")
		b.WriteString(m.Contract.String())
	}
	parts := make([]string, 0, len(m.Body)+1)
	for _, s := range m.Body {
		parts = append(parts, s.String())
	}
	if m.Out != nil {
		parts = append(parts, m.Out.String())
	}
	if len(parts) == 0 {
		b.WriteString(" { }")
	} else {
		b.WriteString(" { ")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(" }")
	}
	return b.String()
}

func (c *Contract) String() string {
	return fmt.Sprintf("[req %s; ens %s]", c.Pre.Cond.String(), c.Post.Cond.String())
}

func (p *PreCond) String() string {
	return "req " + p.Cond.String()
}

func (p *PostCond) String() string {
	return "ens " + p.Cond.String()
}

func (o *Out) String() string {
	return "out " + o.Value.String()
}

// String serializes the circuit one statement per line, in definition
// order. Re-parsing the output yields a structurally equal circuit.
func (c *Circuit) String() string {
	var b strings.Builder
	for _, s := range c.Stmts {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}
