package ast

// Structural equality over statement trees. Symbols compare by name, so
// two circuits built from independent passes compare equal when their
// observable statement sequences match, regardless of internal symbol
// identities.

// EqualCircuits compares the statement sequences of two circuits.
func EqualCircuits(a, b *Circuit) bool {
	if a == nil || b == nil {
		return a == b
	}
	return EqualStmts(a.Stmts, b.Stmts)
}

// EqualStmts compares two statement sequences element-wise.
func EqualStmts(a, b []Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualStmt(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualStmt compares two statements structurally.
func EqualStmt(a, b Stmt) bool {
	switch x := a.(type) {
	case *Reg:
		y, ok := b.(*Reg)
		return ok && x.Name == y.Name && x.Init == y.Init && EqualArith(x.Next, y.Next)
	case *Bind:
		y, ok := b.(*Bind)
		if !ok || x.Name != y.Name {
			return false
		}
		if (x.Mod == nil) != (y.Mod == nil) {
			return false
		}
		if x.Mod != nil {
			return equalModule(x.Mod, y.Mod)
		}
		return EqualArith(x.Value, y.Value)
	case *Assert:
		y, ok := b.(*Assert)
		return ok && EqualArith(x.Cond, y.Cond)
	case *Assume:
		y, ok := b.(*Assume)
		return ok && EqualArith(x.Cond, y.Cond)
	case *Module:
		y, ok := b.(*Module)
		return ok && equalModule(x, y)
	default:
		return false
	}
}

// EqualArith compares two arithmetic terms (and therefore also
// expressions) structurally.
func EqualArith(a, b Arith) bool {
	switch x := a.(type) {
	case Value:
		y, ok := b.(Value)
		return ok && x == y
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Equal(y)
	case *BinExpr:
		y, ok := b.(*BinExpr)
		return ok && x.Op == y.Op && EqualArith(x.Lhs, y.Lhs) && EqualArith(x.Rhs, y.Rhs)
	case *Mux:
		y, ok := b.(*Mux)
		return ok && EqualArith(x.Sel, y.Sel) &&
			EqualArith(x.WhenTrue, y.WhenTrue) && EqualArith(x.WhenFalse, y.WhenFalse)
	case *Inst:
		y, ok := b.(*Inst)
		if !ok || !x.Callee.Equal(y.Callee) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !EqualArith(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *BinArith:
		y, ok := b.(*BinArith)
		return ok && x.Op == y.Op && EqualArith(x.Lhs, y.Lhs) && EqualArith(x.Rhs, y.Rhs)
	case *Not:
		y, ok := b.(*Not)
		return ok && EqualArith(x.Term, y.Term)
	case Res:
		_, ok := b.(Res)
		return ok
	default:
		return false
	}
}

func equalModule(a, b *Module) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !a.Params[i].Equal(b.Params[i]) {
			return false
		}
	}
	if (a.Contract == nil) != (b.Contract == nil) {
		return false
	}
	if a.Contract != nil {
		if !EqualArith(a.Contract.Pre.Cond, b.Contract.Pre.Cond) ||
			!EqualArith(a.Contract.Post.Cond, b.Contract.Post.Cond) {
			return false
		}
	}
	if !EqualStmts(a.Body, b.Body) {
		return false
	}
	if (a.Out == nil) != (b.Out == nil) {
		return false
	}
	if a.Out != nil {
		return EqualArith(a.Out.Value, b.Out.Value)
	}
	return true
}
