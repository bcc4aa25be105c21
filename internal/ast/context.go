package ast

// Context is the name-binding table threaded through a transform pass.
// It is append-only: entries are never removed or rolled back, because a
// pass either fully succeeds or aborts. Scopes nest; module bodies get a
// child scope over their parameters and local bindings, and the circuit
// exposes the root scope.
//
// The root scope owns an arena of defining statements; a bound symbol's
// Owner field indexes that arena, avoiding ownership cycles between
// symbols and statements.
type Context struct {
	parent  *Context
	arena   []Stmt
	symbols []*Symbol
	byName  map[string]*Symbol
	sigs    map[string]int
}

// NewContext creates an empty root context.
func NewContext() *Context {
	return &Context{
		byName: make(map[string]*Symbol),
		sigs:   make(map[string]int),
	}
}

// Child opens a nested scope. Lookups fall through to the parent;
// definitions and duplicate detection stay local.
func (c *Context) Child() *Context {
	child := NewContext()
	child.parent = c
	return child
}

func (c *Context) root() *Context {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Define binds name to the statement that introduces it, appending the
// statement to the arena. It reports false when the name already has a
// binding in this scope; the context is left unchanged in that case.
func (c *Context) Define(name string, stmt Stmt) (*Symbol, bool) {
	if _, dup := c.byName[name]; dup {
		return nil, false
	}
	r := c.root()
	r.arena = append(r.arena, stmt)
	sym := &Symbol{Name: name, Owner: len(r.arena) - 1}
	c.byName[name] = sym
	c.symbols = append(c.symbols, sym)
	return sym, true
}

// DefineParam binds a module parameter name. Parameters have no defining
// statement, so the symbol stays unbound.
func (c *Context) DefineParam(name string) (*Symbol, bool) {
	if _, dup := c.byName[name]; dup {
		return nil, false
	}
	sym := NewSymbol(name)
	c.byName[name] = sym
	c.symbols = append(c.symbols, sym)
	return sym, true
}

// Lookup returns the nearest binding for name, walking enclosing scopes,
// or nil when the name is free.
func (c *Context) Lookup(name string) *Symbol {
	for s := c; s != nil; s = s.parent {
		if sym, ok := s.byName[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal returns the binding for name in this scope only.
func (c *Context) LookupLocal(name string) *Symbol {
	return c.byName[name]
}

// DeclareModule records a syntactic module binding ahead of the walk that
// builds it, so calls may resolve before the definition is reached.
func (c *Context) DeclareModule(name string, arity int) {
	c.sigs[name] = arity
}

// ModuleArity returns the declared parameter count for a module name,
// walking enclosing scopes.
func (c *Context) ModuleArity(name string) (int, bool) {
	for s := c; s != nil; s = s.parent {
		if n, ok := s.sigs[name]; ok {
			return n, true
		}
	}
	return 0, false
}

// Definition returns the statement that introduced sym, or nil for
// unbound symbols.
func (c *Context) Definition(sym *Symbol) Stmt {
	if sym == nil || !sym.Bound() {
		return nil
	}
	r := c.root()
	if sym.Owner >= len(r.arena) {
		return nil
	}
	return r.arena[sym.Owner]
}

// IsModule reports whether sym is bound to a module definition.
func (c *Context) IsModule(sym *Symbol) bool {
	switch def := c.Definition(sym).(type) {
	case *Module:
		return true
	case *Bind:
		return def.Mod != nil
	default:
		return false
	}
}

// Symbols returns the symbols defined in this scope, in definition order.
func (c *Context) Symbols() []*Symbol {
	return c.symbols
}
