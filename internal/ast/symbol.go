package ast

// Unbound marks a symbol with no defining statement: a forward reference,
// a module parameter, or a free name.
const Unbound = -1

// Symbol is a name paired with the index of its defining statement in the
// context's statement arena. References made after a definition share the
// defined symbol's identity; references made before it (or to free names)
// get a fresh unbound symbol. Two symbols are equal iff their names are
// equal, independent of what they are bound to.
type Symbol struct {
	Name  string
	Owner int
}

// NewSymbol creates a fresh unbound symbol.
func NewSymbol(name string) *Symbol {
	return &Symbol{Name: name, Owner: Unbound}
}

// Bound reports whether the symbol has a defining statement.
func (s *Symbol) Bound() bool {
	return s.Owner != Unbound
}

// Equal compares symbols by name only.
func (s *Symbol) Equal(o *Symbol) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Name == o.Name
}
