package symbols

type ScopeKind uint8

const (
	ScopePrelude ScopeKind = iota // Built-in type names
	ScopeModule                   // User code top-level
	ScopeVariant                  // Members of a variant declaration
	ScopeType
	ScopeBlock
	ScopeParam  // Function parameters
	ScopeMember // Struct and class fields, class methods
)

func (k ScopeKind) String() string {
	switch k {
	case ScopePrelude:
		return "prelude"
	case ScopeModule:
		return "module"
	case ScopeVariant:
		return "variant"
	case ScopeType:
		return "type"
	case ScopeBlock:
		return "block"
	case ScopeParam:
		return "param"
	case ScopeMember:
		return "member"
	default:
		return "unknown"
	}
}

// Scope is one node of the lexical environment tree.
// A name appears at most once among a scope's own bindings.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Children []ScopeID

	bindings map[string]BindingID
	order    []BindingID
}

// NewScope creates a child of parent. Pass NoScope for a root.
func (t *Table) NewScope(parent ScopeID, kind ScopeKind) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{
		Kind:     kind,
		Parent:   parent,
		bindings: make(map[string]BindingID),
	})
	if parent != NoScope {
		p := &t.scopes[parent]
		p.Children = append(p.Children, id)
	}
	return id
}

// Scope returns the scope for id, or nil for an invalid handle.
func (t *Table) Scope(id ScopeID) *Scope {
	if id == NoScope || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Add binds name in scope. It returns false, leaving the scope unchanged,
// when scope already binds name itself. Outer scopes are not consulted.
func (t *Table) Add(scope ScopeID, name string, binding BindingID) bool {
	s := t.Scope(scope)
	if s == nil {
		return false
	}
	if _, exists := s.bindings[name]; exists {
		return false
	}
	s.bindings[name] = binding
	s.order = append(s.order, binding)
	if b := t.Binding(binding); b != nil && b.Scope == NoScope {
		b.Scope = scope
	}
	return true
}

// FindWithScope walks from scope to the root and returns the binding and the scope where it was found.
func (t *Table) FindWithScope(scope ScopeID, name string) (BindingID, ScopeID, bool) {
	for id := scope; id != NoScope; {
		s := t.Scope(id)
		if s == nil {
			break
		}
		if b, ok := s.bindings[name]; ok {
			return b, id, true
		}
		id = s.Parent
	}
	return NoBinding, NoScope, false
}

func (t *Table) Find(scope ScopeID, name string) (BindingID, bool) {
	b, _, ok := t.FindWithScope(scope, name)
	return b, ok
}

func (t *Table) Contains(scope ScopeID, name string) bool {
	_, ok := t.Find(scope, name)
	return ok
}

// LocalFind looks only at scope's own bindings.
func (t *Table) LocalFind(scope ScopeID, name string) (BindingID, bool) {
	s := t.Scope(scope)
	if s == nil {
		return NoBinding, false
	}
	b, ok := s.bindings[name]
	return b, ok
}

func (t *Table) LocalContains(scope ScopeID, name string) bool {
	_, ok := t.LocalFind(scope, name)
	return ok
}

// Bindings returns scope's own bindings in the order they were added.
func (t *Table) Bindings(scope ScopeID) []BindingID {
	s := t.Scope(scope)
	if s == nil {
		return nil
	}
	return s.order
}

// IsWithin reports whether scope is inner or equal to outer.
func (t *Table) IsWithin(scope, outer ScopeID) bool {
	for id := scope; id != NoScope; id = t.scopes[id].Parent {
		if id == outer {
			return true
		}
	}
	return false
}
