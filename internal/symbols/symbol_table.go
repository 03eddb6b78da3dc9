// symbols/symbol_table.go - Scope and binding arenas
//
// - symbol_table.go: Table, the arena owning every scope and binding
// - scope.go: Scope kinds, create/add/find operations
// - binding.go: Binding record and its resolution state machine

package symbols

import (
	"github.com/funvibe/semcore/internal/config"
	"github.com/funvibe/semcore/internal/typesystem"
)

// ScopeID and BindingID are arena handles. Zero is never a valid handle.
type ScopeID = typesystem.ScopeRef
type BindingID = typesystem.BindingRef

const (
	NoScope   ScopeID   = 0
	NoBinding BindingID = 0
)

// Table owns all scopes and bindings of one analysis. Nothing is freed before
// the table itself, so handles stay valid for the backend after analysis.
type Table struct {
	scopes   []Scope
	bindings []Binding
	prelude  ScopeID
}

// NewTable creates a table whose root Prelude scope binds the built-in type
// names to the primitive types of types.
func NewTable(types *typesystem.Table) *Table {
	t := &Table{
		scopes:   make([]Scope, 1, 16),
		bindings: make([]Binding, 1, 64),
	}
	t.prelude = t.NewScope(NoScope, ScopePrelude)
	for _, p := range typesystem.AllPrimitives {
		t.definePrelude(p.String(), types.Primitive(p))
	}
	t.definePrelude(config.UnitTypeName, types.Unit())
	return t
}

func (t *Table) definePrelude(name string, typ typesystem.TypeID) {
	id := t.NewBinding(Binding{Name: name})
	b := t.Binding(id)
	b.State = Resolved
	b.Type = typ
	b.Kind = TypeBinding
	t.Add(t.prelude, name, id)
}

// Prelude returns the root scope.
func (t *Table) Prelude() ScopeID { return t.prelude }

// ScopeCount and BindingCount report arena sizes.
func (t *Table) ScopeCount() int   { return len(t.scopes) - 1 }
func (t *Table) BindingCount() int { return len(t.bindings) - 1 }
