package symbols

import (
	"errors"
	"fmt"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/typesystem"
	"github.com/funvibe/semcore/internal/value"
)

// State is the resolution state of a binding.
//
//	Unresolved -> Resolving -> Resolved
//	                        -> Invalid
type State uint8

const (
	Unresolved State = iota
	Resolving
	Resolved
	Invalid
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Addressing tells the backend whether a name denotes an immediate value or a storage location.
type Addressing uint8

const (
	ValueAddressing Addressing = iota
	AddressAddressing
)

func (a Addressing) String() string {
	if a == AddressAddressing {
		return "address"
	}
	return "value"
}

// AddressingOf derives addressing from a resolved type.
func AddressingOf(types *typesystem.Table, t typesystem.TypeID) Addressing {
	if types.IsAddress(t) {
		return AddressAddressing
	}
	return ValueAddressing
}

type BindingKind uint8

const (
	UnknownBinding BindingKind = iota
	VariableBinding
	FunctionBinding
	TypeBinding // struct, class, variant and built-in type names
	CaseBinding // a member of a variant
)

func (k BindingKind) String() string {
	switch k {
	case VariableBinding:
		return "variable"
	case FunctionBinding:
		return "function"
	case TypeBinding:
		return "type"
	case CaseBinding:
		return "case"
	default:
		return "unknown"
	}
}

// IsValue reports kinds usable in expression position.
func (k BindingKind) IsValue() bool {
	return k == VariableBinding || k == FunctionBinding
}

// Field is one entry of a struct's member list or a function's parameter list.
type Field struct {
	Type    typesystem.TypeID
	Name    string
	Default ast.Expr // Optional
	Binding BindingID
}

// Binding is the per-name record produced by name resolution.
type Binding struct {
	Name  string
	Decl  ast.Decl // nil for prelude names
	State State

	// Set by Resolve.
	Type       typesystem.TypeID
	Addressing Addressing
	Kind       BindingKind

	Scope       ScopeID // declared in
	MemberScope ScopeID // member scope of a struct/class/variant, param scope of a function
	Fields      []Field

	// Constant holds the folded initializer of an immutable global.
	Constant *value.Value
}

// ErrInvalidTransition is returned when a state change is not allowed from the current state.
var ErrInvalidTransition = errors.New("invalid binding state transition")

// NewBinding stores b in the arena. The stored binding starts Unresolved
// unless b already carries a later state.
func (t *Table) NewBinding(b Binding) BindingID {
	id := BindingID(len(t.bindings))
	t.bindings = append(t.bindings, b)
	return id
}

// Declare creates an Unresolved binding for decl and adds it to scope.
// On a duplicate name it returns the existing binding and false.
func (t *Table) Declare(scope ScopeID, name string, decl ast.Decl) (BindingID, bool) {
	if existing, ok := t.LocalFind(scope, name); ok {
		return existing, false
	}
	id := t.NewBinding(Binding{Name: name, Decl: decl})
	t.Add(scope, name, id)
	return id, true
}

// Binding returns the record for id, or nil for an invalid handle.
func (t *Table) Binding(id BindingID) *Binding {
	if id == NoBinding || int(id) >= len(t.bindings) {
		return nil
	}
	return &t.bindings[id]
}

// Begin moves a binding from Unresolved to Resolving.
func (t *Table) Begin(id BindingID) error {
	return t.transition(id, Unresolved, Resolving)
}

// Resolve moves a binding from Resolving to Resolved, setting its type,
// addressing and kind together.
func (t *Table) Resolve(id BindingID, typ typesystem.TypeID, addressing Addressing, kind BindingKind) error {
	if !typ.IsValid() {
		return fmt.Errorf("%w: resolving %q without a type", ErrInvalidTransition, t.nameOf(id))
	}
	if err := t.transition(id, Resolving, Resolved); err != nil {
		return err
	}
	b := &t.bindings[id]
	b.Type = typ
	b.Addressing = addressing
	b.Kind = kind
	return nil
}

// Invalidate marks a binding that could not be typed. Allowed from Unresolved and Resolving.
func (t *Table) Invalidate(id BindingID) error {
	b := t.Binding(id)
	if b == nil {
		return fmt.Errorf("%w: no binding %d", ErrInvalidTransition, id)
	}
	if b.State == Resolved || b.State == Invalid {
		return fmt.Errorf("%w: %q %s -> %s", ErrInvalidTransition, b.Name, b.State, Invalid)
	}
	b.State = Invalid
	return nil
}

func (t *Table) transition(id BindingID, from, to State) error {
	b := t.Binding(id)
	if b == nil {
		return fmt.Errorf("%w: no binding %d", ErrInvalidTransition, id)
	}
	if b.State != from {
		return fmt.Errorf("%w: %q %s -> %s", ErrInvalidTransition, b.Name, b.State, to)
	}
	b.State = to
	return nil
}

func (t *Table) nameOf(id BindingID) string {
	if b := t.Binding(id); b != nil {
		return b.Name
	}
	return ""
}

// FieldIndex returns the position of name in b's field list, or -1.
func (b *Binding) FieldIndex(name string) int {
	for i, f := range b.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
