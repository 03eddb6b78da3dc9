package symbols

import (
	"errors"
	"testing"

	"github.com/funvibe/semcore/internal/typesystem"
)

func newTestTable(t *testing.T) (*Table, *typesystem.Table) {
	t.Helper()
	types := typesystem.NewTable()
	return NewTable(types), types
}

func TestPreludeBindsPrimitives(t *testing.T) {
	st, types := newTestTable(t)
	for _, p := range typesystem.AllPrimitives {
		id, ok := st.Find(st.Prelude(), p.String())
		if !ok {
			t.Fatalf("prelude missing %s", p)
		}
		b := st.Binding(id)
		if b.State != Resolved || b.Kind != TypeBinding || b.Type != types.Primitive(p) {
			t.Errorf("%s: got state=%s kind=%s type=%d", p, b.State, b.Kind, b.Type)
		}
	}
	if !st.Contains(st.Prelude(), "unit") {
		t.Errorf("prelude missing unit")
	}
}

func TestAddRejectsLocalDuplicate(t *testing.T) {
	st, _ := newTestTable(t)
	module := st.NewScope(st.Prelude(), ScopeModule)
	block := st.NewScope(module, ScopeBlock)

	first, ok := st.Declare(block, "v", nil)
	if !ok {
		t.Fatalf("first declaration rejected")
	}
	second, ok := st.Declare(block, "v", nil)
	if ok {
		t.Fatalf("second declaration of v in the same scope accepted")
	}
	if second != first {
		t.Errorf("duplicate should return the existing binding")
	}
	if st.Add(block, "v", st.NewBinding(Binding{Name: "v"})) {
		t.Errorf("Add accepted a duplicate name")
	}

	// Shadowing an outer scope is allowed.
	inner := st.NewScope(block, ScopeBlock)
	if _, ok := st.Declare(inner, "v", nil); !ok {
		t.Errorf("shadowing in a nested scope rejected")
	}
}

func TestFindWalksOutward(t *testing.T) {
	st, _ := newTestTable(t)
	module := st.NewScope(st.Prelude(), ScopeModule)
	params := st.NewScope(module, ScopeParam)
	body := st.NewScope(params, ScopeBlock)

	g, _ := st.Declare(module, "g", nil)
	p, _ := st.Declare(params, "p", nil)

	if id, scope, ok := st.FindWithScope(body, "g"); !ok || id != g || scope != module {
		t.Errorf("FindWithScope(g) = %d, %d, %v", id, scope, ok)
	}
	if id, ok := st.Find(body, "p"); !ok || id != p {
		t.Errorf("Find(p) = %d, %v", id, ok)
	}
	if _, ok := st.Find(body, "i32"); !ok {
		t.Errorf("lookup did not reach the prelude")
	}
	if st.Contains(module, "p") {
		t.Errorf("inner binding visible from outer scope")
	}
	if st.LocalContains(body, "g") {
		t.Errorf("LocalContains must not walk outward")
	}
	if _, ok := st.LocalFind(params, "p"); !ok {
		t.Errorf("LocalFind(p) failed")
	}
	if got := st.Scope(module).Children; len(got) != 1 || got[0] != params {
		t.Errorf("module children = %v", got)
	}
	if !st.IsWithin(body, module) || st.IsWithin(module, body) {
		t.Errorf("IsWithin wrong")
	}
}

func TestBindingsKeepDeclarationOrder(t *testing.T) {
	st, _ := newTestTable(t)
	scope := st.NewScope(st.Prelude(), ScopeMember)
	names := []string{"z", "a", "m"}
	for _, n := range names {
		st.Declare(scope, n, nil)
	}
	got := st.Bindings(scope)
	for i, id := range got {
		if st.Binding(id).Name != names[i] {
			t.Errorf("binding %d = %s, want %s", i, st.Binding(id).Name, names[i])
		}
	}
}

func TestStateMachine(t *testing.T) {
	st, types := newTestTable(t)
	scope := st.NewScope(st.Prelude(), ScopeModule)
	i32 := types.Primitive(typesystem.I32)

	t.Run("happy path", func(t *testing.T) {
		id, _ := st.Declare(scope, "x", nil)
		if err := st.Begin(id); err != nil {
			t.Fatalf("Begin: %v", err)
		}
		if err := st.Resolve(id, i32, ValueAddressing, VariableBinding); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		b := st.Binding(id)
		if b.State != Resolved || b.Type != i32 || b.Kind != VariableBinding {
			t.Errorf("binding = %+v", b)
		}
	})

	t.Run("resolve requires resolving", func(t *testing.T) {
		id, _ := st.Declare(scope, "y", nil)
		err := st.Resolve(id, i32, ValueAddressing, VariableBinding)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("resolve happens once", func(t *testing.T) {
		id, _ := st.Declare(scope, "w", nil)
		_ = st.Begin(id)
		_ = st.Resolve(id, i32, ValueAddressing, VariableBinding)
		if err := st.Resolve(id, types.Bool(), ValueAddressing, VariableBinding); err == nil {
			t.Errorf("second Resolve succeeded")
		}
		if st.Binding(id).Type != i32 {
			t.Errorf("second Resolve changed the type")
		}
	})

	t.Run("begin twice", func(t *testing.T) {
		id, _ := st.Declare(scope, "c", nil)
		_ = st.Begin(id)
		if err := st.Begin(id); err == nil {
			t.Errorf("Begin on a resolving binding succeeded")
		}
	})

	t.Run("invalidate", func(t *testing.T) {
		id, _ := st.Declare(scope, "bad", nil)
		_ = st.Begin(id)
		if err := st.Invalidate(id); err != nil {
			t.Fatalf("Invalidate: %v", err)
		}
		if st.Binding(id).State != Invalid {
			t.Errorf("state = %s", st.Binding(id).State)
		}
		if err := st.Invalidate(id); err == nil {
			t.Errorf("Invalidate on an invalid binding succeeded")
		}
	})

	t.Run("no type", func(t *testing.T) {
		id, _ := st.Declare(scope, "n", nil)
		_ = st.Begin(id)
		if err := st.Resolve(id, typesystem.NoType, ValueAddressing, VariableBinding); err == nil {
			t.Errorf("Resolve without a type succeeded")
		}
	})
}

func TestAddressingOf(t *testing.T) {
	types := typesystem.NewTable()
	i32 := types.Primitive(typesystem.I32)
	tests := []struct {
		name string
		typ  typesystem.TypeID
		want Addressing
	}{
		{"primitive", i32, ValueAddressing},
		{"tuple", types.Tuple(i32, i32), ValueAddressing},
		{"pointer", types.Pointer(i32), AddressAddressing},
		{"reference", types.Reference(i32), AddressAddressing},
		{"function", types.Function([]typesystem.TypeID{i32}, i32), AddressAddressing},
		{"mutable pointer", types.Mutable(types.Pointer(i32)), AddressAddressing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddressingOf(types, tt.typ); got != tt.want {
				t.Errorf("AddressingOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFieldIndex(t *testing.T) {
	b := &Binding{Fields: []Field{{Name: "x"}, {Name: "y"}}}
	if b.FieldIndex("y") != 1 || b.FieldIndex("z") != -1 {
		t.Errorf("FieldIndex wrong")
	}
}
