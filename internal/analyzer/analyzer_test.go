package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/astyaml"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
)

// analyzeYAML decodes a YAML module and analyzes it with fresh tables.
func analyzeYAML(t *testing.T, src string, strict bool) (*Analyzer, *ast.Module, []*diagnostics.DiagnosticError) {
	t.Helper()
	mod, err := astyaml.DecodeString(src, "test.yaml")
	if err != nil {
		t.Fatalf("decoding fixture: %v\ninput: %s", err, src)
	}
	types := typesystem.NewTable()
	a := New(types, symbols.NewTable(types))
	a.SetStrict(strict)
	errs := a.AnalyzeModule(mod)
	return a, mod, errs
}

func formatErrors(errs []*diagnostics.DiagnosticError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// expectAnalyzerError asserts that at least one error with the given code is produced.
func expectAnalyzerError(t *testing.T, src string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	_, _, errs := analyzeYAML(t, src, false)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, src)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, formatErrors(errs), src)
	return nil
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, src string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectAnalyzerError(t, src, code)
	if !strings.Contains(e.Message, substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Error())
	}
}

// expectNoAnalyzerErrors asserts that analysis produces no errors.
func expectNoAnalyzerErrors(t *testing.T, src string) (*Analyzer, *ast.Module) {
	t.Helper()
	a, mod, errs := analyzeYAML(t, src, false)
	if len(errs) > 0 {
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", formatErrors(errs), src)
	}
	return a, mod
}

// global returns the module binding called name.
func global(t *testing.T, a *Analyzer, name string) *symbols.Binding {
	t.Helper()
	id, ok := a.Symbols().LocalFind(a.ModuleScope(), name)
	if !ok {
		t.Fatalf("no module binding %q", name)
	}
	return a.Symbols().Binding(id)
}

func (a *Analyzer) prim(k typesystem.PrimitiveKind) typesystem.TypeID { return a.types.Primitive(k) }

func TestAnalyze_EmptyModule(t *testing.T) {
	a, _ := expectNoAnalyzerErrors(t, "decls: []")
	if a.ModuleScope() == symbols.NoScope {
		t.Fatal("module scope was not created")
	}
	if len(a.Symbols().Bindings(a.ModuleScope())) != 0 {
		t.Error("empty module should declare nothing")
	}
}

func TestAnalyze_GlobalFolding(t *testing.T) {
	src := `[{kind: global, name: x, type: i32, value: {kind: binary, op: "+", left: 1, right: 2}}]`
	a, mod := expectNoAnalyzerErrors(t, src)

	x := global(t, a, "x")
	if x.State != symbols.Resolved {
		t.Fatalf("x state = %s, want Resolved", x.State)
	}
	if x.Type != a.prim(typesystem.I32) {
		t.Errorf("x type = %s, want i32", a.typeName(x.Type))
	}
	if x.Constant == nil || x.Constant.Int() != 3 {
		t.Fatalf("x constant = %v, want 3", x.Constant)
	}

	init := mod.Decls[0].(*ast.GlobalDecl).Value
	ann := init.Annotation()
	if ann.Type != a.prim(typesystem.I32) || !ann.IsConstant() || ann.Constant.Int() != 3 {
		t.Errorf("initializer annotation = %+v, want i32 constant 3", ann)
	}
}

func TestAnalyze_FoldingWrapsToWidth(t *testing.T) {
	src := `
- kind: global
  name: x
  value: {kind: binary, op: "+", left: {kind: int, value: 250, suffix: u8}, right: {kind: int, value: 10, suffix: u8}}
`
	a, _ := expectNoAnalyzerErrors(t, src)
	x := global(t, a, "x")
	if x.Type != a.prim(typesystem.U8) {
		t.Errorf("x type = %s, want u8", a.typeName(x.Type))
	}
	if x.Constant == nil || x.Constant.Uint() != 4 {
		t.Errorf("x constant = %v, want 4", x.Constant)
	}
}

func TestAnalyze_ConstantGlobalsFoldThroughReferences(t *testing.T) {
	src := `
- {kind: global, name: b, value: {kind: binary, op: "*", left: a, right: 4}}
- {kind: global, name: a, value: {kind: binary, op: "-", left: 10, right: 3}}
- {kind: global, name: m, type: mut i32, value: 5}
- {kind: global, name: n, value: {kind: binary, op: "+", left: m, right: 1}}
`
	a, _ := expectNoAnalyzerErrors(t, src)
	if b := global(t, a, "b"); b.Constant == nil || b.Constant.Int() != 28 {
		t.Errorf("b constant = %v, want 28", b.Constant)
	}
	m := global(t, a, "m")
	if m.Constant != nil {
		t.Errorf("mutable global must not be a constant, got %v", m.Constant)
	}
	if !a.types.IsMutable(m.Type) {
		t.Errorf("m type = %s, want mut i32", a.typeName(m.Type))
	}
	if n := global(t, a, "n"); n.Constant != nil {
		t.Errorf("n reads a mutable global and must not fold, got %v", n.Constant)
	}
}

func TestAnalyze_ForwardReference(t *testing.T) {
	src := `
- {kind: global, name: y, value: x}
- {kind: global, name: x, type: i64, value: {kind: int, value: 7, suffix: i64}}
`
	a, mod := expectNoAnalyzerErrors(t, src)
	y := global(t, a, "y")
	if y.Type != a.prim(typesystem.I64) {
		t.Errorf("y type = %s, want i64", a.typeName(y.Type))
	}
	if y.Constant == nil || y.Constant.Int() != 7 {
		t.Errorf("y constant = %v, want 7", y.Constant)
	}
	ref := mod.Decls[0].(*ast.GlobalDecl).Value.(*ast.Identifier)
	if ref.Type != a.prim(typesystem.I64) {
		t.Errorf("identifier annotation = %s, want i64", a.typeName(ref.Type))
	}
}

func TestAnalyze_CyclicGlobals(t *testing.T) {
	src := `
- {kind: global, name: a, value: b}
- {kind: global, name: b, value: a}
`
	a, _, errs := analyzeYAML(t, src, false)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got:\n%s", formatErrors(errs))
	}
	if errs[0].Code != diagnostics.ErrCyclicReference {
		t.Errorf("code = %s, want %s", errs[0].Code, diagnostics.ErrCyclicReference)
	}
	if !strings.Contains(errs[0].Message, "'a'") {
		t.Errorf("cycle should be reported at the reference to a, got %s", errs[0].Message)
	}
	for _, name := range []string{"a", "b"} {
		if st := global(t, a, name).State; st != symbols.Invalid {
			t.Errorf("%s state = %s, want Invalid", name, st)
		}
	}
}

func TestAnalyze_SelfReferenceIsCyclic(t *testing.T) {
	expectAnalyzerError(t, `[{kind: global, name: x, value: x}]`, diagnostics.ErrCyclicReference)
}

func TestAnalyze_LocalSelfReferenceIsCyclic(t *testing.T) {
	src := `
- {kind: global, name: x, value: 1}
- kind: fn
  name: f
  body: [{kind: let, name: x, value: x}]
`
	expectAnalyzerError(t, src, diagnostics.ErrCyclicReference)
}

func TestAnalyze_InvalidBindingDoesNotCascade(t *testing.T) {
	src := `
- {kind: global, name: a, value: missing}
- {kind: global, name: b, value: a}
- {kind: global, name: c, value: b}
`
	_, _, errs := analyzeYAML(t, src, false)
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrUnresolvedName {
		t.Fatalf("expected a single UnresolvedName, got:\n%s", formatErrors(errs))
	}
}

func TestAnalyze_Redeclaration(t *testing.T) {
	t.Run("module", func(t *testing.T) {
		src := `
- {kind: global, name: x, value: 1}
- {kind: fn, name: x}
`
		expectAnalyzerErrorContains(t, src, diagnostics.ErrDuplicateDeclaration, "'x'")
	})
	t.Run("block", func(t *testing.T) {
		src := `
- kind: fn
  name: f
  body: [{kind: let, name: v, value: 1}, {kind: let, name: v, value: 2}]
`
		expectAnalyzerError(t, src, diagnostics.ErrDuplicateDeclaration)
	})
	t.Run("parameter", func(t *testing.T) {
		src := `[{kind: fn, name: f, params: [{name: p, type: i32}, {name: p, type: bool}]}]`
		expectAnalyzerError(t, src, diagnostics.ErrDuplicateDeclaration)
	})
	t.Run("field", func(t *testing.T) {
		src := `[{kind: struct, name: S, fields: [{name: a, type: i32}, {name: a, type: i32}]}]`
		expectAnalyzerError(t, src, diagnostics.ErrDuplicateDeclaration)
	})
	t.Run("variant member", func(t *testing.T) {
		expectAnalyzerError(t, `[{kind: variant, name: V, members: [A, A]}]`, diagnostics.ErrDuplicateDeclaration)
	})
	t.Run("shadowing in a nested block is allowed", func(t *testing.T) {
		src := `
- kind: fn
  name: f
  body:
    - {kind: let, name: v, value: 1}
    - [{kind: let, name: v, value: true}]
`
		expectNoAnalyzerErrors(t, src)
	})
}

func TestAnalyze_GlobalNeedsTypeOrValue(t *testing.T) {
	expectAnalyzerError(t, `[{kind: global, name: x}]`, diagnostics.ErrInvalidDeclaration)
}

func TestAnalyze_GlobalAnnotationMismatch(t *testing.T) {
	// Unsuffixed literals are i32 and are not coerced to the annotation.
	expectAnalyzerErrorContains(t, `[{kind: global, name: x, type: u8, value: 1}]`,
		diagnostics.ErrTypeMismatch, "expected u8, got i32")
	expectNoAnalyzerErrors(t, `[{kind: global, name: x, type: u8, value: {kind: int, value: 1, suffix: u8}}]`)
}

func TestAnalyze_UnitInitializer(t *testing.T) {
	expectAnalyzerError(t, `[{kind: global, name: x, value: {kind: tuple, elems: []}}]`, diagnostics.ErrTypeMismatch)
}

func TestAnalyze_TypeNames(t *testing.T) {
	t.Run("undeclared", func(t *testing.T) {
		expectAnalyzerErrorContains(t, `[{kind: global, name: x, type: Nope}]`, diagnostics.ErrUnresolvedName, "Nope")
	})
	t.Run("value used as type", func(t *testing.T) {
		src := `
- {kind: global, name: v, value: 1}
- {kind: global, name: x, type: v}
`
		expectAnalyzerError(t, src, diagnostics.ErrNotAType)
	})
	t.Run("type used as value", func(t *testing.T) {
		src := `
- {kind: struct, name: S, fields: [{name: a, type: i32}]}
- {kind: global, name: x, value: S}
`
		expectAnalyzerError(t, src, diagnostics.ErrNotAValue)
	})
	t.Run("unimplemented type forms", func(t *testing.T) {
		for _, typ := range []string{
			"{kind: map, key: i32, value: i32}",
			"{kind: slice, base: i32}",
			"{kind: generic, name: Box, args: [i32]}",
		} {
			expectAnalyzerError(t, "[{kind: global, name: x, type: "+typ+"}]", diagnostics.ErrUnimplementedFeature)
		}
	})
	t.Run("structural types intern", func(t *testing.T) {
		src := `
- {kind: global, name: a, type: {kind: tuple, elems: [i32, bool]}}
- {kind: global, name: b, type: {kind: tuple, elems: [i32, bool]}}
- {kind: global, name: c, type: {kind: array, length: 3, base: '*f64'}}
- {kind: global, name: d, type: {kind: array, length: 3, base: '*f64'}}
`
		a, _ := expectNoAnalyzerErrors(t, src)
		if global(t, a, "a").Type != global(t, a, "b").Type {
			t.Error("identical tuple types should share a handle")
		}
		if global(t, a, "c").Type != global(t, a, "d").Type {
			t.Error("identical array types should share a handle")
		}
	})
}

func TestAnalyze_StructLayout(t *testing.T) {
	src := `
- kind: struct
  name: Point
  fields:
    - {name: x, type: i32, default: 0}
    - {name: y, type: i64}
- {kind: variant, name: Color, members: [Red, Green]}
`
	a, _ := expectNoAnalyzerErrors(t, src)
	p := global(t, a, "Point")
	if p.Kind != symbols.TypeBinding {
		t.Fatalf("Point kind = %s, want type", p.Kind)
	}
	if got := a.types.Size(p.Type); got != 12 {
		t.Errorf("Point size = %d, want 12", got)
	}
	if len(p.Fields) != 2 || p.FieldIndex("y") != 1 {
		t.Errorf("Point fields = %+v", p.Fields)
	}
	if p.Fields[0].Default == nil || p.Fields[1].Default != nil {
		t.Error("only x has a default")
	}
	if fx := a.Symbols().Binding(p.Fields[0].Binding); fx.Constant != nil {
		t.Error("field defaults must not be recorded as constants")
	}

	c := global(t, a, "Color")
	if a.types.KindOf(c.Type) != typesystem.KindVariant {
		t.Fatalf("Color kind = %s", a.types.KindOf(c.Type))
	}
	red, ok := a.Symbols().LocalFind(c.MemberScope, "Red")
	if !ok {
		t.Fatal("Red not declared in the variant scope")
	}
	if rb := a.Symbols().Binding(red); rb.Type != c.Type || rb.Kind != symbols.CaseBinding {
		t.Errorf("Red binding = %+v", rb)
	}
}

func TestAnalyze_CollectAllContinuesPastFailures(t *testing.T) {
	src := `
- {kind: global, name: a, value: nope1}
- {kind: global, name: b, type: i32, value: 1}
- {kind: global, name: c, value: nope2}
`
	a, _, errs := analyzeYAML(t, src, false)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got:\n%s", formatErrors(errs))
	}
	if errs[0].Token.Line > errs[1].Token.Line {
		t.Error("errors should be sorted by position")
	}
	if st := global(t, a, "b").State; st != symbols.Resolved {
		t.Errorf("b state = %s, want Resolved", st)
	}
}

func TestAnalyze_StrictStopsAtFirstFailure(t *testing.T) {
	src := `
- {kind: global, name: a, value: nope1}
- {kind: global, name: b, type: i32, value: 1}
- {kind: global, name: c, value: nope2}
`
	a, _, errs := analyzeYAML(t, src, true)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got:\n%s", formatErrors(errs))
	}
	if !strings.Contains(errs[0].Message, "nope1") {
		t.Errorf("strict mode should report the first failure, got %s", errs[0].Message)
	}
	if st := global(t, a, "b").State; st != symbols.Unresolved {
		t.Errorf("b state = %s, want Unresolved after halting", st)
	}
}

func TestAnalyze_StrictDuplicateHaltsBeforeResolution(t *testing.T) {
	src := `
- {kind: global, name: x, value: 1}
- {kind: global, name: x, value: 2}
- {kind: global, name: y, value: nope}
`
	_, _, errs := analyzeYAML(t, src, true)
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrDuplicateDeclaration {
		t.Fatalf("expected a single DuplicateDeclaration, got:\n%s", formatErrors(errs))
	}
}

func TestAnalyze_ErrorsCarryFile(t *testing.T) {
	e := expectAnalyzerError(t, `[{kind: global, name: x, value: nope}]`, diagnostics.ErrUnresolvedName)
	if e.File != "test.yaml" {
		t.Errorf("file = %q, want test.yaml", e.File)
	}
	if e.Token.Line != 1 {
		t.Errorf("line = %d, want 1", e.Token.Line)
	}
}
