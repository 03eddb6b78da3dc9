package analyzer

import (
	"io"
	"log/slog"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/token"
	"github.com/funvibe/semcore/internal/typesystem"
	"github.com/funvibe/semcore/internal/value"
)

// Analyzer resolves names and types of one module and annotates its tree in place.
type Analyzer struct {
	types   *typesystem.Table
	symbols *symbols.Table
	sink    *diagnostics.Sink
	logger  *slog.Logger
	strict  bool // stop at the first failing declaration
	module  symbols.ScopeID
	order   []symbols.BindingID // module bindings in declaration order
}

// New creates an Analyzer over shared type and symbol tables.
func New(types *typesystem.Table, symbolTable *symbols.Table) *Analyzer {
	return &Analyzer{
		types:   types,
		symbols: symbolTable,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetStrict switches between collecting every diagnostic (default) and
// halting after the first failing declaration.
func (a *Analyzer) SetStrict(strict bool) {
	a.strict = strict
}

func (a *Analyzer) SetLogger(l *slog.Logger) {
	if l != nil {
		a.logger = l
	}
}

func (a *Analyzer) Types() *typesystem.Table { return a.types }
func (a *Analyzer) Symbols() *symbols.Table  { return a.symbols }

// ModuleScope returns the scope created by the last AnalyzeModule call.
func (a *Analyzer) ModuleScope() symbols.ScopeID { return a.module }

// marker is a set of flags describing the construct being resolved.
type marker uint8

const (
	inFunctionBody marker = 1 << iota
	inBlockBody
	inLoopBody
	resolvingAssignment // the expression's value is consumed (assignment rhs, initializer, function result)
)

// rctx is the resolution context. It is passed by value so entering a
// construct never leaks scope or markers to the caller.
type rctx struct {
	scope   symbols.ScopeID
	markers marker
}

func (c rctx) in(scope symbols.ScopeID) rctx {
	c.scope = scope
	return c
}

func (c rctx) with(m marker) rctx {
	c.markers |= m
	return c
}

func (c rctx) without(m marker) rctx {
	c.markers &^= m
	return c
}

func (c rctx) has(m marker) bool { return c.markers&m != 0 }

// val is the result of resolving an expression. A NoType val means resolution
// failed and a diagnostic has already been reported.
type val struct {
	typ      typesystem.TypeID
	expr     ast.Expr
	constant *value.Value
}

var failed = val{}

func (v val) ok() bool { return v.typ.IsValid() }

func (v val) isConstant() bool { return v.constant != nil }

// AnalyzeModule resolves every top-level declaration of mod.
//
// Phase 1 registers all top-level names as Unresolved so declarations may
// refer forward. Phase 2 resolves each binding in declaration order; bindings
// reached earlier through a forward reference are skipped. A failing
// declaration is a synchronization point: its diagnostics are kept and
// analysis continues with the next one, unless the analyzer is strict.
func (a *Analyzer) AnalyzeModule(mod *ast.Module) []*diagnostics.DiagnosticError {
	a.sink = diagnostics.NewSink(mod.File)
	a.module = a.symbols.NewScope(a.symbols.Prelude(), symbols.ScopeModule)
	a.order = a.order[:0]

	for _, decl := range mod.Decls {
		a.declareTopLevel(decl)
		if a.strict && a.sink.HasErrors() {
			return a.Errors()
		}
	}

	for _, id := range a.order {
		if a.symbols.Binding(id).State != symbols.Unresolved {
			continue
		}
		before := a.sink.Len()
		a.resolveTopLevel(id)
		if a.sink.Len() > before {
			name := a.symbols.Binding(id).Name
			if a.strict {
				a.logger.Debug("halting after failed declaration", "name", name)
				break
			}
			a.logger.Debug("skipping failed declaration", "name", name, "errors", a.sink.Len()-before)
		}
	}
	return a.Errors()
}

// Errors returns the diagnostics of the last analysis, sorted by position.
// In strict mode only the first reported diagnostic is returned.
func (a *Analyzer) Errors() []*diagnostics.DiagnosticError {
	if a.sink == nil {
		return nil
	}
	if a.strict {
		if first := a.sink.First(); first != nil {
			return []*diagnostics.DiagnosticError{first}
		}
		return nil
	}
	return a.sink.Errors()
}

// addError reports a diagnostic once at its detection point.
func (a *Analyzer) addError(err *diagnostics.DiagnosticError) {
	a.logger.Debug("diagnostic", "code", string(err.Code), "pos", err.Token.Pos(), "msg", err.Message)
	a.sink.Add(err)
}

func (a *Analyzer) errorf(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	a.addError(diagnostics.NewError(code, tok, args...))
}

// typeName renders a type for diagnostics.
func (a *Analyzer) typeName(t typesystem.TypeID) string {
	return a.types.String(t)
}
