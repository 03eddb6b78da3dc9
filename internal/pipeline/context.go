package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/config"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/symbols"
	"github.com/funvibe/semcore/internal/typesystem"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one module through the stages.
type PipelineContext struct {
	Context  context.Context
	RunID    uuid.UUID
	FilePath string
	Module   *ast.Module
	Options  config.Options
	Logger   *slog.Logger

	// Filled by the analyzer stage.
	Types       *typesystem.Table
	SymbolTable *symbols.Table
	ModuleScope symbols.ScopeID
	Errors      []*diagnostics.DiagnosticError

	Report interface{} // *report.Report, set by the report stage

	// Failures are operational errors (I/O, storage), not diagnostics.
	Failures []error
}

// NewPipelineContext prepares a context for mod with a fresh run identifier.
func NewPipelineContext(ctx context.Context, mod *ast.Module, opts config.Options) *PipelineContext {
	file := ""
	if mod != nil {
		file = mod.File
	}
	types := typesystem.NewTable()
	return &PipelineContext{
		Context:     ctx,
		RunID:       uuid.New(),
		FilePath:    file,
		Module:      mod,
		Options:     opts,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Types:       types,
		SymbolTable: symbols.NewTable(types),
	}
}

// Failed reports whether analysis produced diagnostics or a stage failed.
func (c *PipelineContext) Failed() bool {
	return len(c.Errors) > 0 || len(c.Failures) > 0
}
