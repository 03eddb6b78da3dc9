package analyzer

import (
	"github.com/funvibe/semcore/internal/pipeline"
)

// Processor is the semantic analysis stage.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Module == nil {
		return ctx
	}

	a := New(ctx.Types, ctx.SymbolTable)
	a.SetStrict(ctx.Options.Strict)
	a.SetLogger(ctx.Logger.With("file", ctx.FilePath))

	errors := a.AnalyzeModule(ctx.Module)
	ctx.ModuleScope = a.ModuleScope()
	if len(errors) > 0 {
		ctx.Errors = append(ctx.Errors, errors...)
	}
	return ctx
}
