package report

import (
	"github.com/funvibe/semcore/internal/pipeline"
)

// Processor builds the report of an analysed module. It runs after the
// analyzer stage and also describes modules that failed analysis.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Types == nil || ctx.SymbolTable == nil {
		return ctx
	}
	r := Build(ctx.Types, ctx.SymbolTable, ctx.ModuleScope, ctx.Errors, ctx.RunID)
	r.File = ctx.FilePath
	ctx.Report = r
	ctx.Logger.Debug("report built", "file", r.File, "bindings", len(r.Bindings), "structs", len(r.Structs))
	return ctx
}

// FromContext returns the report set by the Processor, or nil.
func FromContext(ctx *pipeline.PipelineContext) *Report {
	r, _ := ctx.Report.(*Report)
	return r
}
