package store

import (
	"github.com/funvibe/semcore/internal/pipeline"
	"github.com/funvibe/semcore/internal/report"
)

// Processor persists the report of each run. It needs the report stage to
// have run first and does nothing without a Store.
type Processor struct {
	Store *Store
}

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if p.Store == nil {
		return ctx
	}
	r := report.FromContext(ctx)
	if r == nil {
		return ctx
	}
	if err := p.Store.SaveRun(ctx.Context, r); err != nil {
		ctx.Logger.Error("saving run failed", "file", r.File, "err", err)
		ctx.Failures = append(ctx.Failures, err)
		return ctx
	}
	ctx.Logger.Debug("run saved", "file", r.File, "run", r.RunID)
	return ctx
}
