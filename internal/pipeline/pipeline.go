package pipeline

import "fmt"

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order. Diagnostics do not stop the pipeline, so
// the report still describes a module that failed analysis; a cancelled
// context does.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Context != nil {
			if err := ctx.Context.Err(); err != nil {
				ctx.Failures = append(ctx.Failures, fmt.Errorf("pipeline stopped before %T: %w", processor, err))
				return ctx
			}
		}
		ctx.Logger.Debug("running stage", "stage", fmt.Sprintf("%T", processor), "run", ctx.RunID.String())
		ctx = processor.Process(ctx)
	}
	return ctx
}
