package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/config"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/token"
)

type recordStage struct {
	name string
	seen *[]string
	err  error
}

func (s *recordStage) Process(ctx *PipelineContext) *PipelineContext {
	*s.seen = append(*s.seen, s.name)
	if s.err != nil {
		ctx.Failures = append(ctx.Failures, s.err)
	}
	return ctx
}

func TestNewPipelineContext(t *testing.T) {
	ctx := NewPipelineContext(context.Background(), &ast.Module{File: "m.sc"}, config.DefaultOptions())
	assert.Equal(t, "m.sc", ctx.FilePath)
	assert.NotEqual(t, uuid.Nil, ctx.RunID)
	assert.NotNil(t, ctx.Types)
	assert.NotNil(t, ctx.SymbolTable)
	assert.NotNil(t, ctx.Logger)
	assert.False(t, ctx.Failed())

	other := NewPipelineContext(context.Background(), nil, config.DefaultOptions())
	assert.Empty(t, other.FilePath)
	assert.NotEqual(t, ctx.RunID, other.RunID)
}

func TestRun_StagesInOrder(t *testing.T) {
	var seen []string
	p := New(
		&recordStage{name: "first", seen: &seen},
		&recordStage{name: "second", seen: &seen, err: errors.New("disk full")},
		&recordStage{name: "third", seen: &seen},
	)
	ctx := p.Run(NewPipelineContext(context.Background(), &ast.Module{}, config.DefaultOptions()))
	assert.Equal(t, []string{"first", "second", "third"}, seen)
	require.Len(t, ctx.Failures, 1)
	assert.True(t, ctx.Failed())
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	var seen []string
	cctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(&recordStage{name: "first", seen: &seen})
	ctx := p.Run(NewPipelineContext(cctx, &ast.Module{}, config.DefaultOptions()))
	assert.Empty(t, seen)
	require.Len(t, ctx.Failures, 1)
	assert.ErrorIs(t, ctx.Failures[0], context.Canceled)
}

func TestFailed_Diagnostics(t *testing.T) {
	ctx := NewPipelineContext(context.Background(), &ast.Module{}, config.DefaultOptions())
	ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrUnresolvedName, token.Token{Line: 1, Column: 1}, "x"))
	assert.True(t, ctx.Failed())
}
