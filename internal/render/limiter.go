package render

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// LimitedEngine bounds the number of concurrent renders on the wrapped
// engine with a weighted semaphore, so load spikes cannot spawn an unbounded
// number of browser processes.
type LimitedEngine struct {
	inner Engine
	sem   *semaphore.Weighted
}

// Limit wraps an engine with an admission-control semaphore of the given
// size. Sizes below one are treated as one.
func Limit(inner Engine, maxConcurrent int64) *LimitedEngine {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &LimitedEngine{
		inner: inner,
		sem:   semaphore.NewWeighted(maxConcurrent),
	}
}

// Render waits for an admission slot, honoring ctx, then delegates. The slot
// is released whether or not the inner render succeeds.
func (l *LimitedEngine) Render(ctx context.Context, html string) ([]byte, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, &RenderError{Stage: "admission", Err: err}
	}
	defer l.sem.Release(1)
	return l.inner.Render(ctx, html)
}

// Close closes the wrapped engine.
func (l *LimitedEngine) Close() error { return l.inner.Close() }
