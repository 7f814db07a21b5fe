package jxlenc

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/overlaycore/jxlenc/internal/core"
)

// ParallelRunner is the externally-supplied work dispatcher spec §5
// requires: given a work count, invoke work(i) for every i in
// [0, count), blocking until all have completed. Passing nil to
// EncodeRGBA/ProcessFrame substitutes SyncRunner.
type ParallelRunner = core.ParallelRunner

// SyncRunner runs every group sequentially on the calling goroutine —
// the module's required default when the caller supplies no runner
// (spec §5).
type SyncRunner struct{}

// Run invokes work(i) for i in [0, count) in order, on the calling
// goroutine.
func (SyncRunner) Run(count int, work func(i int)) {
	for i := 0; i < count; i++ {
		work(i)
	}
}

// ErrgroupRunner dispatches group work across a bounded pool of
// goroutines using golang.org/x/sync/errgroup: a bounded concurrent
// fan-out over group indices, independent of internal/pool (this spec's
// "parallel runner" callback has no buffer to pool — only work items to
// schedule).
//
// Because the core's work closure (spec §5) has no error return,
// Limit just bounds concurrency; any panic inside work propagates as a
// panic from Run, matching errgroup.Group's own behavior for panicking
// goroutines.
type ErrgroupRunner struct {
	// Limit caps the number of groups processed concurrently. Zero or
	// negative means unbounded (one goroutine per group).
	Limit int
}

// Run dispatches count calls to work across goroutines, blocking until
// every call has returned.
func (r ErrgroupRunner) Run(count int, work func(i int)) {
	if count <= 0 {
		return
	}
	g, _ := errgroup.WithContext(context.Background())
	if r.Limit > 0 {
		g.SetLimit(r.Limit)
	}
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			work(i)
			return nil
		})
	}
	_ = g.Wait()
}

// NewErrgroupRunner returns an ErrgroupRunner bounded to at most
// GOMAXPROCS concurrent groups, a sane default for CPU-bound group
// encoding.
func NewErrgroupRunner() ErrgroupRunner {
	return ErrgroupRunner{Limit: runtime.GOMAXPROCS(0)}
}
