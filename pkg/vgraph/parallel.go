package vgraph

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kesterwylde/vgraph/pkg/vgconfig"
)

// ForEachHandleParallel visits every live node with a forward handle,
// partitioning the node-rank range across workers goroutines. visit must be
// safe to call concurrently; it must not mutate the graph (see the
// package's single-writer/multi-reader note) or call back into any method
// that does.
//
// Iteration order within a worker's partition follows rank order, but
// there is no ordering guarantee across partitions. A worker stops early,
// without canceling its siblings, if visit returns false for one of its
// handles; call Graph.CancelParallel from visit to request that every
// worker stop at its next handle.
func (g *Graph) ForEachHandleParallel(workers int, visit func(Handle) bool) error {
	if workers < 1 {
		workers = 1
	}
	g.cancelParallel.Store(false)

	n := len(g.records)
	if n == 0 {
		return nil
	}
	chunk := (n + workers - 1) / workers

	grp, _ := errgroup.WithContext(context.Background())
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		start, end := start, end
		grp.Go(func() error {
			for rank := start; rank < end; rank++ {
				if g.cancelParallel.Load() {
					return nil
				}
				rec := g.records[rank]
				if rec.deleted {
					continue
				}
				if !visit(PackHandle(int64(rank), false)) {
					return nil
				}
			}
			return nil
		})
	}
	return grp.Wait()
}

// ForEachHandleParallelWithConfig is ForEachHandleParallel using cfg's
// ParallelWorkers tunable in place of a hand-picked worker count.
func (g *Graph) ForEachHandleParallelWithConfig(cfg vgconfig.Options, visit func(Handle) bool) error {
	return g.ForEachHandleParallel(cfg.ParallelWorkers, visit)
}
