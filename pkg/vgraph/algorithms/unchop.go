package algorithms

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kesterwylde/vgraph/pkg/observability"
	"github.com/kesterwylde/vgraph/pkg/vgconfig"
	"github.com/kesterwylde/vgraph/pkg/vgraph"
)

// Result summarizes one Unchop run.
type Result struct {
	RunID        string
	ChainsMerged int
	Duration     time.Duration
}

// Unchop contracts every maximal chain of degree-one nodes with identical
// path membership, order, and strand into a single node. It is idempotent:
// running it again against its own output finds nothing left to merge.
func Unchop(g *vgraph.Graph) *Result {
	return unchop(g, 1, false)
}

// UnchopThreaded is Unchop with its chain-discovery phase partitioned by
// node-rank range across nthreads goroutines. Discovery is read-only and
// therefore safe to parallelize; every merge it finds is still applied
// sequentially, since Graph has no built-in synchronization for concurrent
// mutation. verbose logs each merged chain's run-correlated progress via
// the algorithm hooks rather than returning it.
func UnchopThreaded(g *vgraph.Graph, nthreads int, verbose bool) *Result {
	return unchop(g, nthreads, verbose)
}

// UnchopWithConfig runs UnchopThreaded using cfg's tunables, the entry point
// a caller wires to a loaded vgconfig.Options rather than picking worker
// counts and verbosity by hand.
func UnchopWithConfig(g *vgraph.Graph, cfg vgconfig.Options) *Result {
	return unchop(g, cfg.ParallelWorkers, cfg.UnchopVerbose)
}

func unchop(g *vgraph.Graph, nthreads int, verbose bool) *Result {
	if nthreads < 1 {
		nthreads = 1
	}
	runID := uuid.NewString()
	started := time.Now()
	ctx := context.Background()

	var nodeCount int
	g.ForEachHandle(func(vgraph.Handle) bool { nodeCount++; return true })
	observability.Algorithm().OnUnchopStart(ctx, g.InstanceID, runID, nodeCount)

	heads := findChainHeads(g, nthreads)

	result := &Result{RunID: runID}
	for _, head := range heads {
		chain := walkChain(g, head)
		if len(chain) < 2 {
			continue
		}

		newNode := ConcatNodes(g, chain)
		result.ChainsMerged++

		if verbose {
			observability.Algorithm().OnUnchopChainMerged(ctx, g.InstanceID, runID, len(chain), g.GetID(newNode))
		}
	}

	result.Duration = time.Since(started)
	observability.Algorithm().OnUnchopComplete(ctx, g.InstanceID, runID, result.ChainsMerged, result.Duration)
	return result
}

// findChainHeads returns, in ascending rank order, every live handle that
// starts a mergeable chain: one whose left side does not have exactly one
// edge, or whose unique left neighbor cannot be merged into it. Discovery is
// partitioned by node-rank range across workers and is read-only.
func findChainHeads(g *vgraph.Graph, workers int) []vgraph.Handle {
	var ranks []int64
	g.ForEachHandle(func(h vgraph.Handle) bool {
		ranks = append(ranks, h.Rank())
		return true
	})
	if len(ranks) == 0 {
		return nil
	}

	chunk := (len(ranks) + workers - 1) / workers
	var mu sync.Mutex
	var heads []vgraph.Handle

	grp, _ := errgroup.WithContext(context.Background())
	for start := 0; start < len(ranks); start += chunk {
		end := start + chunk
		if end > len(ranks) {
			end = len(ranks)
		}
		part := ranks[start:end]
		grp.Go(func() error {
			var local []vgraph.Handle
			for _, rank := range part {
				h := vgraph.PackHandle(rank, false)
				if isChainHead(g, h) {
					local = append(local, h)
				}
			}
			mu.Lock()
			heads = append(heads, local...)
			mu.Unlock()
			return nil
		})
	}
	_ = grp.Wait()

	sort.Slice(heads, func(i, j int) bool { return heads[i].Rank() < heads[j].Rank() })
	return heads
}

func isChainHead(g *vgraph.Graph, h vgraph.Handle) bool {
	if g.GetDegree(h, true) != 1 {
		return true
	}
	var left vgraph.Handle
	found := false
	g.FollowEdges(h, true, func(nb vgraph.Handle) bool { left = nb; found = true; return false })
	if !found {
		return true
	}
	return !mergeable(g, left, h)
}

// walkChain extends a chain forward from start for as long as each step is
// mergeable into the next, stopping before any node already in the chain
// (guards against a cyclic chain of mergeable nodes looping back on
// itself).
func walkChain(g *vgraph.Graph, start vgraph.Handle) []vgraph.Handle {
	chain := []vgraph.Handle{start}
	inChain := map[int64]bool{start.Rank(): true}
	cur := start

	for {
		if g.GetDegree(cur, false) != 1 {
			break
		}
		var next vgraph.Handle
		found := false
		g.FollowEdges(cur, false, func(nb vgraph.Handle) bool { next = nb; found = true; return false })
		if !found || inChain[next.Rank()] {
			break
		}
		if !mergeable(g, cur, next) {
			break
		}
		chain = append(chain, next)
		inChain[next.Rank()] = true
		cur = next
	}
	return chain
}

type occKey struct {
	path vgraph.PathHandle
	step int
}

func occurrencesOf(g *vgraph.Graph, h vgraph.Handle) []occKey {
	var out []occKey
	g.ForEachOccurrenceOnHandle(h, func(p vgraph.PathHandle, stepRank int) bool {
		out = append(out, occKey{p, stepRank})
		return true
	})
	return out
}

// mergeable reports whether cur can be glued to its unique right neighbor
// next: both sides of the edge between them must have degree one, and
// every path visiting cur in cur's own direction must continue, in the
// very next step, into next in next's own direction — and vice versa, so
// the merge drops no path and introduces no spurious one.
func mergeable(g *vgraph.Graph, cur, next vgraph.Handle) bool {
	if g.GetDegree(cur, false) != 1 || g.GetDegree(next, true) != 1 {
		return false
	}

	curOccs := occurrencesOf(g, cur)
	nextOccs := occurrencesOf(g, next)
	if len(curOccs) != len(nextOccs) {
		return false
	}

	nextSet := make(map[occKey]bool, len(nextOccs))
	for _, o := range nextOccs {
		nextSet[o] = true
	}

	for _, o := range curOccs {
		step := g.StepAt(o.path, o.step)
		if step.Unlinked || step.Reverse != cur.IsReverse() {
			return false
		}
		want := occKey{o.path, o.step + 1}
		if !nextSet[want] {
			return false
		}
		nextStep := g.StepAt(want.path, want.step)
		if nextStep.Unlinked || nextStep.Reverse != next.IsReverse() {
			return false
		}
	}
	return true
}
