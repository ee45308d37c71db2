// Package algorithms implements graph-rewriting passes that operate purely
// through pkg/vgraph's exported API: they hold no privileged access to the
// store's internals, the same relationship a transform pass has to the DAG
// it rewrites.
package algorithms

import (
	"sort"
	"strings"

	"github.com/kesterwylde/vgraph/pkg/vgraph"
)

// ConcatNodes merges the nodes named by handles, in order, into a single
// new node whose sequence is the concatenation of each handle's visible
// sequence. Edges touching the left side of handles[0] and the right side
// of handles[len(handles)-1] are rewired onto the new node; every internal
// edge of the chain is discarded along with the original nodes.
//
// ConcatNodes trusts its caller to have established that every node in
// handles has exactly one neighbor on the side facing the next node in the
// chain, and that every path crossing one node in the chain crosses all of
// them, consecutively, in the same orientation as handles records — Unchop
// establishes this before calling ConcatNodes. Each run of path steps that
// starts on handles[0] and visits all of handles in order, in their
// recorded orientations, is rewritten into a single step on the new node;
// other steps on the chain's nodes are left untouched, and are then
// unlinked when the original nodes are destroyed.
func ConcatNodes(g *vgraph.Graph, handles []vgraph.Handle) vgraph.Handle {
	if len(handles) == 0 {
		panic("concat_nodes: handles must be non-empty")
	}
	if len(handles) == 1 {
		return handles[0]
	}

	var seq strings.Builder
	for _, h := range handles {
		seq.WriteString(g.GetSequence(h))
	}

	var leftNeighbors, rightNeighbors []vgraph.Handle
	g.FollowEdges(handles[0], true, func(nb vgraph.Handle) bool {
		leftNeighbors = append(leftNeighbors, nb)
		return true
	})
	g.FollowEdges(handles[len(handles)-1], false, func(nb vgraph.Handle) bool {
		rightNeighbors = append(rightNeighbors, nb)
		return true
	})

	newNode := g.CreateHandle(seq.String())

	for _, nb := range leftNeighbors {
		g.CreateEdge(nb, newNode)
	}
	for _, nb := range rightNeighbors {
		g.CreateEdge(newNode, nb)
	}

	rewriteChainPaths(g, handles, newNode)

	for _, h := range handles {
		g.DestroyHandle(h)
	}

	return newNode
}

func rewriteChainPaths(g *vgraph.Graph, handles []vgraph.Handle, newNode vgraph.Handle) {
	first := handles[0]

	type occ struct {
		path vgraph.PathHandle
		step int
	}
	var occs []occ
	g.ForEachOccurrenceOnHandle(first, func(p vgraph.PathHandle, stepRank int) bool {
		occs = append(occs, occ{p, stepRank})
		return true
	})

	// Later runs first, so a merge never shifts a step rank still to be used.
	sort.Slice(occs, func(i, j int) bool { return occs[i].step > occs[j].step })
	for _, o := range occs {
		if o.step+len(handles) > g.PathLength(o.path) {
			continue
		}
		covers := true
		for i, h := range handles {
			step := g.StepAt(o.path, o.step+i)
			if step.Unlinked || step.NodeRank != h.Rank() || step.Reverse != h.IsReverse() {
				covers = false
				break
			}
		}
		if !covers {
			continue
		}
		g.ReplaceStepRun(o.path, o.step, len(handles), []vgraph.Handle{
			vgraph.PackHandle(newNode.Rank(), false),
		})
	}
}
