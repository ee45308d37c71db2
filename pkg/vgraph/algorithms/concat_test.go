package algorithms

import (
	"testing"

	"github.com/kesterwylde/vgraph/pkg/vgraph"
)

func buildChain(g *vgraph.Graph, seqs ...string) []vgraph.Handle {
	handles := make([]vgraph.Handle, len(seqs))
	for i, s := range seqs {
		handles[i] = g.CreateHandle(s)
	}
	for i := 0; i < len(handles)-1; i++ {
		g.CreateEdge(handles[i], handles[i+1])
	}
	return handles
}

func TestConcatNodesMergesSequenceAndEdges(t *testing.T) {
	g := vgraph.New()
	before := g.CreateHandle("TTTT")
	chain := buildChain(g, "AA", "CC", "GG")
	after := g.CreateHandle("NNNN")
	g.CreateEdge(before, chain[0])
	g.CreateEdge(chain[len(chain)-1], after)

	// Handles to destroyed nodes are invalid, so record the ids up front.
	ids := make([]int64, len(chain))
	for i, h := range chain {
		ids[i] = g.GetID(h)
	}

	merged := ConcatNodes(g, chain)

	if got := g.GetSequence(merged); got != "AACCGG" {
		t.Fatalf("merged sequence = %q, want AACCGG", got)
	}
	if !g.HasEdge(before, merged) || !g.HasEdge(merged, after) {
		t.Fatal("merged node must inherit the chain's outer edges")
	}
	for _, id := range ids {
		if g.HasNode(id) {
			t.Errorf("original chain node %d should be destroyed", id)
		}
	}
}

func TestConcatNodesRewritesMatchingPathSteps(t *testing.T) {
	g := vgraph.New()
	chain := buildChain(g, "AA", "CC", "GG")

	p := g.CreatePath("p1")
	for _, h := range chain {
		g.AppendStep(p, h)
	}

	merged := ConcatNodes(g, chain)

	if g.PathLength(p) != 1 {
		t.Fatalf("path length after concat = %d, want 1", g.PathLength(p))
	}
	if g.StepAt(p, 0).NodeRank != merged.Rank() {
		t.Error("the single remaining step must reference the merged node")
	}
}

func TestConcatNodesLeavesMismatchedPathsUntouched(t *testing.T) {
	g := vgraph.New()
	chain := buildChain(g, "AA", "CC", "GG")

	// p1 only visits the first node of the chain, not the whole run.
	p1 := g.CreatePath("p1")
	g.AppendStep(p1, chain[0])

	ConcatNodes(g, chain)

	if g.PathLength(p1) != 1 {
		t.Fatalf("unrelated path length = %d, want unchanged 1", g.PathLength(p1))
	}
	// rewriteChainPaths left p1 alone because its single step doesn't cover
	// the whole chain; DestroyHandle then unlinks it along with chain[0].
	if !g.StepAt(p1, 0).Unlinked {
		t.Error("step on a destroyed, unrewritten chain node should end up unlinked")
	}
}

func TestConcatNodesSingleHandleIsIdentity(t *testing.T) {
	g := vgraph.New()
	h := g.CreateHandle("ACGT")

	if got := ConcatNodes(g, []vgraph.Handle{h}); got != h {
		t.Errorf("ConcatNodes of a single handle = %v, want %v unchanged", got, h)
	}
}
