package vgraph

import (
	"testing"

	"github.com/kesterwylde/vgraph/pkg/vgconfig"
)

func TestNewAssignsInstanceID(t *testing.T) {
	g1 := New()
	g2 := New()

	if g1.InstanceID == "" {
		t.Fatal("InstanceID must not be empty")
	}
	if g1.InstanceID == g2.InstanceID {
		t.Fatal("two graphs must not share an InstanceID")
	}
}

func TestClearResetsNodesAndPaths(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA")
	p := g.CreatePath("p1")
	g.AppendStep(p, a)

	g.Clear()

	if g.NodeCount() != 0 {
		t.Errorf("NodeCount after Clear = %d, want 0", g.NodeCount())
	}
	if g.HasPath("p1") {
		t.Error("HasPath should be false after Clear")
	}
	if g.MinNodeID() != 0 || g.MaxNodeID() != 0 {
		t.Error("Clear must reset MinNodeID/MaxNodeID")
	}
}

func TestCancelParallelStopsEarlyVisits(t *testing.T) {
	g := New()
	for i := 0; i < 100; i++ {
		g.CreateHandle("ACGT")
	}

	var count int
	g.ForEachHandleParallel(1, func(h Handle) bool {
		count++
		if count == 5 {
			g.CancelParallel()
		}
		return true
	})

	if count >= 100 {
		t.Error("CancelParallel should have stopped the traversal before visiting every node")
	}
}

func TestForEachHandleParallelWithConfigUsesWorkerCount(t *testing.T) {
	g := New()
	for i := 0; i < 20; i++ {
		g.CreateHandle("ACGT")
	}

	var visited int
	err := g.ForEachHandleParallelWithConfig(vgconfig.Options{ParallelWorkers: 3}, func(Handle) bool {
		visited++
		return true
	})
	if err != nil {
		t.Fatalf("ForEachHandleParallelWithConfig: %v", err)
	}
	if visited != 20 {
		t.Fatalf("visited = %d, want 20", visited)
	}
}
