package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	m := NoopMutationHooks{}
	m.OnNodeCreated(ctx, "g1", 1)
	m.OnNodeDestroyed(ctx, "g1", 1)
	m.OnEdgeCreated(ctx, "g1", 1, 2, false)
	m.OnEdgeDestroyed(ctx, "g1", 1, 2, true)
	m.OnPathMutated(ctx, "g1", 1, "append")

	a := NoopAlgorithmHooks{}
	a.OnUnchopStart(ctx, "g1", "run1", 100)
	a.OnUnchopChainMerged(ctx, "g1", "run1", 3, 42)
	a.OnUnchopComplete(ctx, "g1", "run1", 7, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Mutation().(NoopMutationHooks); !ok {
		t.Error("Mutation() should return NoopMutationHooks by default")
	}
	if _, ok := Algorithm().(NoopAlgorithmHooks); !ok {
		t.Error("Algorithm() should return NoopAlgorithmHooks by default")
	}

	// Set custom hooks
	customMutation := &testMutationHooks{}
	SetMutationHooks(customMutation)
	if Mutation() != customMutation {
		t.Error("SetMutationHooks should set custom hooks")
	}

	customAlgorithm := &testAlgorithmHooks{}
	SetAlgorithmHooks(customAlgorithm)
	if Algorithm() != customAlgorithm {
		t.Error("SetAlgorithmHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Mutation().(NoopMutationHooks); !ok {
		t.Error("Reset() should restore NoopMutationHooks")
	}
	if _, ok := Algorithm().(NoopAlgorithmHooks); !ok {
		t.Error("Reset() should restore NoopAlgorithmHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testMutationHooks{}
	SetMutationHooks(custom)

	// Setting nil should be ignored
	SetMutationHooks(nil)

	if Mutation() != custom {
		t.Error("SetMutationHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testMutationHooks struct{ NoopMutationHooks }
type testAlgorithmHooks struct{ NoopAlgorithmHooks }
