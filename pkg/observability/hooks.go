// Package observability provides hooks for metrics, tracing, and logging
// around graph mutation and algorithms.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about node/edge/path mutation and about algorithms (such
// as unchop) that run over the graph.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by the application, not by pkg/vgraph)
//   - Keeps the core graph store dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, a test spy, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetMutationHooks(&myMutationHooks{})
//	    observability.SetAlgorithmHooks(&myAlgorithmHooks{})
//	    // ... use the graph
//	}
//
// pkg/vgraph calls hooks to emit events:
//
//	observability.Mutation().OnNodeCreated(ctx, graphID, id)
//	observability.Algorithm().OnUnchopStart(ctx, graphID, runID, nodeCount)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Mutation Hooks
// =============================================================================

// MutationHooks receives events from graph mutation operations. graphID
// identifies the emitting *vgraph.Graph instance (its InstanceID).
type MutationHooks interface {
	// OnNodeCreated fires after create_handle commits a new node.
	OnNodeCreated(ctx context.Context, graphID string, nodeID int64)

	// OnNodeDestroyed fires after destroy_handle removes a node.
	OnNodeDestroyed(ctx context.Context, graphID string, nodeID int64)

	// OnEdgeCreated fires after create_edge. existed reports whether the
	// edge was already present, i.e. the call was a structural no-op.
	OnEdgeCreated(ctx context.Context, graphID string, leftID, rightID int64, existed bool)

	// OnEdgeDestroyed fires after destroy_edge. found reports whether an
	// edge was actually present to remove.
	OnEdgeDestroyed(ctx context.Context, graphID string, leftID, rightID int64, found bool)

	// OnPathMutated fires after a path gains, loses, or rewrites a step, or
	// is destroyed. op is one of "append", "unlink", "rewrite", "destroy".
	OnPathMutated(ctx context.Context, graphID string, pathID int64, op string)
}

// =============================================================================
// Algorithm Hooks
// =============================================================================

// AlgorithmHooks receives events from algorithms that run over a graph,
// such as unchop.
type AlgorithmHooks interface {
	// OnUnchopStart fires when an unchop pass begins.
	OnUnchopStart(ctx context.Context, graphID, runID string, nodeCount int)

	// OnUnchopChainMerged fires once per mergeable chain that gets contracted,
	// in runs started with verbose set.
	OnUnchopChainMerged(ctx context.Context, graphID, runID string, chainLen int, newNodeID int64)

	// OnUnchopComplete fires when an unchop pass finishes.
	OnUnchopComplete(ctx context.Context, graphID, runID string, chainsMerged int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopMutationHooks is a no-op implementation of MutationHooks.
type NoopMutationHooks struct{}

func (NoopMutationHooks) OnNodeCreated(context.Context, string, int64)             {}
func (NoopMutationHooks) OnNodeDestroyed(context.Context, string, int64)           {}
func (NoopMutationHooks) OnEdgeCreated(context.Context, string, int64, int64, bool) {}
func (NoopMutationHooks) OnEdgeDestroyed(context.Context, string, int64, int64, bool) {
}
func (NoopMutationHooks) OnPathMutated(context.Context, string, int64, string) {}

// NoopAlgorithmHooks is a no-op implementation of AlgorithmHooks.
type NoopAlgorithmHooks struct{}

func (NoopAlgorithmHooks) OnUnchopStart(context.Context, string, string, int)             {}
func (NoopAlgorithmHooks) OnUnchopChainMerged(context.Context, string, string, int, int64) {}
func (NoopAlgorithmHooks) OnUnchopComplete(context.Context, string, string, int, time.Duration) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	mutationHooks  MutationHooks  = NoopMutationHooks{}
	algorithmHooks AlgorithmHooks = NoopAlgorithmHooks{}
	hooksMu        sync.RWMutex
)

// SetMutationHooks registers custom mutation hooks.
// This should be called once at application startup before any graph operations.
func SetMutationHooks(h MutationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		mutationHooks = h
	}
}

// SetAlgorithmHooks registers custom algorithm hooks.
// This should be called once at application startup before running unchop.
func SetAlgorithmHooks(h AlgorithmHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		algorithmHooks = h
	}
}

// Mutation returns the registered mutation hooks.
func Mutation() MutationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return mutationHooks
}

// Algorithm returns the registered algorithm hooks.
func Algorithm() AlgorithmHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return algorithmHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	mutationHooks = NoopMutationHooks{}
	algorithmHooks = NoopAlgorithmHooks{}
}
