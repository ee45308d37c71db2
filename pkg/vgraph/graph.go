// Package vgraph implements a mutable, in-memory bidirected sequence graph
// with embedded paths: the handle codec, node store, path store, node-to-
// occurrence index, and the Graph facade that ties them together.
//
// A Graph has no built-in synchronization (see the package-level note on
// Graph.ForEachHandleParallel): callers that mutate from one goroutine while
// others read must serialize around the mutation themselves, the same
// single-writer/multi-reader discipline the facade's parallel iteration
// helpers assume.
package vgraph

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/kesterwylde/vgraph/pkg/observability"
	"github.com/kesterwylde/vgraph/pkg/succinct/strcat"
)

// Graph is a mutable bidirected sequence graph with embedded paths. The
// zero value is not usable; construct one with New.
type Graph struct {
	// InstanceID uniquely identifies this Graph for the lifetime of the
	// process. It is threaded through log fields and observability events
	// as a debug aid, never consulted by any query or mutation logic.
	InstanceID string

	records   []*nodeRecord
	idToRank  map[int64]int
	minID     int64
	maxID     int64
	nodeCount int
	edgeCount int

	paths        []*pathRecord
	pathNameToID map[string]int64
	pathNames    *strcat.Catalog

	logger *log.Logger

	// cancelParallel is flipped by best-effort cancellation requests made
	// against an in-flight parallel traversal; it is not consulted by
	// sequential operations.
	cancelParallel atomic.Bool
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		idToRank:     make(map[int64]int),
		pathNameToID: make(map[string]int64),
		pathNames:    strcat.New(),
		InstanceID:   uuid.NewString(),
		logger:       log.Default(),
	}
}

// SetLogger installs a custom logger. Passing nil restores the default
// logger.
func (g *Graph) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	g.logger = l
}

func (g *Graph) logDebug(msg string, kv ...any) {
	g.logger.Debug(msg, append([]any{"graph", g.InstanceID}, kv...)...)
}

func (g *Graph) logWarn(msg string, kv ...any) {
	g.logger.Warn(msg, append([]any{"graph", g.InstanceID}, kv...)...)
}

func (g *Graph) hookNodeCreated(id int64) {
	observability.Mutation().OnNodeCreated(context.Background(), g.InstanceID, id)
}

func (g *Graph) hookNodeDestroyed(id int64) {
	observability.Mutation().OnNodeDestroyed(context.Background(), g.InstanceID, id)
}

func (g *Graph) hookEdgeCreated(leftID, rightID int64, existed bool) {
	observability.Mutation().OnEdgeCreated(context.Background(), g.InstanceID, leftID, rightID, existed)
}

func (g *Graph) hookEdgeDestroyed(leftID, rightID int64, found bool) {
	observability.Mutation().OnEdgeDestroyed(context.Background(), g.InstanceID, leftID, rightID, found)
}

func (g *Graph) hookPathMutated(pathID int64, op string) {
	observability.Mutation().OnPathMutated(context.Background(), g.InstanceID, pathID, op)
}

// Clear drops every node, edge, and path step, resetting MinNodeID and
// MaxNodeID to zero. Every existing path is destroyed as by DestroyPath:
// HasPath reports false for every name, path handles obtained before Clear
// are no longer usable (queries on them panic), and their slots stay
// allocated so no later path reuses their ids.
func (g *Graph) Clear() {
	for _, rec := range g.paths {
		rec.steps = nil
		rec.deleted = true
	}
	g.pathNameToID = make(map[string]int64)
	g.pathNames = strcat.New()

	g.records = nil
	g.idToRank = make(map[int64]int)
	g.nodeCount = 0
	g.edgeCount = 0
	g.minID = 0
	g.maxID = 0

	g.logDebug("clear")
}

// CancelParallel requests that any in-flight parallel traversal started by
// ForEachHandleParallel stop visiting further handles. It is best-effort:
// already-dispatched work completes normally, and a fresh call to
// ForEachHandleParallel clears the flag before starting.
func (g *Graph) CancelParallel() {
	g.cancelParallel.Store(true)
}
