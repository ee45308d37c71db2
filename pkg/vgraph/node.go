package vgraph

import (
	"github.com/kesterwylde/vgraph/pkg/succinct/bitvec"
	"github.com/kesterwylde/vgraph/pkg/succinct/intseq"
)

// nodeRecord is one node's storage slot. A rank is never reused once
// assigned; destroy_handle tombstones the slot (deleted=true, seq cleared)
// rather than compacting ranks, so outstanding handles to other nodes never
// silently point at a different node.
type nodeRecord struct {
	id      int64
	deleted bool
	seq     string

	// adjFwd/invFwd hold the neighbors reachable by leaving this node's
	// right side (the side a forward-oriented handle faces when traversed
	// forward). adjRev/invRev hold the neighbors reachable by leaving its
	// left side. Each adjacency entry stores the neighbor's rank plus one
	// (0 is never a valid entry) and a parallel inversion bit recording
	// whether the neighbor is entered on its reverse strand.
	adjFwd *intseq.Seq
	invFwd *bitvec.Bitvec
	adjRev *intseq.Seq
	invRev *bitvec.Bitvec

	// occPathIDs/occStepRanks are the node's occurrence records: parallel
	// arrays of (path id + 1, step rank + 1) for every path step currently
	// visiting this node, in no particular order. The plus-one encoding
	// mirrors the delimited-record convention used elsewhere in this store
	// even though, unlike a single packed global sequence, a per-node pair
	// of intseq.Seq values doesn't need a zero terminator to know where a
	// record ends.
	occPathIDs   *intseq.Seq
	occStepRanks *intseq.Seq
}

func newNodeRecord(id int64, seq string) *nodeRecord {
	return &nodeRecord{
		id:           id,
		seq:          seq,
		adjFwd:       intseq.New(),
		invFwd:       bitvec.New(),
		adjRev:       intseq.New(),
		invRev:       bitvec.New(),
		occPathIDs:   intseq.New(),
		occStepRanks: intseq.New(),
	}
}

// side selects which of a node's two adjacency lists is relevant when
// leaving handle h without reversing direction (goLeft=false) or reversing
// it (goLeft=true).
func (rec *nodeRecord) side(goLeft, handleReverse bool) (*intseq.Seq, *bitvec.Bitvec) {
	useRight := goLeft == handleReverse
	if useRight {
		return rec.adjFwd, rec.invFwd
	}
	return rec.adjRev, rec.invRev
}

func rcComplementByte(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'a':
		return 't'
	case 't':
		return 'a'
	case 'c':
		return 'g'
	case 'g':
		return 'c'
	default:
		return b
	}
}

// reverseComplement returns the reverse complement of a DNA-alphabet
// sequence. Bytes outside {A,C,G,T} (upper or lower case), such as the 'N'
// ambiguity code, are passed through unchanged and only reversed in
// position.
func reverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = rcComplementByte(seq[i])
	}
	return string(out)
}

// CreateHandle allocates a new node with an auto-assigned id (one greater
// than MaxNodeID, or 1 if no id has been assigned since the graph was
// created or last cleared) and returns a forward handle to it.
func (g *Graph) CreateHandle(seq string) Handle {
	id := g.nextNodeID()
	return g.CreateHandleWithID(seq, id)
}

func (g *Graph) nextNodeID() int64 {
	if g.maxID == 0 {
		return 1
	}
	return g.maxID + 1
}

// CreateHandleWithID allocates a new node with a caller-chosen id. It
// panics if id is not positive or already in use.
func (g *Graph) CreateHandleWithID(seq string, id int64) Handle {
	if err := validateNodeID(id); err != nil {
		panic(err)
	}
	if _, exists := g.idToRank[id]; exists {
		panic(duplicateNodeIDError(id))
	}

	rank := int64(len(g.records))
	g.records = append(g.records, newNodeRecord(id, seq))
	g.idToRank[id] = int(rank)
	g.nodeCount++
	if g.minID == 0 || id < g.minID {
		g.minID = id
	}
	if id > g.maxID {
		g.maxID = id
	}

	g.logDebug("create_handle", "id", id, "rank", rank, "len", len(seq))
	g.hookNodeCreated(id)
	return PackHandle(rank, false)
}

// HasNode reports whether id names a live node.
func (g *Graph) HasNode(id int64) bool {
	rank, ok := g.idToRank[id]
	if !ok {
		return false
	}
	return !g.records[rank].deleted
}

// GetHandle returns the forward handle for id. It panics if id does not
// name a live node.
func (g *Graph) GetHandle(id int64) Handle {
	rank, ok := g.idToRank[id]
	if !ok || g.records[rank].deleted {
		panic(nodeNotFoundError(id))
	}
	return PackHandle(int64(rank), false)
}

// GetID returns the node id underlying h.
func (g *Graph) GetID(h Handle) int64 {
	return g.recordFor(h).id
}

// GetSequence returns the sequence visible through h: the node's stored
// sequence if h is forward, its reverse complement if h is reverse.
func (g *Graph) GetSequence(h Handle) string {
	rec := g.recordFor(h)
	if h.IsReverse() {
		return reverseComplement(rec.seq)
	}
	return rec.seq
}

// SequenceLength returns the length of the node's sequence. It is the same
// for both orientations of a handle.
func (g *Graph) SequenceLength(h Handle) int {
	return len(g.recordFor(h).seq)
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	return g.nodeCount
}

// EdgeCount returns the number of live edges, each counted once regardless
// of its canonical orientation.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// MinNodeID and MaxNodeID report the smallest and largest node id assigned
// since the graph was created or last cleared; they are not recomputed on
// deletion, so either may name a node that is no longer live.
func (g *Graph) MinNodeID() int64 { return g.minID }
func (g *Graph) MaxNodeID() int64 { return g.maxID }

func (g *Graph) recordFor(h Handle) *nodeRecord {
	rank := h.Rank()
	if rank < 0 || rank >= int64(len(g.records)) {
		panic(invalidHandleError(h))
	}
	rec := g.records[rank]
	if rec.deleted {
		panic(invalidHandleError(h))
	}
	return rec
}

// ForEachHandle visits every live node with a forward handle. It stops
// early if visit returns false.
func (g *Graph) ForEachHandle(visit func(Handle) bool) {
	for rank, rec := range g.records {
		if rec.deleted {
			continue
		}
		if !visit(PackHandle(int64(rank), false)) {
			return
		}
	}
}

// FollowEdges visits every handle reachable by leaving h on the side named
// by goLeft. Neighbors are reported in h's own direction of travel: for an
// edge a->b, FollowEdges(a, false) visits b and FollowEdges(b, true) visits
// a. It stops early if visit returns false.
func (g *Graph) FollowEdges(h Handle, goLeft bool, visit func(Handle) bool) {
	rec := g.recordFor(h)
	adj, inv := rec.side(goLeft, h.IsReverse())
	for i := 0; i < adj.Len(); i++ {
		neighborRank := adj.At(i) - 1
		neighborReverse := inv.At(i) != goLeft
		if !visit(PackHandle(neighborRank, neighborReverse)) {
			return
		}
	}
}

// GetDegree returns the number of edges incident to the side of h named by
// goLeft.
func (g *Graph) GetDegree(h Handle, goLeft bool) int {
	rec := g.recordFor(h)
	adj, _ := rec.side(goLeft, h.IsReverse())
	return adj.Len()
}

// HasEdge reports whether an edge exists between the sides named by left
// and right (left's right side connecting to right's left side).
func (g *Graph) HasEdge(left, right Handle) bool {
	cl, cr := canonicalizeEdge(left, right)
	_, found := g.findEdgeIndex(cl, cr)
	return found
}

func (g *Graph) findEdgeIndex(cl, cr Handle) (int, bool) {
	rec := g.recordFor(cl)
	adj, inv := rec.side(false, cl.IsReverse())
	target := cr.Rank() + 1
	for i := 0; i < adj.Len(); i++ {
		if adj.At(i) == target && inv.At(i) == cr.IsReverse() {
			return i, true
		}
	}
	return -1, false
}

// canonicalizeEdge rewrites (from,to) into the unique representative of its
// bidirected equivalence class: the side with the lower rank goes first; if
// ranks tie, the pair with both sides reverse is flipped to both forward.
func canonicalizeEdge(from, to Handle) (Handle, Handle) {
	if from.Rank() > to.Rank() {
		return to.Flip(), from.Flip()
	}
	if from.Rank() == to.Rank() && from.IsReverse() && to.IsReverse() {
		return to.Flip(), from.Flip()
	}
	return from, to
}

func (g *Graph) addAdjEntry(rank int64, useRight bool, neighborRank int64, neighborReverse bool) {
	rec := g.records[rank]
	var adj *intseq.Seq
	var inv *bitvec.Bitvec
	if useRight {
		adj, inv = rec.adjFwd, rec.invFwd
	} else {
		adj, inv = rec.adjRev, rec.invRev
	}
	adj.PushBack(neighborRank + 1)
	inv.PushBack(neighborReverse)
}

func (g *Graph) removeAdjEntry(rank int64, useRight bool, neighborRank int64, neighborReverse bool) bool {
	rec := g.records[rank]
	var adj *intseq.Seq
	var inv *bitvec.Bitvec
	if useRight {
		adj, inv = rec.adjFwd, rec.invFwd
	} else {
		adj, inv = rec.adjRev, rec.invRev
	}
	target := neighborRank + 1
	for i := 0; i < adj.Len(); i++ {
		if adj.At(i) == target && inv.At(i) == neighborReverse {
			adj.Remove(i)
			inv.Remove(i)
			return true
		}
	}
	return false
}

// CreateEdge connects the right side of from to the left side of to. It is
// a structural no-op, logged at Warn and reported via observability rather
// than returned as an error, when the edge already exists.
func (g *Graph) CreateEdge(from, to Handle) {
	cf, ct := canonicalizeEdge(from, to)
	g.recordFor(cf)
	g.recordFor(ct)

	if _, found := g.findEdgeIndex(cf, ct); found {
		g.logWarn("create_edge: edge already exists", "from", cf, "to", ct)
		g.hookEdgeCreated(g.GetID(cf), g.GetID(ct), true)
		return
	}

	g.addAdjEntry(cf.Rank(), !cf.IsReverse(), ct.Rank(), ct.IsReverse())
	g.addAdjEntry(ct.Rank(), ct.IsReverse(), cf.Rank(), !cf.IsReverse())
	g.edgeCount++

	g.logDebug("create_edge", "from", cf, "to", ct)
	g.hookEdgeCreated(g.GetID(cf), g.GetID(ct), false)
}

// DestroyEdge removes the edge between from and to, if one exists. It is a
// structural no-op when no such edge exists.
func (g *Graph) DestroyEdge(from, to Handle) {
	cf, ct := canonicalizeEdge(from, to)
	g.recordFor(cf)
	g.recordFor(ct)

	foundA := g.removeAdjEntry(cf.Rank(), !cf.IsReverse(), ct.Rank(), ct.IsReverse())
	foundB := g.removeAdjEntry(ct.Rank(), ct.IsReverse(), cf.Rank(), !cf.IsReverse())
	found := foundA && foundB

	if !found {
		g.logWarn("destroy_edge: edge not found", "from", cf, "to", ct)
	} else {
		g.edgeCount--
		g.logDebug("destroy_edge", "from", cf, "to", ct)
	}
	g.hookEdgeDestroyed(g.GetID(cf), g.GetID(ct), found)
}

// retoggleNeighborInversion flips the inversion bit every neighbor stores
// for edges pointing at rank, after rank's own orientation has flipped in
// place (apply_orientation). Both sides of each edge touching rank are
// updated so FollowEdges remains consistent from either endpoint.
func (g *Graph) retoggleNeighborInversion(rank int64) {
	rec := g.records[rank]
	for side, pair := range [][2]any{{rec.adjFwd, rec.invFwd}, {rec.adjRev, rec.invRev}} {
		adj := pair[0].(*intseq.Seq)
		inv := pair[1].(*bitvec.Bitvec)
		for i := 0; i < adj.Len(); i++ {
			neighborRank := adj.At(i) - 1
			if neighborRank == rank {
				// self-loop: the mirrored entry lives in rank's own lists
				// too, so each self-loop entry is flipped here, once.
				prev := inv.Remove(i)
				inv.Insert(i, !prev)
				continue
			}
			// The neighbor's mirrored entry sits on its right side iff this
			// entry's bit is set, and its own bit is set iff the edge entered
			// rank on rank's old right side, whose entries are now in adjRev.
			g.flipInversionForNeighbor(neighborRank, rank, inv.At(i), side == 1)
		}
	}
}

// flipInversionForNeighbor flips the inversion bit on the first of
// neighborRank's adjacency entries, on its right side if onRight and on its
// left side otherwise, that points at targetRank with the given previous
// inversion value.
func (g *Graph) flipInversionForNeighbor(neighborRank, targetRank int64, onRight, prevInv bool) {
	rec := g.records[neighborRank]
	adj, inv := rec.adjRev, rec.invRev
	if onRight {
		adj, inv = rec.adjFwd, rec.invFwd
	}
	for i := 0; i < adj.Len(); i++ {
		if adj.At(i)-1 == targetRank && inv.At(i) == prevInv {
			// toggle by removing and re-pushing isn't positional-safe;
			// bitvec has no in-place flip, so reconstruct via
			// Remove+Insert at the same index.
			inv.Remove(i)
			inv.Insert(i, !prevInv)
			return
		}
	}
}

// ApplyOrientation rewrites the node underlying h so that h's strand
// becomes the node's new forward strand, and returns the resulting forward
// handle. If h is already forward this is a structural no-op that returns
// h unchanged.
func (g *Graph) ApplyOrientation(h Handle) Handle {
	if !h.IsReverse() {
		g.logWarn("apply_orientation: handle already forward", "handle", h)
		return h
	}

	rank := h.Rank()
	rec := g.recordFor(h)

	rec.seq = reverseComplement(rec.seq)
	rec.adjFwd, rec.adjRev = rec.adjRev, rec.adjFwd
	rec.invFwd, rec.invRev = rec.invRev, rec.invFwd

	g.retoggleNeighborInversion(rank)
	g.flipStepsOnNode(rank)

	g.logDebug("apply_orientation", "rank", rank)
	return PackHandle(rank, false)
}

// DestroyHandle removes a node: every step of every path visiting it is
// unlinked (capturing the node's sequence as a diagnostic trace, see
// Graph.UnlinkedSteps), every edge touching it is removed, and its slot is
// tombstoned.
func (g *Graph) DestroyHandle(h Handle) {
	rank := h.Rank()
	rec := g.recordFor(h)
	id := rec.id

	g.unlinkOccurrencesOnNode(rank, rec.seq)

	// Repeatedly remove the first remaining edge on either side until both
	// are empty; DestroyEdge keeps both endpoints' adjacency lists in sync.
	for rec.adjFwd.Len() > 0 {
		nRank := rec.adjFwd.At(0) - 1
		nRev := rec.invFwd.At(0)
		g.DestroyEdge(PackHandle(rank, false), PackHandle(nRank, nRev))
	}
	for rec.adjRev.Len() > 0 {
		nRank := rec.adjRev.At(0) - 1
		nRev := rec.invRev.At(0)
		g.DestroyEdge(PackHandle(rank, true), PackHandle(nRank, nRev))
	}

	rec.deleted = true
	rec.seq = ""
	delete(g.idToRank, id)
	g.nodeCount--

	g.logDebug("destroy_handle", "id", id, "rank", rank)
	g.hookNodeDestroyed(id)
}

// DivideHandle splits the node underlying h at the given 0-based offsets
// (measured along h's orientation, strictly increasing, all in (0,len)),
// producing len(offsets)+1 new forward-oriented nodes in left-to-right
// order along h. Edges that touched h's left side now touch the first
// piece; edges that touched h's right side now touch the last piece; the
// pieces are chained together with new edges. Every path step that visited
// h is rewritten into the matching sequence of steps over the new pieces,
// preserving orientation. The original node is destroyed. It panics if
// offsets is empty or out of range.
func (g *Graph) DivideHandle(h Handle, offsets []int) []Handle {
	if len(offsets) == 0 {
		panic(invalidStepError("divide_handle requires at least one offset"))
	}
	seq := g.GetSequence(h)
	n := len(seq)
	prev := 0
	bounds := append([]int{}, offsets...)
	for i, o := range bounds {
		if o <= prev || o >= n {
			panic(invalidStepError("divide_handle offsets must be strictly increasing and within (0,len)"))
		}
		prev = o
		_ = i
	}

	pieces := make([]string, 0, len(bounds)+1)
	start := 0
	for _, o := range bounds {
		pieces = append(pieces, seq[start:o])
		start = o
	}
	pieces = append(pieces, seq[start:])

	leftNeighbors := g.snapshotEdges(h, true)
	rightNeighbors := g.snapshotEdges(h, false)

	newHandles := make([]Handle, len(pieces))
	for i, p := range pieces {
		newHandles[i] = g.CreateHandle(p)
	}
	for i := 0; i < len(newHandles)-1; i++ {
		g.CreateEdge(newHandles[i], newHandles[i+1])
	}
	for _, nb := range leftNeighbors {
		g.CreateEdge(nb, newHandles[0])
	}
	for _, nb := range rightNeighbors {
		g.CreateEdge(newHandles[len(newHandles)-1], nb)
	}

	g.rewritePathsForDivision(h, newHandles)

	rank := h.Rank()
	rec := g.records[rank]
	for rec.adjFwd.Len() > 0 {
		nRank := rec.adjFwd.At(0) - 1
		nRev := rec.invFwd.At(0)
		g.DestroyEdge(PackHandle(rank, false), PackHandle(nRank, nRev))
	}
	for rec.adjRev.Len() > 0 {
		nRank := rec.adjRev.At(0) - 1
		nRev := rec.invRev.At(0)
		g.DestroyEdge(PackHandle(rank, true), PackHandle(nRank, nRev))
	}
	id := rec.id
	rec.deleted = true
	rec.seq = ""
	delete(g.idToRank, id)
	g.nodeCount--
	g.hookNodeDestroyed(id)

	return newHandles
}

// snapshotEdges returns forward-or-reverse handles for every neighbor
// reachable by leaving h on the side named by goLeft, before any mutation.
func (g *Graph) snapshotEdges(h Handle, goLeft bool) []Handle {
	var out []Handle
	g.FollowEdges(h, goLeft, func(nb Handle) bool {
		out = append(out, nb)
		return true
	})
	return out
}

func validateNodeID(id int64) error {
	if id <= 0 {
		return invalidNodeIDError(id)
	}
	return nil
}
