package vgraph

// Occurrence is an opaque (path, step-rank) pair identifying one visit of a
// path to a node. Like Handle, it is a value: stable only until the next
// mutation of Path or the destruction of the node the step names.
type Occurrence struct {
	Path     PathHandle
	StepRank int
}

// addOccurrence records that step stepRank of path pathID visits node rank.
func (g *Graph) addOccurrence(rank, pathID int64, stepRank int) {
	rec := g.records[rank]
	rec.occPathIDs.PushBack(pathID + 1)
	rec.occStepRanks.PushBack(int64(stepRank) + 1)
}

// removeOccurrence drops the occurrence record for step stepRank of path
// pathID on node rank, if present. It reports whether a record was found.
func (g *Graph) removeOccurrence(rank, pathID int64, stepRank int) bool {
	rec := g.records[rank]
	target := int64(stepRank) + 1
	for i := 0; i < rec.occStepRanks.Len(); i++ {
		if rec.occStepRanks.At(i) == target && rec.occPathIDs.At(i) == pathID+1 {
			rec.occPathIDs.Remove(i)
			rec.occStepRanks.Remove(i)
			return true
		}
	}
	return false
}

// ForEachOccurrenceOnHandle visits every (path, step rank) pair currently
// occupied by h's underlying node, regardless of h's orientation. It stops
// early if visit returns false.
func (g *Graph) ForEachOccurrenceOnHandle(h Handle, visit func(p PathHandle, stepRank int) bool) {
	rec := g.recordFor(h)
	for i := 0; i < rec.occPathIDs.Len(); i++ {
		pathID := rec.occPathIDs.At(i) - 1
		stepRank := int(rec.occStepRanks.At(i) - 1)
		if !visit(PathHandle(pathID), stepRank) {
			return
		}
	}
}

// DegreeOfOccurrence returns the number of paths currently visiting h's
// underlying node, counted per step (a path visiting the node twice counts
// twice).
func (g *Graph) DegreeOfOccurrence(h Handle) int {
	return g.recordFor(h).occPathIDs.Len()
}
