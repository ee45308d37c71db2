package vgraph

import "sort"

// unlinkOccurrencesOnNode tombstones every step currently visiting rank,
// capturing seq (oriented per each step) as its diagnostic trace, and
// drains the node's occurrence records. Used by DestroyHandle, where the
// node's own record is about to be torn down.
func (g *Graph) unlinkOccurrencesOnNode(rank int64, seq string) {
	rec := g.records[rank]
	for rec.occPathIDs.Len() > 0 {
		pathID := rec.occPathIDs.At(0) - 1
		stepRank := int(rec.occStepRanks.At(0) - 1)
		pathRec := g.paths[pathID]
		step := &pathRec.steps[stepRank]

		s := seq
		if step.Reverse {
			s = reverseComplement(seq)
		}
		step.Unlinked = true
		step.CapturedSeq = s

		rec.occPathIDs.Remove(0)
		rec.occStepRanks.Remove(0)
		g.hookPathMutated(pathID, "unlink")
	}
}

// flipStepsOnNode toggles the stored orientation of every step currently
// visiting rank, after rank's node record has had its own strand flipped in
// place by ApplyOrientation. This keeps each step's visible sequence
// unchanged even though the node's canonical forward strand changed.
func (g *Graph) flipStepsOnNode(rank int64) {
	rec := g.records[rank]
	for i := 0; i < rec.occPathIDs.Len(); i++ {
		pathID := rec.occPathIDs.At(i) - 1
		stepRank := int(rec.occStepRanks.At(i) - 1)
		step := &g.paths[pathID].steps[stepRank]
		step.Reverse = !step.Reverse
	}
}

// rewritePathsForDivision replaces every path step currently visiting h's
// node with the matching run of steps over newHandles, preserving each
// step's visible orientation. newHandles must be in left-to-right order
// along h's own visible direction (the order DivideHandle creates and
// returns them in).
func (g *Graph) rewritePathsForDivision(h Handle, newHandles []Handle) {
	rank := h.Rank()
	rec := g.records[rank]

	byPath := make(map[int64][]int)
	for i := 0; i < rec.occPathIDs.Len(); i++ {
		pathID := rec.occPathIDs.At(i) - 1
		stepRank := int(rec.occStepRanks.At(i) - 1)
		byPath[pathID] = append(byPath[pathID], stepRank)
	}

	for pathID, ranks := range byPath {
		sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
		pathRec := g.paths[pathID]
		for _, stepRank := range ranks {
			step := pathRec.steps[stepRank]
			var replacement []Handle
			if step.Reverse == h.IsReverse() {
				replacement = newHandles
			} else {
				replacement = make([]Handle, len(newHandles))
				for i, nh := range newHandles {
					replacement[len(newHandles)-1-i] = nh.Flip()
				}
			}
			g.ReplaceStepRun(PathHandle(pathID), stepRank, 1, replacement)
		}
	}
}

// updateOccurrenceStepRank rewrites the step rank recorded in rank's
// occurrence entry for (pathID, oldStepRank) to newStepRank.
func (g *Graph) updateOccurrenceStepRank(rank, pathID int64, oldStepRank, newStepRank int) {
	rec := g.records[rank]
	target := int64(oldStepRank) + 1
	for i := 0; i < rec.occStepRanks.Len(); i++ {
		if rec.occStepRanks.At(i) == target && rec.occPathIDs.At(i) == pathID+1 {
			rec.occStepRanks.Set(i, int64(newStepRank)+1)
			return
		}
	}
}
