package vgraph

import "github.com/kesterwylde/vgraph/pkg/vgerrors"

// PathHandle is an opaque reference to a path. Unlike Handle, a PathHandle
// carries no orientation: paths are traversed in the direction their steps
// were recorded.
type PathHandle int64

// Step is one recorded visit of a path to an oriented node side.
//
// Unlinked steps are tombstones: the step's rank within the path stays
// stable (node_to_step_rank entries elsewhere refer to it by position) but
// it no longer names a live node. CapturedSeq retains the destroyed node's
// sequence, oriented as the step saw it, purely as a diagnostic trace —
// nothing in this package reconstructs a path's DNA sequence through an
// unlinked step.
type Step struct {
	NodeRank    int64
	Reverse     bool
	Unlinked    bool
	CapturedSeq string
}

type pathRecord struct {
	id      int64
	deleted bool
	steps   []Step
}

// CreatePath allocates a new empty path with the given name and returns its
// handle. The name is appended to the graph's path-name catalog
// (pkg/succinct/strcat), which backs both PathName and FindPathsByName. It
// panics if the name is invalid or already in use.
func (g *Graph) CreatePath(name string) PathHandle {
	if err := validatePathName(name); err != nil {
		panic(err)
	}
	if _, exists := g.pathNameToID[name]; exists {
		panic(duplicatePathError(name))
	}

	catalogID, err := g.pathNames.Append(name)
	if err != nil {
		panic(invalidStepError("create_path: %v", err))
	}

	id := int64(len(g.paths))
	if catalogID != int(id) {
		panic(invalidStepError("create_path: path-name catalog out of sync (catalog id %d, path id %d)", catalogID, id))
	}
	g.paths = append(g.paths, &pathRecord{id: id})
	g.pathNameToID[name] = id

	g.logDebug("create_path", "name", name, "id", id)
	return PathHandle(id)
}

// HasPath reports whether name currently names a live path.
func (g *Graph) HasPath(name string) bool {
	id, ok := g.pathNameToID[name]
	if !ok {
		return false
	}
	return !g.paths[id].deleted
}

// GetPathHandle returns the handle for name. It panics if name does not
// name a live path.
func (g *Graph) GetPathHandle(name string) PathHandle {
	id, ok := g.pathNameToID[name]
	if !ok || g.paths[id].deleted {
		panic(pathNotFoundError(name))
	}
	return PathHandle(id)
}

// PathName returns the name of p, read back from the path-name catalog. It
// panics if p does not name a live path.
func (g *Graph) PathName(p PathHandle) string {
	rec := g.pathRecordFor(p)
	return g.pathNames.Name(int(rec.id))
}

// FindPathsByName returns every live path whose name contains pattern as a
// substring, via the path-name catalog's suffix-array Locate.
func (g *Graph) FindPathsByName(pattern string) []PathHandle {
	ids := g.pathNames.Locate(pattern)
	out := make([]PathHandle, 0, len(ids))
	for _, id := range ids {
		if !g.paths[id].deleted {
			out = append(out, PathHandle(id))
		}
	}
	return out
}

// PathLength returns the number of steps in p, including unlinked
// tombstones.
func (g *Graph) PathLength(p PathHandle) int {
	return len(g.pathRecordFor(p).steps)
}

func (g *Graph) pathRecordFor(p PathHandle) *pathRecord {
	idx := int64(p)
	if idx < 0 || idx >= int64(len(g.paths)) {
		panic(pathNotFoundError("<invalid>"))
	}
	rec := g.paths[idx]
	if rec.deleted {
		panic(pathNotFoundError(g.pathNames.Name(int(rec.id))))
	}
	return rec
}

// ForEachPath visits every live path.
func (g *Graph) ForEachPath(visit func(PathHandle) bool) {
	for _, rec := range g.paths {
		if rec.deleted {
			continue
		}
		if !visit(PathHandle(rec.id)) {
			return
		}
	}
}

// ForEachStep visits every step of p in order, including unlinked
// tombstones, passing the step's rank within the path.
func (g *Graph) ForEachStep(p PathHandle, visit func(stepRank int, step Step) bool) {
	rec := g.pathRecordFor(p)
	for i, s := range rec.steps {
		if !visit(i, s) {
			return
		}
	}
}

// AppendStep appends h to the end of p and returns the new step's rank.
func (g *Graph) AppendStep(p PathHandle, h Handle) int {
	rec := g.pathRecordFor(p)
	g.recordFor(h) // validates h names a live node

	stepRank := len(rec.steps)
	rec.steps = append(rec.steps, Step{NodeRank: h.Rank(), Reverse: h.IsReverse()})
	g.addOccurrence(h.Rank(), rec.id, stepRank)

	g.logDebug("append_step", "path", rec.id, "step", stepRank, "rank", h.Rank())
	g.hookPathMutated(rec.id, "append")
	return stepRank
}

// UnlinkStep tombstones the step at stepRank in p, capturing the node's
// current sequence (oriented as the step saw it) as a diagnostic trace. It
// panics if p is empty or stepRank is out of range.
func (g *Graph) UnlinkStep(p PathHandle, stepRank int) {
	rec := g.pathRecordFor(p)
	if err := validateStepIndex(stepRank, len(rec.steps)); err != nil {
		panic(err)
	}
	step := &rec.steps[stepRank]
	if step.Unlinked {
		g.logWarn("unlink_step: step already unlinked", "path", rec.id, "step", stepRank)
		return
	}

	nodeRec := g.records[step.NodeRank]
	seq := nodeRec.seq
	if step.Reverse {
		seq = reverseComplement(seq)
	}

	g.removeOccurrence(step.NodeRank, rec.id, stepRank)
	step.Unlinked = true
	step.CapturedSeq = seq

	g.logDebug("unlink_step", "path", rec.id, "step", stepRank)
	g.hookPathMutated(rec.id, "unlink")
}

// RewriteStep replaces the node referenced by the step at stepRank with h,
// preserving the step's rank within the path. It panics if p is empty,
// stepRank is out of range, or the step is already unlinked.
func (g *Graph) RewriteStep(p PathHandle, stepRank int, h Handle) {
	rec := g.pathRecordFor(p)
	if err := validateStepIndex(stepRank, len(rec.steps)); err != nil {
		panic(err)
	}
	g.recordFor(h)

	step := &rec.steps[stepRank]
	if step.Unlinked {
		panic(invalidStepError("rewrite_step: step %d of path id %d is unlinked", stepRank, rec.id))
	}

	g.removeOccurrence(step.NodeRank, rec.id, stepRank)
	step.NodeRank = h.Rank()
	step.Reverse = h.IsReverse()
	g.addOccurrence(h.Rank(), rec.id, stepRank)

	g.logDebug("rewrite_step", "path", rec.id, "step", stepRank, "rank", h.Rank())
	g.hookPathMutated(rec.id, "rewrite")
}

// StepAt returns the step at stepRank in p. It panics if p is empty or
// stepRank is out of range.
func (g *Graph) StepAt(p PathHandle, stepRank int) Step {
	rec := g.pathRecordFor(p)
	if err := validateStepIndex(stepRank, len(rec.steps)); err != nil {
		panic(err)
	}
	return rec.steps[stepRank]
}

// ReplaceStepRun replaces the count consecutive steps of p starting at
// startRank with the steps named by replacement, shifting every later
// step's rank (and its occurrence-index entry) by len(replacement)-count.
// It is the general form behind both DivideHandle's one-step-to-many
// rewrite and Unchop's many-steps-to-one merge. It panics if the range
// [startRank,startRank+count) is out of bounds for p.
func (g *Graph) ReplaceStepRun(p PathHandle, startRank, count int, replacement []Handle) {
	rec := g.pathRecordFor(p)
	if count < 1 || startRank < 0 || startRank+count > len(rec.steps) {
		panic(invalidStepError("replace_step_run: range [%d,%d) out of bounds for path id %d (len %d)",
			startRank, startRank+count, rec.id, len(rec.steps)))
	}

	for i := startRank; i < startRank+count; i++ {
		s := rec.steps[i]
		if !s.Unlinked {
			g.removeOccurrence(s.NodeRank, rec.id, i)
		}
	}

	delta := len(replacement) - count
	if delta != 0 {
		for i := startRank + count; i < len(rec.steps); i++ {
			s := rec.steps[i]
			if s.Unlinked {
				continue
			}
			g.updateOccurrenceStepRank(s.NodeRank, rec.id, i, i+delta)
		}
	}

	newSteps := make([]Step, 0, len(rec.steps)+delta)
	newSteps = append(newSteps, rec.steps[:startRank]...)
	for _, h := range replacement {
		newSteps = append(newSteps, Step{NodeRank: h.Rank(), Reverse: h.IsReverse()})
	}
	newSteps = append(newSteps, rec.steps[startRank+count:]...)
	rec.steps = newSteps

	for i, h := range replacement {
		g.addOccurrence(h.Rank(), rec.id, startRank+i)
	}

	g.logDebug("replace_step_run", "path", rec.id, "start", startRank, "count", count, "replacement", len(replacement))
	g.hookPathMutated(rec.id, "rewrite")
}

// DestroyPath unlinks every step of p and clears it. p's slot (and id)
// remain allocated; HasPath(name) becomes false, and a later CreatePath
// with the same name allocates a new slot.
func (g *Graph) DestroyPath(p PathHandle) {
	rec := g.pathRecordFor(p)
	for i, s := range rec.steps {
		if !s.Unlinked {
			g.removeOccurrence(s.NodeRank, rec.id, i)
		}
	}
	name := g.pathNames.Name(int(rec.id))
	rec.steps = nil
	rec.deleted = true
	delete(g.pathNameToID, name)

	g.logDebug("destroy_path", "name", name)
	g.hookPathMutated(rec.id, "destroy")
}

// GetPathCount returns the number of live paths.
func (g *Graph) GetPathCount() int {
	count := 0
	for _, rec := range g.paths {
		if !rec.deleted {
			count++
		}
	}
	return count
}

// IsEmpty reports whether p has no steps at all, tombstones included.
func (g *Graph) IsEmpty(p PathHandle) bool {
	return len(g.pathRecordFor(p).steps) == 0
}

// GetOccurrence returns the handle visited by occ, oriented as the step
// recorded it. It panics if occ's step rank is out of range or the step is
// unlinked.
func (g *Graph) GetOccurrence(occ Occurrence) Handle {
	rec := g.pathRecordFor(occ.Path)
	if err := validateStepIndex(occ.StepRank, len(rec.steps)); err != nil {
		panic(err)
	}
	step := rec.steps[occ.StepRank]
	if step.Unlinked {
		panic(invalidStepError("get_occurrence: step %d of path id %d is unlinked", occ.StepRank, rec.id))
	}
	return PackHandle(step.NodeRank, step.Reverse)
}

// GetFirstOccurrence returns the occurrence at p's first step. It panics if
// p has no steps, per the error taxonomy's "empty-path queries against
// first/last occurrence" usage violation.
func (g *Graph) GetFirstOccurrence(p PathHandle) Occurrence {
	rec := g.pathRecordFor(p)
	if len(rec.steps) == 0 {
		panic(emptyPathQueryError(g.pathNames.Name(int(rec.id))))
	}
	return Occurrence{Path: p, StepRank: 0}
}

// GetLastOccurrence returns the occurrence at p's last step. It panics if p
// has no steps.
func (g *Graph) GetLastOccurrence(p PathHandle) Occurrence {
	rec := g.pathRecordFor(p)
	if len(rec.steps) == 0 {
		panic(emptyPathQueryError(g.pathNames.Name(int(rec.id))))
	}
	return Occurrence{Path: p, StepRank: len(rec.steps) - 1}
}

// HasNextOccurrence reports whether occ has a successor step in its path.
func (g *Graph) HasNextOccurrence(occ Occurrence) bool {
	rec := g.pathRecordFor(occ.Path)
	return occ.StepRank+1 < len(rec.steps)
}

// HasPreviousOccurrence reports whether occ has a predecessor step in its
// path.
func (g *Graph) HasPreviousOccurrence(occ Occurrence) bool {
	return occ.StepRank > 0
}

// GetNextOccurrence returns the occurrence following occ in its path. It
// panics if occ names the last step.
func (g *Graph) GetNextOccurrence(occ Occurrence) Occurrence {
	if !g.HasNextOccurrence(occ) {
		panic(invalidStepError("get_next_occurrence: step %d of path id %d has no successor", occ.StepRank, occ.Path))
	}
	return Occurrence{Path: occ.Path, StepRank: occ.StepRank + 1}
}

// GetPreviousOccurrence returns the occurrence preceding occ in its path.
// It panics if occ names the first step.
func (g *Graph) GetPreviousOccurrence(occ Occurrence) Occurrence {
	if !g.HasPreviousOccurrence(occ) {
		panic(invalidStepError("get_previous_occurrence: step %d of path id %d has no predecessor", occ.StepRank, occ.Path))
	}
	return Occurrence{Path: occ.Path, StepRank: occ.StepRank - 1}
}

// GetPathHandleOfOccurrence returns the path occ belongs to.
func (g *Graph) GetPathHandleOfOccurrence(occ Occurrence) PathHandle {
	return occ.Path
}

// GetOrdinalRankOfOccurrence returns occ's step rank within its path.
func (g *Graph) GetOrdinalRankOfOccurrence(occ Occurrence) int {
	return occ.StepRank
}

// ForEachOccurrenceInPath visits every live (non-tombstoned) step of p in
// rank order, stopping early if visit returns false.
func (g *Graph) ForEachOccurrenceInPath(p PathHandle, visit func(Occurrence) bool) {
	rec := g.pathRecordFor(p)
	for i, s := range rec.steps {
		if s.Unlinked {
			continue
		}
		if !visit(Occurrence{Path: p, StepRank: i}) {
			return
		}
	}
}

// UnlinkedSteps returns every tombstoned step across every path, in path
// order then step order, as a diagnostic audit accessor. It is not part of
// the core query surface; nothing else in this package relies on it.
func (g *Graph) UnlinkedSteps() []Step {
	var out []Step
	for _, rec := range g.paths {
		for _, s := range rec.steps {
			if s.Unlinked {
				out = append(out, s)
			}
		}
	}
	return out
}

func validatePathName(name string) error {
	return vgerrors.ValidatePathName(name)
}

func validateStepIndex(stepRank, length int) error {
	return vgerrors.ValidateStepIndex(stepRank, length)
}
