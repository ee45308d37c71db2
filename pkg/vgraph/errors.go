package vgraph

import "github.com/kesterwylde/vgraph/pkg/vgerrors"

func invalidNodeIDError(id int64) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodeInvalidNodeID, "node id %d must be positive", id)
}

func duplicateNodeIDError(id int64) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodeDuplicateNodeID, "node id %d is already in use", id)
}

func nodeNotFoundError(id int64) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodeNodeNotFound, "node id %d does not exist", id)
}

func invalidHandleError(h Handle) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodeInvalidHandle, "handle %d does not refer to a live node", int64(h))
}

func invalidStepError(format string, args ...any) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodeInvalidStep, format, args...)
}

func duplicatePathError(name string) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodeDuplicatePath, "path %q already exists", name)
}

func pathNotFoundError(name string) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodePathNotFound, "path %q does not exist", name)
}

func emptyPathQueryError(name string) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodeEmptyPathQuery, "path %q has no steps", name)
}

func concurrentWriteError(op string) *vgerrors.Error {
	return vgerrors.New(vgerrors.ErrCodeConcurrentWrite, "%s: mutation attempted during parallel iteration", op)
}
