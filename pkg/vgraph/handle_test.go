package vgraph

import "testing"

func TestPackHandleRoundTrips(t *testing.T) {
	h := PackHandle(42, true)
	if h.Rank() != 42 {
		t.Errorf("Rank() = %d, want 42", h.Rank())
	}
	if !h.IsReverse() {
		t.Error("IsReverse() = false, want true")
	}
}

func TestFlipTogglesOrientationOnly(t *testing.T) {
	h := PackHandle(7, false)
	flipped := h.Flip()

	if flipped.Rank() != 7 {
		t.Errorf("Flip() changed rank: %d, want 7", flipped.Rank())
	}
	if !flipped.IsReverse() {
		t.Error("Flip() of a forward handle should be reverse")
	}
	if flipped.Flip() != h {
		t.Error("Flip() must be its own inverse")
	}
}

func TestForwardNormalizesOrientation(t *testing.T) {
	fwd := PackHandle(9, false)
	rev := PackHandle(9, true)

	if fwd.Forward() != fwd {
		t.Error("Forward() of an already-forward handle must be a no-op")
	}
	if rev.Forward() != fwd {
		t.Error("Forward() of a reverse handle must produce the matching forward handle")
	}
}
