package bitvec

import "testing"

func TestPushBackAndAt(t *testing.T) {
	b := New()
	bits := []bool{true, false, true, true, false}
	for _, v := range bits {
		b.PushBack(v)
	}
	if b.Len() != len(bits) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(bits))
	}
	for i, want := range bits {
		if got := b.At(i); got != want {
			t.Errorf("At(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestInsertShiftsTail(t *testing.T) {
	b := New()
	for _, v := range []bool{true, true, true} {
		b.PushBack(v)
	}
	b.Insert(1, false)
	want := []bool{true, false, true, true}
	if b.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(want))
	}
	for i, w := range want {
		if got := b.At(i); got != w {
			t.Errorf("At(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestRemoveShiftsTail(t *testing.T) {
	b := New()
	for _, v := range []bool{true, false, true, true, false} {
		b.PushBack(v)
	}
	removed := b.Remove(1)
	if removed != false {
		t.Fatalf("Remove(1) = %v, want false", removed)
	}
	want := []bool{true, true, true, false}
	if b.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(want))
	}
	for i, w := range want {
		if got := b.At(i); got != w {
			t.Errorf("At(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestRank1(t *testing.T) {
	b := New()
	for _, v := range []bool{true, false, true, true, false, true} {
		b.PushBack(v)
	}
	cases := []struct {
		i    int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{6, 4},
	}
	for _, c := range cases {
		if got := b.Rank1(c.i); got != c.want {
			t.Errorf("Rank1(%d) = %d, want %d", c.i, got, c.want)
		}
	}
}

func TestSelect1(t *testing.T) {
	b := New()
	for _, v := range []bool{true, false, true, true, false, true} {
		b.PushBack(v)
	}
	// set bits are at positions 0, 2, 3, 5
	want := []int{0, 2, 3, 5}
	for k, pos := range want {
		if got := b.Select1(k); got != pos {
			t.Errorf("Select1(%d) = %d, want %d", k, got, pos)
		}
	}
	if got := b.Select1(len(want)); got != -1 {
		t.Errorf("Select1(%d) = %d, want -1", len(want), got)
	}
}

func TestRankSelectAcrossWordBoundary(t *testing.T) {
	b := New()
	const n = 200
	for i := 0; i < n; i++ {
		b.PushBack(i%7 == 0)
	}
	ones := 0
	for i := 0; i < n; i++ {
		if i%7 == 0 {
			if got := b.Select1(ones); got != i {
				t.Fatalf("Select1(%d) = %d, want %d", ones, got, i)
			}
			ones++
		}
	}
	if got := b.Rank1(n); got != ones {
		t.Fatalf("Rank1(%d) = %d, want %d", n, got, ones)
	}
}

func TestAtOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New().At(0)
}
