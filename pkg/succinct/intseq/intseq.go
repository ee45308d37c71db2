// Package intseq implements a dynamic sequence of small non-negative
// integers with positional insert/remove and rank/select by value.
//
// This backs the node store's adjacency lists and the occurrence index's
// node-to-path/node-to-step-rank arrays: any place the design calls for a
// growable, randomly-mutable array of symbols with "how many times has this
// value appeared so far" and "where is the k-th occurrence of this value"
// queries. Like pkg/succinct/bitvec, this is the "plain compact array"
// substitute for a true dynamic wavelet tree: rank/select here are O(n)
// linear scans rather than O(log n), acceptable because adjacency-list and
// occurrence-index records are short relative to the whole graph.
package intseq

// Seq is a dynamic sequence of int64 symbols.
type Seq struct {
	data []int64
}

// New returns an empty Seq.
func New() *Seq {
	return &Seq{}
}

// Len returns the number of symbols stored.
func (s *Seq) Len() int {
	return len(s.data)
}

// At returns the symbol at position i. It panics if i is out of range.
func (s *Seq) At(i int) int64 {
	return s.data[i]
}

// PushBack appends v.
func (s *Seq) PushBack(v int64) {
	s.data = append(s.data, v)
}

// Insert places v at position i, shifting [i,len) one place to the right.
// i may equal Len() to append. It panics if i is out of range.
func (s *Seq) Insert(i int, v int64) {
	if i < 0 || i > len(s.data) {
		panic("intseq: index out of range")
	}
	s.data = append(s.data, 0)
	copy(s.data[i+1:], s.data[i:])
	s.data[i] = v
}

// Remove deletes the symbol at position i and returns it. It panics if i
// is out of range.
func (s *Seq) Remove(i int) int64 {
	v := s.data[i]
	copy(s.data[i:], s.data[i+1:])
	s.data = s.data[:len(s.data)-1]
	return v
}

// Set overwrites the symbol at position i. It panics if i is out of range.
func (s *Seq) Set(i int, v int64) {
	s.data[i] = v
}

// Rank returns the number of occurrences of v in [0,i).
func (s *Seq) Rank(i int, v int64) int {
	if i > len(s.data) {
		i = len(s.data)
	}
	count := 0
	for j := 0; j < i; j++ {
		if s.data[j] == v {
			count++
		}
	}
	return count
}

// Select returns the position of the k-th occurrence of v (0-indexed among
// occurrences of v), or -1 if there is no such occurrence.
func (s *Seq) Select(k int, v int64) int {
	if k < 0 {
		return -1
	}
	remaining := k
	for i, x := range s.data {
		if x == v {
			if remaining == 0 {
				return i
			}
			remaining--
		}
	}
	return -1
}

// Slice returns a defensive copy of the underlying data, in order.
func (s *Seq) Slice() []int64 {
	out := make([]int64, len(s.data))
	copy(out, s.data)
	return out
}
