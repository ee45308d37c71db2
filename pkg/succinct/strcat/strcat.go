// Package strcat implements the path-name catalog: an append-only,
// '$'-delimited concatenation of path names with substring Locate, used to
// answer "does a path matching this name exist" and "rank -> path id"
// queries without holding a separate hash index.
//
// No library in the retrieval pack offers substring-locate over a growing
// byte buffer, so Locate is built on the standard library's suffixarray
// package. The index is rebuilt from scratch whenever the catalog has grown
// since the last Locate call; this is acceptable because path creation is
// rare relative to path-name queries in the workloads this store targets,
// and is a documented trade-off rather than a silent cap.
package strcat

import (
	"index/suffixarray"
	"sort"

	"github.com/kesterwylde/vgraph/pkg/succinct/bitvec"
	"github.com/kesterwylde/vgraph/pkg/vgerrors"
)

const delimiter = '$'

// Catalog is an append-only, delimiter-separated concatenation of path
// names with substring lookup.
type Catalog struct {
	buf    []byte
	delims *bitvec.Bitvec // one bit per byte of buf; true at each delimiter
	names  []string

	index *suffixarray.Index
	dirty bool
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{delims: bitvec.New()}
}

// Append adds name to the catalog and returns its path rank (0-based,
// assignment order). It rejects names containing the reserved delimiter.
func (c *Catalog) Append(name string) (int, error) {
	if err := vgerrors.ValidatePathName(name); err != nil {
		return 0, err
	}

	id := len(c.names)
	c.names = append(c.names, name)

	c.buf = append(c.buf, []byte(name)...)
	c.buf = append(c.buf, delimiter)
	for i := 0; i < len(name); i++ {
		c.delims.PushBack(false)
	}
	c.delims.PushBack(true)

	c.dirty = true
	return id, nil
}

// Count returns the number of path names in the catalog.
func (c *Catalog) Count() int {
	return len(c.names)
}

// Name returns the path name at the given rank.
func (c *Catalog) Name(pathID int) string {
	return c.names[pathID]
}

// Locate returns, in ascending order, the path ranks of every name
// containing pattern as a substring.
func (c *Catalog) Locate(pattern string) []int {
	if pattern == "" || len(c.buf) == 0 {
		return nil
	}
	c.ensureIndex()

	offsets := c.index.Lookup([]byte(pattern), -1)
	seen := make(map[int]bool, len(offsets))
	ids := make([]int, 0, len(offsets))
	for _, off := range offsets {
		id := c.delims.Rank1(off)
		if id >= len(c.names) {
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (c *Catalog) ensureIndex() {
	if !c.dirty && c.index != nil {
		return
	}
	snapshot := make([]byte, len(c.buf))
	copy(snapshot, c.buf)
	c.index = suffixarray.New(snapshot)
	c.dirty = false
}
