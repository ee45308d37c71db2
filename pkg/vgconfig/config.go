// Package vgconfig holds the tunables for algorithms and parallel traversal
// that have no single correct default: worker counts, verbosity of the
// unchop pass. The core mutation path has no tunables and does not depend
// on this package.
package vgconfig

import (
	"runtime"

	"github.com/BurntSushi/toml"
)

// Options holds the runtime tunables for parallel traversal and unchop.
type Options struct {
	// ParallelWorkers is the number of goroutines used by
	// Graph.ForEachHandleParallel and by the threaded form of Unchop.
	// Load replaces a zero or negative value with Default's
	// GOMAXPROCS-derived value; the consumers themselves treat a value
	// below one as one.
	ParallelWorkers int `toml:"parallel_workers"`

	// UnchopVerbose enables per-chain progress logging during Unchop.
	UnchopVerbose bool `toml:"unchop_verbose"`
}

// Default returns the zero-tuned Options: one worker per logical CPU and
// quiet unchop.
func Default() Options {
	return Options{
		ParallelWorkers: runtime.GOMAXPROCS(0),
		UnchopVerbose:   false,
	}
}

// Load decodes a TOML file into Options, filling any field the file omits
// with Default's value.
func Load(path string) (Options, error) {
	opts := Default()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, err
	}
	if opts.ParallelWorkers <= 0 {
		opts.ParallelWorkers = runtime.GOMAXPROCS(0)
	}
	return opts, nil
}
