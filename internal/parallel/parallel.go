// Package parallel provides range partitioning and fork/join execution
// for the seqtag training loops.
package parallel

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Config controls parallel execution behavior.
type Config struct {
	Workers int // Number of worker goroutines to use.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// Range is a contiguous half-open interval [From, To) of indices.
type Range struct {
	From, To int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.To - r.From
}

// Split partitions [0, n) into workers contiguous half-open ranges.
//
// Worker id gets [n*id/workers, n*(id+1)/workers) by integer floor
// division. The ranges are disjoint and cover [0, n) exactly for any
// n >= 0 and workers >= 1; when n is not a multiple of workers the
// remainder indices land in the later ranges. Some ranges may be empty
// when workers > n.
func Split(n, workers int) []Range {
	ranges := make([]Range, workers)
	for id := 0; id < workers; id++ {
		ranges[id] = Range{From: n * id / workers, To: n * (id + 1) / workers}
	}
	return ranges
}

// Run executes fn(id) for id in [0, workers) concurrently and blocks
// until every invocation has returned.
//
// This is a synchronous fork/join: no worker outlives the call, and two
// consecutive Run calls never overlap. Callers are responsible for
// making the per-worker work disjoint; Run adds no locking.
func Run(workers int, fn func(id int)) {
	if workers == 1 {
		fn(0)
		return
	}
	p := pool.New().WithMaxGoroutines(workers)
	for id := 0; id < workers; id++ {
		id := id
		p.Go(func() {
			fn(id)
		})
	}
	p.Wait()
}
