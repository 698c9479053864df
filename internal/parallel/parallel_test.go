package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ExactCover(t *testing.T) {
	// Every index in [0, n) must land in exactly one range, for
	// divisible and non-divisible worker counts alike.
	for n := 0; n <= 64; n++ {
		for workers := 1; workers <= 8; workers++ {
			ranges := Split(n, workers)
			require.Len(t, ranges, workers)

			seen := make([]int, n)
			prev := 0
			for _, r := range ranges {
				assert.Equal(t, prev, r.From, "ranges must be contiguous (n=%d w=%d)", n, workers)
				assert.GreaterOrEqual(t, r.To, r.From)
				for i := r.From; i < r.To; i++ {
					seen[i]++
				}
				prev = r.To
			}
			assert.Equal(t, n, prev, "ranges must end at n (n=%d w=%d)", n, workers)
			for i, c := range seen {
				assert.Equal(t, 1, c, "index %d covered %d times (n=%d w=%d)", i, c, n, workers)
			}
		}
	}
}

func TestSplit_RemainderLandsLate(t *testing.T) {
	ranges := Split(10, 3)
	assert.Equal(t, []Range{{0, 3}, {3, 6}, {6, 10}}, ranges)
}

func TestSplit_MoreWorkersThanWork(t *testing.T) {
	ranges := Split(2, 4)
	total := 0
	for _, r := range ranges {
		total += r.Len()
	}
	assert.Equal(t, 2, total)
}

func TestRun_EachWorkerOnce(t *testing.T) {
	const workers = 7
	var calls [workers]int64
	Run(workers, func(id int) {
		atomic.AddInt64(&calls[id], 1)
	})
	for id, c := range calls {
		assert.Equal(t, int64(1), c, "worker %d", id)
	}
}

func TestRun_JoinsBeforeReturning(t *testing.T) {
	const workers = 4
	results := make([]bool, workers)
	Run(workers, func(id int) {
		results[id] = true
	})
	// Run returned, so every worker must have finished.
	for id, done := range results {
		require.True(t, done, "worker %d had not finished at the barrier", id)
	}
}

func TestRun_SingleWorkerIsInline(t *testing.T) {
	n := 0
	Run(1, func(id int) {
		assert.Equal(t, 0, id)
		n++
	})
	assert.Equal(t, 1, n)
}
