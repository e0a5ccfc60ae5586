package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecuteCoversEveryIndexOnce(t *testing.T) {
	assert := require.New(t)

	for _, n := range []int{1, 2, 7, 64, 1000} {
		hits := make([]int32, n)
		Execute(0, n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			assert.EqualValues(1, h, "index %d of %d", i, n)
		}
	}
}

func TestExecuteOffsetRange(t *testing.T) {
	assert := require.New(t)

	var sum int64
	Execute(10, 20, func(start, end int) {
		var local int64
		for i := start; i < end; i++ {
			local += int64(i)
		}
		atomic.AddInt64(&sum, local)
	})
	assert.EqualValues(145, sum) // 10+11+...+19
}

func TestExecuteEmptyRange(t *testing.T) {
	Execute(5, 5, func(int, int) { t.Fatal("work invoked on empty range") })
	Execute(5, 3, func(int, int) { t.Fatal("work invoked on empty range") })
}
