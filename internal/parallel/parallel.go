// Package parallel provides a chunked worker pool for CPU-bound loops.
package parallel

import (
	"runtime"
	"sync"
)

// Execute runs work over [iStart, iEnd) split into at most NumCPU chunks and
// waits for completion. Every chunk runs to completion; the caller is
// responsible for collecting per-index results and errors.
func Execute(iStart, iEnd int, work func(int, int)) {
	nbIterations := iEnd - iStart // iEnd is not included
	if nbIterations <= 0 {
		return
	}

	nbTasks := runtime.NumCPU()
	nbIterationsPerCPU := nbIterations / nbTasks

	// more CPUs than iterations: a worker handles exactly one iteration
	if nbIterationsPerCPU < 1 {
		nbIterationsPerCPU = 1
		nbTasks = nbIterations
	}

	var wg sync.WaitGroup

	extraTasks := iEnd - (iStart + nbTasks*nbIterationsPerCPU)
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		wg.Add(1)
		start := iStart + i*nbIterationsPerCPU + extraTasksOffset
		end := start + nbIterationsPerCPU
		if extraTasks > 0 {
			end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(start, end)
			wg.Done()
		}()
	}

	wg.Wait()
}
