// Package parallel contains the bounded ForEach used by the per-clause parallel feedback.
package parallel

import "runtime"
import "sync"

import "github.com/klauspost/cpuid/v2"

// Threads reports the default number of goroutines: the logical core count
// reported by cpuid, or runtime.NumCPU when cpuid does not know it.
func Threads() int {
	if cpuid.CPU.LogicalCores > 0 {
		return cpuid.CPU.LogicalCores
	}
	return runtime.NumCPU()
}

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length. The worker argument
// is in [0, limit) and no two concurrent bodies share the same worker,
// so the body may use per worker memory without locking.
func ForEach(length, limit int, body func(worker, i int)) {
	if limit <= 0 {
		limit = 1 // Default to 1 if limit is zero or negative
	}
	if length <= 0 {
		return // No iterations to perform
	}
	if limit > length {
		limit = length
	}

	workers := make(chan int, limit) // Semaphore holding free worker ids
	for w := 0; w < limit; w++ {
		workers <- w
	}
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		w := <-workers // Acquire worker
		go func(w, i int) {
			defer wg.Done()
			defer func() { workers <- w }() // Release worker after function exits

			body(w, i)
		}(w, i)
	}

	wg.Wait() // Wait for all goroutines to finish
}
