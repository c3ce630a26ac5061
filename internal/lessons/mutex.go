package lessons

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// CountWithMutex runs n goroutines that each increment a shared counter
// once, guarded by a sync.Mutex, and returns the final value.
//
// The mutex is the whole point: the read-increment-write in each worker is
// not atomic, and without the lock two workers could both read the same
// value and lose an increment. With the lock the final value is always n,
// no matter how the scheduler interleaves the workers.
func CountWithMutex(n int) int {
	var (
		mu      sync.Mutex
		counter int
		wg      sync.WaitGroup
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return counter
}

// RunMutex prints the transcript for lesson 6.
func RunMutex(w io.Writer) error {
	const workers = 2
	fmt.Fprintf(w, "incrementing a shared counter from %d goroutines\n", workers)
	fmt.Fprintf(w, "final counter = %d\n", CountWithMutex(workers))
	return nil
}
