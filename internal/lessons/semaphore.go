package lessons

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// OccupancyUnderSemaphore runs workers goroutines through a weighted
// semaphore and returns the highest number of workers that ever held it at
// the same time.
//
// Each worker acquires weight 1, sleeps briefly to keep the slot occupied,
// and releases. The occupancy high-water mark is tracked with atomics; the
// semaphore guarantees it can never exceed limit, which is the invariant
// the transcript states.
func OccupancyUnderSemaphore(workers int, limit int64) (int64, error) {
	sem := semaphore.NewWeighted(limit)
	ctx := context.Background()

	var (
		inFlight atomic.Int64
		peak     atomic.Int64
		wg       sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			cur := inFlight.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
		}()
	}

	wg.Wait()
	return peak.Load(), nil
}

// RunSemaphore prints the transcript for lesson 7.
//
// The peak itself depends on scheduling (a very eager scheduler could run
// the workers one at a time), so the transcript asserts only the bound the
// semaphore enforces, never the exact peak.
func RunSemaphore(w io.Writer) error {
	const (
		workers = 4
		limit   = 2
	)

	fmt.Fprintf(w, "%d workers, semaphore weight %d\n", workers, limit)
	peak, err := OccupancyUnderSemaphore(workers, limit)
	if err != nil {
		return fmt.Errorf("semaphore lesson failed: %w", err)
	}
	if peak > limit {
		return fmt.Errorf("semaphore admitted %d concurrent workers, limit %d", peak, limit)
	}

	fmt.Fprintf(w, "never more than %d workers held the semaphore\n", limit)
	return nil
}
