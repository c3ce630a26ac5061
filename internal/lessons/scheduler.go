package lessons

import (
	"fmt"
	"io"
	"runtime"
	"time"
)

// GoroutineCounts parks extra goroutines and samples runtime.NumGoroutine
// before and while they are parked.
//
// The sampled numbers are honest runtime introspection and therefore not
// stable across environments: the test runner, the race detector, and the
// harness all keep goroutines of their own alive. The lesson manifest
// masks these lines; the only hard guarantee, checked here rather than
// printed, is that the parked sample is at least extra higher than the
// baseline.
func GoroutineCounts(extra int) (before, during int, err error) {
	before = runtime.NumGoroutine()

	release := make(chan struct{})
	done := make(chan struct{})
	for i := 0; i < extra; i++ {
		go func() {
			<-release
			done <- struct{}{}
		}()
	}

	// The spawned goroutines may not be visible to NumGoroutine
	// immediately; poll briefly, yielding in between.
	deadline := time.Now().Add(20 * time.Millisecond)
	for {
		during = runtime.NumGoroutine()
		if during >= before+extra {
			break
		}
		if time.Now().After(deadline) {
			break
		}
		runtime.Gosched()
	}

	close(release)
	for i := 0; i < extra; i++ {
		<-done
	}

	if during < before+extra {
		return before, during, fmt.Errorf(
			"runtime reported %d goroutines while %d extra were parked (baseline %d)",
			during, extra, before)
	}
	return before, during, nil
}

// YieldLoop calls runtime.Gosched n times, handing the processor back to
// the scheduler on each iteration, and returns how many yields it made.
func YieldLoop(n int) int {
	for i := 0; i < n; i++ {
		runtime.Gosched()
	}
	return n
}

// RunScheduler prints the transcript for lesson 15.
func RunScheduler(w io.Writer) error {
	const extra = 3

	before, during, err := GoroutineCounts(extra)
	if err != nil {
		return fmt.Errorf("scheduler lesson failed: %w", err)
	}

	fmt.Fprintf(w, "goroutines before: %d\n", before)
	fmt.Fprintf(w, "goroutines while %d extra are parked: %d\n", extra, during)
	fmt.Fprintln(w, "parked goroutines released")
	fmt.Fprintf(w, "cooperative yields completed: %d\n", YieldLoop(3))
	return nil
}
