package lessons

import (
	"fmt"
	"io"
	"sync"
)

// WaitForValue demonstrates sync.Cond: a consumer waits until a shared
// value is published, a producer publishes it and signals.
//
// The consumer's wait sits in the canonical loop that re-checks the
// condition after every wakeup, because Cond.Wait can return without the
// condition holding. The loop also makes the lost-wakeup case benign: if the
// producer publishes before the consumer first checks, the consumer never
// waits at all and still observes the value.
func WaitForValue(w io.Writer) int {
	w = serialized(w)

	var (
		mu    sync.Mutex
		value int
	)
	cond := sync.NewCond(&mu)

	var observed int
	var done sync.WaitGroup
	done.Add(1)
	go func() {
		defer done.Done()
		mu.Lock()
		for value == 0 {
			cond.Wait()
		}
		observed = value
		mu.Unlock()
		fmt.Fprintf(w, "consumer: observed value %d\n", observed)
	}()

	fmt.Fprintln(w, "consumer: waiting for a value")
	fmt.Fprintln(w, "producer: publishing value 42")
	mu.Lock()
	value = 42
	mu.Unlock()
	cond.Signal()

	done.Wait()
	return observed
}

// RunCondVar prints the transcript for lesson 10.
func RunCondVar(w io.Writer) error {
	if v := WaitForValue(w); v != 42 {
		return fmt.Errorf("condition variable lesson observed %d, want 42", v)
	}
	return nil
}
