package lessons

import (
	"fmt"
	"io"
	"sync"
)

// BroadcastEvent parks waiters goroutines on a one-shot event and then
// sets it, releasing all of them at once.
//
// The event is a bare channel that is only ever closed: a receive from a
// closed channel never blocks, so closing broadcasts to every waiter,
// present and future. This is Go's idiom for "set once, wake everyone".
// The parked WaitGroup makes the transcript order airtight: the event is
// not set until every waiter has announced it is parked.
func BroadcastEvent(w io.Writer, waiters int) {
	w = serialized(w)

	event := make(chan struct{})
	var parked, done sync.WaitGroup

	for i := 0; i < waiters; i++ {
		parked.Add(1)
		done.Add(1)
		go func() {
			defer done.Done()
			parked.Done()
			<-event
			fmt.Fprintln(w, "waiter released")
		}()
	}

	parked.Wait()
	fmt.Fprintf(w, "%d waiters parked on the event\n", waiters)
	fmt.Fprintln(w, "event set")
	close(event)

	done.Wait()
}

// RunEvent prints the transcript for lesson 9.
func RunEvent(w io.Writer) error {
	BroadcastEvent(w, 3)
	return nil
}
