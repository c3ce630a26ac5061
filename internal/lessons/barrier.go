package lessons

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RendezvousBarrier runs workers goroutines through a two-phase rendezvous.
//
// Go has no barrier primitive in the standard library; the idiom is a
// WaitGroup for arrival plus a channel close for release. Every worker
// finishes phase one, announces arrival, and parks on the release channel.
// The coordinator waits for all arrivals, prints the rendezvous line, and
// closes the channel, releasing everyone into phase two together. No
// worker can start phase two until the slowest worker has finished phase
// one. That is the barrier property.
func RendezvousBarrier(w io.Writer, workers int) {
	w = serialized(w)

	var (
		arrived sync.WaitGroup
		done    sync.WaitGroup
	)
	release := make(chan struct{})

	for i := 1; i <= workers; i++ {
		arrived.Add(1)
		done.Add(1)
		go func() {
			defer done.Done()
			time.Sleep(time.Millisecond)
			fmt.Fprintf(w, "worker %d reached the barrier\n", i)
			arrived.Done()

			<-release
			fmt.Fprintf(w, "worker %d passed the barrier\n", i)
		}()
	}

	arrived.Wait()
	fmt.Fprintf(w, "all %d workers reached the barrier\n", workers)
	close(release)
	done.Wait()
}

// RunBarrier prints the transcript for lesson 11.
func RunBarrier(w io.Writer) error {
	RendezvousBarrier(w, 3)
	return nil
}
