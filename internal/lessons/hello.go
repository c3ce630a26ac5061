package lessons

import (
	"fmt"
	"io"
	"time"
)

// Greet computes the series' first result on a separate goroutine and
// returns a channel that delivers it.
//
// This is the smallest useful shape of Go concurrency: start a goroutine,
// hand it a channel, and receive from that channel to both collect the
// result and join the goroutine. The 1ms sleep stands in for real work; it
// is small enough that scheduling cannot reorder anything observable.
func Greet() <-chan string {
	out := make(chan string, 1)
	go func() {
		time.Sleep(time.Millisecond)
		out <- "hello, concurrent world"
	}()
	return out
}

// RunHello prints the transcript for lesson 1.
//
// The receive from Greet's channel is the join point: once it completes,
// the goroutine has finished and nothing this lesson started is left
// running.
func RunHello(w io.Writer) error {
	fmt.Fprintln(w, <-Greet())
	fmt.Fprintln(w, "main: goroutine joined")
	return nil
}
