package lessons

import (
	"fmt"
	"io"
	"time"
)

// Square starts a goroutine that squares n after a small fixed delay and
// returns the channel that will carry the result.
//
// The returned channel behaves like a single-use future: receiving from it
// suspends the caller until the value is ready. Because the channel is
// buffered, the worker never blocks on delivery even if the caller is slow
// to receive.
func Square(n int) <-chan int {
	out := make(chan int, 1)
	go func() {
		time.Sleep(time.Millisecond)
		out <- n * n
	}()
	return out
}

// RunAwaiting prints the transcript for lesson 2.
//
// Two sequential receives happen in program order: the second Square call
// does not start until the first result has been received, so the
// transcript is identical on every run.
func RunAwaiting(w io.Writer) error {
	first := <-Square(3)
	fmt.Fprintf(w, "3 squared = %d\n", first)

	second := <-Square(first)
	fmt.Fprintf(w, "%d squared = %d\n", first, second)

	return nil
}
