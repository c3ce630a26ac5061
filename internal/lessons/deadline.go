package lessons

import (
	"context"
	"fmt"
	"io"
	"time"
)

// GuardedCall runs op under a deadline and reports which side won: the
// operation's result, or the deadline.
//
// The select is the entire timeout pattern: whichever channel is ready
// first decides. An operation that completes instantly always beats even a
// short deadline, because its result is buffered and ready before the
// timer can possibly fire.
func GuardedCall(ctx context.Context, timeout time.Duration, op func() string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result := make(chan string, 1)
	go func() { result <- op() }()

	select {
	case v := <-result:
		return v, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// CancelableSleep sleeps for d unless ctx is cancelled first, printing a
// single line saying which way it ended. It never prints anything after
// observing cancellation.
func CancelableSleep(ctx context.Context, w io.Writer, d time.Duration) {
	select {
	case <-time.After(d):
		fmt.Fprintln(w, "slow operation: finished")
	case <-ctx.Done():
		fmt.Fprintln(w, "slow operation: cancelled")
	}
}

// RunDeadline prints the transcript for lesson 14.
//
// Two halves. First, a deadline guard around an instant operation: the
// success branch always wins (the operation is ready before any timer
// could fire). Second, explicit cancellation: the slow operation is
// cancelled after 1ms, prints its one cancellation line, and is joined
// before the final line, so nothing attributable to it can appear
// afterwards.
func RunDeadline(w io.Writer) error {
	fast, err := GuardedCall(context.Background(), 50*time.Millisecond, func() string {
		return "ok"
	})
	if err != nil {
		return fmt.Errorf("instant operation hit its deadline: %w", err)
	}
	fmt.Fprintf(w, "guarded fast operation: %s\n", fast)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		CancelableSleep(ctx, w, 10*time.Millisecond)
	}()

	time.Sleep(time.Millisecond)
	cancel()
	<-done

	fmt.Fprintln(w, "no output after cancellation")
	return nil
}
