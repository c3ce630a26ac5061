package lessons

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrConnectionReset is the failure this lesson manufactures on purpose.
var ErrConnectionReset = errors.New("flaky stage: connection reset")

// RunPipeline runs two stages under a fail-fast errgroup and returns the
// first error.
//
// The flaky stage prints a line and then fails after 1ms. The steady stage
// would run for 10ms, but the group cancels its context as soon as the
// flaky stage returns, so it always observes cancellation first. The
// transcript order is fixed: the flaky stage prints before it returns its
// error, and the steady stage can only print after that error has
// cancelled the shared context.
func RunPipeline(w io.Writer) error {
	w = serialized(w)
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		time.Sleep(time.Millisecond)
		fmt.Fprintln(w, "flaky stage: failing")
		return ErrConnectionReset
	})

	g.Go(func() error {
		select {
		case <-time.After(10 * time.Millisecond):
			fmt.Fprintln(w, "steady stage: finished")
			return nil
		case <-ctx.Done():
			fmt.Fprintln(w, "steady stage: cancelled after sibling failure")
			return ctx.Err()
		}
	})

	return g.Wait()
}

// RunFailures prints the transcript for lesson 4.
//
// The failure is the teaching material here, so the orchestration catches
// it and reports it as text instead of letting it escape.
func RunFailures(w io.Writer) error {
	if err := RunPipeline(w); err != nil {
		fmt.Fprintf(w, "recovered: %v\n", err)
	}
	return nil
}
