package lessons

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// FetchAll fetches the named resources concurrently and returns their
// processed values in input order.
//
// Each fetch runs on its own errgroup goroutine and writes into its own
// slot of the results slice, so no locking is needed. Completion lines go
// to w as each fetch finishes; their relative order is whatever the
// scheduler chose, which is why callers must treat them as unordered.
func FetchAll(w io.Writer, names []string) ([]string, error) {
	w = serialized(w)
	g, _ := errgroup.WithContext(context.Background())

	results := make([]string, len(names))
	for i, name := range names {
		g.Go(func() error {
			// Equal delays keep the completion order genuinely
			// unconstrained rather than accidentally sorted.
			time.Sleep(time.Millisecond)
			results[i] = strings.ToUpper(name)
			fmt.Fprintf(w, "fetched %s\n", name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunGather prints the transcript for lesson 3.
//
// The summary line is printed after Wait and uses the input ordering, so it
// is deterministic even though the per-fetch lines are not.
func RunGather(w io.Writer) error {
	results, err := FetchAll(w, []string{"alpha", "beta", "gamma"})
	if err != nil {
		return fmt.Errorf("gather failed: %w", err)
	}

	fmt.Fprintf(w, "gathered: %s\n", strings.Join(results, " "))
	return nil
}
