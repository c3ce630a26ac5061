package harness

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/syncschool/internal/trace"
)

// CheckError is returned when a declarative transcript check fails.
type CheckError struct {
	Type     string // check type for categorization
	Expected string // human-readable expected outcome
	Actual   string // human-readable actual outcome
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "check failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  actual: %s", e.Actual)
	return buf.String()
}

// EvaluateChecks runs a lesson's declarative checks against one recorded
// run and returns the failures as messages. Checks query the raw trace,
// not the normalized transcript, so they can state ordering guarantees
// that masking deliberately relaxes.
func EvaluateChecks(ctx context.Context, log *trace.Log, runID string, checks []Check) ([]string, error) {
	var failures []string
	for _, c := range checks {
		var err error
		switch c.Type {
		case CheckTranscriptContains:
			err = checkContains(ctx, log, runID, c)
		case CheckTranscriptOrder:
			err = checkOrder(ctx, log, runID, c)
		case CheckTranscriptCount:
			err = checkCount(ctx, log, runID, c)
		default:
			return nil, fmt.Errorf("unknown check type %q", c.Type)
		}

		if err != nil {
			var ce *CheckError
			if !errors.As(err, &ce) {
				return nil, err
			}
			failures = append(failures, ce.Error())
		}
	}
	return failures, nil
}

func checkContains(ctx context.Context, log *trace.Log, runID string, c Check) error {
	n, err := log.CountMatching(ctx, runID, c.Line)
	if err != nil {
		return err
	}
	if n == 0 {
		return &CheckError{
			Type:     CheckTranscriptContains,
			Expected: fmt.Sprintf("a line containing %q", c.Line),
			Actual:   "no matching line in transcript",
		}
	}
	return nil
}

func checkOrder(ctx context.Context, log *trace.Log, runID string, c Check) error {
	prevSeq := int64(0)
	prevLine := ""
	for _, line := range c.Lines {
		seq, err := log.FirstIndex(ctx, runID, line)
		if err != nil {
			return err
		}
		if seq == 0 {
			return &CheckError{
				Type:     CheckTranscriptOrder,
				Expected: fmt.Sprintf("lines in order: %v", c.Lines),
				Actual:   fmt.Sprintf("missing line containing %q", line),
			}
		}
		if seq <= prevSeq {
			return &CheckError{
				Type:     CheckTranscriptOrder,
				Expected: fmt.Sprintf("lines in order: %v", c.Lines),
				Actual: fmt.Sprintf("%q (seq %d) should appear before %q (seq %d)",
					prevLine, prevSeq, line, seq),
			}
		}
		prevSeq = seq
		prevLine = line
	}
	return nil
}

func checkCount(ctx context.Context, log *trace.Log, runID string, c Check) error {
	n, err := log.CountMatching(ctx, runID, c.Line)
	if err != nil {
		return err
	}
	if n != c.Count {
		return &CheckError{
			Type:     CheckTranscriptCount,
			Expected: fmt.Sprintf("%d lines containing %q", c.Count, c.Line),
			Actual:   fmt.Sprintf("%d lines", n),
		}
	}
	return nil
}
