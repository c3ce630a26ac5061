package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/syncschool/internal/lessons"
)

// VerifyResult is the outcome of verifying one lesson.
type VerifyResult struct {
	// Lesson is the verified lesson's slug.
	Lesson string

	// Passed is true when both runs matched, every check held, and
	// neither run broke its ceiling.
	Passed bool

	// Mismatch describes the first divergence between the two runs'
	// normalized transcripts, empty when they matched.
	Mismatch string

	// CheckFailures holds declarative check failures from the second
	// run.
	CheckFailures []string

	// CeilingExceeded reports that a run broke the manifest ceiling.
	CeilingExceeded bool

	// SlowestRun is the larger of the two run durations.
	SlowestRun time.Duration
}

// Verify runs a lesson twice in isolation and confirms determinism: the
// two normalized transcripts must be byte-identical, every declarative
// check must hold, and neither run may break its timing ceiling.
//
// Running twice is the cheapest honest determinism test: a transcript
// that depends on scheduling luck has two chances to show it, and the
// masking directives are exercised for real because the raw transcripts
// of concurrent lessons genuinely differ between runs.
func (r *Runner) Verify(ctx context.Context, l lessons.Lesson) (*VerifyResult, error) {
	first, err := r.Run(ctx, l)
	if err != nil {
		return nil, err
	}
	if first.LessonErr != nil {
		return nil, fmt.Errorf("lesson %q failed on first run: %w", l.Slug, first.LessonErr)
	}

	second, err := r.Run(ctx, l)
	if err != nil {
		return nil, err
	}
	if second.LessonErr != nil {
		return nil, fmt.Errorf("lesson %q failed on second run: %w", l.Slug, second.LessonErr)
	}

	result := &VerifyResult{
		Lesson:          l.Slug,
		CeilingExceeded: first.CeilingExceeded || second.CeilingExceeded,
		SlowestRun:      maxDuration(first.Duration, second.Duration),
	}

	if first.Normalized != second.Normalized {
		result.Mismatch = firstDivergence(first.Normalized, second.Normalized)
	}

	failures, err := EvaluateChecks(ctx, r.log, second.RunID, second.Spec.Checks)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate checks for lesson %q: %w", l.Slug, err)
	}
	result.CheckFailures = failures

	result.Passed = result.Mismatch == "" &&
		len(result.CheckFailures) == 0 &&
		!result.CeilingExceeded

	return result, nil
}

// VerifyAll verifies every registered lesson in series order.
func (r *Runner) VerifyAll(ctx context.Context) ([]*VerifyResult, error) {
	var results []*VerifyResult
	for _, l := range lessons.All() {
		res, err := r.Verify(ctx, l)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// firstDivergence reports where two normalized transcripts differ.
func firstDivergence(a, b string) string {
	al, bl := splitLines(a), splitLines(b)
	n := len(al)
	if len(bl) < n {
		n = len(bl)
	}
	for i := 0; i < n; i++ {
		if al[i] != bl[i] {
			return fmt.Sprintf("line %d: first run %q, second run %q", i+1, al[i], bl[i])
		}
	}
	return fmt.Sprintf("first run has %d lines, second run has %d", len(al), len(bl))
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
