package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BeginRun records the start of a lesson run and returns its run ID.
func (l *Log) BeginRun(ctx context.Context, lesson string) (string, error) {
	if lesson == "" {
		return "", fmt.Errorf("lesson name is required")
	}

	runID := uuid.NewString()
	startedAt := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, lesson, started_at) VALUES (?, ?, ?)`,
		runID, lesson, startedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// AppendLine records one transcript line for a run.
//
// Sequence numbers come from the run's step clock and start at 1. Lines
// must be appended in transcript order; the clock makes concurrent appends
// safe but their relative order is then whatever the callers raced to.
func (l *Log) AppendLine(ctx context.Context, runID, text string) error {
	if runID == "" {
		return fmt.Errorf("run ID is required")
	}

	seq := l.clockFor(runID).Next()

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO lines (run_id, seq, text) VALUES (?, ?, ?)`,
		runID, seq, text,
	)
	if err != nil {
		return fmt.Errorf("failed to insert line %d: %w", seq, err)
	}

	return nil
}

// FinishRun records the wall-clock duration of a completed run.
func (l *Log) FinishRun(ctx context.Context, runID string, d time.Duration) error {
	res, err := l.db.ExecContext(ctx,
		`UPDATE runs SET duration_ns = ? WHERE id = ?`,
		d.Nanoseconds(), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check finished run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("unknown run %q", runID)
	}

	return nil
}
