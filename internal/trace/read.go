package trace

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Run describes a recorded lesson run.
type Run struct {
	ID       string
	Lesson   string
	Duration time.Duration
}

// Line is one recorded transcript line.
type Line struct {
	Seq  int64
	Text string
}

// Runs returns all recorded runs in insertion order.
func (l *Log) Runs(ctx context.Context) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, lesson, duration_ns FROM runs ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durNs int64
		if err := rows.Scan(&r.ID, &r.Lesson, &durNs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durNs)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// Lines returns the transcript lines of a run in sequence order.
func (l *Log) Lines(ctx context.Context, runID string) ([]Line, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT seq, text FROM lines WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var ln Line
		if err := rows.Scan(&ln.Seq, &ln.Text); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		lines = append(lines, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lines: %w", err)
	}

	return lines, nil
}

// CountMatching returns how many lines of a run contain substr.
func (l *Log) CountMatching(ctx context.Context, runID, substr string) (int, error) {
	// SQLite LIKE treats % and _ as wildcards; instr() is a plain
	// substring test and needs no escaping.
	var count int
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lines WHERE run_id = ? AND instr(text, ?) > 0`,
		runID, substr,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matching lines: %w", err)
	}
	return count, nil
}

// FirstIndex returns the sequence number of the first line of a run that
// contains substr, or 0 if no line matches.
func (l *Log) FirstIndex(ctx context.Context, runID, substr string) (int64, error) {
	var seq int64
	err := l.db.QueryRowContext(ctx,
		`SELECT COALESCE(MIN(seq), 0) FROM lines WHERE run_id = ? AND instr(text, ?) > 0`,
		runID, substr,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to find first matching line: %w", err)
	}
	return seq, nil
}

// Transcript reassembles a run's transcript as a single newline-joined
// string, one recorded line per row, with a trailing newline when the run
// has any lines.
func (l *Log) Transcript(ctx context.Context, runID string) (string, error) {
	lines, err := l.Lines(ctx, runID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln.Text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
