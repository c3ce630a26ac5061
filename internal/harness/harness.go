package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/syncschool/internal/lessons"
	"github.com/roach88/syncschool/internal/trace"
)

// Runner executes lessons hermetically and records their transcripts.
//
// Each Run call captures the lesson's transcript from a fresh buffer and
// records it as a new run in the trace log with its own restarting
// sequence. Runs share nothing: the lesson contract guarantees that every
// goroutine a lesson starts is joined before its orchestration returns, so
// no work can leak from one run into the next.
type Runner struct {
	manifest *Manifest
	log      *trace.Log
	logger   *slog.Logger
}

// NewRunner creates a runner over a manifest and a trace log.
// A nil logger suppresses operational logging.
func NewRunner(m *Manifest, log *trace.Log, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{manifest: m, log: log, logger: logger}
}

// Report is the outcome of one hermetic lesson run.
type Report struct {
	// RunID identifies the run in the trace log.
	RunID string

	// Lesson is the lesson that ran.
	Lesson lessons.Lesson

	// Spec is the lesson's manifest entry.
	Spec *LessonSpec

	// Raw is the captured transcript exactly as printed.
	Raw string

	// Normalized is the transcript after the spec's masking directives.
	Normalized string

	// Duration is the transcript's wall-clock time.
	Duration time.Duration

	// LessonErr is a non-nil error returned by the lesson's
	// orchestration. That is an authoring defect, since lessons that
	// teach failure catch it themselves.
	LessonErr error

	// CeilingExceeded reports that Duration broke the manifest
	// ceiling, which usually means an accidental unbounded wait.
	CeilingExceeded bool
}

// Passed reports whether the run completed cleanly within its ceiling.
func (r *Report) Passed() bool {
	return r.LessonErr == nil && !r.CeilingExceeded
}

// Run executes one lesson and records its transcript.
//
// The returned error covers harness infrastructure only (manifest gaps,
// trace log failures); a failing lesson lands in Report.LessonErr so the
// caller can present it alongside the transcript.
func (r *Runner) Run(ctx context.Context, l lessons.Lesson) (*Report, error) {
	spec, ok := r.manifest.BySlug(l.Slug)
	if !ok {
		return nil, fmt.Errorf("lesson %q is not in the manifest", l.Slug)
	}

	runID, err := r.log.BeginRun(ctx, l.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to begin run for lesson %q: %w", l.Slug, err)
	}

	var buf bytes.Buffer
	start := time.Now()
	lessonErr := l.Run(&buf)
	duration := time.Since(start)

	raw := buf.String()
	for _, line := range splitLines(raw) {
		if err := r.log.AppendLine(ctx, runID, line); err != nil {
			return nil, fmt.Errorf("failed to record transcript line: %w", err)
		}
	}
	if err := r.log.FinishRun(ctx, runID, duration); err != nil {
		return nil, fmt.Errorf("failed to finish run: %w", err)
	}

	report := &Report{
		RunID:           runID,
		Lesson:          l,
		Spec:            spec,
		Raw:             raw,
		Normalized:      Normalize(raw, spec),
		Duration:        duration,
		LessonErr:       lessonErr,
		CeilingExceeded: duration > spec.Ceiling(),
	}

	r.logger.Info("lesson run completed",
		"lesson", l.Slug,
		"run_id", runID,
		"duration", duration,
		"passed", report.Passed(),
	)

	return report, nil
}

// RunAll executes every registered lesson in series order.
func (r *Runner) RunAll(ctx context.Context) ([]*Report, error) {
	var reports []*Report
	for _, l := range lessons.All() {
		report, err := r.Run(ctx, l)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// splitLines splits a transcript into lines without a trailing empty
// element.
func splitLines(transcript string) []string {
	if transcript == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(transcript, "\n"), "\n")
}
