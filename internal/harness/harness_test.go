package harness

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/syncschool/internal/lessons"
	"github.com/roach88/syncschool/internal/trace"
)

// newTestRunner builds a runner over a parsed manifest body and a fresh
// in-memory trace log.
func newTestRunner(t *testing.T, manifestBody string) *Runner {
	t.Helper()

	m, err := ParseManifest([]byte(manifestBody))
	require.NoError(t, err)

	log, err := trace.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, log.Close())
	})

	return NewRunner(m, log, nil)
}

func scriptedLesson(slug string, run func(w io.Writer) error) lessons.Lesson {
	return lessons.Lesson{Number: 1, Slug: slug, Title: "scripted", Run: run}
}

const plainManifest = `
lessons:
  - number: 1
    slug: scripted
    title: "Scripted"
`

func TestRunner_RecordsTranscriptInTrace(t *testing.T) {
	r := newTestRunner(t, plainManifest)
	ctx := context.Background()

	l := scriptedLesson("scripted", func(w io.Writer) error {
		fmt.Fprintln(w, "line one")
		fmt.Fprintln(w, "line two")
		return nil
	})

	report, err := r.Run(ctx, l)
	require.NoError(t, err)
	require.NoError(t, report.LessonErr)
	assert.True(t, report.Passed())
	assert.Equal(t, "line one\nline two\n", report.Raw)
	assert.Equal(t, "line one\nline two\n", report.Normalized)

	recorded, err := r.log.Transcript(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, report.Raw, recorded)
}

func TestRunner_LessonMissingFromManifest(t *testing.T) {
	r := newTestRunner(t, plainManifest)

	_, err := r.Run(context.Background(), scriptedLesson("stranger", func(io.Writer) error {
		return nil
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `lesson "stranger" is not in the manifest`)
}

func TestRunner_LessonErrorLandsInReport(t *testing.T) {
	r := newTestRunner(t, plainManifest)

	report, err := r.Run(context.Background(), scriptedLesson("scripted", func(w io.Writer) error {
		fmt.Fprintln(w, "partial output")
		return fmt.Errorf("demonstration broke")
	}))
	require.NoError(t, err, "a failing lesson is a report, not an infrastructure error")
	require.Error(t, report.LessonErr)
	assert.False(t, report.Passed())
	assert.Equal(t, "partial output\n", report.Raw)
}

func TestRunner_CeilingExceededIsFlagged(t *testing.T) {
	r := newTestRunner(t, `
lessons:
  - number: 1
    slug: scripted
    title: "Scripted"
    ceiling_ms: 1
`)

	report, err := r.Run(context.Background(), scriptedLesson("scripted", func(w io.Writer) error {
		time.Sleep(20 * time.Millisecond)
		fmt.Fprintln(w, "slow")
		return nil
	}))
	require.NoError(t, err)
	assert.True(t, report.CeilingExceeded)
	assert.False(t, report.Passed())
}

func TestRunner_GenerousCeilingPasses(t *testing.T) {
	r := newTestRunner(t, `
lessons:
  - number: 1
    slug: scripted
    title: "Scripted"
    ceiling_ms: 5000
`)

	report, err := r.Run(context.Background(), scriptedLesson("scripted", func(w io.Writer) error {
		fmt.Fprintln(w, "quick")
		return nil
	}))
	require.NoError(t, err)
	assert.False(t, report.CeilingExceeded)
	assert.True(t, report.Passed())
}

func TestRunner_RunsAreHermetic(t *testing.T) {
	r := newTestRunner(t, plainManifest)
	ctx := context.Background()

	l := scriptedLesson("scripted", func(w io.Writer) error {
		fmt.Fprintln(w, "only line")
		return nil
	})

	first, err := r.Run(ctx, l)
	require.NoError(t, err)
	second, err := r.Run(ctx, l)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)

	// Each run's trace sequence restarts at 1.
	for _, report := range []*Report{first, second} {
		lines, err := r.log.Lines(ctx, report.RunID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, int64(1), lines[0].Seq)
	}
}

func TestRunner_RunAllCoversRegistry(t *testing.T) {
	requireEcho(t)

	m, err := DefaultManifest()
	require.NoError(t, err)

	log, err := trace.Open()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, log.Close()) })

	reports, err := NewRunner(m, log, nil).RunAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, lessons.Count(), len(reports))

	for _, report := range reports {
		assert.NoError(t, report.LessonErr, "lesson %q", report.Lesson.Slug)
		assert.NotEmpty(t, report.Raw, "lesson %q printed nothing", report.Lesson.Slug)
	}
}
