// Package lessons is a progressive series of short, self-contained
// demonstrations of Go's standard concurrency toolkit: goroutines, channels,
// the sync package, context, and the golang.org/x/sync extensions.
//
// Each lesson exposes a documented demonstration function plus an
// orchestration function Run<Concept>(w io.Writer) that prints a
// human-readable transcript. Transcripts are deterministic by construction:
// synthetic delays are small and fixed, every goroutine a lesson starts is
// joined before its Run function returns, and any output whose relative
// order is legitimately unconstrained is declared as such in the lesson
// manifest so the harness can compare it order-insensitively.
//
// The embedded Example functions double as the automated test surface: each
// one runs a lesson against a fresh set of goroutines and asserts the
// literal transcript, using "Unordered output" where scheduling order is
// unconstrained.
package lessons

import (
	"io"
	"sort"
	"sync"
)

// Lesson is one instructional unit in the series.
type Lesson struct {
	// Number orders the lesson within the series, starting at 1.
	Number int

	// Slug is the short stable name used by the CLI and the manifest.
	Slug string

	// Title is the human-readable lesson title.
	Title string

	// Run executes the lesson's orchestration, printing its transcript
	// to w. Run returns only after every goroutine it started has
	// finished; lessons that teach failure handling catch the failure
	// and print it rather than returning it.
	Run func(w io.Writer) error
}

// table is the ordered lesson registry. Numbers are dense and start at 1.
var table = []Lesson{
	{1, "hello", "Goroutines and joining", RunHello},
	{2, "awaiting", "Waiting on results", RunAwaiting},
	{3, "gather", "Running work concurrently", RunGather},
	{4, "failures", "Errors and fail-fast cancellation", RunFailures},
	{5, "tasks", "Explicit task handles", RunTasks},
	{6, "mutex", "Mutual exclusion", RunMutex},
	{7, "semaphore", "Bounding concurrency", RunSemaphore},
	{8, "queue", "Bounded producer/consumer queues", RunQueue},
	{9, "event", "One-shot broadcast events", RunEvent},
	{10, "condvar", "Condition variables", RunCondVar},
	{11, "barrier", "Rendezvous barriers", RunBarrier},
	{12, "streams", "In-memory byte streams", RunStreams},
	{13, "subprocess", "Subprocess pipes", RunSubprocess},
	{14, "deadline", "Timeouts and cancellation", RunDeadline},
	{15, "scheduler", "A look at the scheduler", RunScheduler},
}

// All returns the lessons in series order.
func All() []Lesson {
	out := make([]Lesson, len(table))
	copy(out, table)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// ByNumber returns the lesson with the given number.
func ByNumber(n int) (Lesson, bool) {
	for _, l := range table {
		if l.Number == n {
			return l, true
		}
	}
	return Lesson{}, false
}

// BySlug returns the lesson with the given slug.
func BySlug(slug string) (Lesson, bool) {
	for _, l := range table {
		if l.Slug == slug {
			return l, true
		}
	}
	return Lesson{}, false
}

// Count returns the number of lessons in the series.
func Count() int { return len(table) }

// syncWriter serializes writes from concurrently running lesson goroutines.
//
// Each fmt.Fprintf call issues exactly one Write, so guarding Write keeps
// whole lines intact even when several workers print at once. Lessons whose
// goroutines print concurrently wrap their writer in one of these; the
// line interleaving remains scheduler-chosen, but no line is ever torn.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func serialized(w io.Writer) io.Writer { return &syncWriter{w: w} }

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
