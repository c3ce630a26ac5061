package lessons

import (
	"fmt"
	"io"
)

// TaskHandle is an explicit handle on one unit of background work.
//
// Receiving a result from a bare channel joins a goroutine but gives the
// caller no way to ask "is it finished yet?". A handle adds that: Done
// answers without blocking, Await blocks until the result is ready. This
// mirrors the step from "fire and await" to explicit task management.
type TaskHandle struct {
	result string
	done   chan struct{}
}

// StartTask runs fn on its own goroutine and returns its handle.
func StartTask(fn func() string) *TaskHandle {
	t := &TaskHandle{done: make(chan struct{})}
	go func() {
		t.result = fn()
		close(t.done)
	}()
	return t
}

// Done reports whether the task has finished, without blocking.
func (t *TaskHandle) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Await blocks until the task finishes and returns its result.
func (t *TaskHandle) Await() string {
	<-t.done
	return t.result
}

// RunTasks prints the transcript for lesson 5.
//
// The task blocks on a gate channel until the orchestration has observed
// it unfinished, which pins the "finished yet? no" line: the task cannot
// race ahead of the check.
func RunTasks(w io.Writer) error {
	gate := make(chan struct{})

	task := StartTask(func() string {
		<-gate
		return "tick-tock"
	})
	fmt.Fprintln(w, "task started")
	fmt.Fprintf(w, "task finished yet? %s\n", yesNo(task.Done()))

	close(gate)
	fmt.Fprintln(w, "task released")

	fmt.Fprintf(w, "task result: %s\n", task.Await())
	fmt.Fprintf(w, "task finished yet? %s\n", yesNo(task.Done()))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
