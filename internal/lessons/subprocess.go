package lessons

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// CaptureEcho spawns the system echo binary with the given argument, reads
// its standard output through a pipe, and returns the first line it
// printed.
//
// The context deadline is a guard rail, not part of the happy path: echo
// finishes instantly, so a generous 5s timeout can never fire in a healthy
// environment but stops a wedged subprocess from hanging the lesson.
func CaptureEcho(ctx context.Context, arg string) (string, error) {
	if _, err := exec.LookPath("echo"); err != nil {
		return "", fmt.Errorf("echo binary not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "echo", arg)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start echo: %w", err)
	}

	line, readErr := bufio.NewReader(stdout).ReadString('\n')
	if waitErr := cmd.Wait(); waitErr != nil {
		return "", fmt.Errorf("echo exited abnormally: %w", waitErr)
	}
	if readErr != nil && readErr != io.EOF {
		return "", fmt.Errorf("read echo output: %w", readErr)
	}

	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	return line, nil
}

// RunSubprocess prints the transcript for lesson 13.
func RunSubprocess(w io.Writer) error {
	const message = "hello from a subprocess"

	fmt.Fprintf(w, "running: echo %q\n", message)
	line, err := CaptureEcho(context.Background(), message)
	if err != nil {
		return fmt.Errorf("subprocess lesson failed: %w", err)
	}

	fmt.Fprintf(w, "subprocess said: %s\n", line)
	fmt.Fprintln(w, "subprocess exited with code 0")
	return nil
}
