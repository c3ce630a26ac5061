package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/syncschool/internal/harness"
	"github.com/roach88/syncschool/internal/trace"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Manifest string
}

// runResult is one lesson's outcome in json mode.
type runResult struct {
	Lesson     string `json:"lesson"`
	Passed     bool   `json:"passed"`
	DurationMS int64  `json:"duration_ms"`
	Transcript string `json:"transcript"`
	Error      string `json:"error,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [lesson...]",
		Short: "Run lessons and print their transcripts",
		Long: `Run one or more lessons and print each transcript.

Lessons may be named by slug or by series number; with no arguments the
whole series runs in order. Each lesson runs hermetically and its
transcript is recorded in an in-memory trace for the duration of the
command.

Example:
  syncschool run
  syncschool run mutex queue
  syncschool run 14 --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLessons(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "path to a lesson manifest (defaults to the embedded one)")

	return cmd
}

func runLessons(opts *RunOptions, cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	out := cmd.OutOrStdout()

	selected, err := selectLessons(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot select lessons", err)
	}

	m, err := loadManifest(opts.Manifest)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot load manifest", err)
	}

	log, err := trace.Open()
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open trace log", err)
	}
	defer func() {
		if closeErr := log.Close(); closeErr != nil {
			logger.Error("error closing trace log", "error", closeErr)
		}
	}()

	runner := harness.NewRunner(m, log, logger)

	var results []runResult
	failed := 0
	for _, l := range selected {
		report, err := runner.Run(cmd.Context(), l)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("cannot run lesson %q", l.Slug), err)
		}
		if !report.Passed() {
			failed++
		}

		if opts.Format == "json" {
			r := runResult{
				Lesson:     l.Slug,
				Passed:     report.Passed(),
				DurationMS: report.Duration.Milliseconds(),
				Transcript: report.Raw,
			}
			if report.LessonErr != nil {
				r.Error = report.LessonErr.Error()
			}
			results = append(results, r)
			continue
		}

		fmt.Fprintf(out, "=== lesson %d: %s (%s)\n", l.Number, l.Slug, l.Title)
		fmt.Fprint(out, report.Raw)
		if report.LessonErr != nil {
			fmt.Fprintf(out, "lesson failed: %v\n", report.LessonErr)
		}
		if report.CeilingExceeded {
			fmt.Fprintf(out, "lesson exceeded its %s ceiling (took %s)\n",
				report.Spec.Ceiling(), report.Duration.Round(time.Millisecond))
		}
		fmt.Fprintln(out)
	}

	if opts.Format == "json" {
		if err := json.NewEncoder(out).Encode(Response{Status: statusFor(failed), Data: results}); err != nil {
			return err
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d lessons failed", failed, len(selected)))
	}
	return nil
}

func statusFor(failed int) string {
	if failed > 0 {
		return "error"
	}
	return "ok"
}
