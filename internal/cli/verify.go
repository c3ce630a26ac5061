package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/syncschool/internal/harness"
	"github.com/roach88/syncschool/internal/trace"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Manifest string
}

// verifyResult is one lesson's verification outcome in json mode.
type verifyResult struct {
	Lesson          string   `json:"lesson"`
	Passed          bool     `json:"passed"`
	Mismatch        string   `json:"mismatch,omitempty"`
	CheckFailures   []string `json:"check_failures,omitempty"`
	CeilingExceeded bool     `json:"ceiling_exceeded,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [lesson...]",
		Short: "Verify lesson transcripts are deterministic",
		Long: `Verify lessons by running each twice and comparing normalized transcripts.

A lesson passes when both runs produce byte-identical transcripts after
the manifest's masking directives, every declarative check holds against
the recorded trace, and neither run breaks its timing ceiling.

Example:
  syncschool verify
  syncschool verify queue barrier`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyLessons(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "path to a lesson manifest (defaults to the embedded one)")

	return cmd
}

func verifyLessons(opts *VerifyOptions, cmd *cobra.Command, args []string) error {
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

	var results []verifyResult
	failed := 0
	for _, l := range selected {
		res, err := runner.Verify(cmd.Context(), l)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("cannot verify lesson %q", l.Slug), err)
		}
		if !res.Passed {
			failed++
		}

		if opts.Format == "json" {
			results = append(results, verifyResult{
				Lesson:          res.Lesson,
				Passed:          res.Passed,
				Mismatch:        res.Mismatch,
				CheckFailures:   res.CheckFailures,
				CeilingExceeded: res.CeilingExceeded,
			})
			continue
		}

		printVerifyResult(cmd, res)
	}

	if opts.Format == "json" {
		if err := json.NewEncoder(out).Encode(Response{Status: statusFor(failed), Data: results}); err != nil {
			return err
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d lessons failed verification", failed, len(selected)))
	}
	return nil
}

func printVerifyResult(cmd *cobra.Command, res *harness.VerifyResult) {
	out := cmd.OutOrStdout()

	if res.Passed {
		fmt.Fprintf(out, "PASS %s\n", res.Lesson)
		return
	}

	fmt.Fprintf(out, "FAIL %s\n", res.Lesson)
	if res.Mismatch != "" {
		fmt.Fprintf(out, "     transcripts differ: %s\n", res.Mismatch)
	}
	for _, failure := range res.CheckFailures {
		fmt.Fprintf(out, "     %s\n", failure)
	}
	if res.CeilingExceeded {
		fmt.Fprintf(out, "     exceeded timing ceiling (slowest run %s)\n", res.SlowestRun)
	}
}
