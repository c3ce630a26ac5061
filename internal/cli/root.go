// Package cli implements the syncschool command line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the syncschool CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "syncschool",
		Short: "A progressive tour of Go concurrency",
		Long: `syncschool is a lesson series on Go concurrency primitives.

Each lesson is a small, self-contained demonstration that prints a
transcript. Lessons run hermetically: every goroutine a lesson starts is
joined before it returns, and every transcript is deterministic after the
manifest's masking directives are applied.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger builds the command logger: debug level when verbose, discard
// otherwise so transcripts stay clean on stdout.
func newLogger(errWriter io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(errWriter, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
