package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/syncschool/internal/lessons"
)

// lessonInfo is one row of list output in json mode.
type lessonInfo struct {
	Number int    `json:"number"`
	Slug   string `json:"slug"`
	Title  string `json:"title"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the lesson series",
		Long: `List every lesson in series order with its number, slug, and title.

Example:
  syncschool list
  syncschool list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if rootOpts.Format == "json" {
				var infos []lessonInfo
				for _, l := range lessons.All() {
					infos = append(infos, lessonInfo{Number: l.Number, Slug: l.Slug, Title: l.Title})
				}
				return json.NewEncoder(out).Encode(Response{Status: "ok", Data: infos})
			}

			for _, l := range lessons.All() {
				fmt.Fprintf(out, "%3d  %-12s %s\n", l.Number, l.Slug, l.Title)
			}
			return nil
		},
	}
}
