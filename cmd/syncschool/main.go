// Command syncschool runs the Go concurrency lesson series.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/syncschool/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
