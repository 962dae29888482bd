// Command printq is a priority print queue with an interactive menu.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/printq/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
