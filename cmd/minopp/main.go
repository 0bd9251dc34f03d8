package main

import (
	"fmt"
	"os"

	"github.com/roach88/minopp/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Exit errors were already written by the command's formatter.
		if !cli.IsExitError(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
