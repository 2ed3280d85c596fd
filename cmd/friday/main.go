// Command friday builds and runs the "is it Friday in California?" widget.
package main

import (
	"errors"
	"fmt"
	"os"

	// Zone data for hosts without a system tz database.
	_ "time/tzdata"

	"github.com/roach88/friday/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// ExitErrors have already been reported by the command.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		// Usage errors from cobra: unknown command, wrong argument count.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(exitErr.Code)
}
