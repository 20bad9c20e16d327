// Package main is the entry point for the agx CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/agx/cmd/agx/commands"
	"github.com/thoreinstein/agx/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Error())
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
