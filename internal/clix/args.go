package clix

import (
	"fmt"

	"github.com/urfave/cli/v3"
)

// NoArgs fails when cmd received positional arguments.
func NoArgs(cmd *cli.Command) error {
	if cmd.Args().Len() != 0 {
		return fmt.Errorf("Command %q does not support arguments.", cmd.Name)
	}
	return nil
}

// ExactArgs fails unless cmd received exactly n positional arguments.
func ExactArgs(cmd *cli.Command, n int) error {
	if got := cmd.Args().Len(); got != n {
		return fmt.Errorf("Invalid number of arguments for command %q: Expected %d, got %d", cmd.Name, n, got)
	}
	return nil
}

// Failed is returned by a command that reported its failure already.
func Failed() error {
	return cli.Exit("", 1)
}
