// Package render implements the "print" command.
package render

import (
	"context"

	"github.com/indaco/kacl/internal/clix"
	"github.com/indaco/kacl/internal/config"
	"github.com/urfave/cli/v3"
)

// Run returns the "print" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "Print the changelog in canonical format",
		UsageText: "kacl [global options] print",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPrintCmd(ctx, cmd, cfg)
		},
	}
}

func runPrintCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	if err := clix.NoArgs(cmd); err != nil {
		return err
	}

	s, err := clix.NewSession(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	doc, err := s.LoadValidated(ctx)
	if err != nil {
		return err
	}

	_, err = doc.WriteTo(s.Out)
	return err
}
