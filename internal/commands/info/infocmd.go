package info

import (
	"context"
	"fmt"

	"github.com/indaco/kacl/internal/clix"
	"github.com/indaco/kacl/internal/config"
	"github.com/urfave/cli/v3"
)

// Run returns the "info" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print the changelog entry of a version (body only, without heading)",
		UsageText: "kacl [global options] info VERSION",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInfoCmd(ctx, cmd, cfg)
		},
	}
}

func runInfoCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	if err := clix.ExactArgs(cmd, 1); err != nil {
		return err
	}
	version := cmd.Args().First()

	s, err := clix.NewSession(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	doc, err := s.LoadValidated(ctx)
	if err != nil {
		return err
	}

	body, ok, err := doc.Body(version)
	if err != nil {
		return err
	}
	if !ok || body == "" {
		return fmt.Errorf("No info for version %s available", version)
	}

	_, err = fmt.Fprintln(s.Out, body)
	return err
}
