package rewrite

import (
	"context"

	"github.com/indaco/kacl/internal/clix"
	"github.com/indaco/kacl/internal/config"
	"github.com/urfave/cli/v3"
)

// Run returns the "rewrite" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Rewrite the changelog in canonical format",
		UsageText: "kacl [global options] rewrite",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runRewriteCmd(ctx, cmd, cfg)
		},
	}
}

func runRewriteCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
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
	return s.Save(ctx, doc)
}
