package validate

import (
	"context"

	"github.com/indaco/kacl/internal/clix"
	"github.com/indaco/kacl/internal/config"
	"github.com/indaco/kacl/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "validate" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate the changelog (version names, dates, compare links, tags)",
		UsageText: "kacl [global options] validate",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runValidateCmd(ctx, cmd, cfg)
		},
	}
}

// runValidateCmd prints every violation and VALID when there is none.
func runValidateCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	if err := clix.NoArgs(cmd); err != nil {
		return err
	}

	s, err := clix.NewSession(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if !s.Validate(ctx, doc, "") {
		return clix.Failed()
	}
	s.Log.Info(printer.Success("VALID"))
	return nil
}
