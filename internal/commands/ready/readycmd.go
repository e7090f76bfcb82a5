package ready

import (
	"context"

	"github.com/indaco/kacl/internal/clix"
	"github.com/indaco/kacl/internal/config"
	"github.com/indaco/kacl/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "ready" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "ready",
		Usage: "Check if the changelog is ready for release",
		Description: "Every version needs a release date, every compare link must end with the\n" +
			"version tag and every version needs a matching tag (unless -n is given).",
		UsageText: "kacl [global options] ready",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runReadyCmd(ctx, cmd, cfg)
		},
	}
}

func runReadyCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
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

	if !s.IsReleasable(ctx, doc, "") {
		s.Log.Info(printer.Error("NO"))
		return clix.Failed()
	}
	s.Log.Info(printer.Success("YES"))
	return nil
}
