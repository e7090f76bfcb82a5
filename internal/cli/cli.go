package cli

import (
	"context"
	"fmt"

	"github.com/indaco/kacl/internal/commands/info"
	"github.com/indaco/kacl/internal/commands/ready"
	"github.com/indaco/kacl/internal/commands/release"
	"github.com/indaco/kacl/internal/commands/render"
	"github.com/indaco/kacl/internal/commands/rewrite"
	"github.com/indaco/kacl/internal/commands/validate"
	"github.com/indaco/kacl/internal/commands/versions"
	"github.com/indaco/kacl/internal/config"
	"github.com/indaco/kacl/internal/printer"
	"github.com/indaco/kacl/internal/tui"
	"github.com/indaco/kacl/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command, configuring all
// subcommands and flags for the kacl cli. Global flags override cfg in
// place before a subcommand runs.
func New(cfg *config.Config) *urfavecli.Command {
	var (
		noColor      bool
		quiet, debug int
	)

	return &urfavecli.Command{
		Name:                   "kacl",
		Version:                fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                  "Work with \"Keep a Changelog\" compatible CHANGELOG.md files",
		EnableShellCompletion:  true,
		UseShortOptionHandling: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "Use `FILE` instead of CHANGELOG.md",
				Value:       cfg.File,
				DefaultText: config.DefaultFile,
			},
			&urfavecli.BoolFlag{
				Name:    "no-scm",
				Aliases: []string{"n"},
				Usage:   "Don't call git to check version tags",
			},
			&urfavecli.BoolFlag{
				Name:    "ignore",
				Aliases: []string{"i"},
				Usage:   "Continue even when the changelog is invalid (structural problems still fail)",
			},
			&urfavecli.BoolFlag{
				Name:    "no-file-backup",
				Aliases: []string{"B"},
				Usage:   "Don't create a backup file when writing the changelog",
			},
			&urfavecli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Be quiet: -q hides info, -qq also warnings, -qqq also errors",
				Config:  urfavecli.BoolConfig{Count: &quiet},
			},
			&urfavecli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug output, repeat for more detail",
				Config:  urfavecli.BoolConfig{Count: &debug},
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColor,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColor)
			applyFlags(cmd, cfg, quiet, debug)
			tui.SetTheme(cfg.Theme)
			return ctx, cfg.Validate()
		},
		Commands: []*urfavecli.Command{
			validate.Run(cfg),
			render.Run(cfg),
			ready.Run(cfg),
			release.Run(cfg),
			info.Run(cfg),
			rewrite.Run(cfg),
			versions.Run(cfg),
		},
	}
}

// applyFlags copies the global flags that were given onto cfg.
func applyFlags(cmd *urfavecli.Command, cfg *config.Config, quiet, debug int) {
	if cmd.IsSet("file") {
		cfg.File = cmd.String("file")
	}
	if cmd.Bool("no-scm") {
		cfg.SCM = "none"
	}
	if cmd.Bool("ignore") {
		cfg.IgnoreInvalid = true
	}
	if cmd.Bool("no-file-backup") {
		cfg.FileBackup = false
	}
	if quiet > 0 {
		cfg.Quiet = quiet
	}
	if debug > 0 {
		cfg.Debug = debug
	}
}
