package release

import (
	"context"
	"fmt"

	"github.com/indaco/kacl/internal/changelog"
	"github.com/indaco/kacl/internal/clix"
	"github.com/indaco/kacl/internal/config"
	"github.com/indaco/kacl/internal/printer"
	"github.com/indaco/kacl/internal/scm"
	"github.com/indaco/kacl/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "release" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "release",
		Usage: "Release a version: date the Unreleased entry and bound its compare link",
		Description: "The entry for VERSION, or else the Unreleased entry, gets today's date\n" +
			"and VERSION as its name. The file is only written when it is ready for\n" +
			"release afterwards. Create the release tag yourself.",
		UsageText: "kacl [global options] release [--confirm] [--dry-run] VERSION",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "confirm",
				Usage: "Ask before writing (interactive terminals only)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the released changelog instead of writing it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runReleaseCmd(ctx, cmd, cfg)
		},
	}
}

func runReleaseCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
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

	from := releaseSource(doc, version)
	sec, err := doc.Release(version)
	if err != nil {
		return err
	}
	s.Log.Info(fmt.Sprintf("Releasing %s -> %s(%s)", from, sec.Version, sec.Date))

	if !s.IsReleasable(ctx, doc, version) {
		s.Log.Error("Not written")
		return clix.Failed()
	}

	if cmd.Bool("dry-run") {
		_, err := doc.WriteTo(s.Out)
		return err
	}

	if cmd.Bool("confirm") && isInteractive() {
		ok, err := newPrompter().Confirm(
			fmt.Sprintf("Write release %s to %s?", sec.Version, cfg.File),
			fmt.Sprintf("Entry %s becomes %s, dated %s.", from, sec.Version, sec.Date),
		)
		if err != nil {
			return err
		}
		if !ok {
			s.Log.Info(printer.Faint("Release cancelled, nothing written"))
			return nil
		}
	}

	if err := s.Save(ctx, doc); err != nil {
		return err
	}
	s.Log.Warn(fmt.Sprintf("DON'T FORGET to create a release tag %s", scm.TagName(sec.Version.String())))
	return nil
}

// releaseSource names the entry Release will pick for target.
func releaseSource(doc *changelog.Document, target string) string {
	if v, err := semver.Parse(target); err == nil {
		if _, ok := doc.Section(v); ok {
			return v.String()
		}
	}
	return semver.UnreleasedText
}
