package versions

import (
	"context"
	"fmt"

	"github.com/indaco/kacl/internal/changelog"
	"github.com/indaco/kacl/internal/clix"
	"github.com/indaco/kacl/internal/config"
	"github.com/indaco/kacl/internal/semver"
	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v3"
)

// Run returns the "versions" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "versions",
		Usage:     "List the versions and their release dates",
		UsageText: "kacl [global options] versions [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the list as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runVersionsCmd(ctx, cmd, cfg)
		},
	}
}

func runVersionsCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
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

	if cmd.Bool("json") {
		out, err := versionsJSON(doc.Sections())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.Out, string(out))
		return err
	}

	for _, sec := range doc.Sections() {
		date := sec.Date
		if date == "" {
			date = semver.UnreleasedText
		}
		if _, err := fmt.Fprintf(s.Out, "%10s: %s\n", date, sec.Version); err != nil {
			return err
		}
	}
	return nil
}

// versionsJSON renders {"versions":[{"version":..,"date":..,"released":..,"line":..}]}.
func versionsJSON(sections []*changelog.VersionSection) ([]byte, error) {
	out := []byte(`{"versions":[]}`)
	for _, sec := range sections {
		entry := map[string]any{
			"version":  sec.Version.String(),
			"released": sec.IsReleased(),
			"line":     sec.Line,
		}
		if sec.Date != "" {
			entry["date"] = sec.Date
		}
		if sec.Note != "" {
			entry["note"] = sec.Note
		}
		if sec.Link != nil {
			entry["link"] = sec.Link.Href
		}

		var err error
		out, err = sjson.SetBytes(out, "versions.-1", entry)
		if err != nil {
			return nil, fmt.Errorf("failed to encode version %s: %w", sec.Version, err)
		}
	}
	return out, nil
}
