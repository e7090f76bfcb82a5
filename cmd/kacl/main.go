package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/indaco/kacl/internal/cli"
	"github.com/indaco/kacl/internal/config"
	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/logging"
	urfavecli "github.com/urfave/cli/v3"
)

func main() {
	os.Exit(runCLI(os.Args, os.Stdout, os.Stderr))
}

// runCLI runs kacl and returns the process exit code.
func runCLI(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfigFn(ctx, core.NewOSFileSystem(), ".")
	if err != nil {
		logging.New(stdout, stderr, 0, 0).Error(err.Error())
		return 1
	}

	app := cli.New(cfg)
	app.Writer = stdout
	app.ErrWriter = stderr
	app.ExitErrHandler = func(context.Context, *urfavecli.Command, error) {}

	err = app.Run(ctx, args)
	if err == nil {
		return 0
	}

	// cfg now carries the verbosity given on the command line.
	log := logging.New(stdout, stderr, cfg.Quiet, cfg.Debug)
	var exitErr urfavecli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			log.Error(msg)
		}
		return exitErr.ExitCode()
	}
	log.Error(err.Error())
	return 1
}
