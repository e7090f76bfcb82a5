// Package testutils holds helpers shared by command tests.
package testutils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/kacl/internal/config"
	"github.com/urfave/cli/v3"
)

// WriteChangelog writes content to CHANGELOG.md in a fresh temp dir and
// returns its path.
func WriteChangelog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write changelog: %v", err)
	}
	return path
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Config returns a configuration for path with tag checks disabled.
func Config(path string) *config.Config {
	cfg := config.Default()
	cfg.File = path
	cfg.SCM = "none"
	return cfg
}

// Result is the outcome of RunCommand.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// RunCommand runs sub under a bare root command, capturing its output.
// Exit codes are returned as errors instead of terminating the process.
func RunCommand(t *testing.T, sub *cli.Command, args ...string) Result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := &cli.Command{
		Name:           "kacl",
		Writer:         &stdout,
		ErrWriter:      &stderr,
		Commands:       []*cli.Command{sub},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	err := root.Run(context.Background(), append([]string{"kacl"}, args...))
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// ExitCode returns the exit code carried by err: 0 for nil, 1 for plain
// errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ec, ok := err.(cli.ExitCoder); ok {
		return ec.ExitCode()
	}
	return 1
}
