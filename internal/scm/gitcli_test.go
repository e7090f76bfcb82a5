package scm

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var fakeGitCommands = map[string]string{}

func fakeExecCommand(ctx context.Context, command string, args ...string) *exec.Cmd {
	cmdStr := command + " " + strings.Join(args, " ")
	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess", "--", cmdStr) //nolint:gosec // G702: standard test re-exec pattern

	cmd.Env = append(os.Environ(),
		"GO_TEST_HELPER_PROCESS=1",
		"MOCK_KEY="+cmdStr,
		"MOCK_VAL="+fakeGitCommands[cmdStr],
	)

	return cmd
}

// Simulated git process that prints predefined output.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_TEST_HELPER_PROCESS") != "1" {
		return
	}

	val := os.Getenv("MOCK_VAL")
	if val == "ERROR" {
		_, _ = os.Stderr.WriteString("fatal: ambiguous argument")
		os.Exit(128)
	}

	_, _ = os.Stdout.WriteString(val)
	os.Exit(0)
}

func stubExecCommand(t *testing.T, commands map[string]string) {
	t.Helper()
	origExec, origCommands := execCommand, fakeGitCommands
	execCommand = fakeExecCommand
	fakeGitCommands = commands
	t.Cleanup(func() {
		execCommand = origExec
		fakeGitCommands = origCommands
	})
}

func TestGitCLI_TagDate(t *testing.T) {
	tests := []struct {
		name     string
		commands map[string]string
		version  string
		wantDate string
		wantOK   bool
	}{
		{
			name:     "tag found",
			commands: map[string]string{"git log -1 --date=short --format=%ad v1.0.0": "2020-01-01\n"},
			version:  "1.0.0",
			wantDate: "2020-01-01",
			wantOK:   true,
		},
		{
			name:     "unknown tag",
			commands: map[string]string{"git log -1 --date=short --format=%ad v2.0.0": "ERROR"},
			version:  "2.0.0",
		},
		{
			name:     "empty output",
			commands: map[string]string{},
			version:  "3.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubExecCommand(t, tt.commands)

			g := NewGitCLI(t.TempDir(), nil)
			date, ok := g.TagDate(context.Background(), tt.version)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDate, date)
		})
	}
}

func TestGitCLI_IsWorkTree(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want bool
	}{
		{"inside", "true\n", true},
		{"bare repository", "false\n", false},
		{"not a repository", "ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubExecCommand(t, map[string]string{"git rev-parse --is-inside-work-tree": tt.out})
			assert.Equal(t, tt.want, NewGitCLI(t.TempDir(), nil).IsWorkTree(context.Background()))
		})
	}
}

func TestGitCLI_RunError(t *testing.T) {
	stubExecCommand(t, map[string]string{"git rev-parse --is-inside-work-tree": "ERROR"})

	_, err := NewGitCLI(t.TempDir(), nil).run(context.Background(), "rev-parse", "--is-inside-work-tree")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "fatal: ambiguous argument")
	}
}
