package release

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/indaco/kacl/internal/changelog"
	"github.com/indaco/kacl/internal/clix"
	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/scm"
	"github.com/indaco/kacl/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changelogText = `# Changelog

## [Unreleased] - soon

- new things

## [1.0.0] - 2020-01-01

- first

[Unreleased]: https://x/compare/v1.0.0...HEAD
[1.0.0]: https://x/compare/v0.9.0...v1.0.0
`

type stubPrompter struct {
	answer bool
	err    error
	calls  int
}

func (p *stubPrompter) Confirm(string, string) (bool, error) {
	p.calls++
	return p.answer, p.err
}

// stubPrompt replaces the interactivity seams for one test.
func stubPrompt(t *testing.T, interactive bool, p *stubPrompter) {
	t.Helper()
	origPrompter, origInteractive := newPrompter, isInteractive
	t.Cleanup(func() {
		newPrompter, isInteractive = origPrompter, origInteractive
	})
	newPrompter = func() Prompter { return p }
	isInteractive = func() bool { return interactive }
}

func today() string {
	return time.Now().Format(changelog.DateLayout)
}

func releasedText(date string) string {
	return `
# Changelog

## [1.1.0] - ` + date + `

- new things

## [1.0.0] - 2020-01-01

- first

[1.1.0]: https://x/compare/v1.0.0...v1.1.0
[1.0.0]: https://x/compare/v0.9.0...v1.0.0

`
}

func TestReleaseCmd_Unreleased(t *testing.T) {
	path := testutils.WriteChangelog(t, changelogText)

	res := testutils.RunCommand(t, Run(testutils.Config(path)), "release", "1.1.0")
	require.NoError(t, res.Err)

	date := today()
	assert.Equal(t, "Releasing Unreleased -> 1.1.0("+date+")\n", res.Stdout)
	assert.Equal(t, "WARNING: DON'T FORGET to create a release tag v1.1.0\n", res.Stderr)
	assert.Equal(t, releasedText(date), testutils.ReadFile(t, path))
	assert.Equal(t, changelogText, testutils.ReadFile(t, path+".kaclBackup"))
}

func TestReleaseCmd_ExistingEntry(t *testing.T) {
	content := "## [1.1.0] - draft\n\n- x\n\n## [1.0.0] - 2020-01-01\n\n" +
		"[1.1.0]: https://x/compare/v1.0.0...main\n"
	path := testutils.WriteChangelog(t, content)

	res := testutils.RunCommand(t, Run(testutils.Config(path)), "release", "1.1.0")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Releasing 1.1.0 -> 1.1.0(")

	written := testutils.ReadFile(t, path)
	assert.Contains(t, written, "## [1.1.0] - "+today()+"\n")
	assert.NotContains(t, written, "draft")
	assert.Contains(t, written, "[1.1.0]: https://x/compare/v1.0.0...v1.1.0\n")
}

func TestReleaseCmd_NotWritten(t *testing.T) {
	path := testutils.WriteChangelog(t, changelogText)

	res := testutils.RunCommand(t, Run(testutils.Config(path)), "release", "1.1.0-snapshot")
	assert.Equal(t, 1, testutils.ExitCode(res.Err))
	assert.Contains(t, res.Stderr, `Version containing "SNAPSHOT": 1.1.0-snapshot`)
	assert.Contains(t, res.Stderr, "ERROR: Not written\n")
	assert.Equal(t, changelogText, testutils.ReadFile(t, path))
}

func TestReleaseCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		wantErr string
	}{
		{"no version", changelogText, []string{"release"},
			`Invalid number of arguments for command "release": Expected 1, got 0`},
		{"invalid version", changelogText, []string{"release", "v1"}, `invalid version: "v1"`},
		{"nothing to release", "## 1.0.0 - 2020-01-01\n", []string{"release", "1.1.0"},
			`Neither entry "1.1.0" nor "Unreleased" found`},
		{"no compare link", "## Unreleased\n\n- x\n", []string{"release", "1.0.0"},
			"No compare link for version Unreleased"},
		{"invalid file", "## 1.0.0\n\n## 0.9.0 - 2020-01-01\n", []string{"release", "1.0.0"},
			"File is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutils.WriteChangelog(t, tt.content)
			res := testutils.RunCommand(t, Run(testutils.Config(path)), tt.args...)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tt.wantErr)
			assert.Equal(t, tt.content, testutils.ReadFile(t, path))
		})
	}
}

func TestReleaseCmd_DryRun(t *testing.T) {
	path := testutils.WriteChangelog(t, changelogText)

	res := testutils.RunCommand(t, Run(testutils.Config(path)), "release", "--dry-run", "1.1.0")
	require.NoError(t, res.Err)

	date := today()
	assert.Equal(t, "Releasing Unreleased -> 1.1.0("+date+")\n"+releasedText(date), res.Stdout)
	assert.Empty(t, res.Stderr)
	assert.Equal(t, changelogText, testutils.ReadFile(t, path))
}

func TestReleaseCmd_Confirm(t *testing.T) {
	tests := []struct {
		name        string
		interactive bool
		prompter    *stubPrompter
		wantCalls   int
		wantWritten bool
		wantErr     string
	}{
		{"accepted", true, &stubPrompter{answer: true}, 1, true, ""},
		{"declined", true, &stubPrompter{answer: false}, 1, false, ""},
		{"prompt fails", true, &stubPrompter{err: errors.New("user aborted")}, 1, false, "user aborted"},
		{"not interactive", false, &stubPrompter{}, 0, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPrompt(t, tt.interactive, tt.prompter)
			path := testutils.WriteChangelog(t, changelogText)

			res := testutils.RunCommand(t, Run(testutils.Config(path)), "release", "--confirm", "1.1.0")
			if tt.wantErr != "" {
				require.EqualError(t, res.Err, tt.wantErr)
			} else {
				require.NoError(t, res.Err)
			}
			assert.Equal(t, tt.wantCalls, tt.prompter.calls)

			if tt.wantWritten {
				assert.Equal(t, releasedText(today()), testutils.ReadFile(t, path))
			} else {
				assert.Equal(t, changelogText, testutils.ReadFile(t, path))
			}
		})
	}
}

func TestReleaseCmd_TagChecks(t *testing.T) {
	mock := scm.NewMock(map[string]string{"1.0.0": "2020-01-01"})
	orig := clix.NewOracleFn
	t.Cleanup(func() { clix.NewOracleFn = orig })
	clix.NewOracleFn = func(context.Context, scm.Kind, string, *slog.Logger) (core.TagDateReader, error) {
		return mock, nil
	}

	path := testutils.WriteChangelog(t, changelogText)
	cfg := testutils.Config(path)
	cfg.SCM = "auto"

	res := testutils.RunCommand(t, Run(cfg), "release", "1.1.0")
	require.NoError(t, res.Err, res.Stderr)
	assert.Contains(t, mock.Calls(), "1.1.0")
	assert.Equal(t, releasedText(today()), testutils.ReadFile(t, path))
}

func TestReleaseCmd_TagDateMismatch(t *testing.T) {
	mock := scm.NewMock(map[string]string{"1.0.0": "2020-01-02"})
	orig := clix.NewOracleFn
	t.Cleanup(func() { clix.NewOracleFn = orig })
	clix.NewOracleFn = func(context.Context, scm.Kind, string, *slog.Logger) (core.TagDateReader, error) {
		return mock, nil
	}

	path := testutils.WriteChangelog(t, changelogText)
	cfg := testutils.Config(path)
	cfg.IgnoreInvalid = true

	res := testutils.RunCommand(t, Run(cfg), "release", "1.1.0")
	assert.Equal(t, 1, testutils.ExitCode(res.Err))
	assert.Contains(t, res.Stderr, `Version 1.0.0 release date and SCM tag date differ: "2020-01-01" <-> "2020-01-02"`)
	assert.Equal(t, changelogText, testutils.ReadFile(t, path))
}
