package info

import (
	"testing"

	"github.com/indaco/kacl/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changelogText = `# Changelog

## [Unreleased]

## [1.1.0] - 2021-02-01

### Fixed
- crash on start
  - only on Tuesdays

## [1.0.0] - 2021-01-01

- first

[Unreleased]: https://x/compare/v1.1.0...HEAD
[1.1.0]: https://x/compare/v1.0.0...v1.1.0
`

func TestInfoCmd(t *testing.T) {
	path := testutils.WriteChangelog(t, changelogText)

	res := testutils.RunCommand(t, Run(testutils.Config(path)), "info", "1.1.0")
	require.NoError(t, res.Err)
	assert.Equal(t, "### Fixed\n- crash on start\n  - only on Tuesdays\n", res.Stdout)

	res = testutils.RunCommand(t, Run(testutils.Config(path)), "info", "1.0.0")
	require.NoError(t, res.Err)
	assert.Equal(t, "- first\n", res.Stdout)
}

func TestInfoCmd_Errors(t *testing.T) {
	path := testutils.WriteChangelog(t, changelogText)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no argument", []string{"info"}, `Invalid number of arguments for command "info": Expected 1, got 0`},
		{"too many", []string{"info", "1.0.0", "1.1.0"}, `Invalid number of arguments for command "info": Expected 1, got 2`},
		{"unknown version", []string{"info", "2.0.0"}, "No info for version 2.0.0 available"},
		{"empty body", []string{"info", "unreleased"}, "No info for version unreleased available"},
		{"bad version", []string{"info", "1.x"}, `invalid version: "1.x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutils.RunCommand(t, Run(testutils.Config(path)), tt.args...)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tt.wantErr)
			assert.Empty(t, res.Stdout)
		})
	}
}
