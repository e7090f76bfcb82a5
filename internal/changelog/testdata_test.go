package changelog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleChangelog is a small, valid changelog with an Unreleased section.
const sampleChangelog = `# Changelog

All notable changes to this project will be documented in this file.

## [Unreleased]

### Added
- Release command

## [1.0.0] - 2020-01-01

### Added
- First public release

## 0.9.0 - 2019-12-01

- Preview

[Unreleased]: https://github.com/acme/widget/compare/v1.0.0...HEAD
[1.0.0]: https://github.com/acme/widget/compare/v0.9.0...v1.0.0
`

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := ParseString(text, ParseOptions{File: "CHANGELOG.md"})
	require.NoError(t, err)
	return doc
}
