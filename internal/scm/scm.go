// Package scm looks up release tag dates in the version control system
// that holds the changelog. Tags are named "v<version>".
package scm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/logging"
)

// TagPrefix is prepended to a version to form its tag name.
const TagPrefix = "v"

// Kind selects a tag-date backend.
type Kind string

const (
	// KindAuto uses the git CLI inside a work tree, go-git when only the
	// repository can be opened, and nothing otherwise.
	KindAuto Kind = "auto"
	// KindGit always uses the git CLI.
	KindGit Kind = "git"
	// KindNative reads the repository with go-git.
	KindNative Kind = "native"
	// KindNone disables tag checks.
	KindNone Kind = "none"
)

// Kinds lists every valid Kind.
var Kinds = []Kind{KindAuto, KindGit, KindNative, KindNone}

// ParseKind converts a config value into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindAuto, nil
	}
	for _, valid := range Kinds {
		if k == valid {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown scm %q (expected one of auto, git, native, none)", s)
}

// TagName returns the tag that marks the release of version.
func TagName(version string) string {
	return TagPrefix + version
}

// New returns the tag-date reader for dir, or nil when tag checks are
// disabled or no repository is found in auto mode. Lookups are cached.
func New(ctx context.Context, kind Kind, dir string, logger *slog.Logger) (core.TagDateReader, error) {
	log := logging.OrDiscard(logger)

	switch kind {
	case KindNone:
		log.Debug("scm disabled")
		return nil, nil
	case KindGit:
		return NewCached(NewGitCLI(dir, log)), nil
	case KindNative:
		native, err := OpenNative(dir, log)
		if err != nil {
			return nil, err
		}
		return NewCached(native), nil
	case KindAuto, "":
		cli := NewGitCLI(dir, log)
		if cli.IsWorkTree(ctx) {
			log.Debug("In git working copy -- enabling scm git", "dir", dir)
			return NewCached(cli), nil
		}
		if native, err := OpenNative(dir, log); err == nil {
			log.Debug("git repository found -- enabling scm native", "dir", dir)
			return NewCached(native), nil
		}
		log.Debug("no git repository -- scm disabled", "dir", dir)
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown scm %q", kind)
	}
}
