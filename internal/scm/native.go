package scm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/logging"
)

// dateLayout matches git's --date=short.
const dateLayout = "2006-01-02"

// Native reads tag dates from the repository with go-git, without a git
// binary.
type Native struct {
	repo *git.Repository
	log  *slog.Logger
}

// Verify Native implements core.TagDateReader.
var _ core.TagDateReader = (*Native)(nil)

// OpenNative opens the repository containing dir. Parent directories are
// searched for the .git directory.
func OpenNative(dir string, logger *slog.Logger) (*Native, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return &Native{repo: repo, log: logging.OrDiscard(logger)}, nil
}

// TagDate returns the author date of the commit tagged v<version>.
// Annotated tags are peeled to their commit.
func (n *Native) TagDate(ctx context.Context, version string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	name := TagName(version)

	commit, err := n.tagCommit(name)
	if err != nil {
		n.log.Debug("tag lookup failed", "tag", name, "error", err)
		return "", false
	}
	return commit.Author.When.Format(dateLayout), true
}

func (n *Native) tagCommit(name string) (*object.Commit, error) {
	ref, err := n.repo.Tag(name)
	if err != nil {
		return nil, err
	}

	tag, err := n.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		return tag.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		// Lightweight tag: the reference points at the commit itself.
		return n.repo.CommitObject(ref.Hash())
	default:
		return nil, err
	}
}
