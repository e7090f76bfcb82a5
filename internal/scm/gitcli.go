package scm

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/logging"
)

var execCommand = exec.CommandContext

// GitCLI reads tag dates by running the git binary.
type GitCLI struct {
	dir string
	log *slog.Logger
}

// NewGitCLI creates a GitCLI that runs git in dir.
func NewGitCLI(dir string, logger *slog.Logger) *GitCLI {
	return &GitCLI{dir: dir, log: logging.OrDiscard(logger)}
}

// Verify GitCLI implements core.TagDateReader.
var _ core.TagDateReader = (*GitCLI)(nil)

// TagDate returns the author date of the commit tagged v<version>.
func (g *GitCLI) TagDate(ctx context.Context, version string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, core.TimeoutGit)
	defer cancel()

	out, err := g.run(ctx, "log", "-1", "--date=short", "--format=%ad", TagName(version))
	if err != nil {
		g.log.Debug("tag lookup failed", "tag", TagName(version), "error", err)
		return "", false
	}
	if out == "" {
		return "", false
	}
	return out, true
}

// IsWorkTree reports whether dir is inside a git work tree.
func (g *GitCLI) IsWorkTree(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, core.TimeoutShort)
	defer cancel()

	out, err := g.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

func (g *GitCLI) run(ctx context.Context, args ...string) (string, error) {
	cmd := execCommand(ctx, "git", args...)
	cmd.Dir = g.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	g.log.Log(ctx, logging.LevelTrace, "exec", "cmd", "git "+strings.Join(args, " "), "dir", g.dir)
	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return "", fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
