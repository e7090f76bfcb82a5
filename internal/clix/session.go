// Package clix holds the plumbing shared by kacl's sub-commands: the
// session that ties configuration, logging, the tag-date oracle and the
// changelog file together, plus argument checks.
package clix

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/indaco/kacl/internal/changelog"
	"github.com/indaco/kacl/internal/changelogfile"
	"github.com/indaco/kacl/internal/config"
	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/logging"
	"github.com/indaco/kacl/internal/scm"
	"github.com/indaco/kacl/internal/tui"
	"github.com/urfave/cli/v3"
)

// Seams replaced in tests.
var (
	FileSystem  core.FileSystem = core.NewOSFileSystem()
	NewOracleFn                 = scm.New
)

// Session is the per-command state.
type Session struct {
	Config *config.Config
	Log    *slog.Logger
	Out    io.Writer
	Store  *changelogfile.Store
	Oracle core.TagDateReader
}

// NewSession builds a session from the effective configuration. Output
// goes to the root command's writers.
func NewSession(ctx context.Context, cmd *cli.Command, cfg *config.Config) (*Session, error) {
	stdout, stderr := writers(cmd)
	log := logging.New(stdout, stderr, cfg.Quiet, cfg.Debug)
	log.Debug("Config", "file", cfg.File, "scm", cfg.SCM, "ignore-invalid", cfg.IgnoreInvalid,
		"file-backup", cfg.FileBackup, "quiet", cfg.Quiet, "debug", cfg.Debug, "source", cfg.Source)

	oracle, err := NewOracleFn(ctx, cfg.SCMKind(), changelogDir(cfg.File), log)
	if err != nil {
		return nil, err
	}

	return &Session{
		Config: cfg,
		Log:    log,
		Out:    stdout,
		Oracle: oracle,
		Store: changelogfile.NewStore(FileSystem, changelogfile.Options{
			Backup:        cfg.FileBackup,
			BackupSuffix:  cfg.BackupSuffix,
			IgnoreInvalid: cfg.IgnoreInvalid,
			Logger:        log,
		}),
	}, nil
}

func writers(cmd *cli.Command) (stdout, stderr io.Writer) {
	stdout, stderr = os.Stdout, os.Stderr
	if cmd == nil {
		return stdout, stderr
	}
	root := cmd.Root()
	if root.Writer != nil {
		stdout = root.Writer
	}
	if root.ErrWriter != nil {
		stderr = root.ErrWriter
	}
	return stdout, stderr
}

// changelogDir is where git runs: the directory of the changelog file.
func changelogDir(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return filepath.Dir(file)
	}
	return filepath.Dir(abs)
}

// Load reads the changelog without validating it.
func (s *Session) Load(ctx context.Context) (*changelog.Document, error) {
	return s.Store.Load(ctx, s.Config.File)
}

// LoadValidated reads the changelog and refuses it when it fails
// validation, unless ignore-invalid is set. Violations are not printed;
// use the validate command to see them.
func (s *Session) LoadValidated(ctx context.Context) (*changelog.Document, error) {
	doc, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s.Config.IgnoreInvalid {
		return doc, nil
	}

	valid := s.checkDoc(ctx, doc, func(v *changelog.Validator) bool {
		return v.Validate(ctx, "")
	}, nil)
	if !valid {
		return nil, fmt.Errorf("%s: File is invalid - check with \"validate\" or use \"-i\"", s.Config.File)
	}
	return doc, nil
}

// Validate runs Validate on doc and prints every violation.
func (s *Session) Validate(ctx context.Context, doc *changelog.Document, exempt string) bool {
	return s.Check(ctx, doc, func(v *changelog.Validator) bool {
		return v.Validate(ctx, exempt)
	})
}

// IsReleasable runs IsReleasable on doc and prints every violation.
func (s *Session) IsReleasable(ctx context.Context, doc *changelog.Document, exempt string) bool {
	return s.Check(ctx, doc, func(v *changelog.Validator) bool {
		return v.IsReleasable(ctx, exempt)
	})
}

// Check runs fn with a validator for doc and prints the violations it
// reports. A spinner is shown while tags are looked up interactively.
func (s *Session) Check(ctx context.Context, doc *changelog.Document, fn func(*changelog.Validator) bool) bool {
	var diags []changelog.Diagnostic
	ok := s.checkDoc(ctx, doc, fn, changelog.Collect(&diags))
	for _, d := range diags {
		s.Log.Error(d.String())
	}
	return ok
}

func (s *Session) checkDoc(ctx context.Context, doc *changelog.Document, fn func(*changelog.Validator) bool, sink changelog.Sink) bool {
	v := changelog.NewValidator(doc, changelog.ValidatorOptions{
		Oracle: s.Oracle,
		Sink:   sink,
		Logger: s.Log,
	})
	if s.Oracle == nil {
		return fn(v)
	}

	var ok bool
	_ = tui.WithSpinner(ctx, "Checking release tags...", func(context.Context) error {
		ok = fn(v)
		return nil
	})
	return ok
}

// Save writes doc back to the changelog file.
func (s *Session) Save(ctx context.Context, doc *changelog.Document) error {
	return s.Store.Save(ctx, s.Config.File, doc)
}
