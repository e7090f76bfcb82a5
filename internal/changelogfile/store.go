// Package changelogfile loads and saves changelog files through a
// core.FileSystem, keeping a backup of the previous content on save.
package changelogfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/indaco/kacl/internal/changelog"
	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/logging"
)

// DefaultBackupSuffix is appended to the file name of the backup copy.
const DefaultBackupSuffix = ".kaclBackup"

// Options configures a Store.
type Options struct {
	// Backup keeps the previous file as <path><BackupSuffix> on save.
	Backup bool

	// BackupSuffix defaults to DefaultBackupSuffix.
	BackupSuffix string

	// IgnoreInvalid is passed on to the parser.
	IgnoreInvalid bool

	Logger *slog.Logger
}

// Store reads and writes changelog files.
type Store struct {
	fs   core.FileSystem
	opts Options
	log  *slog.Logger
}

// NewStore creates a Store on fs.
func NewStore(fs core.FileSystem, opts Options) *Store {
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = DefaultBackupSuffix
	}
	return &Store{fs: fs, opts: opts, log: logging.OrDiscard(opts.Logger)}
}

// BackupPath returns the backup file name for path.
func (s *Store) BackupPath(path string) string {
	return path + s.opts.BackupSuffix
}

// Load reads and parses the changelog at path. Structural errors are
// returned as is so callers can match them with errors.Is.
func (s *Store) Load(ctx context.Context, path string) (*changelog.Document, error) {
	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	s.log.Debug("loading changelog", "file", path, "bytes", len(data))
	return changelog.Parse(bytes.NewReader(data), changelog.ParseOptions{
		File:          path,
		IgnoreInvalid: s.opts.IgnoreInvalid,
		Logger:        s.opts.Logger,
	})
}

// Save writes the canonical rendering of doc to path. With backups
// enabled the current file is first moved to BackupPath(path), replacing
// an older backup.
func (s *Store) Save(ctx context.Context, path string, doc *changelog.Document) error {
	content := []byte(doc.Render())

	perm := core.PermFile
	info, err := s.fs.Stat(ctx, path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if s.opts.Backup && err == nil {
		if err := s.backup(ctx, path); err != nil {
			return err
		}
	}

	if err := s.fs.WriteFile(ctx, path, content, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.log.Debug("changelog written", "file", path, "bytes", len(content))
	return nil
}

func (s *Store) backup(ctx context.Context, path string) error {
	backup := s.BackupPath(path)

	if err := s.fs.Remove(ctx, backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove old backup %s: %w", backup, err)
	}
	if err := s.fs.Rename(ctx, path, backup); err != nil {
		return fmt.Errorf("failed to create backup %s: %w", backup, err)
	}
	s.log.Debug("backup created", "file", backup)
	return nil
}
