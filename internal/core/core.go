// Package core holds the small interfaces and constants shared by kacl's
// packages: file system access and the tag-date lookup.
package core

import (
	"context"
	"os"
	"time"
)

// File permissions.
const (
	// PermOwnerRW is read/write for the owner only (config files).
	PermOwnerRW os.FileMode = 0o600

	// PermFile is the usual permission of a tracked text file.
	PermFile os.FileMode = 0o644
)

// Timeouts for external commands.
const (
	// TimeoutGit bounds a single git invocation.
	TimeoutGit = 10 * time.Second

	// TimeoutShort bounds quick probes such as "is this a work tree".
	TimeoutShort = 2 * time.Second
)

// FileSystem abstracts the file operations kacl needs.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	Rename(ctx context.Context, oldPath, newPath string) error
	Remove(ctx context.Context, path string) error
}

// TagDateReader looks up the date of the release tag of a version.
// ok is false when there is no such tag or it cannot be read; that is
// never an error.
type TagDateReader interface {
	TagDate(ctx context.Context, version string) (date string, ok bool)
}

// TagDateFunc adapts a function to TagDateReader.
type TagDateFunc func(ctx context.Context, version string) (string, bool)

// TagDate implements TagDateReader.
func (f TagDateFunc) TagDate(ctx context.Context, version string) (string, bool) {
	return f(ctx, version)
}
