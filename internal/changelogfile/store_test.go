package changelogfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/kacl/internal/changelog"
	"github.com/indaco/kacl/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const original = "# Changelog\n## [1.0.0] - 2020-01-01\n- first\n"

const rendered = "\n# Changelog\n\n## 1.0.0 - 2020-01-01\n\n- first\n\n"

func TestStore_Load(t *testing.T) {
	mfs := core.NewMockFileSystem()
	mfs.SetFile("CHANGELOG.md", []byte(original))

	doc, err := NewStore(mfs, Options{}).Load(context.Background(), "CHANGELOG.md")
	require.NoError(t, err)
	assert.Equal(t, "CHANGELOG.md", doc.File())
	assert.Len(t, doc.Versions(), 1)
}

func TestStore_LoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewStore(core.NewMockFileSystem(), Options{}).Load(context.Background(), "CHANGELOG.md")
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), "failed to read CHANGELOG.md")
	})

	t.Run("structural error", func(t *testing.T) {
		mfs := core.NewMockFileSystem()
		mfs.SetFile("CHANGELOG.md", []byte("stray text\n"))
		_, err := NewStore(mfs, Options{}).Load(context.Background(), "CHANGELOG.md")
		assert.ErrorIs(t, err, changelog.ErrStructural)
	})
}

func TestStore_SaveWithBackup(t *testing.T) {
	mfs := core.NewMockFileSystem()
	mfs.SetFile("CHANGELOG.md", []byte(original))
	mfs.SetFile("CHANGELOG.md.kaclBackup", []byte("stale"))

	store := NewStore(mfs, Options{Backup: true})
	doc, err := store.Load(context.Background(), "CHANGELOG.md")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "CHANGELOG.md", doc))

	got, ok := mfs.GetFile("CHANGELOG.md")
	require.True(t, ok)
	assert.Equal(t, rendered, string(got))

	backup, ok := mfs.GetFile("CHANGELOG.md.kaclBackup")
	require.True(t, ok)
	assert.Equal(t, original, string(backup))
}

func TestStore_SaveWithoutBackup(t *testing.T) {
	mfs := core.NewMockFileSystem()
	mfs.SetFile("CHANGELOG.md", []byte(original))

	store := NewStore(mfs, Options{})
	doc, err := store.Load(context.Background(), "CHANGELOG.md")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "CHANGELOG.md", doc))

	_, ok := mfs.GetFile("CHANGELOG.md.kaclBackup")
	assert.False(t, ok)
	assert.Equal(t, core.PermFile, mfs.Perm("CHANGELOG.md"))
}

func TestStore_SaveCustomSuffix(t *testing.T) {
	mfs := core.NewMockFileSystem()
	mfs.SetFile("CHANGELOG.md", []byte(original))

	store := NewStore(mfs, Options{Backup: true, BackupSuffix: ".bak"})
	assert.Equal(t, "CHANGELOG.md.bak", store.BackupPath("CHANGELOG.md"))

	doc, err := store.Load(context.Background(), "CHANGELOG.md")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "CHANGELOG.md", doc))

	_, ok := mfs.GetFile("CHANGELOG.md.bak")
	assert.True(t, ok)
}

func TestStore_SaveNewFileSkipsBackup(t *testing.T) {
	mfs := core.NewMockFileSystem()
	doc, err := changelog.ParseString(original, changelog.ParseOptions{File: "NEW.md"})
	require.NoError(t, err)

	require.NoError(t, NewStore(mfs, Options{Backup: true}).Save(context.Background(), "NEW.md", doc))
	_, ok := mfs.GetFile("NEW.md.kaclBackup")
	assert.False(t, ok)
}

func TestStore_SaveErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		setup   func(*core.MockFileSystem)
		wantMsg string
	}{
		{"stat", func(m *core.MockFileSystem) { m.StatErr = boom }, "failed to stat CHANGELOG.md: boom"},
		{"remove", func(m *core.MockFileSystem) { m.RemoveErr = boom }, "failed to remove old backup CHANGELOG.md.kaclBackup: boom"},
		{"rename", func(m *core.MockFileSystem) { m.RenameErr = boom }, "failed to create backup CHANGELOG.md.kaclBackup: boom"},
		{"write", func(m *core.MockFileSystem) { m.WriteErr = boom }, "failed to write CHANGELOG.md: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := core.NewMockFileSystem()
			mfs.SetFile("CHANGELOG.md", []byte(original))
			store := NewStore(mfs, Options{Backup: true})
			doc, err := store.Load(context.Background(), "CHANGELOG.md")
			require.NoError(t, err)

			tt.setup(mfs)
			err = store.Save(context.Background(), "CHANGELOG.md", doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestStore_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	store := NewStore(core.OSFileSystem{}, Options{Backup: true})
	doc, err := store.Load(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), path, doc))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, rendered, string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	backup, err := os.ReadFile(path + DefaultBackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))
}
