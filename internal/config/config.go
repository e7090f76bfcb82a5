package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/kacl/internal/core"
	"github.com/indaco/kacl/internal/tui"
	"github.com/pelletier/go-toml/v2"
)

// Config file names, in lookup order.
const (
	YAMLFile = ".kacl.yaml"
	TOMLFile = ".kacl.toml"
)

// EnvFile overrides the changelog path.
const EnvFile = "KACL_FILE"

// Defaults.
const (
	DefaultFile         = "CHANGELOG.md"
	DefaultSCM          = "auto"
	DefaultBackupSuffix = ".kaclBackup"
)

// Config is the main configuration structure for kacl.
type Config struct {
	File          string `yaml:"file" toml:"file"`
	SCM           string `yaml:"scm" toml:"scm"`
	IgnoreInvalid bool   `yaml:"ignore-invalid" toml:"ignore-invalid"`
	FileBackup    bool   `yaml:"file-backup" toml:"file-backup"`
	BackupSuffix  string `yaml:"backup-suffix" toml:"backup-suffix"`
	Quiet         int    `yaml:"quiet" toml:"quiet"`
	Debug         int    `yaml:"debug" toml:"debug"`
	Theme         string `yaml:"theme" toml:"theme"`

	// Source is the config file the values were read from, if any.
	Source string `yaml:"-" toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		File:         DefaultFile,
		SCM:          DefaultSCM,
		FileBackup:   true,
		BackupSuffix: DefaultBackupSuffix,
		Theme:        tui.DefaultTheme,
	}
}

// LoadConfigFn is the loader used by the CLI. Tests replace it.
var LoadConfigFn = Load

// Load builds the configuration for dir: defaults, then .kacl.yaml or
// .kacl.toml (the first found), then the KACL_FILE environment variable.
func Load(ctx context.Context, fsys core.FileSystem, dir string) (*Config, error) {
	cfg := Default()

	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		data, err := fsys.ReadFile(ctx, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if err := decode(name, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
		cfg.Source = path
		break
	}

	if envPath := os.Getenv(EnvFile); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvFile)
		}
		cfg.File = cleanPath
	}

	return cfg, nil
}

func decode(name string, data []byte, cfg *Config) error {
	if name == TOMLFile {
		return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yaml.NewDecoder(bytes.NewReader(data), yaml.Strict()).Decode(cfg)
}
