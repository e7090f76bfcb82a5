package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/indaco/kacl/internal/scm"
	"github.com/indaco/kacl/internal/tui"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.File) == "" {
		errs = append(errs, errors.New("file: must not be empty"))
	}
	if _, err := scm.ParseKind(c.SCM); err != nil {
		errs = append(errs, fmt.Errorf("scm: %w", err))
	}
	if c.FileBackup && c.BackupSuffix == "" {
		errs = append(errs, errors.New("backup-suffix: must not be empty when file-backup is enabled"))
	}
	if c.Theme != "" && !tui.IsValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("theme: unknown theme %q (expected one of %s)", c.Theme, strings.Join(tui.ValidThemes, ", ")))
	}
	if c.Quiet < 0 {
		errs = append(errs, fmt.Errorf("quiet: must not be negative, got %d", c.Quiet))
	}
	if c.Debug < 0 {
		errs = append(errs, fmt.Errorf("debug: must not be negative, got %d", c.Debug))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SCMKind returns the configured tag-date backend.
func (c *Config) SCMKind() scm.Kind {
	k, err := scm.ParseKind(c.SCM)
	if err != nil {
		return scm.KindAuto
	}
	return k
}
