package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/indaco/kacl/internal/printer"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name         string
		quiet, debug int
		want         slog.Level
	}{
		{"default", 0, 0, slog.LevelInfo},
		{"quiet", 1, 0, slog.LevelWarn},
		{"quieter", 2, 0, slog.LevelError},
		{"silent", 3, 0, LevelSilent},
		{"very silent", 7, 0, LevelSilent},
		{"debug", 0, 1, slog.LevelDebug},
		{"trace", 0, 2, LevelTrace},
		{"debug wins over quiet", 3, 1, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.quiet, tt.debug))
		})
	}
}

func TestConsoleHandler_Routing(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })

	var out, errOut bytes.Buffer
	log := New(&out, &errOut, 0, 1)

	log.Info("VALID")
	log.Warn("careful", "line", 3)
	log.Error("broken")
	log.Debug("details")

	assert.Equal(t, "VALID\n", out.String())
	assert.Equal(t, "WARNING: careful line=3\nERROR: broken\nDEBUG: details\n", errOut.String())
}

func TestConsoleHandler_QuietSuppresses(t *testing.T) {
	var out, errOut bytes.Buffer
	log := New(&out, &errOut, 2, 0)

	log.Info("hidden")
	log.Warn("hidden")
	log.Log(context.Background(), LevelTrace, "hidden")

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestConsoleHandler_AttrsAndGroups(t *testing.T) {
	printer.SetNoColor(true)
	t.Cleanup(func() { printer.SetNoColor(false) })

	var out bytes.Buffer
	log := New(&out, &out, 0, 0).With("file", "CHANGELOG.md").WithGroup("scm")

	log.Info("lookup", "tag", "v1.0.0")

	assert.Equal(t, "lookup file=CHANGELOG.md scm.tag=v1.0.0\n", out.String())
}

func TestOrDiscard(t *testing.T) {
	l := OrDiscard(nil)
	assert.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))

	own := slog.Default()
	assert.Same(t, own, OrDiscard(own))
}
