// Package logging builds the slog.Logger used across kacl. Verbosity is
// driven by the quiet and debug counters of the command line: each -q drops
// one level (info, warnings, errors), each -d adds one (debug, trace).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/indaco/kacl/internal/printer"
)

const (
	// LevelTrace is below slog.LevelDebug and is enabled by a second -d.
	LevelTrace = slog.LevelDebug - 4

	// LevelSilent is above every level that is ever logged.
	LevelSilent = slog.LevelError + 4
)

// Level maps the quiet and debug counters to a minimum level.
// Any debug request wins over quiet.
func Level(quiet, debug int) slog.Level {
	switch {
	case debug >= 2:
		return LevelTrace
	case debug == 1:
		return slog.LevelDebug
	}
	switch quiet {
	case 0:
		return slog.LevelInfo
	case 1:
		return slog.LevelWarn
	case 2:
		return slog.LevelError
	default:
		return LevelSilent
	}
}

// New returns a logger writing info messages to stdout and everything else
// to stderr.
func New(stdout, stderr io.Writer, quiet, debug int) *slog.Logger {
	return slog.New(NewConsoleHandler(stdout, stderr, Level(quiet, debug)))
}

// OrDiscard returns l, or a logger that drops everything when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

// ConsoleHandler is a slog.Handler producing terse human-oriented lines:
//
//	Releasing Unreleased -> 1.1.0 (2024-05-01)
//	WARNING: CHANGELOG.md[12] Link label looks like a version, but is not: 1.x
//	ERROR: No info for version 9.9.9 available
type ConsoleHandler struct {
	out    io.Writer
	errOut io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
	mu     *sync.Mutex
}

// NewConsoleHandler creates a ConsoleHandler.
func NewConsoleHandler(stdout, stderr io.Writer, level slog.Leveler) *ConsoleHandler {
	return &ConsoleHandler{
		out:    stdout,
		errOut: stderr,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	if p := prefix(r.Level); p != "" {
		sb.WriteString(p)
		sb.WriteByte(' ')
	}
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.group, a)
		return true
	})
	sb.WriteByte('\n')

	w := h.errOut
	if r.Level >= slog.LevelInfo && r.Level < slog.LevelWarn {
		w = h.out
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(w, sb.String())
	return err
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func prefix(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return printer.Error("ERROR:")
	case l >= slog.LevelWarn:
		return printer.Warning("WARNING:")
	case l >= slog.LevelInfo:
		return ""
	default:
		return printer.Faint("DEBUG:")
	}
}

func writeAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, key, ga)
		}
		return
	}
	fmt.Fprintf(sb, " %s=%v", key, a.Value.Any())
}
