package scm

import (
	"context"
	"sync"

	"github.com/indaco/kacl/internal/core"
)

// Mock is a TagDateReader for tests. TagDateFunc, when set, takes
// precedence over Dates.
type Mock struct {
	Dates       map[string]string
	TagDateFunc func(ctx context.Context, version string) (string, bool)

	mu    sync.Mutex
	calls []string
}

// Verify Mock implements core.TagDateReader.
var _ core.TagDateReader = (*Mock)(nil)

// NewMock returns a Mock answering from dates.
func NewMock(dates map[string]string) *Mock {
	return &Mock{Dates: dates}
}

func (m *Mock) TagDate(ctx context.Context, version string) (string, bool) {
	m.mu.Lock()
	m.calls = append(m.calls, version)
	m.mu.Unlock()

	if m.TagDateFunc != nil {
		return m.TagDateFunc(ctx, version)
	}
	date, ok := m.Dates[version]
	return date, ok
}

// Calls returns the versions looked up so far.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
