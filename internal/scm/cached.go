package scm

import (
	"context"
	"sync"

	"github.com/indaco/kacl/internal/core"
)

type cachedDate struct {
	date string
	ok   bool
}

// Cached memoizes the lookups of another reader. Validation may ask for
// the same tag more than once per command.
type Cached struct {
	next core.TagDateReader

	mu    sync.Mutex
	dates map[string]cachedDate
}

// Verify Cached implements core.TagDateReader.
var _ core.TagDateReader = (*Cached)(nil)

// NewCached wraps next.
func NewCached(next core.TagDateReader) *Cached {
	return &Cached{next: next, dates: make(map[string]cachedDate)}
}

// TagDate implements core.TagDateReader. Failed lookups caused by a
// cancelled context are not remembered.
func (c *Cached) TagDate(ctx context.Context, version string) (string, bool) {
	c.mu.Lock()
	if d, hit := c.dates[version]; hit {
		c.mu.Unlock()
		return d.date, d.ok
	}
	c.mu.Unlock()

	date, ok := c.next.TagDate(ctx, version)
	if !ok && ctx.Err() != nil {
		return date, ok
	}

	c.mu.Lock()
	c.dates[version] = cachedDate{date: date, ok: ok}
	c.mu.Unlock()
	return date, ok
}
