package modload

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sync"
)

// Table is an in-process Loader: Go packages register the surface they
// export under a path, and Load serves lookups from that table. It is the
// loading mechanism for compiled-in services and for tests.
type Table struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
}

// NewTable creates an empty module table.
func NewTable() *Table {
	return &Table{surfaces: make(map[string]*Surface)}
}

// Register records the surface exported at a path. Registering the same path
// twice is a programmer error.
func (t *Table) Register(modulePath string, surface *Surface) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := path.Clean(modulePath)
	if _, exists := t.surfaces[key]; exists {
		panic(fmt.Sprintf("module with path '%s' already registered", key))
	}
	slog.Debug("Registering module surface.", "path", key)
	t.surfaces[key] = surface
}

// Load implements Loader.
func (t *Table) Load(_ context.Context, modulePath string) (*Surface, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	surface, ok := t.surfaces[path.Clean(modulePath)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, modulePath)
	}
	return surface, nil
}
