package config

import "path/filepath"

// Store is the read-only configuration lookup used by the locator core.
type Store interface {
	// FindBool returns the boolean at key, or def when the key is absent.
	FindBool(key string, def bool) bool

	// FindPath returns the absolute path override recorded for a service
	// name, and whether one exists. A relative override is not an override.
	FindPath(name string) (string, bool)
}

// DestroyKey is the lookup key gating destroy for one service name.
func DestroyKey(name string) string {
	return "destroy." + name
}

// PathKey is the lookup key for a service name's path override.
func PathKey(name string) string {
	return "paths." + name
}

// MapStore is a fixed in-memory Store, primarily for tests.
type MapStore struct {
	Bools map[string]bool
	Paths map[string]string
}

// FindBool implements Store.
func (s MapStore) FindBool(key string, def bool) bool {
	if v, ok := s.Bools[key]; ok {
		return v
	}
	return def
}

// FindPath implements Store.
func (s MapStore) FindPath(name string) (string, bool) {
	p, ok := s.Paths[name]
	if !ok || !filepath.IsAbs(p) {
		return "", false
	}
	return p, true
}
