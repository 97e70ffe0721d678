// Package modload defines the module loading collaborator: loading a unit at
// a path yields its exported Surface, and the resolution protocol turns that
// surface into a usable service instance.
package modload

import (
	"context"
	"errors"
)

// ErrNotFound reports that no loadable module exists at the requested path.
// The resolver treats it as fatal for the declaration that produced it.
var ErrNotFound = errors.New("modload: no module at path")

// Access is the registry view handed to a locator while it computes an
// instance, letting it recursively locate its own dependencies.
type Access interface {
	Locate(name string) (any, error)
}

// AccessFunc adapts a plain lookup function to the Access interface.
type AccessFunc func(name string) (any, error)

// Locate implements Access.
func (f AccessFunc) Locate(name string) (any, error) {
	return f(name)
}

// LocateFunc is a directly invocable locator entry point.
type LocateFunc func(reg Access) (any, error)

// Locator is an instance whose Locate method computes the service.
type Locator interface {
	Locate(reg Access) (any, error)
}

// Constructor builds a Locator with no arguments.
type Constructor func() Locator

// Surface is the exported surface of one loaded module, decided once at the
// load boundary. At most one resolution path applies; Resolve picks it in a
// fixed order.
type Surface struct {
	// Locate is a directly invocable locate export.
	Locate LocateFunc

	// LocateCtor marks a locate export that is a constructor rather than a
	// plain function. Resolution rejects it: a locate entry point must be
	// directly invocable.
	LocateCtor Constructor

	// Locator is an exported locator instance.
	Locator Locator

	// LocatorCtor is an exported zero-argument locator constructor.
	LocatorCtor Constructor

	// Default is the module's default export; HasDefault distinguishes an
	// explicit nil default from no default at all.
	Default    any
	HasDefault bool
}

// Loader loads the module at a path and reports its exported surface.
// Implementations return ErrNotFound (possibly wrapped) when the path names
// nothing loadable.
type Loader interface {
	Load(ctx context.Context, path string) (*Surface, error)
}
