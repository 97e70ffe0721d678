package registry

import (
	"slices"
	"sync"

	"github.com/superhero/locator/internal/config"
	"github.com/superhero/locator/internal/fsutil"
	"github.com/superhero/locator/internal/locerr"
	"github.com/superhero/locator/internal/modload"
	"github.com/superhero/locator/internal/wildcard"
)

// Options carries the collaborators a Registry needs. Loader is required;
// the rest default to the real filesystem, an empty config store and the
// current directory.
type Options struct {
	Loader  modload.Loader
	Lister  fsutil.Lister
	Store   config.Store
	BaseDir string
}

// Registry is the service store for one locator instance.
type Registry struct {
	mu       sync.Mutex
	services map[string]any
	priority map[string][]string
	order    []string

	loader   modload.Loader
	store    config.Store
	expander *wildcard.Expander
}

// New creates an empty Registry wired to its collaborators.
func New(opts Options) *Registry {
	if opts.Loader == nil {
		panic("registry: Options.Loader is required")
	}
	if opts.Lister == nil {
		opts.Lister = fsutil.OSLister{}
	}
	if opts.Store == nil {
		opts.Store = config.MapStore{}
	}

	return &Registry{
		services: make(map[string]any),
		priority: make(map[string][]string),
		loader:   opts.Loader,
		store:    opts.Store,
		expander: &wildcard.Expander{
			Lister:  opts.Lister,
			Store:   opts.Store,
			BaseDir: opts.BaseDir,
		},
	}
}

// Locate returns the registered instance for name. It never loads.
func (r *Registry) Locate(name string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	instance, ok := r.services[name]
	if !ok {
		return nil, locerr.New(locerr.CodeLocate, "no service registered with the name %q", name)
	}
	return instance, nil
}

// LocateFunc returns a plain lookup closure over this registry, for callers
// that want function-call ergonomics.
func (r *Registry) LocateFunc() func(name string) (any, error) {
	return r.Locate
}

// Delete removes a registered service. It fails when another service's
// recorded dependencies still list the name; that entry must be deleted
// first.
func (r *Registry) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[name]; !ok {
		return locerr.New(locerr.CodeLocate, "no service registered with the name %q", name)
	}
	for dependent, uses := range r.priority {
		if slices.Contains(uses, name) {
			return locerr.New(locerr.CodeDelete,
				"can not delete service %q: service %q depends on it", name, dependent)
		}
	}

	r.remove(name)
	return nil
}

// Names returns the registered service names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

// has reports presence without touching anything else.
func (r *Registry) has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.services[name]
	return ok
}

// insert registers a resolved instance and records the priority relation
// entry when the declaration carried dependencies.
func (r *Registry) insert(name string, instance any, uses []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.services[name]; !exists {
		r.order = append(r.order, name)
	}
	r.services[name] = instance
	if len(uses) > 0 {
		r.priority[name] = slices.Clone(uses)
	}
}

// remove drops a name from the store and the priority relation. Callers hold
// the lock.
func (r *Registry) remove(name string) {
	delete(r.services, name)
	delete(r.priority, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// size reports the number of registered services.
func (r *Registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.services)
}
