package registry

import (
	"context"
	"sync"

	"github.com/superhero/locator/internal/config"
	"github.com/superhero/locator/internal/ctxlog"
	"github.com/superhero/locator/internal/locerr"
)

// Destroyer is the teardown operation an instance may expose.
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// simpleDestroyer covers instances with a context-free teardown.
type simpleDestroyer interface {
	Destroy() error
}

// Destroy tears the whole registry down in rounds. Each round destroys every
// service that no remaining service still depends on, so a dependency is
// never destroyed before its dependents. A failed teardown never stops the
// drain; all failures are aggregated into the final error.
func (r *Registry) Destroy(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var failures []error

	for r.size() > 0 {
		candidates := r.destroyRound(ctx)

		var wg sync.WaitGroup
		var mu sync.Mutex
		for _, name := range candidates {
			instance, err := r.Locate(name)
			if err != nil {
				continue
			}

			if !r.store.FindBool(config.DestroyKey(name), true) {
				logger.Debug("Destroy disabled for service, removing without teardown.", "service", name)
				continue
			}

			destroy := destroyOperation(instance)
			if destroy == nil {
				continue
			}

			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				if err := destroy(ctx); err != nil {
					mu.Lock()
					failures = append(failures, locerr.Wrap(locerr.CodeDestroyService, err,
						"failed to destroy service %q", name))
					mu.Unlock()
				}
			}(name)
		}
		wg.Wait()

		// Every candidate leaves the registry, destroyed or not.
		r.mu.Lock()
		for _, name := range candidates {
			r.remove(name)
		}
		r.mu.Unlock()
	}

	if len(failures) > 0 {
		return locerr.Aggregate(locerr.CodeDestroy, failures,
			"destroy completed with %d failed service(s)", len(failures))
	}
	return nil
}

// destroyRound computes this round's candidates: every registered name that
// no other registered service still lists as a dependency. A priority cycle
// would otherwise block the drain forever, so a round without candidates
// forces the remainder through.
func (r *Registry) destroyRound(ctx context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	depended := make(map[string]bool)
	for _, uses := range r.priority {
		for _, use := range uses {
			depended[use] = true
		}
	}

	var candidates []string
	for _, name := range r.order {
		if !depended[name] {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) == 0 {
		ctxlog.FromContext(ctx).Warn("Dependency cycle in priority relation, forcing teardown of remainder.",
			"services", len(r.order))
		candidates = append(candidates, r.order...)
	}
	return candidates
}

// destroyOperation returns the teardown invocation an instance exposes, or
// nil when it exposes none.
func destroyOperation(instance any) func(context.Context) error {
	switch d := instance.(type) {
	case Destroyer:
		return d.Destroy
	case simpleDestroyer:
		return func(context.Context) error { return d.Destroy() }
	default:
		return nil
	}
}
