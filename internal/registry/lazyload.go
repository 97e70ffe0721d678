package registry

import (
	"context"
	"errors"

	"github.com/superhero/locator/internal/ctxlog"
	"github.com/superhero/locator/internal/locerr"
	"github.com/superhero/locator/internal/modload"
)

// LazyLoad resolves one named service on first demand and caches it. An
// empty path defaults to the name. A service that is already registered is
// returned as is; resolution happens at most once per name.
func (r *Registry) LazyLoad(ctx context.Context, name, path string) (any, error) {
	if instance, err := r.Locate(name); err == nil {
		return instance, nil
	}

	if path == "" {
		path = name
	}
	resolved := r.expander.ResolvePath(name, path)

	ctxlog.FromContext(ctx).Debug("Lazy loading service.", "service", name, "path", resolved)

	surface, err := r.loader.Load(ctx, resolved)
	if err != nil {
		if errors.Is(err, modload.ErrNotFound) {
			err = locerr.Wrap(locerr.CodeServiceUnresolvable, err,
				"no service could be resolved at path %q", resolved)
		}
		return nil, locerr.Wrap(locerr.CodeLazyLoad, err, "failed to lazy load service %q", name)
	}

	instance, err := modload.Resolve(surface, r)
	if err != nil {
		return nil, locerr.Wrap(locerr.CodeLazyLoad, err, "failed to lazy load service %q", name)
	}

	r.insert(name, instance, nil)
	return instance, nil
}
