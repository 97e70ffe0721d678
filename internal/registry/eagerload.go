package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/superhero/locator/internal/ctxlog"
	"github.com/superhero/locator/internal/declaration"
	"github.com/superhero/locator/internal/locerr"
	"github.com/superhero/locator/internal/modload"
)

// retryCeiling bounds the number of resolver passes. It is a safety valve
// against pathological inputs such as a dependency cycle, not a normal
// termination path: a converging batch shrinks every pass.
const retryCeiling = 100

// EagerLoad normalizes a free-form declaration input, expands every wildcard
// declaration against the filesystem, and resolves the resulting batch into
// the registry in dependency order.
func (r *Registry) EagerLoad(ctx context.Context, input any) error {
	serviceMap, names, err := declaration.NormalizeMap(input)
	if err != nil {
		return err
	}

	var batch []declaration.ServiceDeclaration
	for _, name := range names {
		cfg, err := declaration.NormalizeConfig(name, serviceMap[name])
		if err != nil {
			return err
		}
		expanded, err := r.expander.Expand(declaration.ServiceDeclaration{
			Name: name,
			Path: cfg.Path,
			Uses: cfg.Uses,
		})
		if err != nil {
			return err
		}
		batch = append(batch, expanded...)
	}

	ctxlog.FromContext(ctx).Debug("Eager loading service batch.", "declarations", len(batch))
	return r.resolveBatch(ctx, batch, 1)
}

// resolveBatch runs one resolver pass and recurses on the re-queued subset.
// A pass either registers at least one declaration or proves the batch can
// not converge; the dependency check is monotonic because the registry only
// grows during one eager load.
func (r *Registry) resolveBatch(ctx context.Context, batch []declaration.ServiceDeclaration, attempt int) error {
	logger := ctxlog.FromContext(ctx)

	var queued []declaration.ServiceDeclaration
	var failures []error
	progress := false

	for _, decl := range batch {
		if r.has(decl.Name) {
			continue
		}

		if missing, ok := r.missingDependency(decl); ok {
			logger.Debug("Service awaits dependency, re-queued for next pass.",
				"service", decl.Name, "dependency", missing, "attempt", attempt)
			failures = append(failures, fmt.Errorf(
				"service %q awaits dependency %q", decl.Name, missing))
			queued = append(queued, decl)
			continue
		}

		instance, err := r.resolveDeclaration(ctx, decl)
		if err != nil {
			if locerr.HasCode(err, locerr.CodeServiceUnresolvable) {
				// A structurally broken path never resolves; abort the call.
				return err
			}
			logger.Warn("Failed to resolve service, re-queued for next pass.",
				"service", decl.Name, "attempt", attempt, "error", err)
			failures = append(failures, fmt.Errorf("service %q: %w", decl.Name, err))
			queued = append(queued, decl)
			continue
		}

		r.insert(decl.Name, instance, decl.Uses)
		progress = true
	}

	switch {
	case len(queued) == 0:
		return nil
	case !progress:
		return locerr.Aggregate(locerr.CodeEagerLoad, failures,
			"eager load made no progress on attempt %d", attempt)
	case attempt >= retryCeiling:
		return locerr.Aggregate(locerr.CodeEagerLoad, failures,
			"eager load did not converge within %d attempts", retryCeiling)
	default:
		return r.resolveBatch(ctx, queued, attempt+1)
	}
}

// missingDependency returns the first declared dependency not yet present.
func (r *Registry) missingDependency(decl declaration.ServiceDeclaration) (string, bool) {
	for _, use := range decl.Uses {
		if !r.has(use) {
			return use, true
		}
	}
	return "", false
}

// resolveDeclaration loads the declaration's module and applies the module
// resolution protocol against this registry.
func (r *Registry) resolveDeclaration(ctx context.Context, decl declaration.ServiceDeclaration) (any, error) {
	surface, err := r.loader.Load(ctx, decl.Path)
	if err != nil {
		if errors.Is(err, modload.ErrNotFound) {
			return nil, locerr.Wrap(locerr.CodeServiceUnresolvable, err,
				"no service could be resolved at path %q", decl.Path)
		}
		return nil, err
	}
	return modload.Resolve(surface, r)
}
