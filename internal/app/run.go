package app

import (
	"context"
	"fmt"

	"github.com/superhero/locator/internal/ctxlog"
	"github.com/superhero/locator/internal/manifest"
)

// Run loads the manifest, eager loads every declared service, reports the
// resulting registry and tears it down again. The registry is always
// destroyed, also when eager loading only partially succeeded.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.StatusPort > 0 {
		a.startStatusServer(ctx)
		defer a.closeStatusServer(ctx)
	}

	m, err := manifest.Load(a.config.ManifestPath)
	if err != nil {
		return err
	}
	a.logger.Info("Manifest loaded.", "path", a.config.ManifestPath, "declarations", len(m.Services))

	loadErr := a.registry.EagerLoad(ctx, m.Services)
	if loadErr != nil {
		a.logger.Error("Eager load failed.", "error", loadErr)
	} else {
		names := a.registry.Names()
		a.logger.Info("All services registered.", "count", len(names))
		for _, name := range names {
			fmt.Fprintln(a.outW, name)
		}
	}

	if err := a.registry.Destroy(ctx); err != nil {
		a.logger.Error("Teardown finished with failures.", "error", err)
		if loadErr == nil {
			return err
		}
	}

	if loadErr != nil {
		return fmt.Errorf("eager load failed: %w", loadErr)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
