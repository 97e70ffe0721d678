package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/superhero/locator/internal/config"
	"github.com/superhero/locator/internal/fsutil"
	"github.com/superhero/locator/internal/modload"
	"github.com/superhero/locator/internal/registry"
)

// App encapsulates one locator instance with its collaborators and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	store      config.Store
	loader     *modload.HCLLoader
	registry   *registry.Registry
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, loader and
// registry. Handlers are the Go locate functions service definitions may
// bind to by name.
func NewApp(outW io.Writer, appConfig *Config, handlers map[string]modload.Handler) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	store, err := config.NewViperStore(appConfig.ConfigFile)
	if err != nil {
		// A failure to load the config store is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration store ready.", "file", appConfig.ConfigFile)

	loader := modload.NewHCLLoader()
	for name, handler := range builtinHandlers() {
		loader.RegisterHandler(name, handler)
	}
	for name, handler := range handlers {
		loader.RegisterHandler(name, handler)
	}
	logger.Debug("Locator handlers registered.", "count", len(handlers))

	reg := registry.New(registry.Options{
		Loader:  loader,
		Lister:  fsutil.OSLister{},
		Store:   store,
		BaseDir: appConfig.BaseDir,
	})

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		store:    store,
		loader:   loader,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
