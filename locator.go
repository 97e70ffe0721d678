package locator

import (
	"github.com/superhero/locator/internal/config"
	"github.com/superhero/locator/internal/fsutil"
	"github.com/superhero/locator/internal/locerr"
	"github.com/superhero/locator/internal/modload"
	"github.com/superhero/locator/internal/registry"
)

// Registry is the service store with its caller-facing operations: Locate,
// LazyLoad, EagerLoad, Delete and Destroy.
type Registry = registry.Registry

// Options carries the collaborators a Registry needs.
type Options = registry.Options

// Destroyer is the teardown operation a registered instance may expose.
type Destroyer = registry.Destroyer

// New creates an empty Registry wired to its collaborators.
func New(opts Options) *Registry {
	return registry.New(opts)
}

// Module loading surface, for callers providing their own loadable modules.
type (
	// Surface is the exported surface of one loaded module.
	Surface = modload.Surface

	// Loader loads the module at a path and reports its exported surface.
	Loader = modload.Loader

	// Access is the registry view handed to a locator while it resolves.
	Access = modload.Access

	// LocateFunc is a directly invocable locator entry point.
	LocateFunc = modload.LocateFunc

	// ServiceLocator is an instance whose Locate method computes a service.
	ServiceLocator = modload.Locator

	// Handler is a Go locate function HCL service definitions bind to.
	Handler = modload.Handler
)

// NewModuleTable creates an in-process Loader backed by explicit path
// registrations.
func NewModuleTable() *modload.Table {
	return modload.NewTable()
}

// NewHCLLoader creates a Loader for HCL and HCL-JSON service definition
// files.
func NewHCLLoader() *modload.HCLLoader {
	return modload.NewHCLLoader()
}

// Collaborator contracts with ready-made implementations.
type (
	// Lister is the directory listing collaborator for wildcard expansion.
	Lister = fsutil.Lister

	// Store is the configuration lookup collaborator.
	Store = config.Store
)

// NewConfigStore builds the viper-backed configuration store. An empty file
// argument yields a store driven by LOCATOR_* environment variables only.
func NewConfigStore(file string) (Store, error) {
	return config.NewViperStore(file)
}

// Error codes carried by every failure this module produces; match with
// HasCode.
const (
	CodeInvalidServiceMap    = locerr.CodeInvalidServiceMap
	CodeInvalidServiceConfig = locerr.CodeInvalidServiceConfig
	CodeInvalidPath          = locerr.CodeInvalidPath
	CodeServiceUnresolvable  = locerr.CodeServiceUnresolvable
	CodeUnknownLocator       = locerr.CodeUnknownLocator
	CodeLocate               = locerr.CodeLocate
	CodeLazyLoad             = locerr.CodeLazyLoad
	CodeEagerLoad            = locerr.CodeEagerLoad
	CodeDelete               = locerr.CodeDelete
	CodeDestroyService       = locerr.CodeDestroyService
	CodeDestroy              = locerr.CodeDestroy
)

// HasCode reports whether err is, or wraps, a locator error with the code.
func HasCode(err error, code locerr.Code) bool {
	return locerr.HasCode(err, code)
}
