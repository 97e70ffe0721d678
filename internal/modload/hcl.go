package modload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/superhero/locator/internal/ctxlog"
	"github.com/superhero/locator/internal/locerr"
)

// Handler is a Go locate function that an HCL service definition can bind to
// by name. The decoded config attribute of the definition is passed through.
type Handler func(reg Access, cfg any) (any, error)

// entryPointCandidates are probed, in order, when a loaded path names a
// directory rather than a file.
var entryPointCandidates = []string{"locator.hcl", "locator.json", "default.hcl", "default.json"}

// HCLLoader loads service modules defined as HCL (or HCL-JSON) files. A
// definition either carries a plain value or names a registered handler:
//
//	service {
//	  locator = "postgres"
//	  config  = { dsn = "postgres://localhost/app" }
//	}
//
//	service {
//	  value = { host = "localhost", port = 5432 }
//	}
type HCLLoader struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewHCLLoader creates an HCLLoader with no handlers registered.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{handlers: make(map[string]Handler)}
}

// RegisterHandler binds a handler name usable from service definitions.
// Registering the same name twice is a programmer error.
func (l *HCLLoader) RegisterHandler(name string, handler Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.handlers[name]; exists {
		panic(fmt.Sprintf("locator handler with name '%s' already registered", name))
	}
	l.handlers[name] = handler
}

// serviceFile is the top-level schema of one service definition file.
type serviceFile struct {
	Service *serviceBlock `hcl:"service,block"`
}

type serviceBlock struct {
	Locator *string        `hcl:"locator,optional"`
	Config  hcl.Expression `hcl:"config,optional"`
	Value   hcl.Expression `hcl:"value,optional"`
}

// Load implements Loader. Directory paths probe the entry point candidates
// in order; extensionless file paths probe the recognized suffixes.
func (l *HCLLoader) Load(ctx context.Context, path string) (*Surface, error) {
	logger := ctxlog.FromContext(ctx)

	file, err := resolveFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loading service definition.", "path", file)

	parser := hclparse.NewParser()
	var f *hcl.File
	var diags hcl.Diagnostics
	if strings.HasSuffix(file, ".json") {
		f, diags = parser.ParseJSONFile(file)
	} else {
		f, diags = parser.ParseHCLFile(file)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse service definition %s: %w", file, diags)
	}

	var def serviceFile
	if diags := gohcl.DecodeBody(f.Body, nil, &def); diags.HasErrors() {
		return nil, fmt.Errorf("invalid service definition %s: %w", file, diags)
	}
	if def.Service == nil {
		// A parseable file with no service block exports nothing usable.
		return &Surface{}, nil
	}

	if def.Service.Locator != nil {
		return l.locatorSurface(file, *def.Service.Locator, def.Service.Config)
	}

	if def.Service.Value != nil {
		val, diags := def.Service.Value.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid service value in %s: %w", file, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("invalid service value in %s: %w", file, err)
		}
		return &Surface{Default: native, HasDefault: true}, nil
	}

	return &Surface{}, nil
}

// locatorSurface builds the surface for a definition bound to a registered
// handler, closing over the decoded config.
func (l *HCLLoader) locatorSurface(file, name string, configExpr hcl.Expression) (*Surface, error) {
	l.mu.RLock()
	handler, ok := l.handlers[name]
	l.mu.RUnlock()
	if !ok {
		return nil, locerr.New(locerr.CodeUnknownLocator,
			"service definition %s names unregistered locator handler %q", file, name)
	}

	var cfg any
	if configExpr != nil {
		val, diags := configExpr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid locator config in %s: %w", file, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("invalid locator config in %s: %w", file, err)
		}
		cfg = native
	}

	return &Surface{Locate: func(reg Access) (any, error) {
		return handler(reg, cfg)
	}}, nil
}

// resolveFile maps a loadable path onto a concrete definition file.
func resolveFile(path string) (string, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		for _, candidate := range entryPointCandidates {
			probe := filepath.Join(path, candidate)
			if st, err := os.Stat(probe); err == nil && !st.IsDir() {
				return probe, nil
			}
		}
		return "", fmt.Errorf("%w: directory %s has no entry point file", ErrNotFound, path)

	case err == nil:
		return path, nil
	}

	for _, suffix := range []string{".hcl", ".json"} {
		probe := path + suffix
		if st, err := os.Stat(probe); err == nil && !st.IsDir() {
			return probe, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}
