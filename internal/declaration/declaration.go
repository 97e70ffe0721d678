// Package declaration turns the free-form service map accepted by eager
// loading into canonical {name, path, uses} declarations.
package declaration

import (
	"fmt"
	"sort"

	"github.com/superhero/locator/internal/locerr"
)

// ServiceDeclaration is one canonical service to resolve. Name and Path may
// still contain wildcard markers at this stage; Uses lists the names that
// must already be registered before this declaration may be resolved.
type ServiceDeclaration struct {
	Name string
	Path string
	Uses []string
}

// Config is the normalized per-name configuration: a concrete path plus the
// declared dependencies.
type Config struct {
	Path string
	Uses []string
}

// NormalizeMap accepts a single path, a list of paths, or a name→config map,
// and returns a uniform name→raw-config mapping plus a deterministic name
// order. Strings and string lists declare services whose name equals the
// path.
func NormalizeMap(input any) (map[string]any, []string, error) {
	switch in := input.(type) {
	case string:
		return map[string]any{in: true}, []string{in}, nil

	case []string:
		serviceMap := make(map[string]any, len(in))
		names := make([]string, 0, len(in))
		for _, path := range in {
			if _, seen := serviceMap[path]; !seen {
				names = append(names, path)
			}
			serviceMap[path] = true
		}
		return serviceMap, names, nil

	case []any:
		serviceMap := make(map[string]any, len(in))
		names := make([]string, 0, len(in))
		for _, elem := range in {
			path, ok := elem.(string)
			if !ok {
				return nil, nil, locerr.New(locerr.CodeInvalidServiceMap,
					"invalid service map element of type %T", elem)
			}
			if _, seen := serviceMap[path]; !seen {
				names = append(names, path)
			}
			serviceMap[path] = true
		}
		return serviceMap, names, nil

	case map[string]any:
		names := make([]string, 0, len(in))
		for name := range in {
			names = append(names, name)
		}
		sort.Strings(names)
		return in, names, nil

	default:
		return nil, nil, locerr.New(locerr.CodeInvalidServiceMap,
			"invalid service map of type %T", input)
	}
}

// NormalizeConfig canonicalizes one name/value pair of the service map.
// A true boolean means the path equals the name; a string is a path; a list
// of strings means the path equals the name with the list as dependencies;
// a map supplies "path" (default: name) and "uses" (default: none).
func NormalizeConfig(name string, value any) (Config, error) {
	switch v := value.(type) {
	case bool:
		if !v {
			return Config{}, locerr.New(locerr.CodeInvalidServiceConfig,
				"invalid service config for %q: boolean must be true", name)
		}
		return Config{Path: name}, nil

	case string:
		return Config{Path: v}, nil

	case []string:
		return Config{Path: name, Uses: v}, nil

	case []any:
		uses, err := stringSlice(v)
		if err != nil {
			return Config{}, locerr.Wrap(locerr.CodeInvalidServiceConfig, err,
				"invalid service config for %q", name)
		}
		return Config{Path: name, Uses: uses}, nil

	case map[string]any:
		cfg := Config{Path: name}
		if raw, ok := v["path"]; ok {
			path, ok := raw.(string)
			if !ok {
				return Config{}, locerr.New(locerr.CodeInvalidServiceConfig,
					"invalid service config for %q: path of type %T", name, raw)
			}
			cfg.Path = path
		}
		if raw, ok := v["uses"]; ok {
			switch uses := raw.(type) {
			case []string:
				cfg.Uses = uses
			case []any:
				list, err := stringSlice(uses)
				if err != nil {
					return Config{}, locerr.Wrap(locerr.CodeInvalidServiceConfig, err,
						"invalid service config for %q", name)
				}
				cfg.Uses = list
			default:
				return Config{}, locerr.New(locerr.CodeInvalidServiceConfig,
					"invalid service config for %q: uses of type %T", name, raw)
			}
		}
		return cfg, nil

	case Config:
		cfg := v
		if cfg.Path == "" {
			cfg.Path = name
		}
		return cfg, nil

	default:
		return Config{}, locerr.New(locerr.CodeInvalidServiceConfig,
			"invalid service config for %q of type %T", name, value)
	}
}

func stringSlice(in []any) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, elem := range in {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("dependency name of type %T", elem)
		}
		out = append(out, s)
	}
	return out, nil
}
