// Package manifest reads the YAML service manifest the CLI feeds into eager
// loading. A manifest is a `services` mapping in any shape the declaration
// normalizer accepts.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is one parsed manifest file.
type Manifest struct {
	// Services holds the declaration input exactly as eager load expects it:
	// a name→config mapping with free-form per-entry values.
	Services map[string]any `yaml:"services"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(raw, path)
}

// Parse decodes manifest bytes; name is used in error messages only.
func Parse(raw []byte, name string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", name, err)
	}
	if len(m.Services) == 0 {
		return nil, fmt.Errorf("manifest %s declares no services", name)
	}
	return &m, nil
}
