package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ViperStore adapts a viper instance to the Store interface.
type ViperStore struct {
	v *viper.Viper
}

// NewViperStore builds a Store over its own viper instance. When file is
// non-empty, the file must exist and parse; otherwise the store starts empty
// and still honors LOCATOR_* environment variables.
func NewViperStore(file string) (*ViperStore, error) {
	v := viper.New()
	v.SetEnvPrefix("locator")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "/", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read locator config %s: %w", file, err)
		}
	}

	return &ViperStore{v: v}, nil
}

// FindBool implements Store.
func (s *ViperStore) FindBool(key string, def bool) bool {
	if !s.v.IsSet(key) {
		return def
	}
	return s.v.GetBool(key)
}

// FindPath implements Store.
func (s *ViperStore) FindPath(name string) (string, bool) {
	key := PathKey(name)
	if !s.v.IsSet(key) {
		return "", false
	}
	p := s.v.GetString(key)
	if !filepath.IsAbs(p) {
		return "", false
	}
	return p, true
}
