package app

import (
	"os"
	"strings"

	"github.com/superhero/locator/internal/modload"
)

// builtinHandlers are the locate handlers every App offers to service
// definitions out of the box.
func builtinHandlers() map[string]modload.Handler {
	return map[string]modload.Handler{
		"env": locateEnv,
	}
}

// locateEnv exposes the process environment as a service. An optional
// config of the form { prefix = "APP_" } narrows and strips the result.
func locateEnv(_ modload.Access, cfg any) (any, error) {
	prefix := ""
	if m, ok := cfg.(map[string]any); ok {
		if p, ok := m["prefix"].(string); ok {
			prefix = p
		}
	}

	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		envMap[strings.TrimPrefix(pair[0], prefix)] = pair[1]
	}
	return envMap, nil
}
