package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeProject lays out a manifest and its service tree in a temp dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func TestAppRun_LoadsReportsAndTearsDown(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"services.yaml": `
services:
  "svc/*": "./services/*.hcl"
`,
		"services/alpha.hcl":     `service { value = "alpha" }`,
		"services/beta.hcl":      `service { value = "beta" }`,
		"services/beta.test.hcl": `service { value = "skipped" }`,
	})

	out := &bytes.Buffer{}
	cfg, err := NewConfig(Config{
		ManifestPath: filepath.Join(dir, "services.yaml"),
		BaseDir:      dir,
		LogLevel:     "error",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	application := NewApp(out, cfg, nil)
	require.NoError(t, application.Run(context.Background()))

	require.Contains(t, out.String(), "svc/alpha")
	require.Contains(t, out.String(), "svc/beta")
	require.NotContains(t, out.String(), "beta.test")

	// Run destroyed the registry after reporting.
	require.Empty(t, application.Registry().Names())
}

func TestAppRun_EagerLoadFailureIsReturned(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, map[string]string{
		"services.yaml": `
services:
  "svc/*": "./missing/*.hcl"
`,
	})

	cfg, err := NewConfig(Config{
		ManifestPath: filepath.Join(dir, "services.yaml"),
		BaseDir:      dir,
		LogLevel:     "error",
	})
	require.NoError(t, err)

	application := NewApp(&bytes.Buffer{}, cfg, nil)
	require.Error(t, application.Run(context.Background()))
}

func TestAppRun_EnvHandlerIsBuiltIn(t *testing.T) {
	t.Setenv("LOCATORTEST_GREETING", "hello")

	dir := writeProject(t, map[string]string{
		"services.yaml": `
services:
  env: ./env.hcl
`,
		"env.hcl": `
service {
  locator = "env"
  config  = { prefix = "LOCATORTEST_" }
}
`,
	})

	cfg, err := NewConfig(Config{
		ManifestPath: filepath.Join(dir, "services.yaml"),
		BaseDir:      dir,
		LogLevel:     "error",
	})
	require.NoError(t, err)

	application := NewApp(&bytes.Buffer{}, cfg, nil)

	instance, err := application.Registry().LazyLoad(context.Background(), "env", filepath.Join(dir, "env.hcl"))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"GREETING": "hello"}, instance)
}

func TestNewConfig_RequiresManifestPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)
}
