package modload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/superhero/locator/internal/locerr"
)

func writeModule(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestHCLLoader_ValueDefinition(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeModule(t, dir, "db.hcl", `
service {
  value = {
    host = "localhost"
    port = 5432
    tags = ["primary", "ssl"]
  }
}
`)

	surface, err := NewHCLLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.True(t, surface.HasDefault)

	instance, err := Resolve(surface, stubAccess{})
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"host": "localhost",
		"port": float64(5432),
		"tags": []any{"primary", "ssl"},
	}, instance)
}

func TestHCLLoader_LocatorDefinition(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeModule(t, dir, "greeter.hcl", `
service {
  locator = "greeter"
  config  = { greeting = "hello" }
}
`)

	loader := NewHCLLoader()
	loader.RegisterHandler("greeter", func(reg Access, cfg any) (any, error) {
		target, err := reg.Locate("audience")
		if err != nil {
			return nil, err
		}
		greeting := cfg.(map[string]any)["greeting"].(string)
		return greeting + " " + target.(string), nil
	})

	surface, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	instance, err := Resolve(surface, stubAccess{"audience": "world"})
	require.NoError(t, err)
	require.Equal(t, "hello world", instance)
}

func TestHCLLoader_UnregisteredHandler(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeModule(t, dir, "svc.hcl", `
service {
  locator = "nope"
}
`)

	_, err := NewHCLLoader().Load(context.Background(), path)
	require.True(t, locerr.HasCode(err, locerr.CodeUnknownLocator))
}

func TestHCLLoader_JSONDefinition(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeModule(t, dir, "flags.json", `{"service": {"value": {"debug": true}}}`)

	surface, err := NewHCLLoader().Load(context.Background(), path)
	require.NoError(t, err)

	instance, err := Resolve(surface, stubAccess{})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"debug": true}, instance)
}

func TestHCLLoader_DirectoryEntryPoints(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeModule(t, dir, "db/default.hcl", `
service {
  value = "fallback entry"
}
`)
	writeModule(t, dir, "db/locator.hcl", `
service {
  value = "locator entry"
}
`)

	surface, err := NewHCLLoader().Load(context.Background(), filepath.Join(dir, "db"))
	require.NoError(t, err)

	instance, err := Resolve(surface, stubAccess{})
	require.NoError(t, err)
	require.Equal(t, "locator entry", instance)
}

func TestHCLLoader_DirectoryWithoutEntryPoint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeModule(t, dir, "db/readme.md", "docs only")

	_, err := NewHCLLoader().Load(context.Background(), filepath.Join(dir, "db"))
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestHCLLoader_ExtensionlessPathProbesSuffixes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeModule(t, dir, "db.hcl", `
service {
  value = "probed"
}
`)

	surface, err := NewHCLLoader().Load(context.Background(), filepath.Join(dir, "db"))
	require.NoError(t, err)

	instance, err := Resolve(surface, stubAccess{})
	require.NoError(t, err)
	require.Equal(t, "probed", instance)
}

func TestHCLLoader_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewHCLLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestHCLLoader_FileWithoutServiceBlock(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeModule(t, dir, "empty.hcl", ``)

	surface, err := NewHCLLoader().Load(context.Background(), path)
	require.NoError(t, err)

	_, err = Resolve(surface, stubAccess{})
	require.True(t, locerr.HasCode(err, locerr.CodeUnknownLocator))
}

func TestHCLLoader_DuplicateHandlerPanics(t *testing.T) {
	t.Parallel()

	loader := NewHCLLoader()
	loader.RegisterHandler("db", func(Access, any) (any, error) { return nil, nil })
	require.Panics(t, func() {
		loader.RegisterHandler("db", func(Access, any) (any, error) { return nil, nil })
	})
}
