package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/superhero/locator/internal/locerr"
	"github.com/superhero/locator/internal/modload"
)

// countingLoader wraps a Loader and records the load order.
type countingLoader struct {
	inner modload.Loader
	loads []string
}

func (l *countingLoader) Load(ctx context.Context, path string) (*modload.Surface, error) {
	l.loads = append(l.loads, path)
	return l.inner.Load(ctx, path)
}

func TestEagerLoad_DeclarationOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	table := modload.NewTable()
	table.Register("db", valueSurface("the database"))
	table.Register("api", &modload.Surface{Locate: func(reg modload.Access) (any, error) {
		// The locator itself also reaches for its dependency.
		instance, err := reg.Locate("db")
		if err != nil {
			return nil, err
		}
		return "api over " + instance.(string), nil
	}})

	loader := &countingLoader{inner: table}
	reg := New(Options{Loader: loader})

	// "api" is presented before "db", so the first pass must re-queue it and
	// a second pass must pick it up once "db" is present.
	err := reg.EagerLoad(context.Background(), map[string]any{
		"api": map[string]any{"uses": []string{"db"}},
		"db":  true,
	})
	require.NoError(t, err)

	instance, err := reg.Locate("api")
	require.NoError(t, err)
	require.Equal(t, "api over the database", instance)
	require.Equal(t, []string{"db", "api"}, loader.loads)
}

func TestEagerLoad_AllUnresolvableAggregatesPerDeclarationErrors(t *testing.T) {
	t.Parallel()

	table := modload.NewTable()
	table.Register("a", &modload.Surface{}) // nothing recognizable
	table.Register("b", &modload.Surface{})

	reg := New(Options{Loader: table})

	err := reg.EagerLoad(context.Background(), map[string]any{"a": true, "b": true})
	require.True(t, locerr.HasCode(err, locerr.CodeEagerLoad))

	var lerr *locerr.Error
	require.True(t, errors.As(err, &lerr))
	require.Len(t, lerr.Causes, 2)
	for _, cause := range lerr.Causes {
		require.True(t, locerr.HasCode(cause, locerr.CodeUnknownLocator))
	}
}

func TestEagerLoad_UnresolvablePathAbortsImmediately(t *testing.T) {
	t.Parallel()

	table := modload.NewTable()
	table.Register("a", valueSurface("a"))

	loader := &countingLoader{inner: table}
	reg := New(Options{Loader: loader})

	err := reg.EagerLoad(context.Background(), map[string]any{
		"a":       true,
		"missing": true,
	})
	require.True(t, locerr.HasCode(err, locerr.CodeServiceUnresolvable))
	require.False(t, locerr.HasCode(err, locerr.CodeEagerLoad))

	// "a" resolved before the batch aborted on "missing"; no retry happened.
	require.Equal(t, []string{"a", "missing"}, loader.loads)
}

func TestEagerLoad_MutualDependencyCannotConverge(t *testing.T) {
	t.Parallel()

	table := modload.NewTable()
	table.Register("a", valueSurface("a"))
	table.Register("b", valueSurface("b"))

	reg := New(Options{Loader: table})

	err := reg.EagerLoad(context.Background(), map[string]any{
		"a": map[string]any{"uses": []string{"b"}},
		"b": map[string]any{"uses": []string{"a"}},
	})
	require.True(t, locerr.HasCode(err, locerr.CodeEagerLoad))

	var lerr *locerr.Error
	require.True(t, errors.As(err, &lerr))
	require.Len(t, lerr.Causes, 2)
}

func TestEagerLoad_InvalidInputTypes(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)

	err := reg.EagerLoad(context.Background(), 42)
	require.True(t, locerr.HasCode(err, locerr.CodeInvalidServiceMap))

	err = reg.EagerLoad(context.Background(), map[string]any{"db": 3.14})
	require.True(t, locerr.HasCode(err, locerr.CodeInvalidServiceConfig))
}

func TestEagerLoad_WildcardEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	services := filepath.Join(dir, "services")
	require.NoError(t, os.MkdirAll(services, 0o755))
	for name, content := range map[string]string{
		"a.hcl":      `service { value = "service a" }`,
		"b.hcl":      `service { value = "service b" }`,
		"b.test.hcl": `service { value = "never loaded" }`,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(services, name), []byte(content), 0o600))
	}

	reg := New(Options{Loader: modload.NewHCLLoader(), BaseDir: dir})

	err := reg.EagerLoad(context.Background(), map[string]any{"svc/*": "./services/*.hcl"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"svc/a", "svc/b"}, reg.Names())

	instance, err := reg.Locate("svc/a")
	require.NoError(t, err)
	require.Equal(t, "service a", instance)
}

func TestEagerLoad_WildcardMismatchRegistersNothing(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)

	err := reg.EagerLoad(context.Background(), map[string]any{"svc/*": "./services/*/*.hcl"})
	require.True(t, locerr.HasCode(err, locerr.CodeInvalidPath))
	require.Empty(t, reg.Names())
}
