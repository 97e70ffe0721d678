package locator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	locator "github.com/superhero/locator"
)

func TestRegistry_EndToEnd(t *testing.T) {
	t.Parallel()

	table := locator.NewModuleTable()
	table.Register("config", &locator.Surface{
		Default:    map[string]any{"dsn": "postgres://localhost/app"},
		HasDefault: true,
	})
	table.Register("db", &locator.Surface{
		Locate: func(reg locator.Access) (any, error) {
			cfg, err := reg.Locate("config")
			if err != nil {
				return nil, err
			}
			return "connected to " + cfg.(map[string]any)["dsn"].(string), nil
		},
	})

	reg := locator.New(locator.Options{Loader: table})

	err := reg.EagerLoad(context.Background(), map[string]any{
		"config": true,
		"db":     map[string]any{"uses": []string{"config"}},
	})
	require.NoError(t, err)

	locate := reg.LocateFunc()
	instance, err := locate("db")
	require.NoError(t, err)
	require.Equal(t, "connected to postgres://localhost/app", instance)

	_, err = locate("ghost")
	require.True(t, locator.HasCode(err, locator.CodeLocate))

	require.NoError(t, reg.Destroy(context.Background()))
	require.Empty(t, reg.Names())
}
