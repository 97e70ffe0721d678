// Package locator is a runtime service registry. Services are declared by
// name and filesystem path, resolved lazily on first demand or eagerly as a
// batch, ordered by their declared dependencies, and destroyed together in
// an order consistent with the recorded dependency relation.
//
// Declarations may use wildcard markers to bind whole directory trees of
// service definition files in one line:
//
//	reg := locator.New(locator.Options{Loader: loader, BaseDir: "."})
//	err := reg.EagerLoad(ctx, map[string]any{
//		"svc/*": "./services/*.hcl",
//		"db":    map[string]any{"path": "./infra/db", "uses": []string{"svc/config"}},
//	})
package locator
