package modload

import (
	"github.com/superhero/locator/internal/locerr"
)

// Resolve applies the module resolution protocol to a loaded surface and
// returns the service instance. The decision order is fixed: a locate
// export, then a Locator export, then the default export.
func Resolve(surface *Surface, reg Access) (any, error) {
	switch {
	case surface.Locate != nil:
		return surface.Locate(reg)

	case surface.LocateCtor != nil:
		return nil, locerr.New(locerr.CodeUnknownLocator,
			"locate entry point is a constructor; it must be directly invocable")

	case surface.Locator != nil:
		return surface.Locator.Locate(reg)

	case surface.LocatorCtor != nil:
		instance := surface.LocatorCtor()
		if instance == nil {
			return nil, locerr.New(locerr.CodeUnknownLocator,
				"locator constructor produced no locator")
		}
		return instance.Locate(reg)

	case surface.HasDefault:
		if loc, ok := surface.Default.(Locator); ok {
			return loc.Locate(reg)
		}
		return surface.Default, nil

	default:
		return nil, locerr.New(locerr.CodeUnknownLocator,
			"module exports no locate operation, no locator and no default")
	}
}
