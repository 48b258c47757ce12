// Package loader provides the plugin-like feature loading system.
//
// It allows the application to register and initialize features
// (modules) at startup. Each feature implements the Feature interface,
// which defines its lifecycle hooks and route registration logic.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It
// handles registration via Register and initialization of enabled
// features via LoadAll. This keeps features like 'assets', 'catalog',
// and 'formats' independent and testable in isolation.
package loader
