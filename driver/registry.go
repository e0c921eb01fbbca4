package driver

import (
	"sort"
	"sync"
)

// Driver name constants.
const (
	// NameOpenGL is the go-gl backed driver.
	NameOpenGL = "opengl"
	// NameSoftware is the in-memory driver.
	NameSoftware = "software"
)

// Factory creates a new driver instance.
type Factory func() Driver

// registry holds registered drivers.
var (
	registryMu sync.RWMutex
	drivers    = make(map[string]Factory)
	// Priority order for driver selection (first available wins).
	driverPriority = []string{NameOpenGL, NameSoftware}
)

// Register registers a driver factory with the given name.
// This is typically called from init() functions in driver packages.
// If a driver with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[name] = factory
}

// Unregister removes a driver from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// Available returns the sorted names of registered drivers.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a driver with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := drivers[name]
	return ok
}

// Get returns a driver instance by name.
// Returns nil if the driver is not registered.
func Get(name string) Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := drivers[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available driver based on priority.
// Priority order: opengl > software.
// Returns nil if no drivers are registered.
func Default() Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range driverPriority {
		if factory, ok := drivers[name]; ok {
			if d := factory(); d != nil {
				return d
			}
		}
	}

	// Fallback: first available in name order.
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if d := drivers[name](); d != nil {
			return d
		}
	}

	return nil
}

// MustDefault returns the default driver or panics.
func MustDefault() Driver {
	d := Default()
	if d == nil {
		panic("driver: no driver available")
	}
	return d
}

// Open returns the named driver, or the default one when name is empty,
// and initializes it.
func Open(name string) (Driver, error) {
	var d Driver
	if name == "" {
		d = Default()
	} else {
		d = Get(name)
	}
	if d == nil {
		return nil, ErrDriverNotAvailable
	}

	if err := d.Init(); err != nil {
		return nil, err
	}

	return d, nil
}
