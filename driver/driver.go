// Package driver defines the minimal GPU device facade that the
// framegraph core consumes.
//
// Everything here is an external interface boundary: the core never
// creates a Vulkan instance, physical device or logical device, and it
// never talks to the platform windowing system. A concrete
// implementation is responsible for translating these calls into real
// Vulkan API calls and for choosing/opening a physical device. This
// repo ships only a test fake (internal/fakedriver); production
// backends are expected to register themselves via Register from an
// init function, the same way database/sql drivers do.
package driver

import (
	"errors"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// Driver is the interface that provides methods for loading and
// unloading an underlying implementation.
type Driver interface {
	// Open initializes the driver.
	// If it succeeds, further calls with the same receiver have no
	// effect and must return the same GPU instance. Callers should
	// assume that Open is not safe for parallel execution.
	Open() (GPU, error)

	// Name returns the name of the driver.
	// It must not cause the driver to be opened.
	Name() string

	// Close deinitializes the driver.
	// Closing a driver that is not open has no effect. Callers
	// should assume that Close is not safe for parallel execution.
	Close()
}

// ErrNotInstalled means that a platform-specific library required
// for the driver to work is not present in the system.
var ErrNotInstalled = errors.New("driver: missing required library")

// ErrNoDevice means that no suitable device could be found.
var ErrNoDevice = errors.New("driver: no suitable device found")

// ErrFatal means that the driver is in an unrecoverable state.
// Upon encountering such an error, the application must destroy
// everything it created using the driver's GPU and then call Close.
// It may call Open again to reinitialize the driver for further use.
var ErrFatal = errors.New("driver: fatal error")

// Drivers returns the registered Drivers.
// Client code imports specific driver packages and calls this
// function from init; drivers that do not register themselves on
// init will not be considered for selection.
func Drivers() []Driver {
	mu.Lock()
	defer mu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

// Register registers a Driver.
// Driver implementations are expected to call Register exactly once,
// from an init function. If a driver with the same name has already
// been registered, it will be replaced by drv.
func Register(drv Driver) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			log.Warn("driver replaced", "name", drv.Name())
			return
		}
	}
	drivers = append(drivers, drv)
	log.Info("driver registered", "name", drv.Name())
}

var log = charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "driver"})

var (
	mu      sync.Mutex
	drivers = make([]Driver, 0, 1)
)
