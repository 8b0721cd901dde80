// Package fakedriver implements driver.Driver/driver.GPU entirely
// in memory, with no real GPU involved. It exists so the rest of
// this module's test suites can drive the compiler, linker and
// executor against a concrete device without requiring a Vulkan-
// capable machine in CI, where no GPU is available.
package fakedriver

import (
	"sync"

	"github.com/vkforge/framegraph/driver"
)

// Driver is a driver.Driver that opens a single in-process GPU.
type Driver struct {
	name string
	mu   sync.Mutex
	gpu  *GPU
}

// New creates a fake driver named "fake".
func New() *Driver { return NewNamed("fake") }

// NewNamed creates a fake driver with the given name, useful for
// exercising driver.Register's replace-on-collision behavior.
func NewNamed(name string) *Driver { return &Driver{name: name} }

func (d *Driver) Name() string { return d.name }

func (d *Driver) Open() (driver.GPU, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gpu == nil {
		d.gpu = newGPU(d)
	}
	return d.gpu, nil
}

func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gpu = nil
}

var once sync.Once

// Ensure registers a default fake driver exactly once, so tests in
// any package can call driver.Drivers() and find at least one.
func Ensure() {
	once.Do(func() { driver.Register(New()) })
}

// Open is a convenience that opens a fresh, independent fake GPU
// from an unregistered driver, since most tests want isolation from
// each other rather than the shared singleton Ensure registers.
func Open() driver.GPU {
	gpu, _ := New().Open()
	return gpu
}
