package driver_test

import (
	"testing"

	"github.com/vkforge/framegraph/driver"
	"github.com/vkforge/framegraph/internal/fakedriver"
)

func TestDrivers(t *testing.T) {
	fakedriver.Ensure()
	drivers := driver.Drivers()
	for i := range drivers {
		name := drivers[i].Name()
		for j := range i {
			if name == drivers[j].Name() {
				t.Error("driver.Drivers: Driver.Name is not unique")
			}
		}
	}
	drivers2 := driver.Drivers()
	if len(drivers) != len(drivers2) {
		t.Error("driver.Drivers: length mismatch")
	} else {
		for i := range drivers {
			if drivers[i].Name() != drivers2[i].Name() {
				t.Error("driver.Drivers: Driver.Name mismatch")
			}
		}
	}
}

func TestRegisterReplaces(t *testing.T) {
	before := len(driver.Drivers())
	d1 := fakedriver.NewNamed("replace-me")
	driver.Register(d1)
	d2 := fakedriver.NewNamed("replace-me")
	driver.Register(d2)
	after := driver.Drivers()
	if len(after) != before+1 {
		t.Fatalf("Register: want %d drivers, got %d", before+1, len(after))
	}
	var found driver.Driver
	for _, d := range after {
		if d.Name() == "replace-me" {
			found = d
		}
	}
	if found == nil {
		t.Fatal("Register: driver not found after registration")
	}
}
