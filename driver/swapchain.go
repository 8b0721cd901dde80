package driver

import "errors"

// ErrCannotPresent means that the driver and/or device does not
// support presentation.
var ErrCannotPresent = errors.New("driver: presentation not supported")

// AcquireStatus is the outcome of Swapchain.AcquireNextImage or
// Swapchain.Present.
type AcquireStatus int

const (
	// StatusOK means the operation succeeded with no caveats.
	StatusOK AcquireStatus = iota
	// StatusSuboptimal means the swapchain still works but no
	// longer matches the surface exactly (e.g. after a resize);
	// it should be rebuilt at the next convenient point.
	StatusSuboptimal
	// StatusOutdated means the swapchain can no longer be used
	// for presentation and must be rebuilt before the next
	// AcquireNextImage call.
	StatusOutdated
)

// Presenter is the interface that a GPU may implement to enable
// presentation on a display.
type Presenter interface {
	// NewSwapchain creates a new swapchain with the given
	// minimum image count.
	NewSwapchain(imageCount int) (Swapchain, error)
}

// Swapchain is the interface that defines an n-buffered
// swapchain for presentation.
type Swapchain interface {
	Destroyer

	// AcquireNextImage acquires the next writable image.
	// timeoutNs is in nanoseconds (0 meaning no timeout). sem
	// and fence, if non-nil, are signaled when the image becomes
	// available for writing.
	AcquireNextImage(timeoutNs int64, sem Semaphore, fence Fence) (img Image, index int, status AcquireStatus, err error)

	// Present presents the image at the given index. wait is
	// signaled before presentation begins.
	Present(index int, wait []Semaphore) (AcquireStatus, error)

	// Recreate rebuilds the swapchain in place, preserving the
	// previous swapchain until every present fence associated
	// with it has signaled.
	Recreate() error
}
