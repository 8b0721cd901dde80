package framegraph

import (
	"sync"
	"sync/atomic"

	"github.com/vkforge/framegraph/driver"
)

// Handle is an opaque, monotonically increasing identifier for a GPU
// image or buffer. It uniquely identifies a resource for its
// lifetime and is the key the Compiler uses to infer dependencies
// between passes.
type Handle uint64

// Kind distinguishes the two resource flavors a Handle may name.
type Kind int

const (
	KindImage Kind = iota
	KindBuffer
)

// Resource holds the metadata the registry tracks for a Handle. Its
// Layout field reflects the layout after all previously recorded
// commands for this resource, and is the value the Linker's usage
// cache is seeded from at the start of a frame.
type Resource struct {
	Handle   Handle
	Kind     Kind
	Image    driver.Image
	Buffer   driver.Buffer
	Format   driver.PixelFmt
	Extent   driver.Dim3D
	Samples  driver.Samples
	Layout   driver.Layout
	Swapchain bool

	// Sampler is non-nil when the image is meant to be sampled from
	// a shader rather than written to as a storage image; it drives
	// the DescriptorResolver's choice of COMBINED_IMAGE_SAMPLER vs.
	// STORAGE_IMAGE descriptor type (spec §4.6).
	Sampler driver.Sampler
}

// ResourceRegistry assigns Handles to GPU images and buffers and
// holds their metadata. It is process-wide and guarded by a single
// mutex, per the locking discipline in spec §5 (handle-generator
// precedes device/caches/allocator in lock order).
type ResourceRegistry struct {
	mu      sync.Mutex
	next    atomic.Uint64
	byHandle map[Handle]*Resource
}

// NewResourceRegistry creates an empty registry.
func NewResourceRegistry() *ResourceRegistry {
	return &ResourceRegistry{byHandle: make(map[Handle]*Resource)}
}

// generateHandle returns a strictly increasing, unique Handle. It is
// safe for concurrent callers (testable property 9).
func (r *ResourceRegistry) generateHandle() Handle {
	return Handle(r.next.Add(1))
}

// RegisterImage assigns a new Handle to img and records its
// metadata. initialLayout is the layout the image is assumed to be
// in prior to any framegraph-recorded command (driver.LayoutUndefined
// for a freshly created image). sampler is nil for images only ever
// bound as a storage image or render target; a non-nil sampler marks
// the image as sampled, so the DescriptorResolver writes it as a
// COMBINED_IMAGE_SAMPLER descriptor instead of a STORAGE_IMAGE one.
func (r *ResourceRegistry) RegisterImage(img driver.Image, swapchainOwned bool, initialLayout driver.Layout, sampler driver.Sampler) Handle {
	h := r.generateHandle()
	res := &Resource{
		Handle:    h,
		Kind:      KindImage,
		Image:     img,
		Format:    img.Format(),
		Extent:    img.Extent(),
		Samples:   img.Samples(),
		Layout:    initialLayout,
		Swapchain: swapchainOwned,
		Sampler:   sampler,
	}
	r.mu.Lock()
	r.byHandle[h] = res
	r.mu.Unlock()
	return h
}

// RegisterBuffer assigns a new Handle to buf.
func (r *ResourceRegistry) RegisterBuffer(buf driver.Buffer) Handle {
	h := r.generateHandle()
	res := &Resource{Handle: h, Kind: KindBuffer, Buffer: buf}
	r.mu.Lock()
	r.byHandle[h] = res
	r.mu.Unlock()
	return h
}

// Lookup returns the resource registered for h, or ok=false if h is
// unknown (a programming error at every call site: callers should
// panic, not propagate, on a miss).
func (r *ResourceRegistry) Lookup(h Handle) (*Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byHandle[h]
	return res, ok
}

// SetLayout updates the stored layout for h. The Linker calls this
// once per resource per frame, after emitting any barrier the layout
// change required. h is always one the Linker just resolved via
// Lookup, so a miss here means the registry and the caller have
// fallen out of sync.
func (r *ResourceRegistry) SetLayout(h Handle, layout driver.Layout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byHandle[h]
	if !ok {
		panic(newRegErr("SetLayout: unknown resource handle"))
	}
	res.Layout = layout
}

// Release destroys the resource registered for h (the sampler, if
// any, then the image or buffer) and forgets its handle.
// Swapchain-owned images skip image destruction, since the swapchain
// owns that lifetime. The registry holds no image view or memory
// allocation for a resource, so Release destroys neither.
func (r *ResourceRegistry) Release(h Handle) {
	r.mu.Lock()
	res, ok := r.byHandle[h]
	if ok {
		delete(r.byHandle, h)
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	switch res.Kind {
	case KindImage:
		if res.Sampler != nil {
			res.Sampler.Destroy()
		}
		if !res.Swapchain && res.Image != nil {
			res.Image.Destroy()
		}
	case KindBuffer:
		if res.Buffer != nil {
			res.Buffer.Destroy()
		}
	}
}
