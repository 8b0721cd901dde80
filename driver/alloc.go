package driver

// Allocator is the interface to the external memory allocator.
// The framegraph core never allocates device memory directly; it
// asks the allocator for an Allocation when a resource needs
// backing memory (images and buffers not owned by the swapchain).
type Allocator interface {
	// Allocate reserves memory satisfying the given requirements
	// at the given location. name is used for debug labeling.
	// If linear is false, the allocation is suited to an
	// optimal-tiling image.
	Allocate(name string, req MemoryRequirements, loc MemoryLocation, linear bool) (Allocation, error)

	// Free releases an Allocation obtained from Allocate.
	Free(a Allocation)
}

// MemoryRequirements describes the memory an allocation must
// satisfy, as reported by the driver for a given image or buffer.
type MemoryRequirements struct {
	Size      int64
	Alignment int64
	TypeBits  uint32
}

// Allocation represents a single memory allocation handed out by
// an Allocator.
type Allocation struct {
	Size    int64
	Offset  int64
	Mapped  []byte
	HostVisible bool
}
