package driver

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may own GPU/driver
// resources that are not managed by the garbage collector, so
// Destroy must be called explicitly to ensure they are released.
type Destroyer interface {
	Destroy()
}

// Image is the interface that defines a GPU image.
type Image interface {
	Destroyer

	// NewView creates a new image view over the given
	// subresource range.
	NewView(rng SubresourceRange) (ImageView, error)

	// Format returns the image's pixel format.
	Format() PixelFmt

	// Extent returns the image's dimensions.
	Extent() Dim3D

	// Samples returns the image's sample count.
	Samples() Samples
}

// ImageView is the interface that defines a typed view of an
// Image resource.
type ImageView interface {
	Destroyer
}

// Buffer is the interface that defines a GPU buffer.
type Buffer interface {
	Destroyer

	// Visible returns whether the buffer is host visible.
	Visible() bool

	// Bytes returns a slice of length Cap referring to the
	// underlying mapped data. It returns nil if the buffer is
	// not host visible.
	Bytes() []byte

	// Cap returns the capacity of the buffer in bytes.
	Cap() int64
}

// Sampler is the interface that defines an image sampler.
type Sampler interface {
	Destroyer
}

// Sampling describes image sampler state.
type Sampling struct {
	Min, Mag, Mipmap int
	AddrU, AddrV, AddrW int
	MaxAniso            int
	MinLOD, MaxLOD      float32
}

// ShaderModule is the interface that defines a shader binary for
// execution in a programmable pipeline stage.
type ShaderModule interface {
	Destroyer
}

// Pipeline is the interface that defines a GPU pipeline.
type Pipeline interface {
	Destroyer
}

// PipelineLayout is the interface that defines the set of
// descriptor set layouts and push constant ranges a pipeline
// accepts.
type PipelineLayout interface {
	Destroyer
}

// DescriptorSetLayout is the interface that defines the binding
// layout of a single descriptor set.
type DescriptorSetLayout interface {
	Destroyer
}

// DescriptorPool is the interface that defines a pool from which
// descriptor sets are allocated.
type DescriptorPool interface {
	Destroyer

	// Allocate allocates one descriptor set per layout given.
	Allocate(layouts []DescriptorSetLayout) ([]DescriptorSet, error)

	// Reset frees every descriptor set allocated from the pool
	// without destroying the pool itself.
	Reset() error
}

// DescriptorSet is the interface that defines a set of bound
// descriptors for use in a pipeline.
type DescriptorSet interface{}

// DescriptorWrite describes a single descriptor update.
// Image descriptors set View and Layout (plus Sampler for a
// combined image sampler); buffer descriptors set Buffer, Offset
// and Range.
type DescriptorWrite struct {
	Set     DescriptorSet
	Binding int
	Type    DescType

	View    ImageView
	Layout  Layout
	Sampler Sampler

	Buffer Buffer
	Offset int64
	Range  int64
}

// RenderPass is the interface that defines a render pass into
// which draw commands operate.
type RenderPass interface {
	Destroyer

	// NewFramebuffer creates a new framebuffer compatible with
	// this render pass.
	NewFramebuffer(views []ImageView, width, height, layers int) (Framebuffer, error)
}

// Framebuffer is the interface that defines the render targets
// of a render pass instance.
type Framebuffer interface {
	Destroyer
}

// AttachmentDesc describes a single render pass attachment.
type AttachmentDesc struct {
	Format         PixelFmt
	Samples        Samples
	Load           LoadOp
	Store          StoreOp
	InitialLayout  Layout
	FinalLayout    Layout
}

// SubpassDesc describes the attachments a single subpass of a
// render pass uses, by index into the render pass's attachment
// list. DepthStencil is -1 when the subpass has no depth target.
type SubpassDesc struct {
	Color        []int
	DepthStencil int
}

// ExternalSubpass is the synthetic subpass index naming the work
// outside the render pass in a SubpassDependency (spec §4.4's
// "EXTERNAL").
const ExternalSubpass = -1

// SubpassDependency describes an execution/memory dependency between
// two subpasses of a render pass (or between a subpass and the work
// surrounding it, via ExternalSubpass).
type SubpassDependency struct {
	Src       int
	Dst       int
	SrcStage  Stage
	DstStage  Stage
	SrcAccess Access
	DstAccess Access
}

// Fence is the interface that defines a CPU/GPU synchronization
// fence.
type Fence interface {
	Destroyer

	// Wait blocks until the fence is signaled or the given
	// timeout (in nanoseconds; 0 means no timeout) elapses.
	Wait(timeout int64) error

	// Reset unsignals the fence.
	Reset() error

	// Signaled reports whether the fence is currently signaled.
	Signaled() (bool, error)
}

// Semaphore is the interface that defines a GPU/GPU
// synchronization semaphore.
type Semaphore interface {
	Destroyer
}

// QueryPool is the interface that defines a pool of GPU queries,
// used by the profiler to record GPU timestamps.
type QueryPool interface {
	Destroyer

	// Results reads back up to len(dst) 64-bit query results
	// starting at first, waiting for them to become available.
	Results(first, count int, dst []uint64) error

	// Reset makes every query in the pool available for reuse.
	// It must be called before a query slot is written again.
	Reset(first, count int)
}
