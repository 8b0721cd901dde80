package driver

// GPU is the main interface to an underlying driver implementation.
// It is used to create other types and to submit commands. A GPU is
// obtained from a call to Driver.Open.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// NewCmdBuffer creates a new command buffer.
	NewCmdBuffer() (CmdBuffer, error)

	// Submit submits a batch of command buffers for execution.
	// Wait operations defined in a command buffer apply to the
	// batch as a whole, so the order of command buffers in cb is
	// meaningful. signal, if non-nil, is signaled when every
	// command buffer in cb completes execution; fence, if
	// non-nil, is signaled at the same time. Submission itself
	// does not block.
	Submit(cb []CmdBuffer, wait []Semaphore, signal []Semaphore, fence Fence) error

	// WaitIdle blocks until every queue owned by the GPU is idle.
	WaitIdle() error

	NewImage(fmt PixelFmt, size Dim3D, layers, levels int, samples Samples, usg Usage, swapchainOwned bool) (Image, error)
	NewBuffer(size int64, loc MemoryLocation, usg BufferUsage) (Buffer, error)
	NewSampler(s *Sampling) (Sampler, error)
	NewShaderModule(spirv []byte) (ShaderModule, error)
	NewPipelineLayout(sets []DescriptorSetLayout) (PipelineLayout, error)
	NewDescriptorSetLayout(bindings []Binding) (DescriptorSetLayout, error)
	NewDescriptorPool(maxSets int, sizes []PoolSize) (DescriptorPool, error)
	NewGraphicsPipeline(state *GraphicsState) (Pipeline, error)
	NewComputePipeline(state *ComputeState) (Pipeline, error)
	NewRenderPass(att []AttachmentDesc, sub []SubpassDesc, dep []SubpassDependency) (RenderPass, error)
	NewFence(signaled bool) (Fence, error)
	NewSemaphore() (Semaphore, error)
	NewQueryPool(queryCount int) (QueryPool, error)

	// UpdateDescriptorSets applies a batch of descriptor writes in
	// a single call.
	UpdateDescriptorSets(writes []DescriptorWrite)

	// SetObjectName attaches a debug name to an arbitrary
	// driver-created object, for capture in GPU debuggers. It is
	// a no-op when the debug layer is disabled.
	SetObjectName(obj any, name string)

	// Limits returns the implementation limits. They are
	// immutable for the lifetime of the GPU.
	Limits() Limits
}

// Binding describes one binding slot of a descriptor set layout.
type Binding struct {
	Number int
	Type   DescType
	Count  int
	Stages ShaderStage
}

// PoolSize describes the capacity to reserve for one descriptor
// type in a DescriptorPool.
type PoolSize struct {
	Type  DescType
	Count int
}

// ShaderFunc specifies a function within a shader module.
type ShaderFunc struct {
	Module ShaderModule
	Entry  string
}

// VertexIn describes a single vertex input binding.
type VertexIn struct {
	Format VertexFmt
	Stride int
	Nr     int
}

// VertexFmt describes the format of a vertex input.
type VertexFmt int

// RasterState selects a fixed-function rasterization preset.
type RasterState int

// Rasterization presets (spec.md §4.5).
const (
	RasterStandard RasterState = iota
	RasterCullBack
)

// DSState selects a fixed-function depth/stencil preset.
type DSState int

// Depth/stencil presets (spec.md §4.5).
const (
	DSDisable DSState = iota
	DSEnable
)

// BlendState selects a fixed-function blend preset.
type BlendState int

// Blend presets (spec.md §4.5).
const (
	BlendNone BlendState = iota
	BlendAlpha
	BlendTransparent
)

// GraphicsState defines the combination of programmable and
// fixed-function stages of a graphics pipeline.
type GraphicsState struct {
	VertFunc ShaderFunc
	FragFunc ShaderFunc
	Layout   PipelineLayout
	Input    []VertexIn
	Raster   RasterState
	DS       DSState
	Blend    BlendState
	Samples  Samples
	Pass     RenderPass
	Subpass  int
}

// ComputeState defines the state of a compute pipeline.
type ComputeState struct {
	Func   ShaderFunc
	Layout PipelineLayout
}

// Limits describes implementation limits. These may vary across
// drivers and devices.
type Limits struct {
	MaxColorTargets  int
	MaxDescriptorSet int
	MaxViewports     int
	MaxPushConstant  int
	TimestampPeriod  float64
}
