package driver

import vk "github.com/vulkan-go/vulkan"

// PixelFmt is the format of an image resource.
type PixelFmt = vk.Format

// Layout is the layout of an image resource (or a single
// subresource of it).
type Layout = vk.ImageLayout

// Access is a mask of memory access scopes.
type Access = vk.AccessFlags

// Stage is a mask of pipeline stages.
type Stage = vk.PipelineStageFlags

// Samples is a sample count.
type Samples = vk.SampleCountFlagBits

// AspectMask is a mask of image aspects (color, depth, stencil).
type AspectMask = vk.ImageAspectFlags

// Dim3D is a three-dimensional size.
type Dim3D struct{ Width, Height, Depth int }

// Off3D is a three-dimensional offset.
type Off3D struct{ X, Y, Z int }

// Viewport defines the bounds of a viewport.
type Viewport struct{ X, Y, Width, Height, Znear, Zfar float32 }

// Scissor defines a scissor rectangle.
type Scissor struct{ X, Y, Width, Height int32 }

// SubresourceRange identifies a (flattened) slice of an image.
// The core never produces a range other than the full
// level/layer 0 range; see spec.md §9, Open Questions.
type SubresourceRange struct {
	Aspect     AspectMask
	BaseLevel  int
	LevelCount int
	BaseLayer  int
	LayerCount int
}

// FullRange returns the subresource range covering mip level 0,
// array layer 0 only, with the given aspect mask.
func FullRange(aspect AspectMask) SubresourceRange {
	return SubresourceRange{Aspect: aspect, LevelCount: 1, LayerCount: 1}
}

// AspectForFormat returns the correct aspect mask for a format,
// selecting the depth/stencil aspects for depth/stencil formats
// and the color aspect otherwise.
func AspectForFormat(f PixelFmt) AspectMask {
	switch f {
	case vk.FormatD16Unorm, vk.FormatD32Sfloat:
		return vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	case vk.FormatS8Uint:
		return vk.ImageAspectFlags(vk.ImageAspectStencilBit)
	case vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint:
		return vk.ImageAspectFlags(vk.ImageAspectDepthBit) | vk.ImageAspectFlags(vk.ImageAspectStencilBit)
	default:
		return vk.ImageAspectFlags(vk.ImageAspectColorBit)
	}
}

// Barrier represents a global memory barrier: a synchronization
// scope with no associated resource or layout change.
type Barrier struct {
	SrcStage  Stage
	DstStage  Stage
	SrcAccess Access
	DstAccess Access
}

// ImageBarrier represents a barrier scoped to a single image
// subresource range, optionally transitioning its layout.
type ImageBarrier struct {
	Barrier
	OldLayout       Layout
	NewLayout       Layout
	SrcQueueFamily  uint32
	DstQueueFamily  uint32
	Image           Image
	Range           SubresourceRange
}

// BufferBarrier represents a barrier scoped to a buffer range.
type BufferBarrier struct {
	Barrier
	Buffer Buffer
	Offset int64
	Size   int64
}

// QueueFamilyIgnored marks a barrier as not performing a queue
// family ownership transfer.
const QueueFamilyIgnored = vk.QueueFamilyIgnored

// Usage is a mask indicating valid uses for an image or buffer.
type Usage = vk.ImageUsageFlags

// BufferUsage is a mask indicating valid uses for a buffer.
type BufferUsage = vk.BufferUsageFlags

// MemoryLocation selects where an allocation is placed.
type MemoryLocation int

const (
	// GpuOnly is fast device-local memory with no CPU access.
	GpuOnly MemoryLocation = iota
	// CpuToGpu is host-visible memory suited to frequent CPU
	// writes (uniform/staging buffers).
	CpuToGpu
	// GpuToCpu is host-visible, host-cached memory suited to
	// GPU-to-CPU readback.
	GpuToCpu
)

// LoadOp is the type of an attachment's load operation.
type LoadOp = vk.AttachmentLoadOp

// StoreOp is the type of an attachment's store operation.
type StoreOp = vk.AttachmentStoreOp

// ClearValue defines clear values for color or depth/stencil
// aspects of a render target.
type ClearValue struct {
	Color   [4]float32
	Depth   float32
	Stencil uint32
}

// DescType is the type of a descriptor.
type DescType = vk.DescriptorType

// ShaderStage is a mask of programmable shader stages.
type ShaderStage = vk.ShaderStageFlagBits

// PipelineBindPoint selects the pipeline type a command targets.
type PipelineBindPoint = vk.PipelineBindPoint

// IndexFmt describes the format of index buffer data.
type IndexFmt = vk.IndexType
