package framegraph

import "github.com/vkforge/framegraph/driver"

// BindingKind distinguishes the type-specific payload a Binding
// carries.
type BindingKind int

const (
	BindImage BindingKind = iota
	BindBuffer
)

// Binding pairs a resource handle with where and how a pass will use
// it: set/slot identify the descriptor binding point, Stage/Access
// declare the pipeline stages and memory access the fill callback
// will issue. The declared stage/access must be a superset of what
// the callback actually does (spec §3 invariant); the Linker and
// DescriptorResolver both trust this declaration rather than
// inspecting the callback.
type Binding struct {
	Handle Handle
	Set    int
	Slot   int
	Stage  driver.Stage
	Access driver.Access
	Kind   BindingKind

	// Layout is the target image layout. Only meaningful when
	// Kind == BindImage.
	Layout driver.Layout

	// Offset and Range describe a buffer sub-range. Only
	// meaningful when Kind == BindBuffer. Range == 0 means the
	// whole buffer from Offset.
	Offset int64
	Range  int64
}

// ImageBinding builds a Binding for an image resource.
func ImageBinding(h Handle, set, slot int, stage driver.Stage, access driver.Access, layout driver.Layout) Binding {
	return Binding{Handle: h, Set: set, Slot: slot, Stage: stage, Access: access, Kind: BindImage, Layout: layout}
}

// BufferBinding builds a Binding for a buffer resource.
func BufferBinding(h Handle, set, slot int, stage driver.Stage, access driver.Access, offset, rng int64) Binding {
	return Binding{Handle: h, Set: set, Slot: slot, Stage: stage, Access: access, Kind: BindBuffer, Offset: offset, Range: rng}
}

// AttachmentRef is a resource handle plus the format, sample count
// and declared post-barrier layout of a render target. The Linker
// may rewrite Layout before the Executor uses it (spec §4.3).
type AttachmentRef struct {
	Handle  Handle
	Format  driver.PixelFmt
	Samples driver.Samples
	Layout  driver.Layout
}

// isWrite reports whether an access mask (spec §4.3's
// write-detection rule) should be treated as a write for barrier
// purposes.
func isWrite(access driver.Access, stage driver.Stage) bool {
	const writeMask = driver.Access(colorAttachmentWrite | shaderWrite | transferWrite | hostWrite | memoryWrite)
	if access&writeMask != 0 {
		return true
	}
	return stage&driver.Stage(colorAttachmentOutput) != 0
}
