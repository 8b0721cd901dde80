package fakedriver

import (
	"fmt"
	"sync/atomic"

	"github.com/vkforge/framegraph/driver"
)

var idgen atomic.Int64

func nextID() int64 { return idgen.Add(1) }

type destroyed struct{ gone bool }

func (d *destroyed) Destroy() { d.gone = true }

// Image is a fake driver.Image: it carries no real GPU memory.
type Image struct {
	destroyed
	id      int64
	fmt     driver.PixelFmt
	extent  driver.Dim3D
	layers  int
	levels  int
	samples driver.Samples
}

func (i *Image) NewView(rng driver.SubresourceRange) (driver.ImageView, error) {
	return &ImageView{id: nextID(), img: i, rng: rng}, nil
}
func (i *Image) Format() driver.PixelFmt   { return i.fmt }
func (i *Image) Extent() driver.Dim3D      { return i.extent }
func (i *Image) Samples() driver.Samples   { return i.samples }
func (i *Image) String() string            { return fmt.Sprintf("Image#%d", i.id) }

// ImageView is a fake driver.ImageView.
type ImageView struct {
	destroyed
	id  int64
	img *Image
	rng driver.SubresourceRange
}

// Buffer is a fake driver.Buffer. Host-visible buffers are backed
// by a real byte slice so staged uniform data can round-trip in
// tests.
type Buffer struct {
	destroyed
	id      int64
	size    int64
	visible bool
	data    []byte
}

func (b *Buffer) Visible() bool { return b.visible }
func (b *Buffer) Bytes() []byte {
	if !b.visible {
		return nil
	}
	return b.data
}
func (b *Buffer) Cap() int64 { return b.size }

// Sampler is a fake driver.Sampler.
type Sampler struct {
	destroyed
	id int64
}

// ShaderModule is a fake driver.ShaderModule. It stores the raw
// bytes it was created from so tests can assert on reflected
// bindings without a real SPIR-V parser.
type ShaderModule struct {
	destroyed
	id    int64
	SPIRV []byte
}

// Pipeline is a fake driver.Pipeline.
type Pipeline struct {
	destroyed
	id int64
	// Kind records whether this was created via
	// NewGraphicsPipeline or NewComputePipeline, for test
	// assertions.
	Kind string
}

// PipelineLayout is a fake driver.PipelineLayout.
type PipelineLayout struct {
	destroyed
	id   int64
	sets []driver.DescriptorSetLayout
}

// DescriptorSetLayout is a fake driver.DescriptorSetLayout.
type DescriptorSetLayout struct {
	destroyed
	id       int64
	bindings []driver.Binding
}

// DescriptorSet is a fake driver.DescriptorSet.
type DescriptorSet struct {
	id     int64
	Writes []driver.DescriptorWrite
}

// DescriptorPool is a fake driver.DescriptorPool.
type DescriptorPool struct {
	destroyed
	id      int64
	maxSets int
	used    int
}

func (p *DescriptorPool) Allocate(layouts []driver.DescriptorSetLayout) ([]driver.DescriptorSet, error) {
	if p.used+len(layouts) > p.maxSets {
		return nil, fmt.Errorf("fakedriver: descriptor pool exhausted (max %d)", p.maxSets)
	}
	out := make([]driver.DescriptorSet, len(layouts))
	for i := range layouts {
		out[i] = &DescriptorSet{id: nextID()}
		p.used++
	}
	return out, nil
}

func (p *DescriptorPool) Reset() error {
	p.used = 0
	return nil
}

// RenderPass is a fake driver.RenderPass.
type RenderPass struct {
	destroyed
	id  int64
	Att []driver.AttachmentDesc
	Sub []driver.SubpassDesc
	Dep []driver.SubpassDependency
}

func (r *RenderPass) NewFramebuffer(views []driver.ImageView, width, height, layers int) (driver.Framebuffer, error) {
	if len(views) != len(r.Att) {
		return nil, fmt.Errorf("fakedriver: framebuffer attachment count mismatch: want %d, got %d", len(r.Att), len(views))
	}
	return &Framebuffer{id: nextID(), Width: width, Height: height, Layers: layers, Views: views}, nil
}

// Framebuffer is a fake driver.Framebuffer.
type Framebuffer struct {
	destroyed
	id            int64
	Width, Height int
	Layers        int
	Views         []driver.ImageView
}

// Fence is a fake driver.Fence. Since Submit executes synchronously,
// a Fence passed to Submit is signaled immediately.
type Fence struct {
	destroyed
	id       int64
	signaled atomic.Bool
}

func (f *Fence) Wait(timeoutNs int64) error { return nil }
func (f *Fence) Reset() error                { f.signaled.Store(false); return nil }
func (f *Fence) Signaled() (bool, error)     { return f.signaled.Load(), nil }

// Semaphore is a fake driver.Semaphore.
type Semaphore struct {
	destroyed
	id int64
}

// QueryPool is a fake driver.QueryPool. WriteTimestamp calls
// recorded against it populate Written with a monotonically
// increasing fake tick count, so GpuProfiler tests can assert on
// relative ordering without real GPU timing.
type QueryPool struct {
	destroyed
	id      int64
	Written []uint64
}

func (q *QueryPool) Results(first, count int, dst []uint64) error {
	for i := 0; i < count && i < len(dst); i++ {
		idx := first + i
		if idx < len(q.Written) {
			dst[i] = q.Written[idx]
		}
	}
	return nil
}

func (q *QueryPool) Reset(first, count int) {
	for i := 0; i < count; i++ {
		idx := first + i
		if idx < len(q.Written) {
			q.Written[idx] = 0
		}
	}
}
