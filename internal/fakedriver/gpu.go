package fakedriver

import (
	"github.com/vkforge/framegraph/driver"
)

// GPU is a fake driver.GPU. Every creation method succeeds and
// returns a lightweight in-memory object; Submit runs synchronously
// in the calling goroutine (the fake has no real queue to order
// work on, so "submission order" and "completion order" coincide).
type GPU struct {
	drv   *Driver
	names map[any]string
}

func newGPU(d *Driver) *GPU {
	return &GPU{drv: d, names: make(map[any]string)}
}

func (g *GPU) Driver() driver.Driver { return g.drv }

func (g *GPU) NewCmdBuffer() (driver.CmdBuffer, error) {
	return &CmdBuffer{gpu: g}, nil
}

func (g *GPU) Submit(cb []driver.CmdBuffer, wait []driver.Semaphore, signal []driver.Semaphore, fence driver.Fence) error {
	for _, c := range cb {
		fc := c.(*CmdBuffer)
		if fc.status != cbEnded {
			return errNotEnded
		}
		fc.status = cbCommitted
	}
	if fence != nil {
		fence.(*Fence).signaled.Store(true)
	}
	return nil
}

func (g *GPU) WaitIdle() error { return nil }

func (g *GPU) NewImage(fmt driver.PixelFmt, size driver.Dim3D, layers, levels int, samples driver.Samples, usg driver.Usage, swapchainOwned bool) (driver.Image, error) {
	return &Image{id: nextID(), fmt: fmt, extent: size, layers: layers, levels: levels, samples: samples}, nil
}

func (g *GPU) NewBuffer(size int64, loc driver.MemoryLocation, usg driver.BufferUsage) (driver.Buffer, error) {
	b := &Buffer{id: nextID(), size: size, visible: loc != driver.GpuOnly}
	if b.visible {
		b.data = make([]byte, size)
	}
	return b, nil
}

func (g *GPU) NewSampler(s *driver.Sampling) (driver.Sampler, error) {
	return &Sampler{id: nextID()}, nil
}

func (g *GPU) NewShaderModule(spirv []byte) (driver.ShaderModule, error) {
	cp := make([]byte, len(spirv))
	copy(cp, spirv)
	return &ShaderModule{id: nextID(), SPIRV: cp}, nil
}

func (g *GPU) NewPipelineLayout(sets []driver.DescriptorSetLayout) (driver.PipelineLayout, error) {
	return &PipelineLayout{id: nextID(), sets: sets}, nil
}

func (g *GPU) NewDescriptorSetLayout(bindings []driver.Binding) (driver.DescriptorSetLayout, error) {
	return &DescriptorSetLayout{id: nextID(), bindings: bindings}, nil
}

func (g *GPU) NewDescriptorPool(maxSets int, sizes []driver.PoolSize) (driver.DescriptorPool, error) {
	return &DescriptorPool{id: nextID(), maxSets: maxSets}, nil
}

func (g *GPU) NewGraphicsPipeline(state *driver.GraphicsState) (driver.Pipeline, error) {
	return &Pipeline{id: nextID(), Kind: "graphics"}, nil
}

func (g *GPU) NewComputePipeline(state *driver.ComputeState) (driver.Pipeline, error) {
	return &Pipeline{id: nextID(), Kind: "compute"}, nil
}

func (g *GPU) NewRenderPass(att []driver.AttachmentDesc, sub []driver.SubpassDesc, dep []driver.SubpassDependency) (driver.RenderPass, error) {
	return &RenderPass{id: nextID(), Att: att, Sub: sub, Dep: dep}, nil
}

func (g *GPU) NewFence(signaled bool) (driver.Fence, error) {
	f := &Fence{id: nextID()}
	f.signaled.Store(signaled)
	return f, nil
}

func (g *GPU) NewSemaphore() (driver.Semaphore, error) {
	return &Semaphore{id: nextID()}, nil
}

func (g *GPU) NewQueryPool(queryCount int) (driver.QueryPool, error) {
	return &QueryPool{id: nextID(), Written: make([]uint64, queryCount)}, nil
}

func (g *GPU) UpdateDescriptorSets(writes []driver.DescriptorWrite) {
	byDescSet := map[*DescriptorSet][]driver.DescriptorWrite{}
	for _, w := range writes {
		ds, ok := w.Set.(*DescriptorSet)
		if !ok {
			continue
		}
		byDescSet[ds] = append(byDescSet[ds], w)
	}
	for ds, ws := range byDescSet {
		ds.Writes = append(ds.Writes, ws...)
	}
}

func (g *GPU) SetObjectName(obj any, name string) { g.names[obj] = name }

func (g *GPU) Limits() driver.Limits {
	return driver.Limits{
		MaxColorTargets:  8,
		MaxDescriptorSet: 4,
		MaxViewports:     16,
		MaxPushConstant:  128,
		TimestampPeriod:  1.0,
	}
}
