package framegraph

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vkforge/framegraph/driver"
)

// Executor orchestrates per-pass recording: barrier submission,
// renderpass begin (graphics), pipeline bind, descriptor write, the
// pass's fill callback, and renderpass end (spec §4.7).
type Executor struct {
	GPU      driver.GPU
	Registry *ResourceRegistry
	DescPool driver.DescriptorPool
	Passes   *PassCaches
	Profiler *Profiler
}

// Execute records cmdList into cb, a single command list (spec §4.7,
// §9: the Linker reserves a multi-list split for future multi-queue
// work, but emits one today). When given more than one command list
// a caller fans them out across CmdLists via ExecuteAll instead.
func (ex *Executor) Execute(ctx context.Context, nodes []PassNode, cl *CommandList, cb driver.CmdBuffer) {
	if err := cb.Begin(); err != nil {
		panic(newExecErr("cb.Begin: " + err.Error()))
	}
	if cl.HostBarrier != (driver.Barrier{}) {
		cb.Barrier([]driver.Barrier{cl.HostBarrier}, nil, nil)
	}

	for _, idx := range cl.Order {
		ex.executeNode(cb, &nodes[idx], cl.Barriers[idx])
	}

	if err := cb.End(); err != nil {
		panic(newExecErr("cb.End: " + err.Error()))
	}
}

// ExecuteAll fans cmdLists out across a worker pool, one goroutine
// per list, using golang.org/x/sync/errgroup; this is the
// parallel-across-CPU-threads path spec §4.7/§5 reserves for when the
// Linker emits more than one command list. Each cb in cbs is distinct
// and touched by exactly one goroutine.
func (ex *Executor) ExecuteAll(ctx context.Context, nodes []PassNode, cls []*CommandList, cbs []driver.CmdBuffer) error {
	if len(cls) != len(cbs) {
		panic(newExecErr("ExecuteAll: command list / command buffer count mismatch"))
	}
	g, _ := errgroup.WithContext(ctx)
	for i := range cls {
		i := i
		g.Go(func() error {
			ex.Execute(ctx, nodes, cls[i], cbs[i])
			return nil
		})
	}
	return g.Wait()
}

func (ex *Executor) executeNode(cb driver.CmdBuffer, n *PassNode, bs *BarrierSet) {
	cb.PushDebugLabel(n.Name)
	defer cb.PopDebugLabel()

	if !bs.empty() {
		cb.Barrier(bs.Global, bs.Images, bs.Buffers)
	}

	var span Span
	profiled := ex.Profiler != nil && n.Kind != PassPresent
	if profiled {
		span = ex.Profiler.Begin(cb, n.Name)
	}

	switch n.Kind {
	case PassGraphics:
		ex.executeGraphics(cb, n)
	case PassCompute:
		ex.executeCompute(cb, n)
	case PassCopy:
		n.fill(ex.GPU, cb)
	case PassPresent:
		// Present performs no GPU-recorded work of its own; the
		// barrier transitioning the swapchain image to
		// PRESENT_SRC_KHR, recorded above, is the entirety of it.
	}

	if profiled {
		ex.Profiler.End(cb, span)
	}
}

func (ex *Executor) executeGraphics(cb driver.CmdBuffer, n *PassNode) {
	extent, ok := ex.commonExtent(n)
	if !ok {
		panic(newExecErr("graphics pass " + n.Name + ": render target extents differ"))
	}

	rp := ex.Passes.Renderpasses.Get(ex.GPU, n.Name, n.color, n.depth)

	views := make([]driver.ImageView, 0, len(n.color)+1)
	clear := make([]driver.ClearValue, 0, len(n.color)+1)
	for _, c := range n.color {
		res, ok := ex.Registry.Lookup(c.Handle)
		if !ok {
			panic(newExecErr("graphics pass " + n.Name + ": unknown color attachment handle"))
		}
		view, err := res.Image.NewView(driver.FullRange(driver.AspectForFormat(res.Format)))
		if err != nil {
			panic(newExecErr("color view creation failed: " + err.Error()))
		}
		views = append(views, view)
		clear = append(clear, driver.ClearValue{Color: cfg.DefaultClearColor})
	}
	if n.depth != nil {
		res, ok := ex.Registry.Lookup(n.depth.Handle)
		if !ok {
			panic(newExecErr("graphics pass " + n.Name + ": unknown depth attachment handle"))
		}
		view, err := res.Image.NewView(driver.FullRange(driver.AspectForFormat(res.Format)))
		if err != nil {
			panic(newExecErr("depth view creation failed: " + err.Error()))
		}
		views = append(views, view)
		clear = append(clear, driver.ClearValue{Depth: 1})
	}

	fb, err := rp.NewFramebuffer(views, extent.Width, extent.Height, 1)
	if err != nil {
		panic(newExecErr("framebuffer creation failed: " + err.Error()))
	}
	n.framebuffer = fb

	var pipe driver.Pipeline
	var sets []driver.DescriptorSet
	if n.pipeline != nil {
		pipe = ex.Passes.Pipelines.GetGraphics(n.pipeline, rp, 0)
		sets = ex.allocSets(n.pipeline.VertShader, false)
		dr := &DescriptorResolver{Registry: ex.Registry}
		dr.Resolve(ex.GPU, sets, append(append([]Binding{}, n.reads...), n.writes...), ex.samplerFor)
	}

	cb.BeginRenderPass(rp, fb, clear)
	if pipe != nil {
		cb.BindPipeline(pipe, driver.PipelineBindPoint(bindGraphics))
	}
	if len(sets) > 0 {
		cb.BindDescriptorSets(ex.Passes.Pipelines.LayoutFor(n.pipeline.VertShader, false), driver.PipelineBindPoint(bindGraphics), 0, sets)
	}
	if len(n.viewport) > 0 {
		cb.SetViewport(n.viewport)
	}
	if len(n.scissor) > 0 {
		cb.SetScissor(n.scissor)
	}
	n.fill(ex.GPU, cb)
	cb.EndRenderPass()
}

func (ex *Executor) executeCompute(cb driver.CmdBuffer, n *PassNode) {
	var pipe driver.Pipeline
	var sets []driver.DescriptorSet
	if n.pipeline != nil {
		pipe = ex.Passes.Pipelines.GetCompute(n.pipeline)
		sets = ex.allocSets(n.pipeline.CompShader, true)
		dr := &DescriptorResolver{Registry: ex.Registry}
		dr.Resolve(ex.GPU, sets, append(append([]Binding{}, n.reads...), n.writes...), ex.samplerFor)
	}
	if pipe != nil {
		cb.BindPipeline(pipe, driver.PipelineBindPoint(bindCompute))
	}
	if len(sets) > 0 {
		cb.BindDescriptorSets(ex.Passes.Pipelines.LayoutFor(n.pipeline.CompShader, true), driver.PipelineBindPoint(bindCompute), 0, sets)
	}
	n.fill(ex.GPU, cb)
}

func (ex *Executor) allocSets(shader string, compute bool) []driver.DescriptorSet {
	layout := ex.Passes.Shaders.Load(ex.GPU, shader, compute).layout
	sets, err := ex.DescPool.Allocate([]driver.DescriptorSetLayout{layout})
	if err != nil {
		panic(newExecErr("descriptor set allocation failed: " + err.Error()))
	}
	return sets
}

func (ex *Executor) commonExtent(n *PassNode) (driver.Dim3D, bool) {
	var extent driver.Dim3D
	first := true
	for _, c := range n.color {
		res, ok := ex.Registry.Lookup(c.Handle)
		if !ok {
			return driver.Dim3D{}, false
		}
		if first {
			extent = res.Extent
			first = false
		} else if res.Extent != extent {
			return driver.Dim3D{}, false
		}
	}
	if n.depth != nil {
		res, ok := ex.Registry.Lookup(n.depth.Handle)
		if !ok {
			return driver.Dim3D{}, false
		}
		if first {
			extent = res.Extent
			first = false
		} else if res.Extent != extent {
			return driver.Dim3D{}, false
		}
	}
	return extent, true
}

// samplerFor returns the sampler registered for an image handle, or
// nil if the resource carries none, in which case the
// DescriptorResolver writes it as a storage image rather than a
// combined image sampler (spec §4.6).
func (ex *Executor) samplerFor(h Handle) driver.Sampler {
	res, ok := ex.Registry.Lookup(h)
	if !ok {
		return nil
	}
	return res.Sampler
}
