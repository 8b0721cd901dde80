package framegraph

import "github.com/vkforge/framegraph/driver"

// usage is the linker-local per-resource usage cache entry (spec §3
// "Usage cache").
type usage struct {
	access driver.Access
	stage  driver.Stage
	layout driver.Layout
}

// QueueWait is reserved for future multi-queue scheduling (spec §9,
// SPEC_FULL.md §C: the Linker produces a single command list today
// and this field is always left at its zero value).
type QueueWait struct {
	SrcQueueFamily uint32
	DstQueueFamily uint32
	Semaphore      driver.Semaphore
}

// BarrierSet is the barrier list the Linker computes for one pass.
type BarrierSet struct {
	Global  []driver.Barrier
	Images  []driver.ImageBarrier
	Buffers []driver.BufferBarrier
}

func (b *BarrierSet) empty() bool {
	return len(b.Global) == 0 && len(b.Images) == 0 && len(b.Buffers) == 0
}

// CommandList is the Linker's output: the execution order annotated
// with a barrier set per node, plus the single global host-visibility
// barrier emitted before the first pass.
type CommandList struct {
	Order      []NodeIndex
	Barriers   map[NodeIndex]*BarrierSet
	HostBarrier driver.Barrier
	QueueWait  *QueueWait
}

// linkCtx carries the mutable state threaded through a single Link
// call: the per-frame usage cache and a handle to the resource
// registry for resolving concrete driver objects and initial
// layouts.
type linkCtx struct {
	registry *ResourceRegistry
	cache    map[Handle]usage
}

func (c *linkCtx) seed(h Handle) usage {
	if u, ok := c.cache[h]; ok {
		return u
	}
	layout := driver.Layout(layoutUndefined)
	if res, ok := c.registry.Lookup(h); ok {
		layout = res.Layout
	}
	u := usage{access: accessNone, stage: driver.Stage(allCommands), layout: layout}
	c.cache[h] = u
	return u
}

// Link computes the barrier list for every node in order (spec
// §4.3). Nodes not present in order (pruned by the Compiler) are
// simply absent from the result. For graphics nodes, the forced
// color/depth attachment layout is also written back into the
// node's AttachmentRef, so the RenderpassCache and Executor see the
// post-barrier layout rather than whatever the caller originally
// declared (spec §4.3, §4.4).
func Link(registry *ResourceRegistry, nodes []PassNode, order []NodeIndex) *CommandList {
	ctx := &linkCtx{registry: registry, cache: make(map[Handle]usage)}
	cl := &CommandList{
		Order:    order,
		Barriers: make(map[NodeIndex]*BarrierSet, len(order)),
		HostBarrier: driver.Barrier{
			SrcStage:  driver.Stage(hostStage),
			DstStage:  driver.Stage(vertexInput | vertexShader),
			SrcAccess: driver.Access(hostWrite),
			DstAccess: driver.Access(uniformRead | indexRead | vertexAttributeRead),
		},
		QueueWait: &QueueWait{},
	}

	for _, idx := range order {
		n := &nodes[idx]
		bs := &BarrierSet{}
		switch n.Kind {
		case PassGraphics:
			for _, b := range n.reads {
				ctx.transition(bs, b.Handle, b.Stage, b.Access, b.Layout, b.Kind, b.Offset, b.Range, false)
			}
			for _, b := range n.writes {
				ctx.transition(bs, b.Handle, b.Stage, b.Access, b.Layout, b.Kind, b.Offset, b.Range, false)
			}
			if n.depth != nil {
				ctx.transition(bs, n.depth.Handle,
					driver.Stage(colorAttachmentOutput|earlyFragmentTests),
					driver.Access(depthStencilAttachmentRead|depthStencilAttachmentWrite),
					driver.Layout(layoutDepthStencilAttachment), BindImage, 0, 0, false)
				n.depth.Layout = driver.Layout(layoutDepthStencilAttachment)
			}
			for i, a := range n.color {
				ctx.transition(bs, a.Handle,
					driver.Stage(colorAttachmentOutput|earlyFragmentTests),
					driver.Access(colorAttachmentRead|colorAttachmentWrite),
					driver.Layout(layoutColorAttachment), BindImage, 0, 0, false)
				n.color[i].Layout = driver.Layout(layoutColorAttachment)
			}
		case PassCompute:
			for _, b := range n.reads {
				ctx.transition(bs, b.Handle, driver.Stage(computeShader), b.Access, b.Layout, b.Kind, b.Offset, b.Range, false)
			}
			for _, b := range n.writes {
				ctx.transition(bs, b.Handle, driver.Stage(computeShader), b.Access, b.Layout, b.Kind, b.Offset, b.Range, false)
			}
		case PassCopy:
			for _, h := range n.copySrc {
				ctx.transition(bs, h, driver.Stage(transferStage), driver.Access(transferRead), driver.Layout(layoutTransferSrc), BindImage, 0, 0, true)
			}
			for _, h := range n.copyDst {
				ctx.transition(bs, h, driver.Stage(transferStage), driver.Access(transferWrite), driver.Layout(layoutTransferDst), BindImage, 0, 0, true)
			}
		case PassPresent:
			ctx.transition(bs, n.present, driver.Stage(bottomOfPipe), driver.Access(accessNone), driver.Layout(layoutPresentSrc), BindImage, 0, 0, false)
		}
		cl.Barriers[idx] = bs
	}
	return cl
}

// transition computes the new usage for h from the declared
// stage/access/layout, emits a barrier into bs if the general rule
// (spec §4.3) requires one, and updates the usage cache.
func (c *linkCtx) transition(bs *BarrierSet, h Handle, stage driver.Stage, access driver.Access, layout driver.Layout, kind BindingKind, offset, rng int64, always bool) {
	prev := c.seed(h)
	need := always || isWrite(prev.access, prev.stage) || (kind == BindImage && prev.layout != layout)

	if need {
		res, ok := c.registry.Lookup(h)
		if !ok {
			panic(newLinkErr("unknown resource handle"))
		}
		if kind == BindImage || res.Kind == KindImage {
			aspect := driver.AspectForFormat(res.Format)
			bs.Images = append(bs.Images, driver.ImageBarrier{
				Barrier: driver.Barrier{
					SrcStage: prev.stage, DstStage: stage,
					SrcAccess: prev.access, DstAccess: access,
				},
				OldLayout:      prev.layout,
				NewLayout:      layout,
				SrcQueueFamily: driver.QueueFamilyIgnored,
				DstQueueFamily: driver.QueueFamilyIgnored,
				Image:          res.Image,
				Range:          driver.FullRange(aspect),
			})
		} else {
			size := rng
			if size == 0 && res.Buffer != nil {
				size = res.Buffer.Cap() - offset
			}
			bs.Buffers = append(bs.Buffers, driver.BufferBarrier{
				Barrier: driver.Barrier{
					SrcStage: prev.stage, DstStage: stage,
					SrcAccess: prev.access, DstAccess: access,
				},
				Buffer: res.Buffer,
				Offset: offset,
				Size:   size,
			})
		}
	}

	c.cache[h] = usage{access: access, stage: stage, layout: layout}
	if kind == BindImage {
		c.registry.SetLayout(h, layout)
	}
}
