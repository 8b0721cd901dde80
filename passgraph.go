package framegraph

import (
	"context"

	"github.com/google/uuid"
	"github.com/vkforge/framegraph/driver"
)

// NodeIndex identifies a PassNode within a single Frame's graph.
type NodeIndex int

// PassKind is the tag of the PassNode sum type (spec §9: "a tagged
// sum with a dispatch that forwards to the per-variant method").
type PassKind int

const (
	PassGraphics PassKind = iota
	PassCompute
	PassCopy
	PassPresent
)

func (k PassKind) String() string {
	switch k {
	case PassGraphics:
		return "graphics"
	case PassCompute:
		return "compute"
	case PassCopy:
		return "copy"
	case PassPresent:
		return "present"
	default:
		return "invalid"
	}
}

// FillFunc records pass-internal draw/dispatch/copy commands into cb.
// It must not issue barriers or change layouts (spec §4.7) and must
// not suspend (spec §9): it borrows only gpu and cb, so it is safe to
// invoke from any single goroutine at execution time.
type FillFunc func(gpu driver.GPU, cb driver.CmdBuffer)

// GraphicsDesc declares a graphics pass at AddGraphics time.
type GraphicsDesc struct {
	Name     string
	Reads    []Binding
	Writes   []Binding
	Color    []AttachmentRef
	Depth    *AttachmentRef
	Viewport []driver.Viewport
	Scissor  []driver.Scissor
	Pipeline *PipelineDesc
	Fill     FillFunc
}

// ComputeDesc declares a compute pass.
type ComputeDesc struct {
	Name     string
	Reads    []Binding
	Writes   []Binding
	Pipeline *PipelineDesc
	Fill     FillFunc
}

// CopyDesc declares a copy pass.
type CopyDesc struct {
	Name string
	Src  []Handle
	Dst  []Handle
	Fill FillFunc
}

// PassNode is a single unit of declared GPU work. Only the common
// fields and the field group for Kind are meaningful; this mirrors the
// original's PassType-tagged struct (SPEC_FULL.md §C) rather than an
// interface-per-behavior hierarchy.
type PassNode struct {
	Kind PassKind
	Name string

	reads  []Binding
	writes []Binding

	// Graphics-only.
	color    []AttachmentRef
	depth    *AttachmentRef
	viewport []driver.Viewport
	scissor  []driver.Scissor
	pipeline *PipelineDesc

	// Copy-only.
	copySrc []Handle
	copyDst []Handle

	// Present-only.
	present Handle

	fill FillFunc

	// Filled in by the Executor; owned by the node so it lives
	// until frame teardown (spec §4.7).
	framebuffer driver.Framebuffer
}

func newGraphicsNode(d GraphicsDesc) PassNode {
	if d.Fill == nil {
		panic(newGraphErr("graphics pass " + d.Name + " has no fill callback"))
	}
	return PassNode{
		Kind: PassGraphics, Name: d.Name,
		reads: d.Reads, writes: d.Writes,
		color: d.Color, depth: d.Depth,
		viewport: d.Viewport, scissor: d.Scissor,
		pipeline: d.Pipeline, fill: d.Fill,
	}
}

func newComputeNode(d ComputeDesc) PassNode {
	if d.Fill == nil {
		panic(newGraphErr("compute pass " + d.Name + " has no fill callback"))
	}
	return PassNode{
		Kind: PassCompute, Name: d.Name,
		reads: d.Reads, writes: d.Writes,
		pipeline: d.Pipeline, fill: d.Fill,
	}
}

func newCopyNode(d CopyDesc) PassNode {
	if d.Fill == nil {
		d.Fill = func(driver.GPU, driver.CmdBuffer) {}
	}
	return PassNode{Kind: PassCopy, Name: d.Name, copySrc: d.Src, copyDst: d.Dst, fill: d.Fill}
}

func newPresentNode(name string, swap Handle) PassNode {
	return PassNode{Kind: PassPresent, Name: name, present: swap, fill: func(driver.GPU, driver.CmdBuffer) {}}
}

// reads/writes return the resource handles a node declares, used by
// the Compiler to infer edges (spec §4.2: "reads include attachment
// references").
//
// A pass's own render targets are deliberately excluded from its own
// read set: spec §9's open question notes the source treats render
// targets as both reads and writes, but taken literally that makes
// every pair of passes writing the same target (S6) mutually "read"
// each other's write and produces a false cycle. This repo resolves
// the open question by keeping render targets only in the write set
// of their owning pass. Any real sampling of a previous target
// still produces an edge through the normal reads list (S2), and
// records the decision in DESIGN.md rather than silently deviating.
func (n *PassNode) readHandles() []Handle {
	switch n.Kind {
	case PassGraphics, PassCompute:
		hs := make([]Handle, 0, len(n.reads))
		for _, b := range n.reads {
			hs = append(hs, b.Handle)
		}
		return hs
	case PassCopy:
		return n.copySrc
	case PassPresent:
		return []Handle{n.present}
	}
	return nil
}

func (n *PassNode) writeHandles() []Handle {
	switch n.Kind {
	case PassGraphics, PassCompute:
		hs := make([]Handle, 0, len(n.writes)+len(n.color)+1)
		for _, b := range n.writes {
			hs = append(hs, b.Handle)
		}
		for _, a := range n.color {
			hs = append(hs, a.Handle)
		}
		if n.depth != nil {
			hs = append(hs, n.depth.Handle)
		}
		return hs
	case PassCopy:
		return n.copyDst
	}
	return nil
}

// frameState is the lifecycle state of a Frame (spec §3).
type frameState int

const (
	frameNew frameState = iota
	frameStarted
	frameEnded
)

// Frame owns the pass graph for a single frame: its nodes, root,
// descriptor pool and allocated descriptor sets.
type Frame struct {
	ID      uuid.UUID
	state   frameState
	nodes   []PassNode
	root    NodeIndex
	hasRoot bool

	fg       *FrameGraph
	descPool driver.DescriptorPool
	descSets []driver.DescriptorSet

	order []NodeIndex
}

// Start creates a Frame in the Started state, backed by fg's shared
// registry and caches and descPool for per-pass descriptor
// allocation.
func (fg *FrameGraph) Start(descPool driver.DescriptorPool) *Frame {
	return &Frame{
		ID:       uuid.New(),
		state:    frameStarted,
		fg:       fg,
		descPool: descPool,
	}
}

func (f *Frame) mustBeStarted(op string) {
	if f.state != frameStarted {
		panic(newGraphErr(op + ": frame is not in Started state"))
	}
}

// AddGraphics appends a graphics pass and returns its NodeIndex.
func (f *Frame) AddGraphics(d GraphicsDesc) NodeIndex {
	f.mustBeStarted("add_node")
	f.nodes = append(f.nodes, newGraphicsNode(d))
	return NodeIndex(len(f.nodes) - 1)
}

// AddCompute appends a compute pass and returns its NodeIndex.
func (f *Frame) AddCompute(d ComputeDesc) NodeIndex {
	f.mustBeStarted("add_node")
	f.nodes = append(f.nodes, newComputeNode(d))
	return NodeIndex(len(f.nodes) - 1)
}

// AddCopy appends a copy pass and returns its NodeIndex.
func (f *Frame) AddCopy(d CopyDesc) NodeIndex {
	f.mustBeStarted("add_node")
	f.nodes = append(f.nodes, newCopyNode(d))
	return NodeIndex(len(f.nodes) - 1)
}

// AddPresent appends a present pass for the given swapchain image
// handle and returns its NodeIndex.
func (f *Frame) AddPresent(name string, swapImage Handle) NodeIndex {
	f.mustBeStarted("add_node")
	f.nodes = append(f.nodes, newPresentNode(name, swapImage))
	return NodeIndex(len(f.nodes) - 1)
}

// MarkRoot designates idx as the frame's single output node.
func (f *Frame) MarkRoot(idx NodeIndex) {
	f.mustBeStarted("mark_root")
	if int(idx) < 0 || int(idx) >= len(f.nodes) {
		panic(newGraphErr("mark_root: node index out of range"))
	}
	if f.hasRoot {
		panic(newGraphErr("mark_root: root already designated for this frame"))
	}
	f.root = idx
	f.hasRoot = true
}

// End transitions the frame to Ended, then runs compile, link and
// execute in sequence, recording the result into cb. It panics on
// any programming error per spec §7 (cycle, missing root, etc.).
func (f *Frame) End(ctx context.Context, cb driver.CmdBuffer) {
	f.mustBeStarted("end")
	if !f.hasRoot {
		panic(newGraphErr("end: no root designated"))
	}
	f.state = frameEnded

	order, err := Compile(f.nodes, f.root)
	if err != nil {
		panic(err)
	}
	f.order = order

	cmdList := Link(f.fg.Registry, f.nodes, order)

	exec := &Executor{
		GPU:      f.fg.GPU,
		Registry: f.fg.Registry,
		DescPool: f.descPool,
		Passes:   f.fg.passCaches,
		Profiler: f.fg.Profiler,
	}
	exec.Execute(ctx, f.nodes, cmdList, cb)
}

// Order returns the execution order computed by the most recent End
// call (nil before End, or for unreachable nodes it excludes).
func (f *Frame) Order() []NodeIndex { return f.order }
