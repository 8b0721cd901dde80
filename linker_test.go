package framegraph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkforge/framegraph/driver"
	"github.com/vkforge/framegraph/internal/fakedriver"
)

// S1: the render target barrier for the graphics pass transitions
// from whatever layout the image was registered in to color-attachment
// optimal, and present's barrier transitions it on to present-src.
func TestLinkS1GraphicsThenPresent(t *testing.T) {
	reg := NewResourceRegistry()
	swap := testImageHandle(t, reg)

	g := newGraphicsNode(GraphicsDesc{
		Name:  "opaque",
		Color: []AttachmentRef{{Handle: swap, Format: driver.PixelFmt(37), Samples: 1, Layout: driver.Layout(layoutColorAttachment)}},
		Fill:  noopFill,
	})
	p := newPresentNode("present", swap)
	nodes := []PassNode{g, p}

	order, err := Compile(nodes, NodeIndex(1))
	require.NoError(t, err)
	cl := Link(reg, nodes, order)

	gb := cl.Barriers[0]
	require.Len(t, gb.Images, 1)
	require.Equal(t, driver.Layout(layoutUndefined), gb.Images[0].OldLayout)
	require.Equal(t, driver.Layout(layoutColorAttachment), gb.Images[0].NewLayout)
	require.Equal(t, driver.Access(colorAttachmentRead|colorAttachmentWrite), gb.Images[0].DstAccess)

	pb := cl.Barriers[1]
	require.Len(t, pb.Images, 1)
	require.Equal(t, driver.Layout(layoutColorAttachment), pb.Images[0].OldLayout)
	require.Equal(t, driver.Layout(layoutPresentSrc), pb.Images[0].NewLayout)
	require.Equal(t, driver.Stage(bottomOfPipe), pb.Images[0].DstStage)
}

// Link rewrites a graphics node's declared attachment layout to the
// forced color/depth-attachment-optimal layout, so a renderpass built
// from n.color/n.depth afterward sees the post-barrier layout rather
// than whatever AddGraphics originally declared.
func TestLinkRewritesAttachmentLayout(t *testing.T) {
	reg := NewResourceRegistry()
	color := testImageHandle(t, reg)
	depthImg := testImageHandle(t, reg)

	g := newGraphicsNode(GraphicsDesc{
		Name:  "opaque",
		Color: []AttachmentRef{{Handle: color, Format: driver.PixelFmt(37), Samples: 1, Layout: driver.Layout(layoutGeneral)}},
		Depth: &AttachmentRef{Handle: depthImg, Format: driver.PixelFmt(37), Samples: 1, Layout: driver.Layout(layoutGeneral)},
		Fill:  noopFill,
	})
	p := newPresentNode("present", color)
	nodes := []PassNode{g, p}

	order, err := Compile(nodes, NodeIndex(1))
	require.NoError(t, err)
	Link(reg, nodes, order)

	require.Equal(t, driver.Layout(layoutColorAttachment), nodes[0].color[0].Layout)
	require.Equal(t, driver.Layout(layoutDepthStencilAttachment), nodes[0].depth.Layout)
}

// S2: a compute pass writes a storage image; a later graphics pass
// samples it in the fragment shader. The graphics pass's read barrier
// must wait on the compute pass's write.
func TestLinkS2ComputeWriteThenGraphicsRead(t *testing.T) {
	reg := NewResourceRegistry()
	img := testImageHandle(t, reg)

	c := newComputeNode(ComputeDesc{
		Name:   "compute-fill",
		Writes: []Binding{ImageBinding(img, 0, 0, 0, driver.Access(shaderWrite), driver.Layout(layoutGeneral))},
		Fill:   noopFill,
	})
	g := newGraphicsNode(GraphicsDesc{
		Name:  "sample",
		Reads: []Binding{ImageBinding(img, 0, 0, driver.Stage(fragmentShader), driver.Access(shaderRead), driver.Layout(layoutShaderReadOnly))},
		Fill:  noopFill,
	})
	nodes := []PassNode{c, g}

	order, err := Compile(nodes, NodeIndex(1))
	require.NoError(t, err)
	require.Equal(t, []NodeIndex{0, 1}, order)

	cl := Link(reg, nodes, order)

	cb := cl.Barriers[0]
	require.Len(t, cb.Images, 1)
	require.Equal(t, driver.Layout(layoutUndefined), cb.Images[0].OldLayout)
	require.Equal(t, driver.Layout(layoutGeneral), cb.Images[0].NewLayout)
	require.Equal(t, driver.Stage(computeShader), cb.Images[0].DstStage)
	require.Equal(t, driver.Access(shaderWrite), cb.Images[0].DstAccess)

	gb := cl.Barriers[1]
	require.Len(t, gb.Images, 1)
	require.Equal(t, driver.Layout(layoutGeneral), gb.Images[0].OldLayout)
	require.Equal(t, driver.Layout(layoutShaderReadOnly), gb.Images[0].NewLayout)
	require.Equal(t, driver.Stage(computeShader), gb.Images[0].SrcStage)
	require.Equal(t, driver.Access(shaderWrite), gb.Images[0].SrcAccess)
	require.Equal(t, driver.Stage(fragmentShader), gb.Images[0].DstStage)
	require.Equal(t, driver.Access(shaderRead), gb.Images[0].DstAccess)
}

// S3: a copy pass always emits barriers for both its source and
// destination images, sandwiched between the transfer-src and
// transfer-dst layouts; present picks the destination back up from
// transfer-dst.
func TestLinkS3CopySandwiched(t *testing.T) {
	reg := NewResourceRegistry()
	src := testImageHandle(t, reg)
	dst := testImageHandle(t, reg)

	cp := newCopyNode(CopyDesc{Name: "blit", Src: []Handle{src}, Dst: []Handle{dst}, Fill: noopFill})
	p := newPresentNode("present", dst)
	nodes := []PassNode{cp, p}

	order, err := Compile(nodes, NodeIndex(1))
	require.NoError(t, err)
	cl := Link(reg, nodes, order)

	cb := cl.Barriers[0]
	require.Len(t, cb.Images, 2)
	require.Equal(t, driver.Layout(layoutTransferSrc), cb.Images[0].NewLayout)
	require.Equal(t, driver.Access(transferRead), cb.Images[0].DstAccess)
	require.Equal(t, driver.Layout(layoutTransferDst), cb.Images[1].NewLayout)
	require.Equal(t, driver.Access(transferWrite), cb.Images[1].DstAccess)

	pb := cl.Barriers[1]
	require.Len(t, pb.Images, 1)
	require.Equal(t, driver.Layout(layoutTransferDst), pb.Images[0].OldLayout)
	require.Equal(t, driver.Layout(layoutPresentSrc), pb.Images[0].NewLayout)
}

// S6: two consecutive writers of the same render target both emit a
// barrier (a write is always followed by another barrier on next
// use, per the general rule), even though the layout does not change
// between them.
func TestLinkS6ConsecutiveWritesBothBarrier(t *testing.T) {
	reg := NewResourceRegistry()
	rt := testImageHandle(t, reg)
	attachment := AttachmentRef{Handle: rt, Format: driver.PixelFmt(37), Samples: 1, Layout: driver.Layout(layoutColorAttachment)}

	g1 := newGraphicsNode(GraphicsDesc{Name: "g1", Color: []AttachmentRef{attachment}, Fill: noopFill})
	g2 := newGraphicsNode(GraphicsDesc{Name: "g2", Color: []AttachmentRef{attachment}, Fill: noopFill})
	p := newPresentNode("present", rt)
	nodes := []PassNode{g1, g2, p}

	order, err := Compile(nodes, NodeIndex(2))
	require.NoError(t, err)
	cl := Link(reg, nodes, order)

	require.Len(t, cl.Barriers[order[0]].Images, 1)
	require.Len(t, cl.Barriers[order[1]].Images, 1)
	require.Equal(t, driver.Layout(layoutColorAttachment), cl.Barriers[order[1]].Images[0].OldLayout)
	require.Equal(t, driver.Layout(layoutColorAttachment), cl.Barriers[order[1]].Images[0].NewLayout)
}

// A host-visibility barrier is always present, regardless of frame
// content, so vertex/index buffers written from the host are visible
// to the first pass that consumes them.
func TestLinkHostBarrierAlwaysPresent(t *testing.T) {
	reg := NewResourceRegistry()
	swap := testImageHandle(t, reg)
	p := newPresentNode("present", swap)
	nodes := []PassNode{p}

	order, err := Compile(nodes, NodeIndex(0))
	require.NoError(t, err)
	cl := Link(reg, nodes, order)
	require.NotEqual(t, driver.Barrier{}, cl.HostBarrier)
	require.Equal(t, driver.Stage(hostStage), cl.HostBarrier.SrcStage)
}

// A buffer binding with no declared write access and no layout change
// never emits a barrier on its first use, since the general rule's
// three conditions are all false.
func TestLinkNoBarrierOnFirstReadOnlyBuffer(t *testing.T) {
	reg := NewResourceRegistry()
	gpu := fakedriver.Open()
	buf, err := gpu.NewBuffer(256, driver.GpuOnly, 0)
	require.NoError(t, err)
	h := reg.RegisterBuffer(buf)

	c := newComputeNode(ComputeDesc{
		Name:  "read-only",
		Reads: []Binding{BufferBinding(h, 0, 0, driver.Stage(computeShader), driver.Access(uniformRead), 0, 0)},
		Fill:  noopFill,
	})
	nodes := []PassNode{c}
	order, err := Compile(nodes, NodeIndex(0))
	require.NoError(t, err)
	cl := Link(reg, nodes, order)
	require.True(t, cl.Barriers[0].empty())
}
