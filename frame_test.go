package framegraph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"

	fg "github.com/vkforge/framegraph"
	"github.com/vkforge/framegraph/driver"
	"github.com/vkforge/framegraph/internal/fakedriver"
)

var colorAttachmentOptimal = driver.Layout(vk.ImageLayoutColorAttachmentOptimal)

func newTestFrameGraph(t *testing.T) (*fg.FrameGraph, driver.GPU) {
	t.Helper()
	gpu := fakedriver.Open()
	cfg := fg.DefaultConfig()
	cfg.FrameRing = fg.MinFrameRing
	graph := fg.New(gpu, &cfg)
	t.Cleanup(graph.Close)
	return graph, gpu
}

func newSwapImage(t *testing.T, graph *fg.FrameGraph, gpu driver.GPU) fg.Handle {
	t.Helper()
	img, err := gpu.NewImage(driver.PixelFmt(37), driver.Dim3D{Width: 64, Height: 64, Depth: 1}, 1, 1, driver.Samples(1), 0, true)
	require.NoError(t, err)
	return graph.Registry.RegisterImage(img, true, driver.Layout(0), nil)
}

// End to end: one graphics pass renders into the swapchain image,
// present consumes it. The recorded command buffer begins and ends
// exactly one render pass and carries a barrier before it and one
// before present's (implicit) work.
func TestFrameEndToEndS1(t *testing.T) {
	graph, gpu := newTestFrameGraph(t)
	swap := newSwapImage(t, graph, gpu)

	descPool, err := gpu.NewDescriptorPool(64, nil)
	require.NoError(t, err)
	cb, err := gpu.NewCmdBuffer()
	require.NoError(t, err)

	var drew bool
	frame := graph.Start(descPool)
	g := frame.AddGraphics(fg.GraphicsDesc{
		Name:  "opaque",
		Color: []fg.AttachmentRef{{Handle: swap, Format: driver.PixelFmt(37), Samples: 1, Layout: colorAttachmentOptimal}},
		Fill: func(driver.GPU, driver.CmdBuffer) {
			drew = true
		},
	})
	p := frame.AddPresent("present", swap)
	frame.MarkRoot(p)
	frame.End(context.Background(), cb)

	require.True(t, drew)
	require.Equal(t, []fg.NodeIndex{g, p}, frame.Order())

	fake := cb.(*fakedriver.CmdBuffer)
	var beginCount, endCount, barrierCount int
	for _, op := range fake.Ops {
		switch op.Name {
		case "BeginRenderPass":
			beginCount++
		case "EndRenderPass":
			endCount++
		case "Barrier":
			barrierCount++
		}
	}
	require.Equal(t, 1, beginCount)
	require.Equal(t, 1, endCount)
	// One barrier call per pass plus the leading host barrier.
	require.Equal(t, 3, barrierCount)
}

// S4: a pass that writes a resource no one downstream reads is pruned
// before execution, so its fill callback never runs.
func TestFrameUnreachablePassNeverFilled(t *testing.T) {
	graph, gpu := newTestFrameGraph(t)
	swap := newSwapImage(t, graph, gpu)

	orphanImg, err := gpu.NewImage(driver.PixelFmt(37), driver.Dim3D{Width: 32, Height: 32, Depth: 1}, 1, 1, driver.Samples(1), 0, false)
	require.NoError(t, err)
	orphan := graph.Registry.RegisterImage(orphanImg, false, driver.Layout(0), nil)

	descPool, err := gpu.NewDescriptorPool(64, nil)
	require.NoError(t, err)
	cb, err := gpu.NewCmdBuffer()
	require.NoError(t, err)

	unreachableFilled := false
	frame := graph.Start(descPool)
	frame.AddGraphics(fg.GraphicsDesc{
		Name:  "unreachable",
		Color: []fg.AttachmentRef{{Handle: orphan, Format: driver.PixelFmt(37), Samples: 1, Layout: colorAttachmentOptimal}},
		Fill: func(driver.GPU, driver.CmdBuffer) {
			unreachableFilled = true
		},
	})
	g := frame.AddGraphics(fg.GraphicsDesc{
		Name:  "opaque",
		Color: []fg.AttachmentRef{{Handle: swap, Format: driver.PixelFmt(37), Samples: 1, Layout: colorAttachmentOptimal}},
		Fill:  func(driver.GPU, driver.CmdBuffer) {},
	})
	p := frame.AddPresent("present", swap)
	frame.MarkRoot(p)
	frame.End(context.Background(), cb)

	require.False(t, unreachableFilled)
	require.Equal(t, []fg.NodeIndex{g, p}, frame.Order())
}

// Frame.End panics (a programming error per the error taxonomy) when
// no root was designated.
func TestFrameEndWithoutRootPanics(t *testing.T) {
	graph, gpu := newTestFrameGraph(t)
	descPool, err := gpu.NewDescriptorPool(64, nil)
	require.NoError(t, err)
	cb, err := gpu.NewCmdBuffer()
	require.NoError(t, err)

	frame := graph.Start(descPool)
	frame.AddPresent("present", fg.Handle(1))
	require.Panics(t, func() {
		frame.End(context.Background(), cb)
	})
}

// A cycle reachable from the root surfaces as a panic carrying
// ErrCycle, not a silent or partial ordering.
func TestFrameCyclePanics(t *testing.T) {
	graph, gpu := newTestFrameGraph(t)
	descPool, err := gpu.NewDescriptorPool(64, nil)
	require.NoError(t, err)
	cb, err := gpu.NewCmdBuffer()
	require.NoError(t, err)

	imgA, err := gpu.NewImage(driver.PixelFmt(37), driver.Dim3D{Width: 8, Height: 8, Depth: 1}, 1, 1, driver.Samples(1), 0, false)
	require.NoError(t, err)
	imgB, err := gpu.NewImage(driver.PixelFmt(37), driver.Dim3D{Width: 8, Height: 8, Depth: 1}, 1, 1, driver.Samples(1), 0, false)
	require.NoError(t, err)
	a := graph.Registry.RegisterImage(imgA, false, driver.Layout(0), nil)
	b := graph.Registry.RegisterImage(imgB, false, driver.Layout(0), nil)

	frame := graph.Start(descPool)
	frame.AddGraphics(fg.GraphicsDesc{
		Name:   "a",
		Reads:  []fg.Binding{fg.ImageBinding(a, 0, 0, 0, 0, driver.Layout(0))},
		Writes: []fg.Binding{fg.ImageBinding(b, 0, 1, 0, 0, driver.Layout(0))},
		Fill:   func(driver.GPU, driver.CmdBuffer) {},
	})
	second := frame.AddGraphics(fg.GraphicsDesc{
		Name:   "b",
		Reads:  []fg.Binding{fg.ImageBinding(b, 0, 0, 0, 0, driver.Layout(0))},
		Writes: []fg.Binding{fg.ImageBinding(a, 0, 1, 0, 0, driver.Layout(0))},
		Fill:   func(driver.GPU, driver.CmdBuffer) {},
	})
	frame.MarkRoot(second)

	require.PanicsWithError(t, fg.ErrCycle.Error(), func() {
		frame.End(context.Background(), cb)
	})
}
