package framegraph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkforge/framegraph/internal/fakedriver"
)

// Creating a ring below MinFrameRing is rounded up, and every slot
// carries its own distinct set of GPU objects.
func TestFrameObjectsMinRing(t *testing.T) {
	gpu := fakedriver.Open()
	fo := NewFrameObjects(gpu, 1, 16)
	require.Len(t, fo.slots, MinFrameRing)
	require.NotSame(t, fo.slots[0].GraphicsCmd, fo.slots[1].GraphicsCmd)
}

// Acquire waits on and resets the current slot's present fence and
// resets its command buffers/descriptor pool; EndFrame then advances
// the ring index modulo its length, cycling back to slot 0.
func TestFrameObjectsAcquireAndAdvance(t *testing.T) {
	gpu := fakedriver.Open()
	fo := NewFrameObjects(gpu, MinFrameRing, 16)

	first := fo.Current()
	require.Same(t, first, fo.Acquire())

	fence := first.PresentFence.(*fakedriver.Fence)
	require.NoError(t, fence.Wait(0))
	signaled, err := fence.Signaled()
	require.NoError(t, err)
	require.False(t, signaled)

	for i := 0; i < len(fo.slots); i++ {
		fo.EndFrame()
	}
	require.Same(t, first, fo.Current())
}
