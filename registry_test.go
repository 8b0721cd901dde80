package framegraph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkforge/framegraph/driver"
	"github.com/vkforge/framegraph/internal/fakedriver"
)

// Handles are nonzero and unique even under concurrent registration
// (testable property 9: handle monotonicity, uniqueness part).
func TestRegistryHandlesUniqueUnderConcurrency(t *testing.T) {
	reg := NewResourceRegistry()
	gpu := fakedriver.Open()

	const n = 200
	handles := make([]Handle, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				img, err := gpu.NewImage(driver.PixelFmt(37), driver.Dim3D{Width: 4, Height: 4, Depth: 1}, 1, 1, driver.Samples(1), 0, false)
				require.NoError(t, err)
				handles[i] = reg.RegisterImage(img, false, driver.Layout(layoutUndefined), nil)
			} else {
				buf, err := gpu.NewBuffer(64, driver.GpuOnly, 0)
				require.NoError(t, err)
				handles[i] = reg.RegisterBuffer(buf)
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[Handle]bool, n)
	for _, h := range handles {
		require.NotZero(t, h)
		require.False(t, seen[h], "handle %d registered twice", h)
		seen[h] = true
	}
}

func TestRegistryLookupAndRelease(t *testing.T) {
	reg := NewResourceRegistry()
	gpu := fakedriver.Open()
	img, err := gpu.NewImage(driver.PixelFmt(37), driver.Dim3D{Width: 4, Height: 4, Depth: 1}, 1, 1, driver.Samples(1), 0, false)
	require.NoError(t, err)

	h := reg.RegisterImage(img, false, driver.Layout(layoutUndefined), nil)
	res, ok := reg.Lookup(h)
	require.True(t, ok)
	require.Equal(t, KindImage, res.Kind)

	reg.SetLayout(h, driver.Layout(layoutColorAttachment))
	res, _ = reg.Lookup(h)
	require.Equal(t, driver.Layout(layoutColorAttachment), res.Layout)

	reg.Release(h)
	_, ok = reg.Lookup(h)
	require.False(t, ok)
}
