package framegraph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkforge/framegraph/driver"
	"github.com/vkforge/framegraph/internal/fakedriver"
)

// An image binding against a resource registered with a sampler
// resolves to a COMBINED_IMAGE_SAMPLER descriptor; one registered
// without a sampler resolves to STORAGE_IMAGE (spec §4.6).
func TestDescriptorResolverSamplerSelectsType(t *testing.T) {
	gpu := fakedriver.Open()
	reg := NewResourceRegistry()

	sampler, err := gpu.NewSampler(&driver.Sampling{})
	require.NoError(t, err)

	sampledImg, err := gpu.NewImage(driver.PixelFmt(37), driver.Dim3D{Width: 8, Height: 8, Depth: 1}, 1, 1, driver.Samples(1), 0, false)
	require.NoError(t, err)
	sampled := reg.RegisterImage(sampledImg, false, driver.Layout(layoutShaderReadOnly), sampler)

	storageImg, err := gpu.NewImage(driver.PixelFmt(37), driver.Dim3D{Width: 8, Height: 8, Depth: 1}, 1, 1, driver.Samples(1), 0, false)
	require.NoError(t, err)
	storage := reg.RegisterImage(storageImg, false, driver.Layout(layoutGeneral), nil)

	pool, err := gpu.NewDescriptorPool(8, nil)
	require.NoError(t, err)
	sets, err := pool.Allocate([]driver.DescriptorSetLayout{&fakedriver.DescriptorSetLayout{}})
	require.NoError(t, err)

	samplerFor := func(h Handle) driver.Sampler {
		res, ok := reg.Lookup(h)
		if !ok {
			return nil
		}
		return res.Sampler
	}

	dr := &DescriptorResolver{Registry: reg}
	dr.Resolve(gpu, sets, []Binding{
		ImageBinding(sampled, 0, 0, driver.Stage(fragmentShader), driver.Access(shaderRead), driver.Layout(layoutShaderReadOnly)),
		ImageBinding(storage, 0, 1, driver.Stage(computeShader), driver.Access(shaderWrite), driver.Layout(layoutGeneral)),
	}, samplerFor)

	fake := sets[0].(*fakedriver.DescriptorSet)
	require.Len(t, fake.Writes, 2)
	require.Equal(t, driver.DescType(descCombinedImageSampler), fake.Writes[0].Type)
	require.NotNil(t, fake.Writes[0].Sampler)
	require.Equal(t, driver.DescType(descStorageImage), fake.Writes[1].Type)
	require.Nil(t, fake.Writes[1].Sampler)
}
