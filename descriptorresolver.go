package framegraph

import "github.com/vkforge/framegraph/driver"

// DescriptorResolver translates a pass's declared bindings into
// Vulkan descriptor writes against the pass's allocated descriptor
// sets (spec §4.6), batching every write into a single update call
// rather than one per binding (SPEC_FULL.md §C, following
// `vulkan_descriptors.rs`).
type DescriptorResolver struct {
	Registry *ResourceRegistry
}

// Resolve builds the descriptor write list for bindings against
// sets, and immediately issues it as one batched update through gpu.
// samplerFor supplies the sampler for image bindings that declare
// one; a nil return means the binding is a storage image.
func (dr *DescriptorResolver) Resolve(gpu driver.GPU, sets []driver.DescriptorSet, bindings []Binding, samplerFor func(Handle) driver.Sampler) {
	writes := make([]driver.DescriptorWrite, 0, len(bindings))
	for _, b := range bindings {
		set := pickSet(sets, b.Set)
		if set == nil {
			panic(newBindingErr("binding references out-of-range descriptor set"))
		}
		res, ok := dr.Registry.Lookup(b.Handle)
		if !ok {
			panic(newBindingErr("binding references unknown resource handle"))
		}
		switch b.Kind {
		case BindImage:
			view, err := res.Image.NewView(driver.FullRange(driver.AspectForFormat(res.Format)))
			if err != nil {
				panic(newBindingErr("image view creation failed: " + err.Error()))
			}
			sampler := samplerFor(b.Handle)
			typ := driver.DescType(descStorageImage)
			if sampler != nil {
				typ = driver.DescType(descCombinedImageSampler)
			}
			writes = append(writes, driver.DescriptorWrite{
				Set: set, Binding: b.Slot, Type: typ,
				View: view, Layout: b.Layout, Sampler: sampler,
			})
		case BindBuffer:
			rng := b.Range
			if rng == 0 {
				rng = res.Buffer.Cap() - b.Offset
			}
			writes = append(writes, driver.DescriptorWrite{
				Set: set, Binding: b.Slot, Type: driver.DescType(descUniformBuffer),
				Buffer: res.Buffer, Offset: b.Offset, Range: rng,
			})
		}
	}
	if len(writes) > 0 {
		gpu.UpdateDescriptorSets(writes)
	}
}

func pickSet(sets []driver.DescriptorSet, n int) driver.DescriptorSet {
	if n < 0 || n >= len(sets) {
		return nil
	}
	return sets[n]
}
