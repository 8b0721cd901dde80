package framegraph

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vkforge/framegraph/driver"
)

// pipelineKey is the xxhash digest of a PipelineDesc (spec §4.5: "a
// hash of the pipeline description").
type pipelineKey uint64

func hashPipelineDesc(d *PipelineDesc, pass driver.RenderPass, subpass int) pipelineKey {
	var h xxhash.Digest
	h.Reset()
	h.WriteString(d.VertShader)
	h.WriteString("\x00")
	h.WriteString(d.FragShader)
	h.WriteString("\x00")
	h.WriteString(d.CompShader)
	h.WriteString("\x00")
	for _, v := range d.Input {
		h.Write([]byte{byte(v.Format), byte(v.Stride), byte(v.Nr)})
	}
	h.Write([]byte{byte(d.Raster), byte(d.DS), byte(d.Blend)})
	for _, dy := range d.Dynamic {
		h.WriteString(dy)
	}
	// The pipeline is only compatible with a renderpass of a
	// matching attachment signature; fold the pass identity in so
	// two passes that happen to hash the same shaders/state but use
	// different renderpasses never collide.
	h.WriteString(renderPassIdentity(pass))
	h.Write([]byte{byte(subpass)})
	return pipelineKey(h.Sum64())
}

func renderPassIdentity(pass driver.RenderPass) string {
	type stringer interface{ String() string }
	if pass == nil {
		return ""
	}
	if s, ok := pass.(stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T@%p", pass, pass)
}

// PipelineCache lazily creates and caches graphics/compute pipelines,
// keyed by a hash of their PipelineDesc (spec §4.5).
type PipelineCache struct {
	gpu     driver.GPU
	shaders *ShaderCache

	mu    sync.Mutex
	cache *lru.Cache[pipelineKey, driver.Pipeline]
}

// NewPipelineCache creates a cache bounded to size entries, loading
// shaders from shaders.
func NewPipelineCache(gpu driver.GPU, shaders *ShaderCache, size int) *PipelineCache {
	c, err := lru.New[pipelineKey, driver.Pipeline](size)
	if err != nil {
		panic(newCacheErr("invalid pipeline cache size"))
	}
	return &PipelineCache{gpu: gpu, shaders: shaders, cache: c}
}

// GetGraphics returns the cached graphics pipeline for desc/pass/
// subpass, creating and inserting one if absent.
func (pc *PipelineCache) GetGraphics(desc *PipelineDesc, pass driver.RenderPass, subpass int) driver.Pipeline {
	key := hashPipelineDesc(desc, pass, subpass)

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if p, ok := pc.cache.Get(key); ok {
		return p
	}

	vert := pc.shaders.Load(pc.gpu, desc.VertShader, false)
	frag := pc.shaders.Load(pc.gpu, desc.FragShader, false)

	state := &driver.GraphicsState{
		VertFunc: driver.ShaderFunc{Module: vert.module, Entry: "main"},
		FragFunc: driver.ShaderFunc{Module: frag.module, Entry: "main"},
		Layout:   vert.pipeline,
		Input:    desc.Input,
		Raster:   desc.Raster,
		DS:       desc.DS,
		Blend:    desc.Blend,
		Pass:     pass,
		Subpass:  subpass,
	}
	p, err := pc.gpu.NewGraphicsPipeline(state)
	if err != nil {
		panic(newCacheErr("graphics pipeline creation failed: " + err.Error()))
	}
	pc.cache.Add(key, p)
	return p
}

// GetCompute returns the cached compute pipeline for desc, creating
// and inserting one if absent.
func (pc *PipelineCache) GetCompute(desc *PipelineDesc) driver.Pipeline {
	key := hashPipelineDesc(desc, nil, 0)

	pc.mu.Lock()
	defer pc.mu.Unlock()
	if p, ok := pc.cache.Get(key); ok {
		return p
	}

	comp := pc.shaders.Load(pc.gpu, desc.CompShader, true)
	state := &driver.ComputeState{
		Func:   driver.ShaderFunc{Module: comp.module, Entry: "main"},
		Layout: comp.pipeline,
	}
	p, err := pc.gpu.NewComputePipeline(state)
	if err != nil {
		panic(newCacheErr("compute pipeline creation failed: " + err.Error()))
	}
	pc.cache.Add(key, p)
	return p
}

// LayoutFor returns the pipeline layout a shader-derived descriptor
// set layout belongs to, so the Executor can bind descriptor sets
// against the layout of the bound pipeline.
func (pc *PipelineCache) LayoutFor(shader string, compute bool) driver.PipelineLayout {
	return pc.shaders.Load(pc.gpu, shader, compute).pipeline
}
