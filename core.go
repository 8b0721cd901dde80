package framegraph

import "github.com/vkforge/framegraph/driver"

// FrameGraph is the process-wide, shared state a series of Frames
// draws on: the resource registry, the device handle, and the
// renderpass/pipeline/shader caches. The registry and each cache
// are guarded by a mutex of their own rather than one coarse lock,
// so unrelated cache lookups never contend. The GPU handle is not
// guarded by any lock here.
type FrameGraph struct {
	GPU      driver.GPU
	Registry *ResourceRegistry
	Profiler *Profiler

	passCaches *PassCaches
}

// New creates a FrameGraph bound to gpu, sized per config.
func New(gpu driver.GPU, config *Config) *FrameGraph {
	if config == nil {
		c := DefaultConfig()
		config = &c
	}
	shaders := NewShaderCache(config.ShaderDir)
	return &FrameGraph{
		GPU:      gpu,
		Registry: NewResourceRegistry(),
		Profiler: NewProfiler(gpu, config.FrameRing),
		passCaches: &PassCaches{
			Renderpasses: NewRenderpassCache(config.RenderpassCacheSize),
			Pipelines:    NewPipelineCache(gpu, shaders, config.PipelineCacheSize),
			Shaders:      shaders,
		},
	}
}

// Close releases the FrameGraph's process-wide caches.
func (fg *FrameGraph) Close() {
	fg.passCaches.Shaders.Close()
}

// PassCaches bundles the three caches the Executor consults once per
// pass (spec §4.4/§4.5): RenderpassCache, PipelineCache, and the
// ShaderCache the PipelineCache loads shader modules from.
type PassCaches struct {
	Renderpasses *RenderpassCache
	Pipelines    *PipelineCache
	Shaders      *ShaderCache
}

// RasterState selects a fixed-function rasterization preset (spec
// §4.5).
type RasterState = driver.RasterState

// DSState selects a fixed-function depth/stencil preset.
type DSState = driver.DSState

// BlendState selects a fixed-function blend preset.
type BlendState = driver.BlendState

// VertexLayout describes one vertex input binding.
type VertexLayout = driver.VertexIn

// PipelineDesc is the hashable key a pass uses to request a pipeline
// from the PipelineCache (spec §4.5): shaders named by the
// ShaderCache key, plus the fixed-function selectors.
type PipelineDesc struct {
	VertShader string
	FragShader string
	CompShader string

	Input []VertexLayout

	Raster RasterState
	DS     DSState
	Blend  BlendState

	Dynamic []string
}
