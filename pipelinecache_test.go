package framegraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkforge/framegraph/driver"
	"github.com/vkforge/framegraph/internal/fakedriver"
)

func writeFakeShader(t *testing.T, dir, name string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name+".spv"), []byte("\x03\x02\x23\x07fake-spirv"), 0o644)
	require.NoError(t, err)
}

// Two GetGraphics calls with the same PipelineDesc, renderpass and
// subpass return the same pipeline object rather than building a
// second one (testable property 8: cache idempotence).
func TestPipelineCacheIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFakeShader(t, dir, "vert")
	writeFakeShader(t, dir, "frag")

	gpu := fakedriver.Open()
	shaders := NewShaderCache(dir)
	t.Cleanup(shaders.Close)
	pc := NewPipelineCache(gpu, shaders, 8)

	desc := &PipelineDesc{VertShader: "vert", FragShader: "frag"}
	p1 := pc.GetGraphics(desc, nil, 0)
	p2 := pc.GetGraphics(desc, nil, 0)
	require.Same(t, p1, p2)
}

// A different PipelineDesc misses the cache and yields a distinct
// pipeline even when the shaders are otherwise identical.
func TestPipelineCacheDistinctDesc(t *testing.T) {
	dir := t.TempDir()
	writeFakeShader(t, dir, "vert")
	writeFakeShader(t, dir, "frag")

	gpu := fakedriver.Open()
	shaders := NewShaderCache(dir)
	t.Cleanup(shaders.Close)
	pc := NewPipelineCache(gpu, shaders, 8)

	p1 := pc.GetGraphics(&PipelineDesc{VertShader: "vert", FragShader: "frag"}, nil, 0)
	p2 := pc.GetGraphics(&PipelineDesc{VertShader: "vert", FragShader: "frag", Blend: driver.BlendAlpha}, nil, 0)
	require.NotSame(t, p1, p2)
}

// Compute pipelines cache the same way, keyed separately from
// graphics pipelines since hashPipelineDesc folds the renderpass
// identity (nil for compute) into the digest.
func TestPipelineCacheComputeIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFakeShader(t, dir, "comp")

	gpu := fakedriver.Open()
	shaders := NewShaderCache(dir)
	t.Cleanup(shaders.Close)
	pc := NewPipelineCache(gpu, shaders, 8)

	desc := &PipelineDesc{CompShader: "comp"}
	p1 := pc.GetCompute(desc)
	p2 := pc.GetCompute(desc)
	require.Same(t, p1, p2)
}
