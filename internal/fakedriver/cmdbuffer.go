package fakedriver

import (
	"errors"

	"github.com/vkforge/framegraph/driver"
)

type cbStatus int

const (
	cbInitial cbStatus = iota
	cbRecording
	cbEnded
	cbCommitted
)

var (
	errNotEnded     = errors.New("fakedriver: command buffer submitted before End")
	errNotRecording = errors.New("fakedriver: command buffer not recording")
)

// Op records a single recorded command, for test assertions against
// the shape of a compiled command buffer without a real GPU.
type Op struct {
	Name string
	Args []any
}

// CmdBuffer is a fake driver.CmdBuffer. Every recording method
// appends an Op to Ops rather than touching real GPU state, so
// tests can assert on exactly what the executor recorded and in
// what order (including interleaved barriers).
type CmdBuffer struct {
	destroyed
	gpu    *GPU
	status cbStatus
	Ops    []Op
}

func (c *CmdBuffer) record(name string, args ...any) {
	c.Ops = append(c.Ops, Op{Name: name, Args: args})
}

func (c *CmdBuffer) Begin() error {
	if c.status == cbRecording {
		return errNotRecording
	}
	c.status = cbRecording
	c.Ops = c.Ops[:0]
	return nil
}

func (c *CmdBuffer) End() error {
	if c.status != cbRecording {
		return errNotRecording
	}
	c.status = cbEnded
	return nil
}

func (c *CmdBuffer) Reset() error {
	c.status = cbInitial
	c.Ops = nil
	return nil
}

func (c *CmdBuffer) BeginRenderPass(pass driver.RenderPass, fb driver.Framebuffer, clear []driver.ClearValue) {
	c.record("BeginRenderPass", pass, fb, clear)
}

func (c *CmdBuffer) EndRenderPass() { c.record("EndRenderPass") }

func (c *CmdBuffer) BindPipeline(p driver.Pipeline, bindPoint driver.PipelineBindPoint) {
	c.record("BindPipeline", p, bindPoint)
}

func (c *CmdBuffer) BindDescriptorSets(layout driver.PipelineLayout, bindPoint driver.PipelineBindPoint, start int, sets []driver.DescriptorSet) {
	c.record("BindDescriptorSets", layout, bindPoint, start, sets)
}

func (c *CmdBuffer) SetViewport(vp []driver.Viewport) { c.record("SetViewport", vp) }

func (c *CmdBuffer) SetScissor(sciss []driver.Scissor) { c.record("SetScissor", sciss) }

func (c *CmdBuffer) Draw(vertCount, instCount, baseVert, baseInst int) {
	c.record("Draw", vertCount, instCount, baseVert, baseInst)
}

func (c *CmdBuffer) DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) {
	c.record("DrawIndexed", idxCount, instCount, baseIdx, vertOff, baseInst)
}

func (c *CmdBuffer) Dispatch(x, y, z int) { c.record("Dispatch", x, y, z) }

func (c *CmdBuffer) CopyBuffer(src driver.Buffer, srcOff int64, dst driver.Buffer, dstOff int64, size int64) {
	c.record("CopyBuffer", src, srcOff, dst, dstOff, size)
	if fb, ok := src.(*Buffer); ok && fb.visible {
		if tb, ok := dst.(*Buffer); ok && tb.visible {
			copy(tb.data[dstOff:dstOff+size], fb.data[srcOff:srcOff+size])
		}
	}
}

func (c *CmdBuffer) CopyImage(src driver.Image, srcOff driver.Off3D, dst driver.Image, dstOff driver.Off3D, size driver.Dim3D) {
	c.record("CopyImage", src, srcOff, dst, dstOff, size)
}

func (c *CmdBuffer) Barrier(global []driver.Barrier, images []driver.ImageBarrier, buffers []driver.BufferBarrier) {
	c.record("Barrier", global, images, buffers)
}

func (c *CmdBuffer) WriteTimestamp(pool driver.QueryPool, index int, stage driver.Stage) {
	c.record("WriteTimestamp", pool, index, stage)
	if qp, ok := pool.(*QueryPool); ok && index < len(qp.Written) {
		qp.Written[index] = uint64(nextID())
	}
}

func (c *CmdBuffer) PushDebugLabel(name string) { c.record("PushDebugLabel", name) }

func (c *CmdBuffer) PopDebugLabel() { c.record("PopDebugLabel") }
