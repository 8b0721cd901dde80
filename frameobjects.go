package framegraph

import "github.com/vkforge/framegraph/driver"

// frameSlot holds the per-frame GPU objects spec §4.8 groups
// together: command pools/buffers for graphics and compute, an
// immediate single-use graphics command buffer, a capped descriptor
// pool, a present fence and an acquisition semaphore.
type frameSlot struct {
	GraphicsCmd driver.CmdBuffer
	ComputeCmd  driver.CmdBuffer
	ImmediateCmd driver.CmdBuffer

	DescPool driver.DescriptorPool

	PresentFence   driver.Fence
	AcquireSem     driver.Semaphore
}

// FrameObjects is a ring of N frameSlots, N bounded below by
// MinFrameRing (spec §4.8). The ring index advances modulo N at
// EndFrame.
type FrameObjects struct {
	slots []frameSlot
	idx   int
}

// NewFrameObjects creates a ring of n slots, each populated from gpu.
// maxDescSets bounds each slot's descriptor pool.
func NewFrameObjects(gpu driver.GPU, n, maxDescSets int) *FrameObjects {
	if n < MinFrameRing {
		n = MinFrameRing
	}
	fo := &FrameObjects{slots: make([]frameSlot, n)}
	for i := range fo.slots {
		fo.slots[i] = newFrameSlot(gpu, maxDescSets)
	}
	return fo
}

func newFrameSlot(gpu driver.GPU, maxDescSets int) frameSlot {
	gfx, err := gpu.NewCmdBuffer()
	if err != nil {
		panic(newExecErr("graphics command buffer creation failed: " + err.Error()))
	}
	comp, err := gpu.NewCmdBuffer()
	if err != nil {
		panic(newExecErr("compute command buffer creation failed: " + err.Error()))
	}
	imm, err := gpu.NewCmdBuffer()
	if err != nil {
		panic(newExecErr("immediate command buffer creation failed: " + err.Error()))
	}
	pool, err := gpu.NewDescriptorPool(maxDescSets, []driver.PoolSize{
		{Type: driver.DescType(descCombinedImageSampler), Count: maxDescSets},
		{Type: driver.DescType(descStorageImage), Count: maxDescSets},
		{Type: driver.DescType(descUniformBuffer), Count: maxDescSets},
	})
	if err != nil {
		panic(newExecErr("descriptor pool creation failed: " + err.Error()))
	}
	fence, err := gpu.NewFence(true)
	if err != nil {
		panic(newExecErr("fence creation failed: " + err.Error()))
	}
	sem, err := gpu.NewSemaphore()
	if err != nil {
		panic(newExecErr("semaphore creation failed: " + err.Error()))
	}
	return frameSlot{
		GraphicsCmd: gfx, ComputeCmd: comp, ImmediateCmd: imm,
		DescPool: pool, PresentFence: fence, AcquireSem: sem,
	}
}

// Current returns the active ring slot.
func (fo *FrameObjects) Current() *frameSlot { return &fo.slots[fo.idx] }

// Acquire waits for the current slot's present fence (the previous
// occupant of this slot must have finished), then resets it for
// reuse: its command buffers, descriptor pool.
func (fo *FrameObjects) Acquire() *frameSlot {
	s := &fo.slots[fo.idx]
	if err := s.PresentFence.Wait(0); err != nil {
		panic(newExecErr("present fence wait failed: " + err.Error()))
	}
	if err := s.PresentFence.Reset(); err != nil {
		panic(newExecErr("present fence reset failed: " + err.Error()))
	}
	if err := s.GraphicsCmd.Reset(); err != nil {
		panic(newExecErr("graphics command buffer reset failed: " + err.Error()))
	}
	if err := s.ComputeCmd.Reset(); err != nil {
		panic(newExecErr("compute command buffer reset failed: " + err.Error()))
	}
	if err := s.DescPool.Reset(); err != nil {
		panic(newExecErr("descriptor pool reset failed: " + err.Error()))
	}
	return s
}

// EndFrame advances the ring index modulo its length.
func (fo *FrameObjects) EndFrame() {
	fo.idx = (fo.idx + 1) % len(fo.slots)
}
