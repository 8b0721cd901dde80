package driver

// CmdBuffer is the interface that defines a command buffer.
// Commands are recorded into command buffers and later submitted
// to the GPU for execution. Usage is:
//
//	1. call Begin
//	2. call BeginRenderPass/EndRenderPass, Barrier, Dispatch, Copy*,
//	   Draw* and Bind*/Set* as needed, any number of times
//	3. call End
//	4. call GPU.Submit
//
// New recordings are not allowed until the command buffer has
// either finished executing or been reset.
type CmdBuffer interface {
	Destroyer

	// Begin prepares the command buffer for recording.
	Begin() error

	// End ends command recording and prepares the command
	// buffer for submission.
	End() error

	// Reset discards all recorded commands.
	Reset() error

	// BeginRenderPass begins a render pass instance.
	BeginRenderPass(pass RenderPass, fb Framebuffer, clear []ClearValue)

	// EndRenderPass ends the current render pass instance.
	EndRenderPass()

	// BindPipeline binds a pipeline at its associated bind point.
	BindPipeline(p Pipeline, bindPoint PipelineBindPoint)

	// BindDescriptorSets binds a contiguous range of descriptor
	// sets starting at set index start.
	BindDescriptorSets(layout PipelineLayout, bindPoint PipelineBindPoint, start int, sets []DescriptorSet)

	// SetViewport sets the bounds of one or more viewports.
	SetViewport(vp []Viewport)

	// SetScissor sets the rectangles of one or more viewport
	// scissors.
	SetScissor(sciss []Scissor)

	// Draw draws primitives.
	Draw(vertCount, instCount, baseVert, baseInst int)

	// DrawIndexed draws indexed primitives.
	DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int)

	// Dispatch dispatches compute work groups.
	Dispatch(groupCountX, groupCountY, groupCountZ int)

	// CopyBuffer copies data between buffers.
	CopyBuffer(src Buffer, srcOff int64, dst Buffer, dstOff int64, size int64)

	// CopyImage copies data between images.
	CopyImage(src Image, srcOff Off3D, dst Image, dstOff Off3D, size Dim3D)

	// Barrier inserts a pipeline barrier with zero or more
	// global, image and buffer barriers.
	Barrier(global []Barrier, images []ImageBarrier, buffers []BufferBarrier)

	// WriteTimestamp writes a GPU timestamp into query slot
	// index of pool, after every command preceding it in the
	// command buffer completes execution up to stage.
	WriteTimestamp(pool QueryPool, index int, stage Stage)

	// PushDebugLabel pushes a debug label onto the command
	// buffer's label stack, for capture in GPU debuggers. It is
	// a no-op when the debug layer is disabled.
	PushDebugLabel(name string)

	// PopDebugLabel pops the most recently pushed debug label.
	PopDebugLabel()
}
