// Package framegraph implements a Vulkan render framegraph: given an
// unordered, per-frame declaration of rendering work (passes) it produces
// a correctly ordered, synchronized GPU command stream.
//
// A typical frame looks like:
//
//	fg := framegraph.New(gpu, nil) // nil selects DefaultConfig
//	frame := fg.Start(descPool)
//	g := frame.AddGraphics(framegraph.GraphicsDesc{ ... })
//	p := frame.AddPresent("present", swapImage)
//	frame.MarkRoot(p)
//	frame.End(ctx, cb)
//
// End runs the compile, link and execute stages in sequence: the
// Compiler orders the declared passes into a DAG and prunes anything
// unreachable from the root, the Linker computes the exact memory
// barriers the ordering requires, and the Executor records renderpass,
// pipeline, descriptor and barrier commands into the supplied command
// buffer.
//
// A caller that wants GPU timing brackets the ring slot it is about
// to record into with fg.Profiler.BeginFrame(slot.PresentFence) before
// building the Frame and fg.Profiler.EndFrame() after submitting it,
// then reads back an earlier slot's spans with
// fg.Profiler.Resolve(slotsAgo) once that slot's fence is known
// signaled (FrameObjects.Acquire already waits on it).
package framegraph
