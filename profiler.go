package framegraph

import (
	"sync"
	"time"

	"github.com/vkforge/framegraph/driver"
)

// maxSpansPerFrame bounds how many Begin/End pairs one frame's query
// pool can hold; each span consumes two query slots.
const maxSpansPerFrame = 64

// Span identifies an open Begin/End bracket returned by
// Profiler.Begin, to be passed back to Profiler.End.
type Span struct {
	name  string
	start int
}

// Result is a resolved GPU timing span.
type Result struct {
	Name     string
	Duration time.Duration
}

type profilerSlot struct {
	pool    driver.QueryPool
	names   [maxSpansPerFrame]string
	nextIdx int
	fence   driver.Fence
}

// Profiler is a per-frame ring of GPU timestamp query pools: it
// opens/closes named spans around GPU work and resolves them into
// CPU-readable durations once the owning frame's fence has signaled
// (SPEC_FULL.md §C, grounded in the original's `profiling` crate).
type Profiler struct {
	gpu     driver.GPU
	period  float64
	mu      sync.Mutex
	slots   []profilerSlot
	idx     int
}

// NewProfiler creates a profiler with n ring slots, one query pool
// per slot sized for maxSpansPerFrame spans.
func NewProfiler(gpu driver.GPU, n int) *Profiler {
	if n < MinFrameRing {
		n = MinFrameRing
	}
	p := &Profiler{gpu: gpu, period: gpu.Limits().TimestampPeriod, slots: make([]profilerSlot, n)}
	for i := range p.slots {
		pool, err := gpu.NewQueryPool(maxSpansPerFrame * 2)
		if err != nil {
			panic(newExecErr("query pool creation failed: " + err.Error()))
		}
		p.slots[i].pool = pool
	}
	return p
}

// Begin writes a start timestamp for name into the current ring
// slot's query pool and returns a Span to close later with End.
func (p *Profiler) Begin(cb driver.CmdBuffer, name string) Span {
	p.mu.Lock()
	s := &p.slots[p.idx]
	idx := s.nextIdx
	s.nextIdx += 2
	if idx+1 >= len(s.names)*2 {
		p.mu.Unlock()
		panic(newExecErr("profiler: too many spans in one frame"))
	}
	s.names[idx/2] = name
	p.mu.Unlock()

	cb.WriteTimestamp(s.pool, idx, driver.Stage(topOfPipe))
	return Span{name: name, start: idx}
}

// End writes the closing timestamp for span.
func (p *Profiler) End(cb driver.CmdBuffer, span Span) {
	cb.WriteTimestamp(p.currentPool(), span.start+1, driver.Stage(bottomOfPipe))
}

func (p *Profiler) currentPool() driver.QueryPool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[p.idx].pool
}

// BeginFrame associates fence with the current ring slot, so Resolve
// knows when it is safe to read back results, and resets its query
// pool for reuse.
func (p *Profiler) BeginFrame(fence driver.Fence) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := &p.slots[p.idx]
	s.fence = fence
	s.nextIdx = 0
	s.pool.Reset(0, maxSpansPerFrame*2)
}

// EndFrame advances the ring index modulo its length.
func (p *Profiler) EndFrame() {
	p.mu.Lock()
	p.idx = (p.idx + 1) % len(p.slots)
	p.mu.Unlock()
}

// Resolve reads back every span recorded into the ring slot that is
// slotsAgo slots behind the current one, blocking until that slot's
// fence has signaled (spec §5: "optional GPU timestamp retrieval
// (WAIT flag) when flushing a profiling frame").
func (p *Profiler) Resolve(slotsAgo int) []Result {
	p.mu.Lock()
	i := (p.idx - slotsAgo + len(p.slots)) % len(p.slots)
	s := &p.slots[i]
	pool, fence, n := s.pool, s.fence, s.nextIdx/2
	names := s.names
	p.mu.Unlock()

	if fence != nil {
		if err := fence.Wait(0); err != nil {
			panic(newExecErr("profiler: fence wait failed: " + err.Error()))
		}
	}

	raw := make([]uint64, n*2)
	if err := pool.Results(0, n*2, raw); err != nil {
		panic(newExecErr("profiler: query readback failed: " + err.Error()))
	}

	results := make([]Result, n)
	for i := 0; i < n; i++ {
		ticks := raw[i*2+1] - raw[i*2]
		results[i] = Result{Name: names[i], Duration: time.Duration(float64(ticks) * p.period)}
	}
	return results
}
