package framegraph

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vkforge/framegraph/driver"
)

// attachmentSig is the attachment signature the original
// (`renderpass_contract.rs`, SPEC_FULL.md §C) keys renderpasses on.
// This repo keys the cache by pass name and signature together, so
// the same name with a different attachment signature gets its own
// renderpass, and differently named passes never share one. See
// DESIGN.md.
type attachmentSig struct {
	color [8]driver.PixelFmt
	ncolor int
	depth  driver.PixelFmt
	hasDepth bool
	samples driver.Samples
}

func signatureOf(color []AttachmentRef, depth *AttachmentRef) attachmentSig {
	var sig attachmentSig
	for i, c := range color {
		if i >= len(sig.color) {
			break
		}
		sig.color[i] = c.Format
		sig.samples = c.Samples
	}
	sig.ncolor = len(color)
	if depth != nil {
		sig.hasDepth = true
		sig.depth = depth.Format
		sig.samples = depth.Samples
	}
	return sig
}

type rpKey struct {
	name string
	sig  attachmentSig
}

// RenderpassCache derives a Vulkan renderpass from a pass's
// color/depth attachment descriptors and caches the result, keyed by
// pass name together with the attachment signature (spec §4.4).
type RenderpassCache struct {
	mu    sync.Mutex
	cache *lru.Cache[rpKey, driver.RenderPass]
}

// NewRenderpassCache creates a cache bounded to size entries.
func NewRenderpassCache(size int) *RenderpassCache {
	c, err := lru.New[rpKey, driver.RenderPass](size)
	if err != nil {
		panic(newCacheErr("invalid renderpass cache size"))
	}
	return &RenderpassCache{cache: c}
}

// Get returns the cached renderpass for name/color/depth, creating
// and inserting one via gpu if absent.
func (rc *RenderpassCache) Get(gpu driver.GPU, name string, color []AttachmentRef, depth *AttachmentRef) driver.RenderPass {
	sig := signatureOf(color, depth)
	key := rpKey{name: name, sig: sig}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rp, ok := rc.cache.Get(key); ok {
		return rp
	}

	atts := make([]driver.AttachmentDesc, 0, len(color)+1)
	subColor := make([]int, 0, len(color))
	subDepth := -1
	for i, c := range color {
		atts = append(atts, driver.AttachmentDesc{
			Format:        c.Format,
			Samples:       c.Samples,
			Load:          driver.LoadOp(attachLoadClear),
			Store:         driver.StoreOp(attachStoreStore),
			InitialLayout: c.Layout,
			FinalLayout:   c.Layout,
		})
		subColor = append(subColor, i)
	}
	if depth != nil {
		subDepth = len(atts)
		atts = append(atts, driver.AttachmentDesc{
			Format:        depth.Format,
			Samples:       depth.Samples,
			Load:          driver.LoadOp(attachLoadClear),
			Store:         driver.StoreOp(attachStoreStore),
			InitialLayout: depth.Layout,
			FinalLayout:   depth.Layout,
		})
	}
	sub := []driver.SubpassDesc{{Color: subColor, DepthStencil: subDepth}}

	// spec §4.4: "a subpass dependency src=0,dst=EXTERNAL is added
	// with TOP_OF_PIPE -> COLOR_ATTACHMENT_OUTPUT, NONE -> MEMORY_WRITE".
	dep := []driver.SubpassDependency{{
		Src: 0, Dst: driver.ExternalSubpass,
		SrcStage: driver.Stage(topOfPipe), DstStage: driver.Stage(colorAttachmentOutput),
		SrcAccess: driver.Access(accessNone), DstAccess: driver.Access(memoryWrite),
	}}

	rp, err := gpu.NewRenderPass(atts, sub, dep)
	if err != nil {
		panic(newCacheErr("renderpass creation failed: " + err.Error()))
	}
	rc.cache.Add(key, rp)
	return rp
}
