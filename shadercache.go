package framegraph

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/vkforge/framegraph/driver"
)

// parseBindingManifest parses "number count type" lines (type is one
// of "image", "storage-image" or "buffer") into driver.Binding
// values, all sharing stage.
func parseBindingManifest(b []byte, stage driver.ShaderStage) []driver.Binding {
	var out []driver.Binding
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 3 {
			continue
		}
		num, err1 := strconv.Atoi(fields[0])
		cnt, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			continue
		}
		var typ driver.DescType
		switch fields[2] {
		case "image":
			typ = driver.DescType(descCombinedImageSampler)
		case "storage-image":
			typ = driver.DescType(descStorageImage)
		case "buffer":
			typ = driver.DescType(descUniformBuffer)
		default:
			continue
		}
		out = append(out, driver.Binding{Number: num, Type: typ, Count: cnt, Stages: stage})
	}
	return out
}

// reflected is the simplified "SPIR-V reflection" result the spec
// §4.5 describes the ShaderCache producing: descriptor set layout
// bindings and the stage flags they apply at. A real SPIR-V parser
// is out of scope (Non-goals: "shader compilation"); shaders are
// expected to ship a sidecar ".bindings" manifest next to their
// ".spv" blob, produced by the application's shader build step.
type reflected struct {
	bindings []driver.Binding
	compute  bool
}

type shaderEntry struct {
	module   driver.ShaderModule
	layout   driver.DescriptorSetLayout
	pipeline driver.PipelineLayout
	refl     reflected
}

// ShaderCache loads SPIR-V blobs by name from dir (spec §6's
// SHADER_DIR), builds their descriptor set/pipeline layouts, and
// watches dir for rewrites so an application iterating on shaders
// does not need to restart (SPEC_FULL.md §B).
type ShaderCache struct {
	dir string
	mu  sync.Mutex
	m   map[string]*shaderEntry

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewShaderCache creates a cache rooted at dir. If dir is empty or
// cannot be watched, hot reload is simply disabled; shaders are
// still loaded on demand.
func NewShaderCache(dir string) *ShaderCache {
	sc := &ShaderCache{dir: dir, m: make(map[string]*shaderEntry)}
	if dir == "" {
		return sc
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("shader cache: hot reload disabled", "err", err)
		return sc
	}
	if err := w.Add(dir); err != nil {
		log.Warn("shader cache: cannot watch SHADER_DIR", "dir", dir, "err", err)
		w.Close()
		return sc
	}
	sc.watcher = w
	sc.done = make(chan struct{})
	go sc.watch()
	return sc
}

func (sc *ShaderCache) watch() {
	for {
		select {
		case ev, ok := <-sc.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				name := shaderName(ev.Name)
				sc.mu.Lock()
				delete(sc.m, name)
				sc.mu.Unlock()
				log.Info("shader cache: invalidated", "shader", name)
			}
		case err, ok := <-sc.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("shader cache: watch error", "err", err)
		case <-sc.done:
			return
		}
	}
}

func shaderName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// Close stops the background watcher, if any.
func (sc *ShaderCache) Close() {
	if sc.watcher != nil {
		close(sc.done)
		sc.watcher.Close()
	}
}

// Load returns the cached module/layouts for shader name, reading
// and reflecting its SPIR-V blob from disk on first use.
func (sc *ShaderCache) Load(gpu driver.GPU, name string, compute bool) *shaderEntry {
	sc.mu.Lock()
	if e, ok := sc.m[name]; ok {
		sc.mu.Unlock()
		return e
	}
	sc.mu.Unlock()

	spirv, err := os.ReadFile(filepath.Join(sc.dir, name+".spv"))
	if err != nil {
		panic(newCacheErr("shader cache: " + err.Error()))
	}
	refl := reflectBindings(sc.dir, name, compute)

	mod, err := gpu.NewShaderModule(spirv)
	if err != nil {
		panic(newCacheErr("shader module creation failed: " + err.Error()))
	}
	setLayout, err := gpu.NewDescriptorSetLayout(refl.bindings)
	if err != nil {
		panic(newCacheErr("descriptor set layout creation failed: " + err.Error()))
	}
	layout, err := gpu.NewPipelineLayout([]driver.DescriptorSetLayout{setLayout})
	if err != nil {
		panic(newCacheErr("pipeline layout creation failed: " + err.Error()))
	}

	e := &shaderEntry{module: mod, layout: setLayout, pipeline: layout, refl: refl}
	sc.mu.Lock()
	sc.m[name] = e
	sc.mu.Unlock()
	return e
}

// reflectBindings is the "reflection" step (spec §4.5): a real
// implementation parses SPIR-V OpDecorate instructions for binding
// number, count and descriptor type; shader compilation itself is a
// Non-goal here, so this reads the sidecar manifest the application's
// build step is expected to emit (name.bindings, one
// "number count type" line per binding) rather than parsing SPIR-V.
func reflectBindings(dir, name string, compute bool) reflected {
	stage := driver.ShaderStage(stageAllGraphics)
	if compute {
		stage = driver.ShaderStage(stageCompute)
	}
	b, err := os.ReadFile(filepath.Join(dir, name+".bindings"))
	if err != nil {
		return reflected{compute: compute}
	}
	return reflected{bindings: parseBindingManifest(b, stage), compute: compute}
}
