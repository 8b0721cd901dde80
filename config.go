package framegraph

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	// MinFrameRing is the minimum number of slots FrameObjects may
	// be configured with (spec §4.8: "N = swapchain image count,
	// bounded below by 2").
	MinFrameRing = 2

	dflFrameRing        = 3
	dflRenderpassCache  = 256
	dflPipelineCache    = 512
	dflDescriptorSets   = 4096
	dflClearR           = 0.0
	dflClearG           = 0.0
	dflClearB           = 0.0
	dflClearA           = 1.0
)

// Config configures the framegraph's process-wide caches and frame
// ring. Most deployments never need to touch it; it exists so cache
// capacities and frame ring depth are configurable per deployment
// rather than fixed Go constants.
type Config struct {
	// FrameRing is the number of in-flight frame slots.
	//
	// Default is 3. Must be >= MinFrameRing.
	FrameRing int

	// RenderpassCacheSize bounds the number of cached renderpass
	// objects.
	//
	// Default is 256.
	RenderpassCacheSize int

	// PipelineCacheSize bounds the number of cached pipeline
	// objects.
	//
	// Default is 512.
	PipelineCacheSize int

	// MaxDescriptorSets is a per-frame descriptor pool size
	// setting. Nothing in this package reads it; NewFrameObjects
	// takes its pool size as an explicit argument.
	//
	// Default is 4096.
	MaxDescriptorSets int

	// DefaultClearColor is the clear value of every color
	// attachment; a pass cannot supply its own. The Executor reads
	// it from the package configuration set by Configure, not from
	// the Config passed to New.
	//
	// Default is opaque black.
	DefaultClearColor [4]float32

	// ShaderDir overrides the SHADER_DIR environment variable
	// (spec §6) for locating compiled SPIR-V blobs.
	ShaderDir string

	// DebugLayer records whether the debug layer is wanted. Nothing
	// in this package reads it: the Executor always pushes debug
	// labels, and whether they take effect is up to the driver.
	DebugLayer bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FrameRing:           dflFrameRing,
		RenderpassCacheSize: dflRenderpassCache,
		PipelineCacheSize:   dflPipelineCache,
		MaxDescriptorSets:   dflDescriptorSets,
		DefaultClearColor:   [4]float32{dflClearR, dflClearG, dflClearB, dflClearA},
		ShaderDir:           os.Getenv("SHADER_DIR"),
	}
}

var cfg = DefaultConfig()

// Configure replaces the package's configuration with config.
func Configure(config *Config) {
	if config.FrameRing < MinFrameRing {
		config.FrameRing = MinFrameRing
	}
	cfg = *config
}

// LoadConfigFile reads overrides from a TOML file and applies them on
// top of DefaultConfig. Fields absent from the file keep their
// default value.
func LoadConfigFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c := DefaultConfig()
	if err := toml.Unmarshal(b, &c); err != nil {
		return err
	}
	Configure(&c)
	return nil
}
