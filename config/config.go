// Package config defines the benchmark's configuration record and its
// YAML (de)serialization.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sraesch/raycasting-occlusion/occerr"
)

// RasterizerOptions configures the rasterizer engine.
type RasterizerOptions struct {
	FrameSize int `yaml:"frame_size"`
}

// NaiveRaycasterOptions configures the naive raycaster engine.
type NaiveRaycasterOptions struct {
	FrameSize int `yaml:"frame_size"`
}

// Setup is a tagged union over the two supported engine setups. Exactly
// one of Rasterizer or NaiveRaycaster must be non-nil.
type Setup struct {
	Rasterizer     *RasterizerOptions     `yaml:"rasterizer,omitempty"`
	NaiveRaycaster *NaiveRaycasterOptions `yaml:"naive_raycaster,omitempty"`
}

// Kind returns a short identifier for whichever variant is set, or ""
// if neither is set.
func (s Setup) Kind() string {
	switch {
	case s.Rasterizer != nil:
		return "rasterizer"
	case s.NaiveRaycaster != nil:
		return "naive_raycaster"
	default:
		return ""
	}
}

// View is one view/projection matrix pair to test every setup against.
type View struct {
	ViewMatrix       [16]float32 `yaml:"view_matrix"`
	ProjectionMatrix [16]float32 `yaml:"projection_matrix"`
}

// TestConfig is the full benchmark configuration.
type TestConfig struct {
	Setups      []Setup  `yaml:"setups"`
	Input       []string `yaml:"input"`
	Views       []View   `yaml:"views"`
	WriteFrames bool     `yaml:"write_frames"`
	NumThreads  int      `yaml:"num_threads"`
	FrameSize   int      `yaml:"frame_size"`
}

// DefaultNumThreads matches the benchmark's default of running the
// raycaster single-threaded unless configured otherwise.
const DefaultNumThreads = 1

// DefaultFrameSize is the default square frame size used when a setup
// does not override it.
const DefaultFrameSize = 256

// Load reads and parses a TestConfig from a YAML file at path.
func Load(path string) (*TestConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening config %s: %w", occerr.ErrIO, path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a TestConfig from r.
func Read(r io.Reader) (*TestConfig, error) {
	var cfg TestConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding config: %w", occerr.ErrDeserialization, err)
	}
	if cfg.NumThreads == 0 {
		cfg.NumThreads = DefaultNumThreads
	}
	if cfg.FrameSize == 0 {
		cfg.FrameSize = DefaultFrameSize
	}
	return &cfg, nil
}

// Write serializes cfg as YAML to w.
func Write(w io.Writer, cfg *TestConfig) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("%w: encoding config: %w", occerr.ErrSerialization, err)
	}
	return nil
}
