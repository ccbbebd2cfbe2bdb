// Package config provides tool configuration with embedded defaults and an
// optional YAML overlay file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the non-flag tunables of the tool.
type Config struct {
	Sampler SamplerConfig `yaml:"sampler"`
	Preview PreviewConfig `yaml:"preview"`
	Voronoi VoronoiConfig `yaml:"voronoi"`
}

// SamplerConfig tunes the Poisson-disk sampler.
type SamplerConfig struct {
	Attempts int `yaml:"attempts"` // candidate budget per active point
}

// PreviewConfig tunes the HTML scatter preview.
type PreviewConfig struct {
	CanvasPx   int    `yaml:"canvas_px"`
	SymbolSize int    `yaml:"symbol_size"`
	Theme      string `yaml:"theme"`
}

// VoronoiConfig tunes the jump-flood ownership raster.
type VoronoiConfig struct {
	Resolution int `yaml:"resolution"`
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return &cfg, nil
}

// Load returns the defaults overlaid with the YAML file at path. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
