// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config consolidates the knobs that used to be scattered per-tool: the
// DPI used for pixel-to-inch conversion and PDF rasterization, thumbnail
// targets, scale-sheet page geometry, and raster output multipliers.
type Config struct {
	DPI       float64 `yaml:"dpi"`
	Thumbnail struct {
		Size        int `yaml:"size"`
		CompactSize int `yaml:"compact_size"`
	} `yaml:"thumbnail"`
	Page struct {
		WidthIn  float64 `yaml:"width_in"`
		HeightIn float64 `yaml:"height_in"`
		MarginIn float64 `yaml:"margin_in"`
		LabelIn  float64 `yaml:"label_in"`
	} `yaml:"page"`
	// Raster scale-sheet outputs render at a multiple of the DPI; PDF
	// output is always 1x.
	ScaleFactors map[string]float64 `yaml:"scale_factors"`
}

func Default() *Config {
	cfg := &Config{DPI: 300}
	cfg.Thumbnail.Size = 256
	cfg.Thumbnail.CompactSize = 128
	// US Letter with a half-inch margin.
	cfg.Page.WidthIn = 8.5
	cfg.Page.HeightIn = 11
	cfg.Page.MarginIn = 0.5
	cfg.Page.LabelIn = 0.35
	cfg.ScaleFactors = map[string]float64{
		"pdf": 1,
		"png": 2,
		"jpg": 2,
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.Thumbnail.Size <= 0 {
		cfg.Thumbnail.Size = 256
	}
	if cfg.Thumbnail.CompactSize <= 0 {
		cfg.Thumbnail.CompactSize = 128
	}

	return cfg, nil
}

// ScaleFor returns the output multiplier for a scale-sheet format,
// defaulting to 1x for unknown formats.
func (c *Config) ScaleFor(format string) float64 {
	if s, ok := c.ScaleFactors[format]; ok && s > 0 {
		return s
	}
	return 1
}
