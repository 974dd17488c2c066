// Package config loads detector settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/cubeface/internal/cube"
	"github.com/ironsheep/cubeface/internal/imaging"
)

// Config mirrors the YAML file layout. Every key is optional; missing keys
// keep their default values.
//
//	enhancement:
//	  contrast: 1.5
//	  brightness: 1.2
//	classifier:
//	  hue_weight: 0.5
//	reference_colors:
//	  red: [220, 66, 47]
type Config struct {
	Enhancement     EnhancementConfig `yaml:"enhancement"`
	Classifier      ClassifierConfig  `yaml:"classifier"`
	ReferenceColors map[string][]int  `yaml:"reference_colors"`
}

// EnhancementConfig holds the preprocessing factors.
type EnhancementConfig struct {
	Contrast   float64 `yaml:"contrast"`
	Brightness float64 `yaml:"brightness"`
}

// ClassifierConfig holds classifier tuning.
type ClassifierConfig struct {
	HueWeight *float64 `yaml:"hue_weight"`
}

// Default returns a configuration with default values.
func Default() *Config {
	defaults := imaging.DefaultEnhancement()
	weight := cube.DefaultHueWeight

	palette := cube.DefaultPalette()
	refs := make(map[string][]int, len(cube.Labels))
	for _, l := range cube.Labels {
		if rgb, ok := palette.Lookup(l); ok {
			refs[l.String()] = []int{int(rgb.R), int(rgb.G), int(rgb.B)}
		}
	}

	return &Config{
		Enhancement: EnhancementConfig{
			Contrast:   defaults.Contrast,
			Brightness: defaults.Brightness,
		},
		Classifier:      ClassifierConfig{HueWeight: &weight},
		ReferenceColors: refs,
	}
}

// Load reads a YAML configuration file and merges it over the defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Default()
	if file.Enhancement.Contrast != 0 {
		cfg.Enhancement.Contrast = file.Enhancement.Contrast
	}
	if file.Enhancement.Brightness != 0 {
		cfg.Enhancement.Brightness = file.Enhancement.Brightness
	}
	if file.Classifier.HueWeight != nil {
		cfg.Classifier.HueWeight = file.Classifier.HueWeight
	}
	for name, rgb := range file.ReferenceColors {
		cfg.ReferenceColors[name] = rgb
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks factors, labels and channel ranges.
func (c *Config) Validate() error {
	if c.Enhancement.Contrast < 0 {
		return fmt.Errorf("enhancement.contrast must not be negative, got %v", c.Enhancement.Contrast)
	}
	if c.Enhancement.Brightness < 0 {
		return fmt.Errorf("enhancement.brightness must not be negative, got %v", c.Enhancement.Brightness)
	}
	if c.Classifier.HueWeight != nil && *c.Classifier.HueWeight < 0 {
		return fmt.Errorf("classifier.hue_weight must not be negative, got %v", *c.Classifier.HueWeight)
	}

	for name, rgb := range c.ReferenceColors {
		if _, err := cube.ParseLabel(name); err != nil {
			return fmt.Errorf("reference_colors: %w", err)
		}
		if len(rgb) != 3 {
			return fmt.Errorf("reference_colors.%s: expected [r, g, b], got %d values", name, len(rgb))
		}
		for _, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("reference_colors.%s: channel %d out of range 0-255", name, v)
			}
		}
	}
	return nil
}

// Settings converts the configuration into detector settings. The palette
// keeps the fixed label order regardless of the order keys appear in the file.
func (c *Config) Settings() cube.Settings {
	s := cube.DefaultSettings()
	s.Enhancement = imaging.Enhancement{
		Contrast:   c.Enhancement.Contrast,
		Brightness: c.Enhancement.Brightness,
	}
	if c.Classifier.HueWeight != nil {
		s.HueWeight = *c.Classifier.HueWeight
	}
	for _, l := range cube.Labels {
		if rgb, ok := c.ReferenceColors[l.String()]; ok && len(rgb) == 3 {
			s.Palette = s.Palette.With(l, imaging.RGBColor{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2])})
		}
	}
	return s
}
