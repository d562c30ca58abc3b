// Package config handles loading cortex configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/cortex/config.yaml
//   - State:  ~/.local/state/cortex/ (visited set)
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level cortex configuration. Zero values for the
// numeric fields mean "use default"; explicit out-of-range values are
// clamped on load.
type Config struct {
	Depth      int      `yaml:"depth,omitempty"`       // neighborhood depth, negative = unlimited
	Theme      string   `yaml:"theme,omitempty"`       // dark or light
	ShowTags   bool     `yaml:"show_tags"`             // synthesize tag nodes
	RemoveTags []string `yaml:"remove_tags,omitempty"` // tags excluded from synthesis

	Drag         bool    `yaml:"drag"`
	Zoom         bool    `yaml:"zoom"`
	ZoomMin      float64 `yaml:"zoom_min,omitempty"`
	ZoomMax      float64 `yaml:"zoom_max,omitempty"`
	Scale        float64 `yaml:"scale,omitempty"` // initial view scale
	FocusOnHover bool    `yaml:"focus_on_hover,omitempty"`

	RepelForce   float64 `yaml:"repel_force,omitempty"`
	CenterForce  float64 `yaml:"center_force,omitempty"`
	LinkDistance float64 `yaml:"link_distance,omitempty"`
	EnableRadial bool    `yaml:"enable_radial,omitempty"`

	FontSize     float64 `yaml:"font_size,omitempty"`     // label scale
	OpacityScale float64 `yaml:"opacity_scale,omitempty"` // label opacity multiplier
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Depth:        1,
		Theme:        "dark",
		ShowTags:     true,
		Drag:         true,
		Zoom:         true,
		ZoomMin:      0.25,
		ZoomMax:      4,
		Scale:        1.1,
		RepelForce:   0.5,
		CenterForce:  0.3,
		LinkDistance: 30,
		FontSize:     0.6,
		OpacityScale: 1,
	}
}

// ConfigDir returns the XDG config directory for cortex.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cortex")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cortex")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. Unknown fields are
// rejected so typos fail loudly instead of silently falling back to
// defaults. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	cfg.clamp()
	return cfg, nil
}

func (c *Config) clamp() {
	d := DefaultConfig()
	if c.ZoomMin <= 0 {
		c.ZoomMin = d.ZoomMin
	}
	if c.ZoomMax <= c.ZoomMin {
		c.ZoomMax = d.ZoomMax
	}
	if c.Scale <= 0 {
		c.Scale = d.Scale
	}
	if c.Scale < c.ZoomMin {
		c.Scale = c.ZoomMin
	}
	if c.Scale > c.ZoomMax {
		c.Scale = c.ZoomMax
	}
	if c.RepelForce <= 0 {
		c.RepelForce = d.RepelForce
	}
	if c.CenterForce <= 0 {
		c.CenterForce = d.CenterForce
	}
	if c.LinkDistance <= 0 {
		c.LinkDistance = d.LinkDistance
	}
	if c.FontSize <= 0 {
		c.FontSize = d.FontSize
	}
	if c.OpacityScale <= 0 {
		c.OpacityScale = d.OpacityScale
	}
	if c.Theme != "dark" && c.Theme != "light" {
		c.Theme = d.Theme
	}
}
