// Package config loads demo and physics settings from yaml, layered over the
// embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalid = errors.New("config: invalid value")

// Config holds every tunable of the demo driver and the physics pipeline.
type Config struct {
	Window    WindowConfig  `yaml:"window"`
	Physics   PhysicsConfig `yaml:"physics"`
	Debug     DebugConfig   `yaml:"debug"`
	Level     string        `yaml:"level"`
	TraceFile string        `yaml:"trace_file"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

// PhysicsConfig tunes the movement pass. SnapThreshold is compared against
// squared speeds.
type PhysicsConfig struct {
	Margin          float64 `yaml:"margin"`
	SnapThreshold   float64 `yaml:"snap_threshold"`
	DefaultFriction float64 `yaml:"default_friction"`
	PushTransfer    float64 `yaml:"push_transfer"`
}

type DebugConfig struct {
	DrawBodies   bool `yaml:"draw_bodies"`
	DrawContacts bool `yaml:"draw_contacts"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := parse(defaultsYAML, &Config{})
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads path over the embedded defaults; fields missing from the file
// keep their default. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if _, err := parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(data []byte, into *Config) (*Config, error) {
	if err := yaml.Unmarshal(data, into); err != nil {
		return nil, err
	}
	return into, nil
}

// Validate rejects settings the physics pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: window.tps must be positive, got %d", ErrInvalid, c.Window.TPS)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Physics.Margin < 0:
		return fmt.Errorf("%w: physics.margin must be >= 0, got %v", ErrInvalid, c.Physics.Margin)
	case c.Physics.SnapThreshold < 0:
		return fmt.Errorf("%w: physics.snap_threshold must be >= 0, got %v", ErrInvalid, c.Physics.SnapThreshold)
	case c.Physics.DefaultFriction < 0:
		return fmt.Errorf("%w: physics.default_friction must be >= 0, got %v", ErrInvalid, c.Physics.DefaultFriction)
	case c.Physics.PushTransfer < 0:
		return fmt.Errorf("%w: physics.push_transfer must be >= 0, got %v", ErrInvalid, c.Physics.PushTransfer)
	}
	return nil
}

// Delta is the fixed frame time implied by the tick rate.
func (c *Config) Delta() float64 {
	return 1 / float64(c.Window.TPS)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
