// Package config provides configuration loading for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Frontend names accepted in ui.frontend.
const (
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all game configuration parameters.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Game     GameConfig     `yaml:"game"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
	Trace    TraceConfig    `yaml:"trace"`
	Headless HeadlessConfig `yaml:"headless"`
}

// GridConfig holds the board dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GameConfig holds pacing and randomness.
type GameConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Seed         uint64        `yaml:"seed"` // 0 = time-based
	Autopilot    bool          `yaml:"autopilot"`
}

// UIConfig selects and sizes the frontend.
type UIConfig struct {
	Frontend     string `yaml:"frontend"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	TargetFPS    int    `yaml:"target_fps"`
}

// LogConfig controls slog output.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// TraceConfig controls the per-tick CSV trace.
type TraceConfig struct {
	Dir string `yaml:"dir"`
}

// HeadlessConfig controls batch autopilot runs.
type HeadlessConfig struct {
	Games    int `yaml:"games"`
	Workers  int `yaml:"workers"`
	MaxTicks int `yaml:"max_ticks"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Width <= 0 || c.Grid.Height <= 0:
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalid, c.Grid.Width, c.Grid.Height)
	case c.Game.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval %v must be positive", ErrInvalid, c.Game.TickInterval)
	case c.UI.Frontend != FrontendTerminal && c.UI.Frontend != FrontendWindow:
		return fmt.Errorf("%w: unknown frontend %q", ErrInvalid, c.UI.Frontend)
	case c.Headless.Workers <= 0:
		return fmt.Errorf("%w: headless workers must be positive", ErrInvalid)
	case c.Headless.Games <= 0:
		return fmt.Errorf("%w: headless games must be positive", ErrInvalid)
	case c.Headless.MaxTicks <= 0:
		return fmt.Errorf("%w: headless max_ticks must be positive", ErrInvalid)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return level, nil
}

// WriteYAML saves the configuration, used to record the settings of a traced run.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
