package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/random"
	"github.com/san-kum/algoviz/internal/structure"
)

const (
	DefaultKind      = structure.KindArray
	DefaultOperation = "bubble_sort"
	DefaultSpeed     = 1.0
	DefaultAddr      = ":8080"
	DefaultLogLevel  = "info"
	DefaultTheme     = "default"
)

type Config struct {
	Kind      structure.Kind `yaml:"kind"`
	Operation string         `yaml:"operation"`
	// Input is a comma-separated value list; empty means a random example.
	Input    string            `yaml:"input"`
	Params   map[string]string `yaml:"params"`
	Seed     uint64            `yaml:"seed"`
	Playback PlaybackConfig    `yaml:"playback"`
	Random   random.Options    `yaml:"random"`
	Server   ServerConfig      `yaml:"server"`
	LogLevel string            `yaml:"log_level"`
	Theme    string            `yaml:"theme"`
}

type PlaybackConfig struct {
	IntervalMS int     `yaml:"interval_ms"`
	Speed      float64 `yaml:"speed"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Kind:      DefaultKind,
		Operation: DefaultOperation,
		Params:    map[string]string{},
		Seed:      1,
		Playback: PlaybackConfig{
			IntervalMS: 800,
			Speed:      DefaultSpeed,
		},
		Random:   random.DefaultOptions(),
		Server:   ServerConfig{Addr: DefaultAddr},
		LogLevel: DefaultLogLevel,
		Theme:    DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := structure.ParseKind(string(c.Kind)); err != nil {
		return err
	}
	if c.Operation == "" {
		return fmt.Errorf("operation is required")
	}
	if c.Playback.IntervalMS <= 0 {
		return fmt.Errorf("playback.interval_ms must be positive, got %d", c.Playback.IntervalMS)
	}
	if c.Playback.Speed <= 0 {
		return fmt.Errorf("playback.speed must be positive, got %v", c.Playback.Speed)
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.Playback.IntervalMS) * time.Millisecond
}

// Structure builds the configured input: parsed from Input when set,
// otherwise a random example drawn with Seed.
func (c *Config) Structure() (structure.Structure, error) {
	if c.Input == "" {
		return random.New(c.Seed, c.Random).For(c.Kind, 0)
	}
	if c.Kind == structure.KindGraph {
		return nil, fmt.Errorf("graphs cannot be given as a value list")
	}
	values, err := structure.ParseValues(c.Input, structure.MaxArrayLen)
	if err != nil {
		return nil, err
	}
	return structure.FromValues(c.Kind, values)
}

// ParamMap returns Params in the loose form the dispatcher decodes.
// Integer-looking values are converted; the rest pass through unchanged.
func (c *Config) ParamMap() map[string]any {
	out := make(map[string]any, len(c.Params))
	for k, v := range c.Params {
		if n, err := strconv.Atoi(v); err == nil {
			out[k] = n
			continue
		}
		out[k] = v
	}
	return out
}
