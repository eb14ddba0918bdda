// Package config loads the canon command's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smasher164/synth/logging"
	"github.com/smasher164/synth/ops"
)

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Log Log `yaml:"log"`
	// Categories limits the operators accepted in input. Empty means all.
	Categories []string `yaml:"categories"`
	Dedup      bool     `yaml:"dedup"`
	Size       bool     `yaml:"size"`
}

func Default() Config {
	return Config{Log: Log{Level: "info"}}
}

// Load reads a config file. Missing fields keep their Default values.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if _, err := ops.Union(c.Categories...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Operators is the operator set selected by Categories.
func (c Config) Operators() []ops.Op {
	set, err := ops.Union(c.Categories...)
	if err != nil {
		return nil
	}
	return set
}
