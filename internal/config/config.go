// Package config loads the optional .mtf.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the project root when no
// explicit path is given.
const DefaultFileName = ".mtf.yaml"

// Config carries project-level defaults for the mtf CLI. Flags override
// whatever is configured here.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Plan     PlanConfig     `yaml:"plan"`
	Registry RegistryConfig `yaml:"registry"`
}

// LogConfig selects the default log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PlanConfig carries defaults for the plan command tree.
type PlanConfig struct {
	// File is the plan document used when --in is not given
	File string `yaml:"file"`
	// IncludeInProgress widens ready queries to tasks already started
	IncludeInProgress bool `yaml:"include_in_progress"`
	// Status controls whether outline lines carry the status suffix
	Status bool `yaml:"status"`
	// Descriptions controls whether graph renders label nodes
	Descriptions bool `yaml:"descriptions"`
}

// RegistryConfig locates the component registry.
type RegistryConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Plan: PlanConfig{
			File:         "plan.xml",
			Status:       true,
			Descriptions: true,
		},
		Registry: RegistryConfig{
			Dir: filepath.Join(".mtf", "registry"),
		},
	}
}

// Load reads the config file at path. A missing or empty file yields the
// defaults; a file that is present only overrides the keys it sets. Unknown
// keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json (got %q)", c.Log.Format)
	}

	if c.Plan.File == "" {
		return fmt.Errorf("plan file must not be empty")
	}

	if c.Registry.Dir == "" {
		return fmt.Errorf("registry dir must not be empty")
	}

	return nil
}

// Save writes the configuration to a YAML file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
