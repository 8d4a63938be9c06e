// Package config provides configuration loading and management for extmodel.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/extmodel/export"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the complete extmodel configuration
type Config struct {
	// Org prefixes every published entity ID
	Org     string        `yaml:"org"`
	Sources SourcesConfig `yaml:"sources"`
	Output  OutputConfig  `yaml:"output"`
	NATS    NATSConfig    `yaml:"nats"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`
}

// SourcesConfig selects the declaration sources to scan
type SourcesConfig struct {
	// Root is the directory globs are matched against (auto-detected from git if empty)
	Root string `yaml:"root"`
	// Include lists doublestar globs of source files to load
	Include []string `yaml:"include"`
	// Exclude lists doublestar globs removed from the include set
	Exclude []string `yaml:"exclude"`
	// Workers bounds how many extensions are parsed concurrently
	Workers int `yaml:"workers"`
}

// OutputConfig configures describe output
type OutputConfig struct {
	// Format is one of json, yaml, turtle, ntriples, jsonld
	Format string `yaml:"format"`
}

// NATSConfig configures fact publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = publishing disabled)
	URL string `yaml:"url"`
	// Subject is the graph ingestion subject
	Subject string `yaml:"subject"`
}

// MetricsConfig configures the prometheus endpoint served in watch mode
type MetricsConfig struct {
	// Addr is the listen address (empty = no endpoint)
	Addr string `yaml:"addr"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long to wait for changes to settle before re-scanning
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Org: export.DefaultOrg,
		Sources: SourcesConfig{
			Include: []string{"**/*.java"},
			Exclude: []string{"**/test/**", "**/target/**", "**/build/**"},
			Workers: 4,
		},
		Output: OutputConfig{
			Format: string(export.FormatYAML),
		},
		NATS: NATSConfig{
			Subject: "graph.ingest.entity",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Org == "" {
		return fmt.Errorf("%w: org is required", ErrInvalid)
	}
	if len(c.Sources.Include) == 0 {
		return fmt.Errorf("%w: sources.include must list at least one glob", ErrInvalid)
	}
	for _, pattern := range append(append([]string{}, c.Sources.Include...), c.Sources.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: bad glob %q", ErrInvalid, pattern)
		}
	}
	if c.Sources.Workers < 1 {
		return fmt.Errorf("%w: sources.workers must be positive", ErrInvalid)
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %v", ErrInvalid, err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalid)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Org != "" {
		c.Org = other.Org
	}

	// Sources
	if other.Sources.Root != "" {
		c.Sources.Root = other.Sources.Root
	}
	if len(other.Sources.Include) > 0 {
		c.Sources.Include = other.Sources.Include
	}
	if len(other.Sources.Exclude) > 0 {
		c.Sources.Exclude = other.Sources.Exclude
	}
	if other.Sources.Workers != 0 {
		c.Sources.Workers = other.Sources.Workers
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
