// Package config loads yj settings from several sources and merges them
// by priority.
//
// The default sources are, from lowest to highest priority:
//   - config.yaml, config.toml and config.json in the user config directory
//   - environment variables prefixed with YJ_
//
// A file given with --config is added on top by the caller. Command-line
// flags override everything and are applied by the commands themselves.
//
// Note: the package-global loader is created in init(). For explicit
// loading use a NewLoader() instance.
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dr8co/yj/internal/logger"
)

// Config represents the application configuration structure.
type Config struct {
	// Log holds the logging configuration.
	Log LogConfig `toml:"log" yaml:"log" json:"log"`

	// JSON holds the 'json' command configuration.
	JSON JSONConfig `toml:"json" yaml:"json" json:"json"`

	// YAML holds the 'yaml' command configuration.
	YAML YAMLConfig `toml:"yaml" yaml:"yaml" json:"yaml"`

	// defined holds the "section.key" names a provider set explicitly, so
	// that false and 0 can override a lower-priority source.
	defined map[string]bool
}

// define marks key ("json.minify") as explicitly set.
func (c *Config) define(key string) {
	if c.defined == nil {
		c.defined = make(map[string]bool)
	}
	c.defined[key] = true
}

func (c *Config) isDefined(key string) bool {
	return c.defined[key]
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level sets the logging level (e.g., "debug", "info", "warn", "error").
	Level string `toml:"level" yaml:"level" json:"level"`

	// Format sets the logging format (e.g., "text", "json", "pretty", "discard").
	Format string `toml:"format" yaml:"format" json:"format"`

	// Output sets the logging output (e.g., "stdout", "stderr", "null", or file path).
	Output string `toml:"output" yaml:"output" json:"output"`
}

// JSONConfig holds configuration for the 'json' command.
type JSONConfig struct {
	// Color selects when output is colored ("auto", "always", "never").
	Color string `toml:"color" yaml:"color" json:"color"`

	// Minify writes compact JSON instead of indented JSON.
	Minify bool `toml:"minify" yaml:"minify" json:"minify"`

	// Indent sets the spaces per nesting level for indented output.
	Indent int `toml:"indent" yaml:"indent" json:"indent"`

	// PreserveOrder keeps object keys in document order instead of sorting them.
	PreserveOrder bool `toml:"preserve_order" yaml:"preserve_order" json:"preserve_order"`

	// InputFormat sets the input syntax ("auto", "json", "yaml", "toml").
	InputFormat string `toml:"input_format" yaml:"input_format" json:"input_format"`

	// KeyColor is the style of object keys (e.g., "bold blue").
	KeyColor string `toml:"key_color" yaml:"key_color" json:"key_color"`

	// StringColor is the style of string values.
	StringColor string `toml:"string_color" yaml:"string_color" json:"string_color"`

	// NullColor is the style of null.
	NullColor string `toml:"null_color" yaml:"null_color" json:"null_color"`

	// Stats prints a summary of the conversion to stderr.
	Stats bool `toml:"stats" yaml:"stats" json:"stats"`

	// OutputFile sets the file to write output to (default is stdout).
	OutputFile string `toml:"output_file" yaml:"output_file" json:"output_file"`
}

// YAMLConfig holds configuration for the 'yaml' command.
type YAMLConfig struct {
	// Indent sets the spaces per nesting level.
	Indent int `toml:"indent" yaml:"indent" json:"indent"`

	// PreserveOrder keeps object keys in document order instead of sorting them.
	PreserveOrder bool `toml:"preserve_order" yaml:"preserve_order" json:"preserve_order"`

	// InputFormat sets the input syntax ("auto", "json", "yaml", "toml").
	InputFormat string `toml:"input_format" yaml:"input_format" json:"input_format"`

	// OutputFile sets the file to write output to (default is stdout).
	OutputFile string `toml:"output_file" yaml:"output_file" json:"output_file"`
}

// Provider defines the interface for configuration providers.
type Provider interface {
	// Name returns the provider name for identification.
	Name() string

	// Priority returns the provider priority (higher numbers = higher priority).
	Priority() int

	// Load loads configuration from the provider.
	Load(ctx context.Context) (*Config, error)
}

// Validator defines the interface for configuration validation.
type Validator interface {
	Validate(config *Config) error
}

// Merger defines the interface for custom configuration merging.
type Merger interface {
	Merge(base, override *Config) *Config
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "pretty",
			Output: "stderr",
		},
		JSON: JSONConfig{
			Color:       "auto",
			Indent:      2,
			InputFormat: "auto",
			KeyColor:    "bold blue",
			StringColor: "bold green",
			NullColor:   "bold black",
		},
		YAML: YAMLConfig{
			Indent:      2,
			InputFormat: "auto",
		},
	}
}

// Dir returns the directory holding the default configuration files.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	return filepath.Join(configDir, "yj")
}

func init() {
	configDir := Dir()

	// Initialize the global loader once. If createLoader fails, we log
	// the error but continue; Load() will return an error if used before
	// successful initialization.
	globalOnce.Do(func() {
		var e error
		globalLoader, e = createLoader(configDir)
		if e != nil {
			logger.Warn("Failed to initialize configuration", "error", e, "path", configDir)
		}
	})
}
