package config

import (
	"context"
	"os"
	"strconv"
	"strings"
)

// EnvProvider provides configuration from environment variables.
type EnvProvider struct {
	prefix   string
	priority int
}

// NewEnvProvider creates a new environment provider.
func NewEnvProvider(prefix string, priority int) *EnvProvider {
	return &EnvProvider{
		prefix:   prefix,
		priority: priority,
	}
}

// Name returns the provider name.
func (p *EnvProvider) Name() string {
	return "env:" + p.prefix
}

// Priority returns the provider priority.
func (p *EnvProvider) Priority() int {
	return p.priority
}

// Load loads configuration from the environment.
func (p *EnvProvider) Load(ctx context.Context) (*Config, error) {
	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	config := &Config{}

	// Load log configuration
	p.loadStringFromEnv("LOG_LEVEL", &config.Log.Level)
	p.loadStringFromEnv("LOG_FORMAT", &config.Log.Format)
	p.loadStringFromEnv("LOG_OUTPUT", &config.Log.Output)

	// Load json configuration
	p.loadStringFromEnv("JSON_COLOR", &config.JSON.Color)
	p.loadBoolFromEnv(config, "JSON_MINIFY", &config.JSON.Minify)
	p.loadIntFromEnv(config, "JSON_INDENT", &config.JSON.Indent)
	p.loadBoolFromEnv(config, "JSON_PRESERVE_ORDER", &config.JSON.PreserveOrder)
	p.loadStringFromEnv("JSON_INPUT_FORMAT", &config.JSON.InputFormat)
	p.loadStringFromEnv("JSON_KEY_COLOR", &config.JSON.KeyColor)
	p.loadStringFromEnv("JSON_STRING_COLOR", &config.JSON.StringColor)
	p.loadStringFromEnv("JSON_NULL_COLOR", &config.JSON.NullColor)
	p.loadBoolFromEnv(config, "JSON_STATS", &config.JSON.Stats)
	p.loadStringFromEnv("JSON_OUTPUT_FILE", &config.JSON.OutputFile)

	// Load yaml configuration
	p.loadIntFromEnv(config, "YAML_INDENT", &config.YAML.Indent)
	p.loadBoolFromEnv(config, "YAML_PRESERVE_ORDER", &config.YAML.PreserveOrder)
	p.loadStringFromEnv("YAML_INPUT_FORMAT", &config.YAML.InputFormat)
	p.loadStringFromEnv("YAML_OUTPUT_FILE", &config.YAML.OutputFile)

	return config, nil
}

// loadStringFromEnv loads a string from the environment.
func (p *EnvProvider) loadStringFromEnv(key string, target *string) {
	if value := os.Getenv(p.prefix + key); value != "" {
		*target = value
	}
}

// loadIntFromEnv loads an int from the environment.
func (p *EnvProvider) loadIntFromEnv(config *Config, key string, target *int) {
	if value := os.Getenv(p.prefix + key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
			config.define(configKey(key))
		}
	}
}

// loadBoolFromEnv loads a bool from the environment.
func (p *EnvProvider) loadBoolFromEnv(config *Config, key string, target *bool) {
	if value := os.Getenv(p.prefix + key); value != "" {
		lower := strings.ToLower(value)
		*target = lower == "true" || value == "1" || lower == "yes" || lower == "on"
		config.define(configKey(key))
	}
}

// configKey maps an environment key such as JSON_PRESERVE_ORDER to the
// file key json.preserve_order.
func configKey(envKey string) string {
	return strings.Replace(strings.ToLower(envKey), "_", ".", 1)
}
