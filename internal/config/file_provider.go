package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dr8co/yj/internal/logger"
)

// FileProvider provides configuration from files.
type FileProvider struct {
	path     string
	format   string
	priority int
	required bool
}

// NewFileProvider creates a new file provider.
// The path is expected to be sanitized.
// The file format is inferred from the file extension, or assumed to be TOML if not available.
// A missing file yields an empty configuration.
func NewFileProvider(path string, priority int) *FileProvider {
	ext := strings.ToLower(filepath.Ext(path))
	//nolint:goconst
	format := "toml"
	switch ext {
	case ".yaml", ".yml":
		format = "yaml"
	case ".json":
		format = "json"
	}

	return &FileProvider{
		path:     path,
		format:   format,
		priority: priority,
	}
}

// NewRequiredFileProvider is like NewFileProvider, but a missing file is
// an error. It serves explicitly requested configuration files.
func NewRequiredFileProvider(path string, priority int) *FileProvider {
	p := NewFileProvider(path, priority)
	p.required = true
	return p
}

// Name returns the provider name.
func (p *FileProvider) Name() string {
	return "file:" + p.path
}

// Priority returns the provider priority.
func (p *FileProvider) Priority() int {
	return p.priority
}

// Load loads configuration from the file.
// Unknown keys are rejected in YAML and JSON files and reported as
// warnings in TOML files.
func (p *FileProvider) Load(ctx context.Context) (*Config, error) {
	if _, err := os.Stat(p.path); errors.Is(err, os.ErrNotExist) {
		if p.required {
			return nil, fmt.Errorf("config file %s: %w", p.path, err)
		}
		return &Config{}, nil
	}

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", p.path, err)
	}

	config := &Config{}
	switch p.format {
	case "toml":
		md, err := toml.Decode(string(data), config)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
		for _, key := range md.Undecoded() {
			logger.Warn("Unknown configuration key", "key", key.String(), "file", p.path)
		}
		for _, key := range md.Keys() {
			if len(key) == 2 {
				config.define(key.String())
			}
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
		var sections map[string]map[string]any
		if err := yaml.Unmarshal(data, &sections); err == nil {
			defineSections(config, sections)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
		var sections map[string]map[string]any
		if err := json.Unmarshal(data, &sections); err == nil {
			defineSections(config, sections)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s", p.format)
	}

	return config, nil
}

// defineSections marks every key present in the file as explicitly set.
func defineSections(config *Config, sections map[string]map[string]any) {
	for section, values := range sections {
		for key := range values {
			config.define(section + "." + key)
		}
	}
}
