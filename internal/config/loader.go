package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/dr8co/yj/internal/logger"
)

// LoaderOptions configure the configuration loader.
type LoaderOptions struct {
	// Validator for configuration validation.
	Validator Validator
	// Merger for custom merging logic.
	Merger Merger
	// Timeout for provider operations.
	Timeout time.Duration
}

// Loader manages configuration loading from multiple providers.
type Loader struct {
	providers []Provider
	options   LoaderOptions
	mu        sync.RWMutex
}

// Default timeout for provider operations.
const defaultTimeout = 3 * time.Second

// Priorities of the default providers.
const (
	PriorityYAMLFile = 10
	PriorityTOMLFile = 20
	PriorityJSONFile = 30
	PriorityEnv      = 40
	// PriorityExplicitFile is used for a file named on the command line.
	PriorityExplicitFile = 50
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "YJ_"

// NewLoader creates a new configuration loader.
func NewLoader(opts ...LoaderOption) *Loader {
	options := LoaderOptions{
		Validator: &defaultValidator{},
		Merger:    &defaultMerger{},
		Timeout:   defaultTimeout,
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &Loader{
		providers: make([]Provider, 0),
		options:   options,
	}
}

var (
	// Global loader instance.
	globalLoader *Loader
	globalOnce   sync.Once
)

// LoaderOption is a functional option for configuring the loader.
type LoaderOption func(*LoaderOptions)

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Validator = v
	}
}

// WithMerger sets a custom merger.
func WithMerger(m Merger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Merger = m
	}
}

// WithTimeout sets the operation timeout.
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Timeout = timeout
	}
}

// AddProvider adds a configuration provider.
// Providers are kept in descending priority order; equal priorities keep
// insertion order.
func (l *Loader) AddProvider(provider Provider) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.providers, func(p Provider) bool {
		return provider.Priority() > p.Priority()
	})
	if i < 0 {
		i = len(l.providers)
	}
	l.providers = slices.Insert(l.providers, i, provider)
}

// AddDefaultProviders adds the configuration files in dir and the
// environment provider.
func (l *Loader) AddDefaultProviders(dir string) {
	l.AddProvider(NewFileProvider(filepath.Join(dir, "config.yaml"), PriorityYAMLFile))
	l.AddProvider(NewFileProvider(filepath.Join(dir, "config.toml"), PriorityTOMLFile))
	l.AddProvider(NewFileProvider(filepath.Join(dir, "config.json"), PriorityJSONFile))
	l.AddProvider(NewEnvProvider(EnvPrefix, PriorityEnv))
}

// Load loads configuration from all providers.
// A provider failure is logged and skipped; the merged configuration is
// still returned together with the joined provider errors.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	if l.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.options.Timeout)
		defer cancel()
	}

	l.mu.RLock()
	providers := slices.Clone(l.providers)
	l.mu.RUnlock()

	config := DefaultConfig()
	var errs []error

	// Load from providers in reverse priority order for merging
	for i := len(providers) - 1; i >= 0; i-- {
		provider := providers[i]
		providerConfig, err := provider.Load(ctx)
		if err != nil {
			logger.Error("Failed to load from provider",
				"provider", provider.Name(),
				"error", err)
			errs = append(errs, fmt.Errorf("provider %s: %w", provider.Name(), err))
			continue
		}

		if providerConfig != nil {
			config = l.options.Merger.Merge(config, providerConfig)
		}
	}

	// Validate the final configuration
	if err := l.options.Validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if len(errs) > 0 {
		return config, fmt.Errorf("some providers failed to load: %w", errors.Join(errs...))
	}

	return config, nil
}

// createLoader creates a loader reading the default sources in configDir.
func createLoader(configDir string) (*Loader, error) {
	loader := NewLoader()
	loader.AddDefaultProviders(configDir)

	// Load once to surface broken configuration early
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if _, err := loader.Load(ctx); err != nil {
		return loader, err
	}

	return loader, nil
}

// Load returns the current global configuration.
func Load() (*Config, error) {
	if globalLoader == nil {
		return nil, errors.New("configuration not initialized, use custom loader via NewLoader()")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return globalLoader.Load(ctx)
}
