package config

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// mockProvider implements Provider for testing.
type mockProvider struct {
	name     string
	priority int
	config   *Config
	err      error
}

func (p *mockProvider) Name() string  { return p.name }
func (p *mockProvider) Priority() int { return p.priority }
func (p *mockProvider) Load(ctx context.Context) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return p.config, p.err
	}
}

// slowProvider blocks until the context is done.
type slowProvider struct{ mockProvider }

func (p *slowProvider) Load(ctx context.Context) (*Config, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// TestLoader tests the Loader type.
func TestLoader(t *testing.T) {
	t.Run("add provider", func(t *testing.T) {
		loader := NewLoader()
		p1 := &mockProvider{name: "p1", priority: 1}
		p2 := &mockProvider{name: "p2", priority: 2}
		p3 := &mockProvider{name: "p3", priority: 3}
		p2b := &mockProvider{name: "p2b", priority: 2}

		// Add in mixed order, should be sorted by priority
		loader.AddProvider(p2)
		loader.AddProvider(p1)
		loader.AddProvider(p3)
		loader.AddProvider(p2b)

		expectedProviders := []Provider{p3, p2, p2b, p1}
		if len(loader.providers) != len(expectedProviders) {
			t.Fatalf("AddProvider() got %d providers, want %d", len(loader.providers), len(expectedProviders))
		}
		for i, want := range expectedProviders {
			if loader.providers[i] != want {
				t.Errorf("AddProvider() providers[%d] = %v, want %v", i, loader.providers[i].Name(), want.Name())
			}
		}
	})

	t.Run("higher priority wins", func(t *testing.T) {
		loader := NewLoader()
		loader.AddProvider(&mockProvider{name: "low", priority: 1, config: &Config{
			Log:  LogConfig{Level: "debug", Format: "json"},
			JSON: JSONConfig{Indent: 8, KeyColor: "red"},
		}})
		loader.AddProvider(&mockProvider{name: "high", priority: 2, config: &Config{
			Log:  LogConfig{Level: "error"},
			JSON: JSONConfig{Minify: true},
		}})

		config, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		want := DefaultConfig()
		want.Log.Level = "error"
		want.Log.Format = "json"
		want.JSON.Indent = 8
		want.JSON.KeyColor = "red"
		want.JSON.Minify = true
		if !reflect.DeepEqual(config, want) {
			t.Errorf("Load() = %+v\nwant %+v", config, want)
		}
	})

	t.Run("explicit zero values override", func(t *testing.T) {
		high := &Config{}
		high.define("json.minify")
		high.define("json.indent")

		loader := NewLoader()
		loader.AddProvider(&mockProvider{name: "low", priority: 1, config: &Config{
			JSON: JSONConfig{Minify: true, Indent: 8},
		}})
		loader.AddProvider(&mockProvider{name: "high", priority: 2, config: high})

		config, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if config.JSON.Minify || config.JSON.Indent != 0 {
			t.Errorf("JSON = %+v, want minify and indent cleared", config.JSON)
		}
	})

	t.Run("provider error", func(t *testing.T) {
		sentinel := errors.New("unavailable")
		loader := NewLoader()
		loader.AddProvider(&mockProvider{name: "broken", priority: 1, err: sentinel})
		loader.AddProvider(&mockProvider{name: "ok", priority: 2, config: &Config{YAML: YAMLConfig{Indent: 4}}})

		config, err := loader.Load(context.Background())
		if !errors.Is(err, sentinel) {
			t.Fatalf("Load() error = %v, want %v", err, sentinel)
		}
		if config == nil || config.YAML.Indent != 4 {
			t.Errorf("Load() should still merge working providers, got %+v", config)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		loader := NewLoader()
		loader.AddProvider(&mockProvider{name: "bad", priority: 1, config: &Config{JSON: JSONConfig{Color: "rainbow"}}})

		if _, err := loader.Load(context.Background()); err == nil {
			t.Error("Load() error = nil, want validation error")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		loader := NewLoader(WithTimeout(10 * time.Millisecond))
		loader.AddProvider(&slowProvider{mockProvider{name: "slow", priority: 1}})

		_, err := loader.Load(context.Background())
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Load() error = %v, want deadline exceeded", err)
		}
	})

	t.Run("options", func(t *testing.T) {
		validator := &defaultValidator{}
		merger := &defaultMerger{}
		loader := NewLoader(WithValidator(validator), WithMerger(merger), WithTimeout(time.Second))

		if loader.options.Validator != validator {
			t.Error("WithValidator() did not set the correct validator")
		}
		if loader.options.Merger != merger {
			t.Error("WithMerger() did not set the correct merger")
		}
		if loader.options.Timeout != time.Second {
			t.Errorf("WithTimeout() = %v, want 1s", loader.options.Timeout)
		}
	})
}

// TestCreateLoader tests the createLoader function.
func TestCreateLoader(t *testing.T) {
	dir, cleanup := testDir(t)
	defer cleanup()

	writeConfigFile(t, dir, "config", "yaml", `log:
  level: debug
json:
  indent: 3
  key_color: cyan`)

	writeConfigFile(t, dir, "config", "toml", `[log]
level = "info"
format = "json"

[json]
null_color = "dim"`)

	writeConfigFile(t, dir, "config", "json", `{"log": {"level": "error"}, "yaml": {"indent": 6}}`)

	loader, err := createLoader(dir)
	if err != nil {
		t.Fatalf("createLoader() error = %v", err)
	}

	config, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Log.Level != "error" {
		t.Errorf("Log.Level = %s, want error (json has the highest file priority)", config.Log.Level)
	}
	if config.Log.Format != "json" {
		t.Errorf("Log.Format = %s, want json", config.Log.Format)
	}
	if config.JSON.Indent != 3 || config.JSON.KeyColor != "cyan" || config.JSON.NullColor != "dim" {
		t.Errorf("JSON = %+v", config.JSON)
	}
	if config.YAML.Indent != 6 {
		t.Errorf("YAML.Indent = %d, want 6", config.YAML.Indent)
	}

	// Test Load() without initialization
	prevLoader := globalLoader
	globalLoader = nil
	defer func() { globalLoader = prevLoader }()

	if _, err := Load(); err == nil {
		t.Error("Load() without initialization = nil, want error")
	}
}
