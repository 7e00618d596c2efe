package config

import (
	"strings"
	"testing"
)

// TestDefaultValidator tests the defaultValidator.
func TestDefaultValidator(t *testing.T) {
	validator := &defaultValidator{}

	tests := []struct {
		name     string
		modify   func(c *Config)
		wantErr  bool
		errField string
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:   "upper case values",
			modify: func(c *Config) { c.Log.Level = "DEBUG"; c.JSON.Color = "Always"; c.JSON.InputFormat = "YML" },
		},
		{
			name:     "missing log level",
			modify:   func(c *Config) { c.Log.Level = "" },
			wantErr:  true,
			errField: "log level is required",
		},
		{
			name:     "invalid log level",
			modify:   func(c *Config) { c.Log.Level = "verbose" },
			wantErr:  true,
			errField: "invalid log level",
		},
		{
			name:     "invalid log format",
			modify:   func(c *Config) { c.Log.Format = "xml" },
			wantErr:  true,
			errField: "invalid log format",
		},
		{
			name:     "invalid color choice",
			modify:   func(c *Config) { c.JSON.Color = "sometimes" },
			wantErr:  true,
			errField: "invalid color choice",
		},
		{
			name:     "invalid key color",
			modify:   func(c *Config) { c.JSON.KeyColor = "bold purple" },
			wantErr:  true,
			errField: "key_color",
		},
		{
			name:     "negative indent",
			modify:   func(c *Config) { c.JSON.Indent = -1 },
			wantErr:  true,
			errField: "indent out of range",
		},
		{
			name:     "indent too large",
			modify:   func(c *Config) { c.YAML.Indent = 17 },
			wantErr:  true,
			errField: "yaml config",
		},
		{
			name:     "invalid input format",
			modify:   func(c *Config) { c.YAML.InputFormat = "xml" },
			wantErr:  true,
			errField: "unknown input format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := validator.Validate(config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errField) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.errField)
			}
		})
	}
}

// TestConfigValidate tests validation after flag overrides.
func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on defaults error = %v", err)
	}

	cfg.YAML.Indent = 17
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "indent out of range") {
		t.Errorf("Validate() error = %v, want indent out of range", err)
	}
}
