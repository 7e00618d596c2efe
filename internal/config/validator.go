package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dr8co/yj/internal/document"
	"github.com/dr8co/yj/internal/style"
)

// defaultValidator provides comprehensive validation.
type defaultValidator struct{}

const (
	minIndent = 0
	maxIndent = 16
)

// Validate validates the configuration.
func (v *defaultValidator) Validate(config *Config) error {
	if err := v.validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}

	if err := v.validateJSONConfig(&config.JSON); err != nil {
		return fmt.Errorf("json config validation failed: %w", err)
	}

	if err := v.validateYAMLConfig(&config.YAML); err != nil {
		return fmt.Errorf("yaml config validation failed: %w", err)
	}

	return nil
}

// validateLogConfig validates the log configuration.
func (v *defaultValidator) validateLogConfig(config *LogConfig) error {
	if config.Level == "" {
		return errors.New("log level is required")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of %v", config.Level, validLevels)
	}

	if config.Format != "" {
		validFormats := []string{"text", "json", "pretty", "discard"}
		if !contains(validFormats, config.Format) {
			return fmt.Errorf("invalid log format: %s, must be one of %v", config.Format, validFormats)
		}
	}

	return nil
}

// validateJSONConfig validates the json command configuration.
func (v *defaultValidator) validateJSONConfig(config *JSONConfig) error {
	if config.Color != "" && !contains(style.ChoiceNames(), config.Color) {
		return fmt.Errorf("invalid color choice: %s, must be one of %v", config.Color, style.ChoiceNames())
	}

	for name, spec := range map[string]string{
		"key_color":    config.KeyColor,
		"string_color": config.StringColor,
		"null_color":   config.NullColor,
	} {
		if _, err := style.ParseSpec(spec); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return validate(config.Indent, config.InputFormat)
}

// validateYAMLConfig validates the yaml command configuration.
func (v *defaultValidator) validateYAMLConfig(config *YAMLConfig) error {
	return validate(config.Indent, config.InputFormat)
}

// validate is a common validation function for both json and yaml config.
func validate(indent int, inputFormat string) error {
	if indent < minIndent || indent > maxIndent {
		return fmt.Errorf("indent out of range: %d (must be %d-%d)", indent, minIndent, maxIndent)
	}

	if _, err := document.ParseFormat(inputFormat); err != nil {
		return err
	}
	return nil
}

// contains returns true if the given string is in the slice.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}

// Validate checks c with the default rules. Commands call it after
// applying their flag overrides.
func (c *Config) Validate() error {
	return (&defaultValidator{}).Validate(c)
}
