package config

// defaultMerger provides deep merging of configurations.
type defaultMerger struct{}

// Merge merges two configurations.
// The base values are only overwritten if the override values are non-empty,
// or, for booleans and integers, explicitly set by the override's source.
func (m *defaultMerger) Merge(base, override *Config) *Config {
	result := *base // Copy base
	result.defined = nil

	// Merge log config
	mergeString(&result.Log.Level, override.Log.Level)
	mergeString(&result.Log.Format, override.Log.Format)
	mergeString(&result.Log.Output, override.Log.Output)

	// Merge json config
	mergeString(&result.JSON.Color, override.JSON.Color)
	mergeBool(&result.JSON.Minify, override.JSON.Minify, override.isDefined("json.minify"))
	mergeInt(&result.JSON.Indent, override.JSON.Indent, override.isDefined("json.indent"))
	mergeBool(&result.JSON.PreserveOrder, override.JSON.PreserveOrder, override.isDefined("json.preserve_order"))
	mergeString(&result.JSON.InputFormat, override.JSON.InputFormat)
	mergeString(&result.JSON.KeyColor, override.JSON.KeyColor)
	mergeString(&result.JSON.StringColor, override.JSON.StringColor)
	mergeString(&result.JSON.NullColor, override.JSON.NullColor)
	mergeBool(&result.JSON.Stats, override.JSON.Stats, override.isDefined("json.stats"))
	mergeString(&result.JSON.OutputFile, override.JSON.OutputFile)

	// Merge yaml config
	mergeInt(&result.YAML.Indent, override.YAML.Indent, override.isDefined("yaml.indent"))
	mergeBool(&result.YAML.PreserveOrder, override.YAML.PreserveOrder, override.isDefined("yaml.preserve_order"))
	mergeString(&result.YAML.InputFormat, override.YAML.InputFormat)
	mergeString(&result.YAML.OutputFile, override.YAML.OutputFile)

	return &result
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v int, defined bool) {
	if v != 0 || defined {
		*dst = v
	}
}

func mergeBool(dst *bool, v bool, defined bool) {
	if v || defined {
		*dst = v
	}
}
