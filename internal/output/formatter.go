// Package output encodes decoded documents in the supported output
// formats.
package output

import (
	"fmt"
	"slices"

	"github.com/dr8co/yj/internal/style"
)

// OutputFormatter describes one output format
type OutputFormatter interface {
	Name() string
	// NewEncoder starts an output stream on w.
	NewEncoder(w style.Writer) Encoder
}

// Encoder writes a sequence of documents
type Encoder interface {
	Encode(v any) error
	Close() error
}

// OutputFormatterRegistry manages available output formatters
type OutputFormatterRegistry struct {
	formatters map[string]OutputFormatter
}

// NewOutputFormatterRegistry creates a new OutputFormatterRegistry
func NewOutputFormatterRegistry() *OutputFormatterRegistry {
	return &OutputFormatterRegistry{
		formatters: make(map[string]OutputFormatter),
	}
}

// Register adds a new formatter to the registry
func (r *OutputFormatterRegistry) Register(formatter OutputFormatter) error {
	if formatter == nil {
		return fmt.Errorf("formatter cannot be nil")
	}
	if formatter.Name() == "" {
		return fmt.Errorf("formatter name cannot be empty")
	}
	r.formatters[formatter.Name()] = formatter
	return nil
}

// Get retrieves a formatter by name from the registry
func (r *OutputFormatterRegistry) Get(name string) (OutputFormatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns the registered formatter names in sorted order
func (r *OutputFormatterRegistry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewEncoder starts an output stream on w using the named formatter
func (r *OutputFormatterRegistry) NewEncoder(name string, w style.Writer) (Encoder, error) {
	formatter, exists := r.formatters[name]
	if !exists {
		return nil, fmt.Errorf("formatter '%s' not found", name)
	}
	return formatter.NewEncoder(w), nil
}

// InitFormatters registers the given formatters and returns a registry
func InitFormatters(formatters ...OutputFormatter) (*OutputFormatterRegistry, error) {
	registry := NewOutputFormatterRegistry()
	for _, f := range formatters {
		if err := registry.Register(f); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
