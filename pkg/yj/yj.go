// Package yj converts YAML, TOML and JSON streams for use from other Go
// programs. It is the library form of the yj command.
package yj

import (
	"errors"
	"fmt"
	"io"

	"github.com/dr8co/yj/internal/document"
	"github.com/dr8co/yj/internal/output"
	"github.com/dr8co/yj/internal/style"
)

// Options control a conversion. The zero value reads any supported
// format, sorts keys and writes uncolored JSON indented by two spaces.
type Options struct {
	// InputFormat is "auto" (or empty), "json", "yaml" or "toml".
	InputFormat string

	// Color emits ANSI escape sequences around keys, strings and nulls.
	Color bool

	// Minify writes compact JSON. It has no effect on YAML output.
	Minify bool

	// Indent is the number of spaces per nesting level. Zero means two.
	Indent int

	// PreserveOrder keeps object keys in document order.
	PreserveOrder bool
}

// ToJSON reads every document from r and writes it to w as JSON.
func ToJSON(r io.Reader, w io.Writer, opts Options) error {
	f := output.NewJSONFormatter()
	f.Minify = opts.Minify
	if opts.Indent > 0 {
		f.IndentSize = opts.Indent
	}
	return convert(r, style.NewWriter(w, opts.Color), f, opts)
}

// ToYAML reads every document from r and writes it to w as YAML.
// Color is ignored.
func ToYAML(r io.Reader, w io.Writer, opts Options) error {
	f := output.NewYAMLFormatter()
	if opts.Indent > 0 {
		f.IndentSize = opts.Indent
	}
	return convert(r, style.NewPlainWriter(w), f, opts)
}

func convert(r io.Reader, w style.Writer, f output.OutputFormatter, opts Options) error {
	format, err := document.ParseFormat(opts.InputFormat)
	if err != nil {
		return err
	}
	dec, err := document.NewDecoder(r, format, "", document.Options{SortKeys: !opts.PreserveOrder})
	if err != nil {
		return err
	}

	enc := f.NewEncoder(w)
	for {
		doc, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("yj: %w", err)
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("yj: %w", err)
		}
	}
	return enc.Close()
}
