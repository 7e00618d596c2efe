package output

import (
	"fmt"
	"io"

	"github.com/dr8co/yj/internal/colorjson"
	"github.com/dr8co/yj/internal/stats"
	"github.com/dr8co/yj/internal/style"
)

// JSONFormatter writes colorized JSON, one document per line or block.
type JSONFormatter struct {
	Minify      bool
	IndentSize  int
	KeyColor    style.Spec
	StringColor style.Spec
	NullColor   style.Spec

	// Stats, when set, records formatting events and output bytes.
	Stats *stats.Stats
}

// NewJSONFormatter creates a JSON formatter with the default palette.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		IndentSize:  2,
		KeyColor:    colorjson.DefaultObjectKeyColor,
		StringColor: colorjson.DefaultStringColor,
		NullColor:   colorjson.DefaultNullColor,
	}
}

// Name returns the name of the formatter.
func (f *JSONFormatter) Name() string {
	return "json"
}

// NewEncoder returns an Encoder writing to w.
func (f *JSONFormatter) NewEncoder(w style.Writer) Encoder {
	if f.Stats != nil {
		w = stats.NewWriter(w, f.Stats)
	}
	return &jsonEncoder{f: f, w: w}
}

type jsonEncoder struct {
	f *JSONFormatter
	w style.Writer
}

func (e *jsonEncoder) inner() colorjson.Formatter {
	var inner colorjson.Formatter = colorjson.CompactFormatter{}
	if !e.f.Minify {
		inner = colorjson.NewPrettyFormatterWithIndent(e.f.IndentSize)
	}
	if e.f.Stats != nil {
		inner = stats.NewFormatter(inner, e.f.Stats)
	}
	return inner
}

// Encode writes v followed by a newline.
func (e *jsonEncoder) Encode(v any) error {
	ser := colorjson.NewBuilderWithFormatter(e.w, e.inner()).
		WithObjectKeyColor(e.f.KeyColor).
		WithStringColor(e.f.StringColor).
		WithNullColor(e.f.NullColor).
		Build()

	if err := ser.Serialize(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	if e.f.Stats != nil {
		e.f.Stats.IncrementDocuments()
	}
	return nil
}

func (e *jsonEncoder) Close() error {
	return nil
}
