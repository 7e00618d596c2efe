package colorjson

import (
	"io"

	"github.com/dr8co/yj/internal/indent"
)

// PrettyFormatter writes one element per line, indented by nesting depth.
// Scalars are written exactly as [CompactFormatter] writes them.
type PrettyFormatter struct {
	CompactFormatter

	indent   indent.Indent
	parents  []indent.Indent
	hasValue bool
}

// NewPrettyFormatter returns a PrettyFormatter indenting by two spaces.
func NewPrettyFormatter() *PrettyFormatter {
	return NewPrettyFormatterWithIndent(indent.DefaultSize)
}

// NewPrettyFormatterWithIndent returns a PrettyFormatter indenting by size
// spaces per level.
func NewPrettyFormatterWithIndent(size int) *PrettyFormatter {
	return &PrettyFormatter{indent: indent.New().WithSize(size)}
}

func (f *PrettyFormatter) open(w io.Writer, bracket string) error {
	f.parents = append(f.parents, f.indent)
	f.indent = f.indent.Increment()
	f.hasValue = false
	return writeString(w, bracket)
}

func (f *PrettyFormatter) close(w io.Writer, bracket string) error {
	if n := len(f.parents); n > 0 {
		f.indent = f.parents[n-1]
		f.parents = f.parents[:n-1]
	}
	if f.hasValue {
		if err := writeString(w, "\n"); err != nil {
			return err
		}
		if err := f.indent.Render(w); err != nil {
			return err
		}
	}
	return writeString(w, bracket)
}

func (f *PrettyFormatter) element(w io.Writer, first bool) error {
	sep := ",\n"
	if first {
		sep = "\n"
	}
	if err := writeString(w, sep); err != nil {
		return err
	}
	return f.indent.Render(w)
}

func (f *PrettyFormatter) BeginArray(w io.Writer) error {
	return f.open(w, "[")
}

func (f *PrettyFormatter) EndArray(w io.Writer) error {
	return f.close(w, "]")
}

func (f *PrettyFormatter) BeginArrayValue(w io.Writer, first bool) error {
	return f.element(w, first)
}

func (f *PrettyFormatter) EndArrayValue(io.Writer) error {
	f.hasValue = true
	return nil
}

func (f *PrettyFormatter) BeginObject(w io.Writer) error {
	return f.open(w, "{")
}

func (f *PrettyFormatter) EndObject(w io.Writer) error {
	return f.close(w, "}")
}

func (f *PrettyFormatter) BeginObjectKey(w io.Writer, first bool) error {
	return f.element(w, first)
}

func (f *PrettyFormatter) BeginObjectValue(w io.Writer) error {
	return writeString(w, ": ")
}

func (f *PrettyFormatter) EndObjectValue(io.Writer) error {
	f.hasValue = true
	return nil
}
