package colorjson

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dr8co/yj/internal/style"
)

// Default styles.
var (
	DefaultObjectKeyColor = style.Spec{Fg: color.FgBlue, Bold: true}
	DefaultStringColor    = style.Spec{Fg: color.FgGreen, Bold: true}
	DefaultNullColor      = style.Spec{Fg: color.FgBlack, Bold: true}
)

// ColorizedFormatter decorates an inner Formatter with style commands.
//
// Object keys, string values and null are wrapped in a SetColor/Reset
// pair on the sink; every other event is forwarded untouched. All bytes
// go to the sink, whatever writer the caller passes to each method.
// A ColorizedFormatter holds per-document state and serves one
// serialization pass at a time.
type ColorizedFormatter struct {
	inner Formatter
	sink  style.Writer

	keyColor    style.Spec
	stringColor style.Spec
	nullColor   style.Spec

	isObjectKey bool
}

func (f *ColorizedFormatter) setColor(spec style.Spec) error {
	if err := f.sink.SetColor(spec); err != nil {
		return fmt.Errorf("colorjson: set color: %w", err)
	}
	return nil
}

func (f *ColorizedFormatter) reset() error {
	if err := f.sink.Reset(); err != nil {
		return fmt.Errorf("colorjson: reset color: %w", err)
	}
	return nil
}

// WriteNull writes null in the null style.
func (f *ColorizedFormatter) WriteNull(io.Writer) error {
	if err := f.setColor(f.nullColor); err != nil {
		return err
	}
	if err := f.inner.WriteNull(f.sink); err != nil {
		return err
	}
	return f.reset()
}

// WriteBool forwards to the inner formatter without styling.
func (f *ColorizedFormatter) WriteBool(_ io.Writer, v bool) error {
	return f.inner.WriteBool(f.sink, v)
}

func (f *ColorizedFormatter) WriteInt8(_ io.Writer, v int8) error {
	return f.inner.WriteInt8(f.sink, v)
}

func (f *ColorizedFormatter) WriteInt16(_ io.Writer, v int16) error {
	return f.inner.WriteInt16(f.sink, v)
}

func (f *ColorizedFormatter) WriteInt32(_ io.Writer, v int32) error {
	return f.inner.WriteInt32(f.sink, v)
}

func (f *ColorizedFormatter) WriteInt64(_ io.Writer, v int64) error {
	return f.inner.WriteInt64(f.sink, v)
}

func (f *ColorizedFormatter) WriteUint8(_ io.Writer, v uint8) error {
	return f.inner.WriteUint8(f.sink, v)
}

func (f *ColorizedFormatter) WriteUint16(_ io.Writer, v uint16) error {
	return f.inner.WriteUint16(f.sink, v)
}

func (f *ColorizedFormatter) WriteUint32(_ io.Writer, v uint32) error {
	return f.inner.WriteUint32(f.sink, v)
}

func (f *ColorizedFormatter) WriteUint64(_ io.Writer, v uint64) error {
	return f.inner.WriteUint64(f.sink, v)
}

func (f *ColorizedFormatter) WriteFloat32(_ io.Writer, v float32) error {
	return f.inner.WriteFloat32(f.sink, v)
}

func (f *ColorizedFormatter) WriteFloat64(_ io.Writer, v float64) error {
	return f.inner.WriteFloat64(f.sink, v)
}

// WriteNumberStr forwards a pre-formatted number unstyled.
func (f *ColorizedFormatter) WriteNumberStr(_ io.Writer, v string) error {
	return f.inner.WriteNumberStr(f.sink, v)
}

// BeginString selects the key style inside an object key and the string
// style elsewhere, then opens the string.
func (f *ColorizedFormatter) BeginString(io.Writer) error {
	spec := f.stringColor
	if f.isObjectKey {
		spec = f.keyColor
	}
	if err := f.setColor(spec); err != nil {
		return err
	}
	return f.inner.BeginString(f.sink)
}

// EndString closes the string and resets the style.
func (f *ColorizedFormatter) EndString(io.Writer) error {
	if err := f.inner.EndString(f.sink); err != nil {
		return err
	}
	return f.reset()
}

// WriteStringFragment forwards unescaped string content.
func (f *ColorizedFormatter) WriteStringFragment(_ io.Writer, fragment string) error {
	return f.inner.WriteStringFragment(f.sink, fragment)
}

// WriteCharEscape forwards an escape sequence inside the current string.
func (f *ColorizedFormatter) WriteCharEscape(_ io.Writer, c CharEscape) error {
	return f.inner.WriteCharEscape(f.sink, c)
}

// BeginArray and the other structural events are forwarded unstyled.
func (f *ColorizedFormatter) BeginArray(io.Writer) error {
	return f.inner.BeginArray(f.sink)
}

func (f *ColorizedFormatter) EndArray(io.Writer) error {
	return f.inner.EndArray(f.sink)
}

func (f *ColorizedFormatter) BeginArrayValue(_ io.Writer, first bool) error {
	return f.inner.BeginArrayValue(f.sink, first)
}

func (f *ColorizedFormatter) EndArrayValue(io.Writer) error {
	return f.inner.EndArrayValue(f.sink)
}

func (f *ColorizedFormatter) BeginObject(io.Writer) error {
	return f.inner.BeginObject(f.sink)
}

func (f *ColorizedFormatter) EndObject(io.Writer) error {
	return f.inner.EndObject(f.sink)
}

// BeginObjectKey enters key mode, then delegates.
func (f *ColorizedFormatter) BeginObjectKey(_ io.Writer, first bool) error {
	f.isObjectKey = true
	return f.inner.BeginObjectKey(f.sink, first)
}

// EndObjectKey delegates, then leaves key mode.
func (f *ColorizedFormatter) EndObjectKey(io.Writer) error {
	err := f.inner.EndObjectKey(f.sink)
	f.isObjectKey = false
	return err
}

func (f *ColorizedFormatter) BeginObjectValue(io.Writer) error {
	return f.inner.BeginObjectValue(f.sink)
}

func (f *ColorizedFormatter) EndObjectValue(io.Writer) error {
	return f.inner.EndObjectValue(f.sink)
}

// WriteRawFragment forwards raw JSON unstyled.
func (f *ColorizedFormatter) WriteRawFragment(_ io.Writer, fragment string) error {
	return f.inner.WriteRawFragment(f.sink, fragment)
}

// Builder configures a ColorizedFormatter. Its With methods return
// modified copies, so a Builder can be shared as a template.
type Builder struct {
	sink  style.Writer
	inner Formatter

	keyColor    style.Spec
	stringColor style.Spec
	nullColor   style.Spec
}

// NewBuilder returns a Builder producing compact output on sink.
func NewBuilder(sink style.Writer) Builder {
	return NewBuilderWithFormatter(sink, CompactFormatter{})
}

// NewPrettyBuilder returns a Builder producing indented output on sink.
func NewPrettyBuilder(sink style.Writer) Builder {
	return NewBuilderWithFormatter(sink, NewPrettyFormatter())
}

// NewBuilderWithFormatter returns a Builder decorating inner.
func NewBuilderWithFormatter(sink style.Writer, inner Formatter) Builder {
	return Builder{
		sink:        sink,
		inner:       inner,
		keyColor:    DefaultObjectKeyColor,
		stringColor: DefaultStringColor,
		nullColor:   DefaultNullColor,
	}
}

// WithObjectKeyColor sets the style of object keys.
func (b Builder) WithObjectKeyColor(spec style.Spec) Builder {
	b.keyColor = spec
	return b
}

// WithStringColor sets the style of string values.
func (b Builder) WithStringColor(spec style.Spec) Builder {
	b.stringColor = spec
	return b
}

// WithNullColor sets the style of null.
func (b Builder) WithNullColor(spec style.Spec) Builder {
	b.nullColor = spec
	return b
}

// BuildFormatter returns the configured ColorizedFormatter.
func (b Builder) BuildFormatter() *ColorizedFormatter {
	return &ColorizedFormatter{
		inner:       b.inner,
		sink:        b.sink,
		keyColor:    b.keyColor,
		stringColor: b.stringColor,
		nullColor:   b.nullColor,
	}
}

// Build returns a Serializer driving the configured ColorizedFormatter.
// The serializer's own writer discards everything; output reaches the
// sink through the formatter.
func (b Builder) Build() *Serializer {
	return NewSerializer(io.Discard, b.BuildFormatter())
}
