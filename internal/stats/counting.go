package stats

import (
	"io"
	"sync/atomic"

	"github.com/dr8co/yj/internal/colorjson"
	"github.com/dr8co/yj/internal/style"
)

// Formatter counts formatting events on their way to an inner formatter.
type Formatter struct {
	colorjson.Formatter

	stats *Stats
	inKey bool
}

// NewFormatter wraps inner, recording into s.
func NewFormatter(inner colorjson.Formatter, s *Stats) *Formatter {
	return &Formatter{Formatter: inner, stats: s}
}

func (f *Formatter) number() {
	atomic.AddUint64(&f.stats.Numbers, 1)
}

func (f *Formatter) WriteNull(w io.Writer) error {
	atomic.AddUint64(&f.stats.Nulls, 1)
	return f.Formatter.WriteNull(w)
}

func (f *Formatter) WriteBool(w io.Writer, v bool) error {
	atomic.AddUint64(&f.stats.Bools, 1)
	return f.Formatter.WriteBool(w, v)
}

func (f *Formatter) WriteInt8(w io.Writer, v int8) error {
	f.number()
	return f.Formatter.WriteInt8(w, v)
}

func (f *Formatter) WriteInt16(w io.Writer, v int16) error {
	f.number()
	return f.Formatter.WriteInt16(w, v)
}

func (f *Formatter) WriteInt32(w io.Writer, v int32) error {
	f.number()
	return f.Formatter.WriteInt32(w, v)
}

func (f *Formatter) WriteInt64(w io.Writer, v int64) error {
	f.number()
	return f.Formatter.WriteInt64(w, v)
}

func (f *Formatter) WriteUint8(w io.Writer, v uint8) error {
	f.number()
	return f.Formatter.WriteUint8(w, v)
}

func (f *Formatter) WriteUint16(w io.Writer, v uint16) error {
	f.number()
	return f.Formatter.WriteUint16(w, v)
}

func (f *Formatter) WriteUint32(w io.Writer, v uint32) error {
	f.number()
	return f.Formatter.WriteUint32(w, v)
}

func (f *Formatter) WriteUint64(w io.Writer, v uint64) error {
	f.number()
	return f.Formatter.WriteUint64(w, v)
}

func (f *Formatter) WriteFloat32(w io.Writer, v float32) error {
	f.number()
	return f.Formatter.WriteFloat32(w, v)
}

func (f *Formatter) WriteFloat64(w io.Writer, v float64) error {
	f.number()
	return f.Formatter.WriteFloat64(w, v)
}

func (f *Formatter) WriteNumberStr(w io.Writer, v string) error {
	f.number()
	return f.Formatter.WriteNumberStr(w, v)
}

// BeginString counts string values; key strings are counted as keys.
func (f *Formatter) BeginString(w io.Writer) error {
	if !f.inKey {
		atomic.AddUint64(&f.stats.Strings, 1)
	}
	return f.Formatter.BeginString(w)
}

func (f *Formatter) BeginArray(w io.Writer) error {
	atomic.AddUint64(&f.stats.Arrays, 1)
	return f.Formatter.BeginArray(w)
}

func (f *Formatter) BeginObject(w io.Writer) error {
	atomic.AddUint64(&f.stats.Objects, 1)
	return f.Formatter.BeginObject(w)
}

func (f *Formatter) BeginObjectKey(w io.Writer, first bool) error {
	f.inKey = true
	atomic.AddUint64(&f.stats.Keys, 1)
	return f.Formatter.BeginObjectKey(w, first)
}

func (f *Formatter) EndObjectKey(w io.Writer) error {
	f.inKey = false
	return f.Formatter.EndObjectKey(w)
}

// Writer counts bytes and style commands on their way to a style.Writer.
type Writer struct {
	style.Writer

	stats *Stats
}

// NewWriter wraps w, recording into s.
func NewWriter(w style.Writer, s *Stats) *Writer {
	return &Writer{Writer: w, stats: s}
}

func (c *Writer) Write(p []byte) (int, error) {
	n, err := c.Writer.Write(p)
	c.stats.addBytes(p[:n])
	return n, err
}

func (c *Writer) SetColor(spec style.Spec) error {
	atomic.AddUint64(&c.stats.StyleSets, 1)
	return c.Writer.SetColor(spec)
}

func (c *Writer) Reset() error {
	atomic.AddUint64(&c.stats.StyleResets, 1)
	return c.Writer.Reset()
}
