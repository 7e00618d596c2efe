package style

import (
	"io"
)

// resetSequence is the SGR reset emitted after every styled run.
const resetSequence = "\x1b[0m"

// Writer is an output sink that also accepts style commands.
// Style commands affect only the bytes written after them and never
// write document content themselves.
type Writer interface {
	io.Writer
	SetColor(spec Spec) error
	Reset() error
}

// ANSIWriter renders style commands as ANSI SGR escape sequences.
type ANSIWriter struct {
	w io.Writer
}

// NewANSIWriter returns a Writer that emits escape sequences to w.
func NewANSIWriter(w io.Writer) *ANSIWriter {
	return &ANSIWriter{w: w}
}

func (a *ANSIWriter) Write(p []byte) (int, error) {
	return a.w.Write(p)
}

// SetColor writes the escape sequence for spec. A zero spec writes nothing.
func (a *ANSIWriter) SetColor(spec Spec) error {
	if spec.IsZero() {
		return nil
	}
	ew := &errWriter{w: a.w}
	spec.color().SetWriter(ew)
	return ew.err
}

// Reset writes the SGR reset sequence.
func (a *ANSIWriter) Reset() error {
	_, err := io.WriteString(a.w, resetSequence)
	return err
}

// PlainWriter ignores style commands; only content reaches the sink.
type PlainWriter struct {
	w io.Writer
}

// NewPlainWriter returns a Writer that drops every style command.
func NewPlainWriter(w io.Writer) *PlainWriter {
	return &PlainWriter{w: w}
}

func (p *PlainWriter) Write(b []byte) (int, error) {
	return p.w.Write(b)
}

// SetColor is a no-op.
func (p *PlainWriter) SetColor(Spec) error { return nil }

// Reset is a no-op.
func (p *PlainWriter) Reset() error { return nil }

// NewWriter returns an [ANSIWriter] when colored is true and a
// [PlainWriter] otherwise.
func NewWriter(w io.Writer, colored bool) Writer {
	if colored {
		return NewANSIWriter(w)
	}
	return NewPlainWriter(w)
}

// errWriter remembers the first write error; fatih/color discards it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
