package colorjson

import (
	"bytes"
	"errors"

	"github.com/dr8co/yj/internal/style"
)

// recordingSink renders style commands as visible markers so tests can
// assert on the exact interleaving of bytes and styles.
type recordingSink struct {
	buf    bytes.Buffer
	sets   int
	resets int
	open   bool
	nested bool

	failSet   error
	failReset error
}

func (r *recordingSink) Write(p []byte) (int, error) {
	return r.buf.Write(p)
}

func (r *recordingSink) SetColor(s style.Spec) error {
	if r.failSet != nil {
		return r.failSet
	}
	if r.open {
		r.nested = true
	}
	r.open = true
	r.sets++
	r.buf.WriteString("<" + s.String() + ">")
	return nil
}

func (r *recordingSink) Reset() error {
	if r.failReset != nil {
		return r.failReset
	}
	r.open = false
	r.resets++
	r.buf.WriteString("</>")
	return nil
}

func (r *recordingSink) String() string {
	return r.buf.String()
}

// failAfter fails every write once limit bytes have been written.
type failAfter struct {
	limit int
	err   error
	buf   bytes.Buffer
}

func (f *failAfter) Write(p []byte) (int, error) {
	if f.buf.Len()+len(p) > f.limit {
		return 0, f.err
	}
	return f.buf.Write(p)
}

var errSink = errors.New("sink failure")
