package indent

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestNew tests the [New] function.
func TestNew(t *testing.T) {
	i := New()
	if i.Level() != 0 {
		t.Errorf("Level() = %d, want 0", i.Level())
	}
	if i.Size() != DefaultSize {
		t.Errorf("Size() = %d, want %d", i.Size(), DefaultSize)
	}
	if got := i.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestIncrement(t *testing.T) {
	base := New()
	next := base.Increment()

	if base.Level() != 0 {
		t.Errorf("receiver changed: Level() = %d, want 0", base.Level())
	}
	if next.Level() != 1 || next.Size() != DefaultSize {
		t.Errorf("Increment() = {%d, %d}, want {1, %d}", next.Level(), next.Size(), DefaultSize)
	}
	if got := next.String(); got != "  " {
		t.Errorf("String() = %q, want two spaces", got)
	}
}

func TestWithSize(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"four", 4, 4},
		{"zero", 0, 0},
		{"negative clamps", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := New().Increment().WithSize(tt.size)
			if i.Size() != tt.want {
				t.Errorf("Size() = %d, want %d", i.Size(), tt.want)
			}
			if i.Level() != 1 {
				t.Errorf("Level() = %d, want 1", i.Level())
			}
		})
	}
}

func TestRenderWidth(t *testing.T) {
	for _, size := range []int{0, 1, 2, 4, 8} {
		i := New().WithSize(size)
		for k := 0; k < 40; k++ {
			var buf bytes.Buffer
			if err := i.Render(&buf); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			want := strings.Repeat(" ", k*size)
			if buf.String() != want {
				t.Fatalf("size %d level %d: Render() wrote %d bytes, want %d", size, k, buf.Len(), len(want))
			}
			if i.String() != want {
				t.Fatalf("size %d level %d: String() mismatch", size, k)
			}
			i = i.Increment()
		}
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestRenderError(t *testing.T) {
	sentinel := errors.New("sink closed")
	i := New().Increment()

	if err := i.Render(failingWriter{sentinel}); !errors.Is(err, sentinel) {
		t.Errorf("Render() error = %v, want %v", err, sentinel)
	}
	if err := New().Render(failingWriter{sentinel}); err != nil {
		t.Errorf("Render() at level 0 error = %v, want nil", err)
	}
}
