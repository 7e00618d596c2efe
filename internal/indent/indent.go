// Package indent provides an immutable indentation accumulator used by
// the pretty JSON formatter.
package indent

import (
	"io"
	"strings"
)

// DefaultSize is the number of spaces per level when no size is given.
const DefaultSize = 2

const spaces = "                                                                "

// Indent tracks a nesting level and the number of spaces per level.
// The zero value renders nothing; use [New] for the default size.
type Indent struct {
	level int
	size  int
}

// New returns an indent at level 0 with [DefaultSize] spaces per level.
func New() Indent {
	return Indent{size: DefaultSize}
}

// WithSize returns a copy of i using n spaces per level.
// Negative sizes are treated as 0.
func (i Indent) WithSize(n int) Indent {
	i.size = max(n, 0)
	return i
}

// Increment returns a copy of i one level deeper.
func (i Indent) Increment() Indent {
	i.level++
	return i
}

// Level returns the nesting level.
func (i Indent) Level() int { return i.level }

// Size returns the spaces per level.
func (i Indent) Size() int { return i.size }

// Width returns the total number of spaces rendered.
func (i Indent) Width() int { return i.level * i.size }

// Render writes Width spaces to w.
func (i Indent) Render(w io.Writer) error {
	for n := i.Width(); n > 0; {
		chunk := min(n, len(spaces))
		if _, err := io.WriteString(w, spaces[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// String implements [fmt.Stringer].
func (i Indent) String() string {
	return strings.Repeat(" ", i.Width())
}
