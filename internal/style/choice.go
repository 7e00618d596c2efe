package style

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Choice selects when output is colored.
type Choice int

const (
	// Auto colors output only when it goes to a terminal.
	Auto Choice = iota
	// Always colors output unconditionally.
	Always
	// Never disables color.
	Never
)

var choiceNames = []string{"auto", "always", "never"}

// ChoiceNames lists the accepted [Choice] spellings.
func ChoiceNames() []string {
	return append([]string(nil), choiceNames...)
}

// ParseChoice converts "auto", "always" or "never" to a Choice.
// The empty string is treated as "auto".
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	}
	return Auto, fmt.Errorf("invalid color choice %q (want one of %s)", s, strings.Join(choiceNames, ", "))
}

func (c Choice) String() string {
	if c < 0 || int(c) >= len(choiceNames) {
		return fmt.Sprintf("Choice(%d)", int(c))
	}
	return choiceNames[c]
}

// Enabled reports whether output written to f should be colored.
func (c Choice) Enabled(f *os.File) bool {
	switch c {
	case Always:
		return true
	case Never:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Output returns the destination to use for f and whether it should be
// colored. Colored output goes through go-colorable so escape sequences
// also work on Windows consoles.
func (c Choice) Output(f *os.File) (io.Writer, bool) {
	if c.Enabled(f) {
		return colorable.NewColorable(f), true
	}
	return f, false
}
