package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Report writes a human-readable summary of s to w. Colors follow the
// terminal capabilities of w.
func Report(w io.Writer, s *Stats) error {
	renderer := lipgloss.NewRenderer(w)

	headerStyle := renderer.NewStyle().Foreground(lipgloss.Color("#B266FF")).Bold(true) // purple
	labelStyle := renderer.NewStyle().Foreground(lipgloss.Color("#A0A0A0"))             // gray
	valueStyle := renderer.NewStyle().Foreground(lipgloss.Color("#00FF99")).Bold(true)  // spring green
	styleStyle := renderer.NewStyle().Foreground(lipgloss.Color("#00CFFF"))             // cyan blue
	warnStyle := renderer.NewStyle().Foreground(lipgloss.Color("#FF7F50"))              // coral orange

	if _, err := fmt.Fprintln(w, headerStyle.Render("📊 Conversion summary:")); err != nil {
		return err
	}

	line := func(label, value string) error {
		_, err := fmt.Fprintf(w, "   %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
		return err
	}

	rows := []struct {
		label string
		value string
	}{
		{"Documents:", fmt.Sprintf("%d", s.GetDocuments())},
		{"Objects:", fmt.Sprintf("%d (%d keys)", s.Objects, s.Keys)},
		{"Arrays:", fmt.Sprintf("%d", s.Arrays)},
		{"Values:", fmt.Sprintf("%d strings, %d numbers, %d booleans, %d nulls", s.Strings, s.Numbers, s.Bools, s.Nulls)},
		{"Output:", FormatBytes(int64(s.BytesWritten))},
		{"Checksum (xxh3):", fmt.Sprintf("%016x", s.Checksum())},
		{"Time:", s.Duration.Round(time.Microsecond).String()},
	}
	for _, r := range rows {
		if err := line(r.label, r.value); err != nil {
			return err
		}
	}

	styles := fmt.Sprintf("%d set, %d reset", s.StyleSets, s.StyleResets)
	if s.StyleSets != s.StyleResets {
		styles = warnStyle.Render(styles + " (unbalanced)")
	} else {
		styles = styleStyle.Render(styles)
	}
	_, err := fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("Style commands:"), styles)
	return err
}
