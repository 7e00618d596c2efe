// Package style describes terminal text styles and the color-capable
// writers that render them.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Spec describes how a run of text should look: an optional foreground
// color plus emphasis flags. The zero value means "no styling".
type Spec struct {
	Fg        color.Attribute
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool

	rgb    [3]uint8
	hasRGB bool
}

// RGB returns a copy of s using a 24-bit foreground color.
// It replaces any named foreground color.
func (s Spec) RGB(r, g, b uint8) Spec {
	s.Fg = 0
	s.rgb = [3]uint8{r, g, b}
	s.hasRGB = true
	return s
}

// IsZero reports whether s carries no styling at all.
func (s Spec) IsZero() bool {
	return s == Spec{}
}

// Attributes returns the SGR attributes of s, foreground first.
// A 24-bit foreground is not included; see [Spec.RGB].
func (s Spec) Attributes() []color.Attribute {
	attrs := make([]color.Attribute, 0, 5)
	if s.Fg != 0 {
		attrs = append(attrs, s.Fg)
	}
	if s.Bold {
		attrs = append(attrs, color.Bold)
	}
	if s.Dim {
		attrs = append(attrs, color.Faint)
	}
	if s.Italic {
		attrs = append(attrs, color.Italic)
	}
	if s.Underline {
		attrs = append(attrs, color.Underline)
	}
	return attrs
}

// color builds a fatih color that always emits escape sequences,
// regardless of the package-level NoColor switch.
func (s Spec) color() *color.Color {
	c := color.New(s.Attributes()...)
	if s.hasRGB {
		c.AddRGB(int(s.rgb[0]), int(s.rgb[1]), int(s.rgb[2]))
	}
	c.EnableColor()
	return c
}

var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// brightOffset is the distance between FgBlack and FgHiBlack.
const brightOffset = color.FgHiBlack - color.FgBlack

// String returns s in the form accepted by [ParseSpec].
func (s Spec) String() string {
	if s.IsZero() {
		return "none"
	}

	var words []string
	if s.Bold {
		words = append(words, "bold")
	}
	if s.Dim {
		words = append(words, "dim")
	}
	if s.Italic {
		words = append(words, "italic")
	}
	if s.Underline {
		words = append(words, "underline")
	}
	switch {
	case s.hasRGB:
		words = append(words, fmt.Sprintf("#%02x%02x%02x", s.rgb[0], s.rgb[1], s.rgb[2]))
	case s.Fg != 0:
		words = append(words, fgName(s.Fg))
	}
	return strings.Join(words, " ")
}

func fgName(fg color.Attribute) string {
	for name, attr := range colorNames {
		if attr == fg {
			return name
		}
		if attr+brightOffset == fg {
			return "bright-" + name
		}
	}
	return strconv.Itoa(int(fg))
}

// ParseSpec parses a style such as "bold blue", "underline #ff8800" or
// "bright-black". Words may be separated by spaces, commas or '+'.
// The empty string and "none" yield the zero Spec.
func ParseSpec(text string) (Spec, error) {
	var s Spec

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == ',' || r == '+' || r == '\t'
	})

	hasColor := false
	setColor := func() error {
		if hasColor {
			return fmt.Errorf("style %q: more than one color", text)
		}
		hasColor = true
		return nil
	}

	for _, word := range fields {
		switch word {
		case "none":
			continue
		case "bold":
			s.Bold = true
			continue
		case "dim", "faint":
			s.Dim = true
			continue
		case "italic":
			s.Italic = true
			continue
		case "underline":
			s.Underline = true
			continue
		}

		if err := setColor(); err != nil {
			return Spec{}, err
		}

		if strings.HasPrefix(word, "#") {
			r, g, b, err := parseHex(word)
			if err != nil {
				return Spec{}, fmt.Errorf("style %q: %w", text, err)
			}
			s = s.RGB(r, g, b)
			continue
		}

		name, bright := strings.CutPrefix(word, "bright-")
		if !bright {
			name, bright = strings.CutPrefix(word, "hi-")
		}
		fg, ok := colorNames[name]
		if !ok {
			return Spec{}, fmt.Errorf("style %q: unknown color or attribute %q", text, word)
		}
		if bright {
			fg += brightOffset
		}
		s.Fg = fg
	}

	return s, nil
}

func parseHex(word string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(word, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", word)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", word)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
