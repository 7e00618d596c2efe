package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// PrettyHandler implements slog.Handler for human-friendly terminal output.
//
// Each record is written on one line:
//
//	15:04:05.000 WARN  [file.go:12] message key=value group.key=value
//
// Colors are used only when the writer is a terminal and NO_COLOR is unset.
type PrettyHandler struct {
	opts   slog.HandlerOptions
	writer io.Writer

	// mu serializes writes from handlers derived with WithAttrs and WithGroup.
	mu *sync.Mutex

	// attrs are pre-rendered "key=value" pairs added with WithAttrs.
	attrs []string

	// prefix is the dotted group path applied to record attributes.
	prefix string

	colors *prettyColors
}

// prettyColors holds the colors of the different parts of a line.
type prettyColors struct {
	timestamp *color.Color
	debug     *color.Color
	info      *color.Color
	warn      *color.Color
	error     *color.Color
	source    *color.Color
	message   *color.Color
	attrKey   *color.Color
	attrValue *color.Color
}

func newPrettyColors(enabled bool) *prettyColors {
	c := &prettyColors{
		timestamp: color.New(color.FgHiBlack),
		debug:     color.New(color.FgMagenta, color.Bold),
		info:      color.New(color.FgGreen, color.Bold),
		warn:      color.New(color.FgYellow, color.Bold),
		error:     color.New(color.FgRed, color.Bold),
		source:    color.New(color.FgCyan),
		message:   color.New(color.Bold),
		attrKey:   color.New(color.FgCyan),
		attrValue: color.New(color.FgHiBlack),
	}
	for _, col := range []*color.Color{
		c.timestamp, c.debug, c.info, c.warn, c.error,
		c.source, c.message, c.attrKey, c.attrValue,
	} {
		if enabled {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// NewPrettyHandler creates a new pretty handler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	enabled := false
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &PrettyHandler{
		opts:   *opts,
		writer: w,
		mu:     &sync.Mutex{},
		colors: newPrettyColors(enabled),
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes a log record.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	if !r.Time.IsZero() {
		_, _ = h.colors.timestamp.Fprint(&buf, r.Time.Format("15:04:05.000"))
		buf.WriteByte(' ')
	}

	_, _ = h.levelColor(r.Level).Fprint(&buf, formatLevel(r.Level))
	buf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		if file, line := sourceOf(r.PC); file != "" {
			_, _ = h.colors.source.Fprintf(&buf, "[%s:%d]", file, line)
			buf.WriteByte(' ')
		}
	}

	_, _ = h.colors.message.Fprint(&buf, r.Message)

	for _, a := range h.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.appendAttr(&buf, h.prefix, attr)
		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, buf.String())
	return err
}

// WithAttrs returns a new handler with the given attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf strings.Builder
	for _, attr := range attrs {
		h.appendAttr(&buf, h.prefix, attr)
	}

	h2 := *h
	h2.attrs = make([]string, 0, len(h.attrs)+1)
	h2.attrs = append(h2.attrs, h.attrs...)
	if s := strings.TrimPrefix(buf.String(), " "); s != "" {
		h2.attrs = append(h2.attrs, s)
	}
	return &h2
}

// WithGroup returns a new handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// appendAttr writes " key=value", flattening groups into dotted keys.
func (h *PrettyHandler) appendAttr(buf *strings.Builder, prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		if len(group) == 0 {
			return
		}
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, a := range group {
			h.appendAttr(buf, prefix, a)
		}
		return
	}

	buf.WriteByte(' ')
	_, _ = h.colors.attrKey.Fprint(buf, prefix+attr.Key)
	_, _ = h.colors.attrValue.Fprint(buf, "=")
	_, _ = h.colors.attrValue.Fprint(buf, formatValue(attr.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		if err, ok := v.Any().(error); ok {
			return strconv.Quote(err.Error())
		}
		return strconv.Quote(v.String())
	}
}

func (h *PrettyHandler) levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return h.colors.error
	case level >= slog.LevelWarn:
		return h.colors.warn
	case level >= slog.LevelInfo:
		return h.colors.info
	default:
		return h.colors.debug
	}
}

// formatLevel pads the level name to five columns.
func formatLevel(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO "
	case slog.LevelWarn:
		return "WARN "
	case slog.LevelError:
		return "ERROR"
	default:
		return level.String()
	}
}

// sourceOf returns the base file name and line of pc.
func sourceOf(pc uintptr) (string, int) {
	fs := runtime.CallersFrames([]uintptr{pc})
	f, _ := fs.Next()
	if f.File == "" {
		return "", 0
	}
	return filepath.Base(f.File), f.Line
}
