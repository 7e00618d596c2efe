package colorjson

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/dr8co/yj/internal/style"
)

func colorize(t *testing.T, b Builder, v any) {
	t.Helper()
	if err := b.Build().Serialize(v); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
}

// TestColorizedScenarios checks the exact interleaving of bytes and style
// commands for a small document.
func TestColorizedScenarios(t *testing.T) {
	doc := map[string]any{"a": "x", "b": nil}

	tests := []struct {
		name    string
		builder func(style.Writer) Builder
		want    string
	}{
		{
			name:    "compact",
			builder: NewBuilder,
			want:    `{<bold blue>"a"</>:<bold green>"x"</>,<bold blue>"b"</>:<bold black>null</>}`,
		},
		{
			name:    "pretty",
			builder: NewPrettyBuilder,
			want:    "{\n  <bold blue>\"a\"</>: <bold green>\"x\"</>,\n  <bold blue>\"b\"</>: <bold black>null</>\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			colorize(t, tt.builder(sink), doc)
			if sink.String() != tt.want {
				t.Errorf("got\n%s\nwant\n%s", sink.String(), tt.want)
			}
		})
	}
}

func TestColorizedANSI(t *testing.T) {
	var buf bytes.Buffer
	colorize(t, NewBuilder(style.NewANSIWriter(&buf)), map[string]any{"a": "x", "b": nil})

	want := "{\x1b[34;1m\"a\"\x1b[0m:\x1b[32;1m\"x\"\x1b[0m,\x1b[34;1m\"b\"\x1b[0m:\x1b[30;1mnull\x1b[0m}"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestColorizedPlainSinkMatchesInner(t *testing.T) {
	doc := map[string]any{
		"list":  []any{"a", 1, nil, true, map[string]any{"k": "v\n"}},
		"empty": map[string]any{},
	}

	for _, pretty := range []bool{false, true} {
		var plain, want bytes.Buffer

		b := NewBuilder(style.NewPlainWriter(&plain))
		var inner Formatter = CompactFormatter{}
		if pretty {
			b = NewPrettyBuilder(style.NewPlainWriter(&plain))
			inner = NewPrettyFormatter()
		}
		colorize(t, b, doc)

		if err := NewSerializer(&want, inner).Serialize(doc); err != nil {
			t.Fatal(err)
		}
		if plain.String() != want.String() {
			t.Errorf("pretty=%v: got\n%s\nwant\n%s", pretty, plain.String(), want.String())
		}
	}
}

func TestColorizedKeyVersusString(t *testing.T) {
	doc := NewObject(2)
	inner := NewObject(1)
	inner.Set("k\"ey", "val")
	doc.Set("outer", []any{inner, "s"})
	doc.Set("n", 1)

	sink := &recordingSink{}
	colorize(t, NewBuilder(sink), doc)

	want := `{<bold blue>"outer"</>:[{<bold blue>"k\"ey"</>:<bold green>"val"</>},<bold green>"s"</>],<bold blue>"n"</>:1}`
	if sink.String() != want {
		t.Errorf("got\n%s\nwant\n%s", sink.String(), want)
	}
}

func TestColorizedNoStylesAroundScalars(t *testing.T) {
	sink := &recordingSink{}
	colorize(t, NewPrettyBuilder(sink), []any{1, -2.5, true, false, uint8(7)})

	if sink.sets != 0 || sink.resets != 0 {
		t.Errorf("got %d sets and %d resets, want none", sink.sets, sink.resets)
	}
	if strings.ContainsAny(sink.String(), "<>") {
		t.Errorf("unexpected style markers in %q", sink.String())
	}
}

func TestColorizedPairing(t *testing.T) {
	doc := map[string]any{
		"a": []any{nil, "x", map[string]any{"b": nil, "c": []any{"d", nil}}},
		"e": "f",
		"g": map[string]any{},
		"h": 3,
	}

	sink := &recordingSink{}
	colorize(t, NewPrettyBuilder(sink), doc)

	if sink.sets != sink.resets {
		t.Errorf("sets = %d, resets = %d", sink.sets, sink.resets)
	}
	// 4 keys, 2 nested keys, 3 strings, 3 nulls
	if sink.sets != 12 {
		t.Errorf("sets = %d, want 12", sink.sets)
	}
	if sink.nested {
		t.Error("SetColor issued while a style was active")
	}
	if sink.open {
		t.Error("document ended with an active style")
	}
}

func TestColorizedNullStyle(t *testing.T) {
	sink := &recordingSink{}
	b := NewBuilder(sink).WithNullColor(style.Spec{Fg: color.FgRed})
	colorize(t, b, nil)

	if sink.String() != "<red>null</>" {
		t.Errorf("got %q, want %q", sink.String(), "<red>null</>")
	}
}

func TestColorizedIdempotent(t *testing.T) {
	doc := map[string]any{"x": []any{"y", nil, 1.5}}
	var outs [2]string
	for i := range outs {
		sink := &recordingSink{}
		colorize(t, NewPrettyBuilder(sink).WithStringColor(style.Spec{Italic: true}), doc)
		outs[i] = sink.String()
	}
	if outs[0] != outs[1] {
		t.Errorf("outputs differ:\n%s\n%s", outs[0], outs[1])
	}
}

func TestBuilderCopies(t *testing.T) {
	base := NewBuilder(&recordingSink{})
	custom := base.WithObjectKeyColor(style.Spec{Fg: color.FgMagenta})

	if got := base.BuildFormatter().keyColor; got != DefaultObjectKeyColor {
		t.Errorf("base key color changed to %v", got)
	}
	if got := custom.BuildFormatter().keyColor; got != (style.Spec{Fg: color.FgMagenta}) {
		t.Errorf("custom key color = %v", got)
	}

	f := NewBuilder(&recordingSink{}).WithStringColor(style.Spec{}).BuildFormatter()
	if f.stringColor != (style.Spec{}) || f.nullColor != DefaultNullColor {
		t.Errorf("unexpected colors: string %v, null %v", f.stringColor, f.nullColor)
	}
}

func TestColorizedIgnoresPassedWriter(t *testing.T) {
	sink := &recordingSink{}
	f := NewBuilder(sink).BuildFormatter()

	var other bytes.Buffer
	if err := f.WriteBool(&other, true); err != nil {
		t.Fatal(err)
	}
	if err := f.WriteNull(&other); err != nil {
		t.Fatal(err)
	}

	if other.Len() != 0 {
		t.Errorf("passed writer received %q", other.String())
	}
	if sink.String() != "true<bold black>null</>" {
		t.Errorf("sink = %q", sink.String())
	}
}

func TestColorizedErrors(t *testing.T) {
	t.Run("set color fails", func(t *testing.T) {
		sink := &recordingSink{failSet: errSink}
		err := NewBuilder(sink).Build().Serialize([]any{"x"})
		if !errors.Is(err, errSink) {
			t.Fatalf("error = %v, want %v", err, errSink)
		}
		if sink.String() != "[" {
			t.Errorf("output after failure = %q, want %q", sink.String(), "[")
		}
	})

	t.Run("reset fails", func(t *testing.T) {
		sink := &recordingSink{failReset: errSink}
		err := NewBuilder(sink).Build().Serialize(nil)
		if !errors.Is(err, errSink) {
			t.Fatalf("error = %v, want %v", err, errSink)
		}
	})

	t.Run("write fails", func(t *testing.T) {
		w := &failAfter{limit: 3, err: io.ErrShortWrite}
		err := NewBuilder(style.NewANSIWriter(w)).Build().Serialize(map[string]any{"key": 1})
		if !errors.Is(err, io.ErrShortWrite) {
			t.Fatalf("error = %v, want %v", err, io.ErrShortWrite)
		}
	})

	t.Run("inner formatter fails", func(t *testing.T) {
		sink := &recordingSink{}
		f := NewBuilderWithFormatter(sink, failingFormatter{CompactFormatter{}}).BuildFormatter()
		if err := f.WriteNull(nil); !errors.Is(err, errSink) {
			t.Fatalf("error = %v, want %v", err, errSink)
		}
		if sink.resets != 0 {
			t.Error("Reset issued after inner failure")
		}
	})
}

type failingFormatter struct {
	CompactFormatter
}

func (failingFormatter) WriteNull(io.Writer) error { return errSink }

// keyModeRecorder notes whether its decorator is still in key mode when
// each key ends.
type keyModeRecorder struct {
	CompactFormatter
	outer *ColorizedFormatter
	seen  []bool
}

func (k *keyModeRecorder) EndObjectKey(w io.Writer) error {
	k.seen = append(k.seen, k.outer.isObjectKey)
	return k.CompactFormatter.EndObjectKey(w)
}

func TestColorizedKeyModeSpansEndObjectKey(t *testing.T) {
	inner := &keyModeRecorder{}
	f := NewBuilderWithFormatter(&recordingSink{}, inner).BuildFormatter()
	inner.outer = f

	if err := NewSerializer(io.Discard, f).Serialize(map[string]any{"a": 1, "b": "x"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if len(inner.seen) != 2 || !inner.seen[0] || !inner.seen[1] {
		t.Errorf("key mode at EndObjectKey = %v, want [true true]", inner.seen)
	}
	if f.isObjectKey {
		t.Error("still in key mode after the object")
	}
}
