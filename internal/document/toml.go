package document

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dr8co/yj/internal/colorjson"
)

// tomlDecoder reads a single TOML document. Key order is recovered from
// the decoder metadata.
type tomlDecoder struct {
	r    io.Reader
	opts Options
	done bool
}

func newTOMLDecoder(r io.Reader, opts Options) *tomlDecoder {
	return &tomlDecoder{r: r, opts: opts}
}

func (d *tomlDecoder) Decode() (any, error) {
	if d.done {
		return nil, io.EOF
	}
	d.done = true

	var doc map[string]any
	md, err := toml.NewDecoder(d.r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}

	order := make(map[string]int)
	for i, key := range md.Keys() {
		path := strings.Join(key, "\x00")
		if _, seen := order[path]; !seen {
			order[path] = i
		}
	}

	c := tomlConverter{order: order, opts: d.opts}
	return c.table(nil, doc), nil
}

type tomlConverter struct {
	order map[string]int
	opts  Options
}

func (c tomlConverter) position(path []string) int {
	if i, ok := c.order[strings.Join(path, "\x00")]; ok {
		return i
	}
	return math.MaxInt
}

func (c tomlConverter) table(path []string, t map[string]any) *colorjson.Object {
	obj := colorjson.NewObject(len(t))
	for k, v := range t {
		childPath := append(slices.Clip(path), k)
		obj.Members = append(obj.Members, colorjson.Member{Key: k, Value: c.value(childPath, v)})
	}

	if c.opts.SortKeys {
		obj.SortKeys()
		return obj
	}
	slices.SortFunc(obj.Members, func(a, b colorjson.Member) int {
		pa := c.position(append(slices.Clip(path), a.Key))
		pb := c.position(append(slices.Clip(path), b.Key))
		if pa != pb {
			if pa < pb {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Key, b.Key)
	})
	return obj
}

func (c tomlConverter) value(path []string, v any) any {
	switch v := v.(type) {
	case map[string]any:
		return c.table(path, v)
	case []map[string]any:
		arr := make([]any, len(v))
		for i, t := range v {
			arr[i] = c.table(path, t)
		}
		return arr
	case []any:
		arr := make([]any, len(v))
		for i, item := range v {
			arr[i] = c.value(path, item)
		}
		return arr
	case time.Time:
		return formatTOMLTime(v)
	}
	return v
}

// formatTOMLTime renders datetimes the way they are written in TOML.
// Local dates and times carry a named zone from the decoder.
func formatTOMLTime(t time.Time) string {
	switch t.Location().String() {
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	case "date-local":
		return t.Format("2006-01-02")
	case "time-local":
		return t.Format("15:04:05.999999999")
	}
	return t.Format(time.RFC3339Nano)
}
