package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dr8co/yj/internal/colorjson"
)

// jsonDecoder reads a sequence of JSON values, keeping object members in
// document order.
type jsonDecoder struct {
	dec  *json.Decoder
	opts Options
}

func newJSONDecoder(r io.Reader, opts Options) *jsonDecoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonDecoder{dec: dec, opts: opts}
}

func (d *jsonDecoder) Decode() (any, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	v, err := d.value(tok)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

func (d *jsonDecoder) token() (json.Token, error) {
	tok, err := d.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *jsonDecoder) value(tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.object()
		case '[':
			return d.array()
		}
		return nil, fmt.Errorf("unexpected %q", rune(t))
	case nil, bool, string, json.Number:
		return t, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func (d *jsonDecoder) array() (any, error) {
	arr := []any{}
	for d.dec.More() {
		tok, err := d.token()
		if err != nil {
			return nil, err
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := d.token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func (d *jsonDecoder) object() (any, error) {
	obj := newObjectBuilder()
	for d.dec.More() {
		tok, err := d.token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		if tok, err = d.token(); err != nil {
			return nil, err
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		obj.set(key, v)
	}
	if _, err := d.token(); err != nil {
		return nil, err
	}
	return obj.build(d.opts.SortKeys), nil
}

// objectBuilder collects members with last-wins duplicate handling in
// linear time.
type objectBuilder struct {
	obj   *colorjson.Object
	index map[string]int
}

func newObjectBuilder() *objectBuilder {
	return &objectBuilder{obj: colorjson.NewObject(0), index: map[string]int{}}
}

func (b *objectBuilder) has(key string) bool {
	_, ok := b.index[key]
	return ok
}

func (b *objectBuilder) set(key string, v any) {
	if i, ok := b.index[key]; ok {
		b.obj.Members[i].Value = v
		return
	}
	b.index[key] = len(b.obj.Members)
	b.obj.Members = append(b.obj.Members, colorjson.Member{Key: key, Value: v})
}

func (b *objectBuilder) build(sortKeys bool) *colorjson.Object {
	if sortKeys {
		b.obj.SortKeys()
	}
	return b.obj
}
