package colorjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedType is returned for values the Serializer cannot encode.
var ErrUnsupportedType = errors.New("unsupported value type")

// Serializer walks Go values and reports them to a Formatter.
//
// Supported values are nil, bool, every integer and float type, string,
// [json.Number], [json.RawMessage], []any, map[string]any (written with
// sorted keys) and [Object] (written in member order). NaN and infinite
// floats are written as null.
type Serializer struct {
	w io.Writer
	f Formatter
}

// NewSerializer returns a Serializer that reports events for w to f.
func NewSerializer(w io.Writer, f Formatter) *Serializer {
	return &Serializer{w: w, f: f}
}

// Formatter returns the formatter receiving the events.
func (s *Serializer) Formatter() Formatter {
	return s.f
}

// Serialize writes v as one JSON document.
func (s *Serializer) Serialize(v any) error {
	return s.value(v)
}

func (s *Serializer) value(v any) error {
	switch v := v.(type) {
	case nil:
		return s.f.WriteNull(s.w)
	case bool:
		return s.f.WriteBool(s.w, v)
	case int:
		return s.f.WriteInt64(s.w, int64(v))
	case int8:
		return s.f.WriteInt8(s.w, v)
	case int16:
		return s.f.WriteInt16(s.w, v)
	case int32:
		return s.f.WriteInt32(s.w, v)
	case int64:
		return s.f.WriteInt64(s.w, v)
	case uint:
		return s.f.WriteUint64(s.w, uint64(v))
	case uint8:
		return s.f.WriteUint8(s.w, v)
	case uint16:
		return s.f.WriteUint16(s.w, v)
	case uint32:
		return s.f.WriteUint32(s.w, v)
	case uint64:
		return s.f.WriteUint64(s.w, v)
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return s.f.WriteNull(s.w)
		}
		return s.f.WriteFloat32(s.w, v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return s.f.WriteNull(s.w)
		}
		return s.f.WriteFloat64(s.w, v)
	case json.Number:
		if v == "" {
			return s.f.WriteInt64(s.w, 0)
		}
		return s.f.WriteNumberStr(s.w, string(v))
	case json.RawMessage:
		if len(v) == 0 {
			return s.f.WriteNull(s.w)
		}
		return s.f.WriteRawFragment(s.w, string(v))
	case string:
		return s.str(v)
	case []any:
		return s.array(v)
	case map[string]any:
		return s.mapping(v)
	case *Object:
		if v == nil {
			return s.f.WriteNull(s.w)
		}
		return s.object(v.Members)
	case Object:
		return s.object(v.Members)
	}
	return fmt.Errorf("colorjson: %w: %T", ErrUnsupportedType, v)
}

// str splits v into unescaped fragments and escapes. Invalid UTF-8 is
// replaced with U+FFFD.
func (s *Serializer) str(v string) error {
	if !utf8.ValidString(v) {
		v = strings.ToValidUTF8(v, "\uFFFD")
	}
	if err := s.f.BeginString(s.w); err != nil {
		return err
	}

	start := 0
	for i := 0; i < len(v); i++ {
		esc, ok := escapeFor(v[i])
		if !ok {
			continue
		}
		if start < i {
			if err := s.f.WriteStringFragment(s.w, v[start:i]); err != nil {
				return err
			}
		}
		if err := s.f.WriteCharEscape(s.w, esc); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(v) {
		if err := s.f.WriteStringFragment(s.w, v[start:]); err != nil {
			return err
		}
	}

	return s.f.EndString(s.w)
}

func (s *Serializer) array(v []any) error {
	if err := s.f.BeginArray(s.w); err != nil {
		return err
	}
	for i, elem := range v {
		if err := s.f.BeginArrayValue(s.w, i == 0); err != nil {
			return err
		}
		if err := s.value(elem); err != nil {
			return err
		}
		if err := s.f.EndArrayValue(s.w); err != nil {
			return err
		}
	}
	return s.f.EndArray(s.w)
}

func (s *Serializer) mapping(v map[string]any) error {
	members := make([]Member, 0, len(v))
	for k, val := range v {
		members = append(members, Member{Key: k, Value: val})
	}
	slices.SortFunc(members, func(a, b Member) int {
		return strings.Compare(a.Key, b.Key)
	})
	return s.object(members)
}

func (s *Serializer) object(members []Member) error {
	if err := s.f.BeginObject(s.w); err != nil {
		return err
	}
	for i, m := range members {
		if err := s.f.BeginObjectKey(s.w, i == 0); err != nil {
			return err
		}
		if err := s.str(m.Key); err != nil {
			return err
		}
		if err := s.f.EndObjectKey(s.w); err != nil {
			return err
		}
		if err := s.f.BeginObjectValue(s.w); err != nil {
			return err
		}
		if err := s.value(m.Value); err != nil {
			return err
		}
		if err := s.f.EndObjectValue(s.w); err != nil {
			return err
		}
	}
	return s.f.EndObject(s.w)
}
