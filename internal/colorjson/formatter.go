// Package colorjson writes JSON through a stream of formatting events and
// decorates that stream with terminal colors.
//
// A [Serializer] walks a Go value and calls one [Formatter] method per
// syntactic event. [CompactFormatter] and [PrettyFormatter] turn events
// into bytes; [ColorizedFormatter] wraps either of them and brackets
// object keys, strings and nulls with style commands on a [style.Writer].
package colorjson

import (
	"io"
)

// Formatter receives the formatting events of one JSON document.
// Every method writes to w and returns the first write error.
type Formatter interface {
	WriteNull(w io.Writer) error
	WriteBool(w io.Writer, v bool) error
	WriteInt8(w io.Writer, v int8) error
	WriteInt16(w io.Writer, v int16) error
	WriteInt32(w io.Writer, v int32) error
	WriteInt64(w io.Writer, v int64) error
	WriteUint8(w io.Writer, v uint8) error
	WriteUint16(w io.Writer, v uint16) error
	WriteUint32(w io.Writer, v uint32) error
	WriteUint64(w io.Writer, v uint64) error
	WriteFloat32(w io.Writer, v float32) error
	WriteFloat64(w io.Writer, v float64) error
	// WriteNumberStr writes a number already in JSON form.
	WriteNumberStr(w io.Writer, v string) error

	BeginString(w io.Writer) error
	EndString(w io.Writer) error
	// WriteStringFragment writes string content that needs no escaping.
	WriteStringFragment(w io.Writer, fragment string) error
	WriteCharEscape(w io.Writer, c CharEscape) error

	BeginArray(w io.Writer) error
	EndArray(w io.Writer) error
	BeginArrayValue(w io.Writer, first bool) error
	EndArrayValue(w io.Writer) error

	BeginObject(w io.Writer) error
	EndObject(w io.Writer) error
	BeginObjectKey(w io.Writer, first bool) error
	EndObjectKey(w io.Writer) error
	BeginObjectValue(w io.Writer) error
	EndObjectValue(w io.Writer) error

	// WriteRawFragment writes already-encoded JSON verbatim.
	WriteRawFragment(w io.Writer, fragment string) error
}

// CharEscape is a byte of string content that must be written as an
// escape sequence.
type CharEscape byte

// Escapes with a short form. Any other control byte is written as \u00XX.
const (
	EscapeQuote          CharEscape = '"'
	EscapeReverseSolidus CharEscape = '\\'
	EscapeSolidus        CharEscape = '/'
	EscapeBackspace      CharEscape = '\b'
	EscapeFormFeed       CharEscape = '\f'
	EscapeLineFeed       CharEscape = '\n'
	EscapeCarriageReturn CharEscape = '\r'
	EscapeTab            CharEscape = '\t'
)

const hexDigits = "0123456789abcdef"

// AppendTo appends the escape sequence for c to dst.
func (c CharEscape) AppendTo(dst []byte) []byte {
	switch c {
	case EscapeQuote, EscapeReverseSolidus, EscapeSolidus:
		return append(dst, '\\', byte(c))
	case EscapeBackspace:
		return append(dst, '\\', 'b')
	case EscapeFormFeed:
		return append(dst, '\\', 'f')
	case EscapeLineFeed:
		return append(dst, '\\', 'n')
	case EscapeCarriageReturn:
		return append(dst, '\\', 'r')
	case EscapeTab:
		return append(dst, '\\', 't')
	}
	return append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
}

func (c CharEscape) String() string {
	return string(c.AppendTo(nil))
}

// escapeFor returns the escape for b and whether b needs one.
func escapeFor(b byte) (CharEscape, bool) {
	switch {
	case b == '"' || b == '\\':
		return CharEscape(b), true
	case b < 0x20:
		return CharEscape(b), true
	}
	return 0, false
}
