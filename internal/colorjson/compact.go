package colorjson

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// CompactFormatter writes JSON with no insignificant whitespace.
type CompactFormatter struct{}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

// WriteNull writes null.
func (CompactFormatter) WriteNull(w io.Writer) error {
	return writeString(w, "null")
}

// WriteBool writes true or false.
func (CompactFormatter) WriteBool(w io.Writer, v bool) error {
	if v {
		return writeString(w, "true")
	}
	return writeString(w, "false")
}

func (CompactFormatter) WriteInt8(w io.Writer, v int8) error {
	return writeBytes(w, strconv.AppendInt(nil, int64(v), 10))
}

func (CompactFormatter) WriteInt16(w io.Writer, v int16) error {
	return writeBytes(w, strconv.AppendInt(nil, int64(v), 10))
}

func (CompactFormatter) WriteInt32(w io.Writer, v int32) error {
	return writeBytes(w, strconv.AppendInt(nil, int64(v), 10))
}

func (CompactFormatter) WriteInt64(w io.Writer, v int64) error {
	return writeBytes(w, strconv.AppendInt(nil, v, 10))
}

func (CompactFormatter) WriteUint8(w io.Writer, v uint8) error {
	return writeBytes(w, strconv.AppendUint(nil, uint64(v), 10))
}

func (CompactFormatter) WriteUint16(w io.Writer, v uint16) error {
	return writeBytes(w, strconv.AppendUint(nil, uint64(v), 10))
}

func (CompactFormatter) WriteUint32(w io.Writer, v uint32) error {
	return writeBytes(w, strconv.AppendUint(nil, uint64(v), 10))
}

func (CompactFormatter) WriteUint64(w io.Writer, v uint64) error {
	return writeBytes(w, strconv.AppendUint(nil, v, 10))
}

func (CompactFormatter) WriteFloat32(w io.Writer, v float32) error {
	return writeString(w, FormatFloat(float64(v), 32))
}

// WriteFloat64 writes v using [FormatFloat].
func (CompactFormatter) WriteFloat64(w io.Writer, v float64) error {
	return writeString(w, FormatFloat(v, 64))
}

// WriteNumberStr writes v verbatim.
func (CompactFormatter) WriteNumberStr(w io.Writer, v string) error {
	return writeString(w, v)
}

// BeginString writes the opening quote.
func (CompactFormatter) BeginString(w io.Writer) error {
	return writeString(w, `"`)
}

func (CompactFormatter) EndString(w io.Writer) error {
	return writeString(w, `"`)
}

func (CompactFormatter) WriteStringFragment(w io.Writer, fragment string) error {
	return writeString(w, fragment)
}

// WriteCharEscape writes the escaped form of c.
func (CompactFormatter) WriteCharEscape(w io.Writer, c CharEscape) error {
	var buf [6]byte
	return writeBytes(w, c.AppendTo(buf[:0]))
}

func (CompactFormatter) BeginArray(w io.Writer) error {
	return writeString(w, "[")
}

func (CompactFormatter) EndArray(w io.Writer) error {
	return writeString(w, "]")
}

// BeginArrayValue writes a comma before every element but the first.
func (CompactFormatter) BeginArrayValue(w io.Writer, first bool) error {
	if first {
		return nil
	}
	return writeString(w, ",")
}

func (CompactFormatter) EndArrayValue(io.Writer) error {
	return nil
}

func (CompactFormatter) BeginObject(w io.Writer) error {
	return writeString(w, "{")
}

func (CompactFormatter) EndObject(w io.Writer) error {
	return writeString(w, "}")
}

// BeginObjectKey writes a comma before every key but the first.
func (CompactFormatter) BeginObjectKey(w io.Writer, first bool) error {
	if first {
		return nil
	}
	return writeString(w, ",")
}

func (CompactFormatter) EndObjectKey(io.Writer) error {
	return nil
}

// BeginObjectValue writes the colon between a key and its value.
func (CompactFormatter) BeginObjectValue(w io.Writer) error {
	return writeString(w, ":")
}

func (CompactFormatter) EndObjectValue(io.Writer) error {
	return nil
}

// WriteRawFragment writes fragment verbatim.
func (CompactFormatter) WriteRawFragment(w io.Writer, fragment string) error {
	return writeString(w, fragment)
}

// FormatFloat formats a finite float with the shortest digits that
// round-trip at the given bit size. Integral values keep a trailing ".0"
// and large or tiny magnitudes switch to exponent form ("1e20", "1.5e-7").
// Callers handle NaN and infinities; they are returned as strconv would.
func FormatFloat(v float64, bitSize int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, bitSize)
	}

	maxPoint, minPoint := 16, -5
	if bitSize == 32 {
		maxPoint, minPoint = 13, -6
	}

	var sb strings.Builder
	if math.Signbit(v) {
		sb.WriteByte('-')
		v = -v
	}

	// "d.ddddde±XX" gives the significant digits and the exponent.
	sci := strconv.FormatFloat(v, 'e', -1, bitSize)
	mantissa, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.Replace(mantissa, ".", "", 1)

	n := len(digits)
	point := exp + 1 // position of the decimal point relative to digits

	switch {
	case point >= n && point <= maxPoint:
		sb.WriteString(digits)
		sb.WriteString(strings.Repeat("0", point-n))
		sb.WriteString(".0")
	case point > 0 && point <= maxPoint:
		sb.WriteString(digits[:point])
		sb.WriteByte('.')
		sb.WriteString(digits[point:])
	case point > minPoint && point <= 0:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -point))
		sb.WriteString(digits)
	default:
		sb.WriteByte(digits[0])
		if n > 1 {
			sb.WriteByte('.')
			sb.WriteString(digits[1:])
		}
		sb.WriteByte('e')
		sb.WriteString(strconv.Itoa(point - 1))
	}
	return sb.String()
}
