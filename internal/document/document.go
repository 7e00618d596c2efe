// Package document decodes JSON, YAML and TOML input into the values
// understood by colorjson.Serializer.
//
// Objects decode to *colorjson.Object, arrays to []any, numbers to
// json.Number, int64, uint64 or float64, and scalars to their Go
// counterparts.
package document

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// Format identifies an input syntax.
type Format string

// Supported input formats.
const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the accepted format names.
func Formats() []string {
	return []string{string(FormatAuto), string(FormatJSON), string(FormatYAML), string(FormatTOML)}
}

// ParseFormat converts a name such as "yml" or "JSON" to a Format.
// The empty string is [FormatAuto].
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json", "jsonl", "ndjson":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown input format %q (want one of %s)", name, strings.Join(Formats(), ", "))
}

var (
	tomlTable = regexp.MustCompile(`^\[\[?\s*([A-Za-z_][A-Za-z0-9_.\-]*)\s*\]\]?\s*(#.*)?$`)
	tomlKey   = regexp.MustCompile(`^[A-Za-z0-9_\-."]+\s*=`)
)

// DetectFormat guesses the format of a document from its file name and,
// failing that, from the first bytes of its content. YAML is the
// fallback since it accepts JSON too.
func DetectFormat(path string, head []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}

	head = bytes.TrimPrefix(head, utf8BOM)
	for _, line := range bytes.Split(head, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if m := tomlTable.FindSubmatch(line); m != nil && !isJSONLiteral(m[1]) {
			return FormatTOML
		}
		switch {
		case tomlKey.Match(line):
			return FormatTOML
		case line[0] == '{' || line[0] == '[':
			if jsonPrefix(head) {
				return FormatJSON
			}
		}
		return FormatYAML
	}
	return FormatYAML
}

// jsonPrefix reports whether head is valid JSON, or the start of it when
// the input is longer than head. YAML flow collections such as "{a: 1}"
// fail on their first bare word.
func jsonPrefix(head []byte) bool {
	dec := json.NewDecoder(bytes.NewReader(head))
	for {
		_, err := dec.Token()
		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return true
		}
		return false
	}
}

func isJSONLiteral(b []byte) bool {
	switch string(b) {
	case "true", "false", "null":
		return true
	}
	return false
}

// Decoder yields the documents of one input, one per call, and io.EOF
// once the input is exhausted.
type Decoder interface {
	Decode() (any, error)
}

// Options control decoding.
type Options struct {
	// SortKeys orders object members by key instead of document order.
	SortKeys bool
}

var utf8BOM = []byte("\xef\xbb\xbf")

// sniffSize bounds how much input DetectFormat sees.
const sniffSize = 4096

// NewDecoder returns a Decoder for r. With FormatAuto, path and the
// leading bytes of r select the format.
func NewDecoder(r io.Reader, format Format, path string, opts Options) (Decoder, error) {
	if format == "" || format == FormatAuto {
		br := bufio.NewReaderSize(r, sniffSize)
		head, err := br.Peek(sniffSize)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		format = DetectFormat(path, head)
		if bytes.HasPrefix(head, utf8BOM) {
			_, _ = br.Discard(len(utf8BOM))
		}
		r = br
	}

	switch format {
	case FormatJSON:
		return newJSONDecoder(r, opts), nil
	case FormatYAML:
		return newYAMLDecoder(r, opts), nil
	case FormatTOML:
		return newTOMLDecoder(r, opts), nil
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

// ReadAll decodes every document of r.
func ReadAll(dec Decoder) ([]any, error) {
	var docs []any
	for {
		doc, err := dec.Decode()
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
}
