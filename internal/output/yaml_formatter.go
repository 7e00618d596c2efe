package output

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dr8co/yj/internal/colorjson"
	"github.com/dr8co/yj/internal/style"
)

// YAMLFormatter writes documents as YAML, separated by "---".
type YAMLFormatter struct {
	IndentSize int
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{IndentSize: 2}
}

// Name returns the name of the formatter.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// NewEncoder returns an Encoder writing to w. Style commands are not
// used; YAML output is never colored.
func (f *YAMLFormatter) NewEncoder(w style.Writer) Encoder {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(max(f.IndentSize, 2))
	return &yamlEncoder{enc: enc}
}

type yamlEncoder struct {
	enc *yaml.Encoder
}

func (e *yamlEncoder) Encode(v any) error {
	node, err := toNode(v)
	if err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	if err := e.enc.Encode(node); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return nil
}

func (e *yamlEncoder) Close() error {
	return e.enc.Close()
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// toNode builds a YAML node tree so object order survives encoding.
func toNode(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(v)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(v)), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return scalarNode("!!int", fmt.Sprint(v)), nil
	case float32:
		return floatNode(float64(v), 32), nil
	case float64:
		return floatNode(v, 64), nil
	case json.Number:
		if strings.ContainsAny(string(v), ".eE") {
			return scalarNode("!!float", string(v)), nil
		}
		return scalarNode("!!int", string(v)), nil
	case json.RawMessage:
		var decoded any
		dec := json.NewDecoder(strings.NewReader(string(v)))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			return nil, err
		}
		return toNode(decoded)
	case string:
		return scalarNode("!!str", v), nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		obj := colorjson.NewObject(len(keys))
		for _, k := range keys {
			obj.Members = append(obj.Members, colorjson.Member{Key: k, Value: v[k]})
		}
		return toNode(obj)
	case colorjson.Object:
		return toNode(&v)
	case *colorjson.Object:
		if v == nil {
			return scalarNode("!!null", "null"), nil
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members {
			child, err := toNode(m.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", m.Key), child)
		}
		return node, nil
	}
	return nil, fmt.Errorf("%w: %T", colorjson.ErrUnsupportedType, v)
}

func floatNode(f float64, bitSize int) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return scalarNode("!!float", ".nan")
	case math.IsInf(f, 1):
		return scalarNode("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalarNode("!!float", "-.inf")
	}
	return scalarNode("!!float", colorjson.FormatFloat(f, bitSize))
}
