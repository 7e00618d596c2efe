package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dr8co/yj/internal/colorjson"
)

// maxAliasDepth bounds nested alias expansion so self-referencing
// documents fail instead of recursing forever.
const maxAliasDepth = 1000

// allowedAliasRatio returns the largest share of converted nodes that may
// come from alias expansion once a document has produced nodes values.
// The thresholds are the ones yaml.v3 applies when decoding into Go values.
func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= 400_000:
		return 0.99
	case nodes >= 4_000_000:
		return 0.10
	}
	return 0.99 - 0.89*(float64(nodes-400_000)/3_600_000)
}

// yamlDecoder converts YAML node trees, so mapping order survives.
type yamlDecoder struct {
	dec   *yaml.Decoder
	opts  Options
	count int
}

func newYAMLDecoder(r io.Reader, opts Options) *yamlDecoder {
	return &yamlDecoder{dec: yaml.NewDecoder(r), opts: opts}
}

// Decode returns the next document. An empty stream yields a single null
// document.
func (d *yamlDecoder) Decode() (any, error) {
	var n yaml.Node
	if err := d.dec.Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			if d.count == 0 {
				d.count++
				return nil, nil
			}
			return nil, io.EOF
		}
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	d.count++

	v, err := (&yamlConverter{opts: d.opts}).convert(&n)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return v, nil
}

// yamlConverter turns one document into values. nodes and aliased only
// grow, so repeated expansions of the same anchor are all counted.
type yamlConverter struct {
	opts    Options
	depth   int
	nodes   int
	aliased int
}

func (c *yamlConverter) count(n *yaml.Node) error {
	c.nodes++
	if c.depth > 0 {
		c.aliased++
	}
	if c.aliased > 100 && c.nodes > 1000 && float64(c.aliased)/float64(c.nodes) > allowedAliasRatio(c.nodes) {
		return fmt.Errorf("line %d: document contains excessive aliasing", n.Line)
	}
	return nil
}

func (c *yamlConverter) convert(n *yaml.Node) (any, error) {
	if err := c.count(n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if c.depth >= maxAliasDepth {
			return nil, fmt.Errorf("line %d: aliases nested too deeply", n.Line)
		}
		c.depth++
		v, err := c.convert(n.Alias)
		c.depth--
		return v, err
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		return c.mapping(n)
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("line %d: unexpected node kind %v", n.Line, n.Kind)
}

func (c *yamlConverter) mapping(n *yaml.Node) (*colorjson.Object, error) {
	obj := newObjectBuilder()
	explicit := map[string]bool{}

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			if err := c.merge(obj, explicit, valNode); err != nil {
				return nil, err
			}
			continue
		}

		key, err := mappingKey(keyNode)
		if err != nil {
			return nil, err
		}
		v, err := c.convert(valNode)
		if err != nil {
			return nil, err
		}
		obj.set(key, v)
		explicit[key] = true
	}
	return obj.build(c.opts.SortKeys), nil
}

// merge applies a "<<" key. Keys set explicitly in the mapping win, and
// earlier merge sources win over later ones.
func (c *yamlConverter) merge(obj *objectBuilder, explicit map[string]bool, n *yaml.Node) error {
	sources := []*yaml.Node{n}
	if resolveAlias(n).Kind == yaml.SequenceNode {
		sources = resolveAlias(n).Content
	}

	for _, src := range sources {
		if resolveAlias(src).Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		v, err := c.convert(src)
		if err != nil {
			return err
		}
		for _, m := range v.(*colorjson.Object).Members {
			if explicit[m.Key] || obj.has(m.Key) {
				continue
			}
			obj.set(m.Key, m.Value)
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func mappingKey(n *yaml.Node) (string, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: mapping key must be a scalar", n.Line)
	}
	if n.ShortTag() == "!!null" {
		return "null", nil
	}
	return n.Value, nil
}

func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return u, nil
		}
		return bigInt(n)
	case "!!float":
		return yamlFloat(n)
	}
	// !!str, !!timestamp, !!binary and custom tags keep their literal text.
	return n.Value, nil
}

// bigInt keeps integers that overflow 64 bits as exact number literals.
func bigInt(n *yaml.Node) (any, error) {
	text := strings.ReplaceAll(n.Value, "_", "")
	digits := strings.TrimLeft(text, "+-")
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return nil, fmt.Errorf("line %d: cannot represent integer %q", n.Line, n.Value)
	}
	return json.Number(strings.TrimPrefix(text, "+")), nil
}

func yamlFloat(n *yaml.Node) (any, error) {
	switch strings.ToLower(strings.TrimLeft(n.Value, "+")) {
	case ".inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
	if err != nil {
		var v float64
		if derr := n.Decode(&v); derr != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, derr)
		}
		return v, nil
	}
	return f, nil
}
