package yaml

import (
	"fmt"
	"io"

	"github.com/kvbuf/polyval/buffer"
	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/heap"
	"github.com/kvbuf/polyval/internal/options"
	yamlv3 "gopkg.in/yaml.v3"
)

// config holds Decode's tunables, set via Option values applied with
// internal/options.Apply (the json package's Decode mirrors this).
type config struct {
	maxDepth int
}

// Option configures Decode or Unmarshal.
type Option = options.Option[*config]

// defaultMaxDepth mirrors buffer.MaxValidationDepth and json.WithMaxDepth:
// the convert walk below is itself recursive, so it needs the same
// bounded-depth defense against a pathologically nested document.
const defaultMaxDepth = buffer.MaxValidationDepth

// WithMaxDepth overrides the nesting depth Decode will follow before
// rejecting the input with a parse error (errs.ErrParse).
func WithMaxDepth(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max depth must be positive, got %d", errs.ErrParse, n)
		}

		c.maxDepth = n

		return nil
	})
}

// Decode reads one YAML document from r and returns its heap.Node tree.
func Decode(r io.Reader, opts ...Option) (*heap.Node, error) {
	cfg := &config{maxDepth: defaultMaxDepth}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var doc yamlv3.Node
	if err := yamlv3.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	return convert(&doc, cfg, 0)
}

// Unmarshal is the byte-slice convenience form of Decode.
func Unmarshal(data []byte, opts ...Option) (*heap.Node, error) {
	cfg := &config{maxDepth: defaultMaxDepth}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	return convert(&doc, cfg, 0)
}

func convert(n *yamlv3.Node, cfg *config, depth int) (*heap.Node, error) {
	if depth > cfg.maxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds max depth %d", errs.ErrParse, cfg.maxDepth)
	}

	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return heap.NewNull(), nil
		}

		return convert(n.Content[0], cfg, depth)
	case yamlv3.MappingNode:
		return convertMapping(n, cfg, depth)
	case yamlv3.SequenceNode:
		return convertSequence(n, cfg, depth)
	case yamlv3.ScalarNode:
		return convertScalar(n)
	case yamlv3.AliasNode:
		return convert(n.Alias, cfg, depth)
	default:
		return nil, fmt.Errorf("%w: unsupported YAML node kind %d", errs.ErrParse, n.Kind)
	}
}

func convertMapping(n *yamlv3.Node, cfg *config, depth int) (*heap.Node, error) {
	if len(n.Content)%2 != 0 {
		return nil, fmt.Errorf("%w: malformed mapping node", errs.ErrParse)
	}

	var fields []heap.Field
	sorted := true

	for i := 0; i < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind != yamlv3.ScalarNode {
			return nil, fmt.Errorf("%w: non-scalar mapping key", errs.ErrParse)
		}

		key := keyNode.Value

		value, err := convert(valueNode, cfg, depth+1)
		if err != nil {
			return nil, err
		}

		if sorted && len(fields) > 0 && buffer.CompareKeys(fields[len(fields)-1].Key, key) >= 0 {
			sorted = false
		}

		fields = append(fields, heap.Field{Key: key, Value: value})
	}

	if sorted {
		obj, err := heap.NewObjectFromSortedFields(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
		}

		return obj, nil
	}

	obj := heap.NewObject()
	for _, f := range fields {
		if err := obj.Set(f.Key, f.Value); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
		}
	}

	return obj, nil
}

func convertSequence(n *yamlv3.Node, cfg *config, depth int) (*heap.Node, error) {
	arr := heap.NewArray()

	for _, c := range n.Content {
		elem, err := convert(c, cfg, depth+1)
		if err != nil {
			return nil, err
		}

		if err := arr.Append(elem); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
		}
	}

	return arr, nil
}

// convertScalar leans on yaml.v3's own tag resolution — decoding the
// scalar node into an interface{} — rather than re-implementing YAML's
// int/float/bool/null literal grammar. This is what correctly tells a
// quoted "123" (tagged !!str) apart from an unquoted 123 (tagged !!int).
func convertScalar(n *yamlv3.Node) (*heap.Node, error) {
	var v interface{}
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrParse, err)
	}

	switch val := v.(type) {
	case string:
		return heap.NewString(val), nil
	case int:
		return heap.NewInteger(int64(val)), nil
	case int64:
		return heap.NewInteger(val), nil
	case uint64:
		if val <= 1<<63-1 {
			return heap.NewInteger(int64(val)), nil
		}

		return heap.NewFloat64(float64(val)), nil
	case float64:
		return heap.NewFloat64(val), nil
	case bool:
		return heap.NewBoolean(val), nil
	case nil:
		return heap.NewNull(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported YAML scalar type %T", errs.ErrParse, v)
	}
}
