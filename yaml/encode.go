package yaml

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/kvbuf/polyval/errs"
	"github.com/kvbuf/polyval/format"
	"github.com/kvbuf/polyval/packet"
	yamlv3 "gopkg.in/yaml.v3"
)

// Encode writes v to w as YAML text, preserving its canonical key order.
func Encode(w *bytes.Buffer, v packet.Value) error {
	node, err := buildNode(v)
	if err != nil {
		return err
	}

	enc := yamlv3.NewEncoder(w)
	defer enc.Close()

	return enc.Encode(node)
}

// Marshal is the byte-slice convenience form of Encode.
func Marshal(v packet.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func buildNode(v packet.Value) (*yamlv3.Node, error) {
	switch v.Kind() {
	case format.Object:
		return buildMapping(v)
	case format.Array:
		return buildSequence(v)
	case format.String:
		s, err := v.AsString()
		if err != nil {
			return nil, err
		}

		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: s}, nil
	case format.Integer:
		i, err := v.AsInteger()
		if err != nil {
			return nil, err
		}

		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(i, 10)}, nil
	case format.Decimal:
		f, err := v.AsDecimal()
		if err != nil {
			return nil, err
		}

		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	case format.Boolean:
		b, err := v.AsBoolean()
		if err != nil {
			return nil, err
		}

		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}, nil
	case format.Null:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %s", errs.ErrKindMismatch, v.Kind())
	}
}

func buildMapping(v packet.Value) (*yamlv3.Node, error) {
	keys, err := v.Keys()
	if err != nil {
		return nil, err
	}

	node := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}

	for _, key := range keys {
		child, found, err := v.Get(key)
		if err != nil || !found {
			return nil, fmt.Errorf("%w: key %q", errs.ErrKeyNotFound, key)
		}

		childNode, err := buildNode(child)
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: key},
			childNode,
		)
	}

	return node, nil
}

func buildSequence(v packet.Value) (*yamlv3.Node, error) {
	n, err := v.Len()
	if err != nil {
		return nil, err
	}

	node := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}

	for i := 0; i < n; i++ {
		child, err := v.At(i)
		if err != nil {
			return nil, err
		}

		childNode, err := buildNode(child)
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content, childNode)
	}

	return node, nil
}
