package garnish

import (
	"context"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Marshal encodes v as a YAML document with the default schema. Live
// extension values are emitted in their tagged wire forms. See
// MarshalWith.
func Marshal(v any) ([]byte, error) {
	return MarshalWith(v, DefaultSchema())
}

// MarshalWith encodes v as a YAML document. Values an extension's
// Applies predicate accepts go through that extension's representer;
// everything else is encoded as the base codec would. Map keys are
// emitted in sorted order for deterministic output.
func MarshalWith(v any, schema *Schema) ([]byte, error) {
	ctx := context.Background()
	start := time.Now()
	emitDumpStart(ctx)

	node, err := encodeNode(v, schema)
	if err != nil {
		emitDumpComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		err = newCodecError(ErrMarshal, err)
		emitDumpComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	emitDumpComplete(ctx, len(data), time.Since(start), nil)
	return data, nil
}

func encodeNode(v any, schema *Schema) (*yaml.Node, error) {
	if ext, ok := schema.representerFor(v); ok {
		return ext.Represent(v)
	}

	switch v := v.(type) {
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			keyNode := &yaml.Node{}
			if err := keyNode.Encode(k); err != nil {
				return nil, newCodecError(ErrMarshal, err)
			}
			valNode, err := encodeNode(v[k], schema)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, keyNode, valNode)
		}
		return node, nil

	case map[any]any:
		// Programmatic input with loose keys: keys materialize through
		// the same structural rule the decoder uses.
		flat := make(map[string]any, len(v))
		for k, val := range v {
			flat[keyString(k)] = val
		}
		return encodeNode(flat, schema)

	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range v {
			elNode, err := encodeNode(el, schema)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, elNode)
		}
		return node, nil

	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, newCodecError(ErrMarshal, err)
		}
		return node, nil
	}
}
