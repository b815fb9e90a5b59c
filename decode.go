package garnish

import (
	"context"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Unmarshal decodes a YAML document with the default schema. Tagged
// extension scalars become live values; everything else decodes as the
// base codec would. See UnmarshalWith.
func Unmarshal(data []byte) (any, error) {
	return UnmarshalWith(data, DefaultSchema())
}

// UnmarshalWith decodes a YAML document, constructing live values for
// every scalar whose tag is registered in schema. Unknown local tags
// pass through as raw text; standard tags the base codec cannot decode
// fail with ErrUnmarshal. Mapping keys are materialized through
// structural inspection only.
//
// A failed construction aborts the decode with a DocumentError carrying
// the offending tag and position; no partial result is returned. Decoding
// never executes document-embedded code.
func UnmarshalWith(data []byte, schema *Schema) (any, error) {
	ctx := context.Background()
	start := time.Now()
	emitLoadStart(ctx, len(data))

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		err = newCodecError(ErrUnmarshal, err)
		emitLoadComplete(ctx, time.Since(start), err)
		return nil, err
	}
	if root.Kind == 0 {
		// Empty document.
		emitLoadComplete(ctx, time.Since(start), nil)
		return nil, nil
	}

	v, err := decodeNode(&root, schema)
	emitLoadComplete(ctx, time.Since(start), err)
	return v, err
}

func decodeNode(node *yaml.Node, schema *Schema) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeNode(node.Content[0], schema)

	case yaml.AliasNode:
		return decodeNode(node.Alias, schema)

	case yaml.ScalarNode:
		if ext, ok := schema.Lookup(node.Tag); ok {
			v, err := ext.Construct(node.Value)
			if err != nil {
				emitConstructError(context.Background(), ext.Kind, node.Tag, node.Line, node.Column, err)
				return nil, newDocumentError(err, node.Tag, node.Line, node.Column)
			}
			return v, nil
		}
		var v any
		if err := node.Decode(&v); err != nil {
			// Local tags no schema claims ("!widget") pass through as
			// raw text; failures on standard tags are real decode errors.
			if strings.HasPrefix(node.Tag, "!") && !strings.HasPrefix(node.Tag, "!!") {
				return node.Value, nil
			}
			return nil, newCodecError(ErrUnmarshal, err)
		}
		return v, nil

	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := decodeNode(child, schema)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil

	case yaml.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := decodeNode(node.Content[i], schema)
			if err != nil {
				return nil, err
			}
			value, err := decodeNode(node.Content[i+1], schema)
			if err != nil {
				return nil, err
			}
			m[keyString(key)] = value
		}
		return m, nil

	default:
		return nil, nil
	}
}
