package main

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/structbind/transcoder"
)

// valueNode renders a decoded value as a YAML node. Struct fields keep
// their declaration order. With raw set, enum variants print as integers.
func valueNode(ct *transcoder.CompiledType, v any, raw bool) *yaml.Node {
	switch ct.Kind {
	case transcoder.KindStruct:
		m, _ := v.(map[string]any)
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range ct.Fields {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
				valueNode(f.Type, m[f.Key], raw))
		}
		return n
	case transcoder.KindArray:
		items, _ := v.([]any)
		n := &yaml.Node{Kind: yaml.SequenceNode}
		if ct.Elem.IsPrimitive() {
			n.Style = yaml.FlowStyle
		}
		for _, item := range items {
			n.Content = append(n.Content, valueNode(ct.Elem, item, raw))
		}
		return n
	case transcoder.KindEnum:
		variant, _ := v.(transcoder.Variant)
		if raw || variant.Name == "" {
			return intNode(variant.Value)
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Value: variant.Name}
	case transcoder.KindText:
		s, _ := v.(string)
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle}
	case transcoder.KindU128, transcoder.KindS128:
		text, _ := v.(interface{ String() string })
		if text == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: text.String()}
	case transcoder.KindPointer:
		p, _ := v.(uint64)
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: "0x" + strconv.FormatUint(p, 16)}
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}
		return n
	}
}

func intNode(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

// formatValue renders a decoded value of u as yaml or json.
func formatValue(u *transcoder.Unit, v any, format string, raw bool) ([]byte, error) {
	node := valueNode(u.Type, v, raw)

	switch format {
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, errors.Wrap(err, "failed to encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		var plain any
		if err := node.Decode(&plain); err != nil {
			return nil, errors.Wrap(err, "failed to convert value")
		}
		out, err := json.MarshalIndent(plain, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode json")
		}
		return append(out, '\n'), nil
	}
	return nil, errors.Newf("unknown value format %q (yaml|json)", format)
}

// parseValue reads a yaml (or json) document into the dynamic value model
// accepted by the encoders: mappings become map[string]any and sequences
// []any.
func parseValue(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "failed to parse value")
	}
	return v, nil
}
