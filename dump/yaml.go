package dump

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAML renders d with keys in encoding order. Fields become a mapping so
// the output reads like the structure it describes:
//
//	kind: append_frame
//	length: 6
//	fields:
//	  frame_type: 252
//	  offset_delta: 7
//	children:
//	  - kind: object_variable_info
//	    ...
func YAML(d *Doc) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(d)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlNode(d *Doc) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content,
		scalar("kind"), scalar(d.Kind),
		scalar("length"), intScalar(uint64(d.Length)),
	)

	if len(d.Fields) > 0 {
		fields := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range d.Fields {
			fields.Content = append(fields.Content, scalar(f.Name), valueNode(f.Value))
		}
		n.Content = append(n.Content, scalar("fields"), fields)
	}

	if len(d.Children) > 0 {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range d.Children {
			children.Content = append(children.Content, yamlNode(c))
		}
		n.Content = append(n.Content, scalar("children"), children)
	}
	return n
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intScalar(v uint64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(v, 10)}
}

func valueNode(v any) *yaml.Node {
	switch v := v.(type) {
	case uint64:
		return intScalar(v)
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
	case string:
		return scalar(v)
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return scalar(formatValue(v))
		}
		return n
	}
}
