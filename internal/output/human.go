package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatHuman renders data as "key: value" lines in field order. Lists
// become indented "- k=v  k=v" items, nested objects are shown as compact
// JSON, and base64_image is summarized by its length.
func FormatHuman(data any) (string, error) {
	if data == nil {
		return "", nil
	}
	if s, ok := data.(string); ok {
		return s, nil
	}

	var node yaml.Node
	if err := node.Encode(data); err != nil {
		return "", fmt.Errorf("format output: %w", err)
	}

	switch node.Kind {
	case yaml.MappingNode:
		return formatMapping(&node), nil
	case yaml.SequenceNode:
		lines := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			lines = append(lines, "- "+formatItem(item))
		}
		return strings.Join(lines, "\n"), nil
	default:
		return node.Value, nil
	}
}

func formatMapping(node *yaml.Node) string {
	var lines []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch {
		case key == "base64_image" && val.Kind == yaml.ScalarNode:
			lines = append(lines, fmt.Sprintf("%s: [%d chars]", key, len(val.Value)))
		case val.Kind == yaml.SequenceNode:
			lines = append(lines, key+":")
			for _, item := range val.Content {
				lines = append(lines, "  - "+formatItem(item))
			}
		case val.Kind == yaml.MappingNode:
			lines = append(lines, key+": "+nodeJSON(val))
		default:
			lines = append(lines, key+": "+val.Value)
		}
	}
	return strings.Join(lines, "\n")
}

// formatItem renders one list element; objects become "k=v" pairs
// separated by two spaces.
func formatItem(item *yaml.Node) string {
	switch item.Kind {
	case yaml.MappingNode:
		parts := make([]string, 0, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			v := item.Content[i+1]
			value := v.Value
			if v.Kind != yaml.ScalarNode {
				value = nodeJSON(v)
			}
			parts = append(parts, item.Content[i].Value+"="+value)
		}
		return strings.Join(parts, "  ")
	case yaml.ScalarNode:
		return item.Value
	default:
		return nodeJSON(item)
	}
}

// nodeJSON renders a node as compact JSON, keeping mapping keys in order.
func nodeJSON(n *yaml.Node) string {
	var b strings.Builder
	writeJSON(&b, n)
	return b.String()
}

func writeJSON(b *strings.Builder, n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode:
		b.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, n.Content[i].Value)
			b.WriteByte(':')
			writeJSON(b, n.Content[i+1])
		}
		b.WriteByte('}')
	case yaml.SequenceNode:
		b.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, item)
		}
		b.WriteByte(']')
	case yaml.AliasNode:
		writeJSON(b, n.Alias)
	default:
		switch n.Tag {
		case "!!int", "!!float", "!!bool":
			b.WriteString(n.Value)
		case "!!null":
			b.WriteString("null")
		default:
			writeString(b, n.Value)
		}
	}
}

func writeString(b *strings.Builder, s string) {
	data, _ := json.Marshal(s)
	b.Write(data)
}
