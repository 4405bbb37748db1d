package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadYAMLFile reads a YAML document from disk. See ParseYAML.
func LoadYAMLFile(path string) (*Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}
	g, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", path, err)
	}
	return g, nil
}

// ParseYAML builds a group tree from a YAML document. Mappings become
// groups, scalars become entries, and sequences become groups whose
// entries are keyed by index. Document order is preserved.
func ParseYAML(data []byte) (*Group, error) {
	root := New("")
	if len(bytes.TrimSpace(data)) == 0 {
		return root, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return root, nil
	}
	if err := fill(root, doc.Content[0]); err != nil {
		return nil, err
	}
	return root, nil
}

func fill(g *Group, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if err := place(g, n.Content[i].Value, n.Content[i+1]); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			if err := place(g, strconv.Itoa(i), item); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		return fill(g, n.Alias)
	case yaml.ScalarNode:
		if n.Tag != "!!null" {
			return fmt.Errorf("line %d: top level must be a mapping", n.Line)
		}
	default:
		return fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
	return nil
}

func place(g *Group, key string, v *yaml.Node) error {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	switch v.Kind {
	case yaml.ScalarNode:
		if v.Tag == "!!null" {
			g.Set(key, "")
		} else {
			g.Set(key, v.Value)
		}
		return nil
	case yaml.MappingNode, yaml.SequenceNode:
		return fill(g.AddGroup(key), v)
	}
	return fmt.Errorf("line %d: unsupported value for %q", v.Line, key)
}

// WriteYAML encodes g as a YAML mapping, entries before nested groups.
func WriteYAML(w io.Writer, g *Group) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(g)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func toNode(g *Group) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range g.entries {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.Value},
		)
	}
	for _, c := range g.groups {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: c.name},
			toNode(c),
		)
	}
	return m
}
