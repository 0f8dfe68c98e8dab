package runconfig

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is a YAML config file kept as a node tree so that key order and
// comments of the template survive the overlay.
type document struct {
	root yaml.Node
}

func parseDocument(data []byte) (*document, error) {
	d := &document{}
	if err := yaml.Unmarshal(data, &d.root); err != nil {
		return nil, err
	}
	if d.root.Kind == 0 {
		// Empty file.
		d.root = yaml.Node{Kind: yaml.DocumentNode}
	}
	if d.root.Kind == yaml.DocumentNode && (len(d.root.Content) == 0 || d.root.Content[0].Tag == "!!null") {
		d.root.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	if d.root.Kind != yaml.DocumentNode || len(d.root.Content) != 1 || d.root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping")
	}
	return d, nil
}

func (d *document) mapping() *yaml.Node {
	return d.root.Content[0]
}

// lookupString returns the scalar value stored under key.
func (d *document) lookupString(key string) (string, bool) {
	m := d.mapping()
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			v := m.Content[i+1]
			if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
				return "", false
			}
			return v.Value, true
		}
	}
	return "", false
}

// set replaces the value under key, or appends the pair when key is new.
func (d *document) set(key string, value any) error {
	var vn yaml.Node
	if err := vn.Encode(value); err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	m := d.mapping()
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			old := m.Content[i+1]
			vn.LineComment = old.LineComment
			m.Content[i+1] = &vn
			return nil
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, &vn)
	return nil
}

func (d *document) encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&d.root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
