package dom

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// outline is the YAML shape of a node.
//
//	id: body
//	children:
//	  - id: p1
//	    children:
//	      - id: t1
//	        text: "Hello, world"
type outline struct {
	ID       string    `yaml:"id"`
	Text     *string   `yaml:"text"`
	Children []outline `yaml:"children"`
}

// LoadYAML builds a document from a YAML outline. The top-level node's
// children become children of the document root.
func LoadYAML(r io.Reader) (*Document, error) {
	var top outline
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&top); err != nil {
		if errors.Is(err, io.EOF) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("decoding document outline: %w", err)
	}

	d := NewDocument()
	if top.Text != nil {
		return nil, fmt.Errorf("document root cannot hold text: %w", ErrHierarchy)
	}
	for i := range top.Children {
		if err := d.build(d.root, &top.Children[i]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Document) build(parent *Node, o *outline) error {
	var (
		n   *Node
		err error
	)
	if o.Text != nil {
		if len(o.Children) > 0 {
			return fmt.Errorf("text node %q cannot have children: %w", o.ID, ErrHierarchy)
		}
		n, err = d.CreateText(o.ID, *o.Text)
	} else {
		n, err = d.CreateElement(o.ID)
	}
	if err != nil {
		return err
	}
	if err := parent.AppendChild(n); err != nil {
		return err
	}
	for i := range o.Children {
		if err := d.build(n, &o.Children[i]); err != nil {
			return err
		}
	}
	return nil
}
