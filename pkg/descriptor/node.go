package descriptor

import (
	"encoding/xml"
	"strings"
)

// node is a generic XML element.
type node struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

func (n *node) Name() string {
	return n.XMLName.Local
}

// Content returns the concatenated text of the element and all its
// descendants.
func (n *node) Content() string {
	if len(n.Nodes) == 0 {
		return n.Text
	}
	var b strings.Builder
	b.WriteString(n.Text)
	for i := range n.Nodes {
		b.WriteString(n.Nodes[i].Content())
	}
	return b.String()
}

// Elements returns all descendant elements with the given name in
// document order.
func (n *node) Elements(name string) []*node {
	var result []*node
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if c.Name() == name {
			result = append(result, c)
		}
		result = append(result, c.Elements(name)...)
	}
	return result
}

// First returns the first descendant element with the given name.
func (n *node) First(name string) *node {
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if c.Name() == name {
			return c
		}
		if f := c.First(name); f != nil {
			return f
		}
	}
	return nil
}

func (n *node) FirstContent(name string) (string, bool) {
	f := n.First(name)
	if f == nil {
		return "", false
	}
	return strings.TrimSpace(f.Content()), true
}
