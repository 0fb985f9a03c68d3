// Package xmltree exposes a parsed XML document as a generic tree of element
// nodes with child and attribute accessors.
package xmltree

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// Node is an element (or the document itself) in a parsed XML tree
type Node interface {
	// Tag returns the local element name without its namespace prefix
	Tag() string

	// ChildElements returns the element children in document order. When name
	// is non-empty only children with that local name are returned.
	ChildElements(name string) []Node

	// AttributeValue returns the value of the named attribute and whether it
	// is present
	AttributeValue(name string) (string, bool)
}

type element struct {
	el *etree.Element
}

// Parse reads an XML document from r
func Parse(r io.Reader) (Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse xml: %w", err)
	}
	return &element{el: &doc.Element}, nil
}

// ParseBytes reads an XML document from memory
func ParseBytes(data []byte) (Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse xml: %w", err)
	}
	return &element{el: &doc.Element}, nil
}

// ParseFile reads an XML document from disk
func ParseFile(path string) (Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func (e *element) Tag() string {
	return e.el.Tag
}

func (e *element) ChildElements(name string) []Node {
	nodes := make([]Node, 0)
	for _, child := range e.el.ChildElements() {
		if name != "" && child.Tag != name {
			continue
		}
		nodes = append(nodes, &element{el: child})
	}
	return nodes
}

func (e *element) AttributeValue(name string) (string, bool) {
	attr := e.el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// Attr returns the attribute value or "" when absent
func Attr(n Node, name string) string {
	v, _ := n.AttributeValue(name)
	return v
}
