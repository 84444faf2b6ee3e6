package internal

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedXML is returned when a document has no parseable root element.
// Fatal for the current file; never retried.
var ErrMalformedXML = errors.New("malformed XML document")

// Value is one value slot in a parsed XML tree: a Scalar string (attribute
// or leaf text), a nested *Node, or a List of repeated same-named siblings.
type Value interface {
	isValue()
}

// Scalar is an attribute value or leaf text value.
type Scalar string

func (Scalar) isValue() {}

// List holds the values of siblings that share a tag name, in document order.
type List []Value

func (List) isValue() {}

// Node represents one XML element as an insertion-ordered keyed mapping.
// Attribute values live under "@name" keys, leaf text under "#text", and
// child elements under their tag names.
type Node struct {
	keys []string
	vals map[string]Value
}

func (*Node) isValue() {}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{vals: make(map[string]Value)}
}

// Add merges a value into the node under key. The first occurrence of a key
// stores the bare value; the second converts the slot into a two-element
// List; further occurrences append. This is the only transition by which a
// child slot becomes a List.
func (n *Node) Add(key string, v Value) {
	existing, ok := n.vals[key]
	if !ok {
		n.keys = append(n.keys, key)
		n.vals[key] = v
		return
	}
	if list, isList := existing.(List); isList {
		n.vals[key] = append(list, v)
		return
	}
	n.vals[key] = List{existing, v}
}

// Get returns the value stored under key.
func (n *Node) Get(key string) (Value, bool) {
	v, ok := n.vals[key]
	return v, ok
}

// Keys returns the node's keys in insertion order.
func (n *Node) Keys() []string {
	return n.keys
}

// Len returns the number of distinct keys in the node.
func (n *Node) Len() int {
	return len(n.keys)
}

// rawElement is the generic document-object form an XML document decodes
// into: every element captures its attributes, character data, and child
// elements in document order.
type rawElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Text     string       `xml:",chardata"`
	Children []rawElement `xml:",any"`
}

// ParseXML parses an XML document into a single-entry wrapper node keyed by
// the root tag name. Returns an ErrMalformedXML-wrapped error when the
// document has no well-formed root element.
func ParseXML(doc string) (*Node, error) {
	var root rawElement
	if err := xml.Unmarshal([]byte(doc), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	wrapper := NewNode()
	wrapper.Add(xmlKey(root.XMLName), buildNode(&root))
	return wrapper, nil
}

// buildNode converts a decoded element into a Node. Elements with child
// elements are containers; their inline character data (mixed content) is
// discarded. Elements without children are leaves and keep their trimmed
// text under "#text" when non-empty.
func buildNode(el *rawElement) *Node {
	n := NewNode()
	for _, attr := range el.Attrs {
		// Namespace declarations (xmlns="..." and xmlns:x="...") are
		// binding syntax, not element data; they never become columns.
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		n.Add("@"+xmlKey(attr.Name), Scalar(attr.Value))
	}
	if len(el.Children) == 0 {
		if text := strings.TrimSpace(el.Text); text != "" {
			n.Add("#text", Scalar(text))
		}
		return n
	}
	for i := range el.Children {
		child := &el.Children[i]
		n.Add(xmlKey(child.XMLName), buildNode(child))
	}
	return n
}

// xmlKey renders an xml.Name as a map key. encoding/xml resolves namespace
// prefixes before handing names to user code, so namespaced names are
// rendered as space:local; names are never otherwise rewritten.
func xmlKey(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}
