// Package dom is a minimal in-memory element tree. It serves as the render
// sink and structural contract of an imagediff.Widget on the server: the
// widget writes attributes and styles into the tree, and the tree renders
// itself as HTML through templ.
package dom

import (
	"strings"

	"github.com/pthm/imagediff"
)

var _ imagediff.Root = (*Node)(nil)

// Node is an element. Attributes and style properties keep insertion order
// so rendering is deterministic.
type Node struct {
	Tag      string
	Text     string // escaped character data, written before Children
	Children []*Node

	attrs []pair
	style []pair
}

type pair struct {
	key, value string
}

// El creates an element with the given class attribute and children.
func El(tag, class string, children ...*Node) *Node {
	n := &Node{Tag: tag, Children: children}
	if class != "" {
		n.SetAttribute("class", class)
	}
	return n
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// SetText sets the node's character data and returns n.
func (n *Node) SetText(text string) *Node {
	n.Text = text
	return n
}

// Attr sets an attribute and returns n, for building trees inline.
func (n *Node) Attr(name, value string) *Node {
	n.SetAttribute(name, value)
	return n
}

// SetAttribute sets or replaces an attribute. The style attribute is managed
// through SetStyle and is ignored here.
func (n *Node) SetAttribute(name, value string) {
	if name == "style" {
		return
	}
	n.attrs = set(n.attrs, name, value)
}

// Attribute returns the attribute value and whether it is set.
func (n *Node) Attribute(name string) (string, bool) {
	return get(n.attrs, name)
}

// SetStyle sets a style property; an empty value removes it.
func (n *Node) SetStyle(property, value string) {
	if value == "" {
		n.style = del(n.style, property)
		return
	}
	n.style = set(n.style, property, value)
}

// Style returns the style property value, or "" when unset.
func (n *Node) Style(property string) string {
	v, _ := get(n.style, property)
	return v
}

// HasClass reports whether the class attribute contains class.
func (n *Node) HasClass(class string) bool {
	v, _ := n.Attribute("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// QuerySelector returns the first descendant matching selector in document
// order. Supported selectors are descendant chains of compound tag and class
// selectors, such as ".image-diff__before img" or "div.a.b span".
func (n *Node) QuerySelector(selector string) (imagediff.Element, bool) {
	found := n.Find(selector)
	if found == nil {
		return nil, false
	}
	return found, true
}

// Find is QuerySelector returning the concrete node, or nil.
func (n *Node) Find(selector string) *Node {
	parts := parseSelector(selector)
	if len(parts) == 0 {
		return nil
	}
	return n.find(parts)
}

func (n *Node) find(parts []compound) *Node {
	for _, c := range n.Children {
		if parts[0].matches(c) {
			if len(parts) == 1 {
				return c
			}
			if found := c.find(parts[1:]); found != nil {
				return found
			}
		}
		if found := c.find(parts); found != nil {
			return found
		}
	}
	return nil
}

type compound struct {
	tag     string
	classes []string
}

func (c compound) matches(n *Node) bool {
	if c.tag != "" && !strings.EqualFold(c.tag, n.Tag) {
		return false
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	return true
}

func parseSelector(selector string) []compound {
	var out []compound
	for _, field := range strings.Fields(selector) {
		segs := strings.Split(field, ".")
		c := compound{tag: segs[0]}
		for _, s := range segs[1:] {
			if s == "" {
				return nil
			}
			c.classes = append(c.classes, s)
		}
		if c.tag == "" && len(c.classes) == 0 {
			return nil
		}
		out = append(out, c)
	}
	return out
}

func set(ps []pair, key, value string) []pair {
	for i := range ps {
		if ps[i].key == key {
			ps[i].value = value
			return ps
		}
	}
	return append(ps, pair{key, value})
}

func get(ps []pair, key string) (string, bool) {
	for _, p := range ps {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

func del(ps []pair, key string) []pair {
	for i := range ps {
		if ps[i].key == key {
			return append(ps[:i], ps[i+1:]...)
		}
	}
	return ps
}
