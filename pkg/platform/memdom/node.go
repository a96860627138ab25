package memdom

import (
	"html"
	"strings"

	"github.com/go-drift/elements/pkg/render"
)

const (
	textNode = "#text"
	rawNode  = "#raw"
)

// Node is a minimal in-memory DOM node inside a shadow tree.
type Node struct {
	// Name is the element name, or "#text" / "#raw" for text content.
	Name     string
	Text     string
	children []*Node
}

// Children returns the direct children of n.
func (n *Node) Children() []*Node {
	return n.children
}

// Append adds children to n.
func (n *Node) Append(children ...*Node) {
	n.children = append(n.children, children...)
}

// Content returns the inner markup of n.
func (n *Node) Content() string {
	var sb strings.Builder
	for _, child := range n.children {
		child.write(&sb)
	}
	return sb.String()
}

// SetContent replaces the children of n with raw markup.
func (n *Node) SetContent(markup string) {
	n.children = []*Node{{Name: rawNode, Text: markup}}
}

// Clear removes all children of n.
func (n *Node) Clear() {
	n.children = nil
}

// Markup returns the outer markup of n.
func (n *Node) Markup() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Name {
	case textNode:
		sb.WriteString(html.EscapeString(n.Text))
	case rawNode:
		sb.WriteString(n.Text)
	default:
		sb.WriteString("<" + n.Name + ">")
		for _, child := range n.children {
			child.write(sb)
		}
		sb.WriteString("</" + n.Name + ">")
	}
}

// ShadowRoot is the shadow tree of an Element.
type ShadowRoot struct {
	Node
}

func newShadowRoot() *ShadowRoot {
	return &ShadowRoot{Node: Node{Name: "#shadow-root"}}
}

// AppendStyle appends a <style> element containing css.
func (s *ShadowRoot) AppendStyle(css string) {
	s.Append(&Node{Name: "style", children: []*Node{{Name: rawNode, Text: css}}})
}

// AppendContainer appends a <span> container and returns it.
func (s *ShadowRoot) AppendContainer() render.Container {
	span := &Node{Name: "span"}
	s.Append(span)
	return span
}
