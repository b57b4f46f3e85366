// Package mount is the document host: it parses a host page, locates the
// mount target on every render and replaces its content with the view tree.
package mount

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rileyhilliard/cpubars/internal/view"
)

// DefaultID is the id of the container the tree is mounted into.
const DefaultID = "app"

// Resolve returns the mount target in doc: the first div whose id is id,
// else the body element, else doc itself. It does not cache.
func Resolve(doc *html.Node, id string) *html.Node {
	if id == "" {
		id = DefaultID
	}
	if target := find(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Div && attr(n, "id") == id
	}); target != nil {
		return target
	}
	if body := find(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Body
	}); body != nil {
		return body
	}
	return doc
}

// Replace swaps target's children for the rendered tree.
func Replace(target *html.Node, tree view.Node) {
	for c := target.FirstChild; c != nil; {
		next := c.NextSibling
		target.RemoveChild(c)
		c = next
	}
	target.AppendChild(ToHTML(tree))
}

// ToHTML converts a view tree into a detached html node tree.
func ToHTML(n view.Node) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, child := range n.Children {
		el.AppendChild(ToHTML(child))
	}
	return el
}

// find walks the tree depth-first, document order.
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
