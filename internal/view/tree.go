// Package view turns a reading.Vector into a View Tree: an immutable,
// declarative description of the per-core list. It knows nothing about
// terminals or HTML documents; those hosts consume the tree.
package view

// Attr is a single attribute on a node. Order is preserved.
type Attr struct {
	Key string
	Val string
}

// Node is one element of the View Tree. Text, when set, is the element's
// only text content and is emitted before Children.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []Node
}

// Attr returns the value of the named attribute and whether it is present.
func (n Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Equal reports whether a and b describe the same structure.
func Equal(a, b Node) bool {
	if a.Tag != b.Tag || a.Text != b.Text {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Core is the readable content of one list item.
type Core struct {
	Index int
	// Text is the visible value text (fixed or padded, depending on style).
	Text string
	// Now is the accessible current value. Empty for plain items.
	Now string
}

// Cores extracts the per-core content from a tree built by Build.
// Nodes that are not list items are skipped.
func Cores(root Node) []Core {
	cores := make([]Core, 0, len(root.Children))
	for _, item := range root.Children {
		if item.Tag != TagItem {
			continue
		}
		c := Core{Index: len(cores), Text: item.Text}
		for _, child := range item.Children {
			if role, _ := child.Attr(AttrRole); role == RoleProgressBar {
				c.Text = child.Text
				c.Now, _ = child.Attr(AttrValueNow)
			}
		}
		cores = append(cores, c)
	}
	return cores
}
