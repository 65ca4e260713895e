package dom

import (
	"slices"
	"strings"
)

// Node is an element in the page tree.
type Node struct {
	// ID identifies the node in documents, plans and rendered output.
	ID string

	// Tag is the element name (e.g. "div", "pg-slot").
	Tag string

	// Box is the static page-space rectangle of the node. It is the source of
	// truth for content elements; positioned nodes derive theirs from Style.
	Box Rect

	// Style is the inline style written by layout code.
	Style Style

	// Dataset holds data-* attributes keyed in camelCase, mirroring the
	// browser dataset API (data-o-ads-formats-large -> oAdsFormatsLarge).
	Dataset map[string]string

	classes  []string
	props    map[string]any
	parent   *Node
	children []*Node
}

// Style is the subset of inline style that rails write to placeholders.
type Style struct {
	// Positioned marks an absolutely positioned node whose rectangle is
	// Top/Height relative to its parent's top.
	Positioned bool
	Top        float64
	Height     float64
}

// NewElement creates a detached element with the given tag and id.
func NewElement(tag, id string) *Node {
	return &Node{Tag: tag, ID: id}
}

// Parent returns the parent node, or nil for a detached or root node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in document order.
// The returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// Child returns the child at index i, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// NextSibling returns the node following n in its parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	return n.parent.Child(i + 1)
}

// AppendChild appends child as the last child of n and returns it.
// A child that already has a parent is moved.
func (n *Node) AppendChild(child *Node) *Node {
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// InsertBefore inserts child immediately before ref and returns it.
// A nil ref, or a ref that is not a child of n, appends.
func (n *Node) InsertBefore(child, ref *Node) *Node {
	if ref == nil || ref.parent != n || ref == child {
		return n.AppendChild(child)
	}
	child.detach()
	i := n.indexOf(ref)
	child.parent = n
	n.children = slices.Insert(n.children, i, child)
	return child
}

// RemoveChild removes child from n. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.indexOf(child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// Clear removes every child of n.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

func (n *Node) detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// =============================================================================
// Classes
// =============================================================================

// SetClassName replaces the class list with the space-separated names in s.
func (n *Node) SetClassName(s string) {
	n.classes = strings.Fields(s)
}

// ClassName returns the class list joined by spaces.
func (n *Node) ClassName() string {
	return strings.Join(n.classes, " ")
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// AddClass adds name to the class list if it is not already present.
func (n *Node) AddClass(name string) {
	if !n.HasClass(name) {
		n.classes = append(n.classes, name)
	}
}

// HasClass reports whether name is in the class list.
func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.classes, name)
}

// =============================================================================
// Dataset and properties
// =============================================================================

// SetData sets the dataset entry key (camelCase) to value.
func (n *Node) SetData(key, value string) {
	if n.Dataset == nil {
		n.Dataset = make(map[string]string)
	}
	n.Dataset[key] = value
}

// Data returns the dataset entry for key and whether it is set.
func (n *Node) Data(key string) (string, bool) {
	v, ok := n.Dataset[key]
	return v, ok
}

// Prop returns the property stored under key, or nil.
func (n *Node) Prop(key string) any {
	return n.props[key]
}

// SetProp stores v under key. Properties are not serialized; they carry
// in-process protocols between code that shares a node.
func (n *Node) SetProp(key string, v any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[key] = v
}

// DataAttr converts a camelCase dataset key to its data-* attribute name.
func DataAttr(key string) string {
	var b strings.Builder
	b.WriteString("data-")
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
