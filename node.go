package lsx

import (
	"slices"
	"unicode"
	"unicode/utf8"

	lsxerrors "github.com/jacoelho/lsx/errors"
	"github.com/jacoelho/lsx/pkg/attrvalue"
)

// Attribute is a named typed value owned by a Node.
type Attribute struct {
	Name  string
	Value attrvalue.Value
}

// Equal reports whether a and other carry the same name and value.
func (a Attribute) Equal(other Attribute) bool {
	return a.Name == other.Name && a.Value.Equal(other.Value)
}

// Children is the optional child container of a Node.
//
// The zero value is absent: no children container existed. A present container may
// hold zero nodes.
type Children struct {
	nodes   []*Node
	present bool
}

// NoChildren returns an absent container.
func NoChildren() Children {
	return Children{}
}

// ChildrenOf returns a present container holding nodes in order.
func ChildrenOf(nodes ...*Node) Children {
	return Children{present: true, nodes: slices.Clone(nodes)}
}

// Present reports whether a children container existed.
func (c Children) Present() bool { return c.present }

// Len returns the number of child nodes.
func (c Children) Len() int { return len(c.nodes) }

// At returns the i-th child.
func (c Children) At(i int) *Node { return c.nodes[i] }

// Nodes returns a copy of the child list. It is nil when the container is absent and
// non-nil (possibly empty) when present.
func (c Children) Nodes() []*Node {
	if !c.present {
		return nil
	}
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Node is a named structural unit with typed attributes and optional children.
type Node struct {
	name     string
	attrs    []Attribute
	children Children
}

// NewNode constructs a Node. An empty name is a MalformedNode error.
func NewNode(name string, attrs []Attribute, children Children) (*Node, error) {
	if name == "" {
		return nil, lsxerrors.NewMalformedNode("", "node name is empty")
	}
	return &Node{
		name:     name,
		attrs:    slices.Clone(attrs),
		children: Children{present: children.present, nodes: slices.Clone(children.nodes)},
	}, nil
}

// Name returns the node identifier.
func (n *Node) Name() string { return n.name }

// Attributes returns the retained attributes in document order.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Children returns the child container.
func (n *Node) Children() Children { return n.children }

// Attr returns the first attribute named name.
func (n *Node) Attr(name string) (attrvalue.Value, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return attrvalue.Value{}, false
}

// Depth returns 0 for a node without a children container and 1 plus the deepest
// child otherwise.
func (n *Node) Depth() int {
	if !n.children.present {
		return 0
	}
	deepest := 0
	for _, child := range n.children.nodes {
		deepest = max(deepest, child.Depth())
	}
	return 1 + deepest
}

// Count returns the number of descendants reachable through present containers.
func (n *Node) Count() int {
	if !n.children.present {
		return 0
	}
	total := len(n.children.nodes)
	for _, child := range n.children.nodes {
		total += child.Count()
	}
	return total
}

// Walk calls fn for n and each descendant in document order with its level below n.
// Returning false from fn skips that node's descendants.
func (n *Node) Walk(fn func(node *Node, level int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, level int) {
	if !fn(n, level) {
		return
	}
	for _, child := range n.children.nodes {
		child.walk(fn, level+1)
	}
}

// Equal reports structural equality, including the absent/empty children distinction.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.name != other.name || n.children.present != other.children.present {
		return false
	}
	if !slices.EqualFunc(n.attrs, other.attrs, Attribute.Equal) {
		return false
	}
	return slices.EqualFunc(n.children.nodes, other.children.nodes, (*Node).Equal)
}

func startsWithLetter(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r != utf8.RuneError && unicode.IsLetter(r)
}
