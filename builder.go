package lsx

import (
	"errors"

	"github.com/beevik/etree"

	lsxerrors "github.com/jacoelho/lsx/errors"
	"github.com/jacoelho/lsx/pkg/attrvalue"
	"github.com/jacoelho/lsx/pkg/lsxtype"
)

const (
	nodeTag       = "node"
	attributeTag  = "attribute"
	attributesTag = "attributes"
	childrenTag   = "children"
	regionTag     = "region"
	saveTag       = "save"

	idAttr     = "id"
	typeAttr   = "type"
	valueAttr  = "value"
	handleAttr = "handle"
)

var (
	errNameNotLetter = errors.New("attribute name does not start with a letter")
	errEmptyType     = errors.New("attribute type is empty")
	errEmptyValue    = errors.New("attribute value is empty")
)

// Builder turns node elements into Nodes.
//
// The zero Builder resolves type codes with the default table and reports nothing.
// A Builder holds no mutable state and may be shared.
type Builder struct {
	Resolver    *lsxtype.Resolver
	Diagnostics Diagnostics
}

// BuildNode builds el with the zero Builder.
func BuildNode(el *etree.Element) (*Node, error) {
	var b Builder
	return b.Build(el)
}

// Build realizes one Node from a node element and its subtree.
//
// A node element without an id fails with a MalformedNodeError; individual attributes
// that fail to decode are excluded and reported to Diagnostics.
func (b *Builder) Build(el *etree.Element) (*Node, error) {
	if el == nil {
		return nil, lsxerrors.NewMalformedNode("", "nil node element")
	}
	return b.build(el)
}

func (b *Builder) build(el *etree.Element) (*Node, error) {
	name := el.SelectAttrValue(idAttr, "")
	if name == "" {
		return nil, lsxerrors.NewMalformedNode(el.GetPath(), "node element has no id")
	}

	var attrs []Attribute
	for _, attrEl := range attributeElements(el) {
		if attr, ok := b.attribute(name, attrEl); ok {
			attrs = append(attrs, attr)
		}
	}

	children := NoChildren()
	if container := el.SelectElement(childrenTag); container != nil {
		nodes := make([]*Node, 0, len(container.Child))
		for _, childEl := range container.SelectElements(nodeTag) {
			child, err := b.build(childEl)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, child)
		}
		children = Children{present: true, nodes: nodes}
	}
	return &Node{name: name, attrs: attrs, children: children}, nil
}

func (b *Builder) attribute(node string, el *etree.Element) (Attribute, bool) {
	name := el.SelectAttrValue(idAttr, "")
	raw := effectiveValue(el)
	token := el.SelectAttrValue(typeAttr, "")
	typ := b.Resolver.Resolve(token)

	var reason error
	switch {
	case !startsWithLetter(name):
		reason = errNameNotLetter
	case typ == "":
		reason = errEmptyType
	case raw == "":
		reason = errEmptyValue
	}
	if reason != nil {
		b.dropped(node, name, lsxerrors.NewDecodeError(lsxerrors.ErrAttributeDropped, name, typ, raw, reason))
		return Attribute{}, false
	}

	if lsxtype.IsOrdinal(typ) && b.Diagnostics != nil {
		b.Diagnostics.Unresolved(node, name, typ)
	}
	v, err := attrvalue.Decode(name, typ, raw)
	if err != nil {
		b.dropped(node, name, err)
		return Attribute{}, false
	}
	return Attribute{Name: name, Value: v}, true
}

func (b *Builder) dropped(node, attribute string, err error) {
	if b.Diagnostics != nil {
		b.Diagnostics.Dropped(node, attribute, err)
	}
}

// attributeElements returns the attribute elements of a node element in document
// order, whether placed directly under it or inside an attributes container.
func attributeElements(node *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, child := range node.ChildElements() {
		switch child.Tag {
		case attributeTag:
			out = append(out, child)
		case attributesTag:
			out = append(out, child.SelectElements(attributeTag)...)
		}
	}
	return out
}

// effectiveValue returns the handle when the attribute carries one, else its value.
func effectiveValue(el *etree.Element) string {
	if handle := el.SelectAttr(handleAttr); handle != nil {
		return handle.Value
	}
	return el.SelectAttrValue(valueAttr, "")
}
