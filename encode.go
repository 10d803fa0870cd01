package lsx

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/jacoelho/lsx/pkg/attrvalue"
)

// EncodeNode renders n back into a node element.
//
// Attributes are written inside an attributes container with their canonical type
// name. Translated strings are written as handle, everything else as value. A present
// children container is written even when empty.
func EncodeNode(n *Node) *etree.Element {
	el := etree.NewElement(nodeTag)
	el.CreateAttr(idAttr, n.name)
	if len(n.attrs) > 0 {
		container := el.CreateElement(attributesTag)
		for _, attr := range n.attrs {
			encodeAttribute(container, attr)
		}
	}
	if n.children.present {
		container := el.CreateElement(childrenTag)
		for _, child := range n.children.nodes {
			container.AddChild(EncodeNode(child))
		}
	}
	return el
}

func encodeAttribute(parent *etree.Element, attr Attribute) {
	el := parent.CreateElement(attributeTag)
	el.CreateAttr(idAttr, attr.Name)
	el.CreateAttr(typeAttr, string(attr.Value.Type()))
	if tag, ok := attr.Value.StringTag(); ok && tag == attrvalue.TagTranslated {
		el.CreateAttr(handleAttr, attr.Value.Lexical())
		return
	}
	el.CreateAttr(valueAttr, attr.Value.Lexical())
}

// EncodeDocument writes regions as an indented save document. Tabs and line breaks
// in attribute values are written as character references so they survive
// end-of-line normalization on re-read.
func EncodeDocument(w io.Writer, regions ...Region) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	save := doc.CreateElement(saveTag)
	for _, region := range regions {
		regionEl := save.CreateElement(regionTag)
		regionEl.CreateAttr(idAttr, region.ID)
		for _, n := range region.Nodes {
			regionEl.AddChild(EncodeNode(n))
		}
	}
	doc.Indent(2)
	doc.WriteSettings.CanonicalAttrVal = true
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}
