package lsx

import (
	"context"
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

var (
	errNilStream   = errors.New("nil element stream")
	errNilDocument = errors.New("nil document")
)

// ElementStream is a forward-only cursor over the structural elements of a document.
//
// After Next reports true the cursor is on an element; calling Next again descends
// into it, while Skip and Materialize consume its whole subtree.
type ElementStream interface {
	Next() (bool, error)
	OnElement() bool
	Name() string
	Attr(name string) (string, bool)
	Skip() error
	Materialize() (*etree.Element, error)
}

// Locator finds keyed nodes inside named sections of a document.
//
// An element is a section when its name equals the section marker, or when it is a
// region element whose id equals the marker. Regions that are not the section are
// skipped without being built.
type Locator struct {
	Builder Builder
}

// FindNodeByAttribute returns the first node in document order under section whose key
// attribute has the effective value value. It returns nil, nil when no node matches.
func FindNodeByAttribute(ctx context.Context, stream ElementStream, section, key, value string) (*Node, error) {
	var l Locator
	return l.Find(ctx, stream, section, key, value)
}

// Find is FindNodeByAttribute using the locator's Builder.
func (l *Locator) Find(ctx context.Context, stream ElementStream, section, key, value string) (*Node, error) {
	var found *Node
	err := l.scan(ctx, stream, section, func(el *etree.Element) (bool, error) {
		match := findKeyed(el, key, value)
		if match == nil {
			return false, nil
		}
		n, err := l.Builder.Build(match)
		if err != nil {
			return true, err
		}
		found = n
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("find %s=%q in %s: %w", key, value, section, err)
	}
	return found, nil
}

// Select builds the nodes of every section in document order and returns those,
// top-level or nested, accepted by match.
func (l *Locator) Select(ctx context.Context, stream ElementStream, section string, match func(*Node) bool) ([]*Node, error) {
	var out []*Node
	err := l.scan(ctx, stream, section, func(el *etree.Element) (bool, error) {
		for _, nodeEl := range el.SelectElements(nodeTag) {
			n, err := l.Builder.Build(nodeEl)
			if err != nil {
				return true, err
			}
			n.Walk(func(candidate *Node, _ int) bool {
				if match == nil || match(candidate) {
					out = append(out, candidate)
				}
				return true
			})
		}
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("select in %s: %w", section, err)
	}
	return out, nil
}

// scan drives stream until visit reports done, materializing each section.
func (l *Locator) scan(ctx context.Context, stream ElementStream, section string, visit func(*etree.Element) (bool, error)) error {
	if stream == nil {
		return errNilStream
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := stream.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch {
		case streamIsSection(stream, section):
			el, err := stream.Materialize()
			if err != nil {
				return err
			}
			done, err := visit(el)
			if err != nil || done {
				return err
			}
		case stream.Name() == regionTag:
			if err := stream.Skip(); err != nil {
				return err
			}
		}
	}
}

// FindInDocument is the in-memory equivalent of Find over a loaded document.
func (l *Locator) FindInDocument(doc *etree.Document, section, key, value string) (*Node, error) {
	if doc == nil {
		return nil, errNilDocument
	}
	for _, el := range sectionsOf(&doc.Element, section) {
		if match := findKeyed(el, key, value); match != nil {
			n, err := l.Builder.Build(match)
			if err != nil {
				return nil, fmt.Errorf("find %s=%q in %s: %w", key, value, section, err)
			}
			return n, nil
		}
	}
	return nil, nil
}

// FindInDocument runs FindInDocument with the zero Locator.
func FindInDocument(doc *etree.Document, section, key, value string) (*Node, error) {
	var l Locator
	return l.FindInDocument(doc, section, key, value)
}

func streamIsSection(stream ElementStream, section string) bool {
	name := stream.Name()
	if name == section {
		return true
	}
	if name != regionTag {
		return false
	}
	id, _ := stream.Attr(idAttr)
	return id == section
}

func elementIsSection(el *etree.Element, section string) bool {
	if el.Tag == section {
		return true
	}
	return el.Tag == regionTag && el.SelectAttrValue(idAttr, "") == section
}

// sectionsOf collects the outermost section elements below root in document order.
func sectionsOf(root *etree.Element, section string) []*etree.Element {
	var out []*etree.Element
	for _, child := range root.ChildElements() {
		switch {
		case elementIsSection(child, section):
			out = append(out, child)
		case child.Tag == regionTag:
		default:
			out = append(out, sectionsOf(child, section)...)
		}
	}
	return out
}

// findKeyed returns the first descendant node element of root, in document order,
// carrying an attribute element whose id is key and whose effective value is value.
func findKeyed(root *etree.Element, key, value string) *etree.Element {
	for _, child := range root.ChildElements() {
		if child.Tag == nodeTag && hasKey(child, key, value) {
			return child
		}
		if match := findKeyed(child, key, value); match != nil {
			return match
		}
	}
	return nil
}

func hasKey(node *etree.Element, key, value string) bool {
	for _, attr := range attributeElements(node) {
		if attr.SelectAttrValue(idAttr, "") == key && effectiveValue(attr) == value {
			return true
		}
	}
	return false
}
