// Package render formats decoded nodes as indented text, YAML or JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/lsx"
	"github.com/jacoelho/lsx/pkg/attrvalue"
)

// Format selects the output representation.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Options configures Write.
type Options struct {
	Colors *Colors
	Format Format
}

// Write renders nodes to w.
func Write(w io.Writer, nodes []*lsx.Node, opts Options) error {
	switch opts.Format {
	case "", FormatText:
		for _, n := range nodes {
			if _, err := io.WriteString(w, Text(n, opts.Colors)); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML, FormatJSON:
		items := make([]any, len(nodes))
		for i, n := range nodes {
			items[i] = Tree(n)
		}
		var doc any = items
		if len(nodes) == 1 {
			doc = items[0]
		}
		var encodeOpts []yaml.EncodeOption
		if opts.Format == FormatJSON {
			encodeOpts = append(encodeOpts, yaml.JSON())
		}
		data, err := yaml.MarshalWithOptions(doc, encodeOpts...)
		if err != nil {
			return fmt.Errorf("render %s: %w", opts.Format, err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

// Text renders n as an indented outline, one attribute per line:
//
//	GameObjects
//	  MapKey: FixedString = K1
//	  children:
//	    Child
func Text(n *lsx.Node, colors *Colors) string {
	var b strings.Builder
	writeText(&b, n, colors, 0)
	return b.String()
}

func writeText(b *strings.Builder, n *lsx.Node, colors *Colors, level int) {
	indent := strings.Repeat("  ", level)
	b.WriteString(indent)
	b.WriteString(colors.Color(NodeRole, n.Name()))
	b.WriteByte('\n')
	for _, a := range n.Attributes() {
		b.WriteString(indent)
		b.WriteString("  ")
		b.WriteString(colors.Color(AttrRole, a.Name))
		b.WriteString(colors.Color(SepRole, ": "))
		b.WriteString(colors.Color(TypeRole, typeLabel(a.Value)))
		b.WriteString(colors.Color(SepRole, " = "))
		b.WriteString(colors.Color(valueRole(a.Value), a.Value.Lexical()))
		b.WriteByte('\n')
	}
	children := n.Children()
	if !children.Present() {
		return
	}
	b.WriteString(indent)
	b.WriteString("  ")
	if children.Len() == 0 {
		b.WriteString(colors.Color(SepRole, "children: []"))
		b.WriteByte('\n')
		return
	}
	b.WriteString(colors.Color(SepRole, "children:"))
	b.WriteByte('\n')
	for _, child := range children.Nodes() {
		writeText(b, child, colors, level+2)
	}
}

func typeLabel(v attrvalue.Value) string {
	if v.Kind() == attrvalue.KindRaw {
		return "Raw[" + string(v.Type()) + "]"
	}
	return string(v.Type())
}

func valueRole(v attrvalue.Value) Role {
	if v.Kind() == attrvalue.KindRaw {
		return RawRole
	}
	if tag, ok := v.StringTag(); ok && tag == attrvalue.TagTranslated {
		return HandleRole
	}
	return ValueRole
}

// Tree converts n into an ordered map suitable for YAML or JSON encoding.
// An absent children container is omitted; an empty one is an empty list.
func Tree(n *lsx.Node) yaml.MapSlice {
	out := yaml.MapSlice{{Key: "id", Value: n.Name()}}
	attrs := n.Attributes()
	if len(attrs) > 0 {
		list := make([]yaml.MapSlice, len(attrs))
		for i, a := range attrs {
			list[i] = yaml.MapSlice{
				{Key: "id", Value: a.Name},
				{Key: "type", Value: string(a.Value.Type())},
				{Key: "kind", Value: kindLabel(a.Value)},
				{Key: "value", Value: a.Value.Interface()},
			}
		}
		out = append(out, yaml.MapItem{Key: "attributes", Value: list})
	}
	if children := n.Children(); children.Present() {
		list := make([]yaml.MapSlice, 0, children.Len())
		for _, child := range children.Nodes() {
			list = append(list, Tree(child))
		}
		out = append(out, yaml.MapItem{Key: "children", Value: list})
	}
	return out
}

func kindLabel(v attrvalue.Value) string {
	if tag, ok := v.StringTag(); ok {
		return tag.String()
	}
	return v.Kind().String()
}
