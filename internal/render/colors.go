package render

import (
	"strings"

	"github.com/fatih/color"
)

// Role names a syntactic part of the text rendering.
type Role int

const (
	NodeRole Role = iota
	AttrRole
	TypeRole
	ValueRole
	HandleRole
	RawRole
	SepRole
	InsertRole
	DeleteRole
)

// Colors maps roles to formatting functions. A nil *Colors renders plain text.
type Colors struct {
	Map map[Role]func(string, ...any) string
}

func rgb(r, g, b int) func(string, ...any) string {
	c := color.RGB(r, g, b)
	c.EnableColor()
	return c.SprintfFunc()
}

func attr(a color.Attribute) func(string, ...any) string {
	c := color.New(a)
	c.EnableColor()
	return c.SprintfFunc()
}

// NewColors returns the default palette. Colors are forced on; callers decide
// whether to use them.
func NewColors() *Colors {
	colors := &Colors{Map: map[Role]func(string, ...any) string{
		NodeRole:   rgb(128, 168, 196),
		AttrRole:   rgb(196, 96, 16),
		TypeRole:   rgb(74, 92, 138),
		ValueRole:  rgb(8, 196, 16),
		HandleRole: rgb(198, 198, 46),
		RawRole:    rgb(168, 0, 196),
		SepRole:    rgb(96, 96, 96),
		InsertRole: attr(color.FgGreen),
		DeleteRole: attr(color.FgRed),
	}}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

// Color formats s for role.
func (c *Colors) Color(role Role, s string) string {
	if c == nil {
		return s
	}
	f := c.Map[role]
	if f == nil {
		return s
	}
	return f(s)
}
