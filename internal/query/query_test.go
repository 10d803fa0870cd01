package query

import (
	"testing"

	"github.com/jacoelho/lsx"
	"github.com/jacoelho/lsx/pkg/attrvalue"
)

func node(t *testing.T, name string, attrs []lsx.Attribute, children lsx.Children) *lsx.Node {
	t.Helper()
	n, err := lsx.NewNode(name, attrs, children)
	if err != nil {
		t.Fatalf("NewNode() error = %v", err)
	}
	return n
}

func TestPredicateMatch(t *testing.T) {
	leaf := node(t, "leaf", nil, lsx.NoChildren())
	n := node(t, "GameObjects", []lsx.Attribute{
		{Name: "MapKey", Value: attrvalue.FixedString("K1")},
		{Name: "Level", Value: attrvalue.Int32(12)},
		{Name: "Scale", Value: attrvalue.Float32(1.5)},
		{Name: "Hidden", Value: attrvalue.Bool(false)},
		{Name: "Title", Value: attrvalue.TranslatedString("h1")},
	}, lsx.ChildrenOf(leaf))

	tests := []struct {
		source string
		want   bool
	}{
		{source: `name == "GameObjects"`, want: true},
		{source: `attr.Level >= 10`, want: true},
		{source: `attr.Level > 12`, want: false},
		{source: `"MapKey" in attr && attr.MapKey == "K1"`, want: true},
		{source: `kind.MapKey == "FixedString"`, want: true},
		{source: `kind.Title == "TranslatedString" && types.Title == "TranslatedString"`, want: true},
		{source: `kind.Level == "Int32"`, want: true},
		{source: `not attr.Hidden`, want: true},
		{source: `has_children && children == 1 && depth == 1 && descendants == 1`, want: true},
		{source: `"Missing" in attr`, want: false},
		{source: `lower(name) == "gameobjects"`, want: true},
		{source: `text(attr.MapKey) startsWith "K"`, want: true},
		{source: `text(attr.Level) == ""`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			p, err := Compile(tt.source)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			got, err := p.Match(n)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompileRejectsNonBool(t *testing.T) {
	if _, err := Compile(`name`); err == nil {
		t.Fatalf("Compile(name) error = nil, want non-bool error")
	}
	if _, err := Compile(`name ==`); err == nil {
		t.Fatalf("Compile(syntax error) error = nil")
	}
}

func TestFilter(t *testing.T) {
	a := node(t, "a", []lsx.Attribute{{Name: "Level", Value: attrvalue.Int32(1)}}, lsx.NoChildren())
	b := node(t, "b", []lsx.Attribute{{Name: "Level", Value: attrvalue.Int32(5)}}, lsx.NoChildren())
	c := node(t, "c", []lsx.Attribute{{Name: "Level", Value: attrvalue.Int32(9)}}, lsx.NoChildren())
	p, err := Compile(`attr.Level > 2`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	got, err := p.Filter([]*lsx.Node{a, b, c})
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(got) != 2 || got[0].Name() != "b" || got[1].Name() != "c" {
		t.Fatalf("Filter() = %v", got)
	}
}

func TestEnvForKeepsFirstDuplicate(t *testing.T) {
	n := node(t, "n", []lsx.Attribute{
		{Name: "Dup", Value: attrvalue.Int32(1)},
		{Name: "Dup", Value: attrvalue.LSString("second")},
	}, lsx.NoChildren())
	env := EnvFor(n)
	if env.Attr["Dup"] != int32(1) || env.Kind["Dup"] != "Int32" {
		t.Fatalf("EnvFor() Dup = %v (%s), want first value", env.Attr["Dup"], env.Kind["Dup"])
	}
	if env.HasKids {
		t.Fatalf("EnvFor() has_children = true for absent container")
	}
}
