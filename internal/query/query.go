// Package query evaluates expr-lang predicates against decoded nodes.
//
// A predicate sees one node through Env, for example:
//
//	name == "GameObjects" && attr.Level >= 10
//	"MapKey" in attr && kind.MapKey == "FixedString"
//
// text(v) yields v when it is a string and "" otherwise, so string operators can be
// applied to attributes of any kind.
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/jacoelho/lsx"
)

// Env is the evaluation environment for one node.
type Env struct {
	Attr     map[string]any    `expr:"attr"`
	Kind     map[string]string `expr:"kind"`
	Type     map[string]string `expr:"types"`
	Name     string            `expr:"name"`
	Depth    int               `expr:"depth"`
	Count    int               `expr:"descendants"`
	Children int               `expr:"children"`
	HasKids  bool              `expr:"has_children"`
}

// Predicate is a compiled boolean expression.
type Predicate struct {
	program *vm.Program
	source  string
}

func options() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("text", func(params ...any) (any, error) {
			s, ok := params[0].(string)
			if !ok {
				return "", nil
			}
			return s, nil
		},
			new(func(any) string)),
	}
}

// Compile parses source into a Predicate.
func Compile(source string) (*Predicate, error) {
	program, err := expr.Compile(source, options()...)
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", source, err)
	}
	return &Predicate{program: program, source: source}, nil
}

// String returns the predicate source.
func (p *Predicate) String() string { return p.source }

// Match evaluates the predicate against n.
func (p *Predicate) Match(n *lsx.Node) (bool, error) {
	out, err := expr.Run(p.program, EnvFor(n))
	if err != nil {
		return false, fmt.Errorf("evaluate query on %s: %w", n.Name(), err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("evaluate query on %s: result %T is not bool", n.Name(), out)
	}
	return matched, nil
}

// Filter returns the nodes accepted by the predicate, in order.
func (p *Predicate) Filter(nodes []*lsx.Node) ([]*lsx.Node, error) {
	var out []*lsx.Node
	for _, n := range nodes {
		ok, err := p.Match(n)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// EnvFor builds the environment for n. Repeated attribute names keep the first value.
func EnvFor(n *lsx.Node) Env {
	attrs := n.Attributes()
	env := Env{
		Name:     n.Name(),
		Attr:     make(map[string]any, len(attrs)),
		Kind:     make(map[string]string, len(attrs)),
		Type:     make(map[string]string, len(attrs)),
		Depth:    n.Depth(),
		Count:    n.Count(),
		Children: n.Children().Len(),
		HasKids:  n.Children().Present(),
	}
	for _, attr := range attrs {
		if _, seen := env.Attr[attr.Name]; seen {
			continue
		}
		env.Attr[attr.Name] = attr.Value.Interface()
		kind := attr.Value.Kind().String()
		if tag, ok := attr.Value.StringTag(); ok {
			kind = tag.String()
		}
		env.Kind[attr.Name] = kind
		env.Type[attr.Name] = string(attr.Value.Type())
	}
	return env
}
