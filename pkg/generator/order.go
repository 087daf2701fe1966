package generator

import (
	"slices"
	"strings"

	"github.com/mandelsoft/metagen/pkg/metamodel"
	"github.com/mandelsoft/metagen/pkg/utils"
)

// bases returns the base classes of c: the targets of all
// generalizations plus any class reached via the embedded base
// idiom, an attribute named baseClass whose association's
// other end is unnamed.
func (g *Generator) bases(c *metamodel.Class) []*metamodel.Class {
	r := slices.Clone(c.Generalizations())

	for _, a := range c.OwnedAttributes() {
		if a.Name != ATTR_EMBEDDED_BASE || a.Association() == nil || a.Type() == nil {
			continue
		}
		opp := a.Opposite()
		if opp != nil && opp.Name == "" {
			r = append(r, a.Type())
		}
	}
	return r
}

// orderClasses sorts the selected classes so that every base
// precedes all its derived classes. Ties among independent
// subtrees keep the model order. A generalization cycle is a
// fatal structural error.
func (g *Generator) orderClasses(classes []*metamodel.Class) ([]*metamodel.Class, error) {
	var ordered []*metamodel.Class

	visited := map[*metamodel.Class]bool{}

	var visit func(c *metamodel.Class, stack []string) error
	visit = func(c *metamodel.Class, stack []string) error {
		if visited[c] {
			return nil
		}
		if cycle := utils.Cycle(c.Name, stack...); cycle != nil {
			return structural(c.Name, "generalization cycle %s", strings.Join(cycle, " -> "))
		}
		stack = append(stack, c.Name)
		for _, b := range g.bases(c) {
			if !g.classify(b).Selected() {
				continue
			}
			err := visit(b, stack)
			if err != nil {
				return err
			}
		}
		visited[c] = true
		ordered = append(ordered, c)
		return nil
	}

	for _, c := range classes {
		err := visit(c, nil)
		if err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
