package generator

import (
	"slices"

	"github.com/mandelsoft/metagen/pkg/metamodel"
)

// Canonical literal type kinds every literal type spelling is
// folded to.
const (
	LITERAL_STRING = "str"
	LITERAL_INT    = "int"
)

var stringSpellings = []string{"String", "str", "object"}
var integerSpellings = []string{"Integer", "Boolean", "UnlimitedNatural", "int", "bool"}

// normalize is the one pre-pass over all properties executed
// before any emission. Literal type spellings are folded to
// their canonical kind, spellings naming a model class are
// converted into composite relations and relations to simple
// types are downgraded to string attributes again. A spelling
// matching neither is a fatal configuration error.
func (g *Generator) normalize() error {
	for _, p := range g.graph.Properties() {
		if t := p.ValueType; t != "" && p.Type() == nil {
			switch {
			case slices.Contains(stringSpellings, t):
				p.SetValueType(LITERAL_STRING)
			case slices.Contains(integerSpellings, t):
				p.SetValueType(LITERAL_INT)
			default:
				c := g.graph.ClassByName(t)
				if c == nil {
					return structural(p.QualifiedName(), "type %q is neither a literal type nor a known class", t)
				}
				p.SetTypeClass(c)
				p.Aggregation = metamodel.AGGREGATION_COMPOSITE
			}
		}

		// Simple types are always inlined, never related.
		if p.Type() != nil && g.classify(p.Type()).SimpleType {
			p.SetValueType(LITERAL_STRING)
		}
	}
	return nil
}
