package generator

import (
	"fmt"
	"strings"

	"github.com/mandelsoft/metagen/pkg/metamodel"
	"github.com/mandelsoft/metagen/pkg/registry"
)

// subsets links all subsetting attributes of a class to the
// derived unions they contribute to. A union living in a
// supermodel gets its owning type imported once per run.
// Unresolvable subset targets are warnings, the output stays
// usable and is completed via overrides.
func (g *Generator) subsets(c *metamodel.Class, imported map[string]bool) ([]string, error) {
	var lines []string

	for _, a := range c.OwnedAttributes() {
		if a.Type() == nil || g.classify(a.Type()).SimpleType || isEnumeration(a.Type()) || isExtensionEnd(a) {
			continue
		}
		value, ok := a.TagValue(TAG_SUBSETS)
		if !ok {
			continue
		}

		full := a.QualifiedName()
		for _, name := range splitSubsets(value) {
			lang, d := g.attribute(c, name)
			switch {
			case d != nil && d.Derived:
				if lang != nil {
					line := importLine(lang, d.Owner().Name)
					if !imported[line] {
						lines = append(lines, line)
					}
					imported[line] = true
				}
				lines = append(lines, fmt.Sprintf("%s.%s.add(%s)  # type: ignore[attr-defined]", d.Owner().Name, d.Name, full))
			case d == nil:
				log.Warn("{{attribute}} wants to subset {{target}}, but it is not defined", "attribute", full, "target", name)
			default:
				log.Warn("{{attribute}} wants to subset {{target}}, but it is not a derived union", "attribute", full, "target", name)
			}
		}
	}
	return lines, nil
}

// splitSubsets splits the comma separated subsets tag value,
// tolerating any whitespace around the names.
func splitSubsets(value string) []string {
	var r []string

	for _, f := range strings.Split(value, ",") {
		f = strings.Join(strings.Fields(f), "")
		if f != "" {
			r = append(r, f)
		}
	}
	return r
}

// attribute resolves an attribute name against the class's own
// attributes, recursively its bases and finally the class's
// copy in a supermodel.
func (g *Generator) attribute(c *metamodel.Class, name string) (*registry.Language, *metamodel.Property) {
	for _, a := range c.OwnedAttributes() {
		if a.Name == name {
			return nil, a
		}
	}

	for _, b := range g.bases(c) {
		lang, a := g.attribute(b, name)
		if a != nil {
			return lang, a
		}
	}

	lang, super := g.inSuperModel(c.Name)
	if super != nil && super != c {
		_, a := g.attribute(super, name)
		return lang, a
	}
	return nil, nil
}
