package generator

import (
	"fmt"

	"github.com/mandelsoft/metagen/pkg/metamodel"
)

// associations emits the association statements of a class:
// plain associations and derived unions first, queued
// redefinitions afterwards, so a redefinition never precedes
// the association it rewrites.
func (g *Generator) associations(c *metamodel.Class) ([]string, error) {
	var lines []string
	var redefinitions []string

	for _, a := range c.OwnedAttributes() {
		full := a.QualifiedName()
		if g.overrides.HasOverride(full) {
			lines = append(lines, g.overrides.GetOverride(full))
			continue
		}
		if a.Type() == nil || g.classify(a.Type()).SimpleType || isEnumeration(a.Type()) || isExtensionEnd(a) {
			continue
		}

		redefines, hasRedefines := a.TagValue(TAG_REDEFINES)
		_, hasSubsets := a.TagValue(TAG_SUBSETS)
		if hasRedefines && hasSubsets {
			return nil, structural(full, "conflicting redefines and subsets tags")
		}

		switch {
		case hasRedefines:
			redefinitions = append(redefinitions,
				fmt.Sprintf("%s = redefine(%s, %q, %s, %s)", full, c.Name, a.Name, a.Type().Name, redefines))
		case a.Derived:
			lines = append(lines,
				fmt.Sprintf("%s = derivedunion(%q, %s%s%s)", full, a.Name, a.Type().Name, lower(a), upper(a)))
		case a.Name == "":
			rel := "<none>"
			if a.Association() != nil {
				rel = a.Association().GetId()
			}
			return nil, structural(full, "unnamed association end (%s)", rel)
		default:
			lines = append(lines,
				fmt.Sprintf("%s = association(%q, %s%s%s%s%s)", full, a.Name, a.Type().Name, lower(a), upper(a), composite(a), opposite(a)))
		}
	}

	return append(lines, redefinitions...), nil
}

// lower renders the lower bound, omitted when 0 or absent.
func lower(a *metamodel.Property) string {
	if a.Lower == "" || a.Lower == "0" {
		return ""
	}
	return fmt.Sprintf(", lower=%s", a.Lower)
}

// upper renders the upper bound, omitted when unbounded.
func upper(a *metamodel.Property) string {
	if a.Upper == "" || a.Upper == "*" {
		return ""
	}
	return fmt.Sprintf(", upper=%s", a.Upper)
}

func composite(a *metamodel.Property) string {
	if a.IsComposite() {
		return ", composite=True"
	}
	return ""
}

// opposite renders the opposite end name, included only when
// the other end is named and anchored to a concrete class.
func opposite(a *metamodel.Property) string {
	o := a.Opposite()
	if o == nil || o.Name == "" || o.Owner() == nil {
		return ""
	}
	return fmt.Sprintf(", opposite=%q", o.Name)
}
