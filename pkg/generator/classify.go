package generator

import (
	"strings"

	"github.com/mandelsoft/metagen/pkg/metamodel"
)

const (
	// Classes with one of these name suffixes are enumerations.
	ENUM_SUFFIX_KIND = "Kind"
	ENUM_SUFFIX_SORT = "Sort"

	// Classes with this name prefix are excluded from generation.
	EXCLUDED_PREFIX = "~"

	// Stereotype marking a class to be inlined as a string
	// attribute instead of being declared.
	STEREOTYPE_SIMPLE_ATTRIBUTE = "SimpleAttribute"

	// Stereotype tag features on properties.
	TAG_SUBSETS   = "subsets"
	TAG_REDEFINES = "redefines"

	// Attribute name of the embedded base idiom used for
	// profile style extension.
	ATTR_EMBEDDED_BASE = "baseClass"
)

// Classification is the closed set of structural predicates of
// a class. It is computed once per class and run and shared by
// the orderer, the emitters and the resolvers.
type Classification struct {
	Enumeration bool
	SimpleType  bool
	InProfile   bool
	Excluded    bool
}

// Selected reports whether the class is emitted at all.
func (c *Classification) Selected() bool {
	return !c.Enumeration && !c.SimpleType && !c.InProfile && !c.Excluded
}

func (g *Generator) classify(c *metamodel.Class) *Classification {
	if r := g.classification[c]; r != nil {
		return r
	}
	r := &Classification{
		Enumeration: isEnumeration(c),
		SimpleType:  isSimpleType(c, map[*metamodel.Class]bool{}),
		InProfile:   isInProfile(c),
		Excluded:    strings.HasPrefix(c.Name, EXCLUDED_PREFIX),
	}
	g.classification[c] = r
	return r
}

func isEnumeration(c *metamodel.Class) bool {
	return c != nil && (strings.HasSuffix(c.Name, ENUM_SUFFIX_KIND) || strings.HasSuffix(c.Name, ENUM_SUFFIX_SORT))
}

func isSimpleType(c *metamodel.Class, visited map[*metamodel.Class]bool) bool {
	if visited[c] {
		return false
	}
	visited[c] = true
	if c.HasStereotype(STEREOTYPE_SIMPLE_ATTRIBUTE) {
		return true
	}
	for _, b := range c.Generalizations() {
		if isSimpleType(b, visited) {
			return true
		}
	}
	return false
}

func isInProfile(c *metamodel.Class) bool {
	for p := c.OwningPackage(); p != nil; p = p.OwningPackage() {
		if p.IsProfile() {
			return true
		}
	}
	return false
}

// isExtensionEnd reports whether a property belongs to a
// metaclass extension instead of a regular association. Such
// ends are never emitted.
func isExtensionEnd(a *metamodel.Property) bool {
	return a.Association() != nil && a.Association().IsExtension()
}

// isShadowed reports whether an attribute of the same name is
// already declared by some (transitive) base. Re-declarations
// need an explicit type annotation.
func (g *Generator) isShadowed(a *metamodel.Property) bool {
	owner := a.Owner()
	if owner == nil {
		return false
	}

	visited := map[*metamodel.Class]bool{}
	var test func(c *metamodel.Class) bool
	test = func(c *metamodel.Class) bool {
		if visited[c] {
			return false
		}
		visited[c] = true
		for _, attr := range c.OwnedAttributes() {
			if attr.Name == a.Name {
				return true
			}
		}
		for _, b := range g.bases(c) {
			if test(b) {
				return true
			}
		}
		return false
	}

	for _, b := range g.bases(owner) {
		if test(b) {
			return true
		}
	}
	return false
}
