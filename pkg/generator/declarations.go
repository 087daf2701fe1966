package generator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mandelsoft/metagen/pkg/metamodel"
	"github.com/mandelsoft/metagen/pkg/utils"
)

// header precedes every generated file. It pulls in the
// runtime properties the emitted declarations are built from.
var header = []string{
	"# This file is generated by metagen. DO NOT EDIT!",
	"",
	"from modeling.properties import (",
	"    association,",
	"    attribute as _attribute,",
	"    derived,",
	"    derivedunion,",
	"    enumeration as _enumeration,",
	"    redefine,",
	"    relation_many,",
	"    relation_one,",
	")",
	"",
}

func (g *Generator) classDeclaration(c *metamodel.Class) string {
	bases := g.bases(c)
	names := make([]string, len(bases))
	for i, b := range bases {
		names[i] = b.Name
	}
	slices.Sort(names)
	return fmt.Sprintf("class %s(%s):", c.Name, strings.Join(names, ", "))
}

// variables emits the body of a class declaration: literal
// attributes, enumeration attributes and relation slots, in
// attribute name order, followed by operation annotations.
func (g *Generator) variables(c *metamodel.Class) ([]string, error) {
	var lines []string

	attrs := slices.Clone(c.OwnedAttributes())
	slices.SortStableFunc(attrs, func(a, b *metamodel.Property) int { return strings.Compare(a.Name, b.Name) })

	for _, a := range attrs {
		full := a.QualifiedName()
		switch {
		case g.overrides.HasOverride(full):
			lines = append(lines, fmt.Sprintf("%s: %s", a.Name, g.overrides.GetType(full)))
		case isExtensionEnd(a):
			// metaclass extension ends are never declared
		case a.Derived && a.Type() == nil:
			log.Warn("derived attribute {{attribute}} has no implementation", "attribute", full)
		case a.ValueType != "":
			d, err := defaultValue(a)
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("%s: _attribute[%s] = _attribute(%q, %s%s)", a.Name, a.ValueType, a.Name, a.ValueType, d))
		case isEnumeration(a.Type()):
			line, err := g.enumeration(a)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		case a.Type() != nil:
			mult := "many"
			if a.Upper == "1" {
				mult = "one"
			}
			comment := ""
			if g.isShadowed(a) {
				comment = "  # type: ignore[assignment]"
			}
			lines = append(lines, fmt.Sprintf("%s: relation_%s[%s]%s", a.Name, mult, a.Type().Name, comment))
		default:
			return nil, structural(full, "attribute has neither a literal type nor a resolvable class type")
		}
	}

	ops := slices.Clone(c.OwnedOperations())
	slices.SortStableFunc(ops, func(a, b *metamodel.Operation) int { return strings.Compare(a.Name, b.Name) })

	for _, o := range ops {
		full := o.QualifiedName()
		if g.overrides.HasOverride(full) {
			lines = append(lines, fmt.Sprintf("%s: %s", o.Name, g.overrides.GetType(full)))
		} else {
			log.Warn("operation {{operation}} has no implementation", "operation", full)
		}
	}
	return lines, nil
}

// enumeration emits an enumeration valued attribute listing
// all literals of the enumeration class. The first literal is
// the default.
func (g *Generator) enumeration(a *metamodel.Property) (string, error) {
	lits := a.Type().OwnedAttributes()
	if len(lits) == 0 {
		return "", structural(a.QualifiedName(), "enumeration %s has no literals", a.Type().Name)
	}
	values := utils.JoinFunc(lits, ", ", func(l *metamodel.Property) string { return fmt.Sprintf("%q", l.Name) })
	return fmt.Sprintf("%s = _enumeration(%q, (%s), %q)", a.Name, a.Name, values, lits[0].Name), nil
}

func defaultValue(a *metamodel.Property) (string, error) {
	if a.Default == "" {
		return "", nil
	}
	switch a.ValueType {
	case LITERAL_INT:
		return fmt.Sprintf(", default=%s", titleLiteral(a.Default)), nil
	case LITERAL_STRING:
		return fmt.Sprintf(", default=%q", a.Default), nil
	}
	return "", structural(a.QualifiedName(), "unknown default value type %s = %q", a.ValueType, a.Default)
}

// titleLiteral renders boolean-like defaults title cased, any
// other literal passes unchanged.
func titleLiteral(s string) string {
	switch {
	case strings.EqualFold(s, "true"):
		return "True"
	case strings.EqualFold(s, "false"):
		return "False"
	}
	return s
}

// operations emits the overridden operation implementations of
// a class. Operations are only ever satisfied via override.
func (g *Generator) operations(c *metamodel.Class) []string {
	var lines []string

	ops := slices.Clone(c.OwnedOperations())
	slices.SortStableFunc(ops, func(a, b *metamodel.Operation) int { return strings.Compare(a.Name, b.Name) })

	for _, o := range ops {
		full := o.QualifiedName()
		if g.overrides.HasOverride(full) {
			lines = append(lines, g.overrides.GetOverride(full))
		}
	}
	return lines
}
