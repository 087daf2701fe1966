// Package generator turns a resolved metamodel element graph
// into the source declarations of the implementing object
// model. One Generator handles exactly one run; all caches are
// local to the run, so independent runs may execute in
// parallel.
//
// The pipeline is: type normalization, classification,
// dependency ordering, class declarations, associations
// (plain, derived unions, redefinitions) and subset linkage.
// Overrides and supermodel references are consulted at every
// emission decision.
package generator

import (
	"slices"

	"github.com/mandelsoft/metagen/pkg/metamodel"
	"github.com/mandelsoft/metagen/pkg/override"
)

type Generator struct {
	graph     *metamodel.Graph
	overrides *override.Overrides
	supers    []*Supermodel

	stamp []string

	classification map[*metamodel.Class]*Classification
}

// New creates a generator for one run over the given graph.
// The overrides may be nil. Supermodels are consulted in the
// given order.
func New(graph *metamodel.Graph, overrides *override.Overrides, supers ...*Supermodel) *Generator {
	return &Generator{
		graph:          graph,
		overrides:      overrides,
		supers:         supers,
		classification: map[*metamodel.Class]*Classification{},
	}
}

// SetStamp adds comment lines emitted directly after the file
// header, typically input digest stamps.
func (g *Generator) SetStamp(lines ...string) {
	g.stamp = lines
}

// Generate runs the full pipeline and returns the complete
// ordered output line stream. On a fatal condition no lines
// are returned at all; the caller never sees partial output.
func (g *Generator) Generate() ([]string, error) {
	err := g.normalize()
	if err != nil {
		return nil, err
	}

	var selected []*metamodel.Class
	for _, c := range g.graph.Classes() {
		if g.classify(c).Selected() {
			selected = append(selected, c)
		}
	}

	classes, err := g.orderClasses(selected)
	if err != nil {
		return nil, err
	}

	lines := slices.Clone(header)
	lines = append(lines, g.stamp...)
	if h := g.overrides.Header(); h != "" {
		lines = append(lines, h)
	}

	imported := map[string]bool{}

	for _, c := range classes {
		if g.overrides.HasOverride(c.Name) {
			lines = append(lines, g.overrides.GetOverride(c.Name))
			continue
		}

		if lang, super := g.inSuperModel(c.Name); super != nil {
			line := importLine(lang, super.Name)
			if !imported[line] {
				lines = append(lines, line)
			}
			imported[line] = true
			continue
		}

		lines = append(lines, g.classDeclaration(c))
		vars, err := g.variables(c)
		if err != nil {
			return nil, err
		}
		if len(vars) == 0 {
			lines = append(lines, "    pass")
		}
		for _, v := range vars {
			lines = append(lines, "    "+v)
		}
		lines = append(lines, "", "")
	}

	for _, c := range classes {
		lines = append(lines, g.operations(c)...)
	}
	lines = append(lines, "")

	for _, c := range classes {
		assocs, err := g.associations(c)
		if err != nil {
			return nil, err
		}
		lines = append(lines, assocs...)

		subs, err := g.subsets(c, imported)
		if err != nil {
			return nil, err
		}
		lines = append(lines, subs...)
	}
	return lines, nil
}
