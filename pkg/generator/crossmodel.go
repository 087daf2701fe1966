package generator

import (
	"fmt"

	"github.com/mandelsoft/metagen/pkg/metamodel"
	"github.com/mandelsoft/metagen/pkg/registry"
)

// Supermodel couples a modeling language with the element
// graph of its already generated model. Supermodels are
// consulted read only.
type Supermodel struct {
	Language *registry.Language
	Graph    *metamodel.Graph
}

func NewSupermodel(lang *registry.Language, graph *metamodel.Graph) *Supermodel {
	return &Supermodel{Language: lang, Graph: graph}
}

// inSuperModel returns the first supermodel containing a class
// of the given name which is neither profile owned nor an
// enumeration, together with its language. Such a class is
// referenced instead of redeclared.
func (g *Generator) inSuperModel(name string) (*registry.Language, *metamodel.Class) {
	for _, sm := range g.supers {
		c := sm.Graph.ClassByName(name)
		if c == nil {
			continue
		}
		if isInProfile(c) || isEnumeration(c) {
			continue
		}
		return sm.Language, c
	}
	return nil, nil
}

func importLine(lang *registry.Language, name string) string {
	return fmt.Sprintf("from %s import %s", lang.Module, name)
}
