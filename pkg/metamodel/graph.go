package metamodel

import (
	"fmt"

	"github.com/google/uuid"
)

// Graph is the resolved element graph of one model. It
// exclusively owns its elements for the duration of a
// generator run and is never modified afterwards, except for
// the type normalization pre-pass of the generator.
type Graph struct {
	elements    map[string]Element
	list        []Element
	classes     []*Class
	classByName map[string]*Class
}

// NewGraph links the given elements into a queryable graph.
// All id references are resolved, backrefs (owner, association,
// generalization) are established and elements without id get
// one assigned. Dangling references, duplicate ids, duplicate
// class names and malformed relations are reported as errors.
func NewGraph(elements []Element) (*Graph, error) {
	g := &Graph{
		elements:    map[string]Element{},
		list:        elements,
		classByName: map[string]*Class{},
	}

	for _, e := range elements {
		if e.GetId() == "" {
			e.SetId(uuid.NewString())
		}
		if old := g.elements[e.GetId()]; old != nil {
			return nil, fmt.Errorf("duplicate element id %q (%s and %s)", e.GetId(), old.GetKind(), e.GetKind())
		}
		g.elements[e.GetId()] = e
	}

	for _, e := range elements {
		if c, ok := e.(*Class); ok {
			if c.Name != "" {
				if old := g.classByName[c.Name]; old != nil {
					return nil, fmt.Errorf("class name %q is not unique (%s and %s)", c.Name, old.Id, c.Id)
				}
				g.classByName[c.Name] = c
			}
			g.classes = append(g.classes, c)
		}
	}

	for _, e := range elements {
		var err error
		switch o := e.(type) {
		case *Package:
			err = g.linkPackage(o)
		case *Class:
			err = g.linkClass(o)
		case *Property:
			err = g.linkProperty(o)
		case *Generalization:
			err = g.linkGeneralization(o)
		case *Association:
			err = g.linkRelation(&o.RelationMeta, o)
		case *Extension:
			err = g.linkRelation(&o.RelationMeta, o)
		}
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Graph) linkPackage(p *Package) error {
	if p.Parent != "" {
		parent, err := resolve[*Package](g, p.Parent, p)
		if err != nil {
			return err
		}
		p.parent = parent
	}
	return nil
}

func (g *Graph) linkClass(c *Class) error {
	if c.Package != "" {
		pkg, err := resolve[*Package](g, c.Package, c)
		if err != nil {
			return err
		}
		c.pkg = pkg
	}
	for _, id := range c.Attributes {
		a, err := resolve[*Property](g, id, c)
		if err != nil {
			return err
		}
		a.owner = c
		c.attributes = append(c.attributes, a)
	}
	for _, id := range c.Operations {
		o, err := resolve[*Operation](g, id, c)
		if err != nil {
			return err
		}
		o.owner = c
		c.operations = append(c.operations, o)
	}
	return nil
}

func (g *Graph) linkProperty(p *Property) error {
	if p.TypeRef != "" {
		t, err := resolve[*Class](g, p.TypeRef, p)
		if err != nil {
			return err
		}
		p.typ = t
	}
	return nil
}

func (g *Graph) linkGeneralization(gen *Generalization) error {
	specific, err := resolve[*Class](g, gen.Specific, gen)
	if err != nil {
		return err
	}
	general, err := resolve[*Class](g, gen.General, gen)
	if err != nil {
		return err
	}
	gen.specific = specific
	gen.general = general
	specific.generalizations = append(specific.generalizations, general)
	general.specializations = append(general.specializations, specific)
	return nil
}

func (g *Graph) linkRelation(meta *RelationMeta, r Relation) error {
	if len(meta.Ends) != 2 {
		return fmt.Errorf("%s %s must have exactly two member ends, got %d", r.GetKind(), meta.Id, len(meta.Ends))
	}
	for _, id := range meta.Ends {
		e, err := resolve[*Property](g, id, r)
		if err != nil {
			return err
		}
		e.association = r
		meta.ends = append(meta.ends, e)
	}
	return nil
}

func resolve[T Element](g *Graph, id string, by Element) (T, error) {
	var _nil T

	e := g.elements[id]
	if e == nil {
		return _nil, fmt.Errorf("%s %s references unknown element %q", by.GetKind(), by.GetId(), id)
	}
	t, ok := e.(T)
	if !ok {
		return _nil, fmt.Errorf("%s %s references %q as %s, but it is a %s", by.GetKind(), by.GetId(), id, kindName[T](), e.GetKind())
	}
	return t, nil
}

func kindName[T Element]() string {
	var t T
	switch any(t).(type) {
	case *Package:
		return KIND_PACKAGE
	case *Class:
		return KIND_CLASS
	case *Property:
		return KIND_PROPERTY
	case *Operation:
		return KIND_OPERATION
	case *Generalization:
		return KIND_GENERALIZATION
	default:
		return "element"
	}
}

// Elements returns all elements in model order.
func (g *Graph) Elements() []Element {
	return g.list
}

// Classes returns all classes (including enumerations) in
// model order.
func (g *Graph) Classes() []*Class {
	return g.classes
}

// ClassByName looks up a class by its unique name.
func (g *Graph) ClassByName(name string) *Class {
	return g.classByName[name]
}

// Select returns all elements matching the given predicate in
// model order.
func (g *Graph) Select(pred func(Element) bool) []Element {
	var r []Element
	for _, e := range g.list {
		if pred(e) {
			r = append(r, e)
		}
	}
	return r
}

// Properties returns all properties in model order.
func (g *Graph) Properties() []*Property {
	var r []*Property
	for _, e := range g.list {
		if p, ok := e.(*Property); ok {
			r = append(r, p)
		}
	}
	return r
}
