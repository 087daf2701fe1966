// Package testtypes provides element constructors for building
// model graphs in tests.
package testtypes

import (
	"github.com/mandelsoft/metagen/pkg/metamodel"
	"github.com/mandelsoft/metagen/pkg/runtime"
)

func Meta(kind, id, name string) metamodel.ElementMeta {
	return metamodel.ElementMeta{
		ObjectMeta: runtime.ObjectMeta{Kind: kind},
		Id:         id,
		Name:       name,
	}
}

func NewPackage(id, name string) *metamodel.Package {
	return &metamodel.Package{
		ElementMeta: Meta(metamodel.KIND_PACKAGE, id, name),
	}
}

func NewProfile(id, name string) *metamodel.Package {
	p := NewPackage(id, name)
	p.Profile = true
	return p
}

func NewClass(id, name string, attrs ...string) *metamodel.Class {
	return &metamodel.Class{
		ElementMeta: Meta(metamodel.KIND_CLASS, id, name),
		Attributes:  attrs,
	}
}

// NewAttribute creates a plain attribute with a literal type
// spelling.
func NewAttribute(id, name, valueType string) *metamodel.Property {
	return &metamodel.Property{
		ElementMeta: Meta(metamodel.KIND_PROPERTY, id, name),
		ValueType:   valueType,
	}
}

// NewEnd creates an association end targeting the class with
// the given id.
func NewEnd(id, name, typeRef string) *metamodel.Property {
	return &metamodel.Property{
		ElementMeta: Meta(metamodel.KIND_PROPERTY, id, name),
		TypeRef:     typeRef,
	}
}

func NewOperation(id, name string) *metamodel.Operation {
	return &metamodel.Operation{
		ElementMeta: Meta(metamodel.KIND_OPERATION, id, name),
	}
}

func NewGeneralization(id, specific, general string) *metamodel.Generalization {
	return &metamodel.Generalization{
		ElementMeta: Meta(metamodel.KIND_GENERALIZATION, id, ""),
		Specific:    specific,
		General:     general,
	}
}

func NewAssociation(id string, ends ...string) *metamodel.Association {
	return &metamodel.Association{
		RelationMeta: metamodel.RelationMeta{
			ElementMeta: Meta(metamodel.KIND_ASSOCIATION, id, ""),
			Ends:        ends,
		},
	}
}

func NewExtension(id string, ends ...string) *metamodel.Extension {
	return &metamodel.Extension{
		RelationMeta: metamodel.RelationMeta{
			ElementMeta: Meta(metamodel.KIND_EXTENSION, id, ""),
			Ends:        ends,
		},
	}
}
