package metamodel

import (
	"fmt"

	"github.com/mandelsoft/metagen/pkg/runtime"
)

const (
	KIND_PACKAGE        = "Package"
	KIND_CLASS          = "Class"
	KIND_PROPERTY       = "Property"
	KIND_OPERATION      = "Operation"
	KIND_GENERALIZATION = "Generalization"
	KIND_ASSOCIATION    = "Association"
	KIND_EXTENSION      = "Extension"
)

// AGGREGATION_COMPOSITE marks an association end whose owner
// exclusively controls the lifetime of the referenced instances.
const AGGREGATION_COMPOSITE = "composite"

// Element is the common interface of all model elements.
// Elements are identified by id and referenced by id in the
// serialized form. After linking all references are resolved
// to element pointers.
type Element interface {
	runtime.Object
	GetId() string
	SetId(string)
	GetName() string
}

type ElementMeta struct {
	runtime.ObjectMeta `json:",inline"`
	Id                 string `json:"id,omitempty"`
	Name               string `json:"name,omitempty"`
}

func (e *ElementMeta) GetId() string {
	return e.Id
}

func (e *ElementMeta) SetId(id string) {
	e.Id = id
}

func (e *ElementMeta) GetName() string {
	return e.Name
}

////////////////////////////////////////////////////////////////////////////////

type Package struct {
	ElementMeta `json:",inline"`
	Parent      string `json:"parent,omitempty"`
	Profile     bool   `json:"profile,omitempty"`

	parent *Package
}

var _ Element = (*Package)(nil)

// OwningPackage returns the containing package or nil for a
// top level package.
func (p *Package) OwningPackage() *Package {
	return p.parent
}

func (p *Package) IsProfile() bool {
	return p.Profile
}

////////////////////////////////////////////////////////////////////////////////

type Class struct {
	ElementMeta `json:",inline"`
	Package     string   `json:"package,omitempty"`
	Stereotypes []string `json:"stereotypes,omitempty"`
	Attributes  []string `json:"attributes,omitempty"`
	Operations  []string `json:"operations,omitempty"`

	pkg             *Package
	attributes      []*Property
	operations      []*Operation
	generalizations []*Class
	specializations []*Class
}

var _ Element = (*Class)(nil)

func (c *Class) OwningPackage() *Package {
	return c.pkg
}

// OwnedAttributes returns the owned properties in model order.
func (c *Class) OwnedAttributes() []*Property {
	return c.attributes
}

func (c *Class) OwnedOperations() []*Operation {
	return c.operations
}

// Generalizations returns the general classes of all
// generalization relations of this class in model order.
func (c *Class) Generalizations() []*Class {
	return c.generalizations
}

func (c *Class) Specializations() []*Class {
	return c.specializations
}

func (c *Class) HasStereotype(name string) bool {
	for _, s := range c.Stereotypes {
		if s == name {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////////////////////

// Tag is a keyed stereotype annotation on a property, the
// flattened form of an applied stereotype slot.
type Tag struct {
	Feature string `json:"feature"`
	Value   string `json:"value"`
}

type Property struct {
	ElementMeta `json:",inline"`
	ValueType   string `json:"valueType,omitempty"`
	TypeRef     string `json:"typeRef,omitempty"`
	Default     string `json:"default,omitempty"`
	Lower       string `json:"lower,omitempty"`
	Upper       string `json:"upper,omitempty"`
	Derived     bool   `json:"derived,omitempty"`
	Aggregation string `json:"aggregation,omitempty"`
	Tags        []Tag  `json:"tags,omitempty"`

	owner       *Class
	typ         *Class
	association Relation
}

var _ Element = (*Property)(nil)

// Owner returns the owning class. An association end without
// an owning class is not navigable.
func (p *Property) Owner() *Class {
	return p.owner
}

// Type returns the resolved target class, if any.
func (p *Property) Type() *Class {
	return p.typ
}

// SetTypeClass turns the property into a relation to the given
// class. The literal type spelling is dropped.
func (p *Property) SetTypeClass(c *Class) {
	p.typ = c
	p.ValueType = ""
}

// SetValueType turns the property back into a literal valued
// attribute of the given canonical kind.
func (p *Property) SetValueType(t string) {
	p.ValueType = t
	p.typ = nil
}

// Association returns the association or extension this
// property is a member end of, or nil for a plain attribute.
func (p *Property) Association() Relation {
	return p.association
}

// Opposite returns the other end of the relation this property
// is a member end of.
func (p *Property) Opposite() *Property {
	if p.association == nil {
		return nil
	}
	for _, e := range p.association.MemberEnds() {
		if e != p {
			return e
		}
	}
	return nil
}

// TagValue looks up the value of an applied stereotype tag by
// its defining feature name.
func (p *Property) TagValue(feature string) (string, bool) {
	for _, t := range p.Tags {
		if t.Feature == feature {
			return t.Value, true
		}
	}
	return "", false
}

func (p *Property) IsComposite() bool {
	return p.Aggregation == AGGREGATION_COMPOSITE
}

// QualifiedName is the Class.attribute form used in all
// diagnostics and override keys.
func (p *Property) QualifiedName() string {
	if p.owner == nil {
		return fmt.Sprintf("?.%s", p.Name)
	}
	return fmt.Sprintf("%s.%s", p.owner.Name, p.Name)
}

////////////////////////////////////////////////////////////////////////////////

type Operation struct {
	ElementMeta `json:",inline"`

	owner *Class
}

var _ Element = (*Operation)(nil)

func (o *Operation) Owner() *Class {
	return o.owner
}

func (o *Operation) QualifiedName() string {
	if o.owner == nil {
		return fmt.Sprintf("?.%s", o.Name)
	}
	return fmt.Sprintf("%s.%s", o.owner.Name, o.Name)
}

////////////////////////////////////////////////////////////////////////////////

type Generalization struct {
	ElementMeta `json:",inline"`
	Specific    string `json:"specific"`
	General     string `json:"general"`

	specific *Class
	general  *Class
}

var _ Element = (*Generalization)(nil)

func (g *Generalization) GetSpecific() *Class {
	return g.specific
}

func (g *Generalization) GetGeneral() *Class {
	return g.general
}

////////////////////////////////////////////////////////////////////////////////

// Relation is a binary relation between two member ends.
// It is either a regular association or a metaclass extension.
type Relation interface {
	Element
	MemberEnds() []*Property
	IsExtension() bool
}

type RelationMeta struct {
	ElementMeta `json:",inline"`
	Ends        []string `json:"ends"`

	ends []*Property
}

func (r *RelationMeta) MemberEnds() []*Property {
	return r.ends
}

type Association struct {
	RelationMeta `json:",inline"`
}

var _ Relation = (*Association)(nil)

func (a *Association) IsExtension() bool {
	return false
}

type Extension struct {
	RelationMeta `json:",inline"`
}

var _ Relation = (*Extension)(nil)

func (e *Extension) IsExtension() bool {
	return true
}
