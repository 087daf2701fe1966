package metamodel

import (
	"github.com/mandelsoft/metagen/pkg/runtime"
)

type Scheme = runtime.Scheme[Element]

var scheme = runtime.NewYAMLScheme[Element](runtime.KindExtractorFor[ElementMeta]())

func init() {
	runtime.MustRegister[Package, *Package, Element](scheme, KIND_PACKAGE)
	runtime.MustRegister[Class, *Class, Element](scheme, KIND_CLASS)
	runtime.MustRegister[Property, *Property, Element](scheme, KIND_PROPERTY)
	runtime.MustRegister[Operation, *Operation, Element](scheme, KIND_OPERATION)
	runtime.MustRegister[Generalization, *Generalization, Element](scheme, KIND_GENERALIZATION)
	runtime.MustRegister[Association, *Association, Element](scheme, KIND_ASSOCIATION)
	runtime.MustRegister[Extension, *Extension, Element](scheme, KIND_EXTENSION)
}

// DefaultScheme returns the element scheme with all standard
// element kinds registered.
func DefaultScheme() Scheme {
	return scheme
}
