// Package registry maintains the known modeling languages and
// the module paths of their generated implementations. The
// cross-model resolution of the generator uses it to reference
// classes of supermodels instead of redeclaring them.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mandelsoft/metagen/pkg/utils"
)

// Language describes a modeling language by its identifier and
// the module path of its generated implementation.
type Language struct {
	Name   string
	Module string
}

type Registry struct {
	lock      sync.Mutex
	languages map[string]*Language
}

func New() *Registry {
	return &Registry{languages: map[string]*Language{}}
}

func (r *Registry) Register(name, module string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if name == "" {
		return fmt.Errorf("language name must not be empty")
	}
	if old := r.languages[name]; old != nil && old.Module != module {
		return fmt.Errorf("language %q already registered with module %q", name, old.Module)
	}
	r.languages[name] = &Language{Name: name, Module: module}
	return nil
}

func (r *Registry) MustRegister(name, module string) {
	err := r.Register(name, module)
	if err != nil {
		panic(err)
	}
}

// Lookup returns the language for the given identifier. An
// unregistered language defaults its module path to the
// lowercased identifier.
func (r *Registry) Lookup(name string) *Language {
	r.lock.Lock()
	defer r.lock.Unlock()

	if l := r.languages[name]; l != nil {
		return l
	}
	return &Language{Name: name, Module: strings.ToLower(name)}
}

// Names returns all registered language identifiers in stable
// order.
func (r *Registry) Names() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return utils.OrderedMapKeys(r.languages)
}
