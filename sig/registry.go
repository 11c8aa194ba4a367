package sig

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// ErrUnknownKind is returned when a name does not refer to a declared
// node-kind.
var ErrUnknownKind = errors.New("unknown node-kind")

// ErrDuplicateKind is returned when a node-kind is registered twice.
var ErrDuplicateKind = errors.New("node-kind already registered")

// Registry is a queryable collection of node-kinds, keyed by name.
// It is safe for concurrent use; generated code registers kinds from init
// functions.
type Registry struct {
	sync.RWMutex
	symtab *SymbolTable
}

// Global is the process-wide registry. Code generated by package derive
// registers its node-kinds here.
var Global = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{symtab: NewSymbolTable()}
}

// Register adds a node-kind to the registry. It is an error to register two
// kinds of the same name.
func (r *Registry) Register(k *Kind) error {
	if k == nil {
		return errors.New("cannot register nil node-kind")
	}
	r.Lock()
	defer r.Unlock()
	tag, found := r.symtab.ResolveOrDefineTag(k.Name)
	if found {
		tracer().Errorf("node-kind %s already registered", k.Name)
		return errors.Wrap(ErrDuplicateKind, k.Name)
	}
	tag.WithType(KindTag).UData = k
	tracer().Debugf("registered node-kind %s", k.Name)
	return nil
}

// MustRegister is like Register, but panics on error. It returns its
// argument for convenience.
func (r *Registry) MustRegister(k *Kind) *Kind {
	if err := r.Register(k); err != nil {
		panic(err)
	}
	return k
}

// Declare runs a builder function for a new node-kind and registers the
// resulting kind.
func (r *Registry) Declare(name string, decl func(*KindBuilder)) (*Kind, error) {
	b := NewKindBuilder(name)
	decl(b)
	k, err := b.Kind()
	if err != nil {
		return nil, err
	}
	if err = r.Register(k); err != nil {
		return nil, err
	}
	return k, nil
}

// Lookup finds a node-kind by name.
func (r *Registry) Lookup(name string) (*Kind, error) {
	r.RLock()
	defer r.RUnlock()
	tag := r.symtab.ResolveTag(name)
	if tag == nil || tag.Typ != KindTag {
		return nil, errors.Wrap(ErrUnknownKind, name)
	}
	return tag.UData.(*Kind), nil
}

// Kinds returns all registered kinds, sorted by name.
func (r *Registry) Kinds() []*Kind {
	r.RLock()
	defer r.RUnlock()
	kinds := make([]*Kind, 0, r.symtab.Size())
	r.symtab.Each(func(_ string, tag *Tag) {
		kinds = append(kinds, tag.UData.(*Kind))
	})
	return kinds
}

// Size returns the number of registered kinds.
func (r *Registry) Size() int {
	r.RLock()
	defer r.RUnlock()
	return r.symtab.Size()
}

func (r *Registry) String() string {
	return fmt.Sprintf("<registry of %d kinds>", r.Size())
}
