package descriptor

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry maps type identity to descriptor. It is filled once at startup
// and read concurrently afterwards.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*TypeDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[reflect.Type]*TypeDescriptor)}
}

// Register derives the descriptor of sample's type and stores it.
func (r *Registry) Register(sample any, opts ...Option) (*TypeDescriptor, error) {
	d, err := Derive(sample, opts...)
	if err != nil {
		return nil, err
	}

	if err := r.Add(d); err != nil {
		return nil, err
	}

	return d, nil
}

// MustRegister is Register that panics on error, for package-level tables.
func (r *Registry) MustRegister(sample any, opts ...Option) *TypeDescriptor {
	d, err := r.Register(sample, opts...)
	if err != nil {
		panic(err)
	}

	return d
}

// Add stores a descriptor built elsewhere.
func (r *Registry) Add(d *TypeDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byType[d.Type]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, d.Name())
	}

	r.byType[d.Type] = d

	return nil
}

// Lookup returns the descriptor of t, dereferencing pointers.
func (r *Registry) Lookup(t reflect.Type) (*TypeDescriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrUnknownType)
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	d, ok := r.byType[t]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}

	return d, nil
}

// LookupValue returns the descriptor of v's dynamic type.
func (r *Registry) LookupValue(v any) (*TypeDescriptor, error) {
	return r.Lookup(reflect.TypeOf(v))
}

// LookupName finds a descriptor by qualified ("cars.CarWithGetter") or bare
// ("CarWithGetter") name. A bare name matching several packages is an error.
func (r *Registry) LookupName(name string) (*TypeDescriptor, error) {
	var found []*TypeDescriptor
	for _, d := range r.Descriptors() {
		if d.Name() == name {
			return d, nil
		}

		if d.ID.Name == name {
			found = append(found, d)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s is ambiguous, use a qualified name", ErrUnknownType, name)
	}
}

// Descriptors returns all descriptors sorted by qualified name.
func (r *Registry) Descriptors() []*TypeDescriptor {
	r.mu.RLock()
	out := make([]*TypeDescriptor, 0, len(r.byType))
	for _, d := range r.byType {
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})

	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byType)
}
