package request

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Registry records which Go type owns each postprocessor identity label.
//
// Key derivation trusts Name to be globally unique; the registry is where
// that assumption is enforced.
type Registry struct {
	mu    sync.RWMutex
	names map[string]reflect.Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]reflect.Type)}
}

// Register claims p.Name() for p's concrete type. Registering another
// instance of the same type is a no-op.
func (r *Registry) Register(p Postprocessor) error {
	if IsNil(p) {
		return ErrInvalidPostprocessor
	}
	name := p.Name()
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPostprocessor)
	}
	typ := reflect.TypeOf(p)

	r.mu.RLock()
	owner, exists := r.names[name]
	r.mu.RUnlock()
	if exists && owner == typ {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, exists := r.names[name]; exists {
		if owner == typ {
			return nil
		}
		return fmt.Errorf("%w: %q is owned by %s, not %s", ErrDuplicatePostprocessor, name, owner, typ)
	}
	r.names[name] = typ
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(p Postprocessor) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Registered reports whether p's name is registered to p's type.
func (r *Registry) Registered(p Postprocessor) bool {
	if IsNil(p) {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.names[p.Name()]
	return ok && owner == reflect.TypeOf(p)
}

// Names returns the registered labels in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsNil reports whether p is nil or an interface holding a nil pointer,
// map, slice, func or channel.
func IsNil(p Postprocessor) bool {
	if p == nil {
		return true
	}
	switch v := reflect.ValueOf(p); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// DefaultRegistry is the process-wide postprocessor registry.
var DefaultRegistry = NewRegistry()
