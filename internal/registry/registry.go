// Package registry is a concurrent name to value lookup shared by the model
// handles and the chatbot personas.
package registry

import (
	"slices"

	"github.com/alphadose/haxmap"
)

// Registry stores values by name.
type Registry[T any] interface {
	Get(name string) (T, bool)
	Add(name string, value T)
	// GetOrAdd returns the stored value, computing and storing it on first
	// use. The boolean reports whether the value already existed.
	GetOrAdd(name string, value func() T) (T, bool)
	Del(name string)
	// Names lists the registered names in lexical order.
	Names() []string
}

type registry[T any] struct {
	values *haxmap.Map[string, T]
}

func New[T any]() Registry[T] {
	return &registry[T]{
		values: haxmap.New[string, T](),
	}
}

func (r *registry[T]) Get(name string) (T, bool) {
	return r.values.Get(name)
}

func (r *registry[T]) Add(name string, value T) {
	r.values.Set(name, value)
}

func (r *registry[T]) GetOrAdd(name string, valueFn func() T) (T, bool) {
	return r.values.GetOrCompute(name, valueFn)
}

func (r *registry[T]) Del(name string) {
	r.values.Del(name)
}

func (r *registry[T]) Names() []string {
	names := make([]string, 0, r.values.Len())
	r.values.ForEach(func(name string, _ T) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}
