package tool

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownTool is returned by Set.Run for names that were never registered.
var ErrUnknownTool = errors.New("unknown tool")

// Set is an ordered collection of tools addressed by name.
type Set struct {
	order []string
	defs  map[string]Definition
}

// NewSet returns a Set holding defs. Later definitions replace earlier ones
// with the same name.
func NewSet(defs ...Definition) *Set {
	s := &Set{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		s.Add(d)
	}
	return s
}

// Add registers d.
func (s *Set) Add(d Definition) {
	if _, exists := s.defs[d.Name]; !exists {
		s.order = append(s.order, d.Name)
	}
	s.defs[d.Name] = d
}

// Get looks a tool up by name.
func (s *Set) Get(name string) (Definition, bool) {
	d, ok := s.defs[name]
	return d, ok
}

// Len returns the number of registered tools.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Definitions returns the tools in registration order.
func (s *Set) Definitions() []Definition {
	if s == nil {
		return nil
	}
	out := make([]Definition, 0, len(s.order))
	for name := range slices.Values(s.order) {
		out = append(out, s.defs[name])
	}
	return out
}

// Run calls the named tool with JSON arguments.
func (s *Set) Run(ctx context.Context, name, arguments string) (string, error) {
	d, ok := s.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return d.Call(ctx, arguments)
}
