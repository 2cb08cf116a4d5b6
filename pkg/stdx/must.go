// Package stdx holds small generic helpers that the standard library lacks.
package stdx

// Must1 returns v, or panics when err is not nil. It backs the Must
// constructors used for package level templates, tools and personas.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
