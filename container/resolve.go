package container

import "fmt"

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	repo, err := container.Resolve[*Repo](c, container.TypeOf[*Repo]())
func Resolve[T any](c *Container, key Key) (T, error) {
	var zero T
	instance, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T", key, instance)
	}
	return typed, nil
}

// ResolveType resolves T through its own type key.
//
//	repo, err := container.ResolveType[*Repo](c)
func ResolveType[T any](c *Container) (T, error) {
	return Resolve[T](c, TypeOf[T]())
}

// MustResolve is like Resolve but panics on failure. Intended for
// bootstrap code where a missing registration is a programming error.
func MustResolve[T any](c *Container, key Key) T {
	v, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}

// MustResolveType is like ResolveType but panics on failure.
func MustResolveType[T any](c *Container) T {
	v, err := ResolveType[T](c)
	if err != nil {
		panic(err)
	}
	return v
}
