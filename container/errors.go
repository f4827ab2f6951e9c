package container

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure kind. Call sites match with errors.Is,
// or with the predicate helpers below. Every error message carries the
// human-readable key (the name itself, or the type's display name).
var (
	// ErrMissingType is returned by Register when a named key is given no
	// blueprint, or when a type key's type cannot be constructed without one.
	ErrMissingType = errors.New("no constructible type")

	// ErrDuplicateRegistration is returned by Register when the key is
	// already registered.
	ErrDuplicateRegistration = errors.New("already registered")

	// ErrDuplicateInstance is returned by RegisterInstance when the key
	// already has an instance (or a registration).
	ErrDuplicateInstance = errors.New("instance already registered")

	// ErrNotRegistered is returned by Get for unknown keys, including keys
	// reached through recursive dependency resolution.
	ErrNotRegistered = errors.New("not registered")

	// ErrCyclicDependency is returned by Get when a key re-enters its own
	// resolution.
	ErrCyclicDependency = errors.New("cyclic dependency")
)

func errMissingType(k Key) error {
	return fmt.Errorf("container: %w for [%s]", ErrMissingType, k)
}

func errDuplicateRegistration(k Key) error {
	return fmt.Errorf("container: [%s] %w", k, ErrDuplicateRegistration)
}

func errDuplicateInstance(k Key) error {
	return fmt.Errorf("container: [%s] %w", k, ErrDuplicateInstance)
}

func errNotRegistered(k Key) error {
	return fmt.Errorf("container: [%s] %w", k, ErrNotRegistered)
}

func errCyclicDependency(k Key) error {
	return fmt.Errorf("container: %w detected at [%s]", ErrCyclicDependency, k)
}

func IsMissingType(err error) bool { return errors.Is(err, ErrMissingType) }

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateRegistration) || errors.Is(err, ErrDuplicateInstance)
}

func IsNotRegistered(err error) bool { return errors.Is(err, ErrNotRegistered) }

func IsCyclic(err error) bool { return errors.Is(err, ErrCyclicDependency) }
