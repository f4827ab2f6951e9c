package container

import "reflect"

// ── Registry keys ────────────────────────────────────────────────────────────

type keyKind uint8

const (
	kindNamed keyKind = iota
	kindType
)

// Key identifies a registration. It is either a named key (compared by
// string equality) or a type key (compared by reflect.Type identity).
// The two kinds never collide: Named("main.Store") and TypeOf[Store]()
// are distinct keys even when the display names match.
//
// Key is a comparable value type and can be used directly as a map key.
type Key struct {
	kind keyKind
	name string
	typ  reflect.Type
}

// Named returns a key identified by an opaque name.
//
//	c.Register(container.Named("cache"), bp)
func Named(name string) Key {
	return Key{kind: kindNamed, name: name}
}

// ForType returns a key identified by a reflect.Type.
func ForType(t reflect.Type) Key {
	return Key{kind: kindType, typ: t}
}

// TypeOf returns the type key for T. It works for interface types as well
// as concrete ones:
//
//	container.TypeOf[*Repo]()
//	container.TypeOf[Store]()   // Store is an interface
func TypeOf[T any]() Key {
	return ForType(reflect.TypeOf((*T)(nil)).Elem())
}

// IsNamed reports whether k is a named key.
func (k Key) IsNamed() bool { return k.kind == kindNamed }

// Type returns the reflect.Type of a type key, or nil for named keys.
func (k Key) Type() reflect.Type {
	if k.kind != kindType {
		return nil
	}
	return k.typ
}

// String returns the human-readable form used in error messages:
// the name itself, or the type's display name.
func (k Key) String() string {
	if k.kind == kindNamed {
		return k.name
	}
	if k.typ == nil {
		return "<nil type>"
	}
	return k.typ.String()
}
