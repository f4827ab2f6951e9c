package container

import (
	"fmt"
	"reflect"
)

// ── Resolution directives ────────────────────────────────────────────────────

// Directive tells the resolver how to fill one constructor parameter.
type Directive struct {
	name   string
	byType bool
}

// ByName resolves the parameter through the named key, regardless of the
// parameter's declared type.
func ByName(name string) Directive {
	return Directive{name: name}
}

// ByType resolves the parameter through the type key of its declared type.
func ByType() Directive {
	return Directive{byType: true}
}

// ── Blueprint ────────────────────────────────────────────────────────────────

// Blueprint describes how to construct a value: a construct function taking
// positional, already-resolved arguments, the declared parameter types in
// positional order, and a directive per parameter position.
//
// A position with no directive is left unresolved — the construct function
// receives nil there (or the parameter's zero value, for FuncBlueprint).
// A Blueprint with no directives and no parameters is a plain zero-argument
// constructor.
type Blueprint struct {
	construct func(args []any) any
	params    []reflect.Type
	inject    map[int]Directive
}

// NewBlueprint wraps a raw construct function. Chain Params and Inject to
// describe the constructor's shape:
//
//	bp := container.NewBlueprint(func(args []any) any {
//	        return &Repo{store: args[0].(*Store)}
//	    }).
//	    Params(reflect.TypeOf(&Store{})).
//	    Inject(0, container.ByType())
func NewBlueprint(construct func(args []any) any) *Blueprint {
	return &Blueprint{construct: construct}
}

// Params declares the constructor's parameter types in positional order.
func (b *Blueprint) Params(types ...reflect.Type) *Blueprint {
	b.params = types
	return b
}

// Inject attaches a directive to the parameter at pos.
func (b *Blueprint) Inject(pos int, d Directive) *Blueprint {
	if b.inject == nil {
		b.inject = make(map[int]Directive)
	}
	b.inject[pos] = d
	return b
}

// InjectAll attaches a ByType directive to every declared parameter.
func (b *Blueprint) InjectAll() *Blueprint {
	for i := range b.params {
		b.Inject(i, ByType())
	}
	return b
}

// arity is the number of argument slots the construct function receives:
// the declared parameter count, stretched to cover any directive that sits
// beyond it.
func (b *Blueprint) arity() int {
	n := len(b.params)
	for pos := range b.inject {
		if pos+1 > n {
			n = pos + 1
		}
	}
	return n
}

// paramType returns the declared type at pos, or nil if undeclared.
func (b *Blueprint) paramType(pos int) reflect.Type {
	if pos < 0 || pos >= len(b.params) {
		return nil
	}
	return b.params[pos]
}

// directive returns the directive at pos, if any.
func (b *Blueprint) directive(pos int) (Directive, bool) {
	d, ok := b.inject[pos]
	return d, ok
}

// ── Reflected blueprints ─────────────────────────────────────────────────────

// FuncBlueprint builds a Blueprint from a constructor function. The declared
// parameter types are read from the function signature; the function must
// return exactly one value. No directives are attached — chain Inject or
// InjectAll to mark which parameters the container should resolve:
//
//	bp := container.FuncBlueprint(NewRepo).InjectAll()
//
// Unresolved argument slots are passed as the parameter's zero value.
// FuncBlueprint panics when fn is not a single-result function; that is a
// programming error at registration time, not a runtime condition.
func FuncBlueprint(fn any) *Blueprint {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("container: FuncBlueprint requires a function, got %T", fn))
	}
	if t.IsVariadic() {
		panic("container: FuncBlueprint does not support variadic constructors")
	}
	if t.NumOut() != 1 {
		panic(fmt.Sprintf("container: FuncBlueprint constructor must return exactly one value, %s returns %d", t, t.NumOut()))
	}

	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}

	construct := func(args []any) any {
		in := make([]reflect.Value, len(params))
		for i, pt := range params {
			arg := args[i]
			if arg == nil {
				in[i] = reflect.Zero(pt)
				continue
			}
			in[i] = reflect.ValueOf(arg)
		}
		return v.Call(in)[0].Interface()
	}

	return &Blueprint{construct: construct, params: params}
}

// structBlueprint synthesizes a zero-argument Blueprint for a struct or
// pointer-to-struct type. Used when a type key is registered without an
// explicit blueprint.
func structBlueprint(t reflect.Type) (*Blueprint, bool) {
	switch {
	case t == nil:
		return nil, false
	case t.Kind() == reflect.Struct:
		return NewBlueprint(func([]any) any {
			return reflect.New(t).Elem().Interface()
		}), true
	case t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
		elem := t.Elem()
		return NewBlueprint(func([]any) any {
			return reflect.New(elem).Interface()
		}), true
	default:
		return nil, false
	}
}
