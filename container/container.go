package container

import (
	"sync"

	"go.uber.org/zap"
)

// ── Container ────────────────────────────────────────────────────────────────

// Container is the registry and resolver. It owns three tables:
//
//   - registrations: key → blueprint, written by Register
//   - instances:     key → materialized value, written by RegisterInstance
//     and by the first resolution of a singleton key
//   - singletons:    the set of keys whose resolved value is cached
//
// Construction is always deferred to the first Get. The container is safe
// for concurrent reads; callers that mutate it from several goroutines must
// serialize registration against resolution themselves.
type Container struct {
	mu            sync.RWMutex
	registrations map[Key]*Blueprint
	instances     map[Key]any
	singletons    map[Key]struct{}
	resolving     map[Key]bool

	logger *zap.Logger
}

// Option configures a Container at construction time.
type Option func(*Container)

// WithLogger sets the logger used for debug-level registration and
// resolution events. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		registrations: make(map[Key]*Blueprint),
		instances:     make(map[Key]any),
		singletons:    make(map[Key]struct{}),
		resolving:     make(map[Key]bool),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ─────────────────────────────────────────────────────────────

// Register binds key to a blueprint with singleton lifecycle: the first Get
// constructs the value, every later Get returns the same one.
//
// bp may be nil when key is a type key naming a struct or pointer-to-struct
// type; a zero-argument blueprint is synthesized for it. A named key without
// a blueprint fails with ErrMissingType. Registering a key twice, through
// either Register or RegisterInstance, fails with the duplicate error of the
// failing call.
func (c *Container) Register(key Key, bp *Blueprint) error {
	return c.register(key, bp, true)
}

// RegisterTransient binds key to a blueprint with transient lifecycle:
// every Get constructs a fresh value.
func (c *Container) RegisterTransient(key Key, bp *Blueprint) error {
	return c.register(key, bp, false)
}

func (c *Container) register(key Key, bp *Blueprint, singleton bool) error {
	if bp == nil {
		synthesized, ok := structBlueprint(key.Type())
		if !ok {
			return errMissingType(key)
		}
		bp = synthesized
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.registrations[key]; dup {
		return errDuplicateRegistration(key)
	}
	if _, dup := c.instances[key]; dup {
		return errDuplicateRegistration(key)
	}

	c.registrations[key] = bp
	if singleton {
		c.singletons[key] = struct{}{}
	}

	c.logger.Debug("registered",
		zap.Stringer("key", key),
		zap.Bool("singleton", singleton),
		zap.Int("params", bp.arity()),
	)
	return nil
}

// RegisterInstance binds key to an already-constructed value. Instance
// registrations are always singleton: Get returns the value itself, every
// time.
func (c *Container) RegisterInstance(key Key, instance any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.instances[key]; dup {
		return errDuplicateInstance(key)
	}
	if _, dup := c.registrations[key]; dup {
		return errDuplicateInstance(key)
	}

	c.instances[key] = instance
	c.singletons[key] = struct{}{}

	c.logger.Debug("registered instance", zap.Stringer("key", key))
	return nil
}

// ── Resolution ───────────────────────────────────────────────────────────────

// Get resolves key to a value.
//
// A cached instance is returned immediately. Otherwise the key's blueprint
// is looked up (ErrNotRegistered when absent) and each constructor argument
// is resolved by its directive: ByName recurses through the named key,
// ByType recurses through the declared parameter type's key, and a position
// with no directive stays unresolved. The construct function runs with the
// arguments in positional order; singleton keys cache the result before
// returning it.
//
// Errors from recursive resolution propagate unchanged: a missing
// registration deep in the graph aborts the whole chain and nothing is
// cached. A key that re-enters its own resolution fails with
// ErrCyclicDependency instead of recursing forever.
func (c *Container) Get(key Key) (any, error) {
	c.mu.RLock()
	if instance, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return instance, nil
	}
	bp, ok := c.registrations[key]
	if !ok {
		c.mu.RUnlock()
		return nil, errNotRegistered(key)
	}
	_, singleton := c.singletons[key]
	c.mu.RUnlock()

	c.mu.Lock()
	if c.resolving[key] {
		c.mu.Unlock()
		return nil, errCyclicDependency(key)
	}
	c.resolving[key] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.resolving, key)
		c.mu.Unlock()
	}()

	args, err := c.resolveArgs(key, bp)
	if err != nil {
		return nil, err
	}

	instance := bp.construct(args)

	if singleton {
		c.mu.Lock()
		// First resolution wins; a concurrent Get may have cached already.
		if cached, ok := c.instances[key]; ok {
			instance = cached
		} else {
			c.instances[key] = instance
		}
		c.mu.Unlock()
	}

	c.logger.Debug("resolved",
		zap.Stringer("key", key),
		zap.Bool("singleton", singleton),
	)
	return instance, nil
}

// resolveArgs builds the positional argument list for bp. Positions without
// a directive are left nil.
func (c *Container) resolveArgs(key Key, bp *Blueprint) ([]any, error) {
	n := bp.arity()
	if n == 0 {
		return nil, nil
	}

	args := make([]any, n)
	for i := 0; i < n; i++ {
		d, ok := bp.directive(i)
		if !ok {
			continue
		}

		var depKey Key
		if d.byType {
			declared := bp.paramType(i)
			if declared == nil {
				return nil, errMissingType(key)
			}
			depKey = ForType(declared)
		} else {
			depKey = Named(d.name)
		}

		dep, err := c.Get(depKey)
		if err != nil {
			return nil, err
		}
		args[i] = dep
	}
	return args, nil
}

// ── Introspection & cleanup ──────────────────────────────────────────────────

// Has reports whether key has a registration or a cached instance.
func (c *Container) Has(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, registered := c.registrations[key]
	_, cached := c.instances[key]
	return registered || cached
}

// Clear removes key from all three tables. Clearing an unknown key is a
// no-op.
func (c *Container) Clear(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.registrations, key)
	delete(c.instances, key)
	delete(c.singletons, key)
	c.logger.Debug("cleared", zap.Stringer("key", key))
}

// ClearAll empties the container.
func (c *Container) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registrations = make(map[Key]*Blueprint)
	c.instances = make(map[Key]any)
	c.singletons = make(map[Key]struct{})
	c.logger.Debug("cleared all")
}

// Keys returns every registered key once, whether it lives in the
// registration table, the instance cache, or both. Order is not part of the
// contract.
func (c *Container) Keys() []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Key, 0, len(c.registrations)+len(c.instances))
	for k := range c.registrations {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.registrations[k]; !already {
			out = append(out, k)
		}
	}
	return out
}

// Size returns the number of distinct registered keys.
func (c *Container) Size() int {
	return len(c.Keys())
}
