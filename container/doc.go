// Package container provides a small dependency-injection container: a
// registry mapping named or type-identified keys to constructible
// blueprints or pre-built instances, with singleton and transient
// lifecycles and recursive constructor-argument resolution.
//
// # Keys
//
// A registration is identified by a Key — either a name or a type:
//
//	container.Named("cache")
//	container.TypeOf[*Repo]()
//	container.TypeOf[Store]()   // interfaces work too
//
// The two kinds live in separate namespaces and never collide.
//
// # Registering
//
//	c := container.New()
//
//	// Singleton — constructed on first Get, cached afterwards
//	err := c.Register(container.TypeOf[*Store](), container.FuncBlueprint(NewStore))
//
//	// Transient — constructed on every Get
//	err = c.RegisterTransient(container.Named("job"), container.FuncBlueprint(NewJob))
//
//	// Pre-built value — always singleton
//	err = c.RegisterInstance(container.Named("config"), cfg)
//
// Construction is deferred: Register never runs the constructor.
// Registering the same key twice fails with ErrDuplicateRegistration or
// ErrDuplicateInstance.
//
// # Dependencies
//
// A Blueprint carries one resolution directive per constructor parameter
// position. A ByType directive resolves the argument through the declared
// parameter type's key; ByName resolves through a named key; a position
// with no directive receives its zero value.
//
//	// NewRepo(s *Store) *Repo — Store resolved by type
//	c.Register(container.TypeOf[*Repo](), container.FuncBlueprint(NewRepo).InjectAll())
//
//	// NewWriter(path string) *Writer — path resolved by name
//	c.Register(container.TypeOf[*Writer](),
//	    container.FuncBlueprint(NewWriter).Inject(0, container.ByName("log.path")))
//
// Get walks the dependency graph recursively. Unknown keys fail with
// ErrNotRegistered and abort the whole chain; a cyclic graph fails with
// ErrCyclicDependency instead of recursing without bound.
//
// # Resolving
//
//	raw, err := c.Get(container.TypeOf[*Repo]())
//	repo, err := container.Resolve[*Repo](c, container.TypeOf[*Repo]())
//	repo, err := container.ResolveType[*Repo](c)
//
// # Service providers
//
// Providers group registrations and get a two-phase lifecycle (Register,
// then Boot once everything is registered):
//
//	reg := container.NewProviderRegistry(c)
//	err := reg.Register(&StorageProvider{})
//	err = reg.Boot()
package container
