package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindle-di/spindle/container"
)

// ── fixtures ─────────────────────────────────────────────────────────────────

type Database struct {
	dsn string
}

func NewDatabase() *Database { return &Database{dsn: "memory"} }

type Repo struct {
	db *Database
}

func NewRepo(db *Database) *Repo { return &Repo{db: db} }

type Service struct {
	repo *Repo
	name string
}

func NewService(repo *Repo, name string) *Service {
	return &Service{repo: repo, name: name}
}

// ── Has / Clear ──────────────────────────────────────────────────────────────

func TestHas_FollowsRegistrationLifecycle(t *testing.T) {
	c := container.New()
	key := container.Named("db")

	assert.False(t, c.Has(key))

	require.NoError(t, c.Register(key, container.FuncBlueprint(NewDatabase)))
	assert.True(t, c.Has(key))

	c.Clear(key)
	assert.False(t, c.Has(key))
}

func TestHas_AfterRegisterInstance(t *testing.T) {
	c := container.New()
	key := container.Named("cfg")

	require.NoError(t, c.RegisterInstance(key, "value"))
	assert.True(t, c.Has(key))

	c.Clear(key)
	assert.False(t, c.Has(key))
}

func TestClear_UnknownKeyIsNoOp(t *testing.T) {
	c := container.New()
	c.Clear(container.Named("ghost")) // must not panic
	assert.False(t, c.Has(container.Named("ghost")))
}

func TestClear_RemovesSingletonMark(t *testing.T) {
	c := container.New()
	key := container.Named("db")

	require.NoError(t, c.Register(key, container.FuncBlueprint(NewDatabase)))
	first, err := c.Get(key)
	require.NoError(t, err)

	c.Clear(key)

	// Re-register transient under the same key: the old cached instance is gone.
	require.NoError(t, c.RegisterTransient(key, container.FuncBlueprint(NewDatabase)))
	second, err := c.Get(key)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

// ── Duplicates ───────────────────────────────────────────────────────────────

func TestRegister_DuplicateCombinationsFail(t *testing.T) {
	key := container.Named("db")
	bp := func() *container.Blueprint { return container.FuncBlueprint(NewDatabase) }

	tests := []struct {
		name    string
		first   func(c *container.Container) error
		second  func(c *container.Container) error
		wantErr error
	}{
		{
			"register then register",
			func(c *container.Container) error { return c.Register(key, bp()) },
			func(c *container.Container) error { return c.Register(key, bp()) },
			container.ErrDuplicateRegistration,
		},
		{
			"register then registerInstance",
			func(c *container.Container) error { return c.Register(key, bp()) },
			func(c *container.Container) error { return c.RegisterInstance(key, NewDatabase()) },
			container.ErrDuplicateInstance,
		},
		{
			"registerInstance then register",
			func(c *container.Container) error { return c.RegisterInstance(key, NewDatabase()) },
			func(c *container.Container) error { return c.Register(key, bp()) },
			container.ErrDuplicateRegistration,
		},
		{
			"registerInstance then registerInstance",
			func(c *container.Container) error { return c.RegisterInstance(key, NewDatabase()) },
			func(c *container.Container) error { return c.RegisterInstance(key, NewDatabase()) },
			container.ErrDuplicateInstance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := container.New()
			require.NoError(t, tt.first(c))

			before, err := c.Get(key)
			require.NoError(t, err)

			err = tt.second(c)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "db")

			// Table state is unchanged by the failed call.
			after, err := c.Get(key)
			require.NoError(t, err)
			assert.Same(t, before, after)
		})
	}
}

// ── Lifecycles ───────────────────────────────────────────────────────────────

func TestGet_SingletonReturnsSameInstance(t *testing.T) {
	c := container.New()
	key := container.TypeOf[*Database]()

	require.NoError(t, c.Register(key, container.FuncBlueprint(NewDatabase)))

	first, err := c.Get(key)
	require.NoError(t, err)
	second, err := c.Get(key)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestGet_TransientReturnsDistinctInstances(t *testing.T) {
	c := container.New()
	key := container.TypeOf[*Database]()

	require.NoError(t, c.RegisterTransient(key, container.FuncBlueprint(NewDatabase)))

	first, err := c.Get(key)
	require.NoError(t, err)
	second, err := c.Get(key)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestGet_InstanceRegistrationIsAlwaysSingleton(t *testing.T) {
	c := container.New()
	key := container.Named("db")
	db := NewDatabase()

	require.NoError(t, c.RegisterInstance(key, db))

	for i := 0; i < 3; i++ {
		got, err := c.Get(key)
		require.NoError(t, err)
		assert.Same(t, db, got)
	}
}

func TestRegister_DoesNotConstruct(t *testing.T) {
	c := container.New()
	constructed := false

	bp := container.NewBlueprint(func([]any) any {
		constructed = true
		return NewDatabase()
	})
	require.NoError(t, c.Register(container.Named("db"), bp))
	assert.False(t, constructed)

	_, err := c.Get(container.Named("db"))
	require.NoError(t, err)
	assert.True(t, constructed)
}

// ── Dependency resolution ────────────────────────────────────────────────────

func TestGet_ResolvesByDeclaredType(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.TypeOf[*Database](), container.FuncBlueprint(NewDatabase)))
	require.NoError(t, c.Register(container.TypeOf[*Repo](), container.FuncBlueprint(NewRepo).InjectAll()))

	repo, err := container.ResolveType[*Repo](c)
	require.NoError(t, err)

	db, err := container.ResolveType[*Database](c)
	require.NoError(t, err)

	assert.Same(t, db, repo.db)
}

func TestGet_ResolvesByExplicitName(t *testing.T) {
	c := container.New()
	shared := NewDatabase()

	// The directive targets the name, not the parameter's declared type.
	require.NoError(t, c.RegisterInstance(container.Named("primary"), shared))
	require.NoError(t, c.Register(container.TypeOf[*Repo](),
		container.FuncBlueprint(NewRepo).Inject(0, container.ByName("primary"))))

	repo, err := container.ResolveType[*Repo](c)
	require.NoError(t, err)
	assert.Same(t, shared, repo.db)
}

func TestGet_MixedDirectivesAndUnresolvedSlots(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.TypeOf[*Database](), container.FuncBlueprint(NewDatabase)))
	require.NoError(t, c.Register(container.TypeOf[*Repo](), container.FuncBlueprint(NewRepo).InjectAll()))

	// NewService(repo *Repo, name string): position 0 injected by type,
	// position 1 has no directive and stays at its zero value.
	require.NoError(t, c.Register(container.TypeOf[*Service](),
		container.FuncBlueprint(NewService).Inject(0, container.ByType())))

	svc, err := container.ResolveType[*Service](c)
	require.NoError(t, err)
	assert.NotNil(t, svc.repo)
	assert.Empty(t, svc.name)
}

func TestGet_UnknownKeyFails(t *testing.T) {
	c := container.New()

	_, err := c.Get(container.Named("ghost"))
	require.ErrorIs(t, err, container.ErrNotRegistered)
	assert.Contains(t, err.Error(), "ghost")
	assert.True(t, container.IsNotRegistered(err))
	assert.Empty(t, c.Keys())
}

func TestGet_MissingDependencyAbortsChain(t *testing.T) {
	c := container.New()

	// Repo needs *Database, which is never registered.
	require.NoError(t, c.Register(container.TypeOf[*Repo](), container.FuncBlueprint(NewRepo).InjectAll()))

	_, err := c.Get(container.TypeOf[*Repo]())
	require.ErrorIs(t, err, container.ErrNotRegistered)
	assert.Contains(t, err.Error(), "*container_test.Database")

	// No partially-constructed Repo was cached: registering the dependency
	// afterwards yields a fully-wired instance.
	require.NoError(t, c.Register(container.TypeOf[*Database](), container.FuncBlueprint(NewDatabase)))
	repo, err := container.ResolveType[*Repo](c)
	require.NoError(t, err)
	assert.NotNil(t, repo.db)
}

func TestGet_CyclicGraphFails(t *testing.T) {
	c := container.New()

	aKey := container.Named("a")
	bKey := container.Named("b")

	bpFor := func(dep container.Key) *container.Blueprint {
		return container.NewBlueprint(func(args []any) any { return args[0] }).
			Inject(0, container.ByName(dep.String()))
	}
	require.NoError(t, c.Register(aKey, bpFor(bKey)))
	require.NoError(t, c.Register(bKey, bpFor(aKey)))

	_, err := c.Get(aKey)
	require.ErrorIs(t, err, container.ErrCyclicDependency)
	assert.True(t, container.IsCyclic(err))
}

func TestGet_SelfCycleFails(t *testing.T) {
	c := container.New()
	key := container.Named("ouroboros")

	bp := container.NewBlueprint(func(args []any) any { return args[0] }).
		Inject(0, container.ByName("ouroboros"))
	require.NoError(t, c.Register(key, bp))

	_, err := c.Get(key)
	require.ErrorIs(t, err, container.ErrCyclicDependency)
}

// ── Registration validation ──────────────────────────────────────────────────

func TestRegister_NamedKeyRequiresBlueprint(t *testing.T) {
	c := container.New()

	err := c.Register(container.Named("db"), nil)
	require.ErrorIs(t, err, container.ErrMissingType)
	assert.Contains(t, err.Error(), "db")
	assert.False(t, c.Has(container.Named("db")))
}

func TestRegister_TypeKeyDefaultsToItself(t *testing.T) {
	c := container.New()
	key := container.TypeOf[*Database]()

	require.NoError(t, c.Register(key, nil))

	db, err := container.ResolveType[*Database](c)
	require.NoError(t, err)
	assert.NotNil(t, db)
}

func TestRegister_NonStructTypeKeyRequiresBlueprint(t *testing.T) {
	c := container.New()

	err := c.Register(container.TypeOf[int](), nil)
	require.ErrorIs(t, err, container.ErrMissingType)
}

// ── Introspection ────────────────────────────────────────────────────────────

func TestKeys_UnionWithoutDuplicates(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.Named("x"), container.FuncBlueprint(NewDatabase)))
	require.NoError(t, c.RegisterInstance(container.Named("y"), "instance"))

	keys := c.Keys()
	require.Len(t, keys, 2)

	names := map[string]bool{}
	for _, k := range keys {
		names[k.String()] = true
	}
	assert.True(t, names["x"])
	assert.True(t, names["y"])
}

func TestKeys_SingletonResolutionDoesNotDuplicate(t *testing.T) {
	c := container.New()
	key := container.Named("db")

	require.NoError(t, c.Register(key, container.FuncBlueprint(NewDatabase)))
	_, err := c.Get(key) // populates the instance cache
	require.NoError(t, err)

	assert.Len(t, c.Keys(), 1)
	assert.Equal(t, 1, c.Size())
}

func TestClearAll_EmptiesEverything(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.Named("x"), container.FuncBlueprint(NewDatabase)))
	require.NoError(t, c.RegisterInstance(container.Named("y"), "instance"))

	c.ClearAll()

	assert.False(t, c.Has(container.Named("x")))
	assert.False(t, c.Has(container.Named("y")))
	assert.Empty(t, c.Keys())
}

// ── Generic helpers ──────────────────────────────────────────────────────────

func TestResolve_TypeMismatch(t *testing.T) {
	c := container.New()
	require.NoError(t, c.RegisterInstance(container.Named("db"), "not a database"))

	_, err := container.Resolve[*Database](c, container.Named("db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestMustResolve_PanicsOnMissing(t *testing.T) {
	c := container.New()
	assert.Panics(t, func() {
		container.MustResolve[*Database](c, container.Named("ghost"))
	})
}

// ── End to end ───────────────────────────────────────────────────────────────

func TestEndToEnd_SharedSingletonGraph(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.TypeOf[*Database](), container.FuncBlueprint(NewDatabase)))
	require.NoError(t, c.Register(container.TypeOf[*Repo](), container.FuncBlueprint(NewRepo).InjectAll()))

	repo, err := container.ResolveType[*Repo](c)
	require.NoError(t, err)

	// A later direct Get sees the same Database the Repo was built with.
	db, err := container.ResolveType[*Database](c)
	require.NoError(t, err)
	assert.Same(t, db, repo.db)
}
