package container

// ── ServiceProvider ──────────────────────────────────────────────────────────

// ServiceProvider groups related registrations. Register binds blueprints
// and instances into the container; Boot runs after every provider has
// registered, so it is the first point where resolving other bindings is
// safe.
type ServiceProvider interface {
	// Register binds services into the container. Do not resolve other
	// bindings here — use Boot for that.
	Register(c *Container) error

	// Boot is called once all providers are registered.
	Boot(c *Container) error
}

// BaseProvider is an embeddable struct with a no-op Boot. Embed it and
// override only Register:
//
//	type StorageProvider struct{ container.BaseProvider }
//
//	func (p *StorageProvider) Register(c *container.Container) error {
//	    return c.Register(container.TypeOf[*Store](), container.FuncBlueprint(NewStore))
//	}
type BaseProvider struct{}

func (BaseProvider) Boot(*Container) error { return nil }

// ── ProviderRegistry ─────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders.
// Providers register in the order given; Boot runs their Boot methods in
// the same order. A provider registered after Boot is booted immediately.
type ProviderRegistry struct {
	c         *Container
	providers []ServiceProvider
	booted    bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{c: c}
}

// Register adds a provider and runs its Register method. When the registry
// is already booted the provider's Boot runs immediately after.
func (r *ProviderRegistry) Register(p ServiceProvider) error {
	if err := p.Register(r.c); err != nil {
		return err
	}
	r.providers = append(r.providers, p)

	if r.booted {
		return p.Boot(r.c)
	}
	return nil
}

// Boot runs Boot on every registered provider, in registration order.
// Calling Boot twice is a no-op.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, p := range r.providers {
		if err := p.Boot(r.c); err != nil {
			return err
		}
	}
	return nil
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
