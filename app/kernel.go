// Package app wires the container, configuration, logging, and router into
// a runnable application kernel.
package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/spindle-di/spindle/config"
	"github.com/spindle-di/spindle/container"
	"github.com/spindle-di/spindle/routing"
)

// Application is the top-level kernel. It embeds the container so user code
// can call app.Register, app.Get, app.Has directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	cfg    *config.Config
	logger *zap.Logger
}

// New loads configuration, builds the logger, and bootstraps the container
// with the core providers (config, logger, router).
func New(envFiles ...string) *Application {
	cfg := config.Load(envFiles...)
	logger := buildLogger(cfg)

	var opts []container.Option
	if cfg.Container.Debug {
		opts = append(opts, container.WithLogger(logger))
	}
	c := container.New(opts...)
	registry := container.NewProviderRegistry(c)

	a := &Application{
		Container: c,
		Providers: registry,
		cfg:       cfg,
		logger:    logger,
	}

	for _, p := range []container.ServiceProvider{
		&ConfigProvider{Cfg: cfg},
		&LoggerProvider{Logger: logger},
		&RouterProvider{Logger: logger},
	} {
		if err := registry.Register(p); err != nil {
			// Core providers register into a fresh container; a failure here
			// is a programming error, not a runtime condition.
			panic(err)
		}
	}

	return a
}

// RegisterProvider adds a ServiceProvider to the application.
func (a *Application) RegisterProvider(p container.ServiceProvider) error {
	return a.Providers.Register(p)
}

// Boot runs the boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Router resolves the HTTP router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, container.Named("router"))
}

// Run boots the application (if needed) and starts the HTTP server on
// APP_PORT.
func (a *Application) Run() error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	addr := ":" + a.cfg.App.Port
	a.logger.Info("listening",
		zap.String("app", a.cfg.App.Name),
		zap.String("addr", addr),
		zap.String("env", a.cfg.App.Env),
	)
	return http.ListenAndServe(addr, a.Router())
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.cfg.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.cfg.App.Debug }

func buildLogger(cfg *config.Config) *zap.Logger {
	if cfg.App.Debug {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
