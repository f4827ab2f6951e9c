package app

import (
	"go.uber.org/zap"

	"github.com/spindle-di/spindle/config"
	"github.com/spindle-di/spindle/container"
	"github.com/spindle-di/spindle/httpctx"
	"github.com/spindle-di/spindle/routing"
)

// ── ConfigProvider ───────────────────────────────────────────────────────────

// ConfigProvider binds the loaded configuration into the container.
//
// Bound keys:
//   - "config" → *config.Config
type ConfigProvider struct {
	container.BaseProvider
	Cfg *config.Config
}

func (p *ConfigProvider) Register(c *container.Container) error {
	return c.RegisterInstance(container.Named("config"), p.Cfg)
}

// ── LoggerProvider ───────────────────────────────────────────────────────────

// LoggerProvider binds the application logger into the container.
//
// Bound keys:
//   - "logger" → *zap.Logger
type LoggerProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggerProvider) Register(c *container.Container) error {
	return c.RegisterInstance(container.Named("logger"), p.Logger)
}

// ── RouterProvider ───────────────────────────────────────────────────────────

// RouterProvider binds the HTTP router, with the container middleware
// installed so container-resolved routes work out of the box.
//
// Bound keys:
//   - "router" → *routing.Router
type RouterProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *RouterProvider) Register(c *container.Container) error {
	r := routing.New()
	// Middleware must be installed before any route is registered.
	r.Middleware(httpctx.Middleware(c, p.Logger))
	return c.RegisterInstance(container.Named("router"), r)
}
