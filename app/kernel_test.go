package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindle-di/spindle/app"
	"github.com/spindle-di/spindle/config"
	"github.com/spindle-di/spindle/container"
)

func newTestApp(t *testing.T) *app.Application {
	t.Helper()
	t.Setenv("APP_ENV", "testing")
	t.Setenv("APP_DEBUG", "false")
	return app.New("testdata/empty.env")
}

func TestNew_CoreBindings(t *testing.T) {
	a := newTestApp(t)

	assert.True(t, a.Has(container.Named("config")))
	assert.True(t, a.Has(container.Named("logger")))
	assert.True(t, a.Has(container.Named("router")))
}

func TestNew_ConfigResolvesToLoadedConfig(t *testing.T) {
	a := newTestApp(t)

	cfg, err := container.Resolve[*config.Config](a.Container, container.Named("config"))
	require.NoError(t, err)
	assert.Same(t, a.Config(), cfg)
}

func TestEnvironmentPredicates(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, "testing", a.Environment())
	assert.True(t, a.IsTesting())
	assert.False(t, a.IsLocal())
	assert.False(t, a.IsProduction())
	assert.False(t, a.IsDebug())
}

type demoProvider struct {
	container.BaseProvider
	booted bool
}

func (p *demoProvider) Register(c *container.Container) error {
	return c.RegisterInstance(container.Named("demo"), "demo-value")
}

func (p *demoProvider) Boot(*container.Container) error {
	p.booted = true
	return nil
}

func TestRegisterProviderAndBoot(t *testing.T) {
	a := newTestApp(t)

	p := &demoProvider{}
	require.NoError(t, a.RegisterProvider(p))
	assert.True(t, a.Has(container.Named("demo")))
	assert.False(t, p.booted)

	require.NoError(t, a.Boot())
	assert.True(t, p.booted)
}

func TestRouter_ServesContainerResolvedRoutes(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.RegisterInstance(container.Named("hello"),
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("hello"))
		})))

	r := a.Router()
	r.Handle(http.MethodGet, "/hello", container.Named("hello"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))
	assert.Equal(t, "hello", rec.Body.String())
}
