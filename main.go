package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/spindle-di/spindle/app"
	"github.com/spindle-di/spindle/container"
	"github.com/spindle-di/spindle/httpctx"
	"github.com/spindle-di/spindle/routing"
)

// ── Demo services ────────────────────────────────────────────────────────────

// Store is an in-memory key/value store shared by the whole app.
type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewStore() *Store {
	return &Store{items: map[string]string{
		"welcome": "hello from spindle",
	}}
}

func (s *Store) Get(k string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[k]
	return v, ok
}

func (s *Store) Put(k, v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[k] = v
}

func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out
}

// Repo wraps the store; constructed by the container with the store
// injected by declared type.
type Repo struct {
	store *Store
}

func NewRepo(store *Store) *Repo { return &Repo{store: store} }

func (r *Repo) List() map[string]string       { return r.store.All() }
func (r *Repo) Find(k string) (string, bool)  { return r.store.Get(k) }
func (r *Repo) Save(k, v string)              { r.store.Put(k, v) }

// ItemHandler serves the /items routes; depends on *Repo.
type ItemHandler struct {
	repo *Repo
}

func NewItemHandler(repo *Repo) *ItemHandler { return &ItemHandler{repo: repo} }

func (h *ItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if key := routing.Param(r, "key"); key != "" {
		v, ok := h.repo.Find(key)
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]string{key: v})
		return
	}
	writeJSON(w, h.repo.List())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// ── Provider ─────────────────────────────────────────────────────────────────

// AppProvider registers the demo object graph.
type AppProvider struct {
	container.BaseProvider
}

func (p *AppProvider) Register(c *container.Container) error {
	if err := c.Register(container.TypeOf[*Store](), container.FuncBlueprint(NewStore)); err != nil {
		return err
	}
	if err := c.Register(container.TypeOf[*Repo](), container.FuncBlueprint(NewRepo).InjectAll()); err != nil {
		return err
	}
	return c.Register(container.Named("items.handler"),
		container.FuncBlueprint(NewItemHandler).InjectAll())
}

// ── main ─────────────────────────────────────────────────────────────────────

func main() {
	application := app.New()

	if err := application.RegisterProvider(&AppProvider{}); err != nil {
		application.Logger().Fatal("failed to register provider", zap.Error(err))
	}

	r := application.Router()

	r.Handle("GET", "/items", container.Named("items.handler"))
	r.Handle("GET", "/items/{key}", container.Named("items.handler"))

	r.Post("/items/{key}", func(w http.ResponseWriter, req *http.Request) {
		repo, err := httpctx.Resolve[*Repo](req.Context(), container.TypeOf[*Repo]())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		key := routing.Param(req, "key")
		repo.Save(key, req.URL.Query().Get("value"))
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"status": "ok", "keys": len(application.Keys())})
	})

	if err := application.Run(); err != nil {
		application.Logger().Fatal("server error", zap.Error(err))
	}
}
