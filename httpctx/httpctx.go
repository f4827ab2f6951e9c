// Package httpctx binds a container to the HTTP request lifecycle. The
// middleware stores the container plus a per-request memo in the request
// context; handlers pull dependencies back out with From or the generic
// Resolve. Within one request, repeated lookups of the same key return the
// first result — the memo is the request-scoped analogue of a memoized
// hook, layered on top of the container without touching its own singleton
// cache.
package httpctx

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spindle-di/spindle/container"
)

type ctxKey struct{}

// scope is the per-request view of the container.
type scope struct {
	c    *container.Container
	mu   sync.Mutex
	memo map[container.Key]any
}

func (s *scope) get(key container.Key) (any, error) {
	s.mu.Lock()
	if v, ok := s.memo[key]; ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	// Resolve outside the memo lock: the graph walk may be deep.
	v, err := s.c.Get(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.memo[key] = v
	s.mu.Unlock()
	return v, nil
}

// Middleware attaches c to every request's context and tags each request
// with an id for log correlation.
func Middleware(c *container.Container, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			sc := &scope{c: c, memo: make(map[container.Key]any)}

			logger.Debug("request scope opened",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)

			w.Header().Set("X-Request-ID", requestID)
			ctx := context.WithValue(r.Context(), ctxKey{}, sc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// From returns the container attached by Middleware, or false when the
// request passed through no middleware.
func From(ctx context.Context) (*container.Container, bool) {
	sc, ok := ctx.Value(ctxKey{}).(*scope)
	if !ok {
		return nil, false
	}
	return sc.c, true
}

// Get resolves key through the request's memo: the first lookup hits the
// container, later lookups in the same request reuse the result.
func Get(ctx context.Context, key container.Key) (any, error) {
	sc, ok := ctx.Value(ctxKey{}).(*scope)
	if !ok {
		return nil, fmt.Errorf("httpctx: no container in context (is the middleware installed?)")
	}
	return sc.get(key)
}

// Resolve is the typed form of Get.
//
//	repo, err := httpctx.Resolve[*Repo](r.Context(), container.TypeOf[*Repo]())
func Resolve[T any](ctx context.Context, key container.Key) (T, error) {
	var zero T
	v, err := Get(ctx, key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("httpctx: [%s] resolved to %T", key, v)
	}
	return typed, nil
}
