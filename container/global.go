package container

import "sync"

// The process-wide default container. It is ordinary shared state with an
// explicit lifecycle: created on first use, never torn down automatically.
// Tests that need isolation should build their own container with New, or
// swap the default with SetDefault and restore it afterwards.
var (
	defaultMu sync.Mutex
	defaultC  *Container
)

// Default returns the process-wide container, creating it on first call.
func Default() *Container {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultC == nil {
		defaultC = New()
	}
	return defaultC
}

// SetDefault replaces the process-wide container and returns the previous
// one (nil if Default was never called).
func SetDefault(c *Container) *Container {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultC
	defaultC = c
	return prev
}
