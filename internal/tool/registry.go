package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound reports a call to an unregistered tool
var ErrNotFound = errors.New("tool not found")

// Func is a remotely callable tool. Positional args and keyword args
// mirror the wire contract of the tool-call endpoint.
type Func func(ctx context.Context, args []any, kwargs map[string]any) (any, error)

// Info describes a registered tool
type Info struct {
	Description string `json:"description"`
}

// Registry holds the callable tools for one serving process. It is an
// owned instance passed to the server, not ambient global state.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registration
}

type registration struct {
	fn   Func
	info Info
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]registration)}
}

// Register adds a tool under a name, replacing any previous registration
func (r *Registry) Register(name, description string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = registration{fn: fn, info: Info{Description: description}}
}

// List returns the registered tools keyed by name
func (r *Registry) List() map[string]Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Info, len(r.tools))
	for name, reg := range r.tools {
		out[name] = reg.info
	}
	return out
}

// Names returns the registered tool names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call dispatches to a registered tool. Any fault inside the tool,
// including a panic, is converted to an error carrying the message;
// a call never crashes the serving process.
func (r *Registry) Call(ctx context.Context, name string, args []any, kwargs map[string]any) (result any, err error) {
	r.mu.RLock()
	reg, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("tool %q: %w", name, ErrNotFound)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("tool %q panicked: %v", name, rec)
		}
	}()

	return reg.fn(ctx, args, kwargs)
}
