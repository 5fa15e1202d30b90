package skins

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-htmlform/pkg/render"
)

// Registry stores skins by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu    sync.RWMutex
	skins map[string]render.Skin
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		skins: make(map[string]render.Skin),
	}
}

// Default returns a registry holding the built-in Bootstrap skins.
func Default() *Registry {
	reg := NewRegistry()
	reg.MustRegister(render.Bootstrap4)
	reg.MustRegister(render.Bootstrap5)
	return reg
}

// Register adds a skin by its Name. Duplicate names return an error.
func (r *Registry) Register(skin render.Skin) error {
	name := strings.TrimSpace(skin.Name)
	if name == "" {
		return fmt.Errorf("skins: skin name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.skins[name]; exists {
		return fmt.Errorf("skins: skin %q already registered", name)
	}

	r.skins[name] = skin
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(skin render.Skin) {
	if err := r.Register(skin); err != nil {
		panic(err)
	}
}

// Get retrieves a skin by name.
func (r *Registry) Get(name string) (render.Skin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skin, ok := r.skins[name]
	if !ok {
		return render.Skin{}, fmt.Errorf("skins: skin %q not found", name)
	}
	return skin, nil
}

// MustGet panics if the skin is missing.
func (r *Registry) MustGet(name string) render.Skin {
	skin, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return skin
}

// List returns a sorted list of skin names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.skins))
	for name := range r.skins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a skin is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.skins[name]
	return ok
}
