package skins

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-htmlform/pkg/render"
)

// Themes holds theme manifests and resolves theme/variant selections. It
// satisfies theme.ThemeSelector so it can stand in wherever a go-theme
// selector is expected.
type Themes struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes returns a selector preloaded with the Bootstrap manifest and
// defaulting to Bootstrap 5.
func NewThemes() *Themes {
	t := &Themes{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   "bootstrap",
		defaultVariant: "5",
	}
	t.manifests["bootstrap"] = BootstrapManifest()
	return t
}

// SetDefault changes the theme and variant used for empty selections.
func (t *Themes) SetDefault(name, variant string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.defaultTheme = strings.TrimSpace(name)
	t.defaultVariant = strings.TrimSpace(variant)
}

// Register adds a manifest. Registering an existing name replaces it.
func (t *Themes) Register(m *theme.Manifest) error {
	if m == nil {
		return fmt.Errorf("skins: manifest is required")
	}
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return fmt.Errorf("skins: manifest name is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.manifests[name] = m
	return nil
}

// Names returns the registered theme names, sorted.
func (t *Themes) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.manifests))
	for name := range t.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves a theme and variant. Empty arguments fall back to the
// defaults; the default variant is only applied to the default theme.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = t.defaultTheme
		if variant == "" {
			variant = t.defaultVariant
		}
	}
	m, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("skins: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("skins: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// Select resolves a skin through any go-theme selector.
func Select(selector theme.ThemeSelector, name, variant string) (render.Skin, *theme.Selection, error) {
	if selector == nil {
		return render.Skin{}, nil, fmt.Errorf("skins: selector is required")
	}
	sel, err := selector.Select(name, variant)
	if err != nil {
		return render.Skin{}, nil, fmt.Errorf("skins: select %q/%q: %w", name, variant, err)
	}
	skin, err := FromSelection(sel)
	if err != nil {
		return render.Skin{}, nil, err
	}
	return skin, sel, nil
}
