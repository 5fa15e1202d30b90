package htmlform

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/render"
	"github.com/goliatone/go-htmlform/pkg/skins"
)

// Form is the ordered field container forms are built from.
type Form = form.Form

// Renderer renders the fields of a form as HTML nodes.
type Renderer = render.Renderer

// Path addresses a field inside nested forms.
type Path = render.Path

// Skin holds the CSS classes a renderer adds to controls and errors.
type Skin = render.Skin

// P builds a Path from segments, splitting each on "/".
func P(parts ...string) Path {
	return render.P(parts...)
}

// New returns an unskinned renderer for f using the default English messages.
func New(f form.Container, opts ...render.Option) *render.Renderer {
	return render.New(f, nil, opts...)
}

// NewWithSkin returns a renderer for f decorated with a built-in skin
// ("bootstrap4" or "bootstrap5").
func NewWithSkin(f form.Container, skinName string, opts ...render.Option) (*render.Renderer, error) {
	skin, err := skins.Default().Get(skinName)
	if err != nil {
		return nil, fmt.Errorf("htmlform: %w", err)
	}
	return render.New(f, nil, append([]render.Option{render.WithSkin(skin)}, opts...)...), nil
}

// ResolveTheme selects a skin through a go-theme selector and returns it
// with the stylesheet URL declared by the theme, if any. A nil selector uses
// the built-in Bootstrap themes.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (render.Skin, string, error) {
	if selector == nil {
		selector = skins.NewThemes()
	}
	skin, sel, err := skins.Select(selector, name, variant)
	if err != nil {
		return render.Skin{}, "", err
	}
	return skin, skins.StylesheetURL(sel), nil
}
