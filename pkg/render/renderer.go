package render

import (
	"time"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/markup"
	"github.com/goliatone/go-htmlform/pkg/widgets"
)

// Renderer builds markup for the fields of a form. It never mutates the form;
// every method reads the current field state at call time.
type Renderer struct {
	form         form.Container
	formatter    form.MessageFormatter
	decorator    Decorator
	widgets      *widgets.Registry
	location     *time.Location
	htmlMessages bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSkin decorates controls and error containers with the skin's classes.
func WithSkin(skin Skin) Option {
	return func(r *Renderer) {
		r.decorator = skin
	}
}

// WithDecorator installs a custom decorator. A nil decorator is ignored.
func WithDecorator(d Decorator) Option {
	return func(r *Renderer) {
		if d != nil {
			r.decorator = d
		}
	}
}

// WithWidgets replaces the registry used by Control.
func WithWidgets(reg *widgets.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.widgets = reg
		}
	}
}

// WithLocation sets the time zone used to interpret date values without an
// explicit offset. The default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithHTMLMessages treats formatted error messages as markup. Messages are
// sanitised before they are embedded.
func WithHTMLMessages(enabled bool) Option {
	return func(r *Renderer) {
		r.htmlMessages = enabled
	}
}

// New builds a renderer for f. A nil formatter falls back to form.NewMessages().
func New(f form.Container, formatter form.MessageFormatter, opts ...Option) *Renderer {
	if formatter == nil {
		formatter = form.NewMessages()
	}
	r := &Renderer{
		form:      f,
		formatter: formatter,
		decorator: noDecorator{},
		location:  time.UTC,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.widgets == nil {
		r.widgets = widgets.NewRegistry()
	}
	return r
}

// Form returns the rendered container.
func (r *Renderer) Form() form.Container {
	return r.form
}

// Formatter returns the message formatter.
func (r *Renderer) Formatter() form.MessageFormatter {
	return r.formatter
}

// Field resolves p against the form.
func (r *Renderer) Field(p Path) (form.Field, error) {
	return Resolve(r.form, p)
}

// MakeName returns the HTML name for p.
func (r *Renderer) MakeName(p Path) string {
	return MakeName(p)
}

// Message returns the formatted error message of the field at p, or "".
func (r *Renderer) Message(p Path) (string, error) {
	field, err := r.Field(p)
	if err != nil {
		return "", err
	}
	return r.formatter.Format(field.Err()), nil
}

func (r *Renderer) decorate(node *markup.Node, field form.Field) *markup.Node {
	r.decorator.DecorateControl(node, field)
	return node
}
