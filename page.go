package htmlform

import (
	"io"
	"sync"

	"github.com/goliatone/go-htmlform/pkg/render"
	"github.com/goliatone/go-htmlform/pkg/render/template"
	"github.com/goliatone/go-htmlform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-htmlform/pkg/widgets"
)

// Names of the built-in templates.
const (
	TemplatePage = "page"
	TemplateForm = "form"
)

// PageOptions feeds the built-in templates.
type PageOptions struct {
	Title      string
	Lang       string
	Action     string
	Method     string
	Submit     string
	Stylesheet string
	// Data adds or overrides template context entries.
	Data map[string]any
}

var (
	defaultEngine     *gotemplate.Engine
	defaultEngineErr  error
	defaultEngineOnce sync.Once
)

// NewEngine returns a template engine preloaded with the built-in templates.
// Templates from a WithBaseDir option take precedence over the built-ins.
func NewEngine(opts ...gotemplate.Option) (*gotemplate.Engine, error) {
	return gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(TemplatesFS())}, opts...)...)
}

// RenderPage renders a complete HTML document holding the form.
func RenderPage(r *render.Renderer, opts PageOptions, out ...io.Writer) (string, error) {
	return renderBuiltin(TemplatePage, r, opts, out)
}

// RenderForm renders only the form element with a control, label and error
// container per field.
func RenderForm(r *render.Renderer, opts PageOptions, out ...io.Writer) (string, error) {
	return renderBuiltin(TemplateForm, r, opts, out)
}

func renderBuiltin(name string, r *render.Renderer, opts PageOptions, out []io.Writer) (string, error) {
	defaultEngineOnce.Do(func() {
		defaultEngine, defaultEngineErr = NewEngine()
	})
	if defaultEngineErr != nil {
		return "", defaultEngineErr
	}
	return RenderTemplate(defaultEngine, name, r, opts, out...)
}

// RenderTemplate renders a named template of engine with the same context
// the built-in templates receive.
func RenderTemplate(engine template.TemplateRenderer, name string, r *render.Renderer, opts PageOptions, out ...io.Writer) (string, error) {
	return gotemplate.RenderForm(engine, name, r, pageData(r, opts), out...)
}

type formErrorer interface {
	FormErrors() []string
}

func pageData(r *render.Renderer, opts PageOptions) map[string]any {
	data := map[string]any{
		"title":      opts.Title,
		"lang":       opts.Lang,
		"action":     opts.Action,
		"method":     opts.Method,
		"submit":     opts.Submit,
		"stylesheet": opts.Stylesheet,
		"multipart":  hasFileField(r),
	}
	if r != nil {
		if fe, ok := r.Form().(formErrorer); ok {
			data["form_errors"] = fe.FormErrors()
		}
	}
	for key, value := range opts.Data {
		data[key] = value
	}
	return data
}

func hasFileField(r *render.Renderer) bool {
	if r == nil {
		return false
	}
	fields, err := gotemplate.Fields(r)
	if err != nil {
		return false
	}
	for _, field := range fields {
		if field.Widget == widgets.WidgetFile {
			return true
		}
	}
	return false
}
