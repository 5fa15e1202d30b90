package gotemplate

import (
	"errors"
	"io"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/markup"
	"github.com/goliatone/go-htmlform/pkg/render"
	"github.com/goliatone/go-htmlform/pkg/render/template"
)

// Context keys set by RenderForm.
const (
	FormKey   = "form"
	FieldsKey = "fields"
)

// FieldView describes one field for templates that lay out a whole form.
type FieldView struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Label    string `json:"label"`
	Widget   string `json:"widget"`
	Required bool   `json:"required"`
}

type nodeFunc func(render.Path) (*markup.Node, error)

// FormFuncs exposes the renderer to templates. Every function takes field
// paths as slash separated strings ("address/city") and returns safe HTML,
// so templates must not pipe the result through the escape filter.
//
//	{{ input_text("name") }}
//	{{ error("name") }}
//	{{ number("price", 2) }}
func FormFuncs(r *render.Renderer) map[string]any {
	funcs := map[string]any{
		"make_name": func(path string) string {
			return r.MakeName(render.P(path))
		},
		"widget": func(path string) (string, error) {
			return r.Widget(render.P(path))
		},
		"message": func(path string) (string, error) {
			return r.Message(render.P(path))
		},
		"input": func(path, inputType string) (*pongo2.Value, error) {
			return safe(r.Input(render.P(path), inputType))
		},
		"input_boolean": func(path string, value ...string) (*pongo2.Value, error) {
			return safe(r.InputBoolean(render.P(path), first(value)))
		},
		"input_checkbox": func(path, value string) (*pongo2.Value, error) {
			return safe(r.InputCheckbox(render.P(path), value))
		},
		"input_radio": func(path, value string) (*pongo2.Value, error) {
			return safe(r.InputRadio(render.P(path), value))
		},
		"input_checkboxes": func(path string) (*pongo2.Value, error) {
			return safeChoices(r.InputCheckboxes(render.P(path)))
		},
		"input_radios": func(path string) (*pongo2.Value, error) {
			return safeChoices(r.InputRadios(render.P(path)))
		},
		"options": func(path string) (*pongo2.Value, error) {
			return safeList(r.Options(render.P(path)))
		},
		"error": func(paths ...string) (*pongo2.Value, error) {
			converted := make([]render.Path, 0, len(paths))
			for _, path := range paths {
				converted = append(converted, render.P(path))
			}
			return safe(r.Error(converted...))
		},
		"format": func(path, format string) (*pongo2.Value, error) {
			return safe(r.Format(render.P(path), format))
		},
		"date": func(path, format string) (*pongo2.Value, error) {
			return safe(r.Date(render.P(path), format))
		},
		"date_layout": func(path, layout string) (*pongo2.Value, error) {
			return safe(r.DateLayout(render.P(path), layout))
		},
		"number": func(path string, args ...*pongo2.Value) (*pongo2.Value, error) {
			decimals, decPoint, thousands := 0, ".", ","
			if len(args) > 0 {
				decimals = cast.ToInt(args[0].Interface())
			}
			if len(args) > 1 {
				decPoint = args[1].String()
			}
			if len(args) > 2 {
				thousands = args[2].String()
			}
			return safe(r.Number(render.P(path), decimals, decPoint, thousands))
		},
		"selected": func(path string, separator ...string) (*pongo2.Value, error) {
			nodes, err := r.Selected(render.P(path))
			if err != nil {
				return nil, err
			}
			sep := ", "
			if len(separator) > 0 {
				sep = separator[0]
			}
			parts := make([]string, 0, len(nodes))
			for _, node := range nodes {
				parts = append(parts, node.String())
			}
			return pongo2.AsSafeValue(strings.Join(parts, sep)), nil
		},
	}

	single := map[string]nodeFunc{
		"value":                r.Value,
		"control":              r.Control,
		"select":               r.Select,
		"textarea":             r.Textarea,
		"input_text":           r.InputText,
		"input_number":         r.InputNumber,
		"input_email":          r.InputEmail,
		"input_tel":            r.InputTel,
		"input_date":           r.InputDate,
		"input_hidden":         r.InputHidden,
		"input_password":       r.InputPassword,
		"input_file":           r.InputFile,
		"input_url":            r.InputURL,
		"input_search":         r.InputSearch,
		"input_time":           r.InputTime,
		"input_datetime_local": r.InputDatetimeLocal,
	}
	for name, fn := range single {
		fn := fn
		funcs[name] = func(path string) (*pongo2.Value, error) {
			return safe(fn(render.P(path)))
		}
	}
	return funcs
}

// RenderForm renders a named template with FormFuncs bound to r. The form's
// values are available under FormKey and its field list under FieldsKey;
// entries in data take precedence over both.
func RenderForm(engine template.TemplateRenderer, name string, r *render.Renderer, data map[string]any, out ...io.Writer) (string, error) {
	if engine == nil {
		return "", errors.New("gotemplate: engine is required")
	}
	if r == nil {
		return "", errors.New("gotemplate: renderer is required")
	}

	ctx := make(map[string]any, len(data)+24)
	for key, fn := range FormFuncs(r) {
		ctx[key] = fn
	}
	if values, ok := formValues(r); ok {
		ctx[FormKey] = values
	}
	fields, err := Fields(r)
	if err != nil {
		return "", err
	}
	ctx[FieldsKey] = fields
	for key, value := range data {
		ctx[key] = value
	}
	return engine.Render(name, ctx, out...)
}

// Fields lists the form's fields in order with their widget and a label.
// Fields without a label get one derived from the last path segment.
func Fields(r *render.Renderer) ([]FieldView, error) {
	var (
		out      []FieldView
		firstErr error
	)
	title := cases.Title(language.Und)
	form.Walk(r.Form(), func(path []string, field form.Field) {
		if firstErr != nil {
			return
		}
		p := render.Path(path)
		widget, err := r.Widget(p)
		if err != nil {
			firstErr = err
			return
		}
		label := ""
		if l, ok := field.(form.HasLabel); ok {
			label = strings.TrimSpace(l.Label())
		}
		if label == "" {
			last := strings.NewReplacer("_", " ", "-", " ").Replace(path[len(path)-1])
			label = title.String(last)
		}
		out = append(out, FieldView{
			Path:     p.String(),
			Name:     r.MakeName(p),
			Label:    label,
			Widget:   widget,
			Required: field.Required(),
		})
	})
	return out, firstErr
}

type valuer interface {
	Values() map[string]any
}

func formValues(r *render.Renderer) (map[string]any, bool) {
	if v, ok := r.Form().(valuer); ok {
		return v.Values(), true
	}
	return nil, false
}

func safe(node *markup.Node, err error) (*pongo2.Value, error) {
	if err != nil {
		return nil, err
	}
	return pongo2.AsSafeValue(node.String()), nil
}

func safeList(nodes []*markup.Node, err error) (*pongo2.Value, error) {
	if err != nil {
		return nil, err
	}
	return pongo2.AsSafeValue(markup.Join(nodes)), nil
}

func safeChoices(choices render.Choices, err error) (*pongo2.Value, error) {
	if err != nil {
		return nil, err
	}
	return pongo2.AsSafeValue(markup.Join(choices.Nodes())), nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
