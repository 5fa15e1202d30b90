package render

import (
	"fmt"

	"github.com/goliatone/go-htmlform/pkg/markup"
	"github.com/goliatone/go-htmlform/pkg/widgets"
)

// Widget returns the widget Control would use for the field at p.
func (r *Renderer) Widget(p Path) (string, error) {
	field, err := r.Field(p)
	if err != nil {
		return "", err
	}
	widget, _ := r.widgets.Resolve(field)
	if widget == "" {
		widget = widgets.WidgetText
	}
	return widget, nil
}

// Control renders the field at p with the widget chosen by the registry.
// Checkbox and radio groups come back as a fragment of their controls.
func (r *Renderer) Control(p Path) (*markup.Node, error) {
	widget, err := r.Widget(p)
	if err != nil {
		return nil, err
	}

	switch widget {
	case widgets.WidgetCheckbox:
		return r.InputBoolean(p, "")
	case widgets.WidgetCheckboxes, widgets.WidgetRadios:
		kind := "checkbox"
		if widget == widgets.WidgetRadios {
			kind = "radio"
		}
		choices, err := r.InputCheckables(p, kind)
		if err != nil {
			return nil, err
		}
		return markup.New().Append(choices.Nodes()), nil
	case widgets.WidgetSelect:
		return r.Select(p)
	case widgets.WidgetTextarea:
		return r.Textarea(p)
	case widgets.WidgetText, widgets.WidgetEmail, widgets.WidgetURL, widgets.WidgetTel,
		widgets.WidgetPassword, widgets.WidgetNumber, widgets.WidgetDate,
		widgets.WidgetFile, widgets.WidgetHidden, "search", "time", "datetime-local":
		return r.Input(p, widget)
	default:
		return nil, fmt.Errorf("render: unsupported widget %q for %q", widget, p.String())
	}
}
