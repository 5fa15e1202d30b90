package render

import (
	"math"

	"github.com/spf13/cast"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/markup"
)

// Input renders <input type=... name=... value=...> followed by the common
// attributes. List values are not written to the value attribute.
func (r *Renderer) Input(p Path, inputType string) (*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	node := markup.Tag("input").
		SetAttr("type", inputType).
		SetAttr("name", MakeName(p))
	if value := field.Value(); !form.IsMulti(value) {
		node.SetAttr("value", valueAttr(value))
	}
	applyCommonAttrs(node, field)
	return r.decorate(node, field), nil
}

func (r *Renderer) InputText(p Path) (*markup.Node, error)     { return r.Input(p, "text") }
func (r *Renderer) InputNumber(p Path) (*markup.Node, error)   { return r.Input(p, "number") }
func (r *Renderer) InputEmail(p Path) (*markup.Node, error)    { return r.Input(p, "email") }
func (r *Renderer) InputTel(p Path) (*markup.Node, error)      { return r.Input(p, "tel") }
func (r *Renderer) InputDate(p Path) (*markup.Node, error)     { return r.Input(p, "date") }
func (r *Renderer) InputHidden(p Path) (*markup.Node, error)   { return r.Input(p, "hidden") }
func (r *Renderer) InputPassword(p Path) (*markup.Node, error) { return r.Input(p, "password") }
func (r *Renderer) InputFile(p Path) (*markup.Node, error)     { return r.Input(p, "file") }
func (r *Renderer) InputURL(p Path) (*markup.Node, error)      { return r.Input(p, "url") }
func (r *Renderer) InputSearch(p Path) (*markup.Node, error)   { return r.Input(p, "search") }
func (r *Renderer) InputTime(p Path) (*markup.Node, error)     { return r.Input(p, "time") }

func (r *Renderer) InputDatetimeLocal(p Path) (*markup.Node, error) {
	return r.Input(p, "datetime-local")
}

// Textarea renders <textarea> with the value as escaped content.
func (r *Renderer) Textarea(p Path) (*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	node := markup.Tag("textarea").SetAttr("name", MakeName(p))
	applyCommonAttrs(node, field)
	node.Append(valueAttr(field.Value()))
	return r.decorate(node, field), nil
}

// InputBoolean renders a single checkbox for an on/off field. The submitted
// value defaults to "1"; the box is checked when the field value is truthy.
func (r *Renderer) InputBoolean(p Path, value string) (*markup.Node, error) {
	node, err := r.Input(p, "checkbox")
	if err != nil {
		return nil, err
	}
	field, _ := r.Field(p)
	if value == "" {
		value = "1"
	}
	node.SetAttr("value", value)
	node.SetAttr("checked", form.Truthy(field.Value()))
	return node, nil
}

// InputCheckable renders one checkbox or radio carrying value. The name gets
// a "[]" suffix when the field holds a list, and the control is checked when
// value is among the field's current values.
func (r *Renderer) InputCheckable(p Path, inputType, value string) (*markup.Node, error) {
	node, err := r.Input(p, inputType)
	if err != nil {
		return nil, err
	}
	field, _ := r.Field(p)
	current := field.Value()
	if form.IsMulti(current) {
		node.SetAttr("name", MakeName(p)+"[]")
	}
	node.SetAttr("value", value)
	node.SetAttr("checked", contains(current, value))
	return node, nil
}

func (r *Renderer) InputCheckbox(p Path, value string) (*markup.Node, error) {
	return r.InputCheckable(p, "checkbox", value)
}

func (r *Renderer) InputRadio(p Path, value string) (*markup.Node, error) {
	return r.InputCheckable(p, "radio", value)
}

// Choice is one rendered option of a checkbox or radio group.
type Choice struct {
	Value string
	Label string
	Node  *markup.Node
}

// Choices preserves option order and allows lookup by option value.
type Choices []Choice

// Get returns the control rendered for value.
func (c Choices) Get(value string) (*markup.Node, bool) {
	for _, choice := range c {
		if choice.Value == value {
			return choice.Node, true
		}
	}
	return nil, false
}

// Nodes returns the controls in option order.
func (c Choices) Nodes() []*markup.Node {
	out := make([]*markup.Node, 0, len(c))
	for _, choice := range c {
		out = append(out, choice.Node)
	}
	return out
}

// InputCheckables renders one checkable control per option with the option
// label as title. Checkbox groups drop required since no single box is
// mandatory on its own.
func (r *Renderer) InputCheckables(p Path, inputType string) (Choices, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	options := optionsOf(field)
	out := make(Choices, 0, len(options))
	for _, option := range options {
		node, err := r.InputCheckable(p, inputType, option.Value)
		if err != nil {
			return nil, err
		}
		node.SetAttr("title", option.Label)
		if inputType == "checkbox" {
			node.RemoveAttr("required")
		}
		out = append(out, Choice{Value: option.Value, Label: option.Label, Node: node})
	}
	return out, nil
}

func (r *Renderer) InputCheckboxes(p Path) (Choices, error) {
	return r.InputCheckables(p, "checkbox")
}

func (r *Renderer) InputRadios(p Path) (Choices, error) {
	return r.InputCheckables(p, "radio")
}

func applyCommonAttrs(node *markup.Node, field form.Field) {
	node.SetAttr("required", field.Required())
	node.SetAttr("readonly", field.ReadOnly())
	node.SetAttr("disabled", field.Disabled())

	if ranged, ok := field.(form.HasLengthRange); ok {
		if max := ranged.MaxLength(); max < math.MaxInt {
			node.SetAttr("maxlength", max)
		}
		if min := ranged.MinLength(); min > 0 {
			node.SetAttr("minlength", min)
		}
	}

	if ranged, ok := field.(form.HasNumericRange); ok {
		if max := ranged.Max(); !math.IsInf(max, 1) {
			node.SetAttr("max", max)
		}
		if min := ranged.Min(); !math.IsInf(min, -1) {
			node.SetAttr("min", min)
		}
	}
}

func optionsOf(field form.Field) []form.Option {
	if options, ok := field.(form.HasOptions); ok {
		return options.Options()
	}
	return nil
}

func valueAttr(value any) string {
	if value == nil {
		return ""
	}
	if b, ok := value.(bool); ok {
		if b {
			return "1"
		}
		return ""
	}
	return cast.ToString(value)
}

// contains compares string forms so "1" matches 1.
func contains(current any, value string) bool {
	for _, candidate := range form.Strings(current) {
		if candidate == value {
			return true
		}
	}
	return false
}
