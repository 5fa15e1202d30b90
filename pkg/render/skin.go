package render

import (
	"strings"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/markup"
)

// Decorator adjusts rendered controls and error containers for a design
// system.
type Decorator interface {
	DecorateControl(node *markup.Node, field form.Field)
	DecorateError(node *markup.Node)
}

type noDecorator struct{}

func (noDecorator) DecorateControl(*markup.Node, form.Field) {}
func (noDecorator) DecorateError(*markup.Node)               {}

// Skin is a class table applied to controls. Empty entries add nothing.
type Skin struct {
	Name string `json:"name" yaml:"name"`
	// Input is applied to textual inputs.
	Input string `json:"input" yaml:"input"`
	// File is applied to file inputs; Input is used when empty.
	File string `json:"file" yaml:"file"`
	// Check is applied to checkbox and radio inputs.
	Check    string `json:"check" yaml:"check"`
	Textarea string `json:"textarea" yaml:"textarea"`
	Select   string `json:"select" yaml:"select"`
	// Invalid is added to any control whose field carries an error.
	Invalid string `json:"invalid" yaml:"invalid"`
	// Error and ErrorTag shape the container returned by Error.
	Error    string `json:"error" yaml:"error"`
	ErrorTag string `json:"errorTag" yaml:"errorTag"`
}

// Bootstrap4 matches Bootstrap 4 form markup.
var Bootstrap4 = Skin{
	Name:     "bootstrap4",
	Input:    "form-control",
	File:     "form-control-file",
	Check:    "form-check-input",
	Textarea: "form-control",
	Select:   "form-control",
	Invalid:  "is-invalid",
	Error:    "invalid-feedback",
	ErrorTag: "div",
}

// Bootstrap5 matches Bootstrap 5 form markup.
var Bootstrap5 = Skin{
	Name:     "bootstrap5",
	Input:    "form-control",
	File:     "form-control",
	Check:    "form-check-input",
	Textarea: "form-control",
	Select:   "form-select",
	Invalid:  "is-invalid",
	Error:    "invalid-feedback",
	ErrorTag: "div",
}

// DecorateControl adds the class for the control kind and the invalid class
// when the field has an error. Hidden inputs only get the invalid class.
func (s Skin) DecorateControl(node *markup.Node, field form.Field) {
	if node == nil {
		return
	}
	switch strings.ToLower(node.Tag()) {
	case "input":
		switch strings.ToLower(node.AttrString("type")) {
		case "file":
			node.AddClass(firstNonEmpty(s.File, s.Input))
		case "checkbox", "radio":
			node.AddClass(s.Check)
		case "hidden":
		default:
			node.AddClass(s.Input)
		}
	case "textarea":
		node.AddClass(s.Textarea)
	case "select":
		node.AddClass(s.Select)
	}
	if field != nil && field.Err() != nil {
		node.AddClass(s.Invalid)
	}
}

// DecorateError turns the error fragment into the skin's container element.
func (s Skin) DecorateError(node *markup.Node) {
	if node == nil || (s.ErrorTag == "" && s.Error == "") {
		return
	}
	node.SetTag(firstNonEmpty(s.ErrorTag, "div"))
	node.AddClass(s.Error)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
