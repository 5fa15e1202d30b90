package render

import (
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/markup"
)

// Select renders a <select> with one option per field option. List valued
// fields get a "[]" name suffix and the multiple attribute.
func (r *Renderer) Select(p Path) (*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	options, err := r.Options(p)
	if err != nil {
		return nil, err
	}

	node := markup.Tag("select")
	applyCommonAttrs(node, field)
	node.SetChildren(options)
	if form.IsMulti(field.Value()) {
		node.SetAttr("name", MakeName(p)+"[]")
		node.SetAttr("multiple", true)
	} else {
		node.SetAttr("name", MakeName(p))
	}
	return r.decorate(node, field), nil
}

// Options renders the <option> elements of the field, marking the current
// values as selected.
func (r *Renderer) Options(p Path) ([]*markup.Node, error) {
	field, err := r.Field(p)
	if err != nil {
		return nil, err
	}
	current := field.Value()
	options := optionsOf(field)
	out := make([]*markup.Node, 0, len(options))
	for _, option := range options {
		node := markup.Tag("option").SetAttr("value", option.Value)
		node.SetAttr("selected", contains(current, option.Value))
		out = append(out, node.Append(option.Label))
	}
	return out, nil
}
