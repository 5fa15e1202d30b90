package render

import (
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/markup"
)

// Error collects the formatted errors of the fields at paths, drops empty
// and repeated messages, and wraps each remaining message in a <div>. The
// result is a fragment unless the decorator turns it into a container.
func (r *Renderer) Error(paths ...Path) (*markup.Node, error) {
	messages := make([]string, 0, len(paths))
	for _, p := range paths {
		field, err := r.Field(p)
		if err != nil {
			return nil, err
		}
		if verr := field.Err(); verr != nil {
			messages = append(messages, r.formatter.Format(verr))
		}
	}

	container := markup.New()
	for _, message := range form.NormalizeMessages(messages) {
		div := markup.Tag("div")
		if r.htmlMessages {
			div.AppendHTML(message)
		} else {
			div.Append(message)
		}
		container.Append(div)
	}
	r.decorator.DecorateError(container)
	return container, nil
}
