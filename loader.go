package htmlform

import (
	"context"
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/openapi"
)

const componentRefPrefix = "#/components/schemas/"

// LoadForm reads an OpenAPI document from a path or URL and builds the form
// named by target. See FormFromDocument for how target is resolved.
func LoadForm(ctx context.Context, location, target string, opts ...openapi.LoadOption) (*form.Form, error) {
	doc, err := openapi.LoadLocation(ctx, location, opts...)
	if err != nil {
		return nil, err
	}
	return FormFromDocument(doc, target)
}

// FormFromDocument builds a form from an operationId or a component schema.
// A "#/components/schemas/" prefix selects a component explicitly; otherwise
// operations are tried before components.
func FormFromDocument(doc *openapi3.T, target string) (*form.Form, error) {
	target = strings.TrimSpace(target)
	if name, ok := strings.CutPrefix(target, componentRefPrefix); ok {
		return openapi.FormForComponent(doc, name)
	}
	f, err := openapi.FormForOperation(doc, target)
	if errors.Is(err, openapi.ErrOperationNotFound) {
		if f, cerr := openapi.FormForComponent(doc, target); cerr == nil {
			return f, nil
		}
	}
	return f, err
}
