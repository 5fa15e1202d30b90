package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cast"

	"github.com/goliatone/go-htmlform/pkg/widgets"
)

// Violation is a problem found by Lint.
type Violation struct {
	Location string `json:"location" yaml:"location"`
	Message  string `json:"message" yaml:"message"`
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint checks the form extensions of every request body and component schema
// and reports properties the form builder cannot map. Results are sorted.
func Lint(doc *openapi3.T) []Violation {
	if doc == nil {
		return nil
	}
	var result []Violation

	for _, info := range Operations(doc) {
		op, err := findOperation(doc, info.ID)
		if err != nil {
			continue
		}
		base := []string{"operation", info.ID, "requestBody"}
		schema := requestSchema(op)
		result = append(result, lintSchema(base, schema)...)
		if _, err := FormFromSchema(schema); err != nil {
			result = append(result, buildViolation(base, err))
		}
	}

	for _, name := range Components(doc) {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		base := []string{"components", "schemas", name}
		result = append(result, lintSchema(base, ref.Value)...)
		if _, err := FormFromSchema(ref.Value); err != nil {
			result = append(result, buildViolation(base, err))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return dedupe(result)
}

func lintSchema(path []string, schema *openapi3.Schema) []Violation {
	if schema == nil {
		return nil
	}
	result := lintExtensions(path, schema)

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if ref := schema.Properties[key]; ref != nil {
			result = append(result, lintSchema(appendPath(path, "properties."+key), ref.Value)...)
		}
	}
	for i, member := range schema.AllOf {
		if member != nil {
			result = append(result, lintSchema(appendPath(path, fmt.Sprintf("allOf.%d", i)), member.Value)...)
		}
	}
	if schema.Items != nil {
		result = append(result, lintSchema(appendPath(path, "items"), schema.Items.Value)...)
	}
	return result
}

func lintExtensions(path []string, schema *openapi3.Schema) []Violation {
	var result []Violation
	location := formatLocation(path)

	if raw, ok := schema.Extensions[ExtensionOrder]; ok {
		if _, err := cast.ToIntE(raw); err != nil {
			result = append(result, Violation{location, fmt.Sprintf("%s must be a number (got %T)", ExtensionOrder, raw)})
		}
	}

	if raw, ok := schema.Extensions[ExtensionWidget]; ok {
		widget, isString := raw.(string)
		switch {
		case !isString:
			result = append(result, Violation{location, fmt.Sprintf("%s must be a string (got %T)", ExtensionWidget, raw)})
		case !knownWidget(widget):
			result = append(result, Violation{location, fmt.Sprintf("unsupported widget %q (supported: %s)", widget, strings.Join(widgets.Names(), ", "))})
		}
	}

	if raw, ok := schema.Extensions[ExtensionEnumLabels]; ok {
		labels, err := cast.ToStringSliceE(raw)
		enum := schema.Enum
		if schema.Items != nil && schema.Items.Value != nil && len(enum) == 0 {
			enum = schema.Items.Value.Enum
		}
		switch {
		case err != nil:
			result = append(result, Violation{location, fmt.Sprintf("%s must be a list of strings (got %T)", ExtensionEnumLabels, raw)})
		case len(enum) == 0:
			result = append(result, Violation{location, fmt.Sprintf("%s needs an enum", ExtensionEnumLabels)})
		case len(labels) != len(enum):
			result = append(result, Violation{location, fmt.Sprintf("%s has %d labels for %d enum values", ExtensionEnumLabels, len(labels), len(enum))})
		}
	}
	return result
}

func buildViolation(path []string, err error) Violation {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) && schemaErr.Property != "" {
		return Violation{formatLocation(appendPath(path, "properties."+schemaErr.Property)), schemaErr.Reason}
	}
	return Violation{formatLocation(path), err.Error()}
}

func knownWidget(name string) bool {
	for _, candidate := range widgets.Names() {
		if candidate == name {
			return true
		}
	}
	return false
}

func dedupe(in []Violation) []Violation {
	out := in[:0]
	for i, v := range in {
		if i > 0 && v == in[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
