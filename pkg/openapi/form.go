package openapi

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cast"

	"github.com/goliatone/go-htmlform/pkg/form"
)

// Schema extensions understood by the form builder.
const (
	ExtensionOrder      = "x-order"
	ExtensionWidget     = "x-widget"
	ExtensionEnumLabels = "x-enum-labels"
)

var (
	// ErrOperationNotFound reports an unknown operationId.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrComponentNotFound reports an unknown component schema.
	ErrComponentNotFound = errors.New("openapi: component schema not found")
	// ErrNoRequestBody reports an operation without a request schema.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
	// ErrNotObject reports a root schema that has no properties.
	ErrNotObject = errors.New("openapi: schema is not an object")
)

// SchemaError reports a property that cannot be mapped to a field.
type SchemaError struct {
	Property string
	Reason   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("openapi: property %q: %s", e.Property, e.Reason)
}

var requestMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// FormForOperation builds a form from the request body of the operation
// identified by operationID.
func FormForOperation(doc *openapi3.T, operationID string) (*form.Form, error) {
	op, err := findOperation(doc, operationID)
	if err != nil {
		return nil, err
	}
	schema := requestSchema(op)
	if schema == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRequestBody, operationID)
	}
	return FormFromSchema(schema)
}

// FormForComponent builds a form from components.schemas[name].
func FormForComponent(doc *openapi3.T, name string) (*form.Form, error) {
	if doc == nil || doc.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, name)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, name)
	}
	return FormFromSchema(ref.Value)
}

// FormFromSchema maps an object schema onto a form. Properties are added in
// x-order order, then by name. Nested objects become nested forms.
func FormFromSchema(schema *openapi3.Schema) (*form.Form, error) {
	return buildForm(schema, "")
}

func buildForm(schema *openapi3.Schema, prefix string) (*form.Form, error) {
	properties, required := flatten(schema)
	if len(properties) == 0 {
		if prefix == "" {
			return nil, ErrNotObject
		}
		return nil, &SchemaError{Property: prefix, Reason: "object has no properties"}
	}

	requiredSet := make(map[string]struct{}, len(required))
	for _, name := range required {
		requiredSet[name] = struct{}{}
	}

	f := form.New()
	for _, name := range orderedProperties(properties) {
		ref := properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		path := joinProperty(prefix, name)
		_, isRequired := requiredSet[name]

		item, err := buildItem(ref.Value, path, isRequired)
		if err != nil {
			return nil, err
		}
		f.Add(name, item)
	}
	return f, nil
}

func buildItem(schema *openapi3.Schema, path string, required bool) (form.Item, error) {
	if isType(schema, openapi3.TypeObject) || len(schema.Properties) > 0 || len(schema.AllOf) > 0 {
		return buildForm(schema, path)
	}

	opts := fieldOptions(schema, required)

	switch {
	case isType(schema, openapi3.TypeArray):
		return buildArray(schema, path, opts)
	case len(schema.Enum) > 0:
		return form.NewSelect(enumOptions(schema), opts...), nil
	case isType(schema, openapi3.TypeBoolean):
		return form.NewBoolean(opts...), nil
	case isType(schema, openapi3.TypeInteger):
		return numberRange(form.NewInteger(opts...), schema), nil
	case isType(schema, openapi3.TypeNumber):
		return numberRange(form.NewNumber(opts...), schema), nil
	case isType(schema, openapi3.TypeString) || schema.Type == nil:
		return buildString(schema, path, opts)
	default:
		return nil, &SchemaError{Property: path, Reason: fmt.Sprintf("unsupported type %v", schema.Type.Slice())}
	}
}

func buildArray(schema *openapi3.Schema, path string, opts []form.FieldOption) (form.Item, error) {
	if schema.Items == nil || schema.Items.Value == nil || len(schema.Items.Value.Enum) == 0 {
		return nil, &SchemaError{Property: path, Reason: "arrays need enum items"}
	}
	return form.NewMultiSelect(enumOptions(schema.Items.Value), opts...), nil
}

func buildString(schema *openapi3.Schema, path string, opts []form.FieldOption) (form.Item, error) {
	var text *form.TextInput
	switch strings.ToLower(schema.Format) {
	case "email":
		email := form.NewEmail(opts...)
		text = &email.TextInput
		return email, applyText(text, schema, path)
	case "uri", "url":
		u := form.NewURL(opts...)
		text = &u.TextInput
		return u, applyText(text, schema, path)
	case "date", "date-time":
		return form.NewDate(opts...), nil
	case "binary":
		return form.NewFile(opts...), nil
	case "password":
		text = form.NewPassword(opts...)
	case "tel", "phone":
		text = form.NewTel(opts...)
	case "textarea", "multiline":
		text = form.NewTextarea(opts...)
	default:
		text = form.NewText(opts...)
	}
	return text, applyText(text, schema, path)
}

func applyText(text *form.TextInput, schema *openapi3.Schema, path string) error {
	maxLength := 0
	if schema.MaxLength != nil {
		if *schema.MaxLength > math.MaxInt32 {
			maxLength = math.MaxInt32
		} else {
			maxLength = int(*schema.MaxLength)
		}
	}
	minLength := int(min(schema.MinLength, math.MaxInt32))
	text.SetLength(minLength, maxLength)

	if schema.Pattern != "" {
		re, err := regexp.Compile(schema.Pattern)
		if err != nil {
			return &SchemaError{Property: path, Reason: fmt.Sprintf("invalid pattern: %v", err)}
		}
		text.SetPattern(re)
	}
	return nil
}

func numberRange(n *form.NumberInput, schema *openapi3.Schema) *form.NumberInput {
	if schema.Min != nil {
		n.SetMin(*schema.Min)
	}
	if schema.Max != nil {
		n.SetMax(*schema.Max)
	}
	return n
}

func fieldOptions(schema *openapi3.Schema, required bool) []form.FieldOption {
	var opts []form.FieldOption
	if required {
		opts = append(opts, form.Required())
	}
	if schema.ReadOnly {
		opts = append(opts, form.ReadOnly())
	}
	if title := strings.TrimSpace(schema.Title); title != "" {
		opts = append(opts, form.WithLabel(title))
	}
	if widget := cast.ToString(schema.Extensions[ExtensionWidget]); widget != "" {
		opts = append(opts, form.WithWidget(widget))
	}
	if schema.Default != nil {
		opts = append(opts, form.WithValue(schema.Default))
	}
	return opts
}

func enumOptions(schema *openapi3.Schema) []form.Option {
	labels := cast.ToStringSlice(schema.Extensions[ExtensionEnumLabels])
	options := make([]form.Option, 0, len(schema.Enum))
	for i, raw := range schema.Enum {
		value := cast.ToString(raw)
		label := value
		if i < len(labels) && strings.TrimSpace(labels[i]) != "" {
			label = labels[i]
		}
		options = append(options, form.Option{Value: value, Label: label})
	}
	return options
}

// flatten merges allOf members into the schema's own properties.
func flatten(schema *openapi3.Schema) (openapi3.Schemas, []string) {
	if schema == nil {
		return nil, nil
	}
	properties := make(openapi3.Schemas, len(schema.Properties))
	required := append([]string(nil), schema.Required...)
	for _, member := range schema.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		props, req := flatten(member.Value)
		for name, ref := range props {
			properties[name] = ref
		}
		required = append(required, req...)
	}
	for name, ref := range schema.Properties {
		properties[name] = ref
	}
	return properties, required
}

func orderedProperties(properties openapi3.Schemas) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	order := func(name string) (int, bool) {
		ref := properties[name]
		if ref == nil || ref.Value == nil {
			return 0, false
		}
		raw, ok := ref.Value.Extensions[ExtensionOrder]
		if !ok {
			return 0, false
		}
		n, err := cast.ToIntE(raw)
		return n, err == nil
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, hasI := order(names[i])
		oj, hasJ := order(names[j])
		switch {
		case hasI && hasJ && oi != oj:
			return oi < oj
		case hasI != hasJ:
			return hasI
		default:
			return names[i] < names[j]
		}
	})
	return names
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc != nil && doc.Paths != nil {
		for _, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op != nil && op.OperationID == operationID {
					return op, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt := content.Get(mediaType); mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func isType(schema *openapi3.Schema, typ string) bool {
	return schema.Type != nil && schema.Type.Is(typ)
}

func joinProperty(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
