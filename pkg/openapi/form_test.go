package openapi_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/openapi"
	"github.com/goliatone/go-htmlform/pkg/testsupport"
)

func TestFormForOperation_MapsProperties(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "contact.yaml"))

	f, err := openapi.FormForOperation(doc, "createContact")
	if err != nil {
		t.Fatalf("FormForOperation: %v", err)
	}

	wantOrder := []string{"name", "email", "topic", "address", "age", "born", "channels", "code", "message", "newsletter", "website"}
	if diff := cmp.Diff(wantOrder, f.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	name := mustGet[*form.TextInput](t, f, "name")
	if !name.Required() || name.Label() != "Your name" || name.MinLength() != 2 || name.MaxLength() != 40 {
		t.Fatalf("unexpected name field %+v", name)
	}

	mustGet[*form.EmailInput](t, f, "email")
	mustGet[*form.URLInput](t, f, "website")
	mustGet[*form.DateInput](t, f, "born")
	mustGet[*form.BooleanInput](t, f, "newsletter")

	topic := mustGet[*form.Select](t, f, "topic")
	wantOptions := []form.Option{{Value: "sales", Label: "Sales"}, {Value: "support", Label: "Support"}}
	if diff := cmp.Diff(wantOptions, topic.Options()); diff != "" {
		t.Fatalf("topic options mismatch (-want +got):\n%s", diff)
	}
	if topic.Value() != "support" {
		t.Fatalf("expected default value, got %v", topic.Value())
	}

	channels := mustGet[*form.MultiSelect](t, f, "channels")
	if len(channels.Options()) != 2 || channels.Required() {
		t.Fatalf("unexpected channels field %+v", channels)
	}

	age := mustGet[*form.NumberInput](t, f, "age")
	if !age.Integer() || age.Min() != 18 || age.Max() != 120 {
		t.Fatalf("unexpected age range %v..%v", age.Min(), age.Max())
	}

	message := mustGet[*form.TextInput](t, f, "message")
	if message.Widget() != "textarea" {
		t.Fatalf("expected textarea widget hint, got %q", message.Widget())
	}

	code := mustGet[*form.TextInput](t, f, "code")
	if !code.ReadOnly() {
		t.Fatalf("expected read only code")
	}
	code.SetValue("abc")
	if code.Validate() {
		t.Fatalf("expected pattern mismatch")
	}

	item, ok := f.Get("address")
	if !ok {
		t.Fatalf("missing address")
	}
	address, ok := item.(*form.Form)
	if !ok {
		t.Fatalf("expected nested form, got %T", item)
	}
	if diff := cmp.Diff([]string{"city", "zip"}, address.Names()); diff != "" {
		t.Fatalf("address fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFormForComponent(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "contact.yaml"))

	f, err := openapi.FormForComponent(doc, "Contact")
	if err != nil {
		t.Fatalf("FormForComponent: %v", err)
	}
	if len(f.Names()) != 11 {
		t.Fatalf("expected 11 fields, got %d", len(f.Names()))
	}

	if _, err := openapi.FormForComponent(doc, "Missing"); !errors.Is(err, openapi.ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}
}

func TestFormForOperation_Errors(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "contact.yaml"))

	if _, err := openapi.FormForOperation(doc, "nope"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := openapi.FormForOperation(doc, "listContacts"); !errors.Is(err, openapi.ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
}

func TestFormFromSchema_UnsupportedArray(t *testing.T) {
	doc, err := openapi.Load(context.Background(), []byte(`
openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Tags:
      type: object
      properties:
        tags:
          type: array
          items:
            type: string
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err = openapi.FormForComponent(doc, "Tags")
	var schemaErr *openapi.SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Property != "tags" {
		t.Fatalf("expected SchemaError for tags, got %v", err)
	}
}

func TestOperationsAndComponents(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "contact.yaml"))

	want := []openapi.OperationInfo{{ID: "createContact", Method: "POST", Path: "/contacts", Summary: "Create a contact"}}
	if diff := cmp.Diff(want, openapi.Operations(doc)); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Contact"}, openapi.Components(doc)); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := openapi.Load(context.Background(), []byte("  ")); err == nil {
		t.Fatalf("expected empty payload error")
	}
	if _, err := openapi.LoadLocation(context.Background(), "https://example.com/openapi.yaml"); err == nil {
		t.Fatalf("expected http disabled error")
	}
	if _, err := openapi.LoadLocation(context.Background(), filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func mustGet[T form.Item](t *testing.T, f *form.Form, name string) T {
	t.Helper()
	item, ok := f.Get(name)
	if !ok {
		t.Fatalf("missing field %q", name)
	}
	typed, ok := item.(T)
	if !ok {
		t.Fatalf("field %q: unexpected type %T", name, item)
	}
	return typed
}
