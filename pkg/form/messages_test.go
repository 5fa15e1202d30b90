package form_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/form"
)

type stubTranslator map[string]string

func (s stubTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if text, ok := s[locale+":"+key]; ok {
		return text, nil
	}
	return "", errors.New("missing")
}

func TestMessages_DefaultCatalog(t *testing.T) {
	m := form.NewMessages()

	cases := []struct {
		err  *form.ValidationError
		want string
	}{
		{err: nil, want: ""},
		{err: form.NewError(form.CodeEmpty), want: "This field is required."},
		{err: form.NewError(form.CodeTooLong, "max", 10), want: "Enter no more than 10 characters."},
		{err: form.NewError(form.CodeTooSmall, "min", 1.5), want: "Enter a value greater than or equal to 1.5."},
		{err: form.Custom("  Server says no "), want: "Server says no"},
		{err: &form.ValidationError{Code: "unknown_code"}, want: "unknown_code"},
	}
	for _, tc := range cases {
		if got := m.Format(tc.err); got != tc.want {
			t.Fatalf("Format(%v): want %q, got %q", tc.err, tc.want, got)
		}
	}
}

func TestMessages_CatalogAndTranslator(t *testing.T) {
	var missed []string
	m := form.NewMessages(
		form.WithLocale("es"),
		form.WithCatalog("es", form.Catalog{form.CodeEmpty: "Campo obligatorio."}),
		form.WithTranslator(stubTranslator{"es:htmlform.error.too_short": "Mínimo {min} caracteres."}),
		form.WithMissingTranslation(func(locale, key string, _ error) {
			missed = append(missed, locale+":"+key)
		}),
	)

	if got := m.Format(form.NewError(form.CodeTooShort, "min", 3)); got != "Mínimo 3 caracteres." {
		t.Fatalf("translator message not used: %q", got)
	}
	if got := m.Format(form.NewError(form.CodeEmpty)); got != "Campo obligatorio." {
		t.Fatalf("catalog message not used: %q", got)
	}
	if got := m.Format(form.NewError(form.CodeNotInteger)); got != "Enter a whole number." {
		t.Fatalf("default message not used: %q", got)
	}
	want := []string{"es:htmlform.error.empty", "es:htmlform.error.not_integer"}
	if diff := cmp.Diff(want, missed); diff != "" {
		t.Fatalf("missing translations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMessagesFS(t *testing.T) {
	fsys := fstest.MapFS{
		"messages/fr.yaml": {Data: []byte("messages:\n  empty: Champ requis.\n  too_long: \"Maximum {max} caractères.\"\n")},
		"messages/de.json": {Data: []byte(`{"locale":"de","messages":{"empty":"Pflichtfeld."}}`)},
		"messages/README":  {Data: []byte("ignored")},
	}

	catalogs, err := form.LoadMessagesFS(fsys)
	if err != nil {
		t.Fatalf("LoadMessagesFS: %v", err)
	}
	want := map[string]form.Catalog{
		"fr": {form.CodeEmpty: "Champ requis.", form.CodeTooLong: "Maximum {max} caractères."},
		"de": {form.CodeEmpty: "Pflichtfeld."},
	}
	if diff := cmp.Diff(want, catalogs); diff != "" {
		t.Fatalf("catalogs mismatch (-want +got):\n%s", diff)
	}

	m := form.NewMessages(form.WithLocale("fr"), form.WithCatalogs(catalogs))
	if got := m.Format(form.NewError(form.CodeTooLong, "max", 5)); got != "Maximum 5 caractères." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestLoadMessagesFS_Errors(t *testing.T) {
	fsys := fstest.MapFS{"empty.yaml": {Data: []byte("   ")}}
	if _, err := form.LoadMessagesFS(fsys); err == nil || !strings.Contains(err.Error(), "empty.yaml") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestApplyErrors(t *testing.T) {
	f := newProfileForm()

	formLevel := form.ApplyErrors(f, map[string][]string{
		"/body/name":           {"Name taken", " Name taken "},
		"address.city":         {"Unknown city"},
		"data[address][zip]":   {"Bad zip"},
		"non_field_errors":     {"Try again later"},
		"request/body/unknown": {"Lost message"},
		"tags[1]":              {"Unknown tag"},
		"":                     {"  "},
	})

	if diff := cmp.Diff([]string{"Try again later", "Lost message"}, formLevel); diff != "" {
		t.Fatalf("form level mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Try again later", "Lost message"}, f.FormErrors()); diff != "" {
		t.Fatalf("form errors not recorded (-want +got):\n%s", diff)
	}

	got := make(map[string]string)
	for path, err := range f.Errors() {
		got[path] = err.Message
	}
	want := map[string]string{
		"name":         "Name taken",
		"address/city": "Unknown city",
		"address/zip":  "Bad zip",
		"tags":         "Unknown tag",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMessages_CatalogFallsBackToBaseLanguage(t *testing.T) {
	m := form.NewMessages(
		form.WithLocale("pt-BR"),
		form.WithCatalog("pt", form.Catalog{form.CodeEmpty: "Campo obrigatório."}),
	)
	if got := m.Format(form.NewError(form.CodeEmpty)); got != "Campo obrigatório." {
		t.Fatalf("base language catalog not used: %q", got)
	}

	other := form.NewMessages(
		form.WithLocale("de"),
		form.WithCatalog("pt", form.Catalog{form.CodeEmpty: "Campo obrigatório."}),
	)
	if got := other.Format(form.NewError(form.CodeEmpty)); got != "This field is required." {
		t.Fatalf("expected default catalog, got %q", got)
	}
}
