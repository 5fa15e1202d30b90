package htmlform_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	htmlform "github.com/goliatone/go-htmlform"
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/openapi"
	"github.com/goliatone/go-htmlform/pkg/render"
	"github.com/goliatone/go-htmlform/pkg/testsupport"
)

var contactDoc = filepath.Join("pkg", "openapi", "testdata", "contact.yaml")

func TestRenderPage_FromOpenAPI(t *testing.T) {
	f, err := htmlform.LoadForm(context.Background(), contactDoc, "createContact")
	if err != nil {
		t.Fatalf("LoadForm: %v", err)
	}
	if err := f.SetValues(map[string]any{"name": "A"}); err != nil {
		t.Fatalf("SetValues: %v", err)
	}
	f.Validate()
	f.AddError("Please review the highlighted fields.")

	skin, stylesheet, err := htmlform.ResolveTheme(nil, "bootstrap", "5")
	if err != nil {
		t.Fatalf("ResolveTheme: %v", err)
	}
	r := htmlform.New(f, render.WithSkin(skin))

	out, err := htmlform.RenderPage(r, htmlform.PageOptions{
		Title:      "Contact us",
		Action:     "/contacts",
		Stylesheet: stylesheet,
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	doc := testsupport.Query(t, out)
	if got := doc.Find("title").Text(); got != "Contact us" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := testsupport.MustAttr(t, doc, `link[rel="stylesheet"]`, "href"); got != stylesheet {
		t.Fatalf("unexpected stylesheet %q", got)
	}
	if got := testsupport.MustAttr(t, doc, "form", "action"); got != "/contacts" {
		t.Fatalf("unexpected action %q", got)
	}
	if _, ok := doc.Find("form").Attr("enctype"); ok {
		t.Fatalf("did not expect multipart encoding")
	}
	if got := strings.TrimSpace(doc.Find(".alert-danger").Text()); got != "Please review the highlighted fields." {
		t.Fatalf("unexpected form error %q", got)
	}
	if doc.Find(`input[name="name"].is-invalid`).Length() != 1 {
		t.Fatalf("expected invalid name input")
	}
	if doc.Find(`select[name="channels[]"][multiple]`).Length() != 1 {
		t.Fatalf("expected multi select for channels")
	}
	if doc.Find(`textarea[name="message"]`).Length() != 1 {
		t.Fatalf("expected textarea for message")
	}
	if doc.Find(`input[name="address[city]"]`).Length() != 1 {
		t.Fatalf("expected nested address field")
	}

	var messages []string
	doc.Find(".invalid-feedback").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			messages = append(messages, text)
		}
	})
	want := []string{"Enter at least 2 characters.", "This field is required."}
	if strings.Join(messages, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected messages %v", messages)
	}
	if !strings.Contains(doc.Find("label").First().Text(), "Your name") {
		t.Fatalf("expected schema title as label, got %q", doc.Find("label").First().Text())
	}
}

func TestRenderForm_Multipart(t *testing.T) {
	f := form.New().
		Add("avatar", form.NewFile()).
		Add("token", form.NewText(form.WithWidget("hidden"), form.WithValue("abc")))

	r, err := htmlform.NewWithSkin(f, "bootstrap4")
	if err != nil {
		t.Fatalf("NewWithSkin: %v", err)
	}
	out, err := htmlform.RenderForm(r, htmlform.PageOptions{Submit: "Upload", Method: "post"})
	if err != nil {
		t.Fatalf("RenderForm: %v", err)
	}

	doc := testsupport.Query(t, out)
	if got := testsupport.MustAttr(t, doc, "form", "enctype"); got != "multipart/form-data" {
		t.Fatalf("unexpected enctype %q", got)
	}
	if got := testsupport.MustAttr(t, doc, `input[name="avatar"]`, "class"); got != "form-control-file" {
		t.Fatalf("unexpected file classes %q", got)
	}
	if got := testsupport.MustAttr(t, doc, `input[type="hidden"]`, "value"); got != "abc" {
		t.Fatalf("unexpected hidden value %q", got)
	}
	if got := doc.Find("button").Text(); got != "Upload" {
		t.Fatalf("unexpected submit label %q", got)
	}
}

func TestNewWithSkin_Unknown(t *testing.T) {
	if _, err := htmlform.NewWithSkin(form.New(), "tailwind"); err == nil {
		t.Fatalf("expected unknown skin error")
	}
}

func TestFormFromDocument_Targets(t *testing.T) {
	doc := testsupport.LoadDocument(t, contactDoc)

	for _, target := range []string{"createContact", "Contact", "#/components/schemas/Contact"} {
		if _, err := htmlform.FormFromDocument(doc, target); err != nil {
			t.Fatalf("%s: %v", target, err)
		}
	}
	if _, err := htmlform.FormFromDocument(doc, "nothing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}
