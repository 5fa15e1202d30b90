package gotemplate_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/render"
	"github.com/goliatone/go-htmlform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-htmlform/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestNew_BaseDirShadowsFS(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Hi {{ person.first_name }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	type person struct {
		FirstName string `json:"first_name"`
	}
	got, err := engine.RenderTemplate("hello", map[string]any{"person": person{FirstName: "Ada"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi Ada" {
		t.Fatalf("unexpected output %q", got)
	}
	if _, err := engine.RenderTemplate("use-global", nil); err != nil {
		t.Fatalf("expected fs fallback, got %v", err)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestRenderForm(t *testing.T) {
	engine := newEngine(t)
	f := contactForm()
	f.Validate()

	r := render.New(f, nil, render.WithSkin(render.Bootstrap5))
	out, err := gotemplate.RenderForm(engine, "contact", r, map[string]any{"action": "/contact"})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}

	doc := testsupport.Query(t, out)

	if got := testsupport.MustAttr(t, doc, "form", "action"); got != "/contact" {
		t.Fatalf("unexpected action %q", got)
	}
	if got := testsupport.MustAttr(t, doc, `input[name="name"]`, "class"); got != "form-control is-invalid" {
		t.Fatalf("unexpected name classes %q", got)
	}

	var feedback []string
	doc.Find(".invalid-feedback").Each(func(_ int, s *goquery.Selection) {
		feedback = append(feedback, s.Text())
	})
	want := []string{"This field is required.", "Enter a valid email address."}
	if diff := cmp.Diff(want, feedback); diff != "" {
		t.Fatalf("feedback mismatch (-want +got):\n%s", diff)
	}

	if got := testsupport.MustAttr(t, doc, `select[name="topic"] option[selected]`, "value"); got != "support" {
		t.Fatalf("unexpected selected topic %q", got)
	}
	if got := doc.Find(`input[name="channels[]"]`).Length(); got != 2 {
		t.Fatalf("expected 2 channel checkboxes, got %d", got)
	}
	if got := doc.Find(`input[name="channels[]"][checked]`).Length(); got != 2 {
		t.Fatalf("expected 2 checked channels, got %d", got)
	}
	if got := doc.Find(`textarea[name="address[street]"]`).Text(); got != "Main St" {
		t.Fatalf("unexpected street %q", got)
	}
	if got := doc.Find("p.summary").Text(); got != "Phone + Mail" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := testsupport.MustAttr(t, doc, `input[name="address[zip]"]`, "value"); got != "1000-001" {
		t.Fatalf("unexpected zip %q", got)
	}
}

func TestRenderForm_UnknownField(t *testing.T) {
	engine := newEngine(t)
	r := render.New(contactForm(), nil)

	_, err := gotemplate.RenderForm(engine, `{{ input_text("missing") }}`, r, nil)
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected missing field error, got %v", err)
	}
}

func TestFormFuncs_Number(t *testing.T) {
	engine := newEngine(t)
	f := form.New().Add("price", form.NewNumber(form.WithValue("1234.5678")))
	r := render.New(f, nil)

	out, err := gotemplate.RenderForm(engine, `{{ number("price", 2, ",", ".") }}|{{ number("price") }}|{{ make_name("a/b") }}`, r, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "1.234,57|1,235|a[b]" {
		t.Fatalf("unexpected output %q", out)
	}
}

func contactForm() *form.Form {
	address := form.New().
		Add("street", form.NewTextarea(form.WithValue("Main St"))).
		Add("zip", form.NewText(form.WithValue("1000-001")))

	return form.New().
		Add("name", form.NewText(form.Required())).
		Add("email", form.NewEmail(form.WithValue("nope"))).
		Add("topic", form.NewSelect(form.OptionsOf("sales", "Sales", "support", "Support"), form.WithValue("support"))).
		Add("channels", form.NewMultiSelect(form.OptionsOf("mail", "Mail", "phone", "Phone"), form.WithValue([]string{"phone", "mail"}))).
		Add("address", address)
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestFields_DerivesLabels(t *testing.T) {
	f := form.New().
		Add("full_name", form.NewText(form.Required())).
		Add("email", form.NewEmail(form.WithLabel("E-mail"))).
		Add("agree", form.NewBoolean())
	r := render.New(f, nil)

	got, err := gotemplate.Fields(r)
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	want := []gotemplate.FieldView{
		{Path: "full_name", Name: "full_name", Label: "Full Name", Widget: "text", Required: true},
		{Path: "email", Name: "email", Label: "E-mail", Widget: "email"},
		{Path: "agree", Name: "agree", Label: "Agree", Widget: "checkbox"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
