package render_test

import (
	"testing"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/markup"
	"github.com/goliatone/go-htmlform/pkg/render"
)

func newSkinForm() *form.Form {
	email := form.NewEmail(form.WithValue("invalid-email"))
	email.Validate()

	valid := form.NewEmail(form.WithValue("valid@example.com"))
	valid.Validate()

	return form.New().
		Add("name", form.NewText(form.WithValue("test"))).
		Add("age", form.NewInteger(form.WithValue("25"))).
		Add("upload", form.NewFile()).
		Add("secret", form.NewText()).
		Add("bio", form.NewTextarea(form.WithValue("Bio"))).
		Add("country", form.NewSelect(form.OptionsOf("us", "USA", "jp", "Japan"), form.WithValue("us"))).
		Add("agree", form.NewSelect(form.OptionsOf("yes", "I agree"), form.WithValue("yes"))).
		Add("email", email).
		Add("valid", valid)
}

func TestSkins_ControlClasses(t *testing.T) {
	type control func(r *render.Renderer) (*markup.Node, error)

	inputText := func(r *render.Renderer) (*markup.Node, error) { return r.InputText(render.P("name")) }
	inputNumber := func(r *render.Renderer) (*markup.Node, error) { return r.InputNumber(render.P("age")) }
	inputFile := func(r *render.Renderer) (*markup.Node, error) { return r.InputFile(render.P("upload")) }
	inputHidden := func(r *render.Renderer) (*markup.Node, error) { return r.InputHidden(render.P("secret")) }
	textarea := func(r *render.Renderer) (*markup.Node, error) { return r.Textarea(render.P("bio")) }
	selectBox := func(r *render.Renderer) (*markup.Node, error) { return r.Select(render.P("country")) }
	checkbox := func(r *render.Renderer) (*markup.Node, error) { return r.InputCheckbox(render.P("agree"), "yes") }
	radio := func(r *render.Renderer) (*markup.Node, error) { return r.InputRadio(render.P("agree"), "yes") }
	invalid := func(r *render.Renderer) (*markup.Node, error) { return r.InputEmail(render.P("email")) }
	valid := func(r *render.Renderer) (*markup.Node, error) { return r.InputEmail(render.P("valid")) }

	cases := []struct {
		name    string
		skin    render.Skin
		control control
		want    string
	}{
		{name: "bs4 text", skin: render.Bootstrap4, control: inputText, want: "form-control"},
		{name: "bs4 number", skin: render.Bootstrap4, control: inputNumber, want: "form-control"},
		{name: "bs4 file", skin: render.Bootstrap4, control: inputFile, want: "form-control-file"},
		{name: "bs4 hidden", skin: render.Bootstrap4, control: inputHidden, want: ""},
		{name: "bs4 textarea", skin: render.Bootstrap4, control: textarea, want: "form-control"},
		{name: "bs4 select", skin: render.Bootstrap4, control: selectBox, want: "form-control"},
		{name: "bs4 checkbox", skin: render.Bootstrap4, control: checkbox, want: "form-check-input"},
		{name: "bs4 invalid", skin: render.Bootstrap4, control: invalid, want: "form-control is-invalid"},
		{name: "bs5 text", skin: render.Bootstrap5, control: inputText, want: "form-control"},
		{name: "bs5 file", skin: render.Bootstrap5, control: inputFile, want: "form-control"},
		{name: "bs5 textarea", skin: render.Bootstrap5, control: textarea, want: "form-control"},
		{name: "bs5 select", skin: render.Bootstrap5, control: selectBox, want: "form-select"},
		{name: "bs5 checkbox", skin: render.Bootstrap5, control: checkbox, want: "form-check-input"},
		{name: "bs5 radio", skin: render.Bootstrap5, control: radio, want: "form-check-input"},
		{name: "bs5 invalid", skin: render.Bootstrap5, control: invalid, want: "form-control is-invalid"},
		{name: "bs5 valid", skin: render.Bootstrap5, control: valid, want: "form-control"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := render.New(newSkinForm(), nil, render.WithSkin(tc.skin))
			node, err := tc.control(r)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got := node.AttrString("class"); got != tc.want {
				t.Fatalf("want class %q, got %q (%s)", tc.want, got, node)
			}
		})
	}
}

func TestSkins_CheckboxGroupsAreDecorated(t *testing.T) {
	r := render.New(newSkinForm(), nil, render.WithSkin(render.Bootstrap5))

	choices, err := r.InputCheckboxes(render.P("country"))
	if err != nil {
		t.Fatalf("InputCheckboxes: %v", err)
	}
	for _, choice := range choices {
		if !choice.Node.HasClass("form-check-input") {
			t.Fatalf("choice %q missing skin class: %s", choice.Value, choice.Node)
		}
	}
}

func TestSkins_ErrorContainer(t *testing.T) {
	r := render.New(newSkinForm(), nil, render.WithSkin(render.Bootstrap4))

	node, err := r.Error(render.P("email"))
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	want := `<div class="invalid-feedback"><div>Enter a valid email address.</div></div>`
	if got := node.String(); got != want {
		t.Fatalf("error container mismatch:\nwant %s\ngot  %s", want, got)
	}

	empty, err := r.Error(render.P("valid"))
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if got := empty.String(); got != `<div class="invalid-feedback"></div>` {
		t.Fatalf("unexpected empty container %q", got)
	}
}

type dataDecorator struct{}

func (dataDecorator) DecorateControl(node *markup.Node, field form.Field) {
	node.SetAttr("data-required", field.Required())
}

func (dataDecorator) DecorateError(node *markup.Node) {
	node.SetTag("ul")
}

func TestWithDecorator(t *testing.T) {
	f := form.New().Add("name", form.NewText(form.Required()))
	f.Validate()
	r := render.New(f, nil, render.WithDecorator(dataDecorator{}))

	input, err := r.InputText(render.P("name"))
	if err != nil {
		t.Fatalf("InputText: %v", err)
	}
	if !input.Bool("data-required") {
		t.Fatalf("custom decorator not applied: %s", input)
	}
	errs, err := r.Error(render.P("name"))
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if errs.Tag() != "ul" {
		t.Fatalf("custom error decorator not applied: %s", errs)
	}
}
