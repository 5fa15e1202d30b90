package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-htmlform"
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/render"
	"github.com/goliatone/go-htmlform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-htmlform/pkg/skins"
)

type renderOptions struct {
	values       string
	errors       string
	skin         string
	theme        string
	variant      string
	themesDir    string
	template     string
	templatesDir string
	page         bool
	validate     bool
	locale       string
	messagesDir  string
	out          string
	title        string
	action       string
	method       string
	submit       string
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.values, "values", "", "YAML or JSON file with field values")
	flags.StringVar(&opts.errors, "errors", "", "YAML or JSON file with server side errors keyed by field path")
	flags.StringVar(&opts.skin, "skin", "", "Built-in skin (bootstrap4, bootstrap5)")
	flags.StringVar(&opts.theme, "theme", "", "Theme name resolved through the theme registry")
	flags.StringVar(&opts.variant, "variant", "", "Theme variant")
	flags.StringVar(&opts.themesDir, "themes-dir", "", "Directory of theme manifests (JSON or YAML)")
	flags.StringVar(&opts.template, "template", "", "Template name to render instead of the built-in ones")
	flags.StringVar(&opts.templatesDir, "templates-dir", "", "Directory of pongo2 templates")
	flags.BoolVar(&opts.page, "page", false, "Render a complete HTML document")
	flags.BoolVar(&opts.validate, "validate", false, "Validate the values before rendering")
	flags.StringVar(&opts.locale, "locale", "", "Locale used for validation messages")
	flags.StringVar(&opts.messagesDir, "messages", "", "Directory of message catalogs (JSON or YAML)")
	flags.StringVar(&opts.out, "out", "", "Write the HTML to this file")
	flags.StringVar(&opts.title, "title", "", "Page title")
	flags.StringVar(&opts.action, "action", "", "Form action URL")
	flags.StringVar(&opts.method, "method", "", "Form method (default post)")
	flags.StringVar(&opts.submit, "submit", "", "Submit button label")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	f, err := root.loadForm(cmd.Context())
	if err != nil {
		return err
	}

	if opts.values != "" {
		values := map[string]any{}
		if err := readYAML(opts.values, &values); err != nil {
			return err
		}
		if err := f.SetValues(values); err != nil {
			return err
		}
		root.logger.Printf("applied values from %s", opts.values)
	}
	if opts.validate && !f.Validate() {
		root.logger.Printf("form has %d invalid fields", len(f.Errors()))
	}
	if opts.errors != "" {
		payload, err := readErrors(opts.errors)
		if err != nil {
			return err
		}
		if formLevel := form.ApplyErrors(f, payload); len(formLevel) > 0 {
			root.logger.Printf("%d messages did not match a field", len(formLevel))
		}
	}

	formatter, err := opts.formatter()
	if err != nil {
		return err
	}
	renderOpts, stylesheet, err := opts.skinOptions()
	if err != nil {
		return err
	}
	r := render.New(f, formatter, renderOpts...)

	w, closeOut, err := output(cmd, opts.out)
	if err != nil {
		return err
	}
	defer closeOut()

	page := htmlform.PageOptions{
		Title:      opts.title,
		Lang:       opts.locale,
		Action:     opts.action,
		Method:     opts.method,
		Submit:     opts.submit,
		Stylesheet: stylesheet,
	}

	if opts.template != "" || opts.templatesDir != "" {
		var engineOpts []gotemplate.Option
		if opts.templatesDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(opts.templatesDir))
		}
		engine, err := htmlform.NewEngine(engineOpts...)
		if err != nil {
			return err
		}
		_, err = htmlform.RenderTemplate(engine, opts.templateName(), r, page, w)
		return err
	}
	if opts.page {
		_, err = htmlform.RenderPage(r, page, w)
		return err
	}
	_, err = htmlform.RenderForm(r, page, w)
	return err
}

func (o *renderOptions) templateName() string {
	switch {
	case o.template != "":
		return o.template
	case o.page:
		return htmlform.TemplatePage
	default:
		return htmlform.TemplateForm
	}
}

func (o *renderOptions) formatter() (form.MessageFormatter, error) {
	var msgOpts []form.MessageOption
	if o.messagesDir != "" {
		catalogs, err := form.LoadMessagesFS(os.DirFS(o.messagesDir))
		if err != nil {
			return nil, err
		}
		msgOpts = append(msgOpts, form.WithCatalogs(catalogs))
	}
	if o.locale != "" {
		msgOpts = append(msgOpts, form.WithLocale(o.locale))
	}
	return form.NewMessages(msgOpts...), nil
}

func (o *renderOptions) skinOptions() ([]render.Option, string, error) {
	if o.skin != "" && o.theme != "" {
		return nil, "", errors.New("--skin and --theme are mutually exclusive")
	}
	if o.skin != "" {
		skin, err := skins.Default().Get(o.skin)
		if err != nil {
			return nil, "", err
		}
		return []render.Option{render.WithSkin(skin)}, "", nil
	}
	if o.theme == "" && o.themesDir == "" {
		return nil, "", nil
	}

	themes, err := loadThemes(o.themesDir)
	if err != nil {
		return nil, "", err
	}
	skin, stylesheet, err := htmlform.ResolveTheme(themes, o.theme, o.variant)
	if err != nil {
		return nil, "", err
	}
	return []render.Option{render.WithSkin(skin)}, stylesheet, nil
}

func loadThemes(dir string) (*skins.Themes, error) {
	themes := skins.NewThemes()
	if dir == "" {
		return themes, nil
	}
	manifests, err := skins.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	for _, m := range manifests {
		if err := themes.Register(m); err != nil {
			return nil, err
		}
	}
	return themes, nil
}

func readYAML(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// readErrors accepts a single message or a list of messages per key.
func readErrors(path string) (map[string][]string, error) {
	raw := map[string]any{}
	if err := readYAML(path, &raw); err != nil {
		return nil, err
	}
	payload := make(map[string][]string, len(raw))
	for key, value := range raw {
		if message, ok := value.(string); ok {
			payload[key] = []string{message}
			continue
		}
		messages, err := cast.ToStringSliceE(value)
		if err != nil {
			return nil, fmt.Errorf("errors %s: %q: %w", path, key, err)
		}
		payload[key] = messages
	}
	return payload, nil
}
