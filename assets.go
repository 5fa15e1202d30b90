package htmlform

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in page and form templates so callers can
// render them with their own engine or override them file by file.
//
//	engine, _ := gotemplate.New(gotemplate.WithFS(htmlform.TemplatesFS()))
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
