// Package gotemplate renders forms through pongo2 templates.
//
// Engine loads templates from a directory or an fs.FS. RenderForm binds the
// widget functions of a render.Renderer into the template context so that a
// template can place each control where it wants:
//
//	<label>Name {{ input_text("name") }}</label>
//	{{ error("name") }}
package gotemplate
