// Package template defines the engine contract used to render forms from
// template files. The gotemplate subpackage provides a pongo2 implementation
// and exposes the renderer's widgets as template functions.
package template
