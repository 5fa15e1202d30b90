// Package skins maps go-theme manifests onto render.Skin values.
//
// A manifest carries htmlform.* tokens holding CSS class names. Variants
// override individual tokens, so Bootstrap 4 and 5 live in a single
// "bootstrap" manifest that differs only in the file and select classes.
// Manifests can be loaded from JSON or YAML files with LoadFS.
package skins
