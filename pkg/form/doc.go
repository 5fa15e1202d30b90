// Package form provides the field model rendered by pkg/render: ordered
// containers, typed fields with validation, error codes, message formatting
// and binding of submitted values.
//
// The renderer only depends on the Container, Field and capability
// interfaces, so applications can plug their own model in instead.
package form
