// Package markup builds HTML element trees with ordered attributes, class
// merging and escaped serialisation. Form widgets are returned as *Node values
// so callers can adjust attributes before writing them out.
package markup
