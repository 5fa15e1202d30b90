package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-htmlform/pkg/form"
)

var (
	// ErrEmptyPath is returned for a path without segments.
	ErrEmptyPath = errors.New("render: empty path")
	// ErrItemNotFound is returned when a segment names no child.
	ErrItemNotFound = errors.New("render: item not found")
	// ErrNotContainer is returned when traversal continues below a leaf.
	ErrNotContainer = errors.New("render: item is not a container")
	// ErrNotField is returned when the path ends on a container.
	ErrNotField = errors.New("render: item is not a field")
)

// Path addresses a field inside nested containers, outermost segment first.
type Path []string

// P builds a path from slash separated strings. Each part may contain several
// segments: P("address/city") equals P("address", "city"). Empty segments are
// dropped. Use a Path literal to keep a slash inside a segment.
func P(parts ...string) Path {
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		for _, segment := range strings.Split(part, "/") {
			if segment = strings.TrimSpace(segment); segment != "" {
				out = append(out, segment)
			}
		}
	}
	return out
}

// String joins the segments with "/".
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Child returns a new path with extra segments appended.
func (p Path) Child(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	return append(out, segments...)
}

// MakeName returns the HTML name for p: the first segment followed by each
// remaining segment in brackets.
func MakeName(p Path) string {
	return form.HTMLName(p)
}

// PathError reports a failed path resolution.
type PathError struct {
	Path    Path
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("%v: %q in path %q", e.Err, e.Segment, e.Path.String())
	}
	return fmt.Sprintf("%v: path %q", e.Err, e.Path.String())
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Resolve walks root one segment at a time and returns the field at p.
func Resolve(root form.Container, p Path) (form.Field, error) {
	if len(p) == 0 {
		return nil, &PathError{Path: p, Err: ErrEmptyPath}
	}

	var current form.Item = root
	for _, segment := range p {
		container, ok := current.(form.Container)
		if !ok || container == nil {
			return nil, &PathError{Path: p, Segment: segment, Err: ErrNotContainer}
		}
		next, found := container.Get(segment)
		if !found || next == nil {
			return nil, &PathError{Path: p, Segment: segment, Err: ErrItemNotFound}
		}
		current = next
	}

	field, ok := current.(form.Field)
	if !ok {
		return nil, &PathError{Path: p, Err: ErrNotField}
	}
	return field, nil
}
