package form

import (
	"net/url"
	"strings"
)

// HTMLName converts a field path into the bracketed name used by HTML form
// submissions: ["a", "b", "c"] becomes "a[b][c]".
func HTMLName(path []string) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(path[0])
	for _, segment := range path[1:] {
		b.WriteByte('[')
		b.WriteString(segment)
		b.WriteByte(']')
	}
	return b.String()
}

// ParseHTMLName splits a bracketed name back into path segments. The second
// result reports a trailing "[]" marker.
func ParseHTMLName(name string) ([]string, bool) {
	name = strings.TrimSpace(name)
	multi := strings.HasSuffix(name, "[]")
	name = strings.TrimSuffix(name, "[]")
	if name == "" {
		return nil, multi
	}

	head, rest, found := strings.Cut(name, "[")
	segments := []string{head}
	if !found {
		return segments, multi
	}
	for _, part := range strings.Split(rest, "[") {
		segment := strings.TrimSuffix(part, "]")
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return segments, multi
}

// Bind assigns submitted values to every field of f. Fields are looked up by
// their HTML name. Absent checkboxes and multi-value fields are cleared since
// browsers omit them when nothing is selected; other absent fields keep their
// current value.
func (f *Form) Bind(values url.Values) {
	Walk(f, func(path []string, field Field) {
		target, ok := field.(Settable)
		if !ok {
			return
		}
		name := HTMLName(path)
		multi := IsMulti(field.Value())

		submitted, present := values[name+"[]"]
		if !present {
			submitted, present = values[name]
		}

		switch {
		case !present && multi:
			target.SetValue([]string{})
		case !present:
			if _, isBool := field.(*BooleanInput); isBool {
				target.SetValue(false)
			}
		case multi:
			target.SetValue(append([]string{}, submitted...))
		case len(submitted) > 0:
			target.SetValue(submitted[0])
		default:
			target.SetValue("")
		}
	})
}
