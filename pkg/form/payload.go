package form

import (
	"strconv"
	"strings"
)

// ApplyErrors attaches server side error payloads to the matching fields as
// custom errors. Keys may be JSON pointers, dotted, slashed or bracketed
// paths and may carry wrapper segments such as "body" or "data". Messages for
// unknown paths are returned as form-level messages and also recorded on f.
func ApplyErrors(f *Form, payload map[string][]string) []string {
	if f == nil || len(payload) == 0 {
		return nil
	}

	fields := make(map[string]Field)
	Walk(f, func(path []string, field Field) {
		fields[strings.Join(path, ".")] = field
	})

	var formLevel []string
	for _, rawPath := range sortedKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}

		mapped, isForm := mapErrorPath(rawPath, fields)
		if isForm {
			formLevel = append(formLevel, messages...)
			continue
		}
		target, ok := fields[mapped].(Settable)
		if !ok {
			formLevel = append(formLevel, messages...)
			continue
		}
		if existing := fields[mapped].Err(); existing != nil && existing.Code == CodeCustom {
			messages = normalizeMessages(append([]string{existing.Message}, messages...))
		}
		target.SetErr(Custom(strings.Join(messages, " ")))
	}

	formLevel = normalizeMessages(formLevel)
	if len(formLevel) > 0 {
		f.AddError(formLevel...)
	}
	return formLevel
}

func mapErrorPath(raw string, fields map[string]Field) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", true
	}

	best := ""
	for _, variant := range buildSegmentVariants(segments) {
		path := longestMatchingPath(variant, fields)
		if path == "" {
			continue
		}
		if best == "" || strings.Count(path, ".") > strings.Count(best, ".") {
			best = path
		}
	}

	if best != "" {
		return best, false
	}
	return "", true
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(key) {
	case "", "_", "*", "#", "/", "$", "form", "non_field_errors", "__all__", "_form", "global":
		return true
	default:
		return false
	}
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimLeft(clean, "#/.$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func buildSegmentVariants(segments []string) [][]string {
	var variants [][]string
	seen := make(map[string]struct{}, 4)

	add := func(candidate []string) {
		if len(candidate) == 0 {
			return
		}
		key := strings.Join(candidate, ".")
		if _, exists := seen[key]; exists {
			return
		}
		seen[key] = struct{}{}
		variants = append(variants, append([]string(nil), candidate...))
	}

	add(segments)
	noWrappers := dropWrapperSegments(segments)
	add(noWrappers)
	add(stripNumericSegments(segments))
	add(stripNumericSegments(noWrappers))

	return variants
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func longestMatchingPath(segments []string, fields map[string]Field) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := fields[candidate]; ok {
			return candidate
		}
	}
	return ""
}
