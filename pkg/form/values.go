package form

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// IsEmpty reports whether a value counts as not supplied: nil, the empty
// string or an empty slice.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// IsMulti reports whether a value holds a list of values.
func IsMulti(value any) bool {
	switch value.(type) {
	case []string, []any:
		return true
	case nil, string, []byte:
		return false
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// Strings converts scalar or list values into their string forms. A scalar
// yields a single element; nil yields none.
func Strings(value any) []string {
	if value == nil {
		return nil
	}
	if !IsMulti(value) {
		return []string{cast.ToString(value)}
	}
	if values, ok := value.([]string); ok {
		return append([]string(nil), values...)
	}
	rv := reflect.ValueOf(value)
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, cast.ToString(rv.Index(i).Interface()))
	}
	return out
}

// Truthy follows form submission conventions: false, nil, zero, "", "0",
// "false" and "off" are false; everything else is true.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "off":
			return false
		}
		return true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return cast.ToFloat64(v) != 0
	}
	if IsMulti(value) {
		return reflect.ValueOf(value).Len() > 0
	}
	return true
}
