package form

import (
	"strings"
)

// ErrorCode identifies a validation failure.
type ErrorCode string

const (
	CodeEmpty        ErrorCode = "empty"
	CodeInvalid      ErrorCode = "invalid"
	CodeInvalidEmail ErrorCode = "invalid_email"
	CodeInvalidURL   ErrorCode = "invalid_url"
	CodeTooShort     ErrorCode = "too_short"
	CodeTooLong      ErrorCode = "too_long"
	CodeTooSmall     ErrorCode = "too_small"
	CodeTooLarge     ErrorCode = "too_large"
	CodeNotInteger   ErrorCode = "not_integer"
	CodeNotInOptions ErrorCode = "not_in_options"
	CodeCustom       ErrorCode = "custom"
)

// ValidationError describes why a field value was rejected. Message is only
// used for CodeCustom errors or as an override for the formatter.
type ValidationError struct {
	Code    ErrorCode
	Params  map[string]any
	Message string
}

// NewError builds a validation error with optional key/value params.
func NewError(code ErrorCode, kv ...any) *ValidationError {
	err := &ValidationError{Code: code}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		if err.Params == nil {
			err.Params = make(map[string]any, len(kv)/2)
		}
		err.Params[key] = kv[i+1]
	}
	return err
}

// Custom builds an error with a literal message.
func Custom(message string) *ValidationError {
	return &ValidationError{Code: CodeCustom, Message: strings.TrimSpace(message)}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "form: " + string(e.Code)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeMessages trims messages, drops blanks and removes duplicates while
// preserving order.
func NormalizeMessages(messages []string) []string {
	return normalizeMessages(messages)
}
