package form

import (
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
)

// MessageFormatter turns validation errors into user facing text.
type MessageFormatter interface {
	Format(err *ValidationError) string
}

// Translator resolves a message key for a locale. Implementations return an
// error when the key is unknown so the formatter can fall back to its catalog.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler is invoked when a translator fails for a key.
type MissingTranslationHandler func(locale, key string, err error)

// Catalog maps error codes to message templates. Templates may reference
// params as {name}.
type Catalog map[ErrorCode]string

// DefaultCatalog holds the English messages used when nothing else matches.
var DefaultCatalog = Catalog{
	CodeEmpty:        "This field is required.",
	CodeInvalid:      "The value is invalid.",
	CodeInvalidEmail: "Enter a valid email address.",
	CodeInvalidURL:   "Enter a valid URL.",
	CodeTooShort:     "Enter at least {min} characters.",
	CodeTooLong:      "Enter no more than {max} characters.",
	CodeTooSmall:     "Enter a value greater than or equal to {min}.",
	CodeTooLarge:     "Enter a value less than or equal to {max}.",
	CodeNotInteger:   "Enter a whole number.",
	CodeNotInOptions: "Select a valid option.",
}

// MessageOption configures a Messages formatter.
type MessageOption func(*Messages)

// WithLocale selects the catalog and translator locale.
func WithLocale(locale string) MessageOption {
	return func(m *Messages) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			m.locale = trimmed
		}
	}
}

// WithCatalog registers the catalog for a locale. Entries override the
// defaults key by key.
func WithCatalog(locale string, catalog Catalog) MessageOption {
	return func(m *Messages) {
		locale = strings.TrimSpace(locale)
		if locale == "" || len(catalog) == 0 {
			return
		}
		merged := m.catalogs[locale]
		if merged == nil {
			merged = make(Catalog, len(catalog))
		}
		for code, text := range catalog {
			merged[code] = text
		}
		m.catalogs[locale] = merged
	}
}

// WithCatalogs registers several locales at once, typically from LoadMessagesFS.
func WithCatalogs(catalogs map[string]Catalog) MessageOption {
	return func(m *Messages) {
		for _, locale := range sortedKeys(catalogs) {
			WithCatalog(locale, catalogs[locale])(m)
		}
	}
}

// WithTranslator routes lookups through t before the catalogs are consulted.
// Keys are prefixed, for example "htmlform.error.too_long".
func WithTranslator(t Translator) MessageOption {
	return func(m *Messages) {
		m.translator = t
	}
}

// WithMissingTranslation installs a hook for translator misses.
func WithMissingTranslation(handler MissingTranslationHandler) MessageOption {
	return func(m *Messages) {
		m.onMissing = handler
	}
}

// TranslationKeyPrefix is prepended to error codes for translator lookups.
const TranslationKeyPrefix = "htmlform.error."

// Messages is the default MessageFormatter.
type Messages struct {
	locale     string
	catalogs   map[string]Catalog
	translator Translator
	onMissing  MissingTranslationHandler
}

// NewMessages builds a formatter. Without options it renders DefaultCatalog.
func NewMessages(opts ...MessageOption) *Messages {
	m := &Messages{catalogs: make(map[string]Catalog)}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Locale returns the configured locale.
func (m *Messages) Locale() string {
	return m.locale
}

// Format renders err, returning "" for nil errors.
func (m *Messages) Format(err *ValidationError) string {
	if err == nil {
		return ""
	}
	if err.Code == CodeCustom || (err.Message != "" && err.Code == "") {
		return expand(err.Message, err.Params)
	}

	if m.translator != nil {
		key := TranslationKeyPrefix + string(err.Code)
		text, terr := m.translator.Translate(m.locale, key, err.Params)
		if terr == nil && text != "" && text != key {
			return expand(text, err.Params)
		}
		if m.onMissing != nil {
			m.onMissing(m.locale, key, terr)
		}
	}

	if err.Message != "" {
		return expand(err.Message, err.Params)
	}
	if catalog, ok := m.catalog(); ok {
		if text, ok := catalog[err.Code]; ok {
			return expand(text, err.Params)
		}
	}
	if text, ok := DefaultCatalog[err.Code]; ok {
		return expand(text, err.Params)
	}
	return string(err.Code)
}

// catalog returns the catalog for the locale, falling back to one that shares
// its base language ("pt-BR" uses "pt").
func (m *Messages) catalog() (Catalog, bool) {
	if catalog, ok := m.catalogs[m.locale]; ok {
		return catalog, true
	}
	want, err := language.Parse(m.locale)
	if err != nil {
		return nil, false
	}
	base, _ := want.Base()
	for _, locale := range sortedKeys(m.catalogs) {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		if candidate, _ := tag.Base(); candidate == base {
			return m.catalogs[locale], true
		}
	}
	return nil, false
}

func expand(template string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, len(params)*2)
	for _, key := range sortedKeys(params) {
		pairs = append(pairs, "{"+key+"}", cast.ToString(params[key]))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
