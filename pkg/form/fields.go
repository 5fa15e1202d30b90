package form

import (
	"math"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// FieldOption configures the state shared by every field type.
type FieldOption func(*Base)

// Required marks the field as mandatory.
func Required() FieldOption {
	return func(b *Base) { b.required = true }
}

// ReadOnly marks the field as read only.
func ReadOnly() FieldOption {
	return func(b *Base) { b.readOnly = true }
}

// Disabled marks the field as disabled.
func Disabled() FieldOption {
	return func(b *Base) { b.disabled = true }
}

// WithLabel sets the human readable label.
func WithLabel(label string) FieldOption {
	return func(b *Base) { b.label = strings.TrimSpace(label) }
}

// WithWidget pins the widget used when the field is rendered automatically.
func WithWidget(name string) FieldOption {
	return func(b *Base) { b.widget = strings.TrimSpace(name) }
}

// WithValue sets the initial value through the field's own SetValue.
func WithValue(value any) FieldOption {
	return func(b *Base) {
		b.initial = value
		b.hasInitial = true
	}
}

// Base holds the state shared by all fields.
type Base struct {
	value    any
	err      *ValidationError
	required bool
	readOnly bool
	disabled bool
	label    string
	widget   string

	initial    any
	hasInitial bool
}

func (b *Base) Value() any                  { return b.value }
func (b *Base) Err() *ValidationError       { return b.err }
func (b *Base) SetErr(err *ValidationError) { b.err = err }
func (b *Base) Required() bool              { return b.required }
func (b *Base) ReadOnly() bool              { return b.readOnly }
func (b *Base) Disabled() bool              { return b.disabled }
func (b *Base) Label() string               { return b.label }

// Widget returns the pinned widget name, if any.
func (b *Base) Widget() string { return b.widget }

// SetRequired toggles the required flag.
func (b *Base) SetRequired(required bool) { b.required = required }

func (b *Base) finish(err *ValidationError) bool {
	b.err = err
	return err == nil
}

func configure(b *Base, target Settable, opts []FieldOption) {
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.hasInitial {
		target.SetValue(b.initial)
		b.initial = nil
		b.hasInitial = false
	}
}

// TextInput is a single or multi line text field.
type TextInput struct {
	Base
	minLength int
	maxLength int
	multiline bool
	pattern   *regexp.Regexp
	inputType string
}

// NewText returns a single line text field.
func NewText(opts ...FieldOption) *TextInput {
	return newText("text", opts)
}

// NewTextarea returns a multi line text field.
func NewTextarea(opts ...FieldOption) *TextInput {
	t := newText("text", opts)
	t.multiline = true
	return t
}

// NewTel returns a telephone number field.
func NewTel(opts ...FieldOption) *TextInput {
	return newText("tel", opts)
}

// NewPassword returns a password field.
func NewPassword(opts ...FieldOption) *TextInput {
	return newText("password", opts)
}

func newText(inputType string, opts []FieldOption) *TextInput {
	t := &TextInput{maxLength: math.MaxInt, inputType: inputType}
	t.value = ""
	configure(&t.Base, t, opts)
	return t
}

func (t *TextInput) SetValue(value any) {
	if value == nil {
		t.value = ""
		return
	}
	t.value = cast.ToString(value)
}

// SetLength sets the accepted rune count range. A max of zero or less means
// unbounded.
func (t *TextInput) SetLength(min, max int) *TextInput {
	if min < 0 {
		min = 0
	}
	if max <= 0 {
		max = math.MaxInt
	}
	t.minLength = min
	t.maxLength = max
	return t
}

// SetMultiline switches between input and textarea rendering.
func (t *TextInput) SetMultiline(multiline bool) *TextInput {
	t.multiline = multiline
	return t
}

// SetPattern restricts values to those matching re.
func (t *TextInput) SetPattern(re *regexp.Regexp) *TextInput {
	t.pattern = re
	return t
}

func (t *TextInput) MinLength() int    { return t.minLength }
func (t *TextInput) MaxLength() int    { return t.maxLength }
func (t *TextInput) Multiline() bool   { return t.multiline }
func (t *TextInput) InputType() string { return t.inputType }

func (t *TextInput) Validate() bool {
	return t.finish(t.check())
}

func (t *TextInput) text() string {
	s, _ := t.value.(string)
	return s
}

func (t *TextInput) check() *ValidationError {
	s := t.text()
	if s == "" {
		if t.required {
			return NewError(CodeEmpty)
		}
		return nil
	}
	count := utf8.RuneCountInString(s)
	if count < t.minLength {
		return NewError(CodeTooShort, "min", t.minLength)
	}
	if count > t.maxLength {
		return NewError(CodeTooLong, "max", t.maxLength)
	}
	if t.pattern != nil && !t.pattern.MatchString(s) {
		return NewError(CodeInvalid)
	}
	return nil
}

// EmailInput is a text field that only accepts a bare email address.
type EmailInput struct {
	TextInput
}

// NewEmail returns an email field.
func NewEmail(opts ...FieldOption) *EmailInput {
	e := &EmailInput{TextInput: TextInput{maxLength: math.MaxInt, inputType: "email"}}
	e.value = ""
	configure(&e.Base, e, opts)
	return e
}

func (e *EmailInput) Validate() bool {
	if err := e.check(); err != nil {
		return e.finish(err)
	}
	s := e.text()
	if s == "" {
		return e.finish(nil)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return e.finish(NewError(CodeInvalidEmail))
	}
	return e.finish(nil)
}

// URLInput is a text field that only accepts absolute URLs.
type URLInput struct {
	TextInput
}

// NewURL returns a URL field.
func NewURL(opts ...FieldOption) *URLInput {
	u := &URLInput{TextInput: TextInput{maxLength: math.MaxInt, inputType: "url"}}
	u.value = ""
	configure(&u.Base, u, opts)
	return u
}

func (u *URLInput) Validate() bool {
	if err := u.check(); err != nil {
		return u.finish(err)
	}
	s := u.text()
	if s == "" {
		return u.finish(nil)
	}
	parsed, err := url.ParseRequestURI(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return u.finish(NewError(CodeInvalidURL))
	}
	return u.finish(nil)
}

// NumberInput accepts decimal numbers within an optional range.
type NumberInput struct {
	Base
	min     float64
	max     float64
	integer bool
}

// NewNumber returns a decimal number field.
func NewNumber(opts ...FieldOption) *NumberInput {
	n := &NumberInput{min: math.Inf(-1), max: math.Inf(1)}
	n.value = ""
	configure(&n.Base, n, opts)
	return n
}

// NewInteger returns a number field that rejects fractional values.
func NewInteger(opts ...FieldOption) *NumberInput {
	n := &NumberInput{min: math.Inf(-1), max: math.Inf(1), integer: true}
	n.value = ""
	configure(&n.Base, n, opts)
	return n
}

func (n *NumberInput) SetValue(value any) {
	switch v := value.(type) {
	case nil:
		n.value = ""
	case string:
		n.value = strings.TrimSpace(v)
	default:
		n.value = v
	}
}

// SetRange sets both bounds; use math.Inf for an open end.
func (n *NumberInput) SetRange(min, max float64) *NumberInput {
	n.min = min
	n.max = max
	return n
}

func (n *NumberInput) SetMin(min float64) *NumberInput {
	n.min = min
	return n
}

func (n *NumberInput) SetMax(max float64) *NumberInput {
	n.max = max
	return n
}

func (n *NumberInput) Min() float64      { return n.min }
func (n *NumberInput) Max() float64      { return n.max }
func (n *NumberInput) Integer() bool     { return n.integer }
func (n *NumberInput) InputType() string { return "number" }

// Float returns the parsed value, or 0 when the value is empty or invalid.
func (n *NumberInput) Float() float64 {
	f, _ := cast.ToFloat64E(n.value)
	return f
}

func (n *NumberInput) Validate() bool {
	if IsEmpty(n.value) {
		if n.required {
			return n.finish(NewError(CodeEmpty))
		}
		return n.finish(nil)
	}
	f, err := cast.ToFloat64E(n.value)
	if err != nil || math.IsNaN(f) {
		if n.integer {
			return n.finish(NewError(CodeNotInteger))
		}
		return n.finish(NewError(CodeInvalid))
	}
	if n.integer && f != math.Trunc(f) {
		return n.finish(NewError(CodeNotInteger))
	}
	if f < n.min {
		return n.finish(NewError(CodeTooSmall, "min", n.min))
	}
	if f > n.max {
		return n.finish(NewError(CodeTooLarge, "max", n.max))
	}
	return n.finish(nil)
}

// DateInput accepts calendar dates.
type DateInput struct {
	Base
}

// NewDate returns a date field.
func NewDate(opts ...FieldOption) *DateInput {
	d := &DateInput{}
	d.value = ""
	configure(&d.Base, d, opts)
	return d
}

func (d *DateInput) SetValue(value any) {
	if value == nil {
		d.value = ""
		return
	}
	d.value = strings.TrimSpace(cast.ToString(value))
}

func (d *DateInput) InputType() string { return "date" }

func (d *DateInput) Validate() bool {
	s, _ := d.value.(string)
	if s == "" {
		if d.required {
			return d.finish(NewError(CodeEmpty))
		}
		return d.finish(nil)
	}
	if _, err := cast.StringToDate(s); err != nil {
		return d.finish(NewError(CodeInvalid))
	}
	return d.finish(nil)
}

// BooleanInput is a single on/off checkbox.
type BooleanInput struct {
	Base
}

// NewBoolean returns a boolean field.
func NewBoolean(opts ...FieldOption) *BooleanInput {
	b := &BooleanInput{}
	b.value = false
	configure(&b.Base, b, opts)
	return b
}

func (b *BooleanInput) SetValue(value any) {
	if value == nil {
		b.value = false
		return
	}
	b.value = value
}

// Checked reports whether the current value is truthy.
func (b *BooleanInput) Checked() bool     { return Truthy(b.value) }
func (b *BooleanInput) InputType() string { return "checkbox" }

func (b *BooleanInput) Validate() bool {
	if b.required && !Truthy(b.value) {
		return b.finish(NewError(CodeEmpty))
	}
	return b.finish(nil)
}

// Select picks a single value from a list of options.
type Select struct {
	Base
	options []Option
}

// NewSelect returns a single choice field.
func NewSelect(options []Option, opts ...FieldOption) *Select {
	s := &Select{options: append([]Option(nil), options...)}
	s.value = ""
	configure(&s.Base, s, opts)
	return s
}

func (s *Select) SetValue(value any) {
	if value == nil {
		s.value = ""
		return
	}
	s.value = cast.ToString(value)
}

// SetOptions replaces the option list.
func (s *Select) SetOptions(options ...Option) *Select {
	s.options = append([]Option(nil), options...)
	return s
}

func (s *Select) Options() []Option {
	return append([]Option(nil), s.options...)
}

func (s *Select) SelectedLabels() []string {
	value, _ := s.value.(string)
	if value == "" {
		return nil
	}
	if label, ok := labelFor(s.options, value); ok {
		return []string{label}
	}
	return nil
}

func (s *Select) Validate() bool {
	value, _ := s.value.(string)
	if value == "" {
		if s.required {
			return s.finish(NewError(CodeEmpty))
		}
		return s.finish(nil)
	}
	if _, ok := labelFor(s.options, value); !ok {
		return s.finish(NewError(CodeNotInOptions))
	}
	return s.finish(nil)
}

// MultiSelect picks any number of values from a list of options.
type MultiSelect struct {
	Base
	options []Option
}

// NewMultiSelect returns a multiple choice field.
func NewMultiSelect(options []Option, opts ...FieldOption) *MultiSelect {
	m := &MultiSelect{options: append([]Option(nil), options...)}
	m.value = []string{}
	configure(&m.Base, m, opts)
	return m
}

func (m *MultiSelect) SetValue(value any) {
	m.value = toStrings(value)
}

// SetOptions replaces the option list.
func (m *MultiSelect) SetOptions(options ...Option) *MultiSelect {
	m.options = append([]Option(nil), options...)
	return m
}

// Values returns the selected values.
func (m *MultiSelect) Values() []string {
	values, _ := m.value.([]string)
	return append([]string{}, values...)
}

func (m *MultiSelect) Options() []Option {
	return append([]Option(nil), m.options...)
}

func (m *MultiSelect) SelectedLabels() []string {
	var out []string
	for _, value := range m.Values() {
		if label, ok := labelFor(m.options, value); ok {
			out = append(out, label)
		}
	}
	return out
}

func (m *MultiSelect) Validate() bool {
	values := m.Values()
	if len(values) == 0 {
		if m.required {
			return m.finish(NewError(CodeEmpty))
		}
		return m.finish(nil)
	}
	for _, value := range values {
		if _, ok := labelFor(m.options, value); !ok {
			return m.finish(NewError(CodeNotInOptions))
		}
	}
	return m.finish(nil)
}

// FileInput holds the name of an uploaded file.
type FileInput struct {
	Base
}

// NewFile returns a file upload field.
func NewFile(opts ...FieldOption) *FileInput {
	f := &FileInput{}
	f.value = ""
	configure(&f.Base, f, opts)
	return f
}

func (f *FileInput) SetValue(value any) {
	if value == nil {
		f.value = ""
		return
	}
	f.value = cast.ToString(value)
}

func (f *FileInput) InputType() string { return "file" }

func (f *FileInput) Validate() bool {
	if f.required && IsEmpty(f.value) {
		return f.finish(NewError(CodeEmpty))
	}
	return f.finish(nil)
}

// OptionsOf builds options from alternating value/label pairs. A trailing
// value without a label uses the value as its label.
func OptionsOf(pairs ...string) []Option {
	out := make([]Option, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		value := pairs[i]
		label := value
		if i+1 < len(pairs) {
			label = pairs[i+1]
		}
		out = append(out, Option{Value: value, Label: label})
	}
	return out
}

func labelFor(options []Option, value string) (string, bool) {
	for _, option := range options {
		if option.Value == value {
			return option.Label, true
		}
	}
	return "", false
}

func toStrings(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	case []string:
		return append([]string{}, v...)
	default:
		values, err := cast.ToStringSliceE(v)
		if err != nil {
			return []string{cast.ToString(v)}
		}
		return values
	}
}
