package form

import (
	"fmt"
	"sort"
	"strings"
)

// Item is anything that can be stored inside a form.
type Item interface {
	Validate() bool
}

// Container is an item that holds named children.
type Container interface {
	Item
	Get(name string) (Item, bool)
	Names() []string
}

// Field is a leaf item carrying a value and validation state.
type Field interface {
	Item
	Value() any
	Err() *ValidationError
	Required() bool
	ReadOnly() bool
	Disabled() bool
}

// Settable fields accept new values and externally supplied errors.
type Settable interface {
	SetValue(value any)
	SetErr(err *ValidationError)
}

// Option is a selectable value/label pair.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// HasOptions is implemented by fields with an option list.
type HasOptions interface {
	Options() []Option
	SelectedLabels() []string
}

// HasLengthRange is implemented by fields with a character length range.
// MaxLength returns math.MaxInt when unbounded.
type HasLengthRange interface {
	MinLength() int
	MaxLength() int
}

// HasNumericRange is implemented by fields with a numeric range. Unbounded
// ends are reported as math.Inf.
type HasNumericRange interface {
	Min() float64
	Max() float64
}

// HasInputType is implemented by fields that prefer a specific input type.
type HasInputType interface {
	InputType() string
}

// HasLabel is implemented by fields with a human readable label.
type HasLabel interface {
	Label() string
}

// Form is an ordered container of named items.
type Form struct {
	names  []string
	items  map[string]Item
	errors []string
}

// New returns an empty form.
func New() *Form {
	return &Form{items: make(map[string]Item)}
}

// Add stores an item under name. Adding a name twice replaces the item and
// keeps its original position.
func (f *Form) Add(name string, item Item) *Form {
	name = strings.TrimSpace(name)
	if name == "" || item == nil {
		return f
	}
	if f.items == nil {
		f.items = make(map[string]Item)
	}
	if _, exists := f.items[name]; !exists {
		f.names = append(f.names, name)
	}
	f.items[name] = item
	return f
}

// Get returns the named child.
func (f *Form) Get(name string) (Item, bool) {
	if f == nil {
		return nil, false
	}
	item, ok := f.items[name]
	return item, ok
}

// Names returns child names in insertion order.
func (f *Form) Names() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.names...)
}

// Validate validates every child and reports whether all of them passed.
// Every child is visited so each field carries its own error afterwards.
func (f *Form) Validate() bool {
	valid := true
	for _, name := range f.names {
		if !f.items[name].Validate() {
			valid = false
		}
	}
	return valid
}

// Errors returns field errors keyed by slash separated path.
func (f *Form) Errors() map[string]*ValidationError {
	out := make(map[string]*ValidationError)
	Walk(f, func(path []string, field Field) {
		if err := field.Err(); err != nil {
			out[strings.Join(path, "/")] = err
		}
	})
	return out
}

// AddError records a form-level message that belongs to no field.
func (f *Form) AddError(messages ...string) {
	f.errors = normalizeMessages(append(f.errors, messages...))
}

// FormErrors returns form-level messages.
func (f *Form) FormErrors() []string {
	return append([]string(nil), f.errors...)
}

// Values returns the current values as a nested map.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.names))
	for _, name := range f.names {
		switch item := f.items[name].(type) {
		case *Form:
			out[name] = item.Values()
		case Field:
			out[name] = item.Value()
		}
	}
	return out
}

// SetValues assigns values from a nested map. Keys without a matching child
// are ignored; nested maps descend into nested forms.
func (f *Form) SetValues(values map[string]any) error {
	for key, raw := range values {
		item, ok := f.Get(key)
		if !ok {
			continue
		}
		switch target := item.(type) {
		case *Form:
			nested, err := toStringMap(raw)
			if err != nil {
				return fmt.Errorf("form: set %s: %w", key, err)
			}
			if err := target.SetValues(nested); err != nil {
				return fmt.Errorf("form: set %s: %w", key, err)
			}
		case Settable:
			target.SetValue(raw)
		}
	}
	return nil
}

// Walk visits every field depth first in insertion order.
func Walk(c Container, visit func(path []string, field Field)) {
	walk(c, nil, visit)
}

func walk(c Container, prefix []string, visit func(path []string, field Field)) {
	for _, name := range c.Names() {
		item, ok := c.Get(name)
		if !ok {
			continue
		}
		path := append(append([]string(nil), prefix...), name)
		switch v := item.(type) {
		case Container:
			walk(v, path, visit)
		case Field:
			visit(path, v)
		}
	}
}

func toStringMap(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = value
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected an object, got %T", raw)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
