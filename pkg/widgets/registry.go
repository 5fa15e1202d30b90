package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-htmlform/pkg/form"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText       = "text"
	WidgetTextarea   = "textarea"
	WidgetEmail      = "email"
	WidgetURL        = "url"
	WidgetTel        = "tel"
	WidgetPassword   = "password"
	WidgetNumber     = "number"
	WidgetDate       = "date"
	WidgetFile       = "file"
	WidgetHidden     = "hidden"
	WidgetCheckbox   = "checkbox"
	WidgetCheckboxes = "checkboxes"
	WidgetRadios     = "radios"
	WidgetSelect     = "select"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field form.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. A widget pinned on the field
// is honoured before matcher evaluation.
func (r *Registry) Resolve(field form.Field) (string, bool) {
	if field == nil {
		return "", false
	}
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Assignment pairs a field path with its resolved widget.
type Assignment struct {
	Path   []string
	Name   string
	Widget string
}

// Assign resolves a widget for every field of c in form order.
func (r *Registry) Assign(c form.Container) []Assignment {
	var out []Assignment
	form.Walk(c, func(path []string, field form.Field) {
		widget, _ := r.Resolve(field)
		out = append(out, Assignment{Path: path, Name: form.HTMLName(path), Widget: widget})
	})
	return out
}

type widgetHint interface {
	Widget() string
}

func explicitWidget(field form.Field) string {
	if hinted, ok := field.(widgetHint); ok {
		return strings.TrimSpace(hinted.Widget())
	}
	return ""
}

func inputType(field form.Field) string {
	if typed, ok := field.(form.HasInputType); ok {
		return strings.ToLower(strings.TrimSpace(typed.InputType()))
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, func(field form.Field) bool {
		_, ok := field.(*form.BooleanInput)
		return ok
	})

	r.Register(WidgetSelect, 80, func(field form.Field) bool {
		_, ok := field.(form.HasOptions)
		return ok
	})

	r.Register(WidgetTextarea, 70, func(field form.Field) bool {
		multi, ok := field.(interface{ Multiline() bool })
		return ok && multi.Multiline()
	})

	for _, name := range []string{WidgetFile, WidgetEmail, WidgetURL, WidgetTel, WidgetPassword, WidgetNumber, WidgetDate, WidgetHidden} {
		name := name
		r.Register(name, 60, func(field form.Field) bool {
			return inputType(field) == name
		})
	}

	r.Register(WidgetText, 0, func(form.Field) bool {
		return true
	})
}

// Names lists the built-in widget identifiers in alphabetical order.
func Names() []string {
	names := []string{
		WidgetCheckbox, WidgetCheckboxes, WidgetDate, WidgetEmail, WidgetFile,
		WidgetHidden, WidgetNumber, WidgetPassword, WidgetRadios, WidgetSelect,
		WidgetTel, WidgetText, WidgetTextarea, WidgetURL,
	}
	sort.Strings(names)
	return names
}
