package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/widgets"
)

// Option configures Fill.
type Option func(*filler)

// WithFormatter sets the formatter used for validation messages.
func WithFormatter(formatter form.MessageFormatter) Option {
	return func(f *filler) {
		if formatter != nil {
			f.formatter = formatter
		}
	}
}

// WithWidgets sets the registry that picks a prompt per field.
func WithWidgets(reg *widgets.Registry) Option {
	return func(f *filler) {
		if reg != nil {
			f.widgets = reg
		}
	}
}

type filler struct {
	driver    Driver
	formatter form.MessageFormatter
	widgets   *widgets.Registry
}

type settableField interface {
	form.Field
	form.Settable
}

// Fill asks for every editable field of c in order. Text answers are
// validated while typing; read only, disabled and file fields are skipped.
func Fill(ctx context.Context, c form.Container, driver Driver, opts ...Option) error {
	if driver == nil {
		return ErrNoDriver
	}
	f := &filler{
		driver:    driver,
		formatter: form.NewMessages(),
		widgets:   widgets.NewRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	var err error
	form.Walk(c, func(path []string, field form.Field) {
		if err != nil {
			return
		}
		err = f.ask(ctx, path, field)
	})
	return err
}

func (f *filler) ask(ctx context.Context, path []string, field form.Field) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, ok := field.(settableField)
	if !ok || field.ReadOnly() || field.Disabled() {
		return nil
	}

	widget, _ := f.widgets.Resolve(field)
	message := label(path, field)

	switch widget {
	case widgets.WidgetFile:
		return f.driver.Info(ctx, fmt.Sprintf("%s: file uploads are skipped", message))
	case widgets.WidgetCheckbox:
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: form.Truthy(field.Value())})
		if err != nil {
			return err
		}
		target.SetValue(answer)
	case widgets.WidgetSelect, widgets.WidgetRadios, widgets.WidgetCheckboxes:
		if err := f.choose(ctx, message, target); err != nil {
			return err
		}
	default:
		cfg := InputConfig{
			Message:   message,
			Default:   first(form.Strings(field.Value())),
			Validator: f.validator(target),
		}
		var (
			answer string
			err    error
		)
		switch widget {
		case widgets.WidgetPassword:
			answer, err = f.driver.Password(ctx, cfg)
		case widgets.WidgetTextarea:
			answer, err = f.driver.TextArea(ctx, cfg)
		default:
			answer, err = f.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		target.SetValue(answer)
	}

	if !target.Validate() {
		return fmt.Errorf("prompt: %s: %s", strings.Join(path, "/"), f.formatter.Format(target.Err()))
	}
	return nil
}

func (f *filler) choose(ctx context.Context, message string, target settableField) error {
	options, ok := target.(form.HasOptions)
	if !ok {
		return fmt.Errorf("prompt: %s: field has no options", message)
	}
	list := options.Options()
	labels := make([]string, len(list))
	for i, option := range list {
		labels[i] = option.Label
	}
	current := form.Strings(target.Value())

	if form.IsMulti(target.Value()) {
		var defaults []int
		for i, option := range list {
			for _, value := range current {
				if option.Value == value {
					defaults = append(defaults, i)
				}
			}
		}
		picked, err := f.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, Defaults: defaults})
		if err != nil {
			return err
		}
		values := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(list) {
				values = append(values, list[idx].Value)
			}
		}
		target.SetValue(values)
		return nil
	}

	defaultIndex := -1
	for i, option := range list {
		if len(current) > 0 && option.Value == current[0] {
			defaultIndex = i
		}
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIndex})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(list) {
		return fmt.Errorf("prompt: %s: no option selected", message)
	}
	target.SetValue(list[idx].Value)
	return nil
}

// validator checks an answer against the field and restores the previous
// value afterwards, so the prompt can reject input before it is committed.
func (f *filler) validator(target settableField) func(string) error {
	return func(answer string) error {
		previous := target.Value()
		defer func() {
			target.SetValue(previous)
			target.SetErr(nil)
		}()
		target.SetValue(answer)
		if target.Validate() {
			return nil
		}
		return errors.New(f.formatter.Format(target.Err()))
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func label(path []string, field form.Field) string {
	if l, ok := field.(form.HasLabel); ok {
		if text := strings.TrimSpace(l.Label()); text != "" {
			return text
		}
	}
	return strings.Join(path, ".")
}
