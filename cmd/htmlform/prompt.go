package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-htmlform/internal/prompt"
	"github.com/goliatone/go-htmlform/pkg/form"
)

// newDriver is replaced in tests.
var newDriver = func(cmd *cobra.Command) prompt.Driver {
	return prompt.NewSurveyDriver(cmd.ErrOrStderr())
}

func newPromptCmd(root *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the form interactively and print the collected values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := root.loadForm(cmd.Context())
			if err != nil {
				return err
			}
			if err := prompt.Fill(cmd.Context(), f, newDriver(cmd)); err != nil {
				return err
			}

			w, closeOut, err := output(cmd, out)
			if err != nil {
				return err
			}
			defer closeOut()
			return writeValues(w, f, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, yaml or form (urlencoded)")
	cmd.Flags().StringVar(&out, "out", "", "Write the values to this file")
	return cmd
}

func writeValues(w io.Writer, f *form.Form, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f.Values())
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f.Values()); err != nil {
			return err
		}
		return enc.Close()
	case "form":
		_, err := fmt.Fprintln(w, urlEncode(f).Encode())
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// urlEncode flattens the form into the names a browser would submit.
// Unchecked checkboxes are left out.
func urlEncode(f *form.Form) url.Values {
	values := url.Values{}
	form.Walk(f, func(path []string, field form.Field) {
		name := form.HTMLName(path)
		value := field.Value()
		switch {
		case form.IsMulti(value):
			for _, item := range form.Strings(value) {
				values.Add(name+"[]", item)
			}
		case isBool(value):
			if form.Truthy(value) {
				values.Set(name, "1")
			}
		case !form.IsEmpty(value):
			values.Set(name, form.Strings(value)[0])
		}
	})
	return values
}

func isBool(value any) bool {
	_, ok := value.(bool)
	return ok
}
