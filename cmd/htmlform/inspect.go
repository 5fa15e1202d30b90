package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlform/pkg/openapi"
	"github.com/goliatone/go-htmlform/pkg/render"
	"github.com/goliatone/go-htmlform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-htmlform/pkg/skins"
)

func newFieldsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields of the form with their HTML name and widget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := root.loadForm(cmd.Context())
			if err != nil {
				return err
			}
			fields, err := gotemplate.Fields(render.New(f, nil))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tNAME\tWIDGET\tREQUIRED\tLABEL")
			for _, field := range fields {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", field.Path, field.Name, field.Widget, field.Required, field.Label)
			}
			return tw.Flush()
		},
	}
}

func newOperationsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the operations and component schemas a form can be built from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.loadDocument(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TARGET\tMETHOD\tPATH\tSUMMARY")
			for _, op := range openapi.Operations(doc) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", op.ID, op.Method, op.Path, op.Summary)
			}
			for _, name := range openapi.Components(doc) {
				fmt.Fprintf(tw, "#/components/schemas/%s\t-\t-\t-\n", name)
			}
			return tw.Flush()
		},
	}
}

func newThemesCmd(root *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List built-in skins and available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes, err := loadThemes(dir)
			if err != nil {
				return err
			}
			root.logger.Printf("%d themes registered", len(themes.Names()))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "skins: %s\n", strings.Join(skins.Default().List(), ", "))
			for _, name := range themes.Names() {
				sel, err := themes.Select(name, "")
				if err != nil {
					return err
				}
				variants := make([]string, 0, len(sel.Manifest.Variants))
				for variant := range sel.Manifest.Variants {
					variants = append(variants, variant)
				}
				sort.Strings(variants)
				if len(variants) == 0 {
					fmt.Fprintf(out, "theme %s\n", name)
					continue
				}
				fmt.Fprintf(out, "theme %s (variants: %s)\n", name, strings.Join(variants, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "themes-dir", "", "Directory of theme manifests (JSON or YAML)")
	return cmd
}
