package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlform/pkg/openapi"
)

type violation struct {
	file string
	openapi.Violation
}

// errViolations makes lint exit non-zero after the report is printed.
type errViolations int

func (e errViolations) Error() string {
	return fmt.Sprintf("%d lint violations", int(e))
}

func newLintCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check OpenAPI documents for form extensions and schemas that cannot be rendered",
		Long: "Lint reports invalid x-order, x-widget and x-enum-labels values and " +
			"request or component schemas the form builder cannot map. Without " +
			"arguments the --openapi document is checked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 && root.document != "" {
				paths = []string{root.document}
			}
			if len(paths) == 0 {
				return errors.New("no documents to lint")
			}

			var violations []violation
			for _, path := range paths {
				doc, err := openapi.LoadLocation(cmd.Context(), path, root.loadOptions()...)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				found := openapi.Lint(doc)
				root.logger.Printf("%s: %d violations", path, len(found))
				for _, v := range found {
					violations = append(violations, violation{file: path, Violation: v})
				}
			}
			if len(violations) == 0 {
				return nil
			}

			sort.SliceStable(violations, func(i, j int) bool {
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", v.file, v.Violation)
			}
			return errViolations(len(violations))
		},
	}
}
