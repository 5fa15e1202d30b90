package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlform"
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/openapi"
)

type rootOptions struct {
	document  string
	target    string
	verbose   bool
	allowHTTP bool
	validate  bool

	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: log.New(io.Discard, "htmlform: ", 0)}

	cmd := &cobra.Command{
		Use:           "htmlform",
		Short:         "Render HTML forms from OpenAPI request schemas",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				opts.logger.SetOutput(cmd.ErrOrStderr())
				opts.logger.SetFlags(log.Ltime)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.document, "openapi", "o", "", "Path or URL of the OpenAPI document")
	flags.StringVarP(&opts.target, "target", "t", "", "operationId or component schema (#/components/schemas/Name)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")
	flags.BoolVar(&opts.allowHTTP, "http", false, "Allow fetching the document over HTTP")
	flags.BoolVar(&opts.validate, "validate-document", false, "Validate the OpenAPI document before use")

	cmd.AddCommand(
		newRenderCmd(opts),
		newFieldsCmd(opts),
		newOperationsCmd(opts),
		newThemesCmd(opts),
		newPromptCmd(opts),
		newLintCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func (o *rootOptions) loadOptions() []openapi.LoadOption {
	var out []openapi.LoadOption
	if o.allowHTTP {
		out = append(out, openapi.WithHTTP(30*time.Second))
	}
	if o.validate {
		out = append(out, openapi.WithValidation(true))
	}
	return out
}

func (o *rootOptions) loadDocument(ctx context.Context) (*openapi3.T, error) {
	if o.document == "" {
		return nil, errors.New("--openapi is required")
	}
	o.logger.Printf("loading %s", o.document)
	doc, err := openapi.LoadLocation(ctx, o.document, o.loadOptions()...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", o.document, err)
	}
	return doc, nil
}

func (o *rootOptions) loadForm(ctx context.Context) (*form.Form, error) {
	if o.target == "" {
		return nil, errors.New("--target is required")
	}
	doc, err := o.loadDocument(ctx)
	if err != nil {
		return nil, err
	}
	f, err := htmlform.FormFromDocument(doc, o.target)
	if err != nil {
		return nil, err
	}
	o.logger.Printf("built form %q with %d top-level fields", o.target, len(f.Names()))
	return f, nil
}

// output returns the writer for command results: a created file when path is
// set, otherwise the command's stdout.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return file, file.Close, nil
}
