package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlform"
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/render"
)

const maxUploadMemory = 32 << 20

type serveOptions struct {
	addr  string
	grace time.Duration
	skin  renderOptions
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP and validate submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.addr, "addr", ":8383", "HTTP listen address")
	flags.DurationVar(&opts.grace, "grace", 5*time.Second, "Shutdown grace period")
	flags.StringVar(&opts.skin.skin, "skin", "", "Built-in skin (bootstrap4, bootstrap5)")
	flags.StringVar(&opts.skin.theme, "theme", "bootstrap", "Theme name resolved through the theme registry")
	flags.StringVar(&opts.skin.variant, "variant", "", "Theme variant")
	flags.StringVar(&opts.skin.themesDir, "themes-dir", "", "Directory of theme manifests (JSON or YAML)")
	flags.StringVar(&opts.skin.locale, "locale", "", "Locale used for validation messages")
	flags.StringVar(&opts.skin.messagesDir, "messages", "", "Directory of message catalogs (JSON or YAML)")
	flags.StringVar(&opts.skin.title, "title", "", "Page title")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	if opts.skin.skin != "" {
		opts.skin.theme = ""
	}
	doc, err := root.loadDocument(cmd.Context())
	if err != nil {
		return err
	}
	h, err := newFormHandler(func() (*form.Form, error) {
		return htmlform.FormFromDocument(doc, root.target)
	}, &opts.skin, root.logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           newMux(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("listening on %s (form %s)", opts.addr, root.target)

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.grace)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newMux serves the form on the root path only; anything else is a 404.
func newMux(h http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/{$}", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

type formHandler struct {
	build      func() (*form.Form, error)
	formatter  form.MessageFormatter
	renderOpts []render.Option
	page       htmlform.PageOptions
	logger     *log.Logger
}

func newFormHandler(build func() (*form.Form, error), opts *renderOptions, logger *log.Logger) (*formHandler, error) {
	formatter, err := opts.formatter()
	if err != nil {
		return nil, err
	}
	renderOpts, stylesheet, err := opts.skinOptions()
	if err != nil {
		return nil, err
	}
	if _, err := build(); err != nil {
		return nil, err
	}
	return &formHandler{
		build:      build,
		formatter:  formatter,
		renderOpts: renderOpts,
		page: htmlform.PageOptions{
			Title:      opts.title,
			Lang:       opts.locale,
			Stylesheet: stylesheet,
		},
		logger: logger,
	}, nil
}

// ServeHTTP renders the empty form on GET. A POST binds and validates the
// submission; invalid submissions are re-rendered with their errors, valid
// ones are echoed back as JSON.
func (h *formHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, err := h.build()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.write(w, f, http.StatusOK)
	case http.MethodPost:
		if err := parseSubmission(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.Bind(submittedValues(r))
		if !f.Validate() {
			h.logger.Printf("rejected submission with %d invalid fields", len(f.Errors()))
			h.write(w, f, http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(f.Values()); err != nil {
			log.Printf("write json response: %v", err)
		}
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *formHandler) write(w http.ResponseWriter, f *form.Form, status int) {
	var buf bytes.Buffer
	r := render.New(f, h.formatter, h.renderOpts...)
	if _, err := htmlform.RenderPage(r, h.page, &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write response: %v", err)
	}
}

// submittedValues merges the posted fields with the names of uploaded files,
// so file inputs bind the client side filename.
func submittedValues(r *http.Request) url.Values {
	values := url.Values{}
	for name, items := range r.PostForm {
		values[name] = append([]string(nil), items...)
	}
	if r.MultipartForm == nil {
		return values
	}
	for name, headers := range r.MultipartForm.File {
		for _, header := range headers {
			values.Add(name, header.Filename)
		}
	}
	return values
}

func parseSubmission(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadMemory)
	}
	return r.ParseForm()
}
