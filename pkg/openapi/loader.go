package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadOptions configures how documents are fetched and parsed.
type LoadOptions struct {
	// FileSystem resolves relative locations in LoadLocation. Nil means the
	// operating system.
	FileSystem fs.FS

	// HTTPClient fetches http(s) locations. Nil disables remote documents
	// unless AllowHTTP is set.
	HTTPClient *http.Client

	// AllowHTTP enables remote documents with a default client.
	AllowHTTP bool

	// RequestTimeout caps remote fetches.
	RequestTimeout time.Duration

	// Validate runs kin-openapi validation after parsing.
	Validate bool

	// ExternalRefs lets the loader follow references to other files.
	ExternalRefs bool
}

// LoadOption mutates LoadOptions.
type LoadOption func(*LoadOptions)

// WithFileSystem resolves locations against files instead of the OS.
func WithFileSystem(files fs.FS) LoadOption {
	return func(opts *LoadOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables remote documents using client.
func WithHTTPClient(client *http.Client) LoadOption {
	return func(opts *LoadOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTP enables remote documents with a default client and timeout.
func WithHTTP(timeout time.Duration) LoadOption {
	return func(opts *LoadOptions) {
		opts.AllowHTTP = true
		opts.RequestTimeout = timeout
	}
}

// WithValidation toggles document validation.
func WithValidation(enabled bool) LoadOption {
	return func(opts *LoadOptions) {
		opts.Validate = enabled
	}
}

// WithExternalRefs allows references to other documents.
func WithExternalRefs(enabled bool) LoadOption {
	return func(opts *LoadOptions) {
		opts.ExternalRefs = enabled
	}
}

func newLoadOptions(options []LoadOption) LoadOptions {
	cfg := LoadOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Load parses a JSON or YAML OpenAPI 3 document.
func Load(ctx context.Context, data []byte, options ...LoadOption) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	cfg := newLoadOptions(options)

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.ExternalRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.Validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return doc, nil
}

// LoadLocation reads a document from a file path, an fs.FS entry, or an
// http(s) URL and parses it with Load.
func LoadLocation(ctx context.Context, location string, options ...LoadOption) (*openapi3.T, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi: location is required")
	}
	cfg := newLoadOptions(options)

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		data, err = fetch(ctx, cfg, location)
	case cfg.FileSystem != nil:
		data, err = fs.ReadFile(cfg.FileSystem, strings.TrimPrefix(location, "/"))
	default:
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", location, err)
	}
	return Load(ctx, data, options...)
}

func fetch(ctx context.Context, cfg LoadOptions, location string) ([]byte, error) {
	client := cfg.HTTPClient
	switch {
	case client != nil:
		if cfg.RequestTimeout > 0 && client.Timeout == 0 {
			clone := *client
			clone.Timeout = cfg.RequestTimeout
			client = &clone
		}
	case cfg.AllowHTTP:
		client = &http.Client{Timeout: cfg.RequestTimeout}
	default:
		return nil, errors.New("http support disabled")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
