package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/markup"
	pkgopenapi "github.com/goliatone/go-htmlform/pkg/openapi"
)

// LoadDocument reads an OpenAPI fixture. Failures stop the test.
func LoadDocument(t *testing.T, path string) *openapi3.T {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a document without requiring testing.T, so
// fixtures can be wired in setup functions.
func LoadDocumentFromPath(path string) (*openapi3.T, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.Load(context.Background(), data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load document: %w", err)
	}
	return doc, nil
}

// Query parses rendered markup for goquery assertions. Nodes, node slices and
// strings are accepted.
func Query(t *testing.T, rendered any) *goquery.Document {
	t.Helper()

	var html string
	switch v := rendered.(type) {
	case string:
		html = v
	case *markup.Node:
		html = v.String()
	case []*markup.Node:
		html = markup.Join(v)
	default:
		t.Fatalf("testsupport: cannot query %T", rendered)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	return doc
}

// MustAttr returns the attribute of the first match or fails the test.
func MustAttr(t *testing.T, doc *goquery.Document, selector, attr string) string {
	t.Helper()

	selection := doc.Find(selector).First()
	if selection.Length() == 0 {
		t.Fatalf("selector %q matched nothing", selector)
	}
	value, ok := selection.Attr(attr)
	if !ok {
		t.Fatalf("selector %q has no %q attribute", selector, attr)
	}
	return value
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
