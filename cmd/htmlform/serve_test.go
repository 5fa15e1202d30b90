package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/form"
)

func newTestHandler(t *testing.T) *formHandler {
	t.Helper()
	build := func() (*form.Form, error) {
		return form.New().
			Add("name", form.NewText(form.Required()).SetLength(2, 20)).
			Add("agree", form.NewBoolean()), nil
	}
	h, err := newFormHandler(build, &renderOptions{skin: "bootstrap5", title: "Join"}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newFormHandler: %v", err)
	}
	return h
}

func TestFormHandler_Get(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Find(`input[name="name"]`).Length() != 1 || doc.Find("h1").Text() != "Join" {
		t.Fatalf("unexpected page:\n%s", rec.Body.String())
	}
}

func TestFormHandler_PostInvalid(t *testing.T) {
	body := url.Values{"name": {"A"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := strings.TrimSpace(doc.Find(".invalid-feedback").First().Text()); got != "Enter at least 2 characters." {
		t.Fatalf("unexpected feedback %q", got)
	}
	if got, _ := doc.Find(`input[name="name"]`).Attr("value"); got != "A" {
		t.Fatalf("expected submitted value to be kept, got %q", got)
	}
}

func TestFormHandler_PostValid(t *testing.T) {
	body := url.Values{"name": {"Ada"}, "agree": {"1"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Ada", "agree": "1"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFormHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestFormHandler_PostMultipartFile(t *testing.T) {
	build := func() (*form.Form, error) {
		return form.New().
			Add("title", form.NewText()).
			Add("avatar", form.NewFile(form.Required())), nil
	}
	h, err := newFormHandler(build, &renderOptions{skin: "bootstrap5"}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newFormHandler: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("title", "Me"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := mw.CreateFormFile("avatar", "me.png")
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	if _, err := part.Write([]byte("\x89PNG")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"title": "Me", "avatar": "me.png"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestNewMux_Routes(t *testing.T) {
	mux := newMux(newTestHandler(t))

	cases := []struct {
		path string
		want int
	}{
		{path: "/", want: http.StatusOK},
		{path: "/healthz", want: http.StatusOK},
		{path: "/favicon.ico", want: http.StatusNotFound},
		{path: "/typo", want: http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.want {
			t.Fatalf("GET %s: want %d, got %d", tc.path, tc.want, rec.Code)
		}
	}
}
