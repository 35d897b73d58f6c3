package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-portfolio/pkg/model"
)

// SampleDocument returns a fully populated portfolio used across renderer,
// export and server tests.
func SampleDocument() model.Document {
	return model.Document{
		Name:  "Jane Q. Public",
		Title: "Full-Stack Developer",
		Bio:   "I build small, sturdy web applications.",
		Projects: []model.Project{
			{
				ID:          1,
				Title:       "Weather Dashboard",
				Description: "Forecasts for every city.",
				LiveLink:    "https://weather.example.com",
				GitHubLink:  "https://github.com/jane/weather",
			},
			{
				ID:          2,
				Title:       "Recipe Box",
				Description: "Meal planning made simple.",
				GitHubLink:  "https://github.com/jane/recipes",
			},
		},
		Contacts: model.Contacts{
			Email:    "jane@example.com",
			Phone:    "+1 555 0100",
			Website:  "https://jane.example.com",
			GitHub:   "https://github.com/jane",
			LinkedIn: "https://linkedin.com/in/jane",
			Twitter:  "https://twitter.com/jane",
		},
	}
}

// LoadDocument reads a JSON document fixture, failing the test on error.
func LoadDocument(t *testing.T, path string) model.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T so
// callers can wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (model.Document, error) {
	if path == "" {
		return model.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	var out model.Document
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Document{}, fmt.Errorf("testsupport: unmarshal document: %w", err)
	}
	return out, nil
}

// WriteDocument stores doc as indented JSON under dir and returns the path.
func WriteDocument(t *testing.T, dir, name string, doc model.Document) string {
	t.Helper()

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
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
