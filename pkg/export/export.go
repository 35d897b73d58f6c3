// Package export turns a rendered portfolio into a named downloadable
// artifact.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
)

const (
	// FilenameSuffix is appended to the slug of the owner's name.
	FilenameSuffix = "-portfolio.html"
	// FallbackFilename is used when the name yields an empty slug.
	FallbackFilename = "portfolio.html"
	ContentType      = "text/html; charset=utf-8"
)

const unsafeFilenameChars = `/\:*?"<>|`

// Slug trims name, joins whitespace runs with a single "-", lowercases the
// result and drops characters that are not allowed in file names. Other
// punctuation is kept, so "Jane Q. Public" becomes "jane-q.-public".
func Slug(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	joined := cases.Lower(language.Und).String(strings.Join(fields, "-"))

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if unicode.IsControl(r) || strings.ContainsRune(unsafeFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), "-")
}

// Filename returns "<slug>-portfolio.html", or FallbackFilename when the
// slug is empty.
func Filename(name string) string {
	slug := Slug(name)
	if slug == "" {
		return FallbackFilename
	}
	return slug + FilenameSuffix
}

// Artifact is a rendered file ready to be saved or served.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Generator renders a document. *orchestrator.Orchestrator satisfies it.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) ([]byte, error)
}

// Options selects the theme and render options used for the artifact.
type Options struct {
	ThemeName     string
	ThemeVariant  string
	RenderOptions render.RenderOptions
}

// Export renders doc through the page renderer and names the result after the
// document owner.
func Export(ctx context.Context, gen Generator, doc model.Document, opts Options) (Artifact, error) {
	if gen == nil {
		return Artifact{}, errors.New("export: generator is required")
	}
	body, err := gen.Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Renderer:      page.Name,
		ThemeName:     opts.ThemeName,
		ThemeVariant:  opts.ThemeVariant,
		RenderOptions: opts.RenderOptions,
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("export: render: %w", err)
	}
	return Artifact{
		Filename:    Filename(doc.Name),
		ContentType: ContentType,
		Body:        body,
	}, nil
}

// WriteFile saves the artifact under dir (created when missing) and returns
// the written path.
func WriteFile(dir string, artifact Artifact) (string, error) {
	if artifact.Filename == "" {
		return "", errors.New("export: artifact filename is required")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, filepath.Base(artifact.Filename))
	if err := os.WriteFile(path, artifact.Body, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}
