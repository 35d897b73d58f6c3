package portfolio

import (
	"context"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/render"
)

// Document aliases the portfolio document type for callers that only import
// the root package.
type Document = model.Document

// RenderOptions describes per-request overrides (theme, locale, translator)
// that renderers can use without mutating the document.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders doc with the named renderer ("page" when empty). It is
// the simplest entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, doc Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromFile loads a JSON or YAML document file and renders it.
func GenerateHTMLFromFile(ctx context.Context, path, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Path:     path,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector gotheme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemes registers manifests in a fresh selector; the first manifest is
// the default theme.
func WithThemes(manifests ...*gotheme.Manifest) orchestrator.Option {
	return orchestrator.WithThemes(manifests...)
}
