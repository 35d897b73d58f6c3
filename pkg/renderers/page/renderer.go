package page

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/render"
	rendertemplate "github.com/goliatone/go-portfolio/pkg/render/template"
	gotemplate "github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
)

// Name is the registry name of the page renderer.
const Name = "page"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	year             string
	markdownBio      bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
		cfg.templatesDir = ""
	}
}

// WithTemplatesDir loads templates from a directory on disk. The directory
// mirrors the embedded layout (templates/page.tpl).
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templatesDir = path
		cfg.templateFS = nil
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the utility CSS reference. Values ending in ".css"
// render as a stylesheet link, anything else as a script tag. An empty value
// removes the reference.
func WithStylesheet(ref string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(ref)
	}
}

// WithCopyrightYear overrides the literal year printed in the footer.
func WithCopyrightYear(year string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(year); trimmed != "" {
			cfg.year = trimmed
		}
	}
}

// WithMarkdownBio renders the bio as sanitized Markdown instead of plain text.
func WithMarkdownBio() Option {
	return func(cfg *config) {
		cfg.markdownBio = true
	}
}

// Renderer produces the standalone portfolio HTML document.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	stylesheet  string
	year        string
	markdownBio bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		stylesheet: DefaultStylesheet,
		year:       DefaultCopyrightYear,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	source := gotemplate.WithFS(cfg.templateFS)
	switch {
	case cfg.templatesDir != "":
		source = gotemplate.WithBaseDir(cfg.templatesDir)
	case cfg.templateFS == nil:
		source = gotemplate.WithFS(TemplatesFS())
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(source, gotemplate.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		stylesheet:  cfg.stylesheet,
		year:        cfg.year,
		markdownBio: cfg.markdownBio,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render maps doc into the page template. The output is byte-stable for a
// given document and options.
func (r *Renderer) Render(ctx context.Context, doc model.Document, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("page renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := r.buildView(doc, options)
	labels := newLabelsView(render.LocalizeLabels(render.DefaultLabels(), options))
	view.Contacts = contactViews(doc.Contacts, labels)

	result, err := r.templates.RenderTemplate(TemplateName, map[string]any{
		"page":   view,
		"labels": labels,
	})
	if err != nil {
		return nil, fmt.Errorf("page renderer: render template: %w", err)
	}
	return []byte(result), nil
}
