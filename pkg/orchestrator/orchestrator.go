package orchestrator

import (
	"context"
	"errors"
	"fmt"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/internal/docfile"
	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/renderers/preview"
	"github.com/goliatone/go-portfolio/pkg/theme"
)

const defaultRendererName = page.Name

// DocumentLoader reads a document from a path.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (model.Document, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader DocumentLoader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithPageOptions configures the built-in page renderer. Ignored when a
// custom registry is supplied.
func WithPageOptions(options ...page.Option) Option {
	return func(o *Orchestrator) {
		o.pageOptions = append(o.pageOptions, options...)
	}
}

// WithTransformer registers a Transformer that runs before decorators.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the document copy
// before rendering, after the built-in TrimLinks decorator.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithoutDefaultDecorators drops the built-in decorators.
func WithoutDefaultDecorators() Option {
	return func(o *Orchestrator) {
		o.skipDefaultDecorators = true
	}
}

// WithThemeSelector sets the selector used to resolve request theme names.
// Pass nil to render without theme variables.
func WithThemeSelector(selector gotheme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeSpecified = true
	}
}

// WithThemes builds a selector over the given manifests.
func WithThemes(manifests ...*gotheme.Manifest) Option {
	return func(o *Orchestrator) {
		selector, err := theme.NewSelector(manifests...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: theme selector: %w", err)
			return
		}
		o.themeSelector = selector
		o.themeSpecified = true
	}
}

// Orchestrator coordinates the pipeline from document to rendered output. It
// applies defaults (page and preview renderers, the built-in theme, TrimLinks)
// while remaining open to dependency injection.
type Orchestrator struct {
	loader                DocumentLoader
	registry              *render.Registry
	defaultRenderer       string
	pageOptions           []page.Option
	transformer           Transformer
	decorators            []model.Decorator
	skipDefaultDecorators bool
	themeSelector         gotheme.ThemeSelector
	themeSpecified        bool
	initialiseErr         error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single render.
type Request struct {
	// Document is rendered as given. Optional when Path is supplied.
	Document *model.Document

	// Path names a document file read through the loader.
	Path string

	// Renderer names the renderer to use; empty selects the default.
	Renderer string

	// ThemeName and ThemeVariant are resolved through the theme selector.
	// Empty names select the selector defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions are passed through to the renderer. A Theme already set
	// here wins over the selector.
	RenderOptions render.RenderOptions
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Generate resolves the document, runs transformer and decorators on a copy,
// resolves the theme and renders.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := o.applyTransformer(ctx, &doc); err != nil {
		return nil, err
	}
	if err := o.applyDecorators(&doc); err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, doc, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// ContentType reports the content type of the named renderer.
func (o *Orchestrator) ContentType(name string) (string, error) {
	renderer, err := o.rendererFor(name)
	if err != nil {
		return "", err
	}
	return renderer.ContentType(), nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (model.Document, error) {
	if req.Document != nil {
		return copyDocument(*req.Document), nil
	}
	if req.Path == "" {
		return model.Document{}, errors.New("orchestrator: document or path is required")
	}
	doc, err := o.loader.Load(ctx, req.Path)
	if err != nil {
		return model.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

// copyDocument detaches the project slice so decorators cannot write through
// to the caller. Every other field is a value.
func copyDocument(doc model.Document) model.Document {
	if doc.Projects != nil {
		doc.Projects = append([]model.Project(nil), doc.Projects...)
	}
	return doc
}

func (o *Orchestrator) resolveTheme(name, variant string) (*gotheme.RendererConfig, error) {
	if o.themeSelector == nil {
		if name != "" {
			return nil, fmt.Errorf("orchestrator: theme %q requested but no theme selector configured", name)
		}
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return theme.RendererConfig(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Get("")
	if err != nil {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(doc *model.Document) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(doc); err != nil {
			return fmt.Errorf("orchestrator: decorate document: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, doc *model.Document) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, doc); err != nil {
		return fmt.Errorf("orchestrator: transform document: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = docfile.NewLoader()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		pageRenderer, err := page.New(o.pageOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(pageRenderer)

		previewRenderer, err := preview.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: preview renderer: %w", err)
			return
		}
		o.registry.MustRegister(previewRenderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if !o.skipDefaultDecorators {
		o.decorators = append([]model.Decorator{model.TrimLinks}, o.decorators...)
	}
	if !o.themeSpecified && o.initialiseErr == nil {
		selector, err := theme.NewSelector()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: theme selector: %w", err)
			return
		}
		o.themeSelector = selector
	}
}
