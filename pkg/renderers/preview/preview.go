// Package preview renders the compact live-preview card shown next to the
// editor. Empty fields render placeholders instead of blanks.
package preview

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/render"
	rendertemplate "github.com/goliatone/go-portfolio/pkg/render/template"
	gotemplate "github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	Name         = "preview"
	TemplateName = "templates/card"

	PlaceholderName        = "Your Name"
	PlaceholderTitle       = "Your Title"
	PlaceholderBio         = "Your bio will appear here..."
	PlaceholderDescription = "Project description..."
)

// TemplatesFS exposes the embedded card template.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

type Option func(*Renderer)

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(r *Renderer) {
		if renderer != nil {
			r.templates = renderer
		}
	}
}

// Renderer produces an HTML fragment, not a full document.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("preview renderer: configure template renderer: %w", err)
		}
		r.templates = engine
	}
	return r, nil
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *Renderer) Render(ctx context.Context, doc model.Document, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	labels := render.LocalizeLabels(render.DefaultLabels(), options)
	result, err := r.templates.RenderTemplate(TemplateName, map[string]any{
		"card": buildCard(doc),
		"labels": map[string]string{
			"liveDemo": labels[render.LabelLiveDemo],
			"github":   labels[render.LabelGitHub],
		},
	})
	if err != nil {
		return nil, fmt.Errorf("preview renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type cardView struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	Bio          string            `json:"bio"`
	ProfileImage string            `json:"profileImage,omitempty"`
	Projects     []cardProject     `json:"projects"`
	Contacts     []cardContactLine `json:"contacts"`
}

type cardProject struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	HasLive     bool   `json:"hasLive"`
	HasGitHub   bool   `json:"hasGitHub"`
}

type cardContactLine struct {
	Channel string `json:"channel"`
	Icon    string `json:"icon"`
	Text    string `json:"text"`
}

func buildCard(doc model.Document) cardView {
	card := cardView{
		Name:         orDefault(doc.Name, PlaceholderName),
		Title:        orDefault(doc.Title, PlaceholderTitle),
		Bio:          orDefault(doc.Bio, PlaceholderBio),
		ProfileImage: render.SafeImageSrc(doc.ProfileImage),
		Projects:     make([]cardProject, 0, len(doc.Projects)),
		Contacts:     []cardContactLine{},
	}
	for i, project := range doc.Projects {
		card.Projects = append(card.Projects, cardProject{
			ID:          strconv.FormatInt(project.ID, 10),
			Title:       orDefault(project.Title, "Project "+strconv.Itoa(i+1)),
			Description: orDefault(project.Description, PlaceholderDescription),
			Image:       render.SafeImageSrc(project.Image),
			HasLive:     project.LiveLink != "",
			HasGitHub:   project.GitHubLink != "",
		})
	}
	for _, spec := range model.ContactChannels() {
		value, err := doc.Contacts.Get(spec.Channel)
		if err != nil || value == "" {
			continue
		}
		text := spec.Label
		if spec.Link != model.LinkURL {
			text = value
		}
		card.Contacts = append(card.Contacts, cardContactLine{
			Channel: string(spec.Channel),
			Icon:    spec.Icon,
			Text:    text,
		})
	}
	return card
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
