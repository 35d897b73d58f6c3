package server

import (
	"embed"
	"fmt"
	"strconv"

	"github.com/goliatone/go-portfolio/pkg/model"
	rendertemplate "github.com/goliatone/go-portfolio/pkg/render/template"
	gotemplate "github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var shellTemplates embed.FS

const (
	shellTemplate = "templates/shell"
	shellTitle    = "Portfolio Builder"
)

type shellField struct {
	Label     string `json:"label"`
	Type      string `json:"type"`
	Endpoint  string `json:"endpoint"`
	Value     string `json:"value"`
	Multiline bool   `json:"multiline"`
}

type shellProject struct {
	ID     string       `json:"id"`
	Fields []shellField `json:"fields"`
}

// newShellEngine loads the editor shell; values fixed for the server's
// lifetime are template globals.
func newShellEngine(stylesheet string) (rendertemplate.TemplateRenderer, error) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(shellTemplates),
		gotemplate.WithGlobalData(map[string]any{
			"title":      shellTitle,
			"stylesheet": stylesheet,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("server: shell templates: %w", err)
	}
	return engine, nil
}

func shellData(doc model.Document, card []byte) map[string]any {
	personal := []shellField{
		{Label: "Full Name", Type: "text", Endpoint: "/api/document/name", Value: doc.Name},
		{Label: "Professional Title", Type: "text", Endpoint: "/api/document/title", Value: doc.Title},
		{Label: "Bio", Endpoint: "/api/document/bio", Value: doc.Bio, Multiline: true},
	}

	projects := make([]shellProject, 0, len(doc.Projects))
	for _, project := range doc.Projects {
		id := strconv.FormatInt(project.ID, 10)
		base := "/api/projects/" + id + "/"
		projects = append(projects, shellProject{
			ID: id,
			Fields: []shellField{
				{Label: "Project Title", Type: "text", Endpoint: base + string(model.ProjectTitle), Value: project.Title},
				{Label: "Description", Endpoint: base + string(model.ProjectDescription), Value: project.Description, Multiline: true},
				{Label: "Live Demo URL", Type: "url", Endpoint: base + string(model.ProjectLiveLink), Value: project.LiveLink},
				{Label: "GitHub URL", Type: "url", Endpoint: base + string(model.ProjectGitHubLink), Value: project.GitHubLink},
			},
		})
	}

	var contacts []shellField
	for _, spec := range model.ContactChannels() {
		value, _ := doc.Contacts.Get(spec.Channel)
		contacts = append(contacts, shellField{
			Label:    spec.Label,
			Type:     inputType(spec.Link),
			Endpoint: "/api/contacts/" + string(spec.Channel),
			Value:    value,
		})
	}

	return map[string]any{
		"personal": personal,
		"projects": projects,
		"contacts": contacts,
		"card":     string(card),
	}
}

func inputType(kind model.LinkKind) string {
	switch kind {
	case model.LinkMailto:
		return "email"
	case model.LinkTel:
		return "tel"
	case model.LinkURL:
		return "url"
	}
	return "text"
}
