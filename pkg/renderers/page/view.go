package page

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/render"
)

type pageView struct {
	Lang            string        `json:"lang"`
	Name            string        `json:"name"`
	Title           string        `json:"title"`
	Bio             string        `json:"bio"`
	BioHTML         string        `json:"bioHtml,omitempty"`
	ProfileImage    string        `json:"profileImage,omitempty"`
	Stylesheet      string        `json:"stylesheet,omitempty"`
	StylesheetIsCSS bool          `json:"stylesheetIsCss"`
	ThemeCSS        string        `json:"themeCss,omitempty"`
	Year            string        `json:"year"`
	Projects        []projectView `json:"projects"`
	Contacts        []contactView `json:"contacts"`
}

// projectView keeps the id as a string; pongo2 prints JSON numbers as floats.
type projectView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	LiveLink    string `json:"liveLink,omitempty"`
	GitHubLink  string `json:"githubLink,omitempty"`
}

type contactView struct {
	Channel  string `json:"channel"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Href     string `json:"href"`
	Text     string `json:"text"`
	External bool   `json:"external"`
}

type labelsView struct {
	TitleSuffix string `json:"titleSuffix"`
	Projects    string `json:"projects"`
	NoImage     string `json:"noImage"`
	LiveDemo    string `json:"liveDemo"`
	GitHub      string `json:"github"`
	Contact     string `json:"contact"`
	Connect     string `json:"connect"`
	Rights      string `json:"rights"`
}

func newLabelsView(labels map[string]string) labelsView {
	return labelsView{
		TitleSuffix: labels[render.LabelPageTitleSuffix],
		Projects:    labels[render.LabelProjects],
		NoImage:     labels[render.LabelNoImage],
		LiveDemo:    labels[render.LabelLiveDemo],
		GitHub:      labels[render.LabelGitHub],
		Contact:     labels[render.LabelContact],
		Connect:     labels[render.LabelConnect],
		Rights:      labels[render.LabelRights],
	}
}

func (r *Renderer) buildView(doc model.Document, options render.RenderOptions) pageView {
	lang := strings.TrimSpace(options.Locale)
	if lang == "" {
		lang = "en"
	}
	stylesheet := render.ResolveAsset(options.Theme, r.stylesheet)

	view := pageView{
		Lang:            lang,
		Name:            doc.Name,
		Title:           doc.Title,
		Bio:             doc.Bio,
		ProfileImage:    render.SafeImageSrc(doc.ProfileImage),
		Stylesheet:      stylesheet,
		StylesheetIsCSS: strings.HasSuffix(strings.ToLower(stylesheet), ".css"),
		ThemeCSS:        render.ThemeCSS(options.Theme),
		Year:            r.year,
		Projects:        make([]projectView, 0, len(doc.Projects)),
	}
	if r.markdownBio && strings.TrimSpace(doc.Bio) != "" {
		view.BioHTML = markdownToSafeHTML(doc.Bio)
	}

	for _, project := range doc.Projects {
		view.Projects = append(view.Projects, projectView{
			ID:          strconv.FormatInt(project.ID, 10),
			Title:       project.Title,
			Description: project.Description,
			Image:       render.SafeImageSrc(project.Image),
			LiveLink:    render.SafeHref(project.LiveLink),
			GitHubLink:  render.SafeHref(project.GitHubLink),
		})
	}
	return view
}

// contactViews lists the non-empty channels in their fixed order.
func contactViews(contacts model.Contacts, labels labelsView) []contactView {
	channels := model.ContactChannels()
	out := make([]contactView, 0, len(channels))
	for _, spec := range channels {
		value, err := contacts.Get(spec.Channel)
		if err != nil || value == "" {
			continue
		}
		text := spec.Text(value)
		if spec.Display == model.DisplayKindFixed && labels.Connect != "" {
			text = labels.Connect
		}
		out = append(out, contactView{
			Channel:  string(spec.Channel),
			Label:    spec.Label,
			Icon:     spec.Icon,
			Href:     render.SafeHref(spec.Href(value)),
			Text:     text,
			External: spec.Link == model.LinkURL,
		})
	}
	return out
}
