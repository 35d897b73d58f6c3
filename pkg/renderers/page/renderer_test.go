package page_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func TestRenderer_SampleDocumentStructure(t *testing.T) {
	out := mustRender(t, newRenderer(t), testsupport.SampleDocument(), render.RenderOptions{})

	if !bytes.HasPrefix(out, []byte("<!DOCTYPE html>")) {
		t.Fatalf("expected doctype prefix, got %q", out[:40])
	}
	if n := bytes.Count(out, []byte("<html")); n != 1 {
		t.Fatalf("expected a single html element, got %d", n)
	}

	root := testsupport.ParseHTML(t, out)

	titles := testsupport.FindAll(root, testsupport.ByTag("title"))
	if len(titles) != 1 || testsupport.Text(titles[0]) != "Jane Q. Public - Portfolio" {
		t.Fatalf("unexpected title: %v", titles)
	}

	var ids []string
	for _, article := range testsupport.FindAll(root, testsupport.ByAttr("data-project-id")) {
		id, _ := testsupport.Attr(article, "data-project-id")
		ids = append(ids, id)
	}
	if diff := cmp.Diff([]string{"1", "2"}, ids); diff != "" {
		t.Fatalf("project order mismatch (-want +got):\n%s", diff)
	}

	type contact struct{ Channel, Href, Text string }
	var contacts []contact
	for _, node := range testsupport.FindAll(root, testsupport.ByAttr("data-contact")) {
		channel, _ := testsupport.Attr(node, "data-contact")
		href, _ := testsupport.Attr(node, "href")
		paragraphs := testsupport.FindAll(node, testsupport.ByTag("p"))
		contacts = append(contacts, contact{channel, href, testsupport.Text(paragraphs[len(paragraphs)-1])})
	}
	want := []contact{
		{"email", "mailto:jane@example.com", "jane@example.com"},
		{"phone", "tel:+1 555 0100", "+1 555 0100"},
		{"website", "https://jane.example.com", "https://jane.example.com"},
		{"github", "https://github.com/jane", "@jane"},
		{"linkedin", "https://linkedin.com/in/jane", "Connect with me"},
		{"twitter", "https://twitter.com/jane", "@jane"},
	}
	if diff := cmp.Diff(want, contacts); diff != "" {
		t.Fatalf("contacts mismatch (-want +got):\n%s", diff)
	}

	footers := testsupport.FindAll(root, testsupport.ByTag("footer"))
	if len(footers) != 1 || testsupport.Text(footers[0]) != "© 2024 Jane Q. Public. All rights reserved." {
		t.Fatalf("unexpected footer text: %q", testsupport.Text(footers[0]))
	}

	links := anchorTexts(root)
	if links["Live Demo"] != 1 || links["GitHub"] != 2 {
		t.Fatalf("unexpected project link counts: %v", links)
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	renderer := newRenderer(t)
	doc := testsupport.SampleDocument()

	first := mustRender(t, renderer, doc, render.RenderOptions{})
	second := mustRender(t, renderer, doc, render.RenderOptions{})
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestRenderer_FreshDocument(t *testing.T) {
	out := mustRender(t, newRenderer(t), model.NewDocument(), render.RenderOptions{})
	root := testsupport.ParseHTML(t, out)

	if n := len(testsupport.FindAll(root, testsupport.ByAttr("data-project-id"))); n != 1 {
		t.Fatalf("expected one project block, got %d", n)
	}
	if !bytes.Contains(out, []byte(`<span class="text-gray-500">No Image</span>`)) {
		t.Fatalf("expected No Image placeholder")
	}
	if n := len(testsupport.FindAll(root, testsupport.ByAttr("data-contact"))); n != 0 {
		t.Fatalf("expected no contact blocks, got %d", n)
	}
	if n := len(testsupport.FindAll(root, testsupport.ByTag("img"))); n != 0 {
		t.Fatalf("expected no images, got %d", n)
	}
	if links := anchorTexts(root); links["Live Demo"] != 0 || links["GitHub"] != 0 {
		t.Fatalf("expected no project links, got %v", links)
	}
}

func TestRenderer_ZeroProjects(t *testing.T) {
	doc := testsupport.SampleDocument()
	doc.Projects = nil

	out := mustRender(t, newRenderer(t), doc, render.RenderOptions{})
	root := testsupport.ParseHTML(t, out)
	if n := len(testsupport.FindAll(root, testsupport.ByAttr("data-project-id"))); n != 0 {
		t.Fatalf("expected empty project grid, got %d blocks", n)
	}
}

func TestRenderer_EscapesUserText(t *testing.T) {
	payload := `<script>alert("x")</script>`
	doc := model.Document{
		Name:  payload,
		Title: payload,
		Bio:   payload,
		Projects: []model.Project{
			{ID: 1, Title: payload, Description: payload},
		},
		Contacts: model.Contacts{Email: payload, Phone: payload},
	}

	out := mustRender(t, newRenderer(t), doc, render.RenderOptions{})
	if bytes.Contains(out, []byte("<script>alert")) {
		t.Fatalf("user markup leaked into output")
	}
	if !bytes.Contains(out, []byte("&lt;script&gt;")) {
		t.Fatalf("expected escaped markup in output")
	}

	root := testsupport.ParseHTML(t, out)
	if n := len(testsupport.FindAll(root, testsupport.ByTag("script"))); n != 1 {
		t.Fatalf("expected only the stylesheet script element, got %d", n)
	}
}

func TestRenderer_NeutralisesUnsafeURLs(t *testing.T) {
	doc := model.Document{
		Name:         "Mallory",
		ProfileImage: "javascript:alert(1)",
		Projects: []model.Project{{
			ID:         7,
			Title:      "Trap",
			Image:      "javascript:alert(1)",
			LiveLink:   "javascript:alert(1)",
			GitHubLink: "https://github.com/mallory/trap",
		}},
		Contacts: model.Contacts{Website: "javascript:alert(1)"},
	}

	out := mustRender(t, newRenderer(t), doc, render.RenderOptions{})
	root := testsupport.ParseHTML(t, out)

	for _, attr := range []string{"href", "src"} {
		for _, node := range testsupport.FindAll(root, testsupport.ByAttr(attr)) {
			value, _ := testsupport.Attr(node, attr)
			if strings.Contains(strings.ToLower(value), "javascript:") {
				t.Fatalf("javascript: URL survived in %s=%q", attr, value)
			}
		}
	}

	// The website channel still shows its raw value as escaped text.
	var website string
	for _, node := range testsupport.FindAll(root, testsupport.ByAttr("data-contact")) {
		paragraphs := testsupport.FindAll(node, testsupport.ByTag("p"))
		website = testsupport.Text(paragraphs[len(paragraphs)-1])
	}
	if website != "javascript:alert(1)" {
		t.Fatalf("unexpected website text %q", website)
	}

	if n := len(testsupport.FindAll(root, testsupport.ByTag("img"))); n != 0 {
		t.Fatalf("unsafe image sources must not render img tags, got %d", n)
	}
	var hrefs []string
	for _, a := range testsupport.FindAll(root, testsupport.ByTag("a")) {
		href, _ := testsupport.Attr(a, "href")
		hrefs = append(hrefs, href)
	}
	if diff := cmp.Diff([]string{"#", "https://github.com/mallory/trap", "#"}, hrefs); diff != "" {
		t.Fatalf("hrefs mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_WhitespaceContactKeepsBlock(t *testing.T) {
	doc := model.Document{Contacts: model.Contacts{Website: "  ", Email: " "}}

	out := mustRender(t, newRenderer(t), doc, render.RenderOptions{})
	root := testsupport.ParseHTML(t, out)

	hrefs := map[string]string{}
	for _, node := range testsupport.FindAll(root, testsupport.ByAttr("data-contact")) {
		channel, _ := testsupport.Attr(node, "data-contact")
		hrefs[channel], _ = testsupport.Attr(node, "href")
	}
	want := map[string]string{"email": "mailto:", "website": render.BlockedHref}
	if diff := cmp.Diff(want, hrefs); diff != "" {
		t.Fatalf("contact hrefs mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_ImagesRenderWhenSafe(t *testing.T) {
	doc := testsupport.SampleDocument()
	doc.ProfileImage = "data:image/png;base64,iVBORw0KGgo="
	doc.Projects[0].Image = "https://img.example.com/weather.png"

	out := mustRender(t, newRenderer(t), doc, render.RenderOptions{})
	root := testsupport.ParseHTML(t, out)

	var srcs []string
	for _, img := range testsupport.FindAll(root, testsupport.ByTag("img")) {
		src, _ := testsupport.Attr(img, "src")
		srcs = append(srcs, src)
	}
	want := []string{"data:image/png;base64,iVBORw0KGgo=", "https://img.example.com/weather.png"}
	if diff := cmp.Diff(want, srcs); diff != "" {
		t.Fatalf("image sources mismatch (-want +got):\n%s", diff)
	}
	if n := bytes.Count(out, []byte("No Image")); n != 1 {
		t.Fatalf("expected one placeholder for the second project, got %d", n)
	}
}

func TestRenderer_HandleFallsBackToFullURL(t *testing.T) {
	doc := model.Document{Contacts: model.Contacts{GitHub: "https://github.com/jane/"}}

	out := mustRender(t, newRenderer(t), doc, render.RenderOptions{})
	root := testsupport.ParseHTML(t, out)
	nodes := testsupport.FindAll(root, testsupport.ByAttr("data-contact"))
	if len(nodes) != 1 {
		t.Fatalf("expected one contact block, got %d", len(nodes))
	}
	paragraphs := testsupport.FindAll(nodes[0], testsupport.ByTag("p"))
	if got := testsupport.Text(paragraphs[len(paragraphs)-1]); got != "https://github.com/jane/" {
		t.Fatalf("expected the full URL without @, got %q", got)
	}
}

func TestRenderer_ThemeVariables(t *testing.T) {
	out := mustRender(t, newRenderer(t), testsupport.SampleDocument(), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "aurora",
			CSSVars: map[string]string{"--gradient-start": "#ff0000", "--gradient-end": "#00ff00"},
		},
	})
	if !bytes.Contains(out, []byte(":root { --gradient-end: #00ff00; --gradient-start: #ff0000; }")) {
		t.Fatalf("expected theme variables block")
	}
	if !bytes.Contains(out, []byte("var(--gradient-start, #667eea)")) {
		t.Fatalf("expected gradient rule to read theme variables")
	}
}

func TestRenderer_Options(t *testing.T) {
	renderer, err := page.New(
		page.WithCopyrightYear("2031"),
		page.WithStylesheet("site.css"),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out := mustRender(t, renderer, testsupport.SampleDocument(), render.RenderOptions{
		Theme: &theme.RendererConfig{AssetURL: func(p string) string { return "/static/" + p }},
	})
	if !bytes.Contains(out, []byte("&copy; 2031 Jane Q. Public.")) {
		t.Fatalf("expected overridden copyright year")
	}
	if !bytes.Contains(out, []byte(`<link rel="stylesheet" href="/static/site.css">`)) {
		t.Fatalf("expected stylesheet link resolved through theme assets")
	}
	if bytes.Contains(out, []byte("cdn.tailwindcss.com")) {
		t.Fatalf("default stylesheet should be replaced")
	}
}

func TestRenderer_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := "<h1>{{ page.name }}</h1>{% for contact in page.contacts %}<i>{{ contact.text }}</i>{% endfor %}"
	if err := os.WriteFile(filepath.Join(dir, "templates", "page.tpl"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	renderer, err := page.New(page.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	doc := model.Document{Name: "Ada <3", Contacts: model.Contacts{GitHub: "https://github.com/ada"}}
	out := mustRender(t, renderer, doc, render.RenderOptions{})
	if want := "<h1>Ada &lt;3</h1><i>@ada</i>"; string(out) != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, out)
	}
}

func TestRenderer_MarkdownBio(t *testing.T) {
	renderer, err := page.New(page.WithMarkdownBio())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	doc := testsupport.SampleDocument()
	doc.Bio = "Hello **world** <script>alert(1)</script> [site](javascript:alert(1))"

	out := mustRender(t, renderer, doc, render.RenderOptions{})
	if !bytes.Contains(out, []byte("<strong>world</strong>")) {
		t.Fatalf("expected markdown emphasis in bio")
	}
	if bytes.Contains(out, []byte("<script>alert")) || bytes.Contains(out, []byte("javascript:")) {
		t.Fatalf("sanitizer let unsafe markup through")
	}
}

func TestRenderer_LocalizedLabels(t *testing.T) {
	out := mustRender(t, newRenderer(t), testsupport.SampleDocument(), render.RenderOptions{
		Locale: "es",
		Translator: translatorFunc(func(locale, key string) (string, error) {
			if key == render.LabelProjects {
				return "Mis Proyectos", nil
			}
			return "", errors.New("missing")
		}),
	})
	if !bytes.Contains(out, []byte(`<html lang="es">`)) {
		t.Fatalf("expected locale on html element")
	}
	if !bytes.Contains(out, []byte("Mis Proyectos")) || !bytes.Contains(out, []byte("Get In Touch")) {
		t.Fatalf("expected translated heading with fallbacks")
	}
}

func TestRenderer_CustomTemplateRenderer(t *testing.T) {
	stub := &stubTemplates{out: "custom"}
	renderer, err := page.New(page.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out := mustRender(t, renderer, testsupport.SampleDocument(), render.RenderOptions{})
	if string(out) != "custom" {
		t.Fatalf("unexpected output %q", out)
	}
	if stub.name != page.TemplateName {
		t.Fatalf("expected template %q, got %q", page.TemplateName, stub.name)
	}
	data, ok := stub.data.(map[string]any)
	if !ok || data["page"] == nil || data["labels"] == nil {
		t.Fatalf("expected page and labels in template data, got %#v", stub.data)
	}

	stub.err = errors.New("boom")
	if _, err := renderer.Render(context.Background(), model.NewDocument(), render.RenderOptions{}); err == nil ||
		!strings.Contains(err.Error(), "page renderer: render template") {
		t.Fatalf("expected wrapped template error, got %v", err)
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, model.NewDocument(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "page" || renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected metadata %q %q", renderer.Name(), renderer.ContentType())
	}
}

func newRenderer(t *testing.T) *page.Renderer {
	t.Helper()
	renderer, err := page.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func mustRender(t *testing.T, renderer *page.Renderer, doc model.Document, opts render.RenderOptions) []byte {
	t.Helper()
	out, err := renderer.Render(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func anchorTexts(root *html.Node) map[string]int {
	counts := map[string]int{}
	for _, a := range testsupport.FindAll(root, testsupport.ByTag("a")) {
		if _, isContact := testsupport.Attr(a, "data-contact"); isContact {
			continue
		}
		counts[testsupport.Text(a)]++
	}
	return counts
}

type translatorFunc func(locale, key string) (string, error)

func (f translatorFunc) Translate(locale, key string, _ ...any) (string, error) {
	return f(locale, key)
}

type stubTemplates struct {
	out  string
	err  error
	name string
	data any
}

func (s *stubTemplates) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplates) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func (s *stubTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return s.out, s.err
}

func (s *stubTemplates) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (s *stubTemplates) GlobalContext(any) error { return nil }
