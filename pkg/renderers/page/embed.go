package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	// TemplateName is the entry template rendered for every document.
	TemplateName = "templates/page"
	// DefaultStylesheet is the utility CSS runtime referenced by the page.
	DefaultStylesheet = "https://cdn.tailwindcss.com"
	// DefaultCopyrightYear is printed in the footer.
	DefaultCopyrightYear = "2024"
)

// TemplatesFS exposes the embedded template bundle so callers can copy and
// customise it before passing it back through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
