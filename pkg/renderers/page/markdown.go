package page

import (
	"sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	bioPolicyOnce sync.Once
	bioPolicy     *bluemonday.Policy
)

func bioSanitizer() *bluemonday.Policy {
	bioPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		policy.AllowURLSchemes("http", "https", "mailto", "tel")
		bioPolicy = policy
	})
	return bioPolicy
}

// markdownToSafeHTML converts a Markdown bio and strips anything outside the
// user-content policy. Parsers keep state, so one is built per call.
func markdownToSafeHTML(source string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	raw := markdown.ToHTML([]byte(source), p, r)
	return string(bioSanitizer().SanitizeBytes(raw))
}
