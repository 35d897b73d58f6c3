package render_test

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-portfolio/pkg/render"
)

func TestSafeHref(t *testing.T) {
	cases := map[string]string{
		"":                            "",
		"   ":                         render.BlockedHref,
		"https://example.com":         "https://example.com",
		" http://example.com/a ":      "http://example.com/a",
		"mailto:jane@example.com":     "mailto:jane@example.com",
		"tel:+1 555 0100":             "tel:+1 555 0100",
		"/relative/path":              "/relative/path",
		"www.example.com":             "www.example.com",
		"javascript:alert(1)":         render.BlockedHref,
		"JavaScript:alert(1)":         render.BlockedHref,
		"data:text/html,<b>x</b>":     render.BlockedHref,
		"vbscript:msgbox":             render.BlockedHref,
		"java\nscript:alert(1)":       render.BlockedHref,
		"HTTPS://EXAMPLE.COM/profile": "HTTPS://EXAMPLE.COM/profile",
	}
	for in, want := range cases {
		if got := render.SafeHref(in); got != want {
			t.Errorf("SafeHref(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSafeImageSrc(t *testing.T) {
	cases := map[string]string{
		"":                                  "",
		"data:image/png;base64,AAAA":        "data:image/png;base64,AAAA",
		"https://img.example.com/a.png":     "https://img.example.com/a.png",
		"javascript:alert(1)":               "",
		"data:text/html;base64,PHNjcmlwdD4": "",
		"relative.png":                      "",
	}
	for in, want := range cases {
		if got := render.SafeImageSrc(in); got != want {
			t.Errorf("SafeImageSrc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestThemeCSS(t *testing.T) {
	if got := render.ThemeCSS(nil); got != "" {
		t.Fatalf("expected empty css for nil config, got %q", got)
	}

	got := render.ThemeCSS(&theme.RendererConfig{
		CSSVars: map[string]string{
			"--gradient-start": "#667eea",
			"--gradient-end":   "#764ba2",
			"--evil":           "red;}</style><script>",
			"plain":            "blue",
		},
	})
	want := ":root { --gradient-end: #764ba2; --gradient-start: #667eea; }"
	if got != want {
		t.Fatalf("ThemeCSS mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestResolveAsset(t *testing.T) {
	cfg := &theme.RendererConfig{AssetURL: func(p string) string { return "/assets/" + p }}
	if got := render.ResolveAsset(cfg, "site.css"); got != "/assets/site.css" {
		t.Fatalf("expected resolved asset, got %q", got)
	}
	if got := render.ResolveAsset(cfg, "https://cdn.tailwindcss.com"); got != "https://cdn.tailwindcss.com" {
		t.Fatalf("absolute url should pass through, got %q", got)
	}
	if got := render.ResolveAsset(nil, "site.css"); got != "site.css" {
		t.Fatalf("nil config should pass through, got %q", got)
	}
}
