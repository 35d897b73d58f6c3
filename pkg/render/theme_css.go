package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeCSS renders the theme CSS variables as a ":root" rule. Keys are sorted
// so output is stable. Entries that could break out of a style element or
// declaration are dropped.
func ThemeCSS(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key, value := range cfg.CSSVars {
		if !safeCSSToken(key) || !safeCSSToken(value) || !strings.HasPrefix(key, "--") {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(cfg.CSSVars[key]))
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}

func safeCSSToken(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	return !strings.ContainsAny(value, "<>{};\\\"'\n\r")
}

// ResolveAsset maps a relative asset path through the theme asset resolver.
// Absolute URLs and paths are returned unchanged when no resolver is set.
func ResolveAsset(cfg *theme.RendererConfig, path string) string {
	if cfg == nil || cfg.AssetURL == nil || path == "" {
		return path
	}
	if strings.Contains(path, "://") || strings.HasPrefix(path, "//") {
		return path
	}
	if resolved := cfg.AssetURL(path); resolved != "" {
		return resolved
	}
	return path
}
