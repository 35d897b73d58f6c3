package render

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/media"
)

// BlockedHref replaces link targets whose scheme is not allowed.
const BlockedHref = "#"

var allowedLinkSchemes = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
	"tel":    {},
}

// SafeHref returns raw when it is a relative reference or uses an allowed
// scheme (http, https, mailto, tel) and BlockedHref otherwise. Empty input
// stays empty so templates can skip the link; whitespace-only input is still
// a value and yields BlockedHref.
func SafeHref(raw string) string {
	if raw == "" {
		return ""
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return BlockedHref
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return BlockedHref
	}
	if parsed.Scheme == "" {
		return trimmed
	}
	if _, ok := allowedLinkSchemes[strings.ToLower(parsed.Scheme)]; !ok {
		return BlockedHref
	}
	return trimmed
}

// SafeImageSrc accepts data:image URIs and absolute http(s) URLs. Anything
// else yields "" and the caller renders its placeholder.
func SafeImageSrc(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if media.IsDataImage(trimmed) {
		return trimmed
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return trimmed
	}
	return ""
}
