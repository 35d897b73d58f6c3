package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the string used when key could not be
// translated. params[0] holds {"default": fallback}.
type MissingTranslationHandler func(locale, key string, params []any, err error) string

// Label keys for the page chrome.
const (
	LabelPageTitleSuffix = "portfolio.title_suffix"
	LabelProjects        = "portfolio.projects.heading"
	LabelNoImage         = "portfolio.projects.no_image"
	LabelLiveDemo        = "portfolio.projects.live_demo"
	LabelGitHub          = "portfolio.projects.github"
	LabelContact         = "portfolio.contact.heading"
	LabelConnect         = "portfolio.contact.linkedin_text"
	LabelRights          = "portfolio.footer.rights"
)

// DefaultLabels returns the English chrome strings.
func DefaultLabels() map[string]string {
	return map[string]string{
		LabelPageTitleSuffix: "Portfolio",
		LabelProjects:        "My Projects",
		LabelNoImage:         "No Image",
		LabelLiveDemo:        "Live Demo",
		LabelGitHub:          "GitHub",
		LabelContact:         "Get In Touch",
		LabelConnect:         "Connect with me",
		LabelRights:          "All rights reserved.",
	}
}

// LocalizeLabels translates each label in defaults for opts.Locale, falling
// back to the default string. The input map is not modified.
func LocalizeLabels(defaults map[string]string, opts RenderOptions) map[string]string {
	out := make(map[string]string, len(defaults))
	if opts.Translator == nil && opts.OnMissing == nil {
		for key, value := range defaults {
			out[key] = value
		}
		return out
	}
	for key, fallback := range defaults {
		out[key] = translate(opts.Locale, key, fallback, opts.Translator, opts.OnMissing)
	}
	return out
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		return fallbackOrKey(fallback, key)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	return fallbackOrKey(fallback, key)
}

func fallbackOrKey(fallback, key string) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
