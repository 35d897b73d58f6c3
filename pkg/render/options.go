package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the document.
type RenderOptions struct {
	// Theme carries the resolved theme (tokens, CSS variables, asset
	// resolver). Renderers fall back to their built-in palette when nil.
	Theme *theme.RendererConfig
	// Locale selects the language for page chrome strings ("My Projects",
	// "No Image", ...). User content is never translated.
	Locale string
	// Translator resolves chrome label keys for Locale. When nil the English
	// defaults are used.
	Translator Translator
	// OnMissing customises the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}
