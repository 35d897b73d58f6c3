// Package theme selects go-theme manifests and turns a selection into the
// renderer configuration consumed by the page renderer.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

const (
	// DefaultTheme is the built-in theme name.
	DefaultTheme = "aurora"

	TokenGradientStart = "gradient-start"
	TokenGradientEnd   = "gradient-end"
)

var (
	ErrThemeNotFound   = errors.New("theme: theme not found")
	ErrVariantNotFound = errors.New("theme: variant not found")
)

// Aurora returns the built-in theme: the purple gradient of the original page
// plus two alternate variants.
func Aurora() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenGradientStart: "#667eea",
			TokenGradientEnd:   "#764ba2",
		},
		Variants: map[string]gotheme.Variant{
			"sunset": {
				Tokens: map[string]string{
					TokenGradientStart: "#f6d365",
					TokenGradientEnd:   "#fda085",
				},
			},
			"ocean": {
				Tokens: map[string]string{
					TokenGradientStart: "#2193b0",
					TokenGradientEnd:   "#6dd5ed",
				},
			},
		},
	}
}

// Selector resolves theme and variant names against a fixed manifest set.
type Selector struct {
	mu             sync.RWMutex
	provider       gotheme.ThemeProvider
	manifests      map[string]*gotheme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ gotheme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests (Aurora when none are given). The first
// manifest becomes the default theme.
func NewSelector(manifests ...*gotheme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*gotheme.Manifest{Aurora()}
	}
	registry := gotheme.NewRegistry()
	s := &Selector{
		provider:  registry,
		manifests: make(map[string]*gotheme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theme: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
		if s.defaultTheme == "" {
			s.defaultTheme = manifest.Name
		}
	}
	if s.defaultTheme == "" {
		return nil, errors.New("theme: at least one manifest is required")
	}
	return s, nil
}

// Provider exposes the underlying go-theme registry.
func (s *Selector) Provider() gotheme.ThemeProvider {
	return s.provider
}

// SetDefaults changes the theme and variant used when Select receives empty
// names.
func (s *Selector) SetDefaults(name, variant string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	manifest, ok := s.manifests[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return fmt.Errorf("%w: %q in theme %q", ErrVariantNotFound, variant, name)
		}
	}
	s.defaultTheme = name
	s.defaultVariant = variant
	return nil
}

// Names lists the registered theme names.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements gotheme.ThemeSelector.
func (s *Selector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = s.defaultTheme
		if variant == "" {
			variant = s.defaultVariant
		}
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrVariantNotFound, variant, name)
		}
	}
	return &gotheme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection: variant tokens, templates and asset
// files override the base manifest, and every token becomes a "--<token>"
// CSS variable.
func RendererConfig(selection *gotheme.Selection) *gotheme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &gotheme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	variant, hasVariant := manifest.Variants[selection.Variant]

	cfg.Tokens = mergeMaps(manifest.Tokens, nil)
	cfg.Partials = mergeMaps(manifest.Templates, nil)
	files := mergeMaps(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if hasVariant {
		cfg.Tokens = mergeMaps(cfg.Tokens, variant.Tokens)
		cfg.Partials = mergeMaps(cfg.Partials, variant.Templates)
		files = mergeMaps(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	if len(cfg.Tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
		for key, value := range cfg.Tokens {
			cfg.CSSVars["--"+key] = value
		}
	}
	cfg.AssetURL = assetResolver(strings.TrimRight(prefix, "/"), files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		path := key
		if file, ok := files[key]; ok {
			path = file
		}
		if path == "" || prefix == "" {
			return path
		}
		return prefix + "/" + strings.TrimLeft(path, "/")
	}
}

func mergeMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
