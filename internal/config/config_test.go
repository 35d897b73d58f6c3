package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/theme"
)

func envMap(values map[string]string) Option {
	return WithLookupEnv(func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(
		WithConfigFile(writeFile(t, dir, "empty.toml", "")),
		envMap(nil),
	)
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, page.Name, cfg.Render.Renderer)
	assert.Equal(t, theme.DefaultTheme, cfg.Render.Theme)
	assert.Equal(t, 1, cfg.Store.MinProjects)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "portfolio.toml", `
[server]
addr = "127.0.0.1:9000"
watch = true

[render]
theme = "studio"
variant = "dark"
copyright_year = "2030"

[store]
min_projects = 2
`)
	envPath := writeFile(t, dir, ".env", "PORTFOLIO_VARIANT=ocean\nPORTFOLIO_COPYRIGHT_YEAR=2031\n")

	cfg, err := Load(
		WithConfigFile(configPath),
		WithEnvFile(envPath),
		envMap(map[string]string{
			"PORTFOLIO_COPYRIGHT_YEAR": "2032",
			"PORTFOLIO_MIN_PROJECTS":   "0",
			"PORTFOLIO_MARKDOWN_BIO":   "true",
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr, "toml overrides defaults")
	assert.True(t, cfg.Server.Watch)
	assert.Equal(t, "studio", cfg.Render.Theme)
	assert.Equal(t, "ocean", cfg.Render.Variant, ".env overrides toml")
	assert.Equal(t, "2032", cfg.Render.CopyrightYear, "environment overrides .env")
	assert.Equal(t, 0, cfg.Store.MinProjects)
	assert.True(t, cfg.Render.MarkdownBio)
	assert.Equal(t, page.DefaultStylesheet, cfg.Render.Stylesheet, "unset keys keep defaults")
}

func TestLoad_MissingDefaultFilesAreOptional(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load(envMap(map[string]string{"PORTFOLIO_ADDR": ":7000"}))
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		options []Option
		wantErr string
	}{
		{
			name:    "explicit config missing",
			options: []Option{WithConfigFile(filepath.Join(dir, "nope.toml"))},
			wantErr: "config: read",
		},
		{
			name:    "explicit env file missing",
			options: []Option{WithConfigFile(writeFile(t, dir, "a.toml", "")), WithEnvFile(filepath.Join(dir, "nope.env"))},
			wantErr: "config: read",
		},
		{
			name:    "malformed toml",
			options: []Option{WithConfigFile(writeFile(t, dir, "bad.toml", "[server\naddr="))},
			wantErr: "config: parse",
		},
		{
			name: "bad boolean",
			options: []Option{
				WithConfigFile(writeFile(t, dir, "b.toml", "")),
				envMap(map[string]string{"PORTFOLIO_WATCH": "maybe"}),
			},
			wantErr: "PORTFOLIO_WATCH",
		},
		{
			name: "bad integer",
			options: []Option{
				WithConfigFile(writeFile(t, dir, "c.toml", "")),
				envMap(map[string]string{"PORTFOLIO_MAX_IMAGE_BYTES": "lots"}),
			},
			wantErr: "PORTFOLIO_MAX_IMAGE_BYTES",
		},
		{
			name: "negative minimum",
			options: []Option{
				WithConfigFile(writeFile(t, dir, "d.toml", "[store]\nmin_projects = -1\n")),
				envMap(nil),
			},
			wantErr: "min_projects",
		},
		{
			name: "empty addr",
			options: []Option{
				WithConfigFile(writeFile(t, dir, "e.toml", "")),
				envMap(map[string]string{"PORTFOLIO_ADDR": " "}),
			},
			wantErr: "addr is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := append([]Option{envMap(nil)}, tt.options...)
			_, err := Load(options...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := Defaults()
	cfg.Render.MarkdownBio = true

	assert.Len(t, cfg.StoreOptions(), 2)
	assert.Len(t, cfg.PageOptions(), 3)

	cfg.Render.MarkdownBio = false
	assert.Len(t, cfg.PageOptions(), 2)
}
