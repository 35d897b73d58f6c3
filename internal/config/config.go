// Package config resolves runtime settings for the portfolio CLI.
//
// Precedence, lowest first: built-in defaults, the TOML config file, a .env
// file, then PORTFOLIO_* environment variables. Command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/goliatone/go-portfolio/pkg/media"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/store"
	"github.com/goliatone/go-portfolio/pkg/theme"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PORTFOLIO_"

// Default file names looked up when no explicit path is given.
const (
	DefaultConfigFile = "portfolio.toml"
	DefaultEnvFile    = ".env"
)

// Config is the resolved runtime configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
	Store  StoreConfig  `toml:"store"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Addr     string `toml:"addr"`
	Document string `toml:"document"`
	Watch    bool   `toml:"watch"`
}

type RenderConfig struct {
	Renderer      string `toml:"renderer"`
	Theme         string `toml:"theme"`
	Variant       string `toml:"variant"`
	Stylesheet    string `toml:"stylesheet"`
	CopyrightYear string `toml:"copyright_year"`
	MarkdownBio   bool   `toml:"markdown_bio"`
	Locale        string `toml:"locale"`
}

type StoreConfig struct {
	MinProjects   int   `toml:"min_projects"`
	MaxImageBytes int64 `toml:"max_image_bytes"`
}

type ExportConfig struct {
	OutDir string `toml:"out_dir"`
}

type LogConfig struct {
	Verbose bool `toml:"verbose"`
	JSON    bool `toml:"json"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Render: RenderConfig{
			Renderer:      page.Name,
			Theme:         theme.DefaultTheme,
			Stylesheet:    page.DefaultStylesheet,
			CopyrightYear: page.DefaultCopyrightYear,
		},
		Store: StoreConfig{
			MinProjects:   store.DefaultMinProjects,
			MaxImageBytes: media.DefaultMaxBytes,
		},
		Export: ExportConfig{OutDir: "."},
	}
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	configPath     string
	configRequired bool
	envPath        string
	envRequired    bool
	lookup         func(string) (string, bool)
}

// WithConfigFile loads path and fails when it does not exist.
func WithConfigFile(path string) Option {
	return func(l *loader) {
		if path != "" {
			l.configPath = path
			l.configRequired = true
		}
	}
}

// WithEnvFile reads path as a dotenv file and fails when it does not exist.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		if path != "" {
			l.envPath = path
			l.envRequired = true
		}
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(l *loader) {
		if lookup != nil {
			l.lookup = lookup
		}
	}
}

// Load resolves the configuration.
func Load(options ...Option) (Config, error) {
	l := &loader{
		configPath: DefaultConfigFile,
		envPath:    DefaultEnvFile,
		lookup:     os.LookupEnv,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}

	cfg := Defaults()

	if err := l.readTOML(&cfg); err != nil {
		return Config{}, err
	}

	dotenv, err := l.readDotenv()
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if value, ok := l.lookup(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l *loader) readTOML(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.configRequired {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", l.configPath, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", l.configPath, err)
	}
	return nil
}

// readDotenv returns the dotenv values without touching the process
// environment, so real variables keep precedence.
func (l *loader) readDotenv() (map[string]string, error) {
	values, err := godotenv.Read(l.envPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.envRequired {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", l.envPath, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if value, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(value)
		}
	}
	boolean := func(name string, dst *bool) error {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = parsed
		return nil
	}
	integer := func(name string, dst *int64) error {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = parsed
		return nil
	}

	str("ADDR", &cfg.Server.Addr)
	str("DOCUMENT", &cfg.Server.Document)
	str("RENDERER", &cfg.Render.Renderer)
	str("THEME", &cfg.Render.Theme)
	str("VARIANT", &cfg.Render.Variant)
	str("STYLESHEET", &cfg.Render.Stylesheet)
	str("COPYRIGHT_YEAR", &cfg.Render.CopyrightYear)
	str("LOCALE", &cfg.Render.Locale)
	str("OUT_DIR", &cfg.Export.OutDir)

	minProjects := int64(cfg.Store.MinProjects)
	for _, apply := range []func() error{
		func() error { return boolean("WATCH", &cfg.Server.Watch) },
		func() error { return boolean("MARKDOWN_BIO", &cfg.Render.MarkdownBio) },
		func() error { return boolean("VERBOSE", &cfg.Log.Verbose) },
		func() error { return boolean("LOG_JSON", &cfg.Log.JSON) },
		func() error { return integer("MIN_PROJECTS", &minProjects) },
		func() error { return integer("MAX_IMAGE_BYTES", &cfg.Store.MaxImageBytes) },
	} {
		if err := apply(); err != nil {
			return err
		}
	}
	cfg.Store.MinProjects = int(minProjects)
	return nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server addr is required")
	}
	if c.Store.MinProjects < 0 {
		return fmt.Errorf("config: min_projects must not be negative, got %d", c.Store.MinProjects)
	}
	if c.Store.MaxImageBytes <= 0 {
		return fmt.Errorf("config: max_image_bytes must be positive, got %d", c.Store.MaxImageBytes)
	}
	if c.Render.Renderer == "" {
		return errors.New("config: renderer is required")
	}
	return nil
}

// StoreOptions translates the store section into store options.
func (c Config) StoreOptions() []store.Option {
	return []store.Option{
		store.WithMinProjects(c.Store.MinProjects),
		store.WithEncoder(media.NewEncoder(media.WithMaxBytes(c.Store.MaxImageBytes))),
	}
}

// PageOptions translates the render section into page renderer options.
func (c Config) PageOptions() []page.Option {
	options := []page.Option{
		page.WithStylesheet(c.Render.Stylesheet),
		page.WithCopyrightYear(c.Render.CopyrightYear),
	}
	if c.Render.MarkdownBio {
		options = append(options, page.WithMarkdownBio())
	}
	return options
}
