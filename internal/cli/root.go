// Package cli wires the portfolio commands: wizard, render, serve and
// version.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/internal/config"
	"github.com/goliatone/go-portfolio/internal/logger"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/wizard"
)

var version = "dev"

// Version reports the build version, set with
// -ldflags "-X github.com/goliatone/go-portfolio/internal/cli.version=...".
func Version() string {
	return version
}

// Option configures the command tree.
type Option func(*app)

// WithPromptDriver replaces the interactive survey driver of the wizard
// command.
func WithPromptDriver(driver wizard.PromptDriver) Option {
	return func(a *app) {
		a.driver = driver
	}
}

// WithLookupEnv replaces os.LookupEnv during config resolution.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(a *app) {
		a.lookupEnv = lookup
	}
}

type app struct {
	cfg        config.Config
	configPath string
	envPath    string
	verbose    bool

	driver    wizard.PromptDriver
	lookupEnv func(string) (string, bool)
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand(options ...Option) *cobra.Command {
	a := &app{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Build a single-page portfolio site",
		Long:          "Collect personal info, projects and contacts, preview the result and export it as a standalone HTML file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML config file (default ./portfolio.toml when present)")
	root.PersistentFlags().StringVar(&a.envPath, "env-file", "", "dotenv file (default ./.env when present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newWizardCmd(),
		a.newRenderCmd(),
		a.newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	options := []config.Option{
		config.WithConfigFile(a.configPath),
		config.WithEnvFile(a.envPath),
	}
	if a.lookupEnv != nil {
		options = append(options, config.WithLookupEnv(a.lookupEnv))
	}
	cfg, err := config.Load(options...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(a.verbose || cfg.Log.Verbose)
	logger.SetJSON(cfg.Log.JSON)
	logger.Debug("config resolved: renderer=%s theme=%s variant=%s", cfg.Render.Renderer, cfg.Render.Theme, cfg.Render.Variant)
	return nil
}

// generator builds the render pipeline from the resolved config.
func (a *app) generator() *orchestrator.Orchestrator {
	return orchestrator.New(
		orchestrator.WithDefaultRenderer(a.cfg.Render.Renderer),
		orchestrator.WithPageOptions(a.cfg.PageOptions()...),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("portfolio version %s\n", version)
		},
	}
}
