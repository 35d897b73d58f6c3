package cli

import (

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/internal/docfile"
	"github.com/goliatone/go-portfolio/internal/logger"
	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/store"
	"github.com/goliatone/go-portfolio/pkg/wizard"
)

type wizardFlags struct {
	from    string
	outDir  string
	save    string
	theme   string
	variant string
}

func (a *app) newWizardCmd() *cobra.Command {
	flags := &wizardFlags{}
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Build a portfolio step by step in the terminal",
		Long: `Walks through Personal Info, Projects and Contact & Social, then writes
<name>-portfolio.html to the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWizard(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.from, "from", "", "start from an existing JSON or YAML document")
	cmd.Flags().StringVar(&flags.outDir, "out", "", "directory for the exported HTML (default from config)")
	cmd.Flags().StringVar(&flags.save, "save", "", "also save the document to this .json or .yaml file")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme name")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "theme variant")
	return cmd
}

func (a *app) runWizard(cmd *cobra.Command, flags *wizardFlags) error {
	ctx := cmd.Context()
	logger.Section("Wizard")

	storeOptions := a.cfg.StoreOptions()
	if flags.from != "" {
		doc, err := docfile.Load(ctx, flags.from)
		if err != nil {
			return err
		}
		storeOptions = append(storeOptions, store.WithDocument(doc))
	}
	s := store.New(storeOptions...)

	options := []wizard.Option{wizard.WithOutput(cmd.OutOrStdout())}
	if a.driver != nil {
		options = append(options, wizard.WithPromptDriver(a.driver))
	}
	w, err := wizard.New(s, options...)
	if err != nil {
		return err
	}

	doc, err := w.Run(ctx)
	if err != nil {
		return err
	}

	if flags.save != "" {
		if err := docfile.Write(flags.save, doc); err != nil {
			return err
		}
		cmd.Printf("Document saved to %s\n", flags.save)
	}

	artifact, err := export.Export(ctx, a.generator(), doc, export.Options{
		ThemeName:    firstNonEmpty(flags.theme, a.cfg.Render.Theme),
		ThemeVariant: firstNonEmpty(flags.variant, a.cfg.Render.Variant),
	})
	if err != nil {
		return err
	}
	path, err := export.WriteFile(firstNonEmpty(flags.outDir, a.cfg.Export.OutDir), artifact)
	if err != nil {
		return err
	}
	cmd.Printf("Portfolio written to %s\n", path)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

