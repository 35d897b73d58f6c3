package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/internal/docfile"
	"github.com/goliatone/go-portfolio/internal/logger"
	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
)

type renderFlags struct {
	outDir   string
	output   string
	renderer string
	theme    string
	variant  string
}

func (a *app) newRenderCmd() *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a JSON or YAML document to HTML",
		Long: `Renders a document file. Without -o the page is written to the output
directory as <name>-portfolio.html; "-o -" writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.outDir, "out", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", `output file, "-" for stdout`)
	cmd.Flags().StringVar(&flags.renderer, "renderer", "", "renderer name (page, preview)")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "theme name")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "theme variant")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, path string, flags *renderFlags) error {
	ctx := cmd.Context()
	logger.Section("Render")

	doc, err := docfile.Load(ctx, path)
	if err != nil {
		return err
	}
	renderer := firstNonEmpty(flags.renderer, a.cfg.Render.Renderer)
	logger.Debug("rendering %s with %s", path, renderer)

	body, err := a.generator().Generate(ctx, orchestrator.Request{
		Document:     &doc,
		Renderer:     renderer,
		ThemeName:    firstNonEmpty(flags.theme, a.cfg.Render.Theme),
		ThemeVariant: firstNonEmpty(flags.variant, a.cfg.Render.Variant),
	})
	if err != nil {
		return err
	}

	switch {
	case flags.output == "-":
		_, err := cmd.OutOrStdout().Write(body)
		return err
	case flags.output != "":
		if err := os.WriteFile(flags.output, body, 0o644); err != nil {
			return fmt.Errorf("render: write %s: %w", flags.output, err)
		}
		cmd.Printf("Written to %s\n", flags.output)
		return nil
	}

	filename := export.Filename(doc.Name)
	if renderer != page.Name {
		filename = renderer + "-" + filename
	}
	written, err := export.WriteFile(firstNonEmpty(flags.outDir, a.cfg.Export.OutDir), export.Artifact{
		Filename:    filename,
		ContentType: export.ContentType,
		Body:        body,
	})
	if err != nil {
		return err
	}
	cmd.Printf("Written to %s\n", written)
	return nil
}
