package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-portfolio/internal/docfile"
	"github.com/goliatone/go-portfolio/internal/logger"
	"github.com/goliatone/go-portfolio/internal/server"
	"github.com/goliatone/go-portfolio/internal/watch"
	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/store"
)

type serveFlags struct {
	addr    string
	doc     string
	watch   bool
	theme   string
	variant string
}

func (a *app) newServeCmd() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser editor with live preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&flags.doc, "doc", "", "seed the editor from a JSON or YAML document")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "reload the document file when it changes")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "default theme name")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "default theme variant")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, flags *serveFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Section("Serve")

	docPath := firstNonEmpty(flags.doc, a.cfg.Server.Document)
	watching := flags.watch || a.cfg.Server.Watch
	if watching && docPath == "" {
		return errors.New("serve: --watch needs --doc")
	}

	storeOptions := a.cfg.StoreOptions()
	if docPath != "" {
		doc, err := docfile.Load(ctx, docPath)
		if err != nil {
			return err
		}
		storeOptions = append(storeOptions, store.WithDocument(doc))
	}
	s := store.New(storeOptions...)
	unsubscribe := s.Subscribe(func(doc model.Document) {
		logger.Debug("document changed: %d projects", len(doc.Projects))
	})
	defer unsubscribe()

	srv, err := server.New(ctx, s, a.generator(),
		server.WithTheme(firstNonEmpty(flags.theme, a.cfg.Render.Theme), firstNonEmpty(flags.variant, a.cfg.Render.Variant)),
		server.WithStylesheet(a.cfg.Render.Stylesheet),
		server.WithMaxUpload(a.cfg.Store.MaxImageBytes),
		server.WithVersion(version),
	)
	if err != nil {
		return err
	}

	var watcher *watch.Watcher
	if watching {
		watcher, err = watch.New(docPath, s)
		if err != nil {
			return err
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.ListenAndServe(ctx, firstNonEmpty(flags.addr, a.cfg.Server.Addr))
	})
	if watcher != nil {
		group.Go(func() error {
			return watcher.Run(ctx)
		})
	}
	return group.Wait()
}
