// Package watch reloads a document file into the store whenever it changes
// on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-portfolio/internal/docfile"
	"github.com/goliatone/go-portfolio/internal/logger"
	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/store"
)

// DefaultDebounce coalesces the burst of events editors emit per save.
const DefaultDebounce = 150 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithOnReload registers a callback run after each successful reload.
func WithOnReload(fn func(model.Document)) Option {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithOnError registers a callback for reload failures. Failures never stop
// the watcher; the store keeps its previous document.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher keeps a store in sync with a document file.
type Watcher struct {
	path     string
	store    *store.Store
	loader   *docfile.Loader
	debounce time.Duration
	onReload func(model.Document)
	onError  func(error)
}

// New constructs a watcher for path.
func New(path string, s *store.Store, options ...Option) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("watch: path is required")
	}
	if s == nil {
		return nil, errors.New("watch: store is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		store:    s,
		loader:   docfile.NewLoader(),
		debounce: DefaultDebounce,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w, nil
}

// Reload reads the file and replaces the store document.
func (w *Watcher) Reload(ctx context.Context) error {
	doc, err := w.loader.Load(ctx, w.path)
	if err != nil {
		return fmt.Errorf("watch: reload: %w", err)
	}
	w.store.Replace(doc)
	logger.WithFields(logger.Fields{"path": w.path, "projects": len(doc.Projects)}).Info("document reloaded")
	if w.onReload != nil {
		w.onReload(w.store.Snapshot())
	}
	return nil
}

// Run watches until ctx is cancelled. The parent directory is watched so
// editors that save by rename are still observed.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.path), err)
	}
	logger.Debug("watching %s", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.report(fmt.Errorf("watch: %w", err))
		case <-timer.C:
			if err := w.Reload(ctx); err != nil {
				w.report(err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) report(err error) {
	logger.Warn("%v", err)
	if w.onError != nil {
		w.onError(err)
	}
}
