// Package server exposes the portfolio store over HTTP: an editor shell, the
// live page and card previews, a small JSON API and the HTML download.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-portfolio/internal/logger"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/render"
	rendertemplate "github.com/goliatone/go-portfolio/pkg/render/template"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/store"
)

const (
	// DefaultMaxUpload bounds multipart image uploads.
	DefaultMaxUpload int64 = 10 << 20
	// DefaultShutdownGrace is how long in-flight requests get on shutdown.
	DefaultShutdownGrace = 5 * time.Second
)

// Option configures a Server.
type Option func(*Server)

// WithTheme sets the theme and variant used when a request names none.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithRenderOptions sets the render options passed to every render.
func WithRenderOptions(options render.RenderOptions) Option {
	return func(s *Server) {
		s.renderOptions = options
	}
}

// WithMaxUpload overrides DefaultMaxUpload. Non-positive values are ignored.
func WithMaxUpload(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithStylesheet sets the stylesheet referenced by the editor shell.
func WithStylesheet(ref string) Option {
	return func(s *Server) {
		s.stylesheet = ref
	}
}

// WithVersion sets the version reported by /healthz.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithShutdownGrace overrides DefaultShutdownGrace.
func WithShutdownGrace(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.grace = d
		}
	}
}

// Server serves one editing session.
type Server struct {
	store         *store.Store
	generator     *orchestrator.Orchestrator
	contract      *openapi3.T
	shell         rendertemplate.TemplateRenderer
	engine        *gin.Engine
	themeName     string
	themeVariant  string
	renderOptions render.RenderOptions
	maxUpload     int64
	stylesheet    string
	version       string
	grace         time.Duration
}

// New builds the HTTP handler for s. The embedded API contract is validated
// up front so a broken build fails at start-up.
func New(ctx context.Context, s *store.Store, gen *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if s == nil {
		return nil, errors.New("server: store is required")
	}
	if gen == nil {
		gen = orchestrator.New()
	}

	srv := &Server{
		store:      s,
		generator:  gen,
		maxUpload:  DefaultMaxUpload,
		stylesheet: page.DefaultStylesheet,
		version:    "dev",
		grace:      DefaultShutdownGrace,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(srv)
	}

	contract, err := loadContract(ctx)
	if err != nil {
		return nil, err
	}
	srv.contract = contract

	shell, err := newShellEngine(srv.stylesheet)
	if err != nil {
		return nil, err
	}
	srv.shell = shell

	srv.engine = srv.routes()
	return srv, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Contract returns the parsed API description.
func (s *Server) Contract() *openapi3.T {
	return s.contract
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), requestID(), accessLog(), cors.New(loopbackCORS()))

	r.GET("/healthz", s.health)
	r.GET("/", s.editor)
	r.GET("/preview", s.previewPage)
	r.GET("/preview/card", s.previewCard)
	r.GET("/download", s.download)
	r.GET("/openapi.yaml", s.openapi)

	api := r.Group("/api")
	api.GET("/document", s.getDocument)
	api.PUT("/document/:field", s.updateField)
	api.POST("/projects", s.addProject)
	api.PUT("/projects/:id/:field", s.updateProject)
	api.DELETE("/projects/:id", s.removeProject)
	api.PUT("/contacts/:channel", s.updateContact)
	api.POST("/images/profile", s.uploadProfileImage)
	api.POST("/images/projects/:id", s.uploadProjectImage)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for the configured grace period.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	logger.Info("listening on http://%s", addr)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
