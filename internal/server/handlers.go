package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/media"
	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/renderers/preview"
	"github.com/goliatone/go-portfolio/pkg/store"
	"github.com/goliatone/go-portfolio/pkg/theme"
)

type valueRequest struct {
	Value *string `json:"value"`
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{
		"error":     err.Error(),
		"requestId": c.GetString(requestIDKey),
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.version})
}

func (s *Server) openapi(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", contractYAML)
}

// etag identifies a document version as rendered with the requested theme.
func (s *Server) etag(c *gin.Context) string {
	tag := "v" + strconv.FormatUint(s.store.Version(), 10)
	if name := c.Query("theme"); name != "" {
		tag += "-" + name
	}
	if variant := c.Query("variant"); variant != "" {
		tag += "-" + variant
	}
	return strconv.Quote(tag)
}

// notModified answers 304 when the client already holds the current version.
func (s *Server) notModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

func (s *Server) render(ctx context.Context, c *gin.Context, doc model.Document, renderer string) ([]byte, error) {
	return s.generator.Generate(ctx, orchestrator.Request{
		Document:      &doc,
		Renderer:      renderer,
		ThemeName:     c.DefaultQuery("theme", s.themeName),
		ThemeVariant:  c.DefaultQuery("variant", s.themeVariant),
		RenderOptions: s.renderOptions,
	})
}

func renderStatus(err error) int {
	switch {
	case errors.Is(err, theme.ErrThemeNotFound), errors.Is(err, theme.ErrVariantNotFound):
		return http.StatusBadRequest
	case errors.Is(err, render.ErrRendererNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) editor(c *gin.Context) {
	doc := s.store.Snapshot()
	card, err := s.render(c.Request.Context(), c, doc, preview.Name)
	if err != nil {
		s.fail(c, renderStatus(err), err)
		return
	}
	out, err := s.shell.RenderTemplate(shellTemplate, shellData(doc, card))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("server: render shell: %w", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (s *Server) previewPage(c *gin.Context) {
	etag := s.etag(c)
	if s.notModified(c, etag) {
		return
	}
	body, err := s.render(c.Request.Context(), c, s.store.Snapshot(), page.Name)
	if err != nil {
		s.fail(c, renderStatus(err), err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (s *Server) previewCard(c *gin.Context) {
	body, err := s.render(c.Request.Context(), c, s.store.Snapshot(), preview.Name)
	if err != nil {
		s.fail(c, renderStatus(err), err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (s *Server) download(c *gin.Context) {
	artifact, err := export.Export(c.Request.Context(), s.generator, s.store.Snapshot(), export.Options{
		ThemeName:     c.DefaultQuery("theme", s.themeName),
		ThemeVariant:  c.DefaultQuery("variant", s.themeVariant),
		RenderOptions: s.renderOptions,
	})
	if err != nil {
		s.fail(c, renderStatus(err), err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}

func (s *Server) getDocument(c *gin.Context) {
	etag := s.etag(c)
	if s.notModified(c, etag) {
		return
	}
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func bindValue(c *gin.Context) (string, error) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", fmt.Errorf("invalid body: %w", err)
	}
	if req.Value == nil {
		return "", errors.New("invalid body: value is required")
	}
	return *req.Value, nil
}

func (s *Server) updateField(c *gin.Context) {
	field, err := model.ParseField(c.Param("field"))
	if err != nil {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	value, err := bindValue(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := s.store.UpdateField(field, value); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) addProject(c *gin.Context) {
	c.JSON(http.StatusCreated, s.store.AddProject())
}

func projectID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", c.Param("id"))
	}
	return id, nil
}

func (s *Server) updateProject(c *gin.Context) {
	id, err := projectID(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	field, err := model.ParseProjectField(c.Param("field"))
	if err != nil {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	value, err := bindValue(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	found, err := s.store.UpdateProject(id, field, value)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if !found {
		s.fail(c, http.StatusNotFound, fmt.Errorf("%w: %d", store.ErrProjectNotFound, id))
		return
	}
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) removeProject(c *gin.Context) {
	id, err := projectID(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	switch s.store.RemoveProject(id) {
	case store.Removed:
		c.Status(http.StatusNoContent)
	case store.NotFound:
		s.fail(c, http.StatusNotFound, fmt.Errorf("%w: %d", store.ErrProjectNotFound, id))
	case store.KeptLast:
		s.fail(c, http.StatusConflict, fmt.Errorf("at least %d project is required", s.store.MinProjects()))
	}
}

func (s *Server) updateContact(c *gin.Context) {
	channel, err := model.ParseContactChannel(c.Param("channel"))
	if err != nil {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	value, err := bindValue(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := s.store.UpdateContact(channel, value); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) uploadProfileImage(c *gin.Context) {
	s.upload(c, store.ProfileImage())
}

func (s *Server) uploadProjectImage(c *gin.Context) {
	id, err := projectID(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	s.upload(c, store.ProjectImage(id))
}

// upload converts the multipart "file" part and waits for the store to apply
// it. A later upload for the same target supersedes this one.
func (s *Server) upload(c *gin.Context, target store.ImageTarget) {
	header, err := c.FormFile("file")
	if err != nil {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("file part is required: %w", err))
		return
	}
	if header.Size > s.maxUpload {
		s.fail(c, http.StatusRequestEntityTooLarge, media.ErrTooLarge)
		return
	}
	file, err := header.Open()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if int64(len(data)) > s.maxUpload {
		s.fail(c, http.StatusRequestEntityTooLarge, media.ErrTooLarge)
		return
	}

	ctx := c.Request.Context()
	uri, err := s.store.LoadImage(ctx, target, data).Wait(ctx)
	if err != nil {
		s.fail(c, imageStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": uri})
}

func imageStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, media.ErrNotImage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
