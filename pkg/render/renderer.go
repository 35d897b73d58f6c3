package render

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/model"
)

// Renderer converts a portfolio document into a byte representation (a full
// HTML page, a preview fragment, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc model.Document, options RenderOptions) ([]byte, error)
}
