package orchestrator

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/model"
)

// Transformer mutates the document copy before decorators run. Implementations
// can inject defaults, reorder projects or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, doc *model.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *model.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *model.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}
