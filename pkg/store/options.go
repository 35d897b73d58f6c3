package store

import (
	"context"
	"time"

	"github.com/goliatone/go-portfolio/pkg/media"
	"github.com/goliatone/go-portfolio/pkg/model"
)

// DefaultMinProjects is the number of projects the store refuses to go below.
const DefaultMinProjects = 1

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to derive project ids.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMinProjects sets the minimum project count RemoveProject preserves.
// Zero allows an empty list; negative values are ignored.
func WithMinProjects(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.minProjects = n
		}
	}
}

// ImageEncoder converts raw image bytes into a data URI.
type ImageEncoder interface {
	Encode(ctx context.Context, data []byte) (string, error)
}

var _ ImageEncoder = (*media.Encoder)(nil)

// WithEncoder injects the image encoder used by LoadImage.
func WithEncoder(encoder ImageEncoder) Option {
	return func(s *Store) {
		if encoder != nil {
			s.encoder = encoder
		}
	}
}

// WithDocument seeds the store with an existing document instead of
// model.NewDocument.
func WithDocument(doc model.Document) Option {
	return func(s *Store) {
		s.seed = &doc
	}
}
