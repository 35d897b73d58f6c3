// Package media converts uploaded image bytes into base64 data URIs that can
// be embedded directly into a self-contained HTML page.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrNotImage is returned when the payload is not a readable image.
	ErrNotImage = errors.New("media: payload is not a readable image")
	// ErrTooLarge is returned when the payload exceeds the configured limit.
	ErrTooLarge = errors.New("media: payload exceeds size limit")
)

// DefaultMaxBytes bounds a single image payload.
const DefaultMaxBytes = 10 << 20

// decodable MIME types are verified by decoding their header; the remaining
// image types are accepted on the strength of content sniffing alone.
var decodable = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// Encoder turns image bytes into data URIs.
type Encoder struct {
	maxBytes int64
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithMaxBytes overrides the payload limit. Non-positive values are ignored.
func WithMaxBytes(n int64) Option {
	return func(e *Encoder) {
		if n > 0 {
			e.maxBytes = n
		}
	}
}

// NewEncoder constructs an Encoder.
func NewEncoder(options ...Option) *Encoder {
	e := &Encoder{maxBytes: DefaultMaxBytes}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Encode validates data and returns "data:<mime>;base64,<payload>".
func (e *Encoder) Encode(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if int64(len(data)) > e.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}
	mime, err := Sniff(data)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// EncodeReader reads at most the configured limit from r and encodes it.
func (e *Encoder) EncodeReader(ctx context.Context, r io.Reader) (string, error) {
	if r == nil {
		return "", ErrNotImage
	}
	data, err := io.ReadAll(io.LimitReader(r, e.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("media: read payload: %w", err)
	}
	return e.Encode(ctx, data)
}

// Sniff reports the image MIME type of data or ErrNotImage.
func Sniff(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotImage
	}
	mime := mimetype.Detect(data).String()
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	if decodable[mime] {
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotImage, err)
		}
	}
	return mime, nil
}

// IsDataImage reports whether value is a base64 image data URI.
func IsDataImage(value string) bool {
	const prefix = "data:image/"
	if len(value) < len(prefix) || !strings.EqualFold(value[:len(prefix)], prefix) {
		return false
	}
	meta, _, ok := strings.Cut(value, ",")
	if !ok {
		return false
	}
	return strings.HasSuffix(strings.ToLower(meta), ";base64")
}
