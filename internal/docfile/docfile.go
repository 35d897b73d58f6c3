// Package docfile reads and writes portfolio documents as JSON or YAML.
package docfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-portfolio/pkg/model"
)

var ErrEmpty = errors.New("docfile: document is empty")

// Loader reads documents from disk or from an fs.FS when one is configured.
type Loader struct {
	fs fs.FS
}

type Option func(*Loader)

// WithFS makes Load resolve names inside fsys instead of the OS filesystem.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

func NewLoader(options ...Option) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load reads and parses the document at path.
func (l *Loader) Load(ctx context.Context, path string) (model.Document, error) {
	if l != nil && l.fs != nil {
		return LoadFS(ctx, l.fs, path)
	}
	return Load(ctx, path)
}

// Load reads a document file from the OS filesystem.
func Load(ctx context.Context, path string) (model.Document, error) {
	if strings.TrimSpace(path) == "" {
		return model.Document{}, errors.New("docfile: path is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("docfile: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a document from fsys.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (model.Document, error) {
	if fsys == nil {
		return model.Document{}, errors.New("docfile: filesystem is not configured")
	}
	if name == "" {
		return model.Document{}, errors.New("docfile: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return model.Document{}, fmt.Errorf("docfile: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes JSON first and falls back to YAML. Projects without a
// positive unique id get the next free id in list order.
func Parse(data []byte, source string) (model.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Document{}, fmt.Errorf("%w: %s", ErrEmpty, source)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = model.Document{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return model.Document{}, fmt.Errorf("docfile: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	assignProjectIDs(&doc)
	return doc, nil
}

func assignProjectIDs(doc *model.Document) {
	next := doc.MaxProjectID() + 1
	seen := make(map[int64]struct{}, len(doc.Projects))
	for i := range doc.Projects {
		id := doc.Projects[i].ID
		if _, dup := seen[id]; id <= 0 || dup {
			id = next
			next++
			doc.Projects[i].ID = id
		}
		seen[id] = struct{}{}
	}
	if doc.Projects == nil {
		doc.Projects = []model.Project{}
	}
}

// Marshal encodes doc as YAML when format is "yaml" or "yml" and as indented
// JSON otherwise.
func Marshal(doc model.Document, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("docfile: encode yaml: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("docfile: encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// Write stores doc at path, picking the format from the file extension.
func Write(path string, doc model.Document) error {
	data, err := Marshal(doc, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("docfile: write %s: %w", path, err)
	}
	return nil
}
