package portfolio

import (
	"io/fs"

	"github.com/goliatone/go-portfolio/internal/docfile"
	"github.com/goliatone/go-portfolio/pkg/orchestrator"
)

// NewLoader returns a document loader reading JSON or YAML files from disk.
func NewLoader() orchestrator.DocumentLoader {
	return docfile.NewLoader()
}

// NewFSLoader returns a document loader resolving paths inside fsys.
func NewFSLoader(fsys fs.FS) orchestrator.DocumentLoader {
	return docfile.NewLoader(docfile.WithFS(fsys))
}
