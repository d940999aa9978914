package docs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/starford/feather-contrib/internal/apperr"
	"github.com/starford/feather-contrib/internal/storage"
)

// Catalog is a read-only view over a directory of generated docs.
type Catalog struct {
	store storage.Provider
}

// NewCatalog creates a catalog over store.
func NewCatalog(store storage.Provider) *Catalog {
	return &Catalog{store: store}
}

// OpenCatalog creates a catalog over dir, creating the directory when
// nothing has been generated yet.
func OpenCatalog(dir string) (*Catalog, error) {
	store, err := storage.EnsureFS(dir)
	if err != nil {
		return nil, err
	}
	return NewCatalog(store), nil
}

// List returns metadata for every generated doc, sorted by category then
// name. Files without readable metadata are listed by name only.
func (c *Catalog) List(_ context.Context) ([]DocMetadata, error) {
	files, err := c.store.List()
	if err != nil {
		return nil, err
	}
	out := make([]DocMetadata, 0, len(files))
	for _, f := range files {
		data, err := c.store.Read(f.Name)
		if err != nil {
			return nil, err
		}
		meta, _ := ReadMetadata(data)
		meta.Name = f.Name
		meta.Checksum = f.Checksum
		meta.UpdatedAt = f.UpdatedAt
		out = append(out, meta)
	}
	sortMetadata(out)
	return out, nil
}

// Read returns the raw content of a generated doc.
func (c *Catalog) Read(_ context.Context, name string) ([]byte, error) {
	data, err := c.store.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, apperr.ErrInvalidName) {
			return nil, fmt.Errorf("%w: %s", apperr.ErrNotFound, name)
		}
		return nil, err
	}
	return data, nil
}
