// Package storage defines the flat markdown directory abstraction used by
// the docs converter.
package storage

import "github.com/starford/feather-contrib/internal/models"

// Provider is the interface for markdown file operations within one directory.
// Names are base filenames; subdirectories are not traversed.
type Provider interface {
	// Root returns the absolute directory path.
	Root() string
	// List returns metadata for every .md file directly under the root.
	List() ([]models.FileMetadata, error)
	// Read returns the raw bytes of the named file.
	Read(name string) ([]byte, error)
	// Write atomically writes content to the named file.
	Write(name string, content []byte) error
	// Delete removes the named file.
	Delete(name string) error
	// Clear removes every .md file directly under the root and returns
	// the removed names.
	Clear() ([]string, error)
}
