// Package docs converts the upstream guides into the wallet's embedded
// markdown dialect and reads that dialect back.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/starford/feather-contrib/internal/storage"
)

// Result summarises one conversion run.
type Result struct {
	Removed []string `json:"removed"`
	Written []string `json:"written"`
	Skipped []string `json:"skipped"`
}

// Option configures a Converter.
type Option func(*Converter)

// WithOutput sets where the name of every written file is printed.
func WithOutput(w io.Writer) Option {
	return func(c *Converter) {
		c.out = w
	}
}

// Converter performs full-replace conversions from a source directory into
// a destination directory.
type Converter struct {
	sourceDir string
	destDir   string
	out       io.Writer
}

// NewConverter returns a converter for the given directories.
func NewConverter(sourceDir, destDir string, opts ...Option) *Converter {
	c := &Converter{
		sourceDir: sourceDir,
		destDir:   destDir,
		out:       io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs a single conversion from sourceDir into destDir.
func Convert(ctx context.Context, sourceDir, destDir string, opts ...Option) (*Result, error) {
	return NewConverter(sourceDir, destDir, opts...).Run(ctx)
}

// Run clears every .md file in the destination, then writes one rendered
// file per qualifying source document. Documents that fail validation are
// skipped without error; any I/O error aborts the run.
func (c *Converter) Run(ctx context.Context) (*Result, error) {
	src, err := c.openSource()
	if err != nil {
		return nil, err
	}

	destAbs, err := filepath.Abs(c.destDir)
	if err != nil {
		return nil, fmt.Errorf("docs: resolve destination: %w", err)
	}
	if destAbs == src.Root() {
		return nil, fmt.Errorf("docs: destination %s is the source directory", destAbs)
	}

	dst, err := storage.EnsureFS(destAbs)
	if err != nil {
		return nil, fmt.Errorf("docs: open destination: %w", err)
	}

	res := &Result{}

	removed, err := dst.Clear()
	res.Removed = removed
	if err != nil {
		return res, fmt.Errorf("docs: clear destination: %w", err)
	}

	files, err := src.List()
	if err != nil {
		return res, fmt.Errorf("docs: enumerate source: %w", err)
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		data, err := src.Read(f.Name)
		if err != nil {
			return res, fmt.Errorf("docs: %w", err)
		}

		doc, ok := Parse(f.Name, data)
		if !ok {
			res.Skipped = append(res.Skipped, f.Name)
			continue
		}

		text, err := Render(doc)
		if err != nil {
			return res, err
		}
		if err := dst.Write(f.Name, []byte(text)); err != nil {
			return res, fmt.Errorf("docs: %w", err)
		}
		res.Written = append(res.Written, f.Name)

		if _, err := fmt.Fprintln(c.out, f.Name); err != nil {
			return res, fmt.Errorf("docs: report %s: %w", f.Name, err)
		}
	}

	return res, nil
}

func (c *Converter) openSource() (*storage.FS, error) {
	info, err := os.Stat(c.sourceDir)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, &MissingInputError{Path: c.sourceDir}
	}
	if err != nil {
		return nil, fmt.Errorf("docs: stat source: %w", err)
	}
	src, err := storage.NewFS(c.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("docs: open source: %w", err)
	}
	return src, nil
}
