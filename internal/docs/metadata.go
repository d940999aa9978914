package docs

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrNoMetadata is returned when a file lacks the nav_title or category
// reference definitions.
var ErrNoMetadata = errors.New("metadata references missing")

// DocMetadata is what a CommonMark reader recovers from a generated file.
type DocMetadata struct {
	Name      string    `json:"name"`
	NavTitle  string    `json:"nav_title"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

var markdown = goldmark.New()

// ReadMetadata parses a generated file and returns its embedded metadata.
// The values come from link reference definitions, the same place the
// wallet's renderer finds them, so a file that reads back here is laid out
// correctly.
func ReadMetadata(data []byte) (DocMetadata, error) {
	pctx := parser.NewContext()
	root := markdown.Parser().Parse(text.NewReader(data), parser.WithContext(pctx))

	var meta DocMetadata
	if ref, ok := pctx.Reference(KeyNavTitle); ok {
		meta.NavTitle = string(util.UnescapePunctuations(ref.Title()))
	}
	if ref, ok := pctx.Reference(KeyCategory); ok {
		meta.Category = string(util.UnescapePunctuations(ref.Title()))
	}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 2 {
			meta.Title = string(h.Text(data))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if meta.NavTitle == "" || meta.Category == "" {
		return meta, fmt.Errorf("docs: %w", ErrNoMetadata)
	}
	return meta, nil
}

// sortMetadata orders entries the way the wallet's sidebar does: by
// numbered category label, then by file name.
func sortMetadata(items []DocMetadata) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
}
