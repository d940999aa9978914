package docs

import (
	"fmt"
	"strings"

	"github.com/starford/feather-contrib/internal/frontmatter"
)

// Frontmatter keys every guide must carry.
const (
	KeyCategory = "category"
	KeyNavTitle = "nav_title"
	KeyTitle    = "title"
)

// Document is a source guide that passed validation.
type Document struct {
	Name        string
	Frontmatter map[string]string
	Body        string
}

// Category returns the category slug.
func (d Document) Category() string { return d.Frontmatter[KeyCategory] }

// NavTitle returns the sidebar title.
func (d Document) NavTitle() string { return d.Frontmatter[KeyNavTitle] }

// Title returns the page heading.
func (d Document) Title() string { return d.Frontmatter[KeyTitle] }

// Parse validates a source file. ok is false for any document that must be
// skipped: empty content, no frontmatter block, a missing required key, or
// an unknown category.
func Parse(name string, data []byte) (doc Document, ok bool) {
	if len(data) == 0 {
		return Document{}, false
	}
	fm, body, found := frontmatter.Split(string(data))
	if !found {
		return Document{}, false
	}
	for _, key := range []string{KeyCategory, KeyNavTitle, KeyTitle} {
		if _, present := fm[key]; !present {
			return Document{}, false
		}
	}
	if _, known := CategoryLabel(fm[KeyCategory]); !known {
		return Document{}, false
	}
	return Document{Name: name, Frontmatter: fm, Body: body}, true
}

var parenEscaper = strings.NewReplacer("(", `\(`, ")", `\)`)

// EscapeParens backslash-escapes every parenthesis so the value can sit
// inside a parenthesised link reference title.
func EscapeParens(s string) string {
	return parenEscaper.Replace(s)
}

// Render produces the output dialect: two link reference definitions that a
// CommonMark renderer hides, a blank line, the title heading, and the body.
// The layout is matched character for character by the wallet's reader.
func Render(doc Document) (string, error) {
	label, ok := CategoryLabel(doc.Category())
	if !ok {
		return "", fmt.Errorf("docs: render %s: unknown category %q", doc.Name, doc.Category())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]: # (%s)\n", KeyNavTitle, EscapeParens(doc.NavTitle()))
	fmt.Fprintf(&b, "[%s]: # (%s)\n", KeyCategory, label)
	b.WriteString("\n")
	fmt.Fprintf(&b, "## %s\n", doc.Title())
	b.WriteString(doc.Body)
	return b.String(), nil
}
