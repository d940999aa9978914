// Package frontmatter splits a markdown document into a flat key/value
// header and its body.
//
// The header is read with a line and colon splitter, not a YAML parser:
// malformed input must fall through to "no frontmatter" rather than surface
// a structured error.
package frontmatter

import "strings"

// Delimiter opens and closes the frontmatter block.
const Delimiter = "---"

// Split separates the frontmatter from the body of doc. The document is cut
// at the first two occurrences of Delimiter anywhere in the text; whatever
// precedes the first one is discarded. ok is false when doc contains fewer
// than two delimiters.
func Split(doc string) (fm map[string]string, body string, ok bool) {
	if strings.Count(doc, Delimiter) < 2 {
		return nil, "", false
	}

	parts := strings.SplitN(doc, Delimiter, 3)
	fm = parseFields(parts[1])

	// The closing delimiter's line break belongs to the delimiter, not the body.
	body = strings.TrimPrefix(parts[2], "\r")
	body = strings.TrimPrefix(body, "\n")
	return fm, body, true
}

// parseFields reads "key: value" lines. The first line is the remainder of
// the opening delimiter line and is skipped.
func parseFields(front string) map[string]string {
	fields := make(map[string]string)
	lines := strings.Split(front, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields[key] = strings.Trim(value, " \t\"")
	}
	return fields
}
