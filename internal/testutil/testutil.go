// Package testutil provides shared test helpers for docs directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DocsDirs creates a temporary source directory and a destination path
// (not created) for converter tests.
func DocsDirs(t *testing.T) (sourceDir, destDir string) {
	t.Helper()
	root := t.TempDir()
	sourceDir = filepath.Join(root, "guides")
	if err := os.Mkdir(sourceDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return sourceDir, filepath.Join(root, "assets", "docs")
}

// WriteFiles writes name → content pairs into dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// ReadDir returns name → content for every regular file in dir.
func ReadDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		out[e.Name()] = string(data)
	}
	return out
}

// Guide builds a source guide with the given frontmatter lines and body.
func Guide(category, navTitle, title, body string) string {
	return "---\n" +
		"category: \"" + category + "\"\n" +
		"nav_title: \"" + navTitle + "\"\n" +
		"title: " + title + "\n" +
		"---\n" + body
}
