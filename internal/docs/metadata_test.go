package docs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yuin/goldmark"

	"github.com/starford/feather-contrib/internal/apperr"
	"github.com/starford/feather-contrib/internal/storage"
)

func renderFixture(t *testing.T, category, navTitle, title, body string) string {
	t.Helper()
	doc := Document{Name: "x.md", Body: body, Frontmatter: map[string]string{
		KeyCategory: category, KeyNavTitle: navTitle, KeyTitle: title,
	}}
	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestReadMetadata_RoundTrip(t *testing.T) {
	out := renderFixture(t, "faq", "Fees (explained)", "Fee FAQ", "Body text here.\n")

	meta, err := ReadMetadata([]byte(out))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if meta.NavTitle != "Fees (explained)" {
		t.Errorf("nav_title = %q", meta.NavTitle)
	}
	if meta.Category != "3. Faq" {
		t.Errorf("category = %q", meta.Category)
	}
	if meta.Title != "Fee FAQ" {
		t.Errorf("title = %q", meta.Title)
	}
}

func TestRender_MetadataInvisible(t *testing.T) {
	out := renderFixture(t, "advanced", "Cold (offline) signing", "Offline signing", "Use two machines.\n")

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(out), &html); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	got := html.String()
	if strings.Contains(got, "nav_title") || strings.Contains(got, "4. Advanced") {
		t.Errorf("metadata leaked into rendered output: %q", got)
	}
	if !strings.HasPrefix(got, "<h2>Offline signing</h2>") {
		t.Errorf("rendered output should start with the heading: %q", got)
	}
}

func TestReadMetadata_Missing(t *testing.T) {
	_, err := ReadMetadata([]byte("## Just a heading\ntext\n"))
	if !errors.Is(err, ErrNoMetadata) {
		t.Errorf("expected ErrNoMetadata, got %v", err)
	}
}

func TestCatalog_ListAndRead(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	_ = store.Write("b.md", []byte(renderFixture(t, "faq", "B", "B", "b\n")))
	_ = store.Write("a.md", []byte(renderFixture(t, "faq", "A", "A", "a\n")))
	_ = store.Write("start.md", []byte(renderFixture(t, "getting-started", "Start", "Start", "s\n")))
	_ = store.Write("loose.md", []byte("no metadata\n"))

	cat := NewCatalog(store)
	items, err := cat.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	want := []string{"loose.md", "start.md", "a.md", "b.md"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", names, want)
	}
	if items[1].Category != "1. Getting started" || items[1].Checksum == "" {
		t.Errorf("unexpected entry: %+v", items[1])
	}

	data, err := cat.Read(context.Background(), "a.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.HasPrefix(string(data), "[nav_title]: # (A)") {
		t.Errorf("content = %q", data)
	}

	for _, name := range []string{"missing.md", "../a.md"} {
		if _, err := cat.Read(context.Background(), name); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Read(%q): expected ErrNotFound, got %v", name, err)
		}
	}
}
