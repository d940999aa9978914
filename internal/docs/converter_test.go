package docs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/feather-contrib/internal/apperr"
	"github.com/starford/feather-contrib/internal/testutil"
)

func TestConvert_WritesQualifyingOnly(t *testing.T) {
	src, dst := testutil.DocsDirs(t)
	testutil.WriteFiles(t, src, map[string]string{
		"fees.md":   testutil.Guide("faq", "Fees (explained)", "Fee FAQ", "Body text here.\n"),
		"start.md":  testutil.Guide("getting-started", "Start", "Getting started", "Hi.\n"),
		"news.md":   testutil.Guide("news", "News", "News", "x\n"),
		"nonav.md":  "---\ncategory: faq\ntitle: T\n---\nbody\n",
		"plain.md":  "# no frontmatter\n",
		"empty.md":  "",
		"notes.txt": testutil.Guide("faq", "Txt", "Txt", "x\n"),
	})

	var out bytes.Buffer
	res, err := Convert(context.Background(), src, dst, WithOutput(&out))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	got := testutil.ReadDir(t, dst)
	if len(got) != 2 {
		t.Fatalf("outputs = %v, want fees.md and start.md", keys(got))
	}
	if _, ok := got["fees.md"]; !ok {
		t.Error("fees.md missing")
	}
	if _, ok := got["start.md"]; !ok {
		t.Error("start.md missing")
	}
	if len(res.Written) != 2 || len(res.Skipped) != 4 {
		t.Errorf("written = %v, skipped = %v", res.Written, res.Skipped)
	}

	printed := strings.Fields(out.String())
	if len(printed) != 2 {
		t.Errorf("printed = %q", out.String())
	}
}

func TestConvert_ExampleOutput(t *testing.T) {
	src, dst := testutil.DocsDirs(t)
	testutil.WriteFiles(t, src, map[string]string{
		"fees.md": "---\ncategory: \"faq\"\nnav_title: \"Fees (explained)\"\ntitle: Fee FAQ\n---\nBody text here.\n",
	})

	if _, err := Convert(context.Background(), src, dst); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "fees.md"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "[nav_title]: # (Fees \\(explained\\))\n[category]: # (3. Faq)\n\n## Fee FAQ\nBody text here.\n"
	if !strings.HasPrefix(string(data), want) {
		t.Errorf("output = %q, want prefix %q", data, want)
	}
}

func TestConvert_ClearsDestinationEvenWithNoOutput(t *testing.T) {
	src, dst := testutil.DocsDirs(t)
	testutil.WriteFiles(t, src, map[string]string{
		"bad.md": "no frontmatter",
	})
	testutil.WriteFiles(t, dst, map[string]string{
		"stale.md":  "old",
		"other.md":  "old",
		"image.png": "binary",
	})

	res, err := Convert(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	got := testutil.ReadDir(t, dst)
	if len(got) != 1 {
		t.Fatalf("destination = %v, want only image.png", keys(got))
	}
	if _, ok := got["image.png"]; !ok {
		t.Error("non-markdown file must survive")
	}
	if len(res.Removed) != 2 {
		t.Errorf("removed = %v", res.Removed)
	}
}

func TestConvert_Idempotent(t *testing.T) {
	src, dst := testutil.DocsDirs(t)
	testutil.WriteFiles(t, src, map[string]string{
		"a.md": testutil.Guide("howto", "How (to)", "How to", "Steps.\n"),
		"b.md": testutil.Guide("help", "Help", "Help", "Ask.\n"),
		"c.md": "---\ncategory: unknown\n---\n",
	})

	if _, err := Convert(context.Background(), src, dst); err != nil {
		t.Fatalf("first Convert: %v", err)
	}
	first := testutil.ReadDir(t, dst)

	if _, err := Convert(context.Background(), src, dst); err != nil {
		t.Fatalf("second Convert: %v", err)
	}
	second := testutil.ReadDir(t, dst)

	if len(first) != len(second) {
		t.Fatalf("file sets differ: %v vs %v", keys(first), keys(second))
	}
	for name, content := range first {
		if second[name] != content {
			t.Errorf("%s differs across runs", name)
		}
	}
}

func TestConvert_MissingSource(t *testing.T) {
	root := t.TempDir()
	dst := filepath.Join(root, "out")
	testutil.WriteFiles(t, dst, map[string]string{"keep.md": "existing"})

	_, err := Convert(context.Background(), filepath.Join(root, "missing"), dst)
	if err == nil {
		t.Fatal("expected error")
	}
	var missing *MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingInputError, got %T: %v", err, err)
	}
	if !errors.Is(err, apperr.ErrMissingInput) {
		t.Error("expected errors.Is ErrMissingInput")
	}
	if !strings.Contains(err.Error(), InitHint) {
		t.Errorf("message lacks init hint: %q", err.Error())
	}

	got := testutil.ReadDir(t, dst)
	if got["keep.md"] != "existing" {
		t.Error("destination must be untouched when the source is missing")
	}
}

func TestConvert_SourceIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "guides")
	testutil.WriteFiles(t, root, map[string]string{"guides": "not a dir"})

	_, err := Convert(context.Background(), file, filepath.Join(root, "out"))
	var missing *MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingInputError, got %v", err)
	}
}

func TestConvert_DestinationEqualsSource(t *testing.T) {
	src, _ := testutil.DocsDirs(t)
	testutil.WriteFiles(t, src, map[string]string{"a.md": testutil.Guide("faq", "A", "A", "x")})

	if _, err := Convert(context.Background(), src, src); err == nil {
		t.Fatal("expected error when destination is the source")
	}
	if got := testutil.ReadDir(t, src); len(got) != 1 {
		t.Error("source must be untouched")
	}
}

func TestConvert_NonRecursive(t *testing.T) {
	src, dst := testutil.DocsDirs(t)
	testutil.WriteFiles(t, filepath.Join(src, "nested"), map[string]string{
		"deep.md": testutil.Guide("faq", "Deep", "Deep", "x"),
	})

	res, err := Convert(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(res.Written) != 0 {
		t.Errorf("nested files must be ignored, wrote %v", res.Written)
	}
}

func TestConvert_CancelledContext(t *testing.T) {
	src, dst := testutil.DocsDirs(t)
	testutil.WriteFiles(t, src, map[string]string{"a.md": testutil.Guide("faq", "A", "A", "x")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Convert(ctx, src, dst); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
