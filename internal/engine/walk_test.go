package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nomoji/nomoji/internal/ignore"
)

func collect(t *testing.T, root string, cfg Config) []string {
	t.Helper()
	ign, _ := ignore.Load(filepath.Join(root, ".nomojiignore"))
	var got []string
	if err := Walk(root, cfg, ign, func(path, rel string) {
		got = append(got, rel)
	}); err != nil {
		t.Fatal(err)
	}
	return got
}

func TestWalk_IgnoreAndMaxBytes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "ok")
	if err := os.WriteFile(filepath.Join(dir, "big.txt"), make([]byte, 1<<20+1), 0o644); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "skipme.txt", "nope")
	writeFile(t, dir, ".nomojiignore", "skipme.txt\n")

	got := collect(t, dir, Config{MaxBytes: 1 << 20})
	if len(got) != 1 || got[0] != "a.txt" {
		t.Fatalf("expected only a.txt, got %v", got)
	}
}

func TestWalk_DefaultExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.txt", "x")
	nm := filepath.Join(dir, "node_modules")
	if err := os.MkdirAll(nm, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, nm, "dep.js", "y")
	writeFile(t, dir, "bundle.min.js", "z")
	writeFile(t, dir, "yarn.lock", "w")

	got := collect(t, dir, Config{DefaultExcludes: true})
	if len(got) != 1 || got[0] != "keep.txt" {
		t.Fatalf("default excludes not applied, got %v", got)
	}

	// without default excludes everything is eligible
	got = collect(t, dir, Config{})
	if len(got) != 4 {
		t.Fatalf("expected 4 files without default excludes, got %v", got)
	}
}

func TestWalk_Globs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "x")
	writeFile(t, dir, "b.txt", "y")
	sub := filepath.Join(dir, "docs")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "c.md", "z")

	got := collect(t, dir, Config{IncludeGlobs: "**/*.md"})
	if len(got) != 2 {
		t.Fatalf("expected the two .md files, got %v", got)
	}

	got = collect(t, dir, Config{ExcludeGlobs: "docs/**"})
	if len(got) != 2 {
		t.Fatalf("expected the two top-level files, got %v", got)
	}
}

func TestWalk_SkipsOwnFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x")
	writeFile(t, dir, ".nomojicache.json", "{}")
	writeFile(t, dir, ".nomoji.yml", "threads: 1\n")

	got := collect(t, dir, Config{})
	if len(got) != 1 || got[0] != "a.txt" {
		t.Fatalf("own files must be skipped, got %v", got)
	}
}

func TestInlineIgnoreDirective(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gen.txt", "nomoji:ignore-file\nsome 😀 emoji")

	res, err := Run(Config{Paths: []string{dir}, Root: dir, DryRun: true, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res.Files))
	}
	if !res.Files[0].Skipped || res.Files[0].Removed != 0 {
		t.Fatalf("directive must skip the file: %+v", res.Files[0])
	}
}

func TestLooksBinary(t *testing.T) {
	if !looksBinary([]byte{'a', 0, 'b'}) {
		t.Fatal("NUL byte must flag binary")
	}
	if looksBinary([]byte("plain text")) {
		t.Fatal("plain text flagged as binary")
	}
}

func TestLooksNonTextMIME(t *testing.T) {
	if !looksNonTextMIME("photo.png", nil) {
		t.Fatal("png extension must be treated as non-text")
	}
	if !looksNonTextMIME("data", []byte("PK\x03\x04rest")) {
		t.Fatal("zip header must be treated as non-text")
	}
	if looksNonTextMIME("notes.txt", []byte("hello")) {
		t.Fatal("text flagged as non-text")
	}
}
