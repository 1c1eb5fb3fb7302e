package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRun_InPlace(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.txt", "Hello 😀 World 🌍")

	res, err := Run(Config{Paths: []string{p}, Root: dir, InPlace: true, NoCache: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res.Files))
	}
	fr := res.Files[0]
	if !fr.Success || fr.Removed != 2 {
		t.Fatalf("unexpected result: %+v", fr)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "Hello  World " {
		t.Fatalf("file not cleaned: %q", b)
	}
}

func TestRun_BackupMode(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.txt", "keep 🔥 this")

	res, err := Run(Config{Paths: []string{p}, Root: dir, Backup: true, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Files[0].Success || res.Files[0].Removed != 1 {
		t.Fatalf("unexpected result: %+v", res.Files[0])
	}
	backup, err := os.ReadFile(p + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "keep 🔥 this" {
		t.Fatalf("backup must hold the original: %q", backup)
	}
	cleaned, _ := os.ReadFile(p)
	if string(cleaned) != "keep  this" {
		t.Fatalf("file not cleaned: %q", cleaned)
	}
}

func TestRun_BackupCustomSuffix(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.txt", "x 😀")

	_, err := Run(Config{Paths: []string{p}, Root: dir, Backup: true, BackupSuffix: ".orig", NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p + ".orig"); err != nil {
		t.Fatalf("custom-suffix backup missing: %v", err)
	}
}

func TestRun_DryRunLeavesFileAlone(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.txt", "Test 🚀 content")

	res, err := Run(Config{Paths: []string{p}, Root: dir, DryRun: true, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Files[0].Removed != 1 {
		t.Fatalf("dry run must still count: %+v", res.Files[0])
	}
	b, _ := os.ReadFile(p)
	if string(b) != "Test 🚀 content" {
		t.Fatalf("dry run modified the file: %q", b)
	}
}

func TestRun_StdoutModePreservesOrder(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "1.txt", "one 😀\n")
	p2 := writeFile(t, dir, "2.txt", "two 🌍\n")
	p3 := writeFile(t, dir, "3.txt", "three\n")

	var buf bytes.Buffer
	res, err := Run(Config{
		Paths:   []string{p1, p2, p3},
		Root:    dir,
		Output:  &buf,
		Threads: 4,
		NoCache: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "one \ntwo \nthree\n" {
		t.Fatalf("output out of order or dirty: %q", got)
	}
	for _, fr := range res.Files {
		if !fr.Success {
			t.Fatalf("unexpected failure: %+v", fr)
		}
	}
}

func TestRun_MissingFileDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "ok.txt", "fine 😀")
	missing := filepath.Join(dir, "absent.txt")

	res, err := Run(Config{Paths: []string{missing, p}, Root: dir, DryRun: true, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res.Files))
	}
	if res.Files[0].Success || res.Files[0].Error == "" {
		t.Fatalf("missing file must fail with an error: %+v", res.Files[0])
	}
	if !res.Files[1].Success || res.Files[1].Removed != 1 {
		t.Fatalf("remaining file must still process: %+v", res.Files[1])
	}
}

func TestRun_InvalidUTF8Rejected(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(p, []byte{'h', 'i', 0xFF, 0xFE, '!'}, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(Config{Paths: []string{p}, Root: dir, DryRun: true, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	fr := res.Files[0]
	if fr.Success || fr.Error != "input is not valid UTF-8" {
		t.Fatalf("expected UTF-8 rejection, got %+v", fr)
	}
}

func TestRun_DirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one 😀")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "b.txt", "two 🌍 three 🔥")

	res, err := Run(Config{Paths: []string{dir}, Root: dir, DryRun: true, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, fr := range res.Files {
		total += fr.Removed
	}
	if len(res.Files) != 2 || total != 3 {
		t.Fatalf("expected 2 files with 3 emoji, got %d files %d emoji", len(res.Files), total)
	}
}

func TestRun_CacheSkipsKnownCleanFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.txt", "no emoji here")

	// first dry run records the clean hash
	if _, err := Run(Config{Paths: []string{dir}, Root: dir, DryRun: true}); err != nil {
		t.Fatal(err)
	}
	res, err := Run(Config{Paths: []string{dir}, Root: dir, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Files[0].Skipped {
		t.Fatalf("second run should skip the cached clean file: %+v", res.Files[0])
	}

	// changing the file invalidates the cache entry
	writeFile(t, dir, "clean.txt", "now with 😀")
	res, err = Run(Config{Paths: []string{dir}, Root: dir, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, fr := range res.Files {
		if fr.Skipped {
			t.Fatalf("modified file must not be skipped: %+v", fr)
		}
		if fr.Removed != 1 {
			t.Fatalf("expected 1 removed after edit, got %+v", fr)
		}
	}
}

func TestRun_ParallelManyFiles(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 50; i++ {
		writeFile(t, dir, fmt.Sprintf("f%02d.txt", i), fmt.Sprintf("file %d 😀🌍", i))
	}
	res, err := Run(Config{Paths: []string{dir}, Root: dir, InPlace: true, Threads: 8, NoCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 50 {
		t.Fatalf("expected 50 results, got %d", len(res.Files))
	}
	for _, fr := range res.Files {
		if !fr.Success || fr.Removed != 2 {
			t.Fatalf("unexpected result: %+v", fr)
		}
	}
}

func TestCountTargets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x")
	writeFile(t, dir, "b.txt", "y")
	writeFile(t, dir, "c.min.js", "z")

	n, err := CountTargets(Config{Paths: []string{dir}, Root: dir, DefaultExcludes: true})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 targets, got %d", n)
	}
}

func TestAllowedByGlobs(t *testing.T) {
	cfg := Config{IncludeGlobs: "**/*.md,*.txt", ExcludeGlobs: "drafts/**"}
	cases := map[string]bool{
		"readme.md":     true,
		"docs/guide.md": true,
		"notes.txt":     true,
		"drafts/wip.md": false,
		"image.png":     false,
		"src/main.go":   false,
	}
	for p, want := range cases {
		if got := allowedByGlobs(p, cfg); got != want {
			t.Fatalf("allowedByGlobs(%q)=%v want %v", p, got, want)
		}
	}
}
