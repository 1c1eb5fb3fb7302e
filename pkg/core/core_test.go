package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestClean(t *testing.T) {
	out, n := Clean("family \U0001F468‍\U0001F469‍\U0001F467‍\U0001F466 here")
	if out != "family  here" {
		t.Fatalf("got %q", out)
	}
	if n != 1 {
		t.Fatalf("ZWJ family should count once, got %d", n)
	}
	if Count("no emoji") != 0 {
		t.Fatal("plain text should count zero")
	}
}

func TestScan_Smoke(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi \U0001F44B"), 0644); err != nil {
		t.Fatal(err)
	}
	results, err := Scan(Config{Paths: []string{dir}, Root: dir})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(results) != 1 || results[0].Removed != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}
	// dry-run: file untouched
	got, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(got) != "hi \U0001F44B" {
		t.Fatalf("Scan must not modify files, got %q", got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	rs := []FileResult{{Path: "a.txt", Removed: 2, Success: true}}
	var buf bytes.Buffer
	if err := MarshalResults(&buf, rs); err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalResults(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || back[0] != rs[0] {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
