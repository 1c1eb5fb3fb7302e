package nomoji

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestCLI_Scan_JSON_Shape(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("done ✅ ship \U0001F680\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// run as subprocess to avoid os.Exit in-process
	cmd := exec.Command("go", "run", ".", "scan", "--json", "-p", dir)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	var arr []map[string]any
	if err := json.Unmarshal(out.Bytes(), &arr); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, out.String())
	}
	if len(arr) != 1 {
		t.Fatalf("expected one result, got %d", len(arr))
	}
	if removed, _ := arr[0]["removed"].(float64); removed != 2 {
		t.Fatalf("expected 2 emoji counted, got %v", arr[0]["removed"])
	}
}

func TestCLI_Clean_Stdin(t *testing.T) {
	cmd := exec.Command("go", "run", ".", "clean", "-")
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	cmd.Stdin = strings.NewReader("keep \U0001F1EF\U0001F1F5 this\n")
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		t.Fatalf("execute: %v\n%s", err, errOut.String())
	}
	if out.String() != "keep  this\n" {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Removed 1 emoji") {
		t.Fatalf("expected removal report on stderr, got: %q", errOut.String())
	}
}

func TestCLI_Clean_InPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello \U0001F600 world\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command("go", "run", ".", "clean", "-i", path)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	var errOut bytes.Buffer
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		t.Fatalf("execute: %v\n%s", err, errOut.String())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello  world\n" {
		t.Fatalf("file not cleaned: %q", got)
	}
}

func TestCleanStdin_ReportsCount(t *testing.T) {
	var out bytes.Buffer
	if err := cleanStdin(strings.NewReader("a \U0001F389 b"), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "a  b" {
		t.Fatalf("got %q", out.String())
	}
}
