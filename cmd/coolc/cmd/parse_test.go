package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFiles_PrintsIndentedTree(t *testing.T) {
	jsonOutput = false
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.cl")
	if err := os.WriteFile(path, []byte(`class Main { main(): Int { 0 }; };`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return parseFiles(parseCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "_program") || !strings.Contains(out, "_class Main Object") {
		t.Fatalf("expected indented tree dump, got: %s", out)
	}
}

func TestParseFiles_JSONFlagPrintsJSON(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.cl")
	if err := os.WriteFile(path, []byte(`class Main { main(): Int { 0 }; };`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return parseFiles(parseCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"tag": "program"`) {
		t.Fatalf("expected JSON program tag, got: %s", out)
	}
}

func TestParseFiles_MultiFileMergeAllowsCrossFileInheritance(t *testing.T) {
	jsonOutput = false
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.cl")
	mainPath := filepath.Join(dir, "main.cl")
	if err := os.WriteFile(aPath, []byte(`class A { x : Int; };`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := os.WriteFile(mainPath, []byte(`
class Main inherits A {
  main(): Int { x };
};`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return parseFiles(parseCmd, []string{aPath, mainPath})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "_class A Object") || !strings.Contains(out, "_class Main A") {
		t.Fatalf("expected both classes merged into one dump, got: %s", out)
	}
}

func TestParseFiles_SyntaxErrorReportedWithCaret(t *testing.T) {
	jsonOutput = false
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cl")
	if err := os.WriteFile(path, []byte(`class Main { main(): Int { 1 + }; };`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	_, err := captureStdout(t, func() error {
		return parseFiles(parseCmd, []string{path})
	})

	w.Close()
	os.Stderr = oldStderr
	var buf [4096]byte
	n, _ := r.Read(buf[:])
	stderr := string(buf[:n])

	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	if !strings.Contains(stderr, "^") {
		t.Fatalf("expected caret in error output, got: %s", stderr)
	}
}
