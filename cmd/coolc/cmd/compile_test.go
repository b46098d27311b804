package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, f func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	os.Stdout = w

	runErr := f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func resetCompileFlags() {
	toStdout = false
	outDir = ""
	dumpTables = false
	cfg.OutputDir = ""
}

func TestCompileFiles_StdoutWritesAssembly(t *testing.T) {
	resetCompileFlags()
	defer resetCompileFlags()

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.cl")
	if err := os.WriteFile(path, []byte(`
class Main inherits IO {
  main(): Object { out_string("hi\n") };
};`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	toStdout = true
	out, err := captureStdout(t, func() error {
		return compileFiles(compileCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "\t.data\n") || !strings.Contains(out, "\t.text\n") {
		t.Fatalf("expected assembly sections in output, got: %s", out)
	}
	if !strings.Contains(out, "Main_protObj") {
		t.Fatalf("expected Main_protObj in output, got: %s", out)
	}
}

func TestCompileFiles_WritesFileNextToSource(t *testing.T) {
	resetCompileFlags()
	defer resetCompileFlags()

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.cl")
	if err := os.WriteFile(path, []byte(`class Main inherits IO { main(): Int { 0 }; };`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := captureStdout(t, func() error {
		return compileFiles(compileCmd, []string{path})
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOut := filepath.Join(dir, "hello.s")
	if _, err := os.Stat(wantOut); err != nil {
		t.Fatalf("expected output file %s to exist: %v", wantOut, err)
	}
}

func TestCompileFiles_OutDirRedirectsOutput(t *testing.T) {
	resetCompileFlags()
	defer resetCompileFlags()

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.cl")
	if err := os.WriteFile(path, []byte(`class Main inherits IO { main(): Int { 0 }; };`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	build := filepath.Join(dir, "build")
	outDir = build

	if _, err := captureStdout(t, func() error {
		return compileFiles(compileCmd, []string{path})
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOut := filepath.Join(build, "hello.s")
	if _, err := os.Stat(wantOut); err != nil {
		t.Fatalf("expected output file %s to exist: %v", wantOut, err)
	}
}

func TestCompileFiles_SemanticErrorReportedWithSourceContext(t *testing.T) {
	resetCompileFlags()
	defer resetCompileFlags()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cl")
	if err := os.WriteFile(path, []byte(`
class Main inherits IO {
  main(): Int { 1 + "oops" };
};`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	toStdout = true
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	err := compileFiles(compileCmd, []string{path})

	w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	buf.ReadFrom(r)
	stderr := buf.String()

	if err == nil {
		t.Fatalf("expected a semantic error")
	}
	if !strings.Contains(stderr, path) {
		t.Fatalf("expected file name in error output, got: %s", stderr)
	}
}
