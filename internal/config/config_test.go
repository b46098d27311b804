package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coolc/coolc/internal/config"
)

func TestLoad_MissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "" || cfg.RuntimePath != "" || cfg.PreserveComments {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_ParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coolc.yaml")
	content := "output_dir: build\nruntime_path: runtime/trap.s\npreserve_comments: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "build" {
		t.Fatalf("expected output_dir build, got %q", cfg.OutputDir)
	}
	if cfg.RuntimePath != "runtime/trap.s" {
		t.Fatalf("expected runtime_path runtime/trap.s, got %q", cfg.RuntimePath)
	}
	if !cfg.PreserveComments {
		t.Fatalf("expected preserve_comments true")
	}
}
