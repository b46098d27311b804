// Package config loads the optional coolc.yaml project file: default
// output location and runtime linkage, so repeated `coolc` invocations
// in one project don't need to repeat the same flags.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is coolc.yaml's schema. Only OutputDir has a CLI counterpart
// (--out-dir), which overrides it when both are set; the other fields
// have no flag.
type Config struct {
	// OutputDir, when set, is used as the default for --out-dir.
	OutputDir string `yaml:"output_dir"`
	// RuntimePath points at the SPIM/MIPS runtime object (trap.s) a
	// --link-runtime style workflow would assemble alongside the
	// generated .s file.
	RuntimePath string `yaml:"runtime_path"`
	// PreserveComments is accepted for schema parity with a richer
	// driver's config surface; COOL's lexer always discards comments,
	// so this field is currently inert.
	PreserveComments bool `yaml:"preserve_comments"`
}

// Load reads and parses a coolc.yaml file at path. A missing file is
// not an error — Load returns a zero Config so callers can treat
// "--config" as optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}
