package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/VasenkovAA/codingutils/internal/filter"
)

// TestLoad_Defaults verifies the built-in defaults reach a decoded
// config.
func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	v, err := NewLoader().Load(dir, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg := &StripConfig{}
	if err := Decode(v, cfg); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if cfg.Filter.IncludePattern != "*" {
		t.Errorf("expected include pattern *, got %q", cfg.Filter.IncludePattern)
	}
	if cfg.Filter.MaxDepth != filter.NoMaxDepth {
		t.Errorf("expected unlimited depth, got %d", cfg.Filter.MaxDepth)
	}
	if !cfg.Filter.Recursive {
		t.Error("expected recursive default true")
	}
	if !cfg.Backup {
		t.Error("expected backup default true")
	}
}

// TestLoad_ProjectFile verifies a project config file overrides the
// defaults.
func TestLoad_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "filter:\n  include_pattern: \"*.py\"\n  max_depth: 3\nremove: true\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yaml), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	v, err := NewLoader().Load(dir, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg := &StripConfig{}
	if err := Decode(v, cfg); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if cfg.Filter.IncludePattern != "*.py" {
		t.Errorf("expected include pattern *.py, got %q", cfg.Filter.IncludePattern)
	}
	if cfg.Filter.MaxDepth != 3 {
		t.Errorf("expected max depth 3, got %d", cfg.Filter.MaxDepth)
	}
	if !cfg.Remove {
		t.Error("expected remove true from project config")
	}
}

// TestLoad_CLIOverrides verifies that CLI values beat the project file.
func TestLoad_CLIOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := "filter:\n  include_pattern: \"*.py\"\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yaml), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	overrides := map[string]interface{}{"filter.include_pattern": "*.go"}
	v, err := NewLoader().Load(dir, overrides)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg := &StripConfig{}
	if err := Decode(v, cfg); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if cfg.Filter.IncludePattern != "*.go" {
		t.Errorf("expected CLI override *.go, got %q", cfg.Filter.IncludePattern)
	}
}

// TestLoad_MalformedProjectFile verifies a config-error result.
func TestLoad_MalformedProjectFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("filter: ["), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := NewLoader().Load(dir, nil); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

// TestValidate_Models covers per-command validation rules.
func TestValidate_Models(t *testing.T) {
	strip := &StripConfig{Filter: *filter.DefaultConfig()}
	if err := strip.Validate(); err != nil {
		t.Errorf("valid strip config rejected: %v", err)
	}

	merge := &MergeConfig{Filter: *filter.DefaultConfig()}
	if err := merge.Validate(); err == nil {
		t.Error("merge config without output should fail")
	}
	merge.Output = "out.txt"
	if err := merge.Validate(); err != nil {
		t.Errorf("valid merge config rejected: %v", err)
	}

	tc := &TreeConfig{Filter: *filter.DefaultConfig(), Format: "text"}
	if err := tc.Validate(); err != nil {
		t.Errorf("valid tree config rejected: %v", err)
	}
	tc.Format = "toml"
	if err := tc.Validate(); err == nil {
		t.Error("unsupported tree format should fail")
	}
}
