package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Sources) == 0 {
		t.Error("default config has no sources")
	}
	if cfg.Thresholds.DuplicateThreshold != 0.85 {
		t.Errorf("duplicate threshold = %v, want 0.85", cfg.Thresholds.DuplicateThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Sources) == 0 {
		t.Error("missing file should yield the defaults")
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
db_path: /tmp/ghostbrief-test.db
sources:
  - name: Test Wire
    url: https://example.com/rss
    domain: example.com
    credibility: 80
thresholds:
  quality_gate: 75
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/ghostbrief-test.db" {
		t.Errorf("db_path = %s", cfg.DBPath)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Name != "Test Wire" {
		t.Errorf("sources = %+v", cfg.Sources)
	}
	if cfg.Thresholds.QualityGate != 75 {
		t.Errorf("quality_gate = %v, want 75", cfg.Thresholds.QualityGate)
	}
	// Untouched fields keep their defaults.
	if cfg.Thresholds.DuplicateThreshold != 0.85 {
		t.Errorf("duplicate threshold lost its default: %v", cfg.Thresholds.DuplicateThreshold)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sources: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
sources:
  - name: Bad Source
    url: https://example.com/rss
    credibility: 150
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("out-of-range credibility should fail validation")
	}
	if !strings.Contains(err.Error(), "credibility") {
		t.Errorf("unexpected error: %v", err)
	}
}
