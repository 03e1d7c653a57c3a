package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "preflight.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != "data/json" {
		t.Fatalf("DataDir = %q, want default data/json", cfg.DataDir)
	}
	if cfg.OutputDir != "output" {
		t.Fatalf("OutputDir = %q, want default output", cfg.OutputDir)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadParsesYAMLOverDefaults(t *testing.T) {
	configYAML := strings.TrimSpace(`
data_dir: /srv/procedures
output_dir: /srv/out
defaults:
  operation: NIGHT_VLOS
  platform: EBEE
assets:
  logo: media/logo.png
  fonts:
    body: fonts/OpenSans-Regular.ttf
logging:
  level: debug
`)
	path := filepath.Join(t.TempDir(), "preflight.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DataDir != "/srv/procedures" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Defaults.Operation != "NIGHT_VLOS" || cfg.Defaults.Platform != "EBEE" {
		t.Fatalf("defaults not applied: %+v", cfg.Defaults)
	}
	if cfg.Defaults.Count != "" {
		t.Fatalf("Defaults.Count = %q, want empty", cfg.Defaults.Count)
	}
	if cfg.Assets.Fonts.Body != "fonts/OpenSans-Regular.ttf" {
		t.Fatalf("Assets.Fonts.Body = %q", cfg.Assets.Fonts.Body)
	}
	// Untouched fields keep their defaults.
	if cfg.RegistryFile != "data/constants.json" {
		t.Fatalf("RegistryFile = %q, want default", cfg.RegistryFile)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preflight.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
