package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSiteConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadSiteConfig(filepath.Join(t.TempDir(), "capsule.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadSiteConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capsule.yaml")
	content := "title: Kapsuła\ncontent: src\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Title != "Kapsuła" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Kapsuła")
	}
	if cfg.ContentDir != "src" {
		t.Errorf("ContentDir = %q, want %q", cfg.ContentDir, "src")
	}
	if cfg.OutputDir != "public_gemini" {
		t.Errorf("OutputDir = %q, want default %q", cfg.OutputDir, "public_gemini")
	}
	if cfg.BlogDir != "blog" {
		t.Errorf("BlogDir = %q, want default %q", cfg.BlogDir, "blog")
	}
}

func TestLoadSiteConfig_InvalidYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capsule.yaml")
	if err := os.WriteFile(path, []byte(": not: yaml: {{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSiteConfig(path); err == nil {
		t.Error("expected a parse error for invalid config")
	}
}
