package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/royalcat/pointfield/config"
)

func TestDefault(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sampler.Attempts != 30 {
		t.Fatalf("default attempts = %d, want 30", cfg.Sampler.Attempts)
	}
	if cfg.Voronoi.Resolution != 512 {
		t.Fatalf("default voronoi resolution = %d, want 512", cfg.Voronoi.Resolution)
	}
	if cfg.Preview.CanvasPx != 900 {
		t.Fatalf("default canvas = %d, want 900", cfg.Preview.CanvasPx)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := "sampler:\n  attempts: 10\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sampler.Attempts != 10 {
		t.Fatalf("overlaid attempts = %d, want 10", cfg.Sampler.Attempts)
	}
	// Untouched sections keep their defaults.
	if cfg.Voronoi.Resolution != 512 {
		t.Fatalf("voronoi resolution = %d, want default 512", cfg.Voronoi.Resolution)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
