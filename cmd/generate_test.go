package main

import (
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"github.com/royalcat/pointfield/config"
	"github.com/royalcat/pointfield/pointset"
)

func TestBuildPointsGridModes(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	points, err := buildPoints(cfg, 1, 10, 100, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 10 {
		t.Fatalf("mode 1 produced %d points, want 10", len(points))
	}

	points, err = buildPoints(cfg, 2, 50, 100, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 9 {
		t.Fatalf("mode 2 produced %d points, want 9", len(points))
	}
}

func TestBuildPointsBadInput(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := buildPoints(cfg, 1, 10.5, 100, 100, 0); err == nil {
		t.Fatal("expected error for fractional point count")
	}
	if _, err := buildPoints(cfg, 7, 10, 100, 100, 0); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestFieldExtentFromMeta(t *testing.T) {
	dir := t.TempDir()
	pointsFile := filepath.Join(dir, "field.csv")

	meta := pointset.NewMeta(2, 5, 120, 80, 1)
	if err := meta.WriteFile(pointset.MetaPath(pointsFile)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := fieldExtent(pointsFile, nil)
	if w != 120 || h != 80 {
		t.Fatalf("extent = %v x %v, want 120 x 80", w, h)
	}
}

func TestFieldExtentFallback(t *testing.T) {
	points := []orb.Point{{3, 9}, {12, 4}}

	w, h := fieldExtent(filepath.Join(t.TempDir(), "missing.csv"), points)
	if w != 12 || h != 9 {
		t.Fatalf("extent = %v x %v, want 12 x 9", w, h)
	}
}
