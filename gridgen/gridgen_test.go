package gridgen_test

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/royalcat/pointfield/gridgen"
)

func TestByCountExact(t *testing.T) {
	for _, n := range []int{1, 2, 7, 10, 64, 100, 333} {
		points, err := gridgen.ByCount(n, 100, 50)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(points) != n {
			t.Fatalf("n=%d: got %d points", n, len(points))
		}
		for _, p := range points {
			if p[0] < 0 || p[0] > 100 || p[1] < 0 || p[1] > 50 {
				t.Fatalf("n=%d: point %v outside rectangle", n, p)
			}
		}
	}
}

func TestByCountDistinct(t *testing.T) {
	points, err := gridgen.ByCount(25, 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[orb.Point]bool, len(points))
	for _, p := range points {
		if seen[p] {
			t.Fatalf("duplicate point %v", p)
		}
		seen[p] = true
	}
}

func TestBySpacing(t *testing.T) {
	const d = 3.0
	points, err := gridgen.BySpacing(d, 10, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// floor(10/3)+1 = 4 columns, floor(7/3)+1 = 3 rows.
	if len(points) != 12 {
		t.Fatalf("got %d points, want 12", len(points))
	}
	if points[0] != (orb.Point{0, 0}) {
		t.Fatalf("expected lattice anchored at origin, got %v", points[0])
	}

	for i := range points {
		if points[i][0] < 0 || points[i][0] > 10 || points[i][1] < 0 || points[i][1] > 7 {
			t.Fatalf("point %v outside rectangle", points[i])
		}
		for j := i + 1; j < len(points); j++ {
			dx := points[i][0] - points[j][0]
			dy := points[i][1] - points[j][1]
			if dist := math.Sqrt(dx*dx + dy*dy); dist < d-1e-9 {
				t.Fatalf("points %v and %v closer than %v", points[i], points[j], d)
			}
		}
	}
}

func TestValidation(t *testing.T) {
	if _, err := gridgen.ByCount(0, 10, 10); !errors.Is(err, gridgen.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := gridgen.ByCount(5, -1, 10); !errors.Is(err, gridgen.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := gridgen.BySpacing(0, 10, 10); !errors.Is(err, gridgen.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := gridgen.BySpacing(2, 10, 0); !errors.Is(err, gridgen.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
