// Package gridgen lays out regular point grids inside an axis-aligned
// rectangle: either sized to an exact point count or to a minimum spacing.
// These are the closed-form companions to the poisson package.
package gridgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ErrInvalidConfig is wrapped by all parameter validation failures.
var ErrInvalidConfig = errors.New("gridgen: invalid config")

// ByCount emits exactly n points on a regular grid, cell-centered and
// row-major. Columns are chosen to keep cells close to square for the given
// aspect ratio.
func ByCount(n int, width, height float64) ([]orb.Point, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: point count must be positive, got %d", ErrInvalidConfig, n)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: rectangle must be positive, got %vx%v", ErrInvalidConfig, width, height)
	}

	cols := int(math.Ceil(math.Sqrt(float64(n) * width / height)))
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols

	sx := width / float64(cols)
	sy := height / float64(rows)

	points := make([]orb.Point, 0, n)
	for row := 0; row < rows && len(points) < n; row++ {
		for col := 0; col < cols && len(points) < n; col++ {
			points = append(points, orb.Point{
				(float64(col) + 0.5) * sx,
				(float64(row) + 0.5) * sy,
			})
		}
	}
	return points, nil
}

// BySpacing emits a lattice with pitch d anchored at the origin, covering the
// whole rectangle. Adjacent points are exactly d apart.
func BySpacing(d, width, height float64) ([]orb.Point, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: spacing must be positive, got %v", ErrInvalidConfig, d)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: rectangle must be positive, got %vx%v", ErrInvalidConfig, width, height)
	}

	cols := int(math.Floor(width/d)) + 1
	rows := int(math.Floor(height/d)) + 1

	points := make([]orb.Point, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			points = append(points, orb.Point{float64(col) * d, float64(row) * d})
		}
	}
	return points, nil
}
