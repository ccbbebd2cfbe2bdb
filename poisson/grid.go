package poisson

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// ErrOccupiedCell is returned when a point is inserted into a cell that already
// holds one. The cell sizing guarantees at most one accepted point per cell, so
// hitting this means the distance check is broken; callers must treat it as fatal
// and never overwrite the existing point.
var ErrOccupiedCell = errors.New("poisson: cell already occupied")

// accelGrid is a uniform spatial index over the sampling rectangle. The cell side
// is minDist/sqrt(2): any two points sharing a cell would be closer than minDist,
// so every cell holds at most one accepted point and neighbor lookups stay
// constant-size regardless of density.
type accelGrid struct {
	width, height float64
	minDist       float64
	cellSize      float64
	cols, rows    int

	cells  []int32 // index into points, -1 for empty
	points []orb.Point
}

func newAccelGrid(width, height, minDist float64) *accelGrid {
	cellSize := minDist / math.Sqrt2
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([]int32, cols*rows)
	for i := range cells {
		cells[i] = -1
	}

	return &accelGrid{
		width:    width,
		height:   height,
		minDist:  minDist,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// cellAt maps a point to its cell coordinates. Points on the max edge of the
// rectangle belong to the last cell.
func (g *accelGrid) cellAt(p orb.Point) (int, int) {
	cx := int(p[0] / g.cellSize)
	cy := int(p[1] / g.cellSize)
	if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

func (g *accelGrid) insert(p orb.Point) error {
	cx, cy := g.cellAt(p)
	i := cy*g.cols + cx
	if g.cells[i] >= 0 {
		return ErrOccupiedCell
	}
	g.cells[i] = int32(len(g.points))
	g.points = append(g.points, p)
	return nil
}

// isValid reports whether q lies inside the rectangle and no accepted point is
// strictly closer than the minimum distance. It scans the 5x5 block of cells
// centered on q's cell, which covers every cell that could hold a point within
// minDist given the cell sizing.
func (g *accelGrid) isValid(q orb.Point) bool {
	if q[0] < 0 || q[0] > g.width || q[1] < 0 || q[1] > g.height {
		return false
	}

	cx, cy := g.cellAt(q)
	dd := g.minDist * g.minDist

	for y := cy - 2; y <= cy+2; y++ {
		if y < 0 || y >= g.rows {
			continue
		}
		for x := cx - 2; x <= cx+2; x++ {
			if x < 0 || x >= g.cols {
				continue
			}
			pi := g.cells[y*g.cols+x]
			if pi < 0 {
				continue
			}
			p := g.points[pi]
			dx := p[0] - q[0]
			dy := p[1] - q[1]
			if dx*dx+dy*dy < dd {
				return false
			}
		}
	}
	return true
}
