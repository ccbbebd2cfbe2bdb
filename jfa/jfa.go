// Package jfa rasterizes the Voronoi ownership of a point set with the jump
// flooding algorithm: every pixel of a square raster is labeled with the seed
// point nearest to it. The flood runs one k=1 pass followed by steps of
// k = reso/2, reso/4, ..., 1 (the 1+JFA schedule), which keeps labeling errors
// negligible at a fraction of the brute-force cost.
package jfa

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/paulmach/orb"
)

// ErrInvalidConfig is wrapped by all parameter validation failures.
var ErrInvalidConfig = errors.New("jfa: invalid config")

// DefaultResolution is the raster side length used when callers pass zero.
const DefaultResolution = 512

// Field is the flooded ownership raster. Owners holds one label per pixel in
// row-major order: seed i carries label i+1, 0 means uncolored (only possible
// with an empty seed list).
type Field struct {
	Resolution int
	Owners     []int32

	seeds [][2]int32 // pixel coordinates per seed
}

// Rasterize maps points from a width x height rectangle onto a reso x reso
// raster and floods seed ownership across it. A reso of 0 selects
// DefaultResolution.
func Rasterize(points []orb.Point, width, height float64, reso int) (*Field, error) {
	if reso == 0 {
		reso = DefaultResolution
	}
	if reso < 2 {
		return nil, fmt.Errorf("%w: resolution must be at least 2, got %d", ErrInvalidConfig, reso)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: rectangle must be positive, got %vx%v", ErrInvalidConfig, width, height)
	}

	f := &Field{
		Resolution: reso,
		Owners:     make([]int32, reso*reso),
		seeds:      make([][2]int32, len(points)),
	}

	for i, p := range points {
		x := int32(p[0] * float64(reso) / width)
		y := int32(p[1] * float64(reso) / height)
		if x < 0 {
			x = 0
		}
		if x > int32(reso-1) {
			x = int32(reso - 1)
		}
		if y < 0 {
			y = 0
		}
		if y > int32(reso-1) {
			y = int32(reso - 1)
		}
		f.seeds[i] = [2]int32{x, y}
		// Later seeds win a shared pixel; the flood resolves the rest.
		f.Owners[int(y)*reso+int(x)] = int32(i + 1)
	}

	if len(points) == 0 {
		return f, nil
	}

	f.step(1)
	for k := reso / 2; k >= 1; k /= 2 {
		f.step(k)
	}

	return f, nil
}

// step propagates labels from pixels at offsets of +-k, adopting any neighbor
// label whose seed is nearer than the current one.
func (f *Field) step(k int) {
	reso := f.Resolution
	prev := make([]int32, len(f.Owners))
	copy(prev, f.Owners)

	for y := 0; y < reso; y++ {
		for x := 0; x < reso; x++ {
			i := y*reso + x
			best := f.Owners[i]
			bestDist := int64(-1)
			if best != 0 {
				bestDist = f.seedDist(best, x, y)
			}

			for dy := -k; dy <= k; dy += k {
				ny := y + dy
				if ny < 0 || ny >= reso {
					continue
				}
				for dx := -k; dx <= k; dx += k {
					nx := x + dx
					if nx < 0 || nx >= reso {
						continue
					}
					c := prev[ny*reso+nx]
					if c == 0 || c == best {
						continue
					}
					if d := f.seedDist(c, x, y); bestDist < 0 || d < bestDist {
						best = c
						bestDist = d
					}
				}
			}

			f.Owners[i] = best
		}
	}
}

func (f *Field) seedDist(label int32, x, y int) int64 {
	s := f.seeds[label-1]
	dx := int64(s[0]) - int64(x)
	dy := int64(s[1]) - int64(y)
	return dx*dx + dy*dy
}

// OwnerAt returns the label at pixel (x, y).
func (f *Field) OwnerAt(x, y int) int32 {
	return f.Owners[y*f.Resolution+x]
}

// RenderPNG writes the ownership raster as a PNG, one deterministic color per
// region with the seed pixels drawn black.
func (f *Field) RenderPNG(w io.Writer) error {
	reso := f.Resolution
	img := image.NewRGBA(image.Rect(0, 0, reso, reso))

	for y := 0; y < reso; y++ {
		for x := 0; x < reso; x++ {
			img.Set(x, y, labelColor(f.Owners[y*reso+x]))
		}
	}
	for _, s := range f.seeds {
		img.Set(int(s[0]), int(s[1]), color.Black)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding voronoi png: %w", err)
	}
	return nil
}

// labelColor mixes a label into a stable mid-brightness color.
func labelColor(label int32) color.RGBA {
	if label == 0 {
		return color.RGBA{A: 255}
	}
	h := uint32(label) * 2654435761
	return color.RGBA{
		R: uint8(h>>24)/2 + 64,
		G: uint8(h>>16)/2 + 64,
		B: uint8(h>>8)/2 + 64,
		A: 255,
	}
}
