package main

import (
	"fmt"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/cheggaaa/pb/v3/termutil"
	"github.com/paulmach/orb"

	"github.com/royalcat/pointfield/config"
	"github.com/royalcat/pointfield/gridgen"
	"github.com/royalcat/pointfield/poisson"
	"github.com/royalcat/pointfield/pointset"
)

// buildPoints dispatches on the generation mode. Mode 1 and 2 are regular
// grids, mode 3 is Poisson-disk sampling with a progress bar against the
// theoretical packing bound.
func buildPoints(cfg *config.Config, mode int, value, width, height float64, seed int64) ([]orb.Point, error) {
	switch mode {
	case 1:
		n := int(value)
		if float64(n) != value || n < 1 {
			return nil, fmt.Errorf("mode 1 expects a positive integer point count, got %v", value)
		}
		return gridgen.ByCount(n, width, height)
	case 2:
		return gridgen.BySpacing(value, width, height)
	case 3:
		bar := pb.Start64(int64(poisson.MaxPackingEstimate(width, height, value)))
		bar.Set("prefix", "sampling")
		bar.SetRefreshRate(time.Second)
		if w, err := termutil.TerminalWidth(); w == 0 || err != nil {
			bar.SetTemplateString(`{{with string . "prefix"}}{{.}} {{end}}{{counters . }} {{bar . }} {{percent . }} {{speed . }} {{rtime . "ETA %s"}}{{with string . "suffix"}} {{.}}{{end}}` + "\n")
		}
		defer bar.Finish()

		return poisson.Sample(poisson.Config{
			Width:       width,
			Height:      height,
			MinDistance: value,
			Attempts:    cfg.Sampler.Attempts,
			Seed:        seed,
			OnAccept: func(total int) {
				bar.SetCurrent(int64(total))
			},
		})
	default:
		return nil, fmt.Errorf("unknown mode %d, expected 1, 2 or 3", mode)
	}
}

// fieldExtent recovers the sampling rectangle for a loaded point set. The
// metadata sidecar is authoritative; without it the bounding box of the
// points is the best available answer.
func fieldExtent(pointsFile string, points []orb.Point) (width, height float64) {
	if meta, err := pointset.ReadMetaFile(pointset.MetaPath(pointsFile)); err == nil {
		return meta.Width, meta.Height
	}

	for _, p := range points {
		if p[0] > width {
			width = p[0]
		}
		if p[1] > height {
			height = p[1]
		}
	}
	return width, height
}
