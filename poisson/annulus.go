package poisson

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"
)

// annulusPoint draws a candidate uniformly by area from the annulus of inner
// radius d and outer radius 2d around origin. The radius is sampled as
// sqrt(u*((2d)^2-d^2)+d^2) for uniform u; sampling r uniformly in [d,2d) would
// bunch candidates toward the inner edge. Bounds and distance validation are the
// caller's responsibility.
func annulusPoint(rng *rand.Rand, origin orb.Point, d float64) orb.Point {
	theta := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(rng.Float64()*3*d*d + d*d)
	return orb.Point{
		origin[0] + r*math.Cos(theta),
		origin[1] + r*math.Sin(theta),
	}
}
