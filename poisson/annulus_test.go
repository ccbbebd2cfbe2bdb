package poisson

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"
)

func TestAnnulusRadiusRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	origin := orb.Point{10, 10}
	const d = 3.0

	for i := 0; i < 10000; i++ {
		p := annulusPoint(rng, origin, d)
		dx := p[0] - origin[0]
		dy := p[1] - origin[1]
		r := math.Sqrt(dx*dx + dy*dy)
		if r < d || r >= 2*d+1e-9 {
			t.Fatalf("sample %d: radius %v outside [%v, %v)", i, r, d, 2*d)
		}
	}
}

func TestAnnulusAreaUniform(t *testing.T) {
	// For area-uniform sampling r^2 is uniform on [d^2, 4d^2], so its mean is
	// 2.5*d^2. Sampling r uniformly instead would give E[r^2] ~ 2.33*d^2.
	rng := rand.New(rand.NewSource(2))
	origin := orb.Point{0, 0}
	const d = 1.0
	const n = 20000

	rr := make([]float64, n)
	for i := range rr {
		p := annulusPoint(rng, origin, d)
		rr[i] = p[0]*p[0] + p[1]*p[1]
	}

	mean := stat.Mean(rr, nil)
	if math.Abs(mean-2.5*d*d) > 0.05 {
		t.Fatalf("mean r^2 = %v, want close to %v", mean, 2.5*d*d)
	}
}

func TestAnnulusDeterminism(t *testing.T) {
	a := annulusPoint(rand.New(rand.NewSource(9)), orb.Point{1, 2}, 4)
	b := annulusPoint(rand.New(rand.NewSource(9)), orb.Point{1, 2}, 4)
	if a != b {
		t.Fatalf("same seed produced different candidates: %v vs %v", a, b)
	}
}
