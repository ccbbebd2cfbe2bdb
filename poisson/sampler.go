// Package poisson generates blue-noise point distributions inside an
// axis-aligned rectangle using fast Poisson-disk sampling (Bridson's active-list
// algorithm). All accepted points are at least MinDistance apart and the whole
// run is deterministic for a fixed seed.
package poisson

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/paulmach/orb"
)

// ErrInvalidConfig is wrapped by all configuration validation failures.
var ErrInvalidConfig = errors.New("poisson: invalid config")

// DefaultAttempts is the candidate budget per active point before it is retired.
// Higher values pack denser at higher cost.
const DefaultAttempts = 30

// Config parameterizes a sampling run. Width, Height and MinDistance are
// required; everything else has usable zero values.
type Config struct {
	Width  float64
	Height float64

	// MinDistance is the minimum Euclidean distance between any two accepted
	// points.
	MinDistance float64

	// Attempts is the candidate budget per active point. Zero means
	// DefaultAttempts.
	Attempts int

	// Seed drives the single random generator used for seeding, candidate
	// generation and active-point selection.
	Seed int64

	// Origin optionally pins the first accepted point. Nil picks it uniformly
	// at random inside the rectangle.
	Origin *orb.Point

	// OnAccept, if non-nil, is called after every accepted point with the
	// running total. Used for progress reporting; must not mutate the sampler.
	OnAccept func(total int)
}

func (c Config) validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %v", ErrInvalidConfig, c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %v", ErrInvalidConfig, c.Height)
	}
	if c.MinDistance <= 0 {
		return fmt.Errorf("%w: min distance must be positive, got %v", ErrInvalidConfig, c.MinDistance)
	}
	if c.Attempts < 0 {
		return fmt.Errorf("%w: attempts must not be negative, got %d", ErrInvalidConfig, c.Attempts)
	}
	if c.Origin != nil {
		o := *c.Origin
		if o[0] < 0 || o[0] > c.Width || o[1] < 0 || o[1] > c.Height {
			return fmt.Errorf("%w: origin %v outside rectangle %vx%v", ErrInvalidConfig, o, c.Width, c.Height)
		}
	}
	return nil
}

// Sampler runs the active-list algorithm. It is single-use: the grid and the
// active list are mutated in place, so Run may only be called once.
type Sampler struct {
	cfg      Config
	attempts int

	rng    *rand.Rand
	grid   *accelGrid
	active []int

	done bool
}

// NewSampler validates cfg and prepares a run. All parameter errors surface
// here, wrapped with ErrInvalidConfig; Run never fails on configuration.
func NewSampler(cfg Config) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}

	return &Sampler{
		cfg:      cfg,
		attempts: attempts,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		grid:     newAccelGrid(cfg.Width, cfg.Height, cfg.MinDistance),
	}, nil
}

// Run seeds the rectangle and drains the active list, returning the accepted
// points in insertion order.
//
// Selection policy: the next active point is chosen uniformly at random from
// the active list with the run's seeded generator, and exhausted points are
// swap-removed. The policy is a free choice of this implementation; it is
// deterministic for a fixed seed.
func (s *Sampler) Run() ([]orb.Point, error) {
	if s.done {
		return nil, errors.New("poisson: sampler already consumed")
	}
	s.done = true

	seed := orb.Point{s.rng.Float64() * s.cfg.Width, s.rng.Float64() * s.cfg.Height}
	if s.cfg.Origin != nil {
		seed = *s.cfg.Origin
	}
	if err := s.grid.insert(seed); err != nil {
		return nil, err
	}
	s.active = append(s.active, 0)
	s.notify()

	for len(s.active) > 0 {
		ai := s.rng.Intn(len(s.active))
		origin := s.grid.points[s.active[ai]]

		accepted := false
		for try := 0; try < s.attempts; try++ {
			cand := annulusPoint(s.rng, origin, s.cfg.MinDistance)
			if !s.grid.isValid(cand) {
				continue
			}

			idx := len(s.grid.points)
			if err := s.grid.insert(cand); err != nil {
				return nil, err
			}
			s.active = append(s.active, idx)
			s.notify()

			// The origin stays active; it may spawn more candidates in a
			// later round.
			accepted = true
			break
		}

		if !accepted {
			s.active[ai] = s.active[len(s.active)-1]
			s.active = s.active[:len(s.active)-1]
		}
	}

	return s.grid.points, nil
}

func (s *Sampler) notify() {
	if s.cfg.OnAccept != nil {
		s.cfg.OnAccept(len(s.grid.points))
	}
}

// Sample is a one-shot convenience wrapper around NewSampler and Run.
func Sample(cfg Config) ([]orb.Point, error) {
	s, err := NewSampler(cfg)
	if err != nil {
		return nil, err
	}
	return s.Run()
}

// MaxPackingEstimate returns the hexagonal close-packing bound on the number of
// points with pairwise distance d that fit in a width x height rectangle,
// 0.9069 * area / (pi * (d/2)^2). Real runs land well below it; it serves as a
// progress-bar total and a density sanity bound.
func MaxPackingEstimate(width, height, d float64) int {
	if width <= 0 || height <= 0 || d <= 0 {
		return 0
	}
	area := width * height
	return int(0.9069 * area / (math.Pi * (d / 2) * (d / 2)))
}
