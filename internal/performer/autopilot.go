package performer

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/hypewave/internal/config"
	"github.com/vovakirdan/hypewave/internal/crowd"
)

// Autopilot wanders a performer around the floor along smooth noise,
// keeping it away from the edges and out of pits, and fires waves at
// random.
type Autopilot struct {
	cfg   config.AutopilotConfig
	noise *perlin.Perlin
	rng   *rand.Rand
	t     float64
}

// NewAutopilot creates a pilot. Pilots with the same seed steer the same way.
func NewAutopilot(cfg config.AutopilotConfig, seed int64) *Autopilot {
	return &Autopilot{
		cfg:   cfg,
		noise: perlin.NewPerlin(cfg.Alpha, cfg.Beta, cfg.Octaves, seed),
		rng:   rand.New(rand.NewSource(seed)),
		t:     0.5,
	}
}

// Steer picks the next movement direction for p and whether to wave.
func (a *Autopilot) Steer(p *Performer, dt float64) (crowd.Vec, bool) {
	a.t += dt * a.cfg.Wander

	dir := crowd.V(a.noise.Noise2D(a.t, 0.25), a.noise.Noise2D(0.25, a.t))
	dir = r2.Scale(2, dir)

	fp := p.FieldPos()
	size := float64(p.sim.Size())
	center := crowd.V((size-1)/2, (size-1)/2)
	toCenter := r2.Sub(center, fp)
	// Pull toward the middle grows once past 60% of the way to an edge.
	if d := r2.Norm(toCenter) / (size / 2); d > 0.6 {
		dir = r2.Add(dir, r2.Scale((d-0.6)*5/r2.Norm(toCenter), toCenter))
	}

	for _, pit := range p.sim.Pits() {
		away := r2.Sub(fp, pit.Center)
		gap := r2.Norm(away) - pit.Radius
		if gap < 2 && r2.Norm(away) > 0 {
			dir = r2.Add(dir, r2.Scale(3/r2.Norm(away), away))
		}
	}

	if n := r2.Norm(dir); n > 1 {
		dir = r2.Scale(1/n, dir)
	}
	wave := a.rng.Float64() < a.cfg.WaveRate*dt
	return snap(dir), wave
}

// snap rounds tiny components to zero so a still pilot pumps no hype.
func snap(v crowd.Vec) crowd.Vec {
	if math.Abs(v.X) < 1e-3 {
		v.X = 0
	}
	if math.Abs(v.Y) < 1e-3 {
		v.Y = 0
	}
	return v
}
