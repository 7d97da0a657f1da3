// Package audience animates one crowd member per interior field cell.
// Members are ECS entities that react to the crowd simulation's events.
package audience

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/hypewave/internal/config"
	"github.com/vovakirdan/hypewave/internal/core"
	"github.com/vovakirdan/hypewave/internal/crowd"
)

// Audience owns the crowd member entities of one simulator.
type Audience struct {
	cfg  config.AudienceConfig
	sim  *crowd.Simulator
	size int

	world   *ecs.World
	members *ecs.Map3[Seat, Pose, Mosh]
	filter  *ecs.Filter3[Seat, Pose, Mosh]
	byCell  []ecs.Entity
	spring  harmonica.Spring
}

// Stats summarises the audience after the latest tick.
type Stats struct {
	Members    int
	MeanLevel  float64
	MeanHeight float64
	MaxHeight  float64
	Moshing    int
}

// New spawns a member on every interior cell and subscribes to sim.
func New(sim *crowd.Simulator, cfg config.AudienceConfig) *Audience {
	world := ecs.NewWorld()
	size := sim.Size()
	fps := int(math.Round(1 / sim.Config().TickInterval))

	a := &Audience{
		cfg:     cfg,
		sim:     sim,
		size:    size,
		world:   world,
		members: ecs.NewMap3[Seat, Pose, Mosh](world),
		filter:  ecs.NewFilter3[Seat, Pose, Mosh](world),
		byCell:  make([]ecs.Entity, size*size),
		spring:  harmonica.NewSpring(harmonica.FPS(max(fps, 1)), cfg.SpringFrequency, cfg.SpringDamping),
	}

	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			seat := Seat{X: x, Y: y}
			pose := Pose{}
			mosh := Mosh{}
			a.byCell[y*size+x] = a.members.NewEntity(&seat, &pose, &mosh)
		}
	}

	sim.OnTick(a.onTick)
	sim.OnPitStarted(a.onPitStarted)
	return a
}

func (a *Audience) onTick(ev crowd.TickEvent) {
	maxHype := a.sim.Config().MaxHype
	moshHeight := a.cfg.BounceScale * (1 + a.cfg.HypeBoost)

	query := a.filter.Query()
	for query.Next() {
		seat, pose, mosh := query.Get()
		p := crowd.V(float64(seat.X), float64(seat.Y))

		pose.Level = math.Sqrt(math.Min(1, r2.Norm(a.sim.Hype(p))/maxHype))
		wave := r2.Norm(a.sim.Move(p))
		pose.Target = wave * a.cfg.BounceScale * core.Lerp(1, 1+a.cfg.HypeBoost, pose.Level)

		if ev.Now < mosh.Until {
			// Moshers bounce between ground and full height.
			if ev.Tick%2 == 0 {
				pose.Target = math.Max(pose.Target, moshHeight)
			}
		} else {
			mosh.Until = 0
		}

		pose.Height, pose.Velocity = a.spring.Update(pose.Height, pose.Velocity, pose.Target)
		if pose.Height < 0 {
			pose.Height, pose.Velocity = 0, 0
		}
	}
}

func (a *Audience) onPitStarted(pit crowd.Pit) {
	query := a.filter.Query()
	for query.Next() {
		seat, _, mosh := query.Get()
		if pit.Contains(crowd.V(float64(seat.X), float64(seat.Y))) {
			mosh.Until = math.Max(mosh.Until, pit.ExpiresAt)
		}
	}
}

// PoseAt returns the pose of the member on cell (x, y).
// Border cells have no member.
func (a *Audience) PoseAt(x, y int) (Pose, bool) {
	e, ok := a.entity(x, y)
	if !ok {
		return Pose{}, false
	}
	_, pose, _ := a.members.Get(e)
	return *pose, true
}

// Moshing reports whether the member on (x, y) is in a pit.
func (a *Audience) Moshing(x, y int) bool {
	e, ok := a.entity(x, y)
	if !ok {
		return false
	}
	_, _, mosh := a.members.Get(e)
	return mosh.Until > 0
}

func (a *Audience) entity(x, y int) (ecs.Entity, bool) {
	if x < 1 || y < 1 || x > a.size-2 || y > a.size-2 {
		return ecs.Entity{}, false
	}
	return a.byCell[y*a.size+x], true
}

// Stats aggregates every member.
func (a *Audience) Stats() Stats {
	var s Stats
	query := a.filter.Query()
	for query.Next() {
		_, pose, mosh := query.Get()
		s.Members++
		s.MeanLevel += pose.Level
		s.MeanHeight += pose.Height
		s.MaxHeight = math.Max(s.MaxHeight, pose.Height)
		if mosh.Until > 0 {
			s.Moshing++
		}
	}
	if s.Members > 0 {
		s.MeanLevel /= float64(s.Members)
		s.MeanHeight /= float64(s.Members)
	}
	return s
}
