// Package crowd implements the hype and movement fields a crowd is
// modelled with, the pits and stages that anchor them, and the clock
// that advances them.
//
// The package is single-threaded: a Simulator and everything subscribed
// to it must be driven from one goroutine.
package crowd

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// TickEvent is delivered to tick subscribers after the fields advance.
type TickEvent struct {
	Tick uint64  // 1 for the first tick
	Now  float64 // simulation time the tick ran at
}

// Simulator owns the hype and movement fields and applies the per-tick
// decay and transmission rules.
type Simulator struct {
	cfg     Config
	regions *Regions

	hype, move         *Field
	nextHype, nextMove *Field

	now   float64
	ticks uint64

	onTick       []func(TickEvent)
	onPitStarted []func(Pit)
	onPitEnded   []func(Pit)
}

// New builds a simulator with empty fields.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.FieldSize
	return &Simulator{
		cfg:      cfg,
		regions:  NewRegions(cfg.Stages),
		hype:     NewField(n),
		move:     NewField(n),
		nextHype: NewField(n),
		nextMove: NewField(n),
	}, nil
}

// Config returns the parameters the simulator was built with.
func (s *Simulator) Config() Config { return s.cfg }

// Size returns the number of cells per side.
func (s *Simulator) Size() int { return s.cfg.FieldSize }

// Now returns the latest simulation time observed.
func (s *Simulator) Now() float64 { return s.now }

// Ticks returns how many ticks have run.
func (s *Simulator) Ticks() uint64 { return s.ticks }

// ToFieldSpace converts a world position to field coordinates.
func (s *Simulator) ToFieldSpace(world Vec) Vec {
	return r2.Scale(1/s.cfg.Scale, world)
}

// HypeField exposes the committed hype field for reading.
// The pointer is only valid until the next tick.
func (s *Simulator) HypeField() *Field { return s.hype }

// MoveField exposes the committed movement field for reading.
// The pointer is only valid until the next tick.
func (s *Simulator) MoveField() *Field { return s.move }

// OnTick subscribes fn to tick completion.
func (s *Simulator) OnTick(fn func(TickEvent)) {
	s.onTick = append(s.onTick, fn)
}

// OnPitStarted subscribes fn to pit creation.
func (s *Simulator) OnPitStarted(fn func(Pit)) {
	s.onPitStarted = append(s.onPitStarted, fn)
}

// OnPitEnded subscribes fn to pit expiry.
func (s *Simulator) OnPitEnded(fn func(Pit)) {
	s.onPitEnded = append(s.onPitEnded, fn)
}

// AddHype splats v into the hype field at p.
func (s *Simulator) AddHype(p, v Vec) {
	s.hype.Splat(p, v)
}

// Hype samples the hype field at p.
func (s *Simulator) Hype(p Vec) Vec {
	return s.hype.Sample(p)
}

// interior reports whether p lies in [1, size-2] on both axes.
func (s *Simulator) interior(p Vec) bool {
	hi := float64(s.cfg.FieldSize - 2)
	return p.X >= 1 && p.X <= hi && p.Y >= 1 && p.Y <= hi
}

// AddMove pushes an outward pulse of strength amount into the eight cells
// around the cell nearest p. With a non-zero bias, directions aligned
// with it get up to twice the strength and opposed ones get none.
// The pulse must stay inside the interior, so the nearest cell has to lie
// in [2, size-3]; anything else is ignored.
func (s *Simulator) AddMove(p Vec, amount float64, bias ...Vec) {
	xi, yi := int(math.Round(p.X)), int(math.Round(p.Y))
	hi := s.cfg.FieldSize - 3
	if xi < 2 || yi < 2 || xi > hi || yi > hi {
		return
	}
	var b Vec
	if len(bias) > 0 {
		b = unitOrZero(bias[0])
	}
	biased := b != (Vec{})
	for i, o := range offsets {
		w := amount
		if biased {
			w *= math.Max(0, 1+r2.Dot(directions[i], b))
		}
		s.move.Add(xi+o[0], yi+o[1], r2.Scale(w, directions[i]))
	}
}

// Move samples the movement field at p. Outside the interior it is zero.
func (s *Simulator) Move(p Vec) Vec {
	if !s.interior(p) {
		return Vec{}
	}
	return s.move.Sample(p)
}

// StartPit opens a pit at the current simulation time and notifies pit
// subscribers.
func (s *Simulator) StartPit(center Vec, radius, duration float64) Pit {
	p := s.regions.StartPit(center, radius, duration, s.now)
	for _, fn := range s.onPitStarted {
		fn(p)
	}
	return p
}

// InPit reports whether p is inside an active pit.
func (s *Simulator) InPit(p Vec) bool { return s.regions.InPit(p) }

// OnStage reports whether p is on a stage.
func (s *Simulator) OnStage(p Vec) bool { return s.regions.OnStage(p) }

// Pits returns the active pits.
func (s *Simulator) Pits() []Pit { return s.regions.Pits() }

// Stages returns the stages.
func (s *Simulator) Stages() []Stage { return s.regions.Stages() }

// Advance records now as the current time and expires pits that are due,
// notifying pit-ended subscribers. Time never moves backwards.
func (s *Simulator) Advance(now float64) {
	if now > s.now {
		s.now = now
	}
	for _, p := range s.regions.Expire(s.now) {
		for _, fn := range s.onPitEnded {
			fn(p)
		}
	}
}

// Tick advances both fields by one step.
//
// Fresh buffers are seeded with the decayed previous values, every
// interior cell then transmits into its neighbors reading only the
// previous values, pits and stages cancel movement, hype is clamped,
// and the buffers are swapped in.
func (s *Simulator) Tick(now float64) {
	s.Advance(now)

	maxHype := s.cfg.MaxHype
	keepHype, keepMove := 1-s.cfg.HypeDecay, 1-s.cfg.MoveDecay
	for i := range s.hype.cells {
		s.nextHype.cells[i] = clampMagnitude(r2.Scale(keepHype, s.hype.cells[i]), maxHype)
		s.nextMove.cells[i] = r2.Scale(keepMove, s.move.cells[i])
	}

	n := s.cfg.FieldSize
	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			s.transmitMove(x, y)
			s.transmitHype(x, y)
		}
	}

	for y := 1; y < n-1; y++ {
		for x := 1; x < n-1; x++ {
			c := V(float64(x), float64(y))
			if s.regions.InPit(c) || s.regions.OnStage(c) {
				s.nextMove.Set(x, y, Vec{})
			}
		}
	}

	for i, h := range s.nextHype.cells {
		s.nextHype.cells[i] = clampMagnitude(h, maxHype)
	}

	s.hype, s.nextHype = s.nextHype, s.hype
	s.move, s.nextMove = s.nextMove, s.move
	s.ticks++

	ev := TickEvent{Tick: s.ticks, Now: s.now}
	for _, fn := range s.onTick {
		fn(ev)
	}
}

// transmitMove sends the wave at (x, y) to each neighbor it points toward.
// Hype at the neighbor deflects part of the wave along the hype direction.
func (s *Simulator) transmitMove(x, y int) {
	m := s.move.At(x, y)
	mag := r2.Norm(m)
	if mag == 0 {
		return
	}
	for i, o := range offsets {
		dot := r2.Dot(m, directions[i])
		if dot <= 0 {
			continue
		}
		align := dot / mag
		wave := r2.Scale(s.cfg.WaveDecay*align*align, m)

		nx, ny := x+o[0], y+o[1]
		h := s.hype.At(nx, ny)
		hm := r2.Norm(h)
		frac := clamp01(hm / s.cfg.MaxHype)

		s.nextMove.Add(nx, ny, r2.Scale(1-frac, wave))
		if frac > 0 {
			dx, dy := x+sign(h.X), y+sign(h.Y)
			s.nextMove.Add(dx, dy, r2.Scale(r2.Norm(wave)*frac/hm, h))
		}
	}
}

// transmitHype spreads the hype at (x, y) to the neighbors it points toward.
func (s *Simulator) transmitHype(x, y int) {
	h := s.hype.At(x, y)
	mag := r2.Norm(h)
	if mag == 0 {
		return
	}
	for i, o := range offsets {
		dot := r2.Dot(h, directions[i])
		if dot <= 0 {
			continue
		}
		s.nextHype.Add(x+o[0], y+o[1], r2.Scale(s.cfg.HypeTransmission*dot/mag, h))
	}
}

// Reset clears both fields, drops every pit without notifying, and
// rewinds time and the tick counter. Subscriptions are kept.
func (s *Simulator) Reset() {
	s.hype.Reset()
	s.move.Reset()
	s.nextHype.Reset()
	s.nextMove.Reset()
	s.regions.Clear()
	s.now = 0
	s.ticks = 0
}
