package crowd

import "gonum.org/v1/gonum/spatial/r2"

// PitID identifies a pit for the lifetime of its Regions.
// Visual layers key their pit decorations by it.
type PitID uint64

// Pit is a temporary circular region that anchors crowd movement.
type Pit struct {
	ID        PitID
	Center    Vec
	Radius    float64
	Duration  float64
	StartedAt float64
	ExpiresAt float64
}

// Contains reports whether p is strictly inside the pit.
func (p Pit) Contains(q Vec) bool {
	return r2.Norm(r2.Sub(q, p.Center)) < p.Radius
}

// Stage is a fixed rectangle in field space where movement is anchored
// and performers are safe from pits.
type Stage struct {
	X1, Y1, X2, Y2 float64
}

// Contains reports whether p is strictly inside the rectangle.
func (s Stage) Contains(p Vec) bool {
	return p.X > s.X1 && p.X < s.X2 && p.Y > s.Y1 && p.Y < s.Y2
}

// Regions owns the active pits and the fixed stages.
type Regions struct {
	pits   []Pit
	stages []Stage
	nextID PitID
}

// NewRegions creates a registry with the given stages and no pits.
func NewRegions(stages []Stage) *Regions {
	return &Regions{
		stages: append([]Stage(nil), stages...),
	}
}

// StartPit registers a pit that lasts until now+duration.
func (r *Regions) StartPit(center Vec, radius, duration, now float64) Pit {
	r.nextID++
	p := Pit{
		ID:        r.nextID,
		Center:    center,
		Radius:    radius,
		Duration:  duration,
		StartedAt: now,
		ExpiresAt: now + duration,
	}
	r.pits = append(r.pits, p)
	return p
}

// InPit reports whether p is inside any active pit.
func (r *Regions) InPit(p Vec) bool {
	for _, pit := range r.pits {
		if pit.Contains(p) {
			return true
		}
	}
	return false
}

// OnStage reports whether p is inside any stage.
func (r *Regions) OnStage(p Vec) bool {
	for _, s := range r.stages {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

// Expire removes every pit whose expiry time has been reached and returns
// the removed pits in creation order.
func (r *Regions) Expire(now float64) []Pit {
	var expired []Pit
	kept := r.pits[:0]
	for _, p := range r.pits {
		if now >= p.ExpiresAt {
			expired = append(expired, p)
			continue
		}
		kept = append(kept, p)
	}
	clear(r.pits[len(kept):])
	r.pits = kept
	return expired
}

// Pits returns a copy of the active pits.
func (r *Regions) Pits() []Pit {
	return append([]Pit(nil), r.pits...)
}

// Stages returns a copy of the stages.
func (r *Regions) Stages() []Stage {
	return append([]Stage(nil), r.stages...)
}

// Clear drops every active pit. Stages are kept.
func (r *Regions) Clear() {
	r.pits = r.pits[:0]
}
