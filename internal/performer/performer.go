// Package performer implements the musicians moving through the crowd:
// they pump hype, send waves, start pits and can be swallowed by them.
package performer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/hypewave/internal/config"
	"github.com/vovakirdan/hypewave/internal/crowd"
)

// Performer is one musician. Positions are in world space.
type Performer struct {
	ID int

	cfg   config.PerformerConfig
	sim   *crowd.Simulator
	scale float64
	spawn crowd.Vec

	pos      crowd.Vec
	lastMove crowd.Vec
	staunch  float64

	hypeBoost, waveBoost float64

	lives     int
	dead      bool
	deathTime float64

	pitted  bool // has started at least one pit
	lastPit float64

	pushing   bool
	pushFrom  crowd.Vec
	pushBy    crowd.Vec
	pushStart float64

	score float64
	stats Stats
}

// Stats counts what a performer has done.
type Stats struct {
	Waves  int
	Pits   int
	Deaths int
}

// New places a performer at spawn and subscribes it to sim's ticks.
func New(id int, sim *crowd.Simulator, cfg config.PerformerConfig, spawn crowd.Vec) *Performer {
	p := &Performer{
		ID:        id,
		cfg:       cfg,
		sim:       sim,
		scale:     sim.Config().Scale,
		spawn:     spawn,
		pos:       spawn,
		lives:     cfg.Lives,
		hypeBoost: 1,
		waveBoost: 1,
	}
	sim.OnTick(p.onTick)
	return p
}

// Pos returns the world position.
func (p *Performer) Pos() crowd.Vec { return p.pos }

// FieldPos returns the position in field space.
func (p *Performer) FieldPos() crowd.Vec { return p.sim.ToFieldSpace(p.pos) }

// Alive reports whether the performer is on the floor.
func (p *Performer) Alive() bool { return !p.dead }

// Lives returns the remaining lives.
func (p *Performer) Lives() int { return p.lives }

// OutOfLives reports whether the performer is dead for good.
func (p *Performer) OutOfLives() bool { return p.dead && p.lives <= 0 }

// Score returns the accumulated crowd hype felt by the performer.
func (p *Performer) Score() int { return int(p.score) }

// Stats returns activity counters.
func (p *Performer) Stats() Stats { return p.stats }

// Staunch returns the current wave immunity, 0..1.
func (p *Performer) Staunch() float64 { return p.staunch }

// Invulnerable reports whether the performer is leaving a pit it started.
func (p *Performer) Invulnerable() bool { return p.pushing }

// SetBoost scales hype output and wave size, usually from intensity.
func (p *Performer) SetBoost(hype, wave float64) {
	p.hypeBoost, p.waveBoost = hype, wave
}

// Update moves the performer by dir (unit steps per axis) over dt
// seconds and applies the death and respawn rules.
func (p *Performer) Update(dir crowd.Vec, dt float64) {
	now := p.sim.Now()

	if p.dead {
		if p.lives > 0 && now-p.deathTime > p.cfg.RespawnDelay {
			p.respawn()
		}
		return
	}

	p.lastMove = dir
	if n := r2.Norm(dir); n > 1 {
		p.lastMove = r2.Scale(1/n, dir)
	}
	p.pos = r2.Add(p.pos, r2.Scale(p.cfg.Speed*dt, p.lastMove))

	if p.pushing {
		t := (now - p.pushStart) / p.cfg.PushOutTime
		if t >= 1 {
			t = 1
			p.pushing = false
		}
		p.pos = r2.Add(p.pushFrom, r2.Scale(t, p.pushBy))
	}

	fp := p.FieldPos()
	switch {
	case p.offFloor(fp):
		p.die(now)
	case p.sim.InPit(fp) && !p.pushing && !p.sim.OnStage(fp):
		p.die(now)
	}

	p.staunch = math.Max(0, p.staunch-dt/p.cfg.StaunchTime)
}

func (p *Performer) offFloor(fp crowd.Vec) bool {
	hi := float64(p.sim.Size() - 2)
	return fp.X < 1 || fp.Y < 1 || fp.X > hi || fp.Y > hi
}

// Wave sends a movement wave from the performer's position.
// It fails when dead or on a stage.
func (p *Performer) Wave() bool {
	fp := p.FieldPos()
	if p.dead || p.sim.OnStage(fp) {
		return false
	}
	p.sim.AddMove(fp, p.cfg.WaveSize*p.waveBoost)
	p.staunch = 1
	p.stats.Waves++
	return true
}

func (p *Performer) onTick(ev crowd.TickEvent) {
	if p.dead {
		return
	}
	fp := p.FieldPos()

	push := p.sim.Move(fp)
	p.pos = r2.Add(p.pos, r2.Scale(p.cfg.PushInfluence*(1-p.staunch)*p.scale, push))

	p.sim.AddHype(fp, r2.Scale(p.cfg.HypeAmount*p.hypeBoost, p.lastMove))
	p.score += r2.Norm(p.sim.Hype(fp))

	if p.pitted && ev.Now-p.lastPit <= p.cfg.PitCooldown {
		return
	}
	k := p.sim.KernelStats(fp, p.cfg.KernelSize)
	if k.MeanMagnitude > p.cfg.PitMagnitude && r2.Norm(k.Mean) < p.cfg.PitChaos {
		p.startPit(fp, ev.Now)
	}
}

func (p *Performer) startPit(fp crowd.Vec, now float64) {
	p.sim.StartPit(fp, p.cfg.PitRadius, p.cfg.PitDuration)
	p.pitted = true
	p.lastPit = now
	p.stats.Pits++

	var dir crowd.Vec
	if h := p.sim.Hype(fp); r2.Norm(h) > 0 {
		dir = r2.Unit(h)
	}
	p.pushing = true
	p.pushFrom = p.pos
	p.pushBy = r2.Scale((p.cfg.PitRadius+1)*p.scale, dir)
	p.pushStart = now
}

func (p *Performer) die(now float64) {
	p.dead = true
	p.deathTime = now
	p.lives--
	p.pushing = false
	p.stats.Deaths++
}

func (p *Performer) respawn() {
	p.dead = false
	p.pos = p.spawn
	p.lastMove = crowd.Vec{}
	p.staunch = 0
}
