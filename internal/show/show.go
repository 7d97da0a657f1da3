// Package show runs one performance: a venue's crowd simulation with its
// audience, the performers on the floor and the telemetry of the run.
package show

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hypewave/internal/audience"
	"github.com/vovakirdan/hypewave/internal/config"
	"github.com/vovakirdan/hypewave/internal/core"
	"github.com/vovakirdan/hypewave/internal/crowd"
	"github.com/vovakirdan/hypewave/internal/performer"
	"github.com/vovakirdan/hypewave/internal/storage"
	"github.com/vovakirdan/hypewave/internal/telemetry"
	"github.com/vovakirdan/hypewave/internal/venue"
)

// Layer selects which field the viewer paints.
type Layer int

const (
	LayerHype Layer = iota
	LayerMove
)

func (l Layer) String() string {
	if l == LayerMove {
		return "movement"
	}
	return "hype"
}

// Options configure a show.
type Options struct {
	Venue  venue.Venue
	Config config.Config
	Mode   string // recorded with the run: "play", "run" or "ssh"
	Human  bool   // performer 0 follows the input frame
	Logger *log.Logger

	// OnWindow receives every flushed telemetry window.
	OnWindow func(telemetry.WindowStats)
}

// Show is a single performance. It is not safe for concurrent use.
type Show struct {
	opts     Options
	cfg      config.Config
	crowdCfg crowd.Config
	logger   *log.Logger

	rc   core.RuntimeConfig
	seed int64

	sim        *crowd.Simulator
	clock      *crowd.Clock
	audience   *audience.Audience
	performers []*performer.Performer
	pilots     []*performer.Autopilot // nil for the human performer
	deaths     []int
	intensity  *config.IntensityManager
	collector  *telemetry.Collector

	now      float64
	peakHype float64
	paused   bool
	gameOver bool
	layer    Layer
}

// New validates the configuration against the venue and prepares a show.
// Call Reset before the first Step.
func New(opts Options) (*Show, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("show: %w", err)
	}
	c := opts.Config.Crowd
	crowdCfg := crowd.Config{
		FieldSize:        opts.Venue.FieldSize,
		MaxHype:          c.MaxHype,
		HypeDecay:        c.HypeDecay,
		HypeTransmission: c.HypeTransmission,
		MoveDecay:        c.MoveDecay,
		WaveDecay:        c.WaveDecay,
		TickInterval:     c.TickInterval,
		Scale:            opts.Venue.Scale,
		Stages:           opts.Venue.CrowdStages(),
	}
	if err := crowdCfg.Validate(); err != nil {
		return nil, fmt.Errorf("show: venue %s: %w", opts.Venue.ID, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Show{
		opts:     opts,
		cfg:      opts.Config,
		crowdCfg: crowdCfg,
		logger:   logger,
	}, nil
}

// Reset starts the show over with fresh fields, audience and performers.
func (s *Show) Reset(rc core.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = core.DefaultConfig().TickRate
	}
	s.rc = rc
	s.seed = rc.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}

	sim, err := crowd.New(s.crowdCfg)
	if err != nil {
		// Unreachable: New validated the same config.
		panic(err)
	}
	s.sim = sim
	s.clock = crowd.ClockFor(sim)
	s.audience = audience.New(sim, s.cfg.Audience)
	s.intensity = config.NewIntensityManager(s.cfg.Intensity)

	s.collector = telemetry.NewCollector(s.cfg.Telemetry.Window)
	s.collector.Attach(sim)
	sim.OnPitStarted(func(p crowd.Pit) {
		s.logger.Debug("pit started", "id", p.ID, "x", p.Center.X, "y", p.Center.Y, "until", p.ExpiresAt)
	})
	sim.OnPitEnded(func(p crowd.Pit) {
		s.logger.Debug("pit ended", "id", p.ID)
	})

	count := s.cfg.Autopilot.Count
	if s.opts.Human {
		count++
	}
	count = max(count, 1)

	s.performers = make([]*performer.Performer, count)
	s.pilots = make([]*performer.Autopilot, count)
	s.deaths = make([]int, count)
	for i := range count {
		s.performers[i] = performer.New(i, sim, s.cfg.Performer, s.opts.Venue.Spawn(i))
		if i == 0 && s.opts.Human {
			continue
		}
		s.pilots[i] = performer.NewAutopilot(s.cfg.Autopilot, s.seed+int64(i))
	}

	s.now = 0
	s.peakHype = 0
	s.paused = false
	s.gameOver = false
}

// Step advances the show by one frame of 1/TickRate seconds.
func (s *Show) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		s.Reset(s.rc)
		return core.StepResult{State: s.State()}
	}
	if in.Has(core.ActionLayer) {
		s.layer = (s.layer + 1) % 2
	}
	if s.gameOver {
		return core.StepResult{State: s.State()}
	}
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	dt := 1 / float64(s.rc.TickRate)
	s.now += dt

	score, ticks := s.Score(), int(s.sim.Ticks())
	hypeBoost := s.intensity.Hype(1, score, ticks)
	waveBoost := s.intensity.Wave(1, score, ticks)

	for i, p := range s.performers {
		var dir crowd.Vec
		var wave bool
		if pilot := s.pilots[i]; pilot != nil {
			dir, wave = pilot.Steer(p, dt)
		} else {
			dx, dy := in.Direction()
			dir, wave = crowd.V(dx, dy), in.Has(core.ActionWave)
		}

		p.SetBoost(hypeBoost, waveBoost)
		p.Update(dir, dt)
		if wave && p.Wave() {
			s.collector.RecordWave()
		}
	}

	ticked := s.clock.Poll(s.now)
	s.trackDeaths()
	if ticked {
		s.peakHype = math.Max(s.peakHype, s.sim.HypeField().MaxMagnitude())
		if s.collector.ShouldFlush(s.sim.Ticks()) {
			s.flush()
		}
	}

	if s.finished() {
		s.gameOver = true
		s.logger.Info("show over", "venue", s.opts.Venue.ID, "score", s.Score(), "ticks", s.sim.Ticks())
	}
	return core.StepResult{State: s.State(), Ticked: ticked}
}

func (s *Show) trackDeaths() {
	for i, p := range s.performers {
		d := p.Stats().Deaths
		for ; s.deaths[i] < d; s.deaths[i]++ {
			s.collector.RecordDeath()
			s.logger.Debug("performer down", "id", p.ID, "lives", p.Lives())
		}
	}
}

func (s *Show) flush() {
	aud := s.audience.Stats()
	stats := s.collector.Flush(s.sim.Ticks(), s.sim, telemetry.Snapshot{
		Alive:      s.alive(),
		Score:      s.Score(),
		BounceMean: aud.MeanHeight,
		Moshing:    aud.Moshing,
	})
	if s.opts.OnWindow != nil {
		s.opts.OnWindow(stats)
	}
}

// finished reports whether the show is over: the human is out of lives,
// or in an unattended show every performer is.
func (s *Show) finished() bool {
	if s.opts.Human {
		return s.performers[0].OutOfLives()
	}
	for _, p := range s.performers {
		if !p.OutOfLives() {
			return false
		}
	}
	return true
}

func (s *Show) alive() int {
	n := 0
	for _, p := range s.performers {
		if p.Alive() {
			n++
		}
	}
	return n
}

// Score is the combined score of every performer.
func (s *Show) Score() int {
	total := 0
	for _, p := range s.performers {
		total += p.Score()
	}
	return total
}

// State returns the current show state.
func (s *Show) State() core.ShowState {
	lives := 0
	if s.opts.Human && len(s.performers) > 0 {
		lives = s.performers[0].Lives()
	} else {
		for _, p := range s.performers {
			lives += max(p.Lives(), 0)
		}
	}
	return core.ShowState{
		Score:    s.Score(),
		Lives:    lives,
		GameOver: s.gameOver,
		Paused:   s.paused,
	}
}

// Summary describes the run so far for the run history.
func (s *Show) Summary() storage.RunRecord {
	rec := storage.RunRecord{
		Venue:    s.opts.Venue.ID,
		Mode:     s.opts.Mode,
		Seed:     s.seed,
		Ticks:    int(s.sim.Ticks()),
		Score:    s.Score(),
		PeakHype: s.peakHype,
		Duration: s.sim.Now(),
	}
	for _, p := range s.performers {
		st := p.Stats()
		rec.Pits += st.Pits
		rec.Waves += st.Waves
		rec.Deaths += st.Deaths
	}
	return rec
}

// Flush emits the partially filled telemetry window, if any.
func (s *Show) Flush() {
	if s.collector.Pending(s.sim.Ticks()) {
		s.flush()
	}
}

// Sim returns the crowd simulator of the current run.
func (s *Show) Sim() *crowd.Simulator { return s.sim }

// Audience returns the crowd members of the current run.
func (s *Show) Audience() *audience.Audience { return s.audience }

// Performers returns the performers, the human one first when present.
func (s *Show) Performers() []*performer.Performer { return s.performers }

// Layer returns the field the viewer paints.
func (s *Show) Layer() Layer { return s.layer }

// Venue returns the venue the show was built for.
func (s *Show) Venue() venue.Venue { return s.opts.Venue }

// Seed returns the seed of the current run.
func (s *Show) Seed() int64 { return s.seed }
