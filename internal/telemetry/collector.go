package telemetry

import "github.com/vovakirdan/hypewave/internal/crowd"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	window uint64

	windowStart uint64

	waves       int
	pitsStarted int
	pitsEnded   int
	deaths      int

	buf []float64
}

// Snapshot is the show state sampled at flush time.
type Snapshot struct {
	Alive      int
	Score      int
	BounceMean float64
	Moshing    int
}

// NewCollector creates a collector flushing every window ticks.
func NewCollector(window int) *Collector {
	if window < 1 {
		window = 1
	}
	return &Collector{window: uint64(window)}
}

// Attach subscribes the collector to pit events of sim.
func (c *Collector) Attach(sim *crowd.Simulator) {
	sim.OnPitStarted(func(crowd.Pit) { c.pitsStarted++ })
	sim.OnPitEnded(func(crowd.Pit) { c.pitsEnded++ })
}

func (c *Collector) RecordWave()  { c.waves++ }
func (c *Collector) RecordDeath() { c.deaths++ }

// ShouldFlush reports whether a full window has elapsed at tick.
func (c *Collector) ShouldFlush(tick uint64) bool {
	return tick-c.windowStart >= c.window
}

// Pending reports whether ticks were run since the last flush.
func (c *Collector) Pending(tick uint64) bool {
	return tick > c.windowStart
}

// Flush produces the row for the current window and starts the next one.
// The row is stamped with the simulator's current time.
func (c *Collector) Flush(tick uint64, sim *crowd.Simulator, snap Snapshot) WindowStats {
	var fs FieldStats
	fs, c.buf = MeasureField(sim.HypeField(), sim.MoveField(), c.buf)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   tick,
		SimTime:     sim.Now(),

		Waves:       c.waves,
		PitsStarted: c.pitsStarted,
		PitsEnded:   c.pitsEnded,
		Deaths:      c.deaths,

		ActivePits: len(sim.Pits()),
		Alive:      snap.Alive,
		Score:      snap.Score,

		HypeMean:   fs.HypeMean,
		HypeP50:    fs.HypeP50,
		HypeP90:    fs.HypeP90,
		HypeMax:    fs.HypeMax,
		MoveEnergy: fs.MoveEnergy,

		BounceMean: snap.BounceMean,
		Moshing:    snap.Moshing,
	}

	c.windowStart = tick
	c.waves = 0
	c.pitsStarted = 0
	c.pitsEnded = 0
	c.deaths = 0

	return stats
}

// Window returns the number of ticks per window.
func (c *Collector) Window() int { return int(c.window) }
