package telemetry

import (
	"sort"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/hypewave/internal/crowd"
)

// WindowStats is one telemetry row covering a window of ticks.
type WindowStats struct {
	WindowStart uint64  `csv:"-"`
	WindowEnd   uint64  `csv:"window_end"`
	SimTime     float64 `csv:"sim_time"`

	// Events in this window
	Waves       int `csv:"waves"`
	PitsStarted int `csv:"pits_started"`
	PitsEnded   int `csv:"pits_ended"`
	Deaths      int `csv:"deaths"`

	// State at window end
	ActivePits int `csv:"active_pits"`
	Alive      int `csv:"performers_alive"`
	Score      int `csv:"score"`

	HypeMean   float64 `csv:"hype_mean"`
	HypeP50    float64 `csv:"hype_p50"`
	HypeP90    float64 `csv:"hype_p90"`
	HypeMax    float64 `csv:"hype_max"`
	MoveEnergy float64 `csv:"move_energy"`

	BounceMean float64 `csv:"bounce_mean"`
	Moshing    int     `csv:"moshing"`
}

// FieldStats summarizes the magnitudes of a hype and a movement field.
type FieldStats struct {
	HypeMean   float64
	HypeP50    float64
	HypeP90    float64
	HypeMax    float64
	MoveEnergy float64 // sum of squared movement magnitudes
}

// MeasureField computes FieldStats. buf is reused when large enough and the
// (possibly grown) buffer is returned.
func MeasureField(hype, move *crowd.Field, buf []float64) (FieldStats, []float64) {
	var fs FieldStats

	buf = hype.Magnitudes(buf[:0])
	if len(buf) > 0 {
		fs.HypeMean = stat.Mean(buf, nil)
		fs.HypeMax = floats.Max(buf)
		sort.Float64s(buf)
		fs.HypeP50 = stat.Quantile(0.5, stat.Empirical, buf, nil)
		fs.HypeP90 = stat.Quantile(0.9, stat.Empirical, buf, nil)
	}

	buf = move.Magnitudes(buf[:0])
	if len(buf) > 0 {
		fs.MoveEnergy = floats.Dot(buf, buf)
	}
	return fs, buf
}

// Log writes the row as a single structured log line.
func (s WindowStats) Log(logger *log.Logger) {
	if logger == nil {
		return
	}
	logger.Info("window",
		"window_end", s.WindowEnd,
		"sim_time", s.SimTime,
		"waves", s.Waves,
		"pits", s.PitsStarted,
		"deaths", s.Deaths,
		"alive", s.Alive,
		"score", s.Score,
		"hype_mean", s.HypeMean,
		"hype_p90", s.HypeP90,
		"hype_max", s.HypeMax,
		"move_energy", s.MoveEnergy,
		"moshing", s.Moshing,
	)
}
