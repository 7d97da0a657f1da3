package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hypewave/internal/config"
	"github.com/vovakirdan/hypewave/internal/crowd"
)

func newSim(t *testing.T, size int) *crowd.Simulator {
	t.Helper()
	cfg := crowd.DefaultConfig()
	cfg.FieldSize = size
	sim, err := crowd.New(cfg)
	if err != nil {
		t.Fatalf("crowd.New: %v", err)
	}
	return sim
}

func TestMeasureFieldEmpty(t *testing.T) {
	hype := crowd.NewField(4)
	move := crowd.NewField(4)

	fs, buf := MeasureField(hype, move, nil)
	if fs != (FieldStats{}) {
		t.Errorf("zero fields should give zero stats, got %+v", fs)
	}
	if len(buf) != 16 {
		t.Errorf("buffer length = %d, want 16", len(buf))
	}
}

func TestMeasureField(t *testing.T) {
	hype := crowd.NewField(4)
	move := crowd.NewField(4)
	hype.Set(1, 1, crowd.V(3, 4)) // magnitude 5
	hype.Set(2, 2, crowd.V(0, 2))
	move.Set(1, 2, crowd.V(0, 3))
	move.Set(2, 1, crowd.V(4, 0))

	fs, _ := MeasureField(hype, move, make([]float64, 0, 4))

	if math.Abs(fs.HypeMean-7.0/16) > 1e-9 {
		t.Errorf("HypeMean = %v, want %v", fs.HypeMean, 7.0/16)
	}
	if fs.HypeMax != 5 {
		t.Errorf("HypeMax = %v, want 5", fs.HypeMax)
	}
	if fs.HypeP50 != 0 {
		t.Errorf("HypeP50 = %v, want 0", fs.HypeP50)
	}
	if fs.MoveEnergy != 25 {
		t.Errorf("MoveEnergy = %v, want 25", fs.MoveEnergy)
	}
}

func TestCollectorWindow(t *testing.T) {
	sim := newSim(t, 12)
	c := NewCollector(10)
	c.Attach(sim)

	if c.ShouldFlush(9) {
		t.Error("should not flush before the window is complete")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush once the window is complete")
	}

	c.RecordWave()
	c.RecordWave()
	c.RecordDeath()
	sim.StartPit(crowd.V(6, 6), 2, 1)

	sim.Advance(0.5)
	stats := c.Flush(10, sim, Snapshot{Alive: 2, Score: 40})
	if stats.Waves != 2 || stats.Deaths != 1 || stats.PitsStarted != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.ActivePits != 1 {
		t.Errorf("ActivePits = %d, want 1", stats.ActivePits)
	}
	if stats.Alive != 2 || stats.Score != 40 {
		t.Errorf("snapshot not carried: %+v", stats)
	}
	if math.Abs(stats.SimTime-0.5) > 1e-9 {
		t.Errorf("SimTime = %v, want 0.5", stats.SimTime)
	}

	sim.Advance(2)
	next := c.Flush(20, sim, Snapshot{})
	if next.WindowStart != 10 {
		t.Errorf("WindowStart = %d, want 10", next.WindowStart)
	}
	if next.Waves != 0 || next.PitsStarted != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.PitsEnded != 1 {
		t.Errorf("PitsEnded = %d, want 1", next.PitsEnded)
	}
	if c.ShouldFlush(25) {
		t.Error("window should restart at the last flush")
	}
}

func TestCollectorSimTimeFollowsClock(t *testing.T) {
	sim := newSim(t, 12)
	clock := crowd.NewClock(sim, 0.05)
	c := NewCollector(10)

	// At 30 frames per second a 0.05s interval ticks every second frame.
	var stats WindowStats
	flushed := false
	for frame := 1; frame <= 40 && !flushed; frame++ {
		if clock.Poll(float64(frame)/30) && c.ShouldFlush(sim.Ticks()) {
			stats = c.Flush(sim.Ticks(), sim, Snapshot{})
			flushed = true
		}
	}
	if !flushed {
		t.Fatal("window never flushed")
	}
	if stats.WindowEnd != 10 {
		t.Errorf("WindowEnd = %d, want 10", stats.WindowEnd)
	}
	if math.Abs(stats.SimTime-20.0/30) > 1e-9 {
		t.Errorf("SimTime = %v, want %v", stats.SimTime, 20.0/30)
	}
	if stats.SimTime != sim.Now() {
		t.Errorf("SimTime = %v, sim.Now() = %v", stats.SimTime, sim.Now())
	}
}

func TestNewCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if c.Window() != 1 {
		t.Errorf("Window() = %d, want 1", c.Window())
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil manager WriteTelemetry: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager Close: %v", err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEnd: uint64(i * 10), Waves: i}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,sim_time,waves") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Contains(lines[0], "WindowStart") {
		t.Error("WindowStart should be excluded from csv")
	}
	if !strings.HasPrefix(lines[3], "30,") {
		t.Errorf("unexpected last row %q", lines[3])
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestWindowStatsLog(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	WindowStats{WindowEnd: 100, Waves: 3}.Log(logger)

	out := buf.String()
	if !strings.Contains(out, "window_end=100") || !strings.Contains(out, "waves=3") {
		t.Errorf("unexpected log output %q", out)
	}

	WindowStats{}.Log(nil)
}
