package show

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/hypewave/internal/config"
	"github.com/vovakirdan/hypewave/internal/core"
	"github.com/vovakirdan/hypewave/internal/crowd"
	"github.com/vovakirdan/hypewave/internal/telemetry"
	"github.com/vovakirdan/hypewave/internal/venue"
)

func club(t *testing.T) venue.Venue {
	t.Helper()
	v, err := venue.Lookup("club")
	if err != nil {
		t.Fatalf("Lookup(club): %v", err)
	}
	return v
}

func newShow(t *testing.T, human bool, mutate func(*config.Config)) *Show {
	t.Helper()
	cfg := config.Default()
	if human {
		cfg.Autopilot.Count = 0
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(Options{Venue: club(t), Config: cfg, Mode: "run", Human: human})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42})
	return s
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func run(s *Show, frames int) {
	for range frames {
		s.Step(core.NewInputFrame())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Crowd.MaxHype = 0
	if _, err := New(Options{Venue: club(t), Config: cfg}); err == nil {
		t.Fatal("expected an error for MaxHype 0")
	}
}

func TestNewRejectsBadVenue(t *testing.T) {
	v := club(t)
	v.Stages = append(v.Stages, venue.Stage{X1: 5, Y1: 5, X2: 5, Y2: 9})
	_, err := New(Options{Venue: v, Config: config.Default()})
	if !errors.Is(err, crowd.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStepAdvancesSimulation(t *testing.T) {
	s := newShow(t, false, nil)

	ticked := 0
	for range 60 {
		if s.Step(core.NewInputFrame()).Ticked {
			ticked++
		}
	}
	if ticked == 0 {
		t.Fatal("expected the crowd to tick within two seconds")
	}
	if got := int(s.Sim().Ticks()); got != ticked {
		t.Errorf("Ticks() = %d, want %d", got, ticked)
	}
	if math.Abs(s.Sim().Now()-2) > 1e-9 {
		t.Errorf("sim time = %v, want 2", s.Sim().Now())
	}
	if len(s.Performers()) != config.Default().Autopilot.Count {
		t.Errorf("got %d performers, want %d", len(s.Performers()), config.Default().Autopilot.Count)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := newShow(t, false, nil)
	b := newShow(t, false, nil)
	run(a, 600)
	run(b, 600)

	ra, rb := a.Summary(), b.Summary()
	if ra != rb {
		t.Errorf("same seed produced different runs:\n%+v\n%+v", ra, rb)
	}
}

func TestPauseStopsTime(t *testing.T) {
	s := newShow(t, false, nil)
	run(s, 10)
	before := s.Sim().Now()

	if !s.Step(input(core.ActionPause)).State.Paused {
		t.Fatal("expected paused state")
	}
	run(s, 10)
	if s.Sim().Now() != before {
		t.Errorf("time advanced while paused: %v -> %v", before, s.Sim().Now())
	}

	s.Step(input(core.ActionPause))
	run(s, 10)
	if s.Sim().Now() <= before {
		t.Error("time should advance after resuming")
	}
}

func TestLayerToggle(t *testing.T) {
	s := newShow(t, false, nil)
	if s.Layer() != LayerHype {
		t.Fatalf("initial layer = %v, want hype", s.Layer())
	}
	s.Step(input(core.ActionLayer))
	if s.Layer() != LayerMove {
		t.Errorf("layer = %v, want movement", s.Layer())
	}
	s.Step(input(core.ActionLayer))
	if s.Layer() != LayerHype {
		t.Errorf("layer = %v, want hype", s.Layer())
	}
}

func TestHumanMoves(t *testing.T) {
	s := newShow(t, true, nil)
	p := s.Performers()[0]
	start := p.Pos()

	s.Step(input(core.ActionRight))

	want := start.X + config.Default().Performer.Speed/30
	if math.Abs(p.Pos().X-want) > 1e-9 || p.Pos().Y != start.Y {
		t.Errorf("pos = %+v, want (%v, %v)", p.Pos(), want, start.Y)
	}
}

func TestHumanWave(t *testing.T) {
	s := newShow(t, true, nil)
	s.Step(input(core.ActionWave))

	if got := s.Performers()[0].Stats().Waves; got != 1 {
		t.Errorf("Waves = %d, want 1", got)
	}
	if s.Sim().MoveField().MaxMagnitude() == 0 {
		t.Error("wave should put movement into the field")
	}
	if s.Summary().Waves != 1 {
		t.Errorf("Summary().Waves = %d, want 1", s.Summary().Waves)
	}
}

func TestHumanOutOfLivesEndsShow(t *testing.T) {
	s := newShow(t, true, func(c *config.Config) { c.Performer.Lives = 1 })

	for range 300 {
		if s.Step(input(core.ActionLeft)).State.GameOver {
			break
		}
	}
	st := s.State()
	if !st.GameOver {
		t.Fatal("running off the floor with one life should end the show")
	}
	if st.Lives != 0 {
		t.Errorf("Lives = %d, want 0", st.Lives)
	}

	now := s.Sim().Now()
	run(s, 5)
	if s.Sim().Now() != now {
		t.Error("show should not advance after game over")
	}

	if got := s.Summary().Deaths; got != 1 {
		t.Errorf("Summary().Deaths = %d, want 1", got)
	}
}

func TestRestart(t *testing.T) {
	s := newShow(t, true, func(c *config.Config) { c.Performer.Lives = 1 })
	for range 300 {
		if s.Step(input(core.ActionLeft)).State.GameOver {
			break
		}
	}

	st := s.Step(input(core.ActionRestart)).State
	if st.GameOver {
		t.Error("restart should clear game over")
	}
	if s.Sim().Ticks() != 0 || s.Score() != 0 {
		t.Errorf("restart should rewind: ticks=%d score=%d", s.Sim().Ticks(), s.Score())
	}
	if st.Lives != 1 {
		t.Errorf("Lives = %d, want 1", st.Lives)
	}
}

func TestTelemetryWindows(t *testing.T) {
	var windows []telemetry.WindowStats
	cfg := config.Default()
	cfg.Telemetry.Window = 5
	s, err := New(Options{
		Venue:    club(t),
		Config:   cfg,
		OnWindow: func(w telemetry.WindowStats) { windows = append(windows, w) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Reset(core.RuntimeConfig{TickRate: 30, Seed: 7})

	run(s, 60)
	if len(windows) == 0 {
		t.Fatal("expected at least one telemetry window")
	}
	for i, w := range windows {
		if w.WindowEnd-w.WindowStart != 5 {
			t.Errorf("window %d spans %d ticks, want 5", i, w.WindowEnd-w.WindowStart)
		}
	}

	n := len(windows)
	s.Flush()
	if s.Sim().Ticks()%5 != 0 && len(windows) != n+1 {
		t.Error("Flush should emit the partial window")
	}
}

func TestRender(t *testing.T) {
	s := newShow(t, true, nil)
	screen := core.NewScreen(80, 24)
	s.Render(screen)

	if !strings.Contains(screen.Row(0), "Score:") {
		t.Errorf("HUD missing from row 0: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Basement Club") {
		t.Errorf("venue name missing from HUD: %q", screen.Row(0))
	}

	vp := newViewport(80, 24, s.Sim().Size())
	sx, sy := vp.toScreen(s.Performers()[0].FieldPos())
	if got := screen.GetCell(sx, sy).Rune; got != HumanChar {
		t.Errorf("cell at performer = %q, want %q", got, HumanChar)
	}

	stage := s.Venue().Stages[0]
	stx, sty := vp.toScreen(crowd.V((stage.X1+stage.X2)/2, (stage.Y1+stage.Y2)/2))
	if got := screen.GetCell(stx, sty).Rune; got != StageChar {
		t.Errorf("cell at stage = %q, want %q", got, StageChar)
	}

	s.Step(input(core.ActionPause))
	s.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused show should say so")
	}
}

func TestRenderMoveLayer(t *testing.T) {
	s := newShow(t, true, nil)
	s.Step(input(core.ActionWave, core.ActionLayer))

	screen := core.NewScreen(80, 24)
	s.Render(screen)

	if !strings.ContainsAny(screen.String(), string(arrowRunes)) {
		t.Error("movement layer should show arrows after a wave")
	}
}

func TestViewportRoundTrip(t *testing.T) {
	vp := newViewport(80, 24, 32)
	for sy := vp.y0; sy < vp.y0+vp.h; sy += 3 {
		for sx := vp.x0; sx < vp.x0+vp.w; sx += 5 {
			gx, gy := vp.toScreen(vp.toField(sx, sy))
			if gx != sx || gy != sy {
				t.Fatalf("(%d,%d) round-tripped to (%d,%d)", sx, sy, gx, gy)
			}
		}
	}
}
