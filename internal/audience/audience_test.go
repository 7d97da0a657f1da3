package audience

import (
	"testing"

	"github.com/vovakirdan/hypewave/internal/config"
	"github.com/vovakirdan/hypewave/internal/crowd"
)

func newTestAudience(t *testing.T) (*crowd.Simulator, *Audience) {
	t.Helper()
	cfg := crowd.DefaultConfig()
	cfg.FieldSize = 12
	sim, err := crowd.New(cfg)
	if err != nil {
		t.Fatalf("crowd.New() error = %v", err)
	}
	return sim, New(sim, config.Default().Audience)
}

func TestMembersCoverInterior(t *testing.T) {
	_, a := newTestAudience(t)

	if got := a.Stats().Members; got != 100 {
		t.Errorf("Members = %d, expected 100 for a 12x12 field", got)
	}
	if _, ok := a.PoseAt(0, 5); ok {
		t.Error("border cell should have no member")
	}
	if _, ok := a.PoseAt(10, 10); !ok {
		t.Error("interior cell should have a member")
	}
}

func TestMembersBounceWithWaves(t *testing.T) {
	sim, a := newTestAudience(t)
	sim.AddMove(crowd.V(5, 5), 3)
	sim.AddHype(crowd.V(6, 5), crowd.V(10, 0))

	sim.Tick(0.1)

	pose, _ := a.PoseAt(6, 5)
	if pose.Height <= 0 {
		t.Errorf("member next to the wave should bounce, pose = %+v", pose)
	}
	if pose.Level <= 0 || pose.Level > 1 {
		t.Errorf("hype level = %g, expected within (0, 1]", pose.Level)
	}

	far, _ := a.PoseAt(1, 10)
	if far.Height != 0 {
		t.Errorf("distant member should be still, pose = %+v", far)
	}
	if a.Stats().MaxHeight < pose.Height {
		t.Error("MaxHeight should cover every member")
	}
}

func TestPitStartsMosh(t *testing.T) {
	sim, a := newTestAudience(t)
	sim.StartPit(crowd.V(5, 5), 2, 1)

	if !a.Moshing(5, 5) || !a.Moshing(6, 5) {
		t.Error("members inside the pit should mosh")
	}
	if a.Moshing(8, 5) {
		t.Error("members outside the pit should not mosh")
	}
	if got := a.Stats().Moshing; got != 9 {
		t.Errorf("Moshing = %d, expected 9 cells within radius 2", got)
	}

	sim.Tick(0.5)
	sim.Tick(1.5)
	if a.Moshing(5, 5) {
		t.Error("mosh should end once the pit has expired")
	}
}
