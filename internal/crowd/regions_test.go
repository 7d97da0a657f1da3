package crowd

import "testing"

func TestPitMembershipIsStrict(t *testing.T) {
	r := NewRegions(nil)
	r.StartPit(V(5, 5), 2, 1, 0)

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"center", V(5, 5), true},
		{"just inside", V(6.99, 5), true},
		{"on the rim", V(7, 5), false},
		{"outside", V(8, 8), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.InPit(tc.p); got != tc.expected {
				t.Errorf("InPit(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestStageMembershipIsStrict(t *testing.T) {
	r := NewRegions([]Stage{{X1: 2, Y1: 2, X2: 4, Y2: 4}})

	tests := []struct {
		p        Vec
		expected bool
	}{
		{V(3, 3), true},
		{V(2, 3), false},
		{V(4, 3), false},
		{V(3, 2), false},
		{V(3, 4), false},
		{V(2.001, 3.999), true},
	}
	for _, tc := range tests {
		if got := r.OnStage(tc.p); got != tc.expected {
			t.Errorf("OnStage(%v) = %v, expected %v", tc.p, got, tc.expected)
		}
	}
}

func TestRegionsExpire(t *testing.T) {
	r := NewRegions(nil)
	a := r.StartPit(V(2, 2), 1, 1, 0)
	b := r.StartPit(V(6, 6), 1, 3, 0)
	c := r.StartPit(V(9, 9), 1, 0.5, 0.5)

	if a.ID == b.ID || b.ID == c.ID {
		t.Fatalf("pit IDs should be unique, got %d %d %d", a.ID, b.ID, c.ID)
	}

	if got := r.Expire(0.99); len(got) != 0 {
		t.Errorf("Expire(0.99) removed %d pits, expected 0", len(got))
	}

	got := r.Expire(1)
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatalf("Expire(1) = %+v, expected pits %d and %d", got, a.ID, c.ID)
	}
	pits := r.Pits()
	if len(pits) != 1 || pits[0].ID != b.ID {
		t.Errorf("remaining pits = %+v, expected only %d", pits, b.ID)
	}
	if r.InPit(V(2, 2)) {
		t.Error("expired pit should no longer contain its center")
	}
}

func TestRegionsCopies(t *testing.T) {
	r := NewRegions([]Stage{{X1: 0, Y1: 0, X2: 1, Y2: 1}})
	r.StartPit(V(1, 1), 1, 1, 0)

	r.Stages()[0].X2 = 100
	r.Pits()[0].Radius = 100

	if r.Stages()[0].X2 != 1 {
		t.Error("Stages() should return a copy")
	}
	if r.Pits()[0].Radius != 1 {
		t.Error("Pits() should return a copy")
	}

	r.Clear()
	if len(r.Pits()) != 0 || len(r.Stages()) != 1 {
		t.Error("Clear should drop pits and keep stages")
	}
}
