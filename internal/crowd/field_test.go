package crowd

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func approxVec(a, b Vec) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestFieldSplatExactCell(t *testing.T) {
	f := NewField(8)
	f.Splat(V(3, 3), V(1, 2))

	if got := f.At(3, 3); !approxVec(got, V(1, 2)) {
		t.Errorf("At(3, 3) = %v, expected {1 2}", got)
	}
	for _, c := range [][2]int{{4, 3}, {3, 4}, {4, 4}, {2, 3}} {
		if got := f.At(c[0], c[1]); got != (Vec{}) {
			t.Errorf("At(%d, %d) = %v, expected zero", c[0], c[1], got)
		}
	}
	if got := f.Sample(V(3, 3)); !approxVec(got, V(1, 2)) {
		t.Errorf("Sample(3, 3) = %v, expected {1 2}", got)
	}
}

func TestFieldSplatAccumulates(t *testing.T) {
	f := NewField(8)
	f.Splat(V(2, 2), V(1, 0))
	f.Splat(V(2, 2), V(1, 0))

	if got := f.At(2, 2); !approxVec(got, V(2, 0)) {
		t.Errorf("At(2, 2) = %v, expected {2 0}", got)
	}
}

func TestFieldSplatWeights(t *testing.T) {
	f := NewField(8)
	f.Splat(V(2.25, 4.5), V(4, 0))

	expected := map[[2]int]float64{
		{2, 4}: 0.75 * 0.5 * 4,
		{3, 4}: 0.25 * 0.5 * 4,
		{2, 5}: 0.75 * 0.5 * 4,
		{3, 5}: 0.25 * 0.5 * 4,
	}
	var total Vec
	for c, x := range expected {
		got := f.At(c[0], c[1])
		if !approxVec(got, V(x, 0)) {
			t.Errorf("At(%d, %d) = %v, expected {%g 0}", c[0], c[1], got, x)
		}
		total = r2.Add(total, got)
	}
	if !approxVec(total, V(4, 0)) {
		t.Errorf("splat total = %v, expected {4 0}", total)
	}
}

func TestFieldSampleBilinear(t *testing.T) {
	f := NewField(4)
	f.Set(1, 1, V(0, 0))
	f.Set(2, 1, V(4, 0))
	f.Set(1, 2, V(0, 4))
	f.Set(2, 2, V(4, 4))

	if got := f.Sample(V(1.5, 1.5)); !approxVec(got, V(2, 2)) {
		t.Errorf("Sample(1.5, 1.5) = %v, expected {2 2}", got)
	}
	if got := f.Sample(V(1.25, 1)); !approxVec(got, V(1, 0)) {
		t.Errorf("Sample(1.25, 1) = %v, expected {1 0}", got)
	}
}

func TestFieldOutOfBounds(t *testing.T) {
	f := NewField(5)
	f.Set(4, 4, V(1, 1))

	for _, p := range []Vec{V(-0.01, 2), V(2, -1), V(4.01, 2), V(2, 100)} {
		if got := f.Sample(p); got != (Vec{}) {
			t.Errorf("Sample(%v) = %v, expected zero", p, got)
		}
		f.Splat(p, V(9, 9))
	}
	if got := f.Sample(V(4, 4)); !approxVec(got, V(1, 1)) {
		t.Errorf("Sample at upper edge = %v, expected {1 1}", got)
	}
	if got := f.At(-1, 0); got != (Vec{}) {
		t.Errorf("At(-1, 0) = %v, expected zero", got)
	}
	f.Set(5, 5, V(1, 0)) // ignored
	f.Add(-1, 2, V(1, 0))

	var sum float64
	for _, m := range f.Magnitudes(nil) {
		sum += m
	}
	if math.Abs(sum-math.Sqrt2) > eps {
		t.Errorf("out-of-bounds writes changed the field, total magnitude %g", sum)
	}
}

func TestFieldCloneAndReset(t *testing.T) {
	f := NewField(3)
	f.Set(1, 1, V(3, 4))
	c := f.Clone()
	f.Reset()

	if got := c.At(1, 1); got != V(3, 4) {
		t.Errorf("clone At(1, 1) = %v, expected {3 4}", got)
	}
	if c.MaxMagnitude() != 5 {
		t.Errorf("MaxMagnitude() = %g, expected 5", c.MaxMagnitude())
	}
	if f.MaxMagnitude() != 0 {
		t.Errorf("after Reset MaxMagnitude() = %g, expected 0", f.MaxMagnitude())
	}
}
