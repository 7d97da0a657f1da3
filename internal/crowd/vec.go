package crowd

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector in field space.
type Vec = r2.Vec

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// neighbor offsets and their unit directions, diagonals included.
var (
	offsets = [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {-1, -1}, {1, -1}, {-1, 1},
	}
	directions [8]Vec
)

func init() {
	for i, o := range offsets {
		directions[i] = r2.Unit(V(float64(o[0]), float64(o[1])))
	}
}

// unitOrZero returns v normalized, or the zero vector when v has no length.
func unitOrZero(v Vec) Vec {
	n := r2.Norm(v)
	if n == 0 {
		return Vec{}
	}
	return r2.Scale(1/n, v)
}

// clampMagnitude scales v down so its length does not exceed max.
func clampMagnitude(v Vec, max float64) Vec {
	n := r2.Norm(v)
	if n > max {
		return r2.Scale(max/n, v)
	}
	return v
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
