package crowd

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Field is a dense square grid of vectors addressed by integer cell
// coordinates, with bilinear sampling for positions between cells.
type Field struct {
	size  int
	cells []Vec
}

// NewField allocates a size x size field of zero vectors.
func NewField(size int) *Field {
	return &Field{
		size:  size,
		cells: make([]Vec, size*size),
	}
}

// Size returns the number of cells along one side.
func (f *Field) Size() int {
	return f.size
}

// InBounds reports whether (x, y) addresses a cell.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.size && y >= 0 && y < f.size
}

func (f *Field) index(x, y int) int {
	return y*f.size + x
}

// At returns the vector stored at (x, y), or zero when out of bounds.
func (f *Field) At(x, y int) Vec {
	if !f.InBounds(x, y) {
		return Vec{}
	}
	return f.cells[f.index(x, y)]
}

// Set stores v at (x, y). Out-of-bounds writes are ignored.
func (f *Field) Set(x, y int, v Vec) {
	if !f.InBounds(x, y) {
		return
	}
	f.cells[f.index(x, y)] = v
}

// Add accumulates v into (x, y). Out-of-bounds writes are ignored.
func (f *Field) Add(x, y int, v Vec) {
	if !f.InBounds(x, y) {
		return
	}
	i := f.index(x, y)
	f.cells[i] = r2.Add(f.cells[i], v)
}

// contains reports whether p lies in the continuous domain [0, size-1]².
func (f *Field) contains(p Vec) bool {
	hi := float64(f.size - 1)
	return p.X >= 0 && p.X <= hi && p.Y >= 0 && p.Y <= hi
}

// corners returns the integer cells surrounding p and the fractional
// offsets from the lower corner.
func corners(p Vec) (x0, y0, x1, y1 int, tx, ty float64) {
	fx, fy := math.Floor(p.X), math.Floor(p.Y)
	x0, y0 = int(fx), int(fy)
	x1, y1 = int(math.Ceil(p.X)), int(math.Ceil(p.Y))
	return x0, y0, x1, y1, p.X - fx, p.Y - fy
}

// Sample returns the bilinear interpolation of the four cells around p.
// Positions outside the field return the zero vector.
func (f *Field) Sample(p Vec) Vec {
	if !f.contains(p) {
		return Vec{}
	}
	x0, y0, x1, y1, tx, ty := corners(p)
	top := lerp(f.At(x0, y0), f.At(x1, y0), tx)
	bottom := lerp(f.At(x0, y1), f.At(x1, y1), tx)
	return lerp(top, bottom, ty)
}

// Splat distributes v over the four cells around p using the same weights
// Sample reads them with, so a splat at an exact cell lands entirely on it.
// Positions outside the field are ignored.
func (f *Field) Splat(p Vec, v Vec) {
	if !f.contains(p) {
		return
	}
	x0, y0, x1, y1, tx, ty := corners(p)
	f.Add(x0, y0, r2.Scale((1-tx)*(1-ty), v))
	if x1 != x0 {
		f.Add(x1, y0, r2.Scale(tx*(1-ty), v))
	}
	if y1 != y0 {
		f.Add(x0, y1, r2.Scale((1-tx)*ty, v))
	}
	if x1 != x0 && y1 != y0 {
		f.Add(x1, y1, r2.Scale(tx*ty, v))
	}
}

// Reset zeroes every cell.
func (f *Field) Reset() {
	clear(f.cells)
}

// Clone returns an independent copy.
func (f *Field) Clone() *Field {
	c := NewField(f.size)
	copy(c.cells, f.cells)
	return c
}

// MaxMagnitude returns the length of the longest vector in the field.
func (f *Field) MaxMagnitude() float64 {
	var m float64
	for _, v := range f.cells {
		m = math.Max(m, r2.Norm(v))
	}
	return m
}

// Magnitudes appends the length of every cell to dst in row-major order.
func (f *Field) Magnitudes(dst []float64) []float64 {
	for _, v := range f.cells {
		dst = append(dst, r2.Norm(v))
	}
	return dst
}

func lerp(a, b Vec, t float64) Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}
