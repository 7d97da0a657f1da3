package crowd

import "gonum.org/v1/gonum/spatial/r2"

// KernelStats summarises the hype in a square neighborhood.
// A high MeanMagnitude with a small Mean means strong hype pulling in
// opposing directions.
type KernelStats struct {
	MeanMagnitude float64
	Mean          Vec
	Samples       int
}

// KernelStats samples hype on the (2r+1)² grid of whole-cell offsets
// around center. Samples that fall off the field count as zero.
func (s *Simulator) KernelStats(center Vec, r int) KernelStats {
	var k KernelStats
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			h := s.Hype(r2.Add(center, V(float64(dx), float64(dy))))
			k.MeanMagnitude += r2.Norm(h)
			k.Mean = r2.Add(k.Mean, h)
			k.Samples++
		}
	}
	if k.Samples > 0 {
		k.MeanMagnitude /= float64(k.Samples)
		k.Mean = r2.Scale(1/float64(k.Samples), k.Mean)
	}
	return k
}
