package geom

import "math"

// DirectionBins is the number of fixed angular sectors used to
// discretise exit directions around an obstacle's heading. Each bin
// covers 2*pi/DirectionBins radians (30 degrees).
const DirectionBins = 12

// NormalizeAngle wraps an angle into [-pi, pi).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle+math.Pi, 2.0*math.Pi)
	if a < 0 {
		a += 2.0 * math.Pi
	}
	return a - math.Pi
}

// AngleDiff returns the normalised difference (to - from) in [-pi, pi).
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// BinIndex maps an angle (radians, any range) to a direction bin in
// [0, DirectionBins-1]. Angles just below zero wrap to the last bin;
// zero maps to bin 0.
func BinIndex(angle float64) int {
	d := angle / (2.0 * math.Pi) * DirectionBins
	if d < 0 {
		d += DirectionBins
	}
	idx := int(math.Floor(d))
	// Clamp against float rounding at the sector boundaries.
	if idx < 0 {
		idx = 0
	} else if idx >= DirectionBins {
		idx = DirectionBins - 1
	}
	return idx
}
