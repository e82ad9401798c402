package junction

import (
	"github.com/gridline-data/junction.report/internal/geom"
)

// Circular smoothing weights: each exit's probability is the weighted
// sum of its own bin and the two neighbouring bins. The three weights
// sum to exactly 1.
const (
	smoothCenterWeight   = 0.5
	smoothNeighborWeight = 0.25
)

// smoothedExitProbabilities maps each exit lane to its neighbour-
// smoothed bin probability. The exit's bin is recomputed here from the
// obstacle's position and motion heading through the same BinIndex
// convention the encoder uses.
func smoothedExitProbabilities(obs *Obstacle, probability []float64) map[string]float64 {
	heading := obs.motionHeading()
	exitProb := make(map[string]float64, len(obs.Junction.Exits))
	for _, exit := range obs.Junction.Exits {
		angle := exit.Position.Sub(obs.Position).Angle() - heading
		idx := geom.BinIndex(angle)
		prev := (idx + geom.DirectionBins - 1) % geom.DirectionBins
		next := (idx + 1) % geom.DirectionBins
		exitProb[exit.LaneID] = smoothCenterWeight*probability[idx] +
			smoothNeighborWeight*probability[prev] +
			smoothNeighborWeight*probability[next]
	}
	return exitProb
}

// redistributeProbabilities writes a probability onto each candidate
// lane sequence in the obstacle's route graph. A sequence takes the
// smoothed value of the last segment (in segment order) whose lane
// matches a junction exit; sequences with no matching segment are left
// untouched. This is the one deliberate side effect on caller-owned
// state.
func redistributeProbabilities(obs *Obstacle, probability []float64) {
	exitProb := smoothedExitProbabilities(obs, probability)
	for _, seq := range obs.LaneGraph.Sequences {
		if seq == nil {
			continue
		}
		assigned := false
		value := 0.0
		for _, segment := range seq.Segments {
			if p, ok := exitProb[segment.LaneID]; ok {
				value = p
				assigned = true
			}
		}
		if assigned {
			seq.Probability = value
		}
	}
}
