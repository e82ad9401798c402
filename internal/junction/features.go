package junction

import (
	"errors"
	"fmt"

	"github.com/gridline-data/junction.report/internal/geom"
)

// Feature vector layout: obstacle block ++ ego block ++ junction block.
// The pretrained model was fitted against exactly this ordering, so the
// sizes and field order here are load-bearing.
const (
	obstacleFeatureSize = 3
	egoFeatureSize      = 4
	binFieldCount       = 6
	junctionFeatureSize = geom.DirectionBins * binFieldCount

	// FeatureVectorSize is the full encoded input width of the model.
	FeatureVectorSize = obstacleFeatureSize + egoFeatureSize + junctionFeatureSize
)

// egoSentinel is written as the relative position when no ego pose is
// available, signalling "unknown / far away" to the network instead of
// a spurious zero offset.
const egoSentinel = 100.0

// FeatureVector is the flat 79-value model input.
type FeatureVector []float64

// binDistance returns the normalised distance field of direction bin i.
func (v FeatureVector) binDistance(i int) float64 {
	return v[obstacleFeatureSize+egoFeatureSize+i*binFieldCount+3]
}

// binFeature is the named per-bin record for the junction block,
// flattened in field order when the vector is assembled.
type binFeature struct {
	Exists      float64
	DX          float64
	DY          float64
	Distance    float64
	HeadingDiff float64
	Cost        float64
}

// defaultBinFeature represents "no exit in this direction". The unit
// offsets and distance keep empty bins away from zero, which the
// network was trained against.
func defaultBinFeature() binFeature {
	return binFeature{DX: 1.0, DY: 1.0, Distance: 1.0}
}

func (b binFeature) appendTo(v FeatureVector) FeatureVector {
	return append(v, b.Exists, b.DX, b.DY, b.Distance, b.HeadingDiff, b.Cost)
}

// Encoding failure kinds. A failed block aborts the whole extraction;
// no partial vector is ever handed to the model.
var (
	ErrMissingPosition = errors.New("junction: obstacle has no position")
	ErrMissingJunction = errors.New("junction: obstacle has no junction context")
	ErrInvalidRange    = errors.New("junction: junction range must be positive")
	ErrFeatureSize     = errors.New("junction: encoded feature block has wrong size")
)

// FeatureEncoder builds model input vectors from obstacle state. The
// ego pose is an injected capability so offline evaluation can run
// without one.
type FeatureEncoder struct {
	ego        EgoPoseProvider
	timeStep   float64
	maxSamples int
}

// Encode produces the 79-value feature vector for an obstacle, or an
// error if any block cannot be populated.
func (e *FeatureEncoder) Encode(obs *Obstacle) (FeatureVector, error) {
	obstacleBlock, err := e.obstacleFeatures(obs)
	if err != nil {
		return nil, fmt.Errorf("obstacle block: %w", err)
	}
	egoBlock := e.egoFeatures(obs)
	bins, err := e.junctionBins(obs)
	if err != nil {
		return nil, fmt.Errorf("junction block: %w", err)
	}

	v := make(FeatureVector, 0, FeatureVectorSize)
	v = append(v, obstacleBlock...)
	v = append(v, egoBlock...)
	for _, bin := range bins {
		v = bin.appendTo(v)
	}
	if len(v) != FeatureVectorSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureSize, len(v), FeatureVectorSize)
	}
	return v, nil
}

// obstacleFeatures returns [speed, acceleration, junction_range]. A
// missing position invalidates the block outright rather than zero
// filling it.
func (e *FeatureEncoder) obstacleFeatures(obs *Obstacle) ([]float64, error) {
	if !obs.HasPosition {
		return nil, ErrMissingPosition
	}
	if obs.Junction == nil {
		return nil, ErrMissingJunction
	}
	return []float64{obs.Speed, obs.Acceleration, obs.Junction.JunctionRange}, nil
}

// egoFeatures returns the ego vehicle's position relative to the
// obstacle and its velocity rotated into the obstacle's heading frame.
// Without an ego pose the relative position falls back to a far-away
// sentinel and the relative velocity stays zero.
func (e *FeatureEncoder) egoFeatures(obs *Obstacle) []float64 {
	pose, ok := EgoPose{}, false
	if e.ego != nil {
		pose, ok = e.ego.CurrentPose()
	}
	if !ok {
		return []float64{egoSentinel, egoSentinel, 0.0, 0.0}
	}
	relPos := pose.Position.Sub(obs.Position)
	relVel := pose.Velocity.Rotate(-obs.VelocityHeading)
	return []float64{relPos.X, relPos.Y, relVel.X, relVel.Y}
}

// junctionBins fills the 12 direction bins from the junction's exits.
// Exit offsets are rotated into the obstacle's motion-heading frame;
// when two exits land in the same bin, the later one in iteration order
// wins.
func (e *FeatureEncoder) junctionBins(obs *Obstacle) ([geom.DirectionBins]binFeature, error) {
	var bins [geom.DirectionBins]binFeature
	for i := range bins {
		bins[i] = defaultBinFeature()
	}
	if !obs.HasPosition {
		return bins, ErrMissingPosition
	}
	if obs.Junction == nil {
		return bins, ErrMissingJunction
	}
	junctionRange := obs.Junction.JunctionRange
	if junctionRange <= 0 {
		return bins, ErrInvalidRange
	}

	heading := obs.motionHeading()
	for _, exit := range obs.Junction.Exits {
		diff := exit.Position.Sub(obs.Position).Rotate(-heading)
		idx := geom.BinIndex(diff.Angle())
		headingDiff := geom.AngleDiff(heading, exit.Heading)
		cost := trajectoryCost(diff, headingDiff, obs.Speed, e.timeStep, e.maxSamples)
		bins[idx] = binFeature{
			Exists:      1.0,
			DX:          diff.X / junctionRange,
			DY:          diff.Y / junctionRange,
			Distance:    diff.Norm() / junctionRange,
			HeadingDiff: headingDiff,
			Cost:        cost,
		}
	}
	return bins, nil
}

// motionHeading is the direction-of-travel reference frame shared by
// the encoder and the redistributor. Both must derive it the same way
// or bin assignment and smoothing would disagree.
func (o *Obstacle) motionHeading() float64 {
	return o.RawVelocity.Angle()
}
