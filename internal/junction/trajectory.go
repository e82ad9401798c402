package junction

import (
	"math"

	"github.com/gridline-data/junction.report/internal/geom"
)

const (
	// minTrajectorySpeed floors the obstacle speed before computing
	// travel time, so near-stationary obstacles still get a finite
	// horizon.
	minTrajectorySpeed = 0.1

	// DefaultTrajectoryTimeStep is the sampling resolution along the
	// fitted trajectory when none is configured.
	DefaultTrajectoryTimeStep = 0.1

	// DefaultMaxTrajectorySamples caps the sampling loop so a
	// pathological time step or travel time cannot stall evaluation.
	DefaultMaxTrajectorySamples = 10000
)

// FitExitTrajectory fits a short-horizon trajectory from the obstacle
// to an exit, both expressed in the obstacle's local frame: the start
// state is position (0,0) with velocity (speed, 0); the exit is at diff
// with velocity speed rotated by headingDiff. The speed is floored at
// minTrajectorySpeed so the travel horizon stays finite. Returns the
// two independent Hermite cubics x(t), y(t) and the horizon
// travelTime = |diff| / speed.
func FitExitTrajectory(diff geom.Vec2, headingDiff, speed float64) (x, y geom.Cubic, travelTime float64) {
	s := math.Max(speed, minTrajectorySpeed)
	travelTime = diff.Norm() / s

	sin, cos := math.Sincos(headingDiff)
	x = geom.CubicHermite(0, s, diff.X, s*cos, travelTime)
	y = geom.CubicHermite(0, 0, diff.Y, s*sin, travelTime)
	return x, y, travelTime
}

// Curvature returns the curvature-magnitude proxy
// |x'*y'' - y'*x''| / hypot(x', y') of a fitted trajectory at time t,
// or 0 where the instantaneous speed vanishes.
func Curvature(x, y geom.Cubic, t float64) float64 {
	x1 := x.Derivative(t)
	x2 := x.SecondDerivative(t)
	y1 := y.Derivative(t)
	y2 := y.SecondDerivative(t)
	speedAt := math.Hypot(x1, y1)
	if speedAt <= 0 {
		return 0
	}
	return math.Abs(x1*y2-y1*x2) / speedAt
}

// trajectoryCost scores how sharply the obstacle would have to turn to
// reach an exit: the fitted trajectory is sampled at timeStep from t=0
// to travelTime inclusive and the maximum curvature proxy is returned.
//
// A zero-distance exit degenerates to a single sample at t=0 with zero
// curvature.
func trajectoryCost(diff geom.Vec2, headingDiff, speed, timeStep float64, maxSamples int) float64 {
	x, y, travelTime := FitExitTrajectory(diff, headingDiff, speed)

	if timeStep <= 0 {
		timeStep = DefaultTrajectoryTimeStep
	}
	if maxSamples <= 0 {
		maxSamples = DefaultMaxTrajectorySamples
	}

	cost := 0.0
	samples := 0
	for t := 0.0; t <= travelTime && samples < maxSamples; t += timeStep {
		if c := Curvature(x, y, t); c > cost {
			cost = c
		}
		samples++
	}
	return cost
}
