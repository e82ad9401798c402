package junction

import (
	"math"
	"testing"

	"github.com/gridline-data/junction.report/internal/geom"
)

func TestTrajectoryCost_StraightPath(t *testing.T) {
	// Exit dead ahead with matching heading: the fitted trajectory is a
	// straight line with zero curvature.
	cost := trajectoryCost(geom.Vec2{X: 10, Y: 0}, 0, 5, 0.1, 10000)
	if cost > 1e-9 {
		t.Errorf("straight path cost = %v, want ~0", cost)
	}
}

func TestTrajectoryCost_TurnCostsMore(t *testing.T) {
	straight := trajectoryCost(geom.Vec2{X: 10, Y: 0}, 0, 5, 0.1, 10000)
	rightAngle := trajectoryCost(geom.Vec2{X: 10, Y: 0}, math.Pi/2, 5, 0.1, 10000)
	if rightAngle <= straight+0.01 {
		t.Errorf("90 degree cost %v not materially above straight cost %v",
			rightAngle, straight)
	}
}

func TestTrajectoryCost_SharperTurnsCostMore(t *testing.T) {
	// Monotonic sensitivity to the required turn, fixed distance and speed.
	prev := -1.0
	for _, hd := range []float64{0, math.Pi / 6, math.Pi / 3, math.Pi / 2} {
		cost := trajectoryCost(geom.Vec2{X: 10, Y: 0}, hd, 5, 0.1, 10000)
		if cost < prev {
			t.Fatalf("cost decreased at heading diff %v: %v < %v", hd, cost, prev)
		}
		prev = cost
	}
}

func TestTrajectoryCost_ZeroDistance(t *testing.T) {
	cost := trajectoryCost(geom.Vec2{}, 1.0, 5, 0.1, 10000)
	if cost != 0 {
		t.Errorf("zero-distance cost = %v, want 0", cost)
	}
}

func TestTrajectoryCost_SpeedFloor(t *testing.T) {
	// A stationary obstacle must still produce a finite cost.
	cost := trajectoryCost(geom.Vec2{X: 10, Y: 5}, 0.5, 0, 0.1, 10000)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		t.Errorf("cost = %v with zero speed, want finite", cost)
	}
}

func TestTrajectoryCost_GuardsAgainstUnboundedLoop(t *testing.T) {
	// Non-positive time step falls back to the default resolution.
	done := make(chan float64, 1)
	go func() {
		done <- trajectoryCost(geom.Vec2{X: 10, Y: 0}, 0, 5, -1, 10000)
	}()
	cost := <-done
	if math.IsNaN(cost) {
		t.Errorf("cost = NaN with non-positive time step")
	}

	// A pathologically small step is cut off by the sample cap.
	cost = trajectoryCost(geom.Vec2{X: 10, Y: 0}, math.Pi/2, 5, 1e-12, 100)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		t.Errorf("cost = %v with tiny time step, want finite", cost)
	}
}
