package main

import (
	"math"
	"testing"

	"github.com/gridline-data/junction.report/internal/geom"
	"github.com/gridline-data/junction.report/internal/junction"
)

func TestObstacleResult_PathKeying(t *testing.T) {
	obs := &junction.Obstacle{
		ID:                    7,
		JunctionProbabilities: make([]float64, geom.DirectionBins),
		Junction: &junction.JunctionContext{
			JunctionID:    "J-31",
			JunctionRange: 50,
			Exits: []junction.JunctionExit{
				{Position: geom.Vec2{X: 50, Y: 0}, Heading: 0, LaneID: "lane-a"},
				{Position: geom.Vec2{X: 0, Y: 50}, Heading: math.Pi / 2, LaneID: "lane-b"},
			},
		},
		LaneGraph: &junction.LaneGraph{Sequences: []*junction.LaneSequence{
			// Matched with a non-zero probability.
			{
				Segments:    []junction.LaneSegment{{LaneID: "in"}, {LaneID: "lane-a"}},
				Probability: 0.6,
			},
			// Matched but all contributing bins were zero; must still
			// be reported, not confused with an unmatched path.
			{
				Segments:    []junction.LaneSegment{{LaneID: "in"}, {LaneID: "lane-b"}},
				Probability: 0,
			},
			// No segment is an exit lane, so it never gets a value.
			{
				Segments:    []junction.LaneSegment{{LaneID: "in"}, {LaneID: "elsewhere"}},
				Probability: 0,
			},
		}},
	}

	res := obstacleResult(obs)

	if res.ObstacleID != 7 || res.JunctionID != "J-31" {
		t.Errorf("identity fields = (%d, %q), want (7, J-31)", res.ObstacleID, res.JunctionID)
	}
	if len(res.PathProbabilities) != 2 {
		t.Fatalf("PathProbabilities has %d entries, want 2: %v",
			len(res.PathProbabilities), res.PathProbabilities)
	}
	if got := res.PathProbabilities["lane-a"]; got != 0.6 {
		t.Errorf("lane-a probability = %v, want 0.6", got)
	}
	if got, ok := res.PathProbabilities["lane-b"]; !ok || got != 0 {
		t.Errorf("lane-b = (%v, %v), want matched zero entry", got, ok)
	}
	if _, ok := res.PathProbabilities["elsewhere"]; ok {
		t.Error("unmatched sequence must not be reported")
	}
}

func TestObstacleResult_NoLaneGraph(t *testing.T) {
	obs := &junction.Obstacle{
		ID:                    3,
		JunctionProbabilities: make([]float64, geom.DirectionBins),
		Junction:              &junction.JunctionContext{JunctionID: "J-2", JunctionRange: 40},
	}
	res := obstacleResult(obs)
	if res.PathProbabilities != nil {
		t.Errorf("PathProbabilities = %v, want nil without a lane graph", res.PathProbabilities)
	}
}
