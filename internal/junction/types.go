package junction

import (
	"github.com/gridline-data/junction.report/internal/geom"
)

// JunctionExit is a point where a road leaves a junction, carrying the
// exit direction and the lane the exit feeds into.
type JunctionExit struct {
	Position geom.Vec2 `json:"position"`
	Heading  float64   `json:"heading"`
	LaneID   string    `json:"lane_id"`
}

// JunctionContext describes the junction an obstacle is approaching.
// JunctionRange is the normalisation scale for exit offsets and must be
// positive.
type JunctionContext struct {
	JunctionID    string         `json:"junction_id"`
	JunctionRange float64        `json:"junction_range"`
	Exits         []JunctionExit `json:"exits"`
}

// LaneSegment is one lane within a candidate route.
type LaneSegment struct {
	LaneID string `json:"lane_id"`
}

// LaneSequence is an ordered candidate route the obstacle might follow.
// Probability is written in place by the redistributor; sequences whose
// segments match no junction exit keep their zero value.
type LaneSequence struct {
	Segments    []LaneSegment `json:"segments"`
	Probability float64       `json:"probability"`
}

// LaneGraph holds the caller-owned candidate routes for one obstacle.
type LaneGraph struct {
	Sequences []*LaneSequence `json:"sequences"`
}

// Obstacle is the latest kinematic feature of a tracked object plus its
// junction and route substructures. The evaluator reads everything and
// writes only JunctionProbabilities and LaneGraph sequence
// probabilities.
type Obstacle struct {
	ID int `json:"id"`

	// Kinematics. HasPosition distinguishes a real origin from an
	// uninitialised zero value; encoding fails without it.
	HasPosition     bool      `json:"has_position"`
	Position        geom.Vec2 `json:"position"`
	RawVelocity     geom.Vec2 `json:"raw_velocity"`
	VelocityHeading float64   `json:"velocity_heading"`
	Speed           float64   `json:"speed"`
	Acceleration    float64   `json:"acceleration"`

	Junction  *JunctionContext `json:"junction,omitempty"`
	LaneGraph *LaneGraph       `json:"lane_graph,omitempty"`

	// JunctionProbabilities holds the 12 directional-bin probabilities
	// from the most recent evaluation, or nil if none succeeded.
	JunctionProbabilities []float64 `json:"junction_probabilities,omitempty"`
}

// EgoPose is the ego vehicle's position and velocity in world frame.
type EgoPose struct {
	Position geom.Vec2 `json:"position"`
	Velocity geom.Vec2 `json:"velocity"`
}

// EgoPoseProvider supplies the ego vehicle's current pose. A false
// second return means no pose is available, which the encoder handles
// with sentinel features rather than failing.
type EgoPoseProvider interface {
	CurrentPose() (EgoPose, bool)
}

// NoEgoPose is an EgoPoseProvider that never has a pose. Useful for
// offline evaluation where no ego vehicle exists.
type NoEgoPose struct{}

// CurrentPose always reports absence.
func (NoEgoPose) CurrentPose() (EgoPose, bool) { return EgoPose{}, false }

// StaticEgoPose is an EgoPoseProvider returning a fixed pose.
type StaticEgoPose struct {
	Pose EgoPose
}

// CurrentPose returns the fixed pose.
func (s StaticEgoPose) CurrentPose() (EgoPose, bool) { return s.Pose, true }
