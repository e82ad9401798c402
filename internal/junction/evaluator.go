package junction

import (
	"errors"
	"fmt"

	"github.com/gridline-data/junction.report/internal/geom"
	"github.com/gridline-data/junction.report/internal/mlp"
	"github.com/gridline-data/junction.report/internal/monitoring"
)

// EvaluatorConfig holds the tunable parameters of the evaluation
// pipeline. Zero values fall back to the package defaults.
type EvaluatorConfig struct {
	// TrajectoryTimeStep is the sampling resolution (seconds) along
	// fitted exit trajectories.
	TrajectoryTimeStep float64
	// MaxTrajectorySamples caps the per-exit sampling loop.
	MaxTrajectorySamples int
}

// DefaultEvaluatorConfig returns production-default pipeline parameters.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		TrajectoryTimeStep:   DefaultTrajectoryTimeStep,
		MaxTrajectorySamples: DefaultMaxTrajectorySamples,
	}
}

// Skip conditions reported by Evaluate. They mark obstacles the
// pipeline cannot or need not score; callers log and continue.
var (
	ErrNilObstacle     = errors.New("junction: nil obstacle")
	ErrNoJunctionExits = errors.New("junction: obstacle has no junction exits")
	ErrNoPrediction    = errors.New("junction: model produced no prediction")
)

// Evaluator runs the full exit-prediction pipeline. It holds only the
// immutable model and encoder configuration, so concurrent Evaluate
// calls on different obstacles are safe.
type Evaluator struct {
	model   *mlp.Model
	encoder FeatureEncoder
}

// NewEvaluator builds an evaluator around a loaded model. Construction
// fails on a nil or invalid model, or on a model whose input width does
// not match the feature vector layout or whose output width does not
// match the direction bin count; an evaluator must never run with a
// model it cannot feed or whose predictions it cannot bin.
func NewEvaluator(model *mlp.Model, ego EgoPoseProvider, cfg EvaluatorConfig) (*Evaluator, error) {
	if model == nil {
		return nil, errors.New("junction: evaluator requires a model")
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("junction: invalid model: %w", err)
	}
	if model.InputWidth() != FeatureVectorSize {
		return nil, fmt.Errorf("junction: model input width %d, want %d",
			model.InputWidth(), FeatureVectorSize)
	}
	if model.OutputWidth() != geom.DirectionBins {
		return nil, fmt.Errorf("junction: model output width %d, want %d",
			model.OutputWidth(), geom.DirectionBins)
	}
	if cfg.TrajectoryTimeStep <= 0 {
		cfg.TrajectoryTimeStep = DefaultTrajectoryTimeStep
	}
	if cfg.MaxTrajectorySamples <= 0 {
		cfg.MaxTrajectorySamples = DefaultMaxTrajectorySamples
	}
	return &Evaluator{
		model: model,
		encoder: FeatureEncoder{
			ego:        ego,
			timeStep:   cfg.TrajectoryTimeStep,
			maxSamples: cfg.MaxTrajectorySamples,
		},
	}, nil
}

// EncodeFeatures exposes the feature encoder for offline use. It is
// pure: the obstacle is only read.
func (e *Evaluator) EncodeFeatures(obs *Obstacle) (FeatureVector, error) {
	if obs == nil {
		return nil, ErrNilObstacle
	}
	return e.encoder.Encode(obs)
}

// Infer runs the model forward pass over an encoded vector. It is pure
// and independently testable; a dimension mismatch yields no prediction
// rather than a fault.
func (e *Evaluator) Infer(features FeatureVector) ([]float64, error) {
	return e.model.Forward(features)
}

// Evaluate scores one obstacle and writes the results in place: the 12
// directional-bin probabilities onto the obstacle, and a smoothed
// per-path probability onto each matching lane sequence in its route
// graph. Junctions with a single exit bypass the model and take each
// bin's normalised exit distance as its probability, avoiding a
// meaningless single-class classification.
//
// The returned error marks a skipped obstacle; it is never fatal to the
// caller's batch.
func (e *Evaluator) Evaluate(obs *Obstacle) error {
	if obs == nil {
		return ErrNilObstacle
	}
	if obs.Junction == nil || len(obs.Junction.Exits) == 0 {
		return ErrNoJunctionExits
	}

	features, err := e.encoder.Encode(obs)
	if err != nil {
		return fmt.Errorf("junction: encode obstacle %d: %w", obs.ID, err)
	}

	var probability []float64
	if len(obs.Junction.Exits) > 1 {
		probability, err = e.model.Forward(features)
		if err != nil {
			return fmt.Errorf("%w: obstacle %d: %v", ErrNoPrediction, obs.ID, err)
		}
	} else {
		probability = make([]float64, geom.DirectionBins)
		for i := range probability {
			probability[i] = features.binDistance(i)
		}
	}
	obs.JunctionProbabilities = probability

	if obs.LaneGraph == nil || len(obs.LaneGraph.Sequences) == 0 {
		// Bin probabilities are still recorded; there is just no
		// route graph to redistribute them onto.
		return nil
	}
	redistributeProbabilities(obs, probability)
	return nil
}

// EvaluateAll runs Evaluate over every obstacle in the store in ID
// order. Per-obstacle failures are logged and skipped so one malformed
// obstacle never blocks the rest. It returns the number of obstacles
// successfully evaluated.
func (e *Evaluator) EvaluateAll(store *ObstacleStore) int {
	evaluated := 0
	for _, id := range store.IDs() {
		obs, ok := store.Get(id)
		if !ok {
			continue
		}
		if err := e.Evaluate(obs); err != nil {
			monitoring.Logf("junction: skipping obstacle %d: %v", id, err)
			continue
		}
		evaluated++
	}
	return evaluated
}
