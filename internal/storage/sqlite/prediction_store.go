// Package sqlite persists junction exit predictions for later review
// and model comparison. Inserts happen outside the evaluation path.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prediction is one persisted evaluation result: the 12 directional-bin
// probabilities and the per-path probabilities written onto the route
// graph, keyed by scene and obstacle.
type Prediction struct {
	PredictionID      string             `json:"prediction_id"`
	SceneID           string             `json:"scene_id"`
	ObstacleID        int                `json:"obstacle_id"`
	JunctionID        string             `json:"junction_id,omitempty"`
	ModelFile         string             `json:"model_file,omitempty"`
	BinProbabilities  []float64          `json:"bin_probabilities"`
	PathProbabilities map[string]float64 `json:"path_probabilities,omitempty"`
	CreatedAt         int64              `json:"created_at"`
}

// PredictionStore provides persistence for evaluation results.
type PredictionStore struct {
	db *sql.DB
}

// NewPredictionStore creates a PredictionStore over an open database.
func NewPredictionStore(db *sql.DB) *PredictionStore {
	return &PredictionStore{db: db}
}

// Insert persists a prediction. If PredictionID is empty a UUID is
// generated; if CreatedAt is zero the current time is used.
func (s *PredictionStore) Insert(p *Prediction) error {
	if p.PredictionID == "" {
		p.PredictionID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}

	bins, err := json.Marshal(p.BinProbabilities)
	if err != nil {
		return fmt.Errorf("marshal bin probabilities: %w", err)
	}
	var paths interface{}
	if len(p.PathProbabilities) > 0 {
		raw, err := json.Marshal(p.PathProbabilities)
		if err != nil {
			return fmt.Errorf("marshal path probabilities: %w", err)
		}
		paths = string(raw)
	}

	return retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO junction_predictions (
				prediction_id, scene_id, obstacle_id, junction_id,
				model_file, bin_probabilities, path_probabilities, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.PredictionID, p.SceneID, p.ObstacleID, p.JunctionID,
			p.ModelFile, string(bins), paths, p.CreatedAt,
		)
		return err
	})
}

// ListByScene returns all predictions for a scene, newest first.
func (s *PredictionStore) ListByScene(sceneID string) ([]*Prediction, error) {
	rows, err := s.db.Query(`
		SELECT prediction_id, scene_id, obstacle_id, junction_id,
		       model_file, bin_probabilities, path_probabilities, created_at
		FROM junction_predictions
		WHERE scene_id = ?
		ORDER BY created_at DESC`, sceneID)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	var out []*Prediction
	for rows.Next() {
		p := &Prediction{}
		var junctionID, modelFile, bins sql.NullString
		var paths sql.NullString
		if err := rows.Scan(&p.PredictionID, &p.SceneID, &p.ObstacleID,
			&junctionID, &modelFile, &bins, &paths, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		p.JunctionID = junctionID.String
		p.ModelFile = modelFile.String
		if bins.Valid {
			if err := json.Unmarshal([]byte(bins.String), &p.BinProbabilities); err != nil {
				return nil, fmt.Errorf("unmarshal bin probabilities: %w", err)
			}
		}
		if paths.Valid {
			if err := json.Unmarshal([]byte(paths.String), &p.PathProbabilities); err != nil {
				return nil, fmt.Errorf("unmarshal path probabilities: %w", err)
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// isSQLiteBusy reports whether err is a transient lock contention error.
func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// retryOnBusy retries fn with exponential backoff while it returns a
// busy error, up to 5 attempts. Non-busy errors fail immediately.
func retryOnBusy(fn func() error) error {
	const maxAttempts = 5
	backoff := 10 * time.Millisecond
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}
		err = fn()
		if err == nil || !isSQLiteBusy(err) {
			return err
		}
	}
	return err
}
