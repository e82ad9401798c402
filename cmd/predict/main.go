// Package main evaluates junction exit predictions for a scene file.
// It loads a pretrained model and a scene JSON, runs the evaluation
// pipeline over every obstacle, prints the results as JSON, and can
// optionally record them to a sqlite database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/gridline-data/junction.report/internal/config"
	"github.com/gridline-data/junction.report/internal/db"
	"github.com/gridline-data/junction.report/internal/junction"
	"github.com/gridline-data/junction.report/internal/mlp"
	"github.com/gridline-data/junction.report/internal/monitoring"
	storage "github.com/gridline-data/junction.report/internal/storage/sqlite"
)

// ObstacleResult is the per-obstacle output record.
type ObstacleResult struct {
	ObstacleID        int                `json:"obstacle_id"`
	JunctionID        string             `json:"junction_id,omitempty"`
	BinProbabilities  []float64          `json:"bin_probabilities"`
	PathProbabilities map[string]float64 `json:"path_probabilities,omitempty"`
}

// RunResult is the full CLI output.
type RunResult struct {
	RunID     string           `json:"run_id"`
	SceneID   string           `json:"scene_id"`
	ModelFile string           `json:"model_file"`
	Evaluated int              `json:"evaluated"`
	Skipped   int              `json:"skipped"`
	Results   []ObstacleResult `json:"results"`
}

func main() {
	var (
		modelPath  = flag.String("model", "", "model JSON file (overrides tuning config)")
		scenePath  = flag.String("scene", "", "scene JSON file (required)")
		configPath = flag.String("config", "", "tuning config JSON file")
		dbPath     = flag.String("db", "", "sqlite database to record predictions into")
		migrations = flag.String("migrations", "db/migrations", "migrations directory for -db")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: predict -scene scene.json [-model model.json]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	monitoring.SetDebug(*verbose)

	tuning := config.EmptyTuningConfig()
	if *configPath != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("load tuning config: %v", err)
		}
	}
	if tuning.GetDebug() {
		monitoring.SetDebug(true)
	}

	modelFile := tuning.GetModelFile()
	if *modelPath != "" {
		modelFile = *modelPath
	}
	model, err := mlp.Load(modelFile)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}
	monitoring.Debugf("loaded model %s: %d layers, %d -> %d",
		modelFile, len(model.Layers), model.InputWidth(), model.OutputWidth())

	scene, err := junction.LoadScene(*scenePath)
	if err != nil {
		log.Fatalf("load scene: %v", err)
	}

	evaluator, err := junction.NewEvaluator(model, scene.EgoProvider(), junction.EvaluatorConfig{
		TrajectoryTimeStep:   tuning.GetTrajectoryTimeResolution(),
		MaxTrajectorySamples: tuning.GetMaxTrajectorySamples(),
	})
	if err != nil {
		log.Fatalf("create evaluator: %v", err)
	}

	store := scene.Store()
	evaluated := evaluator.EvaluateAll(store)

	run := RunResult{
		RunID:     uuid.New().String(),
		SceneID:   scene.SceneID,
		ModelFile: modelFile,
		Evaluated: evaluated,
		Skipped:   store.Len() - evaluated,
	}
	for _, id := range store.IDs() {
		obs, ok := store.Get(id)
		if !ok || obs.JunctionProbabilities == nil {
			continue
		}
		run.Results = append(run.Results, obstacleResult(obs))
	}

	if *dbPath != "" {
		if err := recordRun(*dbPath, *migrations, modelFile, scene.SceneID, run.Results); err != nil {
			log.Fatalf("record predictions: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		log.Fatalf("encode results: %v", err)
	}
}

// obstacleResult collects an obstacle's written-back probabilities.
// Path probabilities are keyed by the last exit lane a sequence passes
// through, the same segment the redistribution assigns from. Matching
// is decided against the junction's exit lanes, so a matched path with
// a genuinely zero smoothed probability still appears in the report.
func obstacleResult(obs *junction.Obstacle) ObstacleResult {
	res := ObstacleResult{
		ObstacleID:       obs.ID,
		BinProbabilities: obs.JunctionProbabilities,
	}
	if obs.Junction == nil {
		return res
	}
	res.JunctionID = obs.Junction.JunctionID

	if obs.LaneGraph == nil {
		return res
	}
	exitLanes := make(map[string]bool, len(obs.Junction.Exits))
	for _, exit := range obs.Junction.Exits {
		exitLanes[exit.LaneID] = true
	}
	res.PathProbabilities = make(map[string]float64)
	for _, seq := range obs.LaneGraph.Sequences {
		if seq == nil {
			continue
		}
		lane := ""
		for _, segment := range seq.Segments {
			if exitLanes[segment.LaneID] {
				lane = segment.LaneID
			}
		}
		if lane == "" {
			continue
		}
		res.PathProbabilities[lane] = seq.Probability
	}
	return res
}

func recordRun(dbPath, migrationsDir, modelFile, sceneID string, results []ObstacleResult) error {
	database, err := db.NewDB(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.MigrateUp(migrationsDir); err != nil {
		return err
	}

	predictions := storage.NewPredictionStore(database.DB)
	for _, res := range results {
		err := predictions.Insert(&storage.Prediction{
			SceneID:           sceneID,
			ObstacleID:        res.ObstacleID,
			JunctionID:        res.JunctionID,
			ModelFile:         modelFile,
			BinProbabilities:  res.BinProbabilities,
			PathProbabilities: res.PathProbabilities,
		})
		if err != nil {
			return fmt.Errorf("insert prediction for obstacle %d: %w", res.ObstacleID, err)
		}
	}
	return nil
}
