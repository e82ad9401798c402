package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for the prediction
// pipeline. All fields are pointers so a partial JSON file only
// overrides what it names; the Get* accessors supply defaults for the
// rest.
type TuningConfig struct {
	// Trajectory cost params
	TrajectoryTimeResolution *float64 `json:"trajectory_time_resolution,omitempty"` // seconds per sample
	MaxTrajectorySamples     *int     `json:"max_trajectory_samples,omitempty"`

	// Model params
	ModelFile *string `json:"model_file,omitempty"`

	// Diagnostics
	Debug *bool `json:"debug,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from a file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under the max file size. Fields
// omitted from the JSON retain their defaults, so partial configs are
// safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching upward from the current directory.
// Panics if the file cannot be loaded; intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.TrajectoryTimeResolution != nil && *c.TrajectoryTimeResolution <= 0 {
		return fmt.Errorf("trajectory_time_resolution must be positive, got %f",
			*c.TrajectoryTimeResolution)
	}
	if c.MaxTrajectorySamples != nil && *c.MaxTrajectorySamples <= 0 {
		return fmt.Errorf("max_trajectory_samples must be positive, got %d",
			*c.MaxTrajectorySamples)
	}
	return nil
}

// GetTrajectoryTimeResolution returns the sampling resolution or the default.
func (c *TuningConfig) GetTrajectoryTimeResolution() float64 {
	if c.TrajectoryTimeResolution == nil {
		return 0.1 // seconds
	}
	return *c.TrajectoryTimeResolution
}

// GetMaxTrajectorySamples returns the sampling loop cap or the default.
func (c *TuningConfig) GetMaxTrajectorySamples() int {
	if c.MaxTrajectorySamples == nil {
		return 10000
	}
	return *c.MaxTrajectorySamples
}

// GetModelFile returns the configured model path or the default.
func (c *TuningConfig) GetModelFile() string {
	if c.ModelFile == nil || *c.ModelFile == "" {
		return "config/junction_mlp.json"
	}
	return *c.ModelFile
}

// GetDebug returns the debug flag or the default.
func (c *TuningConfig) GetDebug() bool {
	if c.Debug == nil {
		return false
	}
	return *c.Debug
}
