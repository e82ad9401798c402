package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTuningConfig(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
		check   func(t *testing.T, cfg *TuningConfig)
	}{
		{
			name: "full config",
			json: `{
				"trajectory_time_resolution": 0.05,
				"max_trajectory_samples": 500,
				"model_file": "models/custom.json",
				"debug": true
			}`,
			check: func(t *testing.T, cfg *TuningConfig) {
				if got := cfg.GetTrajectoryTimeResolution(); got != 0.05 {
					t.Errorf("GetTrajectoryTimeResolution() = %v, want 0.05", got)
				}
				if got := cfg.GetMaxTrajectorySamples(); got != 500 {
					t.Errorf("GetMaxTrajectorySamples() = %v, want 500", got)
				}
				if got := cfg.GetModelFile(); got != "models/custom.json" {
					t.Errorf("GetModelFile() = %q", got)
				}
				if !cfg.GetDebug() {
					t.Error("GetDebug() = false, want true")
				}
			},
		},
		{
			name: "partial config keeps defaults",
			json: `{"trajectory_time_resolution": 0.2}`,
			check: func(t *testing.T, cfg *TuningConfig) {
				if got := cfg.GetTrajectoryTimeResolution(); got != 0.2 {
					t.Errorf("GetTrajectoryTimeResolution() = %v, want 0.2", got)
				}
				if got := cfg.GetMaxTrajectorySamples(); got != 10000 {
					t.Errorf("GetMaxTrajectorySamples() = %v, want default 10000", got)
				}
				if got := cfg.GetModelFile(); got != "config/junction_mlp.json" {
					t.Errorf("GetModelFile() = %q, want default", got)
				}
			},
		},
		{
			name: "empty config all defaults",
			json: `{}`,
			check: func(t *testing.T, cfg *TuningConfig) {
				if got := cfg.GetTrajectoryTimeResolution(); got != 0.1 {
					t.Errorf("GetTrajectoryTimeResolution() = %v, want default 0.1", got)
				}
				if cfg.GetDebug() {
					t.Error("GetDebug() = true, want default false")
				}
			},
		},
		{
			name:    "non-positive time resolution rejected",
			json:    `{"trajectory_time_resolution": 0}`,
			wantErr: true,
		},
		{
			name:    "negative sample cap rejected",
			json:    `{"max_trajectory_samples": -1}`,
			wantErr: true,
		},
		{
			name:    "malformed JSON rejected",
			json:    `{"trajectory_time_resolution":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.json)
			cfg, err := LoadTuningConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTuningConfig() error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadTuningConfig_RequiresJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("expected error for non-json extension")
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if got := cfg.GetTrajectoryTimeResolution(); got != 0.1 {
		t.Errorf("defaults file GetTrajectoryTimeResolution() = %v, want 0.1", got)
	}
	if got := cfg.GetMaxTrajectorySamples(); got != 10000 {
		t.Errorf("defaults file GetMaxTrajectorySamples() = %v, want 10000", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{
			name: "valid values",
			cfg: &TuningConfig{
				TrajectoryTimeResolution: ptrFloat64(0.05),
				MaxTrajectorySamples:     ptrInt(100),
				ModelFile:                ptrString("models/a.json"),
			},
		},
		{
			name: "nil fields valid",
			cfg:  EmptyTuningConfig(),
		},
		{
			name:    "negative time resolution",
			cfg:     &TuningConfig{TrajectoryTimeResolution: ptrFloat64(-0.1)},
			wantErr: true,
		},
		{
			name:    "zero sample cap",
			cfg:     &TuningConfig{MaxTrajectorySamples: ptrInt(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadTuningConfig_MissingFile(t *testing.T) {
	if _, err := LoadTuningConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
