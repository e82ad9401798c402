package mlp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeModel(t, `{
		"layers": [
			{
				"activation": "relu",
				"weights": [[1, 2], [3, 4], [5, 6]],
				"bias": [0.1, 0.2]
			},
			{
				"activation": "softmax",
				"weights": [[1, 0], [0, 1]],
				"bias": [0, 0]
			}
		]
	}`)

	model, err := Load(path)
	require.NoError(t, err)
	require.Len(t, model.Layers, 2)
	assert.Equal(t, 3, model.InputWidth())
	assert.Equal(t, 2, model.OutputWidth())
	assert.Equal(t, ActivationReLU, model.Layers[0].Activation)
	assert.Equal(t, ActivationSoftmax, model.Layers[1].Activation)
	assert.Equal(t, 2.0, model.Layers[0].Weights.At(0, 1))
	assert.Equal(t, 0.2, model.Layers[0].Bias.AtVec(1))
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing file is handled separately", ""},
		{
			name: "no layers",
			json: `{"layers": []}`,
		},
		{
			name: "ragged weights",
			json: `{"layers": [{"activation": "relu", "weights": [[1, 2], [3]], "bias": [0, 0]}]}`,
		},
		{
			name: "bias width mismatch",
			json: `{"layers": [{"activation": "relu", "weights": [[1, 2]], "bias": [0]}]}`,
		},
		{
			name: "unknown activation",
			json: `{"layers": [{"activation": "swish", "weights": [[1]], "bias": [0]}]}`,
		},
		{
			name: "dimension chain break",
			json: `{"layers": [
				{"activation": "relu", "weights": [[1, 2]], "bias": [0, 0]},
				{"activation": "softmax", "weights": [[1], [2], [3]], "bias": [0]}
			]}`,
		},
		{
			name: "not json",
			json: `weights go here`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.json == "" {
				_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
				assert.Error(t, err)
				return
			}
			_, err := Load(writeModel(t, tt.json))
			assert.Error(t, err, "expected load failure")
		})
	}
}
