package mlp

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// modelFile is the on-disk JSON schema for a pretrained model. Weights
// are row-major: one inner slice per input row, one entry per output
// column.
type modelFile struct {
	Layers []layerFile `json:"layers"`
}

type layerFile struct {
	Activation string      `json:"activation"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
}

// Load reads and validates a model from a JSON file. Load failures are
// fatal for the caller: an evaluator must never be constructed around a
// nil or invalid model.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mlp: read model %s: %w", path, err)
	}
	var mf modelFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("mlp: parse model %s: %w", path, err)
	}

	model := &Model{Layers: make([]Layer, 0, len(mf.Layers))}
	for i, lf := range mf.Layers {
		layer, err := buildLayer(lf)
		if err != nil {
			return nil, fmt.Errorf("mlp: model %s layer %d: %w", path, i, err)
		}
		model.Layers = append(model.Layers, layer)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("mlp: model %s: %w", path, err)
	}
	return model, nil
}

func buildLayer(lf layerFile) (Layer, error) {
	rows := len(lf.Weights)
	if rows == 0 {
		return Layer{}, fmt.Errorf("empty weight matrix")
	}
	cols := len(lf.Weights[0])
	if cols == 0 {
		return Layer{}, fmt.Errorf("empty weight row")
	}
	data := make([]float64, 0, rows*cols)
	for r, row := range lf.Weights {
		if len(row) != cols {
			return Layer{}, fmt.Errorf("ragged weight matrix: row %d has %d columns, want %d",
				r, len(row), cols)
		}
		data = append(data, row...)
	}
	if len(lf.Bias) != cols {
		return Layer{}, fmt.Errorf("bias length %d != %d columns", len(lf.Bias), cols)
	}
	return Layer{
		Weights:    mat.NewDense(rows, cols, data),
		Bias:       mat.NewVecDense(cols, append([]float64(nil), lf.Bias...)),
		Activation: Activation(lf.Activation),
	}, nil
}
