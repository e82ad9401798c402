package mlp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Forward runs the network over input and returns the last layer's
// output. The input length must equal the first layer's input width;
// on mismatch the result is nil with ErrDimensionMismatch, which
// callers treat as "no prediction" rather than a fault. Forward never
// mutates the model or the input slice.
func (m *Model) Forward(input []float64) ([]float64, error) {
	if len(m.Layers) == 0 {
		return nil, ErrEmptyModel
	}
	if len(input) != m.InputWidth() {
		return nil, ErrDimensionMismatch
	}

	current := mat.NewVecDense(len(input), append([]float64(nil), input...))
	for i := range m.Layers {
		l := &m.Layers[i]
		out := mat.NewVecDense(l.OutputWidth(), nil)
		out.MulVec(l.Weights.T(), current)
		out.AddVec(out, l.Bias)

		raw := out.RawVector().Data
		switch l.Activation {
		case ActivationReLU:
			for j, x := range raw {
				raw[j] = relu(x)
			}
		case ActivationSigmoid:
			for j, x := range raw {
				raw[j] = sigmoid(x)
			}
		case ActivationTanh:
			for j, x := range raw {
				raw[j] = math.Tanh(x)
			}
		case ActivationSoftmax:
			// Applied across the whole layer output, not pointwise.
			softmax(raw)
		}
		current = out
	}
	return current.RawVector().Data, nil
}
