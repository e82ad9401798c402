// Package mlp implements the pretrained feed-forward network used for
// junction exit prediction: immutable model topology, a dimension-checked
// forward pass, and a JSON weight loader. Models are read-only after
// load and safe for concurrent evaluation.
package mlp

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Activation identifies the activation function applied to a layer's
// pre-activation outputs.
type Activation string

const (
	ActivationIdentity Activation = "identity"
	ActivationReLU     Activation = "relu"
	ActivationSigmoid  Activation = "sigmoid"
	ActivationTanh     Activation = "tanh"
	ActivationSoftmax  Activation = "softmax"
)

// valid reports whether a is a recognised activation kind.
func (a Activation) valid() bool {
	switch a {
	case ActivationIdentity, ActivationReLU, ActivationSigmoid,
		ActivationTanh, ActivationSoftmax:
		return true
	}
	return false
}

// Layer is one fully-connected layer. Weights has one row per input and
// one column per output neuron; Bias has one entry per output neuron.
type Layer struct {
	Weights    *mat.Dense
	Bias       *mat.VecDense
	Activation Activation
}

// InputWidth returns the number of inputs the layer consumes.
func (l *Layer) InputWidth() int {
	r, _ := l.Weights.Dims()
	return r
}

// OutputWidth returns the number of outputs the layer produces.
func (l *Layer) OutputWidth() int {
	_, c := l.Weights.Dims()
	return c
}

// Model is an ordered stack of layers. It is immutable after
// construction; Validate must pass before the model is used.
type Model struct {
	Layers []Layer
}

// ErrDimensionMismatch is returned when an input vector's length does
// not match the model's declared input width.
var ErrDimensionMismatch = errors.New("mlp: input dimension mismatch")

// ErrEmptyModel is returned when a model has no layers.
var ErrEmptyModel = errors.New("mlp: model has no layers")

// InputWidth returns the input width of the first layer, or 0 for an
// empty model.
func (m *Model) InputWidth() int {
	if len(m.Layers) == 0 {
		return 0
	}
	return m.Layers[0].InputWidth()
}

// OutputWidth returns the output width of the last layer, or 0 for an
// empty model.
func (m *Model) OutputWidth() int {
	if len(m.Layers) == 0 {
		return 0
	}
	return m.Layers[len(m.Layers)-1].OutputWidth()
}

// Validate checks the layer chain: every layer needs weights, a bias of
// matching width, a known activation, and an input width equal to the
// previous layer's output width.
func (m *Model) Validate() error {
	if len(m.Layers) == 0 {
		return ErrEmptyModel
	}
	prevOut := -1
	for i := range m.Layers {
		l := &m.Layers[i]
		if l.Weights == nil || l.Bias == nil {
			return fmt.Errorf("mlp: layer %d missing weights or bias", i)
		}
		if !l.Activation.valid() {
			return fmt.Errorf("mlp: layer %d has unknown activation %q", i, l.Activation)
		}
		if l.Bias.Len() != l.OutputWidth() {
			return fmt.Errorf("mlp: layer %d bias length %d != output width %d",
				i, l.Bias.Len(), l.OutputWidth())
		}
		if prevOut >= 0 && l.InputWidth() != prevOut {
			return fmt.Errorf("mlp: layer %d input width %d != previous output width %d",
				i, l.InputWidth(), prevOut)
		}
		prevOut = l.OutputWidth()
	}
	return nil
}
