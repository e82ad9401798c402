package mlp

import "math"

// relu returns max(0, x).
func relu(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// sigmoid returns 1 / (1 + e^-x).
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// softmax normalises v in place into a probability distribution.
// The running maximum is subtracted before exponentiation so large
// pre-activation values cannot overflow.
func softmax(v []float64) {
	if len(v) == 0 {
		return
	}
	max := v[0]
	for _, x := range v[1:] {
		if x > max {
			max = x
		}
	}
	sum := 0.0
	for i, x := range v {
		e := math.Exp(x - max)
		v[i] = e
		sum += e
	}
	if sum == 0 {
		return
	}
	for i := range v {
		v[i] /= sum
	}
}
