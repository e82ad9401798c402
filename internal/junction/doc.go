// Package junction predicts which exit a tracked vehicle will take at a
// road junction. Each evaluation is a single-pass pipeline: encode the
// obstacle's kinematic and junction state into a fixed 79-value feature
// vector, run a pretrained MLP forward pass over it, and redistribute
// the 12 directional-bin probabilities onto the caller's candidate lane
// sequences with circular neighbour smoothing.
//
// The pipeline keeps no state between calls beyond the immutable model,
// so one Evaluator may serve concurrent evaluations of different
// obstacles. The only mutation performed is writing probabilities back
// onto the evaluated obstacle and its lane graph.
package junction
