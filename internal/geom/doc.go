// Package geom provides the 2D vector, angle, and cubic-trajectory math
// shared by the junction feature encoder and probability redistributor.
// Both stages must bin exit directions through the same helpers here so
// encoding and smoothing never disagree on a bin assignment.
package geom
