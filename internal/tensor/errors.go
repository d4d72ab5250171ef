package tensor

import "errors"

// Contract violations surfaced as typed errors so callers can propagate
// instead of crashing.
var (
	// ErrInvalidShape reports a shape with a non-positive axis, no axes,
	// or more than MaxDims axes.
	ErrInvalidShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch reports an element-wise operation on tensors of
	// different shapes.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrViewResize reports an attempt to resize a borrowed view.
	ErrViewResize = errors.New("tensor: cannot resize a borrowed view")
)
