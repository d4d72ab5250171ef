package nn

import "errors"

var (
	// ErrUninitialized reports an operation that requires bound shapes on
	// a layer that has not been initialized.
	ErrUninitialized = errors.New("nn: layer not initialized")

	// ErrShapeBound reports an attempt to initialize a layer with an input
	// shape different from the one it is already bound to.
	ErrShapeBound = errors.New("nn: layer already bound to a different input shape")

	// ErrNoForward reports a Backward call with no matching preceding
	// Forward call to capture values from.
	ErrNoForward = errors.New("nn: backward without a preceding forward pass")

	// ErrBatchMismatch reports a Batch handed to a layer other than the
	// one that created it.
	ErrBatchMismatch = errors.New("nn: batch accumulator belongs to a different layer")

	// ErrNotCompiled reports a training call on a model without an
	// optimizer and loss bound.
	ErrNotCompiled = errors.New("nn: model not compiled")

	// ErrInsufficientSamples reports a training set smaller than one
	// mini-batch; no learning is possible.
	ErrInsufficientSamples = errors.New("nn: not enough samples for one mini-batch")
)
