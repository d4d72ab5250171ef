// Package nn implements the layers of the flint feed-forward engine.
//
// This package provides the building blocks for small fully-connected
// networks trained with hand-derived backpropagation:
//   - Layer interface: forward inference and gradient accumulation contract
//   - Dense: fully connected layer
//   - Activation: sigmoid, ReLU, leaky ReLU, SELU
//   - Sequential: container for stacking layers, with the training loop
//
// Layers bind their shapes lazily: a network can be declared before the
// real input shape is known and resolved on the first forward pass.
package nn

import (
	"fmt"

	"github.com/flint-ml/flint/internal/tensor"
)

// Batch is the gradient accumulator for one mini-batch of a layer.
//
// A Batch is created by StartBatch, filled by every Backward call of the
// mini-batch, and consumed by EndBatch, which applies the parameter update
// averaged over the accumulated samples. A Batch belongs to the layer that
// created it and must not be shared across layers.
type Batch interface {
	// Samples reports how many gradient accumulations this batch has seen.
	Samples() int
}

// Layer is the capability contract implemented by Dense, Activation and
// Sequential.
//
// Lifecycle: a layer is created unbound; Init (or the lazy initialization
// triggered by the first Forward) binds its input and output shapes and
// allocates parameters. Forward and Backward require the bound state and
// return ErrUninitialized otherwise. Re-initializing with a different input
// shape is a contract violation reported as ErrShapeBound.
type Layer interface {
	// Name returns a short human-readable layer description.
	Name() string

	// Init binds the layer to an input shape and, for trainable layers,
	// allocates and initializes parameters. Calling Init again with the
	// shape already bound is a no-op; a different shape is an error.
	Init(in tensor.Shape) error

	// InputShape returns the bound input shape, or nil before Init.
	InputShape() tensor.Shape

	// OutputShape returns the bound output shape, or nil before Init.
	OutputShape() tensor.Shape

	// Forward computes the layer output for one sample. It lazily
	// initializes the layer from input's shape and resizes output to the
	// layer's output shape. The only state mutated besides output are the
	// values the layer captures for the next Backward call.
	Forward(input, output *tensor.Tensor) error

	// StartBatch creates a fresh gradient accumulator for one mini-batch.
	StartBatch() Batch

	// Backward accumulates parameter gradients for one sample into batch
	// and writes the gradient with respect to the layer input into
	// inputGrad (resized to the input shape). outputGrad must have the
	// layer's output shape. Backward reads the values captured by the
	// immediately preceding Forward call for the same sample.
	Backward(batch Batch, outputGrad, inputGrad *tensor.Tensor) error

	// EndBatch consumes batch, applying the plain SGD update with the
	// given learning rate scaled by 1/batch.Samples().
	EndBatch(batch Batch, learningRate float32) error

	// TrainableParams returns the number of learnable scalars.
	TrainableParams() int

	// Trainable reports whether the layer has learnable parameters.
	Trainable() bool
}

// LazyInit initializes l from the given input shape if it is still unbound,
// and otherwise verifies that the shape matches the bound one.
func LazyInit(l Layer, in tensor.Shape) error {
	if l.InputShape() == nil {
		return l.Init(in)
	}
	if !l.InputShape().Equal(in) {
		return fmt.Errorf("%w: %s is bound to %v, got %v", ErrShapeBound, l.Name(), l.InputShape(), in)
	}
	return nil
}

// ForwardBatch runs Forward once per axis-0 slice of input, writing each
// result into the corresponding slice of output. It lazily initializes l
// from the per-item shape. Samples are independent, so this is suitable for
// pure inference only.
func ForwardBatch(l Layer, input, output *tensor.Tensor) error {
	if err := input.Shape().Validate(); err != nil {
		return err
	}
	if err := LazyInit(l, input.Index(0).Shape()); err != nil {
		return err
	}
	n := input.Shape()[0]
	batchShape := append(tensor.Shape{n}, l.OutputShape()...)
	if err := output.Resize(batchShape); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := l.Forward(input.Index(i), output.Index(i)); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return nil
}

// forwardSetup is the shared Forward prologue: lazy initialization from the
// input shape and resizing the output tensor to the layer's output shape.
func forwardSetup(l Layer, input, output *tensor.Tensor) error {
	if err := input.Shape().Validate(); err != nil {
		return err
	}
	if err := LazyInit(l, input.Shape()); err != nil {
		return err
	}
	return output.Resize(l.OutputShape())
}

// backwardSetup is the shared Backward prologue: it requires the bound
// state, checks outputGrad against the output shape and resizes inputGrad
// to the input shape.
func backwardSetup(l Layer, outputGrad, inputGrad *tensor.Tensor) error {
	if l.InputShape() == nil {
		return fmt.Errorf("%w: %s", ErrUninitialized, l.Name())
	}
	if !outputGrad.Shape().Equal(l.OutputShape()) {
		return fmt.Errorf("%w: %s expects output gradients of shape %v, got %v",
			tensor.ErrShapeMismatch, l.Name(), l.OutputShape(), outputGrad.Shape())
	}
	return inputGrad.Resize(l.InputShape())
}
