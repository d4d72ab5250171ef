// Copyright 2026 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for building and training flint
// networks.
//
// Example:
//
//	model := nn.NewSequential()
//	model.Add(nn.NewDense(2), tensor.Shape{2})
//	model.Add(nn.NewActivation(nn.SELU))
//	model.Add(nn.NewDense(1))
//	model.Compile(optim.NewSGD(optim.SGDConfig{LR: 0.05}), nn.MSE)
//	err := model.Train(x, y, 32, 1000)
package nn

import (
	"github.com/flint-ml/flint/internal/nn"
	"github.com/flint-ml/flint/internal/tensor"
)

// Layer is the capability contract implemented by all flint layers.
type Layer = nn.Layer

// Batch is the per-mini-batch gradient accumulator of a layer.
type Batch = nn.Batch

// Layers

// Dense is a fully connected layer.
type Dense = nn.Dense

// NewDense creates an unbound fully connected layer with the given number
// of output units. Weights are Xavier-initialized once the input shape is
// bound.
func NewDense(units int) *Dense {
	return nn.NewDense(units)
}

// Activation applies an element-wise activation function.
type Activation = nn.Activation

// NewActivation creates an unbound activation layer.
func NewActivation(fn Func) *Activation {
	return nn.NewActivation(fn)
}

// Sequential is a composite layer chaining children in order, with the
// mini-batch training loop.
type Sequential = nn.Sequential

// NewSequential creates an empty composite layer.
func NewSequential() *Sequential {
	return nn.NewSequential()
}

// Activation functions

// Func identifies an element-wise activation function.
type Func = nn.Func

// Supported activation functions.
const (
	Sigmoid   Func = nn.Sigmoid
	ReLU      Func = nn.ReLU
	LeakyReLU Func = nn.LeakyReLU
	SELU      Func = nn.SELU
)

// Loss functions

// Loss selects the loss function a model is trained with.
type Loss = nn.Loss

// MSE is mean squared error, the only supported loss.
const MSE Loss = nn.MSE

// MSEValue returns mean((prediction - target)^2) over all elements.
func MSEValue(prediction, target *tensor.Tensor) (float32, error) {
	return nn.MSEValue(prediction, target)
}

// Helpers

// LazyInit initializes l from the given input shape if it is still
// unbound, and otherwise verifies that the shape matches the bound one.
func LazyInit(l Layer, in tensor.Shape) error {
	return nn.LazyInit(l, in)
}

// ForwardBatch runs Forward once per axis-0 slice of input, writing each
// result into the corresponding slice of output.
func ForwardBatch(l Layer, input, output *tensor.Tensor) error {
	return nn.ForwardBatch(l, input, output)
}

// Xavier fills a new tensor with Xavier-uniform values for the given
// fan-in and fan-out.
func Xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.Tensor {
	return nn.Xavier(fanIn, fanOut, shape)
}

// SeedWeights seeds the source used for weight initialization, for
// reproducible runs.
func SeedWeights(seed uint64) {
	nn.SeedWeights(seed)
}

// Errors

var (
	ErrUninitialized       = nn.ErrUninitialized
	ErrShapeBound          = nn.ErrShapeBound
	ErrNoForward           = nn.ErrNoForward
	ErrBatchMismatch       = nn.ErrBatchMismatch
	ErrNotCompiled         = nn.ErrNotCompiled
	ErrInsufficientSamples = nn.ErrInsufficientSamples
)
