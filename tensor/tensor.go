// Copyright 2026 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the
// flint engine.
//
// A Tensor pairs a Shape of up to MaxDims axes with a flat float32 buffer,
// either owned exclusively or borrowed from a parent via Index.
//
// Example:
//
//	batch, _ := tensor.New(tensor.Shape{32, 2})
//	sample := batch.Index(0) // zero-copy view of the first sample
package tensor

import (
	"github.com/flint-ml/flint/internal/tensor"
)

// MaxDims is the maximum number of axes a Shape may describe.
const MaxDims = tensor.MaxDims

// Shape represents the dimensions of a tensor. A nil Shape means
// "not yet known".
type Shape = tensor.Shape

// Tensor is a Shape paired with a flat float32 buffer.
type Tensor = tensor.Tensor

// Contract violations surfaced as typed errors.
var (
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrViewResize    = tensor.ErrViewResize
)

// New creates a zero-filled tensor owning its buffer.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor owning a copy of the given data.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Empty creates an unallocated tensor with no shape bound.
func Empty() *Tensor {
	return tensor.Empty()
}

// Copy copies src into dst element-wise; equal shapes required.
func Copy(dst, src *Tensor) error {
	return tensor.Copy(dst, src)
}

// Assign resizes dst to src's shape, then copies src into it.
func Assign(dst, src *Tensor) error {
	return tensor.Assign(dst, src)
}

// Add adds src to dst element-wise, in place; equal shapes required.
func Add(dst, src *Tensor) error {
	return tensor.Add(dst, src)
}

// Sub subtracts src from dst element-wise, in place; equal shapes required.
func Sub(dst, src *Tensor) error {
	return tensor.Sub(dst, src)
}
