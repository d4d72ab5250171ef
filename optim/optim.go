// Copyright 2026 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public optimizer API for flint.
package optim

import (
	"github.com/flint-ml/flint/internal/optim"
)

// Optimizer exposes the learning rate the training loop hands to each
// layer's batch update.
type Optimizer = optim.Optimizer

// SGD is the plain stochastic gradient descent optimizer.
type SGD = optim.SGD

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.05})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
