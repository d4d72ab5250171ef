// Package optim carries the optimizer configuration for training.
//
// The engine applies parameter updates inside each layer's EndBatch, so an
// optimizer here only supplies the learning rate; plain SGD is the single
// supported algorithm.
package optim

// Optimizer exposes the learning rate the training loop hands to each
// layer's batch update.
type Optimizer interface {
	// LearningRate returns the current learning rate.
	LearningRate() float32
}
