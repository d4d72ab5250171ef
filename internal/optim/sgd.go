package optim

// SGD is the plain stochastic gradient descent optimizer.
//
// Update rule, applied per layer at the end of each mini-batch:
//
//	param = param - (lr / batchSamples) * accumulatedGradient
//
// Example:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.05})
//	model.Compile(opt, nn.MSE)
type SGD struct {
	lr float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float32 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{lr: config.LR}
}

// LearningRate returns the current learning rate.
func (s *SGD) LearningRate() float32 {
	return s.lr
}

// SetLearningRate updates the learning rate.
//
// Useful for learning rate scheduling between training calls.
func (s *SGD) SetLearningRate(lr float32) {
	s.lr = lr
}
