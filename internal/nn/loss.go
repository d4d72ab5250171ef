package nn

import (
	"fmt"

	"github.com/flint-ml/flint/internal/tensor"
)

// Loss selects the loss function a model is trained with.
type Loss int

// Supported loss functions.
const (
	// MSE is mean squared error. Its gradient is injected into the
	// backward pass as prediction - target: the factor of 2 from the MSE
	// derivative is folded into the learning rate by convention.
	MSE Loss = iota
)

// String returns the loss name.
func (l Loss) String() string {
	switch l {
	case MSE:
		return "MSE"
	default:
		return fmt.Sprintf("Loss(%d)", int(l))
	}
}

// Gradient writes d(loss)/d(prediction) for one sample into grad, resizing
// it to the prediction shape.
func (l Loss) Gradient(prediction, target, grad *tensor.Tensor) error {
	switch l {
	case MSE:
		if err := tensor.Assign(grad, prediction); err != nil {
			return err
		}
		return tensor.Sub(grad, target)
	default:
		return fmt.Errorf("nn: unsupported loss %v", l)
	}
}

// MSEValue returns mean((prediction - target)^2) over all elements.
// Predictions and targets must have the same shape.
func MSEValue(prediction, target *tensor.Tensor) (float32, error) {
	if !prediction.Shape().Equal(target.Shape()) {
		return 0, fmt.Errorf("%w: predictions %v, targets %v",
			tensor.ErrShapeMismatch, prediction.Shape(), target.Shape())
	}
	p := prediction.Data()
	t := target.Data()
	var sum float32
	for i := range p {
		d := p[i] - t[i]
		sum += d * d
	}
	return sum / float32(len(p)), nil
}
